package model

// RoadmapItem is one deduplicated remediation measure in the consolidated
// roadmap. Regulations lists every framework the measure satisfies; its
// cost is counted once regardless of how many regulations require it.
type RoadmapItem struct {
	TitleKey        string      `json:"title_key"`
	Priority        Priority    `json:"priority"`
	Effort          EffortLevel `json:"effort"`
	Regulations     []string    `json:"regulations"`
	InternalDaysMin float64     `json:"internal_days_min"`
	InternalDaysMax float64     `json:"internal_days_max"`
	ExternalCostMin float64     `json:"external_cost_min"`
	ExternalCostMax float64     `json:"external_cost_max"`
}

// RoadmapPhase is one of the three ordered roadmap phases, bucketed by
// effort level and sorted by priority.
type RoadmapPhase struct {
	Effort  EffortLevel   `json:"effort"`
	Name    string        `json:"name"`
	Items   []RoadmapItem `json:"items"`
	CostMin float64       `json:"cost_min"`
	CostMax float64       `json:"cost_max"`
}

// Roadmap is the consolidated, costed remediation plan across all selected
// regulations.
type Roadmap struct {
	Phases          []RoadmapPhase `json:"phases"`
	TotalCostMin    float64        `json:"total_cost_min"`
	TotalCostMax    float64        `json:"total_cost_max"`
	TotalDaysMin    float64        `json:"total_days_min"`
	TotalDaysMax    float64        `json:"total_days_max"`
	RegulationsUsed []string       `json:"regulations_used"`
}

// RegulationReport pairs one regulation with its derived overall score.
type RegulationReport struct {
	RegulationID string       `json:"regulation_id"`
	Name         string       `json:"name"`
	Overall      OverallScore `json:"overall"`
}

// Report is the consolidated cross-regulation view handed to the
// presentation layer: plain serializable records, no behavior.
type Report struct {
	Assessment  Assessment         `json:"assessment"`
	GeneratedAt string             `json:"generated_at"`
	Regulations []RegulationReport `json:"regulations"`
	Pillars     []PillarScore      `json:"pillars"`
	Synergies   []SynergyEntry     `json:"synergies"`
	Roadmap     Roadmap            `json:"roadmap"`
	Penalty     PenaltyCalculation `json:"penalty"`
	Trend       TrendInfo          `json:"trend"`
}
