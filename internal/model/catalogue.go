package model

// Category is one regulation-specific grouping of related questions.
type Category struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	TotalQuestions int    `json:"total_questions" yaml:"total_questions"`
}

// Priority orders recommendations within a roadmap phase.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort rank of a priority; high sorts first. Unknown
// priorities rank after low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// EffortLevel buckets a recommendation into a roadmap phase.
type EffortLevel string

const (
	EffortQuick     EffortLevel = "quick"
	EffortMedium    EffortLevel = "medium"
	EffortStrategic EffortLevel = "strategic"
)

// Recommendation is a pre-authored remediation record owned by one
// regulation. The engines operate on its structured metadata only.
type Recommendation struct {
	ID         string      `json:"id" yaml:"id"`
	CategoryID string      `json:"category_id" yaml:"category_id"`
	TitleKey   string      `json:"title_key" yaml:"title_key"`
	Priority   Priority    `json:"priority" yaml:"priority"`
	Effort     EffortLevel `json:"effort" yaml:"effort"`
}

// Regulation is one regulatory framework with its own category catalogue,
// question set, and recommendation list. Category IDs are namespaced per
// regulation; there is no sharing across frameworks.
type Regulation struct {
	ID              string           `json:"id" yaml:"id"`
	Name            string           `json:"name" yaml:"name"`
	Categories      []Category       `json:"categories" yaml:"categories"`
	Recommendations []Recommendation `json:"recommendations" yaml:"recommendations"`
}

// PillarComponent maps one pillar to the equivalent control of a specific
// regulation. Authored data, not inferred.
type PillarComponent struct {
	RegulationID string `json:"regulation_id" yaml:"regulation_id"`
	CategoryID   string `json:"category_id" yaml:"category_id"`
}

// Pillar is a cross-cutting grouping of equivalent controls spanning
// multiple regulations.
type Pillar struct {
	ID         string            `json:"id" yaml:"id"`
	Name       string            `json:"name" yaml:"name"`
	Components []PillarComponent `json:"components" yaml:"components"`
}

// OverlapMapping is one authored pairwise overlap estimate between two
// regulations. The overlap engine selects and ranks these; it never
// computes overlap from scores.
type OverlapMapping struct {
	RegA              string   `json:"reg_a" yaml:"reg_a"`
	RegB              string   `json:"reg_b" yaml:"reg_b"`
	OverlapPercent    float64  `json:"overlap_percent" yaml:"overlap_percent"`
	SharedMeasureKeys []string `json:"shared_measure_keys" yaml:"shared_measure_keys"`
}

// SynergyEntry is an OverlapMapping annotated for reporting with the
// current score of each side, where assessment data exists.
type SynergyEntry struct {
	OverlapMapping
	RegAScore *float64 `json:"reg_a_score,omitempty"`
	RegBScore *float64 `json:"reg_b_score,omitempty"`
}

// CostBand holds the unscaled effort and external-cost ranges for one
// effort level.
type CostBand struct {
	InternalDaysMin float64 `json:"internal_days_min" yaml:"internal_days_min"`
	InternalDaysMax float64 `json:"internal_days_max" yaml:"internal_days_max"`
	ExternalCostMin float64 `json:"external_cost_min" yaml:"external_cost_min"`
	ExternalCostMax float64 `json:"external_cost_max" yaml:"external_cost_max"`
}
