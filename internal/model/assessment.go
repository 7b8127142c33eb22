package model

import "time"

// Classification is the regulatory tier assigned to an organization by the
// external applicability check. It determines penalty exposure.
type Classification string

const (
	ClassificationEssential     Classification = "essential"
	ClassificationImportant     Classification = "important"
	ClassificationNotApplicable Classification = "not_applicable"
)

// CompanyProfile carries the classification and sizing inputs supplied by
// the external company-profile provider.
type CompanyProfile struct {
	Classification Classification `json:"classification" yaml:"classification"`
	AnnualRevenue  float64        `json:"annual_revenue" yaml:"annual_revenue"`
	SizeFactor     float64        `json:"size_factor" yaml:"size_factor"`
}

// Assessment groups the recorded answers of one organization across any
// number of regulations.
type Assessment struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Profile   CompanyProfile `json:"profile"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// PenaltyCalculation is the derived penalty exposure for a classification
// tier and annual revenue. Never persisted.
type PenaltyCalculation struct {
	Classification         Classification `json:"classification"`
	AnnualRevenue          float64        `json:"annual_revenue"`
	MaxPenaltyAbsolute     float64        `json:"max_penalty_absolute"`
	MaxPenaltyRevenueBased float64        `json:"max_penalty_revenue_based"`
	RevenuePercentage      float64        `json:"revenue_percentage"`
	EffectiveMaxPenalty    float64        `json:"effective_max_penalty"`
	LegalReference         string         `json:"legal_reference"`
}

// PillarScore is the derived cross-regulation score of one pillar. A nil
// Score means no regulation relevant to the pillar has been assessed yet;
// that is distinct from a zero score, which means answered but failing.
type PillarScore struct {
	PillarID            string        `json:"pillar_id"`
	Score               *float64      `json:"score"`
	TrafficLight        *TrafficLight `json:"traffic_light"`
	RegulationsWithData int           `json:"regulations_with_data"`
	RegulationsTotal    int           `json:"regulations_total"`
}

// ScoreSnapshot is one dated entry of the append-only score history log.
type ScoreSnapshot struct {
	Date       string             `json:"date"` // ISO day, e.g. 2026-08-28
	Scores     map[string]float64 `json:"scores"`
	OverallAvg float64            `json:"overall_avg"`
}

// TrendDirection labels the movement of the overall average since the most
// recent differing snapshot.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
	TrendNew    TrendDirection = "new"
)

// TrendInfo is the derived trend of the snapshot log. Never persisted.
type TrendInfo struct {
	Direction  TrendDirection `json:"direction"`
	Delta      float64        `json:"delta"`
	ComparedTo string         `json:"compared_to,omitempty"`
}
