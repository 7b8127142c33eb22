// Package penalty computes the maximum regulatory penalty exposure for a
// classification tier and annual revenue.
package penalty

import (
	"math"

	"github.com/sells-group/compliance-hub/internal/model"
)

// Tier holds the authored penalty parameters of one classification tier.
type Tier struct {
	AbsoluteMax       float64 `json:"absolute_max" yaml:"absolute_max"`
	RevenuePercentage float64 `json:"revenue_percentage" yaml:"revenue_percentage"`
	LegalReference    string  `json:"legal_reference" yaml:"legal_reference"`
}

// Table maps classification tiers to their penalty parameters.
type Table map[model.Classification]Tier

// DefaultTable returns the two-tier penalty table: essential entities carry
// the higher cap and percentage.
func DefaultTable() Table {
	return Table{
		model.ClassificationEssential: {
			AbsoluteMax:       10_000_000,
			RevenuePercentage: 2.0,
			LegalReference:    "Art. 34(4)",
		},
		model.ClassificationImportant: {
			AbsoluteMax:       7_000_000,
			RevenuePercentage: 1.4,
			LegalReference:    "Art. 34(5)",
		},
	}
}

// Calculate returns the penalty exposure for the given classification and
// annual revenue: the greater of the absolute cap and the revenue-based
// amount, rounded to the nearest currency unit. A classification outside
// the table returns an all-zero result with an empty legal reference.
func Calculate(table Table, classification model.Classification, annualRevenue float64) model.PenaltyCalculation {
	calc := model.PenaltyCalculation{
		Classification: classification,
		AnnualRevenue:  annualRevenue,
	}

	tier, ok := table[classification]
	if !ok {
		return calc
	}

	revenueBased := math.Round(annualRevenue * tier.RevenuePercentage / 100)

	calc.MaxPenaltyAbsolute = tier.AbsoluteMax
	calc.MaxPenaltyRevenueBased = revenueBased
	calc.RevenuePercentage = tier.RevenuePercentage
	calc.EffectiveMaxPenalty = math.Max(tier.AbsoluteMax, revenueBased)
	calc.LegalReference = tier.LegalReference
	return calc
}
