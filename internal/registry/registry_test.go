package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/compliance-hub/internal/model"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	reg, err := Load()
	require.NoError(t, err)

	assert.Len(t, reg.Regulations, 4)
	assert.Len(t, reg.Pillars, 8)
	assert.Len(t, reg.Overlaps, 6)
	assert.Len(t, reg.PenaltyTable, 2)
	assert.Len(t, reg.Costs.Bands, 3)
}

func TestLoadRegulationLookup(t *testing.T) {
	t.Parallel()

	reg, err := Load()
	require.NoError(t, err)

	nis2, ok := reg.Regulation("nis2")
	require.True(t, ok)
	assert.Equal(t, "nis2", nis2.ID)
	assert.Len(t, nis2.Categories, 10)
	assert.NotEmpty(t, nis2.Recommendations)

	_, ok = reg.Regulation("unknown")
	assert.False(t, ok)
}

func TestLoadRegulationIDs(t *testing.T) {
	t.Parallel()

	reg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"nis2", "gdpr", "kritis", "dora"}, reg.RegulationIDs())
}

func TestLoadReferentialIntegrity(t *testing.T) {
	t.Parallel()

	reg, err := Load()
	require.NoError(t, err)

	for _, regulation := range reg.Regulations {
		known := make(map[string]bool)
		for _, c := range regulation.Categories {
			known[c.ID] = true
			assert.Positive(t, c.TotalQuestions, "category %s/%s", regulation.ID, c.ID)
		}
		for _, rec := range regulation.Recommendations {
			assert.True(t, known[rec.CategoryID],
				"recommendation %s references unknown category %s", rec.ID, rec.CategoryID)
		}
	}

	for _, p := range reg.Pillars {
		require.NotEmpty(t, p.Components, "pillar %s has no components", p.ID)
		for _, c := range p.Components {
			regulation, ok := reg.Regulation(c.RegulationID)
			require.True(t, ok, "pillar %s references unknown regulation %s", p.ID, c.RegulationID)
			found := false
			for _, cat := range regulation.Categories {
				if cat.ID == c.CategoryID {
					found = true
					break
				}
			}
			assert.True(t, found, "pillar %s references unknown category %s/%s", p.ID, c.RegulationID, c.CategoryID)
		}
	}

	for _, o := range reg.Overlaps {
		_, okA := reg.Regulation(o.RegA)
		_, okB := reg.Regulation(o.RegB)
		assert.True(t, okA && okB)
		assert.Greater(t, o.OverlapPercent, 0.0)
		assert.LessOrEqual(t, o.OverlapPercent, 100.0)
	}
}

func TestLoadPenaltyTiers(t *testing.T) {
	t.Parallel()

	reg, err := Load()
	require.NoError(t, err)

	essential := reg.PenaltyTable[model.ClassificationEssential]
	important := reg.PenaltyTable[model.ClassificationImportant]

	assert.Greater(t, essential.AbsoluteMax, important.AbsoluteMax,
		"tier A must carry the higher cap")
	assert.Greater(t, essential.RevenuePercentage, important.RevenuePercentage)
	assert.NotEmpty(t, essential.LegalReference)
}

func TestLoadCostBandsOrdered(t *testing.T) {
	t.Parallel()

	reg, err := Load()
	require.NoError(t, err)

	quick := reg.Costs.Bands[model.EffortQuick]
	medium := reg.Costs.Bands[model.EffortMedium]
	strategic := reg.Costs.Bands[model.EffortStrategic]

	assert.Less(t, quick.ExternalCostMax, medium.ExternalCostMax)
	assert.Less(t, medium.ExternalCostMax, strategic.ExternalCostMax)
	assert.Less(t, quick.InternalDaysMax, strategic.InternalDaysMin,
		"quick wins must be shorter than strategic projects")
}
