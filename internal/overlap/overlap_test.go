package overlap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/compliance-hub/internal/model"
)

func testCatalogue() []model.OverlapMapping {
	return []model.OverlapMapping{
		{RegA: "nis2", RegB: "dora", OverlapPercent: 65, SharedMeasureKeys: []string{"incident_reporting", "risk_management"}},
		{RegA: "gdpr", RegB: "nis2", OverlapPercent: 40, SharedMeasureKeys: []string{"breach_notification"}},
		{RegA: "kritis", RegB: "nis2", OverlapPercent: 80, SharedMeasureKeys: []string{"resilience", "incident_reporting"}},
		{RegA: "dora", RegB: "gdpr", OverlapPercent: 25, SharedMeasureKeys: []string{"third_party_risk"}},
	}
}

func TestFindSynergiesSelectsAssessedPairs(t *testing.T) {
	t.Parallel()

	got := FindSynergies(testCatalogue(), []string{"nis2", "dora"})

	require.Len(t, got, 1)
	assert.Equal(t, "nis2", got[0].RegA)
	assert.Equal(t, "dora", got[0].RegB)
}

func TestFindSynergiesRanksByOverlapDescending(t *testing.T) {
	t.Parallel()

	got := FindSynergies(testCatalogue(), []string{"nis2", "dora", "gdpr", "kritis"})

	require.Len(t, got, 4)
	assert.InDelta(t, 80.0, got[0].OverlapPercent, 1e-9)
	assert.InDelta(t, 65.0, got[1].OverlapPercent, 1e-9)
	assert.InDelta(t, 40.0, got[2].OverlapPercent, 1e-9)
	assert.InDelta(t, 25.0, got[3].OverlapPercent, 1e-9)
}

func TestFindSynergiesDeduplicatesReversedPairs(t *testing.T) {
	t.Parallel()

	catalogue := []model.OverlapMapping{
		{RegA: "nis2", RegB: "dora", OverlapPercent: 65},
		{RegA: "dora", RegB: "nis2", OverlapPercent: 65},
	}

	got := FindSynergies(catalogue, []string{"nis2", "dora"})
	assert.Len(t, got, 1)
}

func TestFindSynergiesEmptyInputs(t *testing.T) {
	t.Parallel()

	assert.Empty(t, FindSynergies(testCatalogue(), nil))
	assert.Empty(t, FindSynergies(nil, []string{"nis2", "dora"}))
	assert.Empty(t, FindSynergies(testCatalogue(), []string{"nis2"}))
}

func TestAnnotate(t *testing.T) {
	t.Parallel()

	selected := FindSynergies(testCatalogue(), []string{"nis2", "dora"})
	entries := Annotate(selected, map[string]float64{"nis2": 58.4})

	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].RegAScore)
	assert.InDelta(t, 58.4, *entries[0].RegAScore, 1e-9)
	assert.Nil(t, entries[0].RegBScore, "dora has no assessment data yet")
}

func TestAnnotatePreservesOrder(t *testing.T) {
	t.Parallel()

	selected := FindSynergies(testCatalogue(), []string{"nis2", "dora", "gdpr", "kritis"})
	entries := Annotate(selected, nil)

	require.Len(t, entries, len(selected))
	for i := range selected {
		assert.Equal(t, selected[i].RegA, entries[i].RegA)
		assert.Equal(t, selected[i].RegB, entries[i].RegB)
	}
}
