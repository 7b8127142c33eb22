package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/compliance-hub/internal/model"
	"github.com/sells-group/compliance-hub/internal/report"
)

func TestFormatAssessmentList(t *testing.T) {
	var buf bytes.Buffer
	formatAssessmentList(&buf, []model.Assessment{
		{
			ID:   "a1",
			Name: "Acme GmbH",
			Profile: model.CompanyProfile{
				Classification: model.ClassificationEssential,
				AnnualRevenue:  250_000_000,
			},
			CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Acme GmbH")
	assert.Contains(t, out, "essential")
	assert.Contains(t, out, "2026-08-01")
}

func TestFormatScoreTable(t *testing.T) {
	regs := []model.RegulationReport{
		{
			RegulationID: "nis2",
			Name:         "NIS2",
			Overall: model.OverallScore{
				Percentage:   58.4,
				TrafficLight: model.TrafficYellow,
				CategoryScores: []model.CategoryScore{
					{CategoryID: "incident", Percentage: 66.7, TrafficLight: model.TrafficYellow, AnsweredQuestions: 4, TotalQuestions: 6},
				},
			},
		},
	}

	var buf bytes.Buffer
	formatScoreTable(&buf, regs)

	out := buf.String()
	assert.Contains(t, out, "incident")
	assert.Contains(t, out, "66.7")
	assert.Contains(t, out, "OVERALL")
	assert.Contains(t, out, "58.4")
	// Single regulation prints no cross-regulation average.
	assert.NotContains(t, out, "AVERAGE")
}

func TestWriteScoreCSV(t *testing.T) {
	regs := []model.RegulationReport{
		{
			RegulationID: "gdpr",
			Overall: model.OverallScore{
				Percentage:   40,
				TrafficLight: model.TrafficYellow,
			},
		},
	}

	var buf bytes.Buffer
	assert.NoError(t, writeScoreCSV(&buf, regs))
	assert.Contains(t, buf.String(), "gdpr,overall,40.0,yellow")
}

func TestFormatSynergyTable(t *testing.T) {
	score := 72.5
	entries := []model.SynergyEntry{
		{
			OverlapMapping: model.OverlapMapping{
				RegA:              "nis2",
				RegB:              "kritis",
				OverlapPercent:    80,
				SharedMeasureKeys: []string{"reporting_process_24h"},
			},
			RegAScore: &score,
		},
	}

	var buf bytes.Buffer
	formatSynergyTable(&buf, entries)

	out := buf.String()
	assert.Contains(t, out, "nis2/kritis")
	assert.Contains(t, out, "80%")
	assert.Contains(t, out, "72.5")
	assert.Contains(t, out, "n/a")
	assert.Contains(t, out, "reporting_process_24h")
}

func TestFormatSynergyTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	formatSynergyTable(&buf, nil)
	assert.Contains(t, buf.String(), "No overlap pairs")
}

func TestFormatTrend(t *testing.T) {
	log := []model.ScoreSnapshot{
		{Date: "2026-08-01", OverallAvg: 50},
		{Date: "2026-08-15", OverallAvg: 61.5},
	}

	var buf bytes.Buffer
	formatTrend(&buf, log, model.TrendInfo{
		Direction:  model.TrendUp,
		Delta:      11.5,
		ComparedTo: "2026-08-01",
	})

	out := buf.String()
	assert.Contains(t, out, "2026-08-15")
	assert.Contains(t, out, "up +11.5 since 2026-08-01")
}

func TestFormatTrend_New(t *testing.T) {
	var buf bytes.Buffer
	formatTrend(&buf, nil, model.TrendInfo{Direction: model.TrendNew})
	assert.Contains(t, buf.String(), "new")
}

func TestFormatPenalty(t *testing.T) {
	var buf bytes.Buffer
	formatPenalty(&buf, model.PenaltyCalculation{
		Classification:         model.ClassificationEssential,
		AnnualRevenue:          900_000_000,
		MaxPenaltyAbsolute:     10_000_000,
		MaxPenaltyRevenueBased: 18_000_000,
		RevenuePercentage:      2.0,
		EffectiveMaxPenalty:    18_000_000,
		LegalReference:         "Art. 34(4)",
	}, report.NewFormatter("en", "EUR"))

	out := buf.String()
	assert.Contains(t, out, "essential")
	assert.Contains(t, out, "Art. 34(4)")
	assert.Contains(t, out, "18,000,000 EUR")
}

func TestFormatRoadmapTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	formatRoadmapTable(&buf, model.Roadmap{}, report.NewFormatter("de", "EUR"))
	assert.Contains(t, buf.String(), "No regulations with recorded answers")
}

func TestFormatRegulations(t *testing.T) {
	regs := []model.Regulation{
		{
			ID:   "nis2",
			Name: "NIS2",
			Categories: []model.Category{
				{ID: "incident", Name: "Incident Handling", TotalQuestions: 6},
				{ID: "crypto", Name: "Cryptography", TotalQuestions: 3},
			},
		},
	}

	var buf bytes.Buffer
	formatRegulations(&buf, regs, true)

	out := buf.String()
	assert.Contains(t, out, "nis2")
	assert.Contains(t, out, "incident")
	assert.Contains(t, out, "9")
}
