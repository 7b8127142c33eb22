// Package roadmap buckets and deduplicates recommendations across multiple
// regulations into a phased, costed remediation roadmap for the combined
// report.
package roadmap

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/compliance-hub/internal/model"
	"github.com/sells-group/compliance-hub/internal/scoring"
)

// CostCatalogue holds the authored per-effort-level cost bands.
type CostCatalogue struct {
	Bands map[model.EffortLevel]model.CostBand `json:"bands" yaml:"bands"`
}

// DefaultCostCatalogue returns the baseline cost bands, before company-size
// scaling, in internal days and external euros.
func DefaultCostCatalogue() CostCatalogue {
	return CostCatalogue{
		Bands: map[model.EffortLevel]model.CostBand{
			model.EffortQuick: {
				InternalDaysMin: 1, InternalDaysMax: 5,
				ExternalCostMin: 1_000, ExternalCostMax: 5_000,
			},
			model.EffortMedium: {
				InternalDaysMin: 5, InternalDaysMax: 20,
				ExternalCostMin: 5_000, ExternalCostMax: 25_000,
			},
			model.EffortStrategic: {
				InternalDaysMin: 20, InternalDaysMax: 90,
				ExternalCostMin: 25_000, ExternalCostMax: 120_000,
			},
		},
	}
}

// RegulationInput is one selected regulation with its recorded answers and
// catalogue data.
type RegulationInput struct {
	RegulationID    string
	Answers         []model.Answer
	Categories      []model.Category
	Recommendations []model.Recommendation
}

// Remaining-cost factors per category traffic light. A green category still
// carries reduced cost: partial gaps remain behind a green light at the 70%
// boundary.
const (
	factorRed    = 1.0
	factorYellow = 0.6
	factorGreen  = 0.25
)

func lightFactor(light model.TrafficLight) float64 {
	switch light {
	case model.TrafficGreen:
		return factorGreen
	case model.TrafficYellow:
		return factorYellow
	default:
		return factorRed
	}
}

// phase display names in fixed order.
var phaseOrder = []struct {
	effort model.EffortLevel
	name   string
}{
	{model.EffortQuick, "Quick wins"},
	{model.EffortMedium, "Core measures"},
	{model.EffortStrategic, "Strategic projects"},
}

func effortRank(e model.EffortLevel) int {
	switch e {
	case model.EffortQuick:
		return 0
	case model.EffortMedium:
		return 1
	default:
		return 2
	}
}

// pending accumulates one deduplicated measure before costing.
type pending struct {
	titleKey    string
	priority    model.Priority
	effort      model.EffortLevel
	factor      float64
	regulations map[string]bool
}

// Build assembles the consolidated roadmap. Regulations without any
// recorded answers are skipped entirely: they contribute no items and do
// not affect the totals. Identical measures required by several regulations
// (matched by title key) appear once, with their cost counted once and the
// satisfied regulations accumulated. The result is well-formed even when
// nothing qualifies.
func Build(regs []RegulationInput, costs CostCatalogue, sizeFactor float64) model.Roadmap {
	if sizeFactor <= 0 {
		sizeFactor = 1.0
	}

	merged := make(map[string]*pending)
	var included []string

	for _, reg := range regs {
		if len(reg.Answers) == 0 {
			zap.L().Debug("roadmap: skipping regulation without answers",
				zap.String("regulation", reg.RegulationID),
			)
			continue
		}
		included = append(included, reg.RegulationID)

		overall := scoring.ScoreOverall(reg.Answers, reg.Categories)
		lights := scoring.CategoryLights(overall)

		for _, rec := range reg.Recommendations {
			light, ok := lights[rec.CategoryID]
			if !ok {
				// Recommendation referencing a category outside the
				// regulation's catalogue: authored-data drift, dropped.
				continue
			}
			factor := lightFactor(light)

			item, ok := merged[rec.TitleKey]
			if !ok {
				merged[rec.TitleKey] = &pending{
					titleKey:    rec.TitleKey,
					priority:    rec.Priority,
					effort:      rec.Effort,
					factor:      factor,
					regulations: map[string]bool{reg.RegulationID: true},
				}
				continue
			}
			item.regulations[reg.RegulationID] = true
			// Merge order-independently: the most outstanding gap
			// governs remaining cost, the highest priority and the
			// heaviest effort bucket win.
			item.factor = math.Max(item.factor, factor)
			if rec.Priority.Rank() < item.priority.Rank() {
				item.priority = rec.Priority
			}
			if effortRank(rec.Effort) > effortRank(item.effort) {
				item.effort = rec.Effort
			}
		}
	}

	sort.Strings(included)

	roadmap := model.Roadmap{RegulationsUsed: included}
	byEffort := make(map[model.EffortLevel][]model.RoadmapItem)

	for _, p := range merged {
		band := costs.Bands[p.effort]
		scale := sizeFactor * p.factor

		regulations := make([]string, 0, len(p.regulations))
		for id := range p.regulations {
			regulations = append(regulations, id)
		}
		sort.Strings(regulations)

		item := model.RoadmapItem{
			TitleKey:        p.titleKey,
			Priority:        p.priority,
			Effort:          p.effort,
			Regulations:     regulations,
			InternalDaysMin: round1(band.InternalDaysMin * scale),
			InternalDaysMax: round1(band.InternalDaysMax * scale),
			ExternalCostMin: math.Round(band.ExternalCostMin * scale),
			ExternalCostMax: math.Round(band.ExternalCostMax * scale),
		}
		byEffort[p.effort] = append(byEffort[p.effort], item)
	}

	for _, ph := range phaseOrder {
		items := byEffort[ph.effort]
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Priority.Rank() != items[j].Priority.Rank() {
				return items[i].Priority.Rank() < items[j].Priority.Rank()
			}
			return items[i].TitleKey < items[j].TitleKey
		})

		phase := model.RoadmapPhase{
			Effort: ph.effort,
			Name:   ph.name,
			Items:  items,
		}
		for _, it := range items {
			phase.CostMin += it.ExternalCostMin
			phase.CostMax += it.ExternalCostMax
			roadmap.TotalDaysMin += it.InternalDaysMin
			roadmap.TotalDaysMax += it.InternalDaysMax
		}
		roadmap.TotalCostMin += phase.CostMin
		roadmap.TotalCostMax += phase.CostMax
		roadmap.Phases = append(roadmap.Phases, phase)
	}

	return roadmap
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
