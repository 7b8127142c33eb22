// Package pillar re-projects per-regulation category scores onto the fixed
// cross-cutting pillar catalogue, merging equivalent controls from multiple
// regulations into one maturity figure per pillar.
package pillar

import (
	"github.com/sells-group/compliance-hub/internal/model"
)

// ScoreKey addresses one category score inside one regulation.
type ScoreKey struct {
	RegulationID string
	CategoryID   string
}

// BuildLookup flattens per-regulation overall scores into a single
// (regulation, category) -> CategoryScore map, the read-side join the
// aggregation runs against. Gathering everything up front keeps Score a
// single deterministic pass.
func BuildLookup(perRegulation map[string]model.OverallScore) map[ScoreKey]model.CategoryScore {
	lookup := make(map[ScoreKey]model.CategoryScore)
	for regID, overall := range perRegulation {
		for _, cs := range overall.CategoryScores {
			lookup[ScoreKey{RegulationID: regID, CategoryID: cs.CategoryID}] = cs
		}
	}
	return lookup
}

// Score computes one PillarScore per catalogue pillar. A pillar's score is
// the mean of the located category percentages across all its components
// and all assessed regulations. A pillar with no assessed regulation stays
// nil: "not yet assessed" is distinct from a 0% score.
func Score(pillars []model.Pillar, lookup map[ScoreKey]model.CategoryScore, assessed map[string]bool) []model.PillarScore {
	results := make([]model.PillarScore, 0, len(pillars))
	for _, p := range pillars {
		results = append(results, scoreOne(p, lookup, assessed))
	}
	return results
}

func scoreOne(p model.Pillar, lookup map[ScoreKey]model.CategoryScore, assessed map[string]bool) model.PillarScore {
	eligible := make(map[string]bool)
	contributing := make(map[string]bool)

	var sum float64
	var count int
	for _, c := range p.Components {
		eligible[c.RegulationID] = true
		if !assessed[c.RegulationID] {
			continue
		}
		cs, ok := lookup[ScoreKey{RegulationID: c.RegulationID, CategoryID: c.CategoryID}]
		if !ok {
			// Component referencing a category the regulation does not
			// score is authored-data drift; drop it silently.
			continue
		}
		sum += cs.Percentage
		count++
		contributing[c.RegulationID] = true
	}

	ps := model.PillarScore{
		PillarID:            p.ID,
		RegulationsWithData: len(contributing),
		RegulationsTotal:    len(eligible),
	}
	if count == 0 {
		return ps
	}

	score := model.Round1(sum / float64(count))
	light := model.LightFor(score)
	ps.Score = &score
	ps.TrafficLight = &light
	return ps
}
