// Package scoring converts raw maturity answers into category and overall
// percentage scores with traffic-light classification. Every function is a
// total, pure projection of its inputs: empty input yields zero scores,
// never an error.
package scoring

import (
	"github.com/sells-group/compliance-hub/internal/model"
)

// ScoreCategory scores one category: the arithmetic mean of (level/3)*100
// over exactly the answers whose category matches, rounded to one decimal.
// A category with no answers scores 0%, not "unknown".
func ScoreCategory(answers []model.Answer, categoryID string, totalQuestions int) model.CategoryScore {
	var sum float64
	var answered int
	for _, a := range answers {
		if a.CategoryID != categoryID {
			continue
		}
		// Real division keeps level 3 at exactly 100.
		sum += float64(a.Level) / model.MaxMaturityLevel * 100
		answered++
	}

	score := model.CategoryScore{
		CategoryID:        categoryID,
		TrafficLight:      model.TrafficRed,
		AnsweredQuestions: answered,
		TotalQuestions:    totalQuestions,
	}
	if answered == 0 {
		return score
	}

	score.Percentage = model.Round1(sum / float64(answered))
	score.TrafficLight = model.LightFor(score.Percentage)
	return score
}

// ScoreOverall scores a whole regulation: the unweighted mean of its
// category percentages. A category with one answered question counts the
// same as one with twenty. Answers referencing a category outside the
// catalogue are dropped silently. Completion is tracked separately as
// answered questions over total questions across all categories.
func ScoreOverall(answers []model.Answer, categories []model.Category) model.OverallScore {
	overall := model.OverallScore{
		TrafficLight:   model.TrafficRed,
		CategoryScores: make([]model.CategoryScore, 0, len(categories)),
	}

	var sum float64
	for _, c := range categories {
		cs := ScoreCategory(answers, c.ID, c.TotalQuestions)
		overall.CategoryScores = append(overall.CategoryScores, cs)
		overall.AnsweredQuestions += cs.AnsweredQuestions
		overall.TotalQuestions += cs.TotalQuestions
		sum += cs.Percentage
	}

	if len(categories) == 0 {
		return overall
	}

	overall.Percentage = model.Round1(sum / float64(len(categories)))
	overall.TrafficLight = model.LightFor(overall.Percentage)
	if overall.TotalQuestions > 0 {
		overall.CompletionRate = model.Round1(float64(overall.AnsweredQuestions) / float64(overall.TotalQuestions) * 100)
	}
	return overall
}

// CategoryLights returns the traffic light per category ID for one
// regulation, as consumed by the roadmap aggregator.
func CategoryLights(overall model.OverallScore) map[string]model.TrafficLight {
	lights := make(map[string]model.TrafficLight, len(overall.CategoryScores))
	for _, cs := range overall.CategoryScores {
		lights[cs.CategoryID] = cs.TrafficLight
	}
	return lights
}
