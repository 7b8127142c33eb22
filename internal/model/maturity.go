// Package model holds the plain record types shared by the scoring,
// aggregation, and reporting engines. Records carry no behavior beyond
// small derivation helpers; everything here is safe to serialize as-is.
package model

import "math"

// MaturityLevel is the 0-3 answer to a single compliance question:
// no implementation, basic, substantial, full.
type MaturityLevel int

const (
	LevelNone        MaturityLevel = 0
	LevelBasic       MaturityLevel = 1
	LevelSubstantial MaturityLevel = 2
	LevelFull        MaturityLevel = 3
)

// MaxMaturityLevel is the highest answerable level.
const MaxMaturityLevel = 3

// Valid reports whether the level is inside the answerable range.
func (l MaturityLevel) Valid() bool {
	return l >= LevelNone && l <= LevelFull
}

// Answer is one recorded maturity answer. Resubmitting the same question
// overwrites the previous answer.
type Answer struct {
	QuestionID string        `json:"question_id" yaml:"question_id"`
	CategoryID string        `json:"category_id" yaml:"category_id"`
	Level      MaturityLevel `json:"level" yaml:"level"`
}

// TrafficLight classifies a percentage score into red, yellow, or green.
type TrafficLight string

const (
	TrafficRed    TrafficLight = "red"
	TrafficYellow TrafficLight = "yellow"
	TrafficGreen  TrafficLight = "green"
)

// Traffic-light thresholds, applied identically by every engine.
const (
	YellowThreshold = 40.0
	GreenThreshold  = 70.0
)

// LightFor classifies a percentage score.
func LightFor(percentage float64) TrafficLight {
	switch {
	case percentage >= GreenThreshold:
		return TrafficGreen
	case percentage >= YellowThreshold:
		return TrafficYellow
	default:
		return TrafficRed
	}
}

// Round1 rounds to one decimal place. Multiply-round-divide keeps level
// averages exact at the boundaries (level 3 must score 100.0, not 99.9).
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// CategoryScore is the derived score of one category within a regulation.
// Recomputed from answers on demand, never persisted.
type CategoryScore struct {
	CategoryID        string       `json:"category_id"`
	Percentage        float64      `json:"percentage"`
	TrafficLight      TrafficLight `json:"traffic_light"`
	AnsweredQuestions int          `json:"answered_questions"`
	TotalQuestions    int          `json:"total_questions"`
}

// OverallScore is the derived score of one regulation assessment: the
// unweighted mean of its category percentages.
type OverallScore struct {
	Percentage        float64         `json:"percentage"`
	TrafficLight      TrafficLight    `json:"traffic_light"`
	CategoryScores    []CategoryScore `json:"category_scores"`
	AnsweredQuestions int             `json:"answered_questions"`
	TotalQuestions    int             `json:"total_questions"`
	CompletionRate    float64         `json:"completion_rate"`
}
