// Package history tracks dated score snapshots and derives directional
// trends. The log is append-only with FIFO eviction at a fixed cap; past
// entries are never mutated.
package history

import (
	"github.com/sells-group/compliance-hub/internal/model"
)

// DefaultRetention is the default snapshot cap.
const DefaultRetention = 30

// sameScores reports whether two score maps agree on key set and values.
func sameScores(a, b map[string]float64) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		bv, ok := b[k]
		if !ok || bv != v {
			return false
		}
	}
	return true
}

// Append returns the log with snap appended, or the log unchanged when the
// score map equals the latest entry's. When the cap is exceeded the oldest
// entries are evicted first.
func Append(log []model.ScoreSnapshot, snap model.ScoreSnapshot, retention int) []model.ScoreSnapshot {
	if retention <= 0 {
		retention = DefaultRetention
	}
	if n := len(log); n > 0 && sameScores(log[n-1].Scores, snap.Scores) {
		return log
	}

	log = append(log, snap)
	if len(log) > retention {
		log = log[len(log)-retention:]
	}
	return log
}

// ComputeTrend derives the trend of the most recent entry against the most
// recent prior entry whose overall average differs. With fewer than two
// entries the series is new. When every historical entry ties, the result
// is a plateau: stable with zero delta, compared against the earliest date.
func ComputeTrend(log []model.ScoreSnapshot) model.TrendInfo {
	if len(log) == 0 {
		return model.TrendInfo{Direction: model.TrendNew}
	}
	latest := log[len(log)-1]
	if len(log) == 1 {
		return model.TrendInfo{Direction: model.TrendNew, ComparedTo: latest.Date}
	}

	for i := len(log) - 2; i >= 0; i-- {
		if log[i].OverallAvg == latest.OverallAvg {
			continue
		}
		delta := model.Round1(latest.OverallAvg - log[i].OverallAvg)
		direction := model.TrendUp
		if delta < 0 {
			direction = model.TrendDown
		} else if delta == 0 {
			// Sub-decimal movement rounds away; report it as stable.
			direction = model.TrendStable
		}
		return model.TrendInfo{
			Direction:  direction,
			Delta:      delta,
			ComparedTo: log[i].Date,
		}
	}

	return model.TrendInfo{
		Direction:  model.TrendStable,
		Delta:      0,
		ComparedTo: log[0].Date,
	}
}
