package history

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/compliance-hub/internal/model"
)

// SnapshotStore is the slice of the persistence collaborator the recorder
// needs: an opaque ordered log per assessment.
type SnapshotStore interface {
	LoadSnapshots(ctx context.Context, assessmentID string) ([]model.ScoreSnapshot, error)
	SaveSnapshots(ctx context.Context, assessmentID string, log []model.ScoreSnapshot) error
}

// Recorder serializes snapshot appends against the persisted log. Append
// itself is pure; the mutex preserves the append-only and FIFO-eviction
// invariants when two callers race on the same log.
type Recorder struct {
	store     SnapshotStore
	retention int

	mu  sync.Mutex
	now func() time.Time
}

// NewRecorder creates a Recorder. A non-positive retention falls back to
// DefaultRetention.
func NewRecorder(store SnapshotStore, retention int) *Recorder {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Recorder{
		store:     store,
		retention: retention,
		now:       time.Now,
	}
}

// Record loads the log, appends a snapshot of the given scores dated today,
// and saves the log back when it changed. It returns the resulting log.
func (r *Recorder) Record(ctx context.Context, assessmentID string, scores map[string]float64, overallAvg float64) ([]model.ScoreSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	log, err := r.store.LoadSnapshots(ctx, assessmentID)
	if err != nil {
		return nil, eris.Wrap(err, "history: load snapshots")
	}

	snap := model.ScoreSnapshot{
		Date:       r.now().UTC().Format("2006-01-02"),
		Scores:     scores,
		OverallAvg: overallAvg,
	}

	if n := len(log); n > 0 && sameScores(log[n-1].Scores, snap.Scores) {
		zap.L().Debug("history: scores unchanged, snapshot skipped",
			zap.String("assessment", assessmentID),
		)
		return log, nil
	}
	updated := Append(log, snap, r.retention)

	if err := r.store.SaveSnapshots(ctx, assessmentID, updated); err != nil {
		return nil, eris.Wrap(err, "history: save snapshots")
	}

	zap.L().Info("history: snapshot recorded",
		zap.String("assessment", assessmentID),
		zap.String("date", snap.Date),
		zap.Float64("overall_avg", overallAvg),
		zap.Int("entries", len(updated)),
	)
	return updated, nil
}
