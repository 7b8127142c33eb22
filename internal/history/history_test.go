package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/compliance-hub/internal/model"
)

func snap(date string, avg float64, scores map[string]float64) model.ScoreSnapshot {
	return model.ScoreSnapshot{Date: date, Scores: scores, OverallAvg: avg}
}

func TestAppendGrowsLog(t *testing.T) {
	t.Parallel()

	log := Append(nil, snap("2026-08-01", 50, map[string]float64{"nis2": 50}), 10)
	log = Append(log, snap("2026-08-02", 60, map[string]float64{"nis2": 60}), 10)

	require.Len(t, log, 2)
	assert.Equal(t, "2026-08-02", log[1].Date)
}

func TestAppendIdenticalScoresIsNoOp(t *testing.T) {
	t.Parallel()

	log := Append(nil, snap("2026-08-01", 50, map[string]float64{"nis2": 50, "gdpr": 30}), 10)
	log = Append(log, snap("2026-08-05", 50, map[string]float64{"gdpr": 30, "nis2": 50}), 10)

	require.Len(t, log, 1)
	assert.Equal(t, "2026-08-01", log[0].Date, "latest entry date must not change")
}

func TestAppendDetectsKeySetChange(t *testing.T) {
	t.Parallel()

	// Same values for shared keys but a new regulation appears: that is a
	// change and must append.
	log := Append(nil, snap("2026-08-01", 50, map[string]float64{"nis2": 50}), 10)
	log = Append(log, snap("2026-08-02", 40, map[string]float64{"nis2": 50, "gdpr": 30}), 10)

	assert.Len(t, log, 2)
}

func TestAppendFIFOEviction(t *testing.T) {
	t.Parallel()

	var log []model.ScoreSnapshot
	dates := []string{"2026-08-01", "2026-08-02", "2026-08-03", "2026-08-04"}
	for i, d := range dates {
		log = Append(log, snap(d, float64(i), map[string]float64{"nis2": float64(i)}), 3)
	}

	require.Len(t, log, 3)
	assert.Equal(t, "2026-08-02", log[0].Date, "oldest entry evicted first")
	assert.Equal(t, "2026-08-04", log[2].Date)
}

func TestComputeTrend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		log          []model.ScoreSnapshot
		wantDir      model.TrendDirection
		wantDelta    float64
		wantCompared string
	}{
		{
			name:    "empty log is new",
			log:     nil,
			wantDir: model.TrendNew,
		},
		{
			name:         "single entry is new",
			log:          []model.ScoreSnapshot{snap("2026-08-01", 50, nil)},
			wantDir:      model.TrendNew,
			wantCompared: "2026-08-01",
		},
		{
			name: "upward",
			log: []model.ScoreSnapshot{
				snap("2026-08-01", 40, nil),
				snap("2026-08-02", 55, nil),
			},
			wantDir:      model.TrendUp,
			wantDelta:    15,
			wantCompared: "2026-08-01",
		},
		{
			name: "downward",
			log: []model.ScoreSnapshot{
				snap("2026-08-01", 70, nil),
				snap("2026-08-02", 61.5, nil),
			},
			wantDir:      model.TrendDown,
			wantDelta:    -8.5,
			wantCompared: "2026-08-01",
		},
		{
			name: "plateau compares against earliest tied date",
			log: []model.ScoreSnapshot{
				snap("2026-08-01", 50, nil),
				snap("2026-08-02", 50, nil),
				snap("2026-08-03", 50, nil),
			},
			wantDir:      model.TrendStable,
			wantDelta:    0,
			wantCompared: "2026-08-01",
		},
		{
			name: "skips intermediate ties to find last differing entry",
			log: []model.ScoreSnapshot{
				snap("2026-08-01", 40, nil),
				snap("2026-08-02", 55, nil),
				snap("2026-08-03", 55, nil),
			},
			wantDir:      model.TrendUp,
			wantDelta:    15,
			wantCompared: "2026-08-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ComputeTrend(tt.log)
			assert.Equal(t, tt.wantDir, got.Direction)
			assert.InDelta(t, tt.wantDelta, got.Delta, 1e-9)
			assert.Equal(t, tt.wantCompared, got.ComparedTo)
		})
	}
}

// fakeSnapshotStore is an in-memory SnapshotStore for recorder tests.
type fakeSnapshotStore struct {
	logs  map[string][]model.ScoreSnapshot
	saves int
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{logs: make(map[string][]model.ScoreSnapshot)}
}

func (f *fakeSnapshotStore) LoadSnapshots(_ context.Context, id string) ([]model.ScoreSnapshot, error) {
	return f.logs[id], nil
}

func (f *fakeSnapshotStore) SaveSnapshots(_ context.Context, id string, log []model.ScoreSnapshot) error {
	f.logs[id] = log
	f.saves++
	return nil
}

func TestRecorderAppendsAndSkips(t *testing.T) {
	t.Parallel()

	store := newFakeSnapshotStore()
	rec := NewRecorder(store, 10)
	rec.now = func() time.Time { return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	log, err := rec.Record(ctx, "a1", map[string]float64{"nis2": 50}, 50)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, "2026-08-28", log[0].Date)
	assert.Equal(t, 1, store.saves)

	// Identical scores: no save, log unchanged.
	log, err = rec.Record(ctx, "a1", map[string]float64{"nis2": 50}, 50)
	require.NoError(t, err)
	assert.Len(t, log, 1)
	assert.Equal(t, 1, store.saves)

	// Changed scores: appended and saved.
	log, err = rec.Record(ctx, "a1", map[string]float64{"nis2": 60}, 60)
	require.NoError(t, err)
	assert.Len(t, log, 2)
	assert.Equal(t, 2, store.saves)
}

func TestRecorderSerializesConcurrentAppends(t *testing.T) {
	t.Parallel()

	store := newFakeSnapshotStore()
	rec := NewRecorder(store, 10)
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			_, err := rec.Record(ctx, "a1", map[string]float64{"nis2": 50}, 50)
			assert.NoError(t, err)
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	// All callers raced on the same unchanged score set: exactly one
	// snapshot survives.
	assert.Len(t, store.logs["a1"], 1)
}
