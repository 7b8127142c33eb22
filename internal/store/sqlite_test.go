package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/compliance-hub/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func testProfile() model.CompanyProfile {
	return model.CompanyProfile{
		Classification: model.ClassificationEssential,
		AnnualRevenue:  250_000_000,
		SizeFactor:     1.5,
	}
}

// --- Assessments ---

func TestSQLite_Assessment_CreateAndGet(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	created, err := st.CreateAssessment(ctx, "Acme GmbH", testProfile())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := st.GetAssessment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme GmbH", got.Name)
	assert.Equal(t, model.ClassificationEssential, got.Profile.Classification)
	assert.InDelta(t, 250_000_000, got.Profile.AnnualRevenue, 1e-9)
	assert.InDelta(t, 1.5, got.Profile.SizeFactor, 1e-9)
}

func TestSQLite_Assessment_GetMissing(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.GetAssessment(context.Background(), "nonexistent")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSQLite_Assessment_List(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.CreateAssessment(ctx, "First", testProfile())
	require.NoError(t, err)
	_, err = st.CreateAssessment(ctx, "Second", testProfile())
	require.NoError(t, err)

	list, err := st.ListAssessments(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestSQLite_Assessment_UpdateProfile(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	created, err := st.CreateAssessment(ctx, "Acme", testProfile())
	require.NoError(t, err)

	updated := testProfile()
	updated.Classification = model.ClassificationImportant
	require.NoError(t, st.UpdateProfile(ctx, created.ID, updated))

	got, err := st.GetAssessment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ClassificationImportant, got.Profile.Classification)

	err = st.UpdateProfile(ctx, "missing", updated)
	assert.True(t, errors.Is(err, ErrNotFound))
}

// --- Answers ---

func TestSQLite_Answers_SaveAndList(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	a, err := st.CreateAssessment(ctx, "Acme", testProfile())
	require.NoError(t, err)

	answers := []model.Answer{
		{QuestionID: "q1", CategoryID: "incident", Level: 3},
		{QuestionID: "q2", CategoryID: "incident", Level: 1},
	}
	require.NoError(t, st.SaveAnswers(ctx, a.ID, "nis2", answers))

	got, err := st.ListAnswers(ctx, a.ID, "nis2")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.MaturityLevel(3), got[0].Level)
}

func TestSQLite_Answers_ResubmissionOverwrites(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	a, err := st.CreateAssessment(ctx, "Acme", testProfile())
	require.NoError(t, err)

	require.NoError(t, st.SaveAnswers(ctx, a.ID, "nis2", []model.Answer{
		{QuestionID: "q1", CategoryID: "incident", Level: 0},
	}))
	require.NoError(t, st.SaveAnswers(ctx, a.ID, "nis2", []model.Answer{
		{QuestionID: "q1", CategoryID: "incident", Level: 2},
	}))

	got, err := st.ListAnswers(ctx, a.ID, "nis2")
	require.NoError(t, err)
	require.Len(t, got, 1, "same question must overwrite, not duplicate")
	assert.Equal(t, model.MaturityLevel(2), got[0].Level)
}

func TestSQLite_Answers_RegulationsAreIndependent(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	a, err := st.CreateAssessment(ctx, "Acme", testProfile())
	require.NoError(t, err)

	require.NoError(t, st.SaveAnswers(ctx, a.ID, "nis2", []model.Answer{
		{QuestionID: "q1", CategoryID: "incident", Level: 3},
	}))
	require.NoError(t, st.SaveAnswers(ctx, a.ID, "gdpr", []model.Answer{
		{QuestionID: "q1", CategoryID: "breach", Level: 1},
	}))

	nis2, err := st.ListAnswers(ctx, a.ID, "nis2")
	require.NoError(t, err)
	require.Len(t, nis2, 1)
	assert.Equal(t, "incident", nis2[0].CategoryID)

	regs, err := st.AssessedRegulations(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"gdpr", "nis2"}, regs)
}

func TestSQLite_Answers_EmptySaveIsNoOp(t *testing.T) {
	st := newTestSQLiteStore(t)
	require.NoError(t, st.SaveAnswers(context.Background(), "a1", "nis2", nil))
}

// --- Snapshots ---

func TestSQLite_Snapshots_RoundTrip(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	a, err := st.CreateAssessment(ctx, "Acme", testProfile())
	require.NoError(t, err)

	log, err := st.LoadSnapshots(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, log, "missing log loads as empty")

	saved := []model.ScoreSnapshot{
		{Date: "2026-08-01", Scores: map[string]float64{"nis2": 50}, OverallAvg: 50},
		{Date: "2026-08-15", Scores: map[string]float64{"nis2": 62.5}, OverallAvg: 62.5},
	}
	require.NoError(t, st.SaveSnapshots(ctx, a.ID, saved))

	got, err := st.LoadSnapshots(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	// Saving again replaces the document.
	require.NoError(t, st.SaveSnapshots(ctx, a.ID, saved[:1]))
	got, err = st.LoadSnapshots(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

// --- Factory ---

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "")
	assert.Error(t, err)
}

func TestOpenSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "open.db")
	st, err := Open(context.Background(), "sqlite", dbPath)
	require.NoError(t, err)
	require.NoError(t, st.Close())
}
