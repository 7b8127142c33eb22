package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/compliance-hub/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewPostgresFromPool(mock), mock
}

func TestPostgresStore_GetAssessment_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, name, profile, created_at, updated_at FROM assessments WHERE id = \$1`).
		WithArgs("nonexistent").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetAssessment(context.Background(), "nonexistent")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateAssessment(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO assessments`).
		WithArgs(pgxmock.AnyArg(), "Acme GmbH", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	a, err := s.CreateAssessment(context.Background(), "Acme GmbH", testProfile())
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "Acme GmbH", a.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveAnswers_Upsert(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`ON CONFLICT`).
		WithArgs("a1", "nis2", "q1", "incident", 3, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.SaveAnswers(context.Background(), "a1", "nis2", []model.Answer{
		{QuestionID: "q1", CategoryID: "incident", Level: 3},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListAnswers(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT question_id, category_id, level FROM answers`).
		WithArgs("a1", "nis2").
		WillReturnRows(pgxmock.NewRows([]string{"question_id", "category_id", "level"}).
			AddRow("q1", "incident", 3).
			AddRow("q2", "incident", 1))

	got, err := s.ListAnswers(context.Background(), "a1", "nis2")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.MaturityLevel(3), got[0].Level)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_AssessedRegulations(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT DISTINCT regulation_id FROM answers`).
		WithArgs("a1").
		WillReturnRows(pgxmock.NewRows([]string{"regulation_id"}).
			AddRow("gdpr").
			AddRow("nis2"))

	got, err := s.AssessedRegulations(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, []string{"gdpr", "nis2"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadSnapshots_Missing(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT log FROM score_snapshots`).
		WithArgs("a1").
		WillReturnError(pgx.ErrNoRows)

	log, err := s.LoadSnapshots(context.Background(), "a1")
	require.NoError(t, err)
	assert.Nil(t, log)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveSnapshots_Upsert(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`ON CONFLICT`).
		WithArgs("a1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.SaveSnapshots(context.Background(), "a1", []model.ScoreSnapshot{
		{Date: "2026-08-28", Scores: map[string]float64{"nis2": 50}, OverallAvg: 50},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateProfile_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE assessments SET profile`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.UpdateProfile(context.Background(), "missing", testProfile())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
