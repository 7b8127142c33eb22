package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/compliance-hub/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgx.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresFromPool wraps an existing pool; used by tests.
func NewPostgresFromPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS assessments (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	profile    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS answers (
	assessment_id TEXT NOT NULL REFERENCES assessments(id),
	regulation_id TEXT NOT NULL,
	question_id   TEXT NOT NULL,
	category_id   TEXT NOT NULL,
	level         INTEGER NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (assessment_id, regulation_id, question_id)
);

CREATE TABLE IF NOT EXISTS score_snapshots (
	assessment_id TEXT PRIMARY KEY REFERENCES assessments(id),
	log           JSONB NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_answers_regulation ON answers(assessment_id, regulation_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateAssessment(ctx context.Context, name string, profile model.CompanyProfile) (*model.Assessment, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal profile")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO assessments (id, name, profile, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		id, name, profileJSON, now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert assessment")
	}

	return &model.Assessment{
		ID:        id,
		Name:      name,
		Profile:   profile,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *PostgresStore) GetAssessment(ctx context.Context, id string) (*model.Assessment, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, profile, created_at, updated_at FROM assessments WHERE id = $1`,
		id,
	)

	var a model.Assessment
	var profileJSON []byte
	err := row.Scan(&a.ID, &a.Name, &profileJSON, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan assessment")
	}
	if err := json.Unmarshal(profileJSON, &a.Profile); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal profile")
	}
	return &a, nil
}

func (s *PostgresStore) ListAssessments(ctx context.Context) ([]model.Assessment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, profile, created_at, updated_at FROM assessments ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list assessments")
	}
	defer rows.Close()

	var assessments []model.Assessment
	for rows.Next() {
		var a model.Assessment
		var profileJSON []byte
		if err := rows.Scan(&a.ID, &a.Name, &profileJSON, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan assessment")
		}
		if err := json.Unmarshal(profileJSON, &a.Profile); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal profile")
		}
		assessments = append(assessments, a)
	}
	return assessments, eris.Wrap(rows.Err(), "postgres: list assessments iterate")
}

func (s *PostgresStore) UpdateProfile(ctx context.Context, id string, profile model.CompanyProfile) error {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal profile")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE assessments SET profile = $1, updated_at = $2 WHERE id = $3`,
		profileJSON, time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update profile %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "assessment %s", id)
	}
	return nil
}

func (s *PostgresStore) SaveAnswers(ctx context.Context, assessmentID, regulationID string, answers []model.Answer) error {
	now := time.Now().UTC()
	for _, a := range answers {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO answers (assessment_id, regulation_id, question_id, category_id, level, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (assessment_id, regulation_id, question_id)
			DO UPDATE SET category_id = EXCLUDED.category_id, level = EXCLUDED.level, updated_at = EXCLUDED.updated_at`,
			assessmentID, regulationID, a.QuestionID, a.CategoryID, int(a.Level), now,
		)
		if err != nil {
			return eris.Wrapf(err, "postgres: upsert answer %s", a.QuestionID)
		}
	}
	return nil
}

func (s *PostgresStore) ListAnswers(ctx context.Context, assessmentID, regulationID string) ([]model.Answer, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT question_id, category_id, level FROM answers
		 WHERE assessment_id = $1 AND regulation_id = $2
		 ORDER BY question_id`,
		assessmentID, regulationID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list answers")
	}
	defer rows.Close()

	var answers []model.Answer
	for rows.Next() {
		var a model.Answer
		var level int
		if err := rows.Scan(&a.QuestionID, &a.CategoryID, &level); err != nil {
			return nil, eris.Wrap(err, "postgres: scan answer")
		}
		a.Level = model.MaturityLevel(level)
		answers = append(answers, a)
	}
	return answers, eris.Wrap(rows.Err(), "postgres: list answers iterate")
}

func (s *PostgresStore) AssessedRegulations(ctx context.Context, assessmentID string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT regulation_id FROM answers WHERE assessment_id = $1 ORDER BY regulation_id`,
		assessmentID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: assessed regulations")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, eris.Wrap(err, "postgres: scan regulation id")
		}
		ids = append(ids, id)
	}
	return ids, eris.Wrap(rows.Err(), "postgres: assessed regulations iterate")
}

func (s *PostgresStore) LoadSnapshots(ctx context.Context, assessmentID string) ([]model.ScoreSnapshot, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT log FROM score_snapshots WHERE assessment_id = $1`,
		assessmentID,
	)

	var logJSON []byte
	err := row.Scan(&logJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load snapshots")
	}

	var log []model.ScoreSnapshot
	if err := json.Unmarshal(logJSON, &log); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal snapshot log")
	}
	return log, nil
}

func (s *PostgresStore) SaveSnapshots(ctx context.Context, assessmentID string, log []model.ScoreSnapshot) error {
	logJSON, err := json.Marshal(log)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal snapshot log")
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO score_snapshots (assessment_id, log, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (assessment_id)
		DO UPDATE SET log = EXCLUDED.log, updated_at = EXCLUDED.updated_at`,
		assessmentID, logJSON, time.Now().UTC(),
	)
	return eris.Wrap(err, "postgres: save snapshots")
}
