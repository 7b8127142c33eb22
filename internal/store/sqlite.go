package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/compliance-hub/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS assessments (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	profile    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS answers (
	assessment_id TEXT NOT NULL REFERENCES assessments(id),
	regulation_id TEXT NOT NULL,
	question_id   TEXT NOT NULL,
	category_id   TEXT NOT NULL,
	level         INTEGER NOT NULL,
	updated_at    DATETIME NOT NULL DEFAULT (datetime('now')),
	PRIMARY KEY (assessment_id, regulation_id, question_id)
);

CREATE TABLE IF NOT EXISTS score_snapshots (
	assessment_id TEXT PRIMARY KEY REFERENCES assessments(id),
	log           TEXT NOT NULL,
	updated_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_answers_regulation ON answers(assessment_id, regulation_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateAssessment(ctx context.Context, name string, profile model.CompanyProfile) (*model.Assessment, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal profile")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO assessments (id, name, profile, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, name, string(profileJSON), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert assessment")
	}

	return &model.Assessment{
		ID:        id,
		Name:      name,
		Profile:   profile,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *SQLiteStore) GetAssessment(ctx context.Context, id string) (*model.Assessment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, profile, created_at, updated_at FROM assessments WHERE id = ?`,
		id,
	)
	return scanAssessment(row)
}

func (s *SQLiteStore) ListAssessments(ctx context.Context) ([]model.Assessment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, profile, created_at, updated_at FROM assessments ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list assessments")
	}
	defer rows.Close()

	var assessments []model.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, *a)
	}
	return assessments, eris.Wrap(rows.Err(), "sqlite: list assessments iterate")
}

func (s *SQLiteStore) UpdateProfile(ctx context.Context, id string, profile model.CompanyProfile) error {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal profile")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE assessments SET profile = ?, updated_at = ? WHERE id = ?`,
		string(profileJSON), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update profile %s", id)
	}
	return checkRowsAffected(res, "assessment", id)
}

func (s *SQLiteStore) SaveAnswers(ctx context.Context, assessmentID, regulationID string, answers []model.Answer) error {
	if len(answers) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin")
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	for _, a := range answers {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO answers (assessment_id, regulation_id, question_id, category_id, level, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (assessment_id, regulation_id, question_id)
			DO UPDATE SET category_id = excluded.category_id, level = excluded.level, updated_at = excluded.updated_at`,
			assessmentID, regulationID, a.QuestionID, a.CategoryID, int(a.Level), now,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: upsert answer %s", a.QuestionID)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit answers")
}

func (s *SQLiteStore) ListAnswers(ctx context.Context, assessmentID, regulationID string) ([]model.Answer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT question_id, category_id, level FROM answers
		 WHERE assessment_id = ? AND regulation_id = ?
		 ORDER BY question_id`,
		assessmentID, regulationID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list answers")
	}
	defer rows.Close()

	var answers []model.Answer
	for rows.Next() {
		var a model.Answer
		var level int
		if err := rows.Scan(&a.QuestionID, &a.CategoryID, &level); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan answer")
		}
		a.Level = model.MaturityLevel(level)
		answers = append(answers, a)
	}
	return answers, eris.Wrap(rows.Err(), "sqlite: list answers iterate")
}

func (s *SQLiteStore) AssessedRegulations(ctx context.Context, assessmentID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT regulation_id FROM answers WHERE assessment_id = ? ORDER BY regulation_id`,
		assessmentID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: assessed regulations")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan regulation id")
		}
		ids = append(ids, id)
	}
	return ids, eris.Wrap(rows.Err(), "sqlite: assessed regulations iterate")
}

func (s *SQLiteStore) LoadSnapshots(ctx context.Context, assessmentID string) ([]model.ScoreSnapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT log FROM score_snapshots WHERE assessment_id = ?`,
		assessmentID,
	)

	var logJSON string
	err := row.Scan(&logJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load snapshots")
	}

	var log []model.ScoreSnapshot
	if err := json.Unmarshal([]byte(logJSON), &log); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal snapshot log")
	}
	return log, nil
}

func (s *SQLiteStore) SaveSnapshots(ctx context.Context, assessmentID string, log []model.ScoreSnapshot) error {
	logJSON, err := json.Marshal(log)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal snapshot log")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO score_snapshots (assessment_id, log, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (assessment_id)
		DO UPDATE SET log = excluded.log, updated_at = excluded.updated_at`,
		assessmentID, string(logJSON), time.Now().UTC(),
	)
	return eris.Wrap(err, "sqlite: save snapshots")
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "%s %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanAssessment(row scannable) (*model.Assessment, error) {
	var a model.Assessment
	var profileJSON string

	err := row.Scan(&a.ID, &a.Name, &profileJSON, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan assessment")
	}

	if err := json.Unmarshal([]byte(profileJSON), &a.Profile); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal profile")
	}
	return &a, nil
}
