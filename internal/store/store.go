// Package store persists assessments, raw answers, and the score snapshot
// log. The engines never touch the store directly: callers read a full
// answer set once, then hand it to the pure computation layer.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/compliance-hub/internal/model"
)

// Store defines the persistence interface for the assessment hub.
type Store interface {
	// Assessments
	CreateAssessment(ctx context.Context, name string, profile model.CompanyProfile) (*model.Assessment, error)
	GetAssessment(ctx context.Context, id string) (*model.Assessment, error)
	ListAssessments(ctx context.Context) ([]model.Assessment, error)
	UpdateProfile(ctx context.Context, id string, profile model.CompanyProfile) error

	// Answers. Saving upserts by question ID: resubmission overwrites.
	SaveAnswers(ctx context.Context, assessmentID, regulationID string, answers []model.Answer) error
	ListAnswers(ctx context.Context, assessmentID, regulationID string) ([]model.Answer, error)
	AssessedRegulations(ctx context.Context, assessmentID string) ([]string, error)

	// Score snapshot log, treated as one opaque ordered document.
	LoadSnapshots(ctx context.Context, assessmentID string) ([]model.ScoreSnapshot, error)
	SaveSnapshots(ctx context.Context, assessmentID string, log []model.ScoreSnapshot) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// ErrNotFound is returned when a requested assessment does not exist.
var ErrNotFound = eris.New("store: not found")

// Open creates a Store for the configured driver.
func Open(ctx context.Context, driver, databaseURL string) (Store, error) {
	switch driver {
	case "sqlite", "":
		return NewSQLite(databaseURL)
	case "postgres":
		return NewPostgres(ctx, databaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}
