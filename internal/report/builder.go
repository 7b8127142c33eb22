// Package report assembles the consolidated cross-regulation view of an
// assessment and renders it to CSV, XLSX, and PDF.
package report

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/compliance-hub/internal/history"
	"github.com/sells-group/compliance-hub/internal/model"
	"github.com/sells-group/compliance-hub/internal/overlap"
	"github.com/sells-group/compliance-hub/internal/penalty"
	"github.com/sells-group/compliance-hub/internal/pillar"
	"github.com/sells-group/compliance-hub/internal/registry"
	"github.com/sells-group/compliance-hub/internal/roadmap"
	"github.com/sells-group/compliance-hub/internal/scoring"
	"github.com/sells-group/compliance-hub/internal/store"
)

// Builder derives reports from stored answers and the embedded catalogues.
type Builder struct {
	store store.Store
	reg   *registry.Registry
}

func NewBuilder(st store.Store, reg *registry.Registry) *Builder {
	return &Builder{store: st, reg: reg}
}

// RegulationScores scores every assessed regulation of an assessment.
// Results follow catalogue order, not assessment order.
func (b *Builder) RegulationScores(ctx context.Context, assessmentID string) ([]model.RegulationReport, error) {
	assessed, err := b.store.AssessedRegulations(ctx, assessmentID)
	if err != nil {
		return nil, eris.Wrap(err, "report: assessed regulations")
	}

	assessedSet := make(map[string]bool, len(assessed))
	for _, id := range assessed {
		assessedSet[id] = true
	}

	var ids []string
	for _, id := range b.reg.RegulationIDs() {
		if assessedSet[id] {
			ids = append(ids, id)
		}
	}

	reports := make([]model.RegulationReport, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			regulation, ok := b.reg.Regulation(id)
			if !ok {
				// Answers for a regulation that left the catalogue are kept
				// in the store but excluded from every derived view.
				zap.L().Warn("skipping unknown regulation", zap.String("regulation", id))
				return nil
			}
			answers, err := b.store.ListAnswers(gctx, assessmentID, id)
			if err != nil {
				return eris.Wrapf(err, "report: answers for %s", id)
			}
			reports[i] = model.RegulationReport{
				RegulationID: id,
				Name:         regulation.Name,
				Overall:      scoring.ScoreOverall(answers, regulation.Categories),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := reports[:0]
	for _, r := range reports {
		if r.RegulationID != "" {
			out = append(out, r)
		}
	}
	return out, nil
}

// Build assembles the full consolidated report for one assessment.
func (b *Builder) Build(ctx context.Context, assessmentID string) (*model.Report, error) {
	assessment, err := b.store.GetAssessment(ctx, assessmentID)
	if err != nil {
		return nil, eris.Wrapf(err, "report: assessment %s", assessmentID)
	}

	regReports, err := b.RegulationScores(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	perRegulation := make(map[string]model.OverallScore, len(regReports))
	scores := make(map[string]float64, len(regReports))
	assessedSet := make(map[string]bool, len(regReports))
	var assessedIDs []string
	for _, r := range regReports {
		perRegulation[r.RegulationID] = r.Overall
		scores[r.RegulationID] = r.Overall.Percentage
		assessedSet[r.RegulationID] = true
		assessedIDs = append(assessedIDs, r.RegulationID)
	}

	pillars := pillar.Score(b.reg.Pillars, pillar.BuildLookup(perRegulation), assessedSet)
	synergies := overlap.Annotate(overlap.FindSynergies(b.reg.Overlaps, assessedIDs), scores)

	roadmapInputs := make([]roadmap.RegulationInput, 0, len(regReports))
	for _, r := range regReports {
		regulation, _ := b.reg.Regulation(r.RegulationID)
		answers, err := b.store.ListAnswers(ctx, assessmentID, r.RegulationID)
		if err != nil {
			return nil, eris.Wrapf(err, "report: answers for %s", r.RegulationID)
		}
		roadmapInputs = append(roadmapInputs, roadmap.RegulationInput{
			RegulationID:    r.RegulationID,
			Answers:         answers,
			Categories:      regulation.Categories,
			Recommendations: regulation.Recommendations,
		})
	}
	plan := roadmap.Build(roadmapInputs, b.reg.Costs, assessment.Profile.SizeFactor)

	exposure := penalty.Calculate(b.reg.PenaltyTable, assessment.Profile.Classification, assessment.Profile.AnnualRevenue)

	log, err := b.store.LoadSnapshots(ctx, assessmentID)
	if err != nil {
		return nil, eris.Wrap(err, "report: load snapshots")
	}

	return &model.Report{
		Assessment:  *assessment,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Regulations: regReports,
		Pillars:     pillars,
		Synergies:   synergies,
		Roadmap:     plan,
		Penalty:     exposure,
		Trend:       history.ComputeTrend(log),
	}, nil
}

// OverallAverage is the unweighted mean of the regulation percentages,
// rounded to one decimal. Zero when nothing has been assessed.
func OverallAverage(regs []model.RegulationReport) float64 {
	if len(regs) == 0 {
		return 0
	}
	var sum float64
	for _, r := range regs {
		sum += r.Overall.Percentage
	}
	return model.Round1(sum / float64(len(regs)))
}

// Scores maps regulation IDs to their overall percentages, the shape the
// snapshot log stores.
func Scores(regs []model.RegulationReport) map[string]float64 {
	out := make(map[string]float64, len(regs))
	for _, r := range regs {
		out[r.RegulationID] = r.Overall.Percentage
	}
	return out
}
