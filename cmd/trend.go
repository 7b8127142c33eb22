package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/compliance-hub/internal/history"
	"github.com/sells-group/compliance-hub/internal/model"
	"github.com/sells-group/compliance-hub/internal/report"
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Score history and trend direction",
	Long: `Shows the recorded score snapshots of an assessment and the trend of
the overall average. With --record, today's scores are appended first;
recording is skipped when the scores are unchanged since the last snapshot.`,
	RunE: runTrend,
}

func init() {
	f := trendCmd.Flags()
	f.String("assessment", "", "assessment ID (required)")
	f.Bool("record", false, "record today's scores before printing")
	_ = trendCmd.MarkFlagRequired("assessment")

	rootCmd.AddCommand(trendCmd)
}

func runTrend(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	assessmentID, _ := cmd.Flags().GetString("assessment")
	record, _ := cmd.Flags().GetBool("record")

	builder, st, _, err := newBuilder(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	if _, err := st.GetAssessment(ctx, assessmentID); err != nil {
		return eris.Wrapf(err, "trend: assessment %s", assessmentID)
	}

	var log []model.ScoreSnapshot
	if record {
		regs, err := builder.RegulationScores(ctx, assessmentID)
		if err != nil {
			return err
		}
		recorder := history.NewRecorder(st, cfg.History.Retention)
		log, err = recorder.Record(ctx, assessmentID, report.Scores(regs), report.OverallAverage(regs))
		if err != nil {
			return eris.Wrap(err, "trend: record")
		}
		zap.L().Info("snapshot recorded", zap.String("assessment", assessmentID), zap.Int("snapshots", len(log)))
	} else {
		log, err = st.LoadSnapshots(ctx, assessmentID)
		if err != nil {
			return eris.Wrap(err, "trend: load snapshots")
		}
	}

	formatTrend(os.Stdout, log, history.ComputeTrend(log))
	return nil
}

func formatTrend(out io.Writer, log []model.ScoreSnapshot, trend model.TrendInfo) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DATE\tOVERALL AVG")
	_, _ = fmt.Fprintln(w, "----\t-----------")
	for _, snap := range log {
		_, _ = fmt.Fprintf(w, "%s\t%.1f\n", snap.Date, snap.OverallAvg)
	}
	_ = w.Flush()

	switch trend.Direction {
	case model.TrendNew:
		_, _ = fmt.Fprintln(out, "\nTrend: new (not enough history)")
	case model.TrendStable:
		_, _ = fmt.Fprintf(out, "\nTrend: stable since %s\n", trend.ComparedTo)
	default:
		_, _ = fmt.Fprintf(out, "\nTrend: %s %+.1f since %s\n", trend.Direction, trend.Delta, trend.ComparedTo)
	}
}
