package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/compliance-hub/internal/model"
	"github.com/sells-group/compliance-hub/internal/overlap"
	"github.com/sells-group/compliance-hub/internal/report"
)

var synergiesCmd = &cobra.Command{
	Use:   "synergies",
	Short: "Ranked overlap between assessed regulations",
	Long: `Lists the authored overlap estimates for every pair of assessed
regulations, ranked by overlap percentage. Overlap values come from the
catalogue, never from scores.`,
	RunE: runSynergies,
}

func init() {
	synergiesCmd.Flags().String("assessment", "", "assessment ID (required)")
	_ = synergiesCmd.MarkFlagRequired("assessment")

	rootCmd.AddCommand(synergiesCmd)
}

func runSynergies(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	assessmentID, _ := cmd.Flags().GetString("assessment")

	builder, st, reg, err := newBuilder(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	if _, err := st.GetAssessment(ctx, assessmentID); err != nil {
		return eris.Wrapf(err, "synergies: assessment %s", assessmentID)
	}

	regs, err := builder.RegulationScores(ctx, assessmentID)
	if err != nil {
		return err
	}

	assessedIDs := make([]string, 0, len(regs))
	for _, r := range regs {
		assessedIDs = append(assessedIDs, r.RegulationID)
	}

	entries := overlap.Annotate(overlap.FindSynergies(reg.Overlaps, assessedIDs), report.Scores(regs))
	formatSynergyTable(os.Stdout, entries)
	return nil
}

func formatSynergyTable(out io.Writer, entries []model.SynergyEntry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(out, "No overlap pairs among the assessed regulations.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PAIR\tOVERLAP\tSCORE A\tSCORE B\tSHARED MEASURES")
	_, _ = fmt.Fprintln(w, "----\t-------\t-------\t-------\t---------------")
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%s/%s\t%.0f%%\t%s\t%s\t%s\n",
			e.RegA, e.RegB, e.OverlapPercent,
			formatScorePtr(e.RegAScore), formatScorePtr(e.RegBScore),
			strings.Join(e.SharedMeasureKeys, ", "),
		)
	}
	_ = w.Flush()
}

func formatScorePtr(s *float64) string {
	if s == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", *s)
}
