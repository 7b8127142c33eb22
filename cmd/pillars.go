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

	"github.com/sells-group/compliance-hub/internal/model"
	"github.com/sells-group/compliance-hub/internal/pillar"
)

var pillarsCmd = &cobra.Command{
	Use:   "pillars",
	Short: "Cross-regulation pillar view",
	Long: `Aggregates equivalent controls across regulations into pillars.
A pillar without any assessed component shows n/a rather than zero.`,
	RunE: runPillars,
}

func init() {
	pillarsCmd.Flags().String("assessment", "", "assessment ID (required)")
	_ = pillarsCmd.MarkFlagRequired("assessment")

	rootCmd.AddCommand(pillarsCmd)
}

func runPillars(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	assessmentID, _ := cmd.Flags().GetString("assessment")

	builder, st, reg, err := newBuilder(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	if _, err := st.GetAssessment(ctx, assessmentID); err != nil {
		return eris.Wrapf(err, "pillars: assessment %s", assessmentID)
	}

	regs, err := builder.RegulationScores(ctx, assessmentID)
	if err != nil {
		return err
	}

	perRegulation := make(map[string]model.OverallScore, len(regs))
	assessed := make(map[string]bool, len(regs))
	for _, r := range regs {
		perRegulation[r.RegulationID] = r.Overall
		assessed[r.RegulationID] = true
	}

	scores := pillar.Score(reg.Pillars, pillar.BuildLookup(perRegulation), assessed)
	formatPillarTable(os.Stdout, reg.Pillars, scores)
	return nil
}

func formatPillarTable(out io.Writer, pillars []model.Pillar, scores []model.PillarScore) {
	names := make(map[string]string, len(pillars))
	for _, p := range pillars {
		names[p.ID] = p.Name
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PILLAR\tSCORE\tLIGHT\tCOVERAGE")
	_, _ = fmt.Fprintln(w, "------\t-----\t-----\t--------")
	for _, s := range scores {
		score, light := "n/a", "n/a"
		if s.Score != nil {
			score = fmt.Sprintf("%.1f", *s.Score)
			light = string(*s.TrafficLight)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\n",
			names[s.PillarID], score, light, s.RegulationsWithData, s.RegulationsTotal)
	}
	_ = w.Flush()
}
