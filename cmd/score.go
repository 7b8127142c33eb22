package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/compliance-hub/internal/model"
	"github.com/sells-group/compliance-hub/internal/report"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Print maturity scores per regulation",
	Long: `Derives category and overall maturity scores for every assessed
regulation of an assessment. Scores are recomputed from the stored answers;
nothing is cached.

Examples:
  # Table output for all assessed regulations
  compliance-hub score --assessment <id>

  # CSV export
  compliance-hub score --assessment <id> --format csv --output scores.csv`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("assessment", "", "assessment ID (required)")
	f.String("format", "table", "output format: table or csv")
	f.String("output", "", "output file path (default: stdout)")
	_ = scoreCmd.MarkFlagRequired("assessment")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	assessmentID, _ := cmd.Flags().GetString("assessment")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	if format != "table" && format != "csv" {
		return eris.Errorf("score: --format must be table or csv (got %q)", format)
	}

	builder, st, _, err := newBuilder(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	if _, err := st.GetAssessment(ctx, assessmentID); err != nil {
		return eris.Wrapf(err, "score: assessment %s", assessmentID)
	}

	regs, err := builder.RegulationScores(ctx, assessmentID)
	if err != nil {
		return err
	}

	out, closeOut, err := outputWriter(outputPath)
	if err != nil {
		return err
	}
	defer closeOut() //nolint:errcheck

	if format == "csv" {
		return writeScoreCSV(out, regs)
	}
	formatScoreTable(out, regs)
	return nil
}

func formatScoreTable(out io.Writer, regs []model.RegulationReport) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "REGULATION\tCATEGORY\tSCORE\tLIGHT\tANSWERED")
	_, _ = fmt.Fprintln(w, "----------\t--------\t-----\t-----\t--------")

	for _, r := range regs {
		for _, c := range r.Overall.CategoryScores {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\t%d/%d\n",
				r.RegulationID, c.CategoryID, c.Percentage, c.TrafficLight,
				c.AnsweredQuestions, c.TotalQuestions,
			)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\t%d/%d\n",
			r.RegulationID, "OVERALL", r.Overall.Percentage, r.Overall.TrafficLight,
			r.Overall.AnsweredQuestions, r.Overall.TotalQuestions,
		)
	}

	if len(regs) > 1 {
		_, _ = fmt.Fprintf(w, "\t\t\t\t\n")
		_, _ = fmt.Fprintf(w, "ALL\tAVERAGE\t%.1f\t%s\t\n",
			report.OverallAverage(regs), model.LightFor(report.OverallAverage(regs)))
	}
	_ = w.Flush()
}

func writeScoreCSV(out io.Writer, regs []model.RegulationReport) error {
	w := csv.NewWriter(out)
	_ = w.Write([]string{"regulation", "category", "percentage", "traffic_light", "answered", "total"})

	for _, r := range regs {
		for _, c := range r.Overall.CategoryScores {
			_ = w.Write([]string{
				r.RegulationID, c.CategoryID,
				fmt.Sprintf("%.1f", c.Percentage), string(c.TrafficLight),
				fmt.Sprintf("%d", c.AnsweredQuestions), fmt.Sprintf("%d", c.TotalQuestions),
			})
		}
		_ = w.Write([]string{
			r.RegulationID, "overall",
			fmt.Sprintf("%.1f", r.Overall.Percentage), string(r.Overall.TrafficLight),
			fmt.Sprintf("%d", r.Overall.AnsweredQuestions), fmt.Sprintf("%d", r.Overall.TotalQuestions),
		})
	}

	w.Flush()
	return eris.Wrap(w.Error(), "score: write csv")
}
