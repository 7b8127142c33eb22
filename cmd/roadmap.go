package main

import (
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/compliance-hub/internal/model"
	"github.com/sells-group/compliance-hub/internal/report"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Consolidated remediation roadmap with cost estimates",
	Long: `Builds the consolidated remediation roadmap across all assessed
regulations. Measures shared by several regulations appear once; their cost
is counted once. Costs scale with the company size factor and shrink for
categories already scoring yellow or green.

Examples:
  compliance-hub roadmap --assessment <id>
  compliance-hub roadmap --assessment <id> --format xlsx --output roadmap.xlsx`,
	RunE: runRoadmap,
}

func init() {
	f := roadmapCmd.Flags()
	f.String("assessment", "", "assessment ID (required)")
	f.String("format", "table", "output format: table, csv, or xlsx")
	f.String("output", "", "output file path (default: stdout; required for xlsx)")
	_ = roadmapCmd.MarkFlagRequired("assessment")

	rootCmd.AddCommand(roadmapCmd)
}

func runRoadmap(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	assessmentID, _ := cmd.Flags().GetString("assessment")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	switch format {
	case "table", "csv", "xlsx":
	default:
		return eris.Errorf("roadmap: --format must be table, csv, or xlsx (got %q)", format)
	}
	if format == "xlsx" && outputPath == "" {
		return eris.New("roadmap: --output is required for xlsx")
	}

	builder, st, _, err := newBuilder(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	rep, err := builder.Build(ctx, assessmentID)
	if err != nil {
		return err
	}

	out, closeOut, err := outputWriter(outputPath)
	if err != nil {
		return err
	}
	defer closeOut() //nolint:errcheck

	switch format {
	case "csv":
		return report.WriteCSV(out, rep)
	case "xlsx":
		return report.WriteXLSX(out, rep)
	default:
		formatRoadmapTable(out, rep.Roadmap, newFormatter())
		return nil
	}
}

func formatRoadmapTable(out io.Writer, plan model.Roadmap, f *report.Formatter) {
	if len(plan.RegulationsUsed) == 0 {
		_, _ = fmt.Fprintln(out, "No regulations with recorded answers.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, phase := range plan.Phases {
		_, _ = fmt.Fprintf(w, "\n%s (%s)\n", phase.Name, f.MoneyRange(phase.CostMin, phase.CostMax))
		_, _ = fmt.Fprintln(w, "MEASURE\tPRIORITY\tREGULATIONS\tDAYS\tEXTERNAL COST")
		_, _ = fmt.Fprintln(w, "-------\t--------\t-----------\t----\t-------------")
		for _, item := range phase.Items {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				item.TitleKey, item.Priority, strings.Join(item.Regulations, ","),
				f.Days(item.InternalDaysMin, item.InternalDaysMax),
				f.MoneyRange(item.ExternalCostMin, item.ExternalCostMax),
			)
		}
	}
	_, _ = fmt.Fprintf(w, "\nTOTAL\t\t\t%s\t%s\n",
		f.Days(plan.TotalDaysMin, plan.TotalDaysMax),
		f.MoneyRange(plan.TotalCostMin, plan.TotalCostMax),
	)
	_ = w.Flush()
}
