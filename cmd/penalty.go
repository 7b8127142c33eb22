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
	"github.com/sells-group/compliance-hub/internal/penalty"
	"github.com/sells-group/compliance-hub/internal/registry"
	"github.com/sells-group/compliance-hub/internal/report"
)

var penaltyCmd = &cobra.Command{
	Use:   "penalty",
	Short: "Maximum penalty exposure for an assessment's profile",
	Long: `Derives the maximum penalty exposure: the greater of the absolute cap
and the revenue-based cap for the organization's classification tier.

Without --assessment, calculates from --classification and --revenue directly.`,
	RunE: runPenalty,
}

func init() {
	f := penaltyCmd.Flags()
	f.String("assessment", "", "assessment ID")
	f.String("classification", "", "classification tier (ad hoc mode)")
	f.Float64("revenue", 0, "annual revenue in EUR (ad hoc mode)")

	rootCmd.AddCommand(penaltyCmd)
}

func runPenalty(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	assessmentID, _ := cmd.Flags().GetString("assessment")
	classification, _ := cmd.Flags().GetString("classification")
	revenue, _ := cmd.Flags().GetFloat64("revenue")

	reg, err := registry.Load()
	if err != nil {
		return err
	}

	var profile model.CompanyProfile
	switch {
	case assessmentID != "":
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		a, err := st.GetAssessment(ctx, assessmentID)
		if err != nil {
			return eris.Wrapf(err, "penalty: assessment %s", assessmentID)
		}
		profile = a.Profile
	case classification != "":
		profile = model.CompanyProfile{
			Classification: model.Classification(classification),
			AnnualRevenue:  revenue,
		}
	default:
		return eris.New("penalty: pass --assessment or --classification")
	}

	calc := penalty.Calculate(reg.PenaltyTable, profile.Classification, profile.AnnualRevenue)
	formatPenalty(os.Stdout, calc, newFormatter())
	return nil
}

func formatPenalty(out io.Writer, calc model.PenaltyCalculation, f *report.Formatter) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Classification:\t%s\n", calc.Classification)
	_, _ = fmt.Fprintf(w, "Legal basis:\t%s\n", calc.LegalReference)
	_, _ = fmt.Fprintf(w, "Annual revenue:\t%s\n", f.Money(calc.AnnualRevenue))
	_, _ = fmt.Fprintf(w, "Absolute cap:\t%s\n", f.Money(calc.MaxPenaltyAbsolute))
	_, _ = fmt.Fprintf(w, "Revenue-based cap (%.1f%%):\t%s\n", calc.RevenuePercentage, f.Money(calc.MaxPenaltyRevenueBased))
	_, _ = fmt.Fprintf(w, "Effective maximum:\t%s\n", f.Money(calc.EffectiveMaxPenalty))
	_ = w.Flush()
}
