package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/compliance-hub/internal/model"
	"github.com/sells-group/compliance-hub/internal/registry"
)

var regulationsCmd = &cobra.Command{
	Use:   "regulations",
	Short: "List the regulation catalogue",
	RunE:  runRegulations,
}

func init() {
	regulationsCmd.Flags().Bool("categories", false, "show categories per regulation")

	rootCmd.AddCommand(regulationsCmd)
}

func runRegulations(cmd *cobra.Command, _ []string) error {
	showCategories, _ := cmd.Flags().GetBool("categories")

	reg, err := registry.Load()
	if err != nil {
		return err
	}

	formatRegulations(os.Stdout, reg.Regulations, showCategories)
	return nil
}

func formatRegulations(out io.Writer, regulations []model.Regulation, showCategories bool) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tCATEGORIES\tQUESTIONS")
	_, _ = fmt.Fprintln(w, "--\t----\t----------\t---------")
	for _, r := range regulations {
		total := 0
		for _, c := range r.Categories {
			total += c.TotalQuestions
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", r.ID, r.Name, len(r.Categories), total)

		if showCategories {
			for _, c := range r.Categories {
				_, _ = fmt.Fprintf(w, "  %s\t%s\t\t%d\n", c.ID, c.Name, c.TotalQuestions)
			}
		}
	}
	_ = w.Flush()
}
