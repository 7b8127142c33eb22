package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/compliance-hub/internal/model"
)

// WriteCSV renders the report as a flat CSV with one section per concern.
// Sections are separated by a blank record so the file stays loadable in
// spreadsheet tools.
func WriteCSV(w io.Writer, rep *model.Report) error {
	cw := csv.NewWriter(w)

	write := func(record ...string) {
		cw.Write(record) //nolint:errcheck
	}

	write("section", "regulation", "name", "percentage", "traffic_light", "answered", "total")
	for _, r := range rep.Regulations {
		write("regulation",
			r.RegulationID,
			r.Name,
			fmt.Sprintf("%.1f", r.Overall.Percentage),
			string(r.Overall.TrafficLight),
			fmt.Sprintf("%d", r.Overall.AnsweredQuestions),
			fmt.Sprintf("%d", r.Overall.TotalQuestions),
		)
	}
	write()

	for _, p := range rep.Pillars {
		score, light := "n/a", "n/a"
		if p.Score != nil {
			score = fmt.Sprintf("%.1f", *p.Score)
			light = string(*p.TrafficLight)
		}
		write("pillar", p.PillarID, "", score, light,
			fmt.Sprintf("%d", p.RegulationsWithData),
			fmt.Sprintf("%d", p.RegulationsTotal),
		)
	}
	write()

	for _, phase := range rep.Roadmap.Phases {
		for _, item := range phase.Items {
			write("roadmap",
				strings.Join(item.Regulations, "|"),
				item.TitleKey,
				fmt.Sprintf("%.0f-%.0f", item.ExternalCostMin, item.ExternalCostMax),
				string(item.Priority),
				string(item.Effort),
				phase.Name,
			)
		}
	}
	write()

	write("penalty",
		string(rep.Penalty.Classification),
		rep.Penalty.LegalReference,
		fmt.Sprintf("%.0f", rep.Penalty.EffectiveMaxPenalty),
		fmt.Sprintf("%.0f", rep.Penalty.MaxPenaltyAbsolute),
		fmt.Sprintf("%.0f", rep.Penalty.MaxPenaltyRevenueBased),
		fmt.Sprintf("%.1f", rep.Penalty.RevenuePercentage),
	)

	cw.Flush()
	return eris.Wrap(cw.Error(), "report: write csv")
}
