package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/rotisserie/eris"

	"github.com/sells-group/compliance-hub/internal/model"
)

type pdfDoc struct {
	pdf *gofpdf.Fpdf
	fmt *Formatter
}

// WritePDF renders the report as an A4 management summary.
func WritePDF(w io.Writer, rep *model.Report, f *Formatter) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	d := &pdfDoc{pdf: pdf, fmt: f}

	d.title(rep)
	d.regulationBars(rep)
	d.pillarTable(rep)
	d.synergyTable(rep)
	d.roadmapTable(rep)
	d.penaltyBlock(rep)

	return eris.Wrap(pdf.Output(w), "report: write pdf")
}

func (d *pdfDoc) title(rep *model.Report) {
	d.pdf.SetFont("Arial", "B", 20)
	d.pdf.SetTextColor(33, 37, 41)
	d.pdf.CellFormat(0, 15, "Compliance Report: "+rep.Assessment.Name, "", 1, "C", false, 0, "")

	d.pdf.SetFont("Arial", "", 10)
	d.pdf.SetTextColor(108, 117, 125)
	subtitle := "Generated " + rep.GeneratedAt
	if rep.Trend.Direction != model.TrendNew {
		subtitle += fmt.Sprintf("  |  trend %s (%+.1f since %s)", rep.Trend.Direction, rep.Trend.Delta, rep.Trend.ComparedTo)
	}
	d.pdf.CellFormat(0, 8, subtitle, "", 1, "C", false, 0, "")
	d.pdf.Ln(8)
}

func (d *pdfDoc) section(title string) {
	d.pdf.SetFont("Arial", "B", 14)
	d.pdf.SetTextColor(33, 37, 41)
	d.pdf.SetFillColor(240, 240, 240)
	d.pdf.CellFormat(0, 10, title, "", 1, "L", true, 0, "")
	d.pdf.Ln(4)
}

func lightColor(light model.TrafficLight) (int, int, int) {
	switch light {
	case model.TrafficGreen:
		return 40, 167, 69
	case model.TrafficYellow:
		return 255, 193, 7
	default:
		return 220, 53, 69
	}
}

func (d *pdfDoc) regulationBars(rep *model.Report) {
	d.section("Maturity by Regulation")
	for _, r := range rep.Regulations {
		d.pdf.SetFont("Arial", "B", 11)
		d.pdf.SetTextColor(33, 37, 41)
		d.pdf.CellFormat(55, 8, r.Name, "", 0, "L", false, 0, "")

		red, green, blue := lightColor(r.Overall.TrafficLight)
		d.pdf.SetFillColor(red, green, blue)
		d.pdf.CellFormat(r.Overall.Percentage*0.8, 8, "", "", 0, "L", true, 0, "")
		d.pdf.SetFont("Arial", "", 10)
		d.pdf.CellFormat(0, 8, " "+d.fmt.Percent(r.Overall.Percentage), "", 1, "L", false, 0, "")
	}
	d.pdf.Ln(8)
}

func (d *pdfDoc) table(headers []string, rows [][]string) {
	colWidth := 180.0 / float64(len(headers))

	d.pdf.SetFont("Arial", "B", 9)
	d.pdf.SetFillColor(52, 58, 64)
	d.pdf.SetTextColor(255, 255, 255)
	for _, h := range headers {
		d.pdf.CellFormat(colWidth, 8, h, "1", 0, "C", true, 0, "")
	}
	d.pdf.Ln(-1)

	d.pdf.SetFont("Arial", "", 9)
	d.pdf.SetTextColor(33, 37, 41)
	fill := false
	for _, row := range rows {
		if fill {
			d.pdf.SetFillColor(248, 249, 250)
		} else {
			d.pdf.SetFillColor(255, 255, 255)
		}
		for _, cell := range row {
			if len(cell) > 28 {
				cell = cell[:25] + "..."
			}
			d.pdf.CellFormat(colWidth, 7, cell, "1", 0, "L", true, 0, "")
		}
		d.pdf.Ln(-1)
		fill = !fill
	}
	d.pdf.Ln(6)
}

func (d *pdfDoc) pillarTable(rep *model.Report) {
	d.section("Compliance Pillars")
	rows := make([][]string, 0, len(rep.Pillars))
	for _, p := range rep.Pillars {
		score, light := "n/a", "n/a"
		if p.Score != nil {
			score = d.fmt.Percent(*p.Score)
			light = string(*p.TrafficLight)
		}
		rows = append(rows, []string{
			p.PillarID,
			score,
			light,
			fmt.Sprintf("%d/%d", p.RegulationsWithData, p.RegulationsTotal),
		})
	}
	d.table([]string{"Pillar", "Score", "Status", "Coverage"}, rows)
}

func (d *pdfDoc) synergyTable(rep *model.Report) {
	if len(rep.Synergies) == 0 {
		return
	}
	d.section("Cross-Regulation Synergies")
	rows := make([][]string, 0, len(rep.Synergies))
	for _, s := range rep.Synergies {
		rows = append(rows, []string{
			s.RegA + " / " + s.RegB,
			d.fmt.Percent(s.OverlapPercent),
			scoreOrNA(d.fmt, s.RegAScore),
			scoreOrNA(d.fmt, s.RegBScore),
		})
	}
	d.table([]string{"Pair", "Overlap", "Score A", "Score B"}, rows)
}

func scoreOrNA(f *Formatter, score *float64) string {
	if score == nil {
		return "n/a"
	}
	return f.Percent(*score)
}

func (d *pdfDoc) roadmapTable(rep *model.Report) {
	d.section("Remediation Roadmap")
	for _, phase := range rep.Roadmap.Phases {
		if len(phase.Items) == 0 {
			continue
		}
		d.pdf.SetFont("Arial", "B", 11)
		d.pdf.SetTextColor(33, 37, 41)
		d.pdf.CellFormat(0, 8, fmt.Sprintf("%s (%s)", phase.Name, d.fmt.MoneyRange(phase.CostMin, phase.CostMax)), "", 1, "L", false, 0, "")

		rows := make([][]string, 0, len(phase.Items))
		for _, item := range phase.Items {
			rows = append(rows, []string{
				item.TitleKey,
				string(item.Priority),
				joinIDs(item.Regulations),
				d.fmt.MoneyRange(item.ExternalCostMin, item.ExternalCostMax),
			})
		}
		d.table([]string{"Measure", "Priority", "Regulations", "External Cost"}, rows)
	}

	d.pdf.SetFont("Arial", "B", 10)
	d.pdf.CellFormat(0, 8, fmt.Sprintf("Total: %s, %s internal effort",
		d.fmt.MoneyRange(rep.Roadmap.TotalCostMin, rep.Roadmap.TotalCostMax),
		d.fmt.Days(rep.Roadmap.TotalDaysMin, rep.Roadmap.TotalDaysMax)), "", 1, "L", false, 0, "")
	d.pdf.Ln(6)
}

func (d *pdfDoc) penaltyBlock(rep *model.Report) {
	d.section("Penalty Exposure")
	d.table(
		[]string{"Classification", "Legal Basis", "Absolute Max", "Revenue-Based", "Effective Max"},
		[][]string{{
			string(rep.Penalty.Classification),
			rep.Penalty.LegalReference,
			d.fmt.Money(rep.Penalty.MaxPenaltyAbsolute),
			d.fmt.Money(rep.Penalty.MaxPenaltyRevenueBased),
			d.fmt.Money(rep.Penalty.EffectiveMaxPenalty),
		}},
	)
}
