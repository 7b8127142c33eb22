package report

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/compliance-hub/internal/model"
)

// WriteXLSX renders the report as a workbook with one sheet per concern.
func WriteXLSX(w io.Writer, rep *model.Report) error {
	f := xlsx.NewFile()

	if err := addRegulationsSheet(f, rep); err != nil {
		return err
	}
	if err := addPillarsSheet(f, rep); err != nil {
		return err
	}
	if err := addSynergiesSheet(f, rep); err != nil {
		return err
	}
	if err := addRoadmapSheet(f, rep); err != nil {
		return err
	}
	if err := addPenaltySheet(f, rep); err != nil {
		return err
	}

	return eris.Wrap(f.Write(w), "report: write xlsx")
}

func headerRow(sheet *xlsx.Sheet, titles ...string) {
	row := sheet.AddRow()
	for _, t := range titles {
		row.AddCell().Value = t
	}
}

func addRegulationsSheet(f *xlsx.File, rep *model.Report) error {
	sheet, err := f.AddSheet("Regulations")
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}
	headerRow(sheet, "Regulation", "Name", "Score %", "Traffic Light", "Answered", "Total", "Completion %")
	for _, r := range rep.Regulations {
		row := sheet.AddRow()
		row.AddCell().Value = r.RegulationID
		row.AddCell().Value = r.Name
		row.AddCell().SetFloatWithFormat(r.Overall.Percentage, "0.0")
		row.AddCell().Value = string(r.Overall.TrafficLight)
		row.AddCell().SetInt(r.Overall.AnsweredQuestions)
		row.AddCell().SetInt(r.Overall.TotalQuestions)
		row.AddCell().SetFloatWithFormat(r.Overall.CompletionRate, "0.0")
	}
	return nil
}

func addPillarsSheet(f *xlsx.File, rep *model.Report) error {
	sheet, err := f.AddSheet("Pillars")
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}
	headerRow(sheet, "Pillar", "Score %", "Traffic Light", "Regulations With Data", "Regulations Total")
	for _, p := range rep.Pillars {
		row := sheet.AddRow()
		row.AddCell().Value = p.PillarID
		if p.Score != nil {
			row.AddCell().SetFloatWithFormat(*p.Score, "0.0")
			row.AddCell().Value = string(*p.TrafficLight)
		} else {
			row.AddCell().Value = "n/a"
			row.AddCell().Value = "n/a"
		}
		row.AddCell().SetInt(p.RegulationsWithData)
		row.AddCell().SetInt(p.RegulationsTotal)
	}
	return nil
}

func addSynergiesSheet(f *xlsx.File, rep *model.Report) error {
	sheet, err := f.AddSheet("Synergies")
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}
	headerRow(sheet, "Regulation A", "Regulation B", "Overlap %", "Score A", "Score B")
	for _, s := range rep.Synergies {
		row := sheet.AddRow()
		row.AddCell().Value = s.RegA
		row.AddCell().Value = s.RegB
		row.AddCell().SetFloatWithFormat(s.OverlapPercent, "0.0")
		for _, score := range []*float64{s.RegAScore, s.RegBScore} {
			if score != nil {
				row.AddCell().SetFloatWithFormat(*score, "0.0")
			} else {
				row.AddCell().Value = "n/a"
			}
		}
	}
	return nil
}

func addRoadmapSheet(f *xlsx.File, rep *model.Report) error {
	sheet, err := f.AddSheet("Roadmap")
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}
	headerRow(sheet, "Phase", "Measure", "Priority", "Regulations", "Days Min", "Days Max", "Cost Min", "Cost Max")
	for _, phase := range rep.Roadmap.Phases {
		for _, item := range phase.Items {
			row := sheet.AddRow()
			row.AddCell().Value = phase.Name
			row.AddCell().Value = item.TitleKey
			row.AddCell().Value = string(item.Priority)
			row.AddCell().Value = joinIDs(item.Regulations)
			row.AddCell().SetFloatWithFormat(item.InternalDaysMin, "0.0")
			row.AddCell().SetFloatWithFormat(item.InternalDaysMax, "0.0")
			row.AddCell().SetFloatWithFormat(item.ExternalCostMin, "0")
			row.AddCell().SetFloatWithFormat(item.ExternalCostMax, "0")
		}
	}
	total := sheet.AddRow()
	total.AddCell().Value = "Total"
	total.AddCell()
	total.AddCell()
	total.AddCell()
	total.AddCell().SetFloatWithFormat(rep.Roadmap.TotalDaysMin, "0.0")
	total.AddCell().SetFloatWithFormat(rep.Roadmap.TotalDaysMax, "0.0")
	total.AddCell().SetFloatWithFormat(rep.Roadmap.TotalCostMin, "0")
	total.AddCell().SetFloatWithFormat(rep.Roadmap.TotalCostMax, "0")
	return nil
}

func addPenaltySheet(f *xlsx.File, rep *model.Report) error {
	sheet, err := f.AddSheet("Penalty")
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}
	headerRow(sheet, "Classification", "Legal Reference", "Absolute Max", "Revenue-Based Max", "Revenue %", "Effective Max")
	row := sheet.AddRow()
	row.AddCell().Value = string(rep.Penalty.Classification)
	row.AddCell().Value = rep.Penalty.LegalReference
	row.AddCell().SetFloatWithFormat(rep.Penalty.MaxPenaltyAbsolute, "0")
	row.AddCell().SetFloatWithFormat(rep.Penalty.MaxPenaltyRevenueBased, "0")
	row.AddCell().SetFloatWithFormat(rep.Penalty.RevenuePercentage, "0.0")
	row.AddCell().SetFloatWithFormat(rep.Penalty.EffectiveMaxPenalty, "0")
	return nil
}

func joinIDs(ids []string) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ", "
		}
		out += id
	}
	return out
}
