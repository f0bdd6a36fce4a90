package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/AndreyAkinshin/voltcheck/pkg/compliance"
)

// Worksheet names of the XLSX report.
const (
	ResultsSheet = "Results"
	SummarySheet = "Summary"
)

var levelFill = map[compliance.Level]string{
	compliance.Pass:    "#E2F0D9",
	compliance.Warning: "#FFF2CC",
	compliance.Fail:    "#F8CBAD",
}

// ResultsHeader returns the column headings of the results sheet.
func ResultsHeader() []string {
	headers := []string{"Circuit", "Description", "Source", "Status"}
	for _, f := range compliance.Fields() {
		headers = append(headers, ColumnTitle(string(f)))
	}
	return append(headers, "Critical Issues", "Fingerprint")
}

// WriteXLSX writes the report as a workbook: one results row per circuit,
// one column per field level, and a summary sheet.
func WriteXLSX(w io.Writer, r *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ResultsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	levelStyles := make(map[compliance.Level]int, len(levelFill))
	for level, color := range levelFill {
		id, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return fmt.Errorf("failed to create level style: %w", err)
		}
		levelStyles[level] = id
	}

	headers := ResultsHeader()
	if err := setRow(f, ResultsSheet, 1, toCells(headers)); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(ResultsSheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}

	// Status and field levels occupy columns 4 through 4+len(Fields()).
	const statusCol = 4
	for i, it := range r.Items {
		row := i + 2
		cells := []any{it.Circuit, it.Description, it.Source, it.Verdict.Status.String()}
		levels := []compliance.Level{it.Verdict.Status}
		for _, e := range it.Results.Entries() {
			cells = append(cells, e.Result.Level.String())
			levels = append(levels, e.Result.Level)
		}
		cells = append(cells, strings.Join(it.Verdict.CriticalIssues, "\n"), it.Fingerprint)
		if err := setRow(f, ResultsSheet, row, cells); err != nil {
			return err
		}
		for j, level := range levels {
			cell, err := excelize.CoordinatesToCellName(statusCol+j, row)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(ResultsSheet, cell, cell, levelStyles[level]); err != nil {
				return fmt.Errorf("failed to set level style: %w", err)
			}
		}
	}

	if err := f.SetColWidth(ResultsSheet, "A", "C", 18); err != nil {
		return err
	}
	if err := f.SetPanes(ResultsSheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	summary := [][]any{
		{"Report ID", r.ID},
		{"Project", r.Project},
		{"Site", r.Site},
		{"Inspector", r.Inspector},
		{"Catalog", r.Catalog.Source},
		{"Edition", r.Catalog.Edition},
		{"Status", r.Status.String()},
		{"Circuits", r.Summary.Total},
		{"Passed", r.Summary.Passed},
		{"Warnings", r.Summary.Warnings},
		{"Failed", r.Summary.Failed},
	}
	for i, cells := range summary {
		if err := setRow(f, SummarySheet, i+1, cells); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 14); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "B", "B", 40); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
