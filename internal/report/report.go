// Package report summarizes the activity ledger by administrator and
// renders the summary as a workbook.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/koolexil/koolbot/internal/models"
)

// ErrNoEntries is returned when rendering a summary with no rows.
var ErrNoEntries = errors.New("failed to generate report, 0 entries were provided")

const sheetName = "تقرير"

// Summary is the aggregate of one administrator's actions within the
// filtered period.
type Summary struct {
	Admin       string  // acting administrator
	Operations  int     // number of recorded actions
	TotalAmount float64 // sum of paid amounts
}

// Summarize groups the ledger entries by acting user, restricted to the
// filter period. Entries on the filter day, or whose date falls inside
// the inclusive range, are kept. An empty summary is a valid outcome.
func Summarize(entries []models.LedgerEntry, filter models.ReportFilter) []Summary {
	totals := make(map[string]*Summary)
	var order []string

	for _, entry := range entries {
		if !inPeriod(entry.Timestamp, filter) {
			continue
		}
		summary, ok := totals[entry.User]
		if !ok {
			summary = &Summary{Admin: entry.User}
			totals[entry.User] = summary
			order = append(order, entry.User)
		}
		summary.Operations++
		summary.TotalAmount += entry.Amount
	}

	sort.Strings(order)
	result := make([]Summary, 0, len(order))
	for _, user := range order {
		result = append(result, *totals[user])
	}
	return result
}

// inPeriod reports whether the entry timestamp falls inside the filter
// period, comparing calendar dates only.
func inPeriod(ts time.Time, filter models.ReportFilter) bool {
	day := dateOf(ts)
	switch filter.Kind {
	case models.FilterDay:
		return day.Equal(dateOf(filter.Day))
	case models.FilterRange:
		return !day.Before(dateOf(filter.Start)) && !day.After(dateOf(filter.End))
	default:
		return true
	}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Generator holds the state for the Excel summary generation process.
type Generator struct {
	file *excelize.File
}

// NewGenerator creates a new summary generator.
func NewGenerator() *Generator {
	return &Generator{
		file: excelize.NewFile(),
	}
}

// SummaryExcel renders the summaries into a single-sheet workbook and
// returns its bytes.
func SummaryExcel(summaries []Summary) (*bytes.Buffer, error) {
	var err error

	if len(summaries) == 0 {
		return nil, ErrNoEntries
	}

	gen := NewGenerator()
	defer gen.file.Close()

	if err = gen.setupSheet(len(summaries)); err != nil {
		return nil, fmt.Errorf("failed to setup sheet: %w", err)
	}

	headerIndex := 2
	for i, summary := range summaries {
		if err = gen.addRow(i+headerIndex, summary); err != nil {
			return nil, fmt.Errorf("failed to add row '%d': %w", i+headerIndex, err)
		}
	}

	gen.file.SetActiveSheet(0)

	if sheetIndex, _ := gen.file.GetSheetIndex("Sheet1"); sheetIndex != -1 {
		if err = gen.file.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("failed to delete default sheet 'Sheet1': %w", err)
		}
	}

	buffer, err := gen.file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write data from saved file: %w", err)
	}

	return buffer, nil
}

// setupSheet creates the summary sheet with headers, styles and column
// widths.
func (g *Generator) setupSheet(rowCount int) error {
	var err error

	if _, err = g.file.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to generate new sheet '%s': %w", sheetName, err)
	}

	headerStyle, err := g.file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create new style: %w", err)
	}

	rowHeight := 20
	headers := []string{"المسؤول", "عدد العمليات", "اجمالي المسددة"}
	if err = g.file.SetRowHeight(sheetName, 1, float64(rowHeight)); err != nil {
		return fmt.Errorf("failed to set row height for headers: %w", err)
	}
	if err = g.file.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("failed to set sheet row for headers: %w", err)
	}
	if err = g.file.SetCellStyle(sheetName, "A1", "C1", headerStyle); err != nil {
		return fmt.Errorf("failed to set cell style for headers: %w", err)
	}

	widths := map[string]float64{
		"A": 30, "B": 16, "C": 18, //nolint:mnd // const values for row width
	}
	for col, width := range widths {
		if err = g.file.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if err = g.file.AddTable(sheetName, &excelize.Table{
		Range:     fmt.Sprintf("A1:C%d", rowCount+1),
		Name:      "table_summary",
		StyleName: "TableStyleMedium9",
	}); err != nil {
		return fmt.Errorf("failed to add table: %w", err)
	}

	return nil
}

// addRow writes one summary row at the given sheet row number.
func (g *Generator) addRow(rowNum int, summary Summary) error {
	rowData := []interface{}{
		summary.Admin,
		summary.Operations,
		summary.TotalAmount,
	}
	cell, _ := excelize.CoordinatesToCellName(1, rowNum)

	if err := g.file.SetSheetRow(sheetName, cell, &rowData); err != nil {
		return fmt.Errorf("failed to set sheet row: %w", err)
	}

	return nil
}
