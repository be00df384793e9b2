// Package export builds the cleaned, string-formatted projection of the
// record set that document rendering consumes, and renders it as Excel
// or PDF bytes.
package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"github.com/koolexil/koolbot/internal/canon"
	"github.com/koolexil/koolbot/internal/models"
)

// Table is the rendering projection: canonical columns first, every
// cell already formatted as display text.
type Table struct {
	Headers []string
	Rows    [][]string
}

// BuildTable projects the record set for export: numeric cells are
// rounded to integer strings and text cells lose their spreadsheet
// float artifacts.
func BuildTable(records []models.Subscriber) Table {
	headers := make([]string, len(models.BaseFields))
	for i, field := range models.BaseFields {
		headers[i] = string(field)
	}

	rows := make([][]string, len(records))
	for i := range records {
		row := make([]string, len(models.BaseFields))
		for j, field := range models.BaseFields {
			if models.IsNumeric(field) {
				row[j] = canon.FormatNumber(records[i].Number(field))
			} else {
				row[j] = canon.StripTrailingZero(records[i].Text(field))
			}
		}
		rows[i] = row
	}
	return Table{Headers: headers, Rows: rows}
}

// ExcelBytes renders the table as a plain single-sheet workbook.
func ExcelBytes(table Table) (*bytes.Buffer, error) {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	header := make([]interface{}, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = h
	}
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range table.Rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		ref, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := file.SetSheetRow(sheet, ref, &cells); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buffer, nil
}

// Page geometry for the landscape PDF table.
const (
	pdfMargin     = 12.0
	pdfPageWidth  = 297.0 // A4 landscape, mm
	pdfRowHeight  = 6.0
	pdfFontSize   = 8.0
	digitMajority = 0.6
)

// PDFBytes renders the table as one landscape A4 grid with a shaded
// header row. Columns whose cells are mostly digits are right-aligned.
func PDFBytes(table Table) (*bytes.Buffer, error) {
	if len(table.Headers) == 0 {
		return nil, fmt.Errorf("failed to render PDF: empty projection")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.AddPage()

	colWidth := (pdfPageWidth - 2*pdfMargin) / float64(len(table.Headers))

	pdf.SetFont("Helvetica", "B", pdfFontSize)
	pdf.SetFillColor(211, 211, 211)
	for _, header := range table.Headers {
		pdf.CellFormat(colWidth, pdfRowHeight, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	aligns := columnAligns(table)
	pdf.SetFont("Helvetica", "", pdfFontSize)
	for _, row := range table.Rows {
		for j, cell := range row {
			pdf.CellFormat(colWidth, pdfRowHeight, cell, "1", 0, aligns[j], false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buffer bytes.Buffer
	if err := pdf.Output(&buffer); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return &buffer, nil
}

// columnAligns right-aligns columns where more than digitMajority of
// the cells contain digits.
func columnAligns(table Table) []string {
	aligns := make([]string, len(table.Headers))
	for j := range aligns {
		digitCells := 0
		for _, row := range table.Rows {
			if j < len(row) && canon.DigitsOnly(row[j]) != "" {
				digitCells++
			}
		}
		total := len(table.Rows)
		if total > 0 && float64(digitCells)/float64(total) > digitMajority {
			aligns[j] = "R"
		} else {
			aligns[j] = "L"
		}
	}
	return aligns
}
