// Package store holds the file-backed adapters for the subscriber
// ledger and the administrator accounts.
package store

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/koolexil/koolbot/internal/canon"
	"github.com/koolexil/koolbot/internal/models"
)

// RecordStore loads and saves the full subscriber record set from one
// xlsx workbook. Indices are positional: they are stable across a
// load/save pair within one operation but may be reassigned on append,
// so callers must re-validate any index they held across operations.
type RecordStore struct {
	path string
}

// NewRecordStore returns a store over the workbook at path. The file is
// created with an empty canonical sheet on first load if missing.
func NewRecordStore(path string) *RecordStore {
	return &RecordStore{path: path}
}

// Load reads every record from the workbook. Arbitrary column headers
// are folded into the canonical field set, missing columns default to
// empty text or zero, and numeric cells that fail to parse are read
// as zero. The remaining balance is restored from total minus paid on
// every load, so a sheet with a stale remaining cell cannot feed a
// wrong carry-forward into the next reading update.
func (s *RecordStore) Load() ([]models.Subscriber, error) {
	if err := s.ensureExists(); err != nil {
		return nil, err
	}

	file, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger workbook: %w", err)
	}
	defer file.Close()

	sheet := file.GetSheetName(0)
	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return []models.Subscriber{}, nil
	}

	// Map each canonical field to its first matching column.
	columns := make(map[models.Field]int)
	for i, header := range rows[0] {
		field := canon.CanonicalField(header)
		if _, seen := columns[field]; !seen && models.IsKnown(field) {
			columns[field] = i
		}
	}

	records := make([]models.Subscriber, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var rec models.Subscriber
		for field, col := range columns {
			if col >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[col])
			if models.IsNumeric(field) {
				rec.SetNumber(field, parseNumber(cell))
			} else {
				rec.SetText(field, cell)
			}
		}
		rec.Remaining = int(math.Round(float64(rec.Total) - rec.Paid))
		records = append(records, rec)
	}
	return records, nil
}

// Save rewrites the workbook with the canonical column order.
func (s *RecordStore) Save(records []models.Subscriber) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	header := make([]interface{}, len(models.BaseFields))
	for i, field := range models.BaseFields {
		header[i] = string(field)
	}
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i := range records {
		row := make([]interface{}, len(models.BaseFields))
		for j, field := range models.BaseFields {
			if models.IsNumeric(field) {
				row[j] = records[i].Number(field)
			} else {
				row[j] = records[i].Text(field)
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := file.SaveAs(s.path); err != nil {
		return fmt.Errorf("failed to save ledger workbook: %w", err)
	}
	return nil
}

// ensureExists creates an empty workbook with the canonical header row
// when the file is absent.
func (s *RecordStore) ensureExists() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat ledger workbook: %w", err)
	}
	return s.Save(nil)
}

// parseNumber reads a numeric cell, tolerating thousands separators and
// blank cells.
func parseNumber(cell string) float64 {
	if cell == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}
