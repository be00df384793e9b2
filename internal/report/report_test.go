package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/koolexil/koolbot/internal/models"
	"github.com/koolexil/koolbot/internal/report"
)

func sampleEntries() []models.LedgerEntry {
	day := func(d int, hour int) time.Time {
		return time.Date(2025, 3, d, hour, 0, 0, 0, time.UTC)
	}
	return []models.LedgerEntry{
		{Timestamp: day(10, 9), User: "مدير", Action: models.ActionPay, Amount: 7000},
		{Timestamp: day(10, 14), User: "سالم", Action: models.ActionUpdateReading},
		{Timestamp: day(11, 10), User: "مدير", Action: models.ActionPay, Amount: 3000},
		{Timestamp: day(12, 8), User: "سالم", Action: models.ActionPay, Amount: 500},
		{Timestamp: day(20, 8), User: "مدير", Action: models.ActionExportExcel},
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("whole ledger, grouped and sorted by admin", func(t *testing.T) {
		t.Parallel()
		summaries := report.Summarize(sampleEntries(), models.ReportFilter{Kind: models.FilterAll})

		require.Len(t, summaries, 2)
		assert.Equal(t, "سالم", summaries[0].Admin)
		assert.Equal(t, 2, summaries[0].Operations)
		assert.InDelta(t, 500.0, summaries[0].TotalAmount, 0.001)
		assert.Equal(t, "مدير", summaries[1].Admin)
		assert.Equal(t, 3, summaries[1].Operations)
		assert.InDelta(t, 10000.0, summaries[1].TotalAmount, 0.001)
	})

	t.Run("single day keeps only that calendar date", func(t *testing.T) {
		t.Parallel()
		filter := models.ReportFilter{
			Kind: models.FilterDay,
			Day:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		}
		summaries := report.Summarize(sampleEntries(), filter)

		require.Len(t, summaries, 2)
		assert.Equal(t, 1, summaries[0].Operations)
		assert.Equal(t, 1, summaries[1].Operations)
		assert.InDelta(t, 7000.0, summaries[1].TotalAmount, 0.001)
	})

	t.Run("range is inclusive on both ends", func(t *testing.T) {
		t.Parallel()
		filter := models.ReportFilter{
			Kind:  models.FilterRange,
			Start: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		}
		summaries := report.Summarize(sampleEntries(), filter)

		require.Len(t, summaries, 2)
		assert.Equal(t, "سالم", summaries[0].Admin)
		assert.InDelta(t, 500.0, summaries[0].TotalAmount, 0.001)
		assert.Equal(t, "مدير", summaries[1].Admin)
		assert.InDelta(t, 3000.0, summaries[1].TotalAmount, 0.001)
	})

	t.Run("empty period yields empty summary", func(t *testing.T) {
		t.Parallel()
		filter := models.ReportFilter{
			Kind: models.FilterDay,
			Day:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		summaries := report.Summarize(sampleEntries(), filter)

		assert.Empty(t, summaries)
	})
}

func TestSummaryExcel(t *testing.T) {
	t.Run("successful report generation", func(t *testing.T) {
		summaries := []report.Summary{
			{Admin: "سالم", Operations: 2, TotalAmount: 500},
			{Admin: "مدير", Operations: 3, TotalAmount: 10000},
		}

		buffer, err := report.SummaryExcel(summaries)

		require.NoError(t, err)
		assert.NotNil(t, buffer)

		f, err := excelize.OpenReader(buffer)
		require.NoError(t, err)
		defer f.Close()

		sheetList := f.GetSheetList()
		assert.Equal(t, []string{"تقرير"}, sheetList)

		headerVal, err := f.GetCellValue("تقرير", "A1")
		require.NoError(t, err)
		assert.Equal(t, "المسؤول", headerVal)

		adminVal, err := f.GetCellValue("تقرير", "A2")
		require.NoError(t, err)
		assert.Equal(t, "سالم", adminVal)

		amountVal, err := f.GetCellValue("تقرير", "C3")
		require.NoError(t, err)
		assert.Equal(t, "10000", amountVal)
	})

	t.Run("no entries found", func(t *testing.T) {
		buffer, err := report.SummaryExcel(nil)

		require.Error(t, err)
		assert.Nil(t, buffer)
		require.ErrorIs(t, err, report.ErrNoEntries)
	})
}
