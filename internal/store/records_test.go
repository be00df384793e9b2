package store_test

import (
	"path/filepath"
	"testing"

	"github.com/Flaque/filet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/koolexil/koolbot/internal/billing"
	"github.com/koolexil/koolbot/internal/models"
	"github.com/koolexil/koolbot/internal/store"
)

func TestRecordStore_LoadCreatesMissingWorkbook(t *testing.T) {
	dir := filet.TmpDir(t, "")
	defer filet.CleanUp(t)

	s := store.NewRecordStore(filepath.Join(dir, "ledger.xlsx"))

	records, err := s.Load()

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.FileExists(t, filepath.Join(dir, "ledger.xlsx"))
}

func TestRecordStore_SaveLoadRoundTrip(t *testing.T) {
	dir := filet.TmpDir(t, "")
	defer filet.CleanUp(t)

	s := store.NewRecordStore(filepath.Join(dir, "ledger.xlsx"))
	saved := []models.Subscriber{
		{
			Name: "محمد أحمد", Phone: "0501234567", Meter: "44556",
			PrevReading: 10, CurrReading: 50, Arrears: 0, Paid: 30,
			Consumption: 40, ConsumptionValue: 28000, Total: 28000, Remaining: 27970,
		},
		{Name: "سالم علي", Phone: "0777777777", Meter: "90001"},
	}

	require.NoError(t, s.Save(saved))

	loaded, err := s.Load()

	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestRecordStore_LoadResolvesAliasHeaders(t *testing.T) {
	dir := filet.TmpDir(t, "")
	defer filet.CleanUp(t)
	path := filepath.Join(dir, "ledger.xlsx")

	// A workbook written by hand with alias headers and float artifacts,
	// the shape operator-supplied sheets arrive in.
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	headers := []interface{}{"إسم المشترك", "الجوال", "رقم  العداد", "القراءه السابقه", "الحاليه", "المدفوع"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &headers))
	row := []interface{}{"علي حسن", "501234567.0", "44556", "1,250", 80.0, ""}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	loaded, err := store.NewRecordStore(path).Load()

	require.NoError(t, err)
	require.Len(t, loaded, 1)
	rec := loaded[0]
	assert.Equal(t, "علي حسن", rec.Name)
	assert.Equal(t, "501234567.0", rec.Phone, "load keeps raw text, cleaning happens at render time")
	assert.Equal(t, "44556", rec.Meter)
	assert.InDelta(t, 1250.0, rec.PrevReading, 0.001, "thousands separator tolerated")
	assert.InDelta(t, 80.0, rec.CurrReading, 0.001)
	assert.InDelta(t, 0.0, rec.Paid, 0.001, "blank numeric cell reads as zero")
	assert.InDelta(t, 0.0, rec.Arrears, 0.001, "missing column defaults to zero")
}

func TestRecordStore_LoadFirstMatchingColumnWins(t *testing.T) {
	dir := filet.TmpDir(t, "")
	defer filet.CleanUp(t)
	path := filepath.Join(dir, "ledger.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	headers := []interface{}{"اسم المشترك", "إسم المشترك"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &headers))
	row := []interface{}{"الأول", "الثاني"}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	loaded, err := store.NewRecordStore(path).Load()

	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "الأول", loaded[0].Name)
}

func TestRecordStore_LoadHealsStaleRemaining(t *testing.T) {
	dir := filet.TmpDir(t, "")
	defer filet.CleanUp(t)
	path := filepath.Join(dir, "ledger.xlsx")

	// Operator-supplied sheet whose remaining cell was never updated
	// after the last payment.
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	headers := []interface{}{"اسم المشترك", "الإجمالي", "المسدد", "المتبقي"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &headers))
	row := []interface{}{"علي حسن", 1000.0, 300.0, 0.0}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	loaded, err := store.NewRecordStore(path).Load()

	require.NoError(t, err)
	require.Len(t, loaded, 1)
	rec := loaded[0]
	assert.Equal(t, 700, rec.Remaining, "remaining is restored from total minus paid")

	// The healed balance is what the next reading update carries into
	// the arrears.
	billing.ApplyReading(&rec, 20, 700)
	assert.InDelta(t, 700.0, rec.Arrears, 0.001)
	assert.InDelta(t, 0.0, rec.Paid, 0.001)
}

func TestRecordStore_LoadUnreadableFile(t *testing.T) {
	tmpFile := filet.TmpFile(t, "", "not an xlsx workbook")
	defer filet.CleanUp(t)

	_, err := store.NewRecordStore(tmpFile.Name()).Load()

	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to open ledger workbook")
}
