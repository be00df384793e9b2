// Package canon normalizes Arabic free text and reconciles the many
// spellings of ledger column names into the canonical field set.
package canon

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/koolexil/koolbot/internal/models"
)

// Arabic diacritics plus the tatweel stretching character, all removed
// during normalization.
const diacritics = "ًٌٍَُِّْـ"

// letterVariants folds hamza forms into bare alef, dotted yaa into yaa
// and taa-marbuta into haa.
var letterVariants = map[rune]rune{
	'أ': 'ا',
	'إ': 'ا',
	'آ': 'ا',
	'ى': 'ي',
	'ة': 'ه',
}

// aliases lists, per canonical field, the spelling variants seen in
// ledger sheets supplied by the operators.
var aliases = map[models.Field][]string{
	models.FieldName:             {"اسم", "المشترك", "إسم المشترك", "اسم  المشترك", "اسم_المشترك"},
	models.FieldPhone:            {"الهاتف", "التلفون", "رقم التلفون", "رقم الجوال", "الجوال", "الموبايل", "هاتف", "تلفون"},
	models.FieldMeter:            {"العداد", "رقم  العداد", "رقم-العداد"},
	models.FieldPrevReading:      {"القراءه السابقه", "قراءة سابقه", "سابقه", "السابقه"},
	models.FieldCurrReading:      {"القراءه الحاليه", "قراءة حاليه", "الحاليه", "حاليه"},
	models.FieldConsumption:      {"مستهلك/وحده", "مستهلك وحده", "استهلاك", "إستهلاك"},
	models.FieldConsumptionValue: {"مستهلك/ريال", "مستهلك ريال", "قيمه الاستهلاك", "قيمة-الاستهلاك"},
	models.FieldArrears:          {"متاخرات", "المتاخرات"},
	models.FieldTotal:            {"الاجمالي", "الاجمالي عليه", "الإجمالي عليه", "المجموع"},
	models.FieldPaid:             {"المدفوع", "مدفوع", "المسدّد"},
	models.FieldRemaining:        {"الباقي", "الباقي عليه", "المتبقي عليه"},
}

// canonical maps every normalized spelling (canonical names included)
// to its field. Built once at package init.
var canonical = buildCanonicalTable()

func buildCanonicalTable() map[string]models.Field {
	table := make(map[string]models.Field)
	for field, variants := range aliases {
		table[Normalize(string(field))] = field
		for _, v := range variants {
			table[Normalize(v)] = field
		}
	}
	return table
}

// Normalize strips diacritics and directional marks, folds letter
// variants, collapses whitespace and lower-cases the result.
func Normalize(s string) string {
	var builder strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if strings.ContainsRune(diacritics, r) || r == '‏' || r == '‎' {
			continue
		}
		if mapped, ok := letterVariants[r]; ok {
			r = mapped
		}
		builder.WriteRune(r)
	}
	return strings.ToLower(strings.Join(strings.Fields(builder.String()), " "))
}

// NormalizeForMatch normalizes and removes all spaces, producing the
// form the matcher compares substrings on.
func NormalizeForMatch(s string) string {
	return strings.ReplaceAll(Normalize(s), " ", "")
}

// CanonicalField resolves an arbitrary column header to its canonical
// field name. Unknown headers are returned unchanged.
func CanonicalField(header string) models.Field {
	if field, ok := canonical[Normalize(header)]; ok {
		return field
	}
	return models.Field(header)
}

// DigitsOnly keeps only the decimal digits of s.
func DigitsOnly(s string) string {
	var builder strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

// StripTrailingZero removes the ".0" artifact left by spreadsheet
// readers that store phone and meter numbers as floats.
func StripTrailingZero(s string) string {
	trimmed := strings.TrimSpace(s)
	if strings.HasSuffix(trimmed, ".0") {
		if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return strconv.FormatInt(int64(v), 10)
		}
	}
	return trimmed
}

// FormatNumber renders a numeric value the way the ledger displays it:
// rounded to the nearest integer, with NaN and infinities shown as 0.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return strconv.FormatInt(int64(math.Round(v)), 10)
}
