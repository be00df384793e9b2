package models

// Field identifies one canonical column of the subscriber ledger.
// The set is closed: every other spelling is folded into one of these
// by the canonicalizer.
type Field string

const (
	FieldName             Field = "اسم المشترك"
	FieldPhone            Field = "رقم الهاتف"
	FieldMeter            Field = "رقم العداد"
	FieldPrevReading      Field = "القراءة السابقة"
	FieldCurrReading      Field = "القراءة الحالية"
	FieldConsumption      Field = "الاستهلاك"
	FieldConsumptionValue Field = "قيمة الاستهلاك"
	FieldArrears          Field = "المتأخرات"
	FieldTotal            Field = "الإجمالي"
	FieldPaid             Field = "المسدد"
	FieldRemaining        Field = "المتبقي"
)

// BaseFields is the canonical column order of the ledger sheet.
var BaseFields = []Field{
	FieldName, FieldPhone, FieldMeter,
	FieldPrevReading, FieldCurrReading,
	FieldConsumption, FieldConsumptionValue,
	FieldArrears, FieldTotal, FieldPaid, FieldRemaining,
}

// textFields are the fields stored as free text; everything else is numeric.
var textFields = map[Field]struct{}{
	FieldName:  {},
	FieldPhone: {},
	FieldMeter: {},
}

// IsKnown reports whether f is one of the canonical ledger fields.
func IsKnown(f Field) bool {
	for _, b := range BaseFields {
		if b == f {
			return true
		}
	}
	return false
}

// IsNumeric reports whether f holds a numeric value.
func IsNumeric(f Field) bool {
	_, text := textFields[f]
	return IsKnown(f) && !text
}

// Subscriber is one row of the ledger. PrevReading, CurrReading, Arrears
// and Paid are authoritative; Consumption, ConsumptionValue, Total and
// Remaining are derived and must be restored by the billing engine after
// any mutation of the authoritative fields.
type Subscriber struct {
	Name             string
	Phone            string
	Meter            string
	PrevReading      float64
	CurrReading      float64
	Consumption      int
	ConsumptionValue int
	Arrears          float64
	Total            int
	Paid             float64
	Remaining        int
}

// Number returns the numeric value of f, or 0 for text fields.
func (s *Subscriber) Number(f Field) float64 {
	switch f {
	case FieldPrevReading:
		return s.PrevReading
	case FieldCurrReading:
		return s.CurrReading
	case FieldConsumption:
		return float64(s.Consumption)
	case FieldConsumptionValue:
		return float64(s.ConsumptionValue)
	case FieldArrears:
		return s.Arrears
	case FieldTotal:
		return float64(s.Total)
	case FieldPaid:
		return s.Paid
	case FieldRemaining:
		return float64(s.Remaining)
	default:
		return 0
	}
}

// SetNumber stores v into a numeric field; it is a no-op for text fields.
func (s *Subscriber) SetNumber(f Field, v float64) {
	switch f {
	case FieldPrevReading:
		s.PrevReading = v
	case FieldCurrReading:
		s.CurrReading = v
	case FieldConsumption:
		s.Consumption = int(v)
	case FieldConsumptionValue:
		s.ConsumptionValue = int(v)
	case FieldArrears:
		s.Arrears = v
	case FieldTotal:
		s.Total = int(v)
	case FieldPaid:
		s.Paid = v
	case FieldRemaining:
		s.Remaining = int(v)
	}
}

// Text returns the text value of f, or "" for numeric fields.
func (s *Subscriber) Text(f Field) string {
	switch f {
	case FieldName:
		return s.Name
	case FieldPhone:
		return s.Phone
	case FieldMeter:
		return s.Meter
	default:
		return ""
	}
}

// SetText stores v into a text field; it is a no-op for numeric fields.
func (s *Subscriber) SetText(f Field, v string) {
	switch f {
	case FieldName:
		s.Name = v
	case FieldPhone:
		s.Phone = v
	case FieldMeter:
		s.Meter = v
	}
}
