package models

import "time"

// Actions recorded in the activity ledger.
const (
	ActionUpdateReading = "update_reading"
	ActionPay           = "pay"
	ActionExportExcel   = "export_excel"
	ActionExportPDF     = "export_pdf"
)

// LedgerEntry is one append-only record of a billing-affecting action.
type LedgerEntry struct {
	Timestamp  time.Time // UTC time the action was performed
	User       string    // acting administrator or chat user
	Action     string    // one of the Action* constants
	Amount     float64   // paid amount for payments, 0 otherwise
	Meter      string    // meter id of the affected subscriber, if any
	Subscriber string    // name of the affected subscriber, if any
}

// FilterKind selects how a report filter bounds the ledger.
type FilterKind int

const (
	FilterAll FilterKind = iota
	FilterDay
	FilterRange
)

// ReportFilter bounds a ledger summary. Day is used for FilterDay;
// Start and End (inclusive) for FilterRange.
type ReportFilter struct {
	Kind  FilterKind
	Day   time.Time
	Start time.Time
	End   time.Time
}
