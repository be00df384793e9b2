// Package billing recomputes the derived fields of a subscriber record
// from its authoritative inputs.
package billing

import (
	"math"

	"github.com/koolexil/koolbot/internal/models"
)

// Recompute overwrites the four derived fields of s from the
// authoritative ones. The authoritative fields are never touched here.
// It is deterministic and idempotent and must run after every write
// that changes a reading, the arrears or the paid amount, and before
// every display, so stale derived values heal themselves.
func Recompute(s *models.Subscriber, unitPrice float64) {
	s.Consumption = int(math.Round(math.Max(s.CurrReading-s.PrevReading, 0)))
	s.ConsumptionValue = int(math.Round(float64(s.Consumption) * unitPrice))
	s.Total = int(math.Round(s.Arrears + float64(s.ConsumptionValue)))
	s.Remaining = int(math.Round(float64(s.Total) - s.Paid))
}

// ApplyReading closes the current billing cycle and opens a new one with
// the given current reading: the old current reading becomes the
// previous reading, the old remaining balance replaces the arrears
// (it does not add to them), and the paid amount resets to zero.
func ApplyReading(s *models.Subscriber, newCurrent, unitPrice float64) {
	oldCurrent := s.CurrReading
	oldRemaining := s.Remaining

	s.PrevReading = oldCurrent
	s.Arrears = float64(oldRemaining)
	s.Paid = 0
	s.CurrReading = newCurrent
	Recompute(s, unitPrice)
}

// ApplyPayment records amount as the paid value of the open cycle and
// restores the derived fields.
func ApplyPayment(s *models.Subscriber, amount, unitPrice float64) {
	s.Paid = amount
	Recompute(s, unitPrice)
}
