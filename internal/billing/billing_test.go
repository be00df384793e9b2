package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/koolexil/koolbot/internal/billing"
	"github.com/koolexil/koolbot/internal/models"
)

const unitPrice = 700.0

func TestRecompute(t *testing.T) {
	t.Parallel()

	t.Run("derives all four fields", func(t *testing.T) {
		t.Parallel()
		sub := &models.Subscriber{PrevReading: 10, CurrReading: 50, Arrears: 0, Paid: 30}

		billing.Recompute(sub, unitPrice)

		assert.Equal(t, 40, sub.Consumption)
		assert.Equal(t, 28000, sub.ConsumptionValue)
		assert.Equal(t, 28000, sub.Total)
		assert.Equal(t, 27970, sub.Remaining)
	})

	t.Run("negative consumption clamps to zero", func(t *testing.T) {
		t.Parallel()
		sub := &models.Subscriber{PrevReading: 80, CurrReading: 50, Arrears: 1500, Paid: 0}

		billing.Recompute(sub, unitPrice)

		assert.Equal(t, 0, sub.Consumption)
		assert.Equal(t, 0, sub.ConsumptionValue)
		assert.Equal(t, 1500, sub.Total)
		assert.Equal(t, 1500, sub.Remaining)
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()
		sub := &models.Subscriber{PrevReading: 10, CurrReading: 50, Arrears: 250, Paid: 100}

		billing.Recompute(sub, unitPrice)
		first := *sub
		billing.Recompute(sub, unitPrice)

		assert.Equal(t, first, *sub)
	})

	t.Run("heals stale derived values", func(t *testing.T) {
		t.Parallel()
		sub := &models.Subscriber{
			PrevReading: 10, CurrReading: 15,
			Consumption: 999, ConsumptionValue: 999, Total: 999, Remaining: 999,
		}

		billing.Recompute(sub, unitPrice)

		assert.Equal(t, 5, sub.Consumption)
		assert.Equal(t, 3500, sub.ConsumptionValue)
		assert.Equal(t, 3500, sub.Total)
		assert.Equal(t, 3500, sub.Remaining)
	})
}

func TestApplyReading(t *testing.T) {
	t.Parallel()

	t.Run("rolls the cycle forward", func(t *testing.T) {
		t.Parallel()
		sub := &models.Subscriber{PrevReading: 10, CurrReading: 50, Arrears: 0, Paid: 30}
		billing.Recompute(sub, unitPrice)

		billing.ApplyReading(sub, 80, unitPrice)

		assert.InDelta(t, 50.0, sub.PrevReading, 0.001)
		assert.InDelta(t, 80.0, sub.CurrReading, 0.001)
		assert.InDelta(t, 27970.0, sub.Arrears, 0.001)
		assert.InDelta(t, 0.0, sub.Paid, 0.001)
		assert.Equal(t, 30, sub.Consumption)
		assert.Equal(t, 21000, sub.ConsumptionValue)
		assert.Equal(t, 48970, sub.Total)
		assert.Equal(t, 48970, sub.Remaining)
	})

	t.Run("arrears are replaced, not accumulated", func(t *testing.T) {
		t.Parallel()
		sub := &models.Subscriber{PrevReading: 0, CurrReading: 10, Arrears: 5000, Paid: 7000}
		billing.Recompute(sub, unitPrice)
		// total 12000, remaining 5000

		billing.ApplyReading(sub, 10, unitPrice)

		assert.InDelta(t, 5000.0, sub.Arrears, 0.001)
		assert.Equal(t, 5000, sub.Total)
		assert.Equal(t, 5000, sub.Remaining)
	})

	t.Run("lower new reading yields zero consumption", func(t *testing.T) {
		t.Parallel()
		sub := &models.Subscriber{PrevReading: 10, CurrReading: 50}
		billing.Recompute(sub, unitPrice)

		billing.ApplyReading(sub, 40, unitPrice)

		assert.InDelta(t, 50.0, sub.PrevReading, 0.001)
		assert.InDelta(t, 40.0, sub.CurrReading, 0.001)
		assert.Equal(t, 0, sub.Consumption)
	})
}

func TestApplyPayment(t *testing.T) {
	t.Parallel()

	t.Run("replaces the paid amount", func(t *testing.T) {
		t.Parallel()
		sub := &models.Subscriber{PrevReading: 10, CurrReading: 50, Paid: 1000}
		billing.Recompute(sub, unitPrice)

		billing.ApplyPayment(sub, 6000, unitPrice)

		assert.InDelta(t, 6000.0, sub.Paid, 0.001)
		assert.Equal(t, 22000, sub.Remaining)
	})

	t.Run("overpayment drives remaining negative", func(t *testing.T) {
		t.Parallel()
		sub := &models.Subscriber{PrevReading: 0, CurrReading: 1}
		billing.Recompute(sub, unitPrice)

		billing.ApplyPayment(sub, 1000, unitPrice)

		assert.Equal(t, -300, sub.Remaining)
	})
}
