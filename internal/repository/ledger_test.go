package repository_test

import (
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koolexil/koolbot/internal/models"
	"github.com/koolexil/koolbot/internal/repository"
)

const createActivityTable = "CREATE TABLE IF NOT EXISTS activity_log"

const insertActivityEntry = `INSERT INTO activity_log \(ts, username, action, amount, meter, subscriber\) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)`

const selectActivityEntries = "SELECT ts, username, action, amount, meter, subscriber FROM activity_log ORDER BY ts"

func TestEnsureSchema(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		ledger := repository.NewLedger(mock)

		mock.ExpectExec(createActivityTable).WillReturnResult(pgxmock.NewResult("CREATE", 0))

		require.NoError(t, ledger.EnsureSchema(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - exec failed", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		ledger := repository.NewLedger(mock)

		mock.ExpectExec(createActivityTable).WillReturnError(assert.AnError)

		err = ledger.EnsureSchema(ctx)

		require.Error(t, err)
		require.ErrorContains(t, err, "failed to create activity_log table")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAppend(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	entry := models.LedgerEntry{
		Timestamp:  time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		User:       "مدير",
		Action:     models.ActionUpdateReading,
		Amount:     0,
		Meter:      "44556",
		Subscriber: "علي حسن",
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		ledger := repository.NewLedger(mock)

		mock.ExpectExec(insertActivityEntry).
			WithArgs(entry.Timestamp, entry.User, entry.Action, entry.Amount, entry.Meter, entry.Subscriber).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, ledger.Append(ctx, entry))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - insert failed", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		ledger := repository.NewLedger(mock)

		mock.ExpectExec(insertActivityEntry).
			WithArgs(entry.Timestamp, entry.User, entry.Action, entry.Amount, entry.Meter, entry.Subscriber).
			WillReturnError(assert.AnError)

		err = ledger.Append(ctx, entry)

		require.Error(t, err)
		require.ErrorContains(t, err, "failed to append activity entry")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestList(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		ledger := repository.NewLedger(mock)

		first := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
		second := time.Date(2025, 3, 15, 11, 0, 0, 0, time.UTC)
		rows := pgxmock.NewRows([]string{"ts", "username", "action", "amount", "meter", "subscriber"}).
			AddRow(first, "مدير", models.ActionPay, 7000.0, "12345", "محمد أحمد").
			AddRow(second, "سالم", models.ActionExportExcel, 0.0, "", "")
		mock.ExpectQuery(selectActivityEntries).WillReturnRows(rows)

		entries, err := ledger.List(ctx)

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "مدير", entries[0].User)
		assert.Equal(t, models.ActionPay, entries[0].Action)
		assert.InDelta(t, 7000.0, entries[0].Amount, 0.001)
		assert.Equal(t, "12345", entries[0].Meter)
		assert.Equal(t, "محمد أحمد", entries[0].Subscriber)
		assert.Equal(t, models.ActionExportExcel, entries[1].Action)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - empty ledger", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		ledger := repository.NewLedger(mock)

		rows := pgxmock.NewRows([]string{"ts", "username", "action", "amount", "meter", "subscriber"})
		mock.ExpectQuery(selectActivityEntries).WillReturnRows(rows)

		entries, err := ledger.List(ctx)

		require.NoError(t, err)
		assert.Empty(t, entries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - query failed", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		ledger := repository.NewLedger(mock)

		mock.ExpectQuery(selectActivityEntries).WillReturnError(assert.AnError)

		entries, err := ledger.List(ctx)

		require.Error(t, err)
		require.ErrorContains(t, err, "failed to query activity entries")
		assert.Nil(t, entries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - scan failed", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		ledger := repository.NewLedger(mock)

		rows := pgxmock.NewRows([]string{"ts", "username", "action", "amount", "meter", "subscriber"}).
			AddRow("not-a-time", "مدير", models.ActionPay, 7000.0, "12345", "محمد أحمد")
		mock.ExpectQuery(selectActivityEntries).WillReturnRows(rows)

		entries, err := ledger.List(ctx)

		require.Error(t, err)
		require.ErrorContains(t, err, "failed to scan activity entry")
		assert.Nil(t, entries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
