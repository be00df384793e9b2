package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/koolexil/koolbot/internal/models"
)

func TestSelectRecord(t *testing.T) {
	t.Parallel()

	t.Run("reading flow resumes at the value prompt", func(t *testing.T) {
		t.Parallel()
		sess := &Session{Mode: ModeSearchReading, Selected: -1}

		outcome := sess.SelectRecord(3)

		assert.Equal(t, PickAwaitReading, outcome)
		assert.Equal(t, 3, sess.Selected)
		assert.Equal(t, ModeAwaitValue, sess.Mode)
		assert.Equal(t, models.FieldCurrReading, sess.EditField)
	})

	t.Run("payment flow resumes at the amount prompt", func(t *testing.T) {
		t.Parallel()
		sess := &Session{Mode: ModeSearchPay, Selected: -1}

		outcome := sess.SelectRecord(0)

		assert.Equal(t, PickAwaitPayment, outcome)
		assert.Equal(t, ModeAwaitValue, sess.Mode)
		assert.Equal(t, models.FieldPaid, sess.EditField)
	})

	t.Run("edit flow resumes at the field chooser", func(t *testing.T) {
		t.Parallel()
		sess := &Session{Mode: ModeSearchEdit, Selected: -1}

		outcome := sess.SelectRecord(1)

		assert.Equal(t, PickChooseField, outcome)
		assert.Equal(t, 1, sess.Selected)
		assert.Equal(t, ModeSearchEdit, sess.Mode, "chooser is driven by callbacks, mode is left for them")
	})

	t.Run("plain lookup shows the record and goes idle", func(t *testing.T) {
		t.Parallel()
		sess := &Session{Mode: ModeSearchName, Selected: -1}

		outcome := sess.SelectRecord(2)

		assert.Equal(t, PickShowRecord, outcome)
		assert.Equal(t, ModeIdle, sess.Mode)
	})
}

func TestSessionReset(t *testing.T) {
	t.Parallel()
	sess := &Session{
		Mode:         ModeAddSubPaid,
		Selected:     4,
		EditField:    models.FieldPaid,
		SearchField:  models.FieldMeter,
		Draft:        &models.Subscriber{Name: "محمد"},
		NewAdminName: "سالم",
		PermTarget:   "سالم",
		Report:       models.ReportFilter{Kind: models.FilterDay},
		ActiveAdmin:  "سالم",
	}

	sess.Reset()

	assert.Equal(t, ModeIdle, sess.Mode)
	assert.Empty(t, sess.EditField)
	assert.Empty(t, sess.SearchField)
	assert.Nil(t, sess.Draft)
	assert.Empty(t, sess.NewAdminName)
	assert.Empty(t, sess.PermTarget)
	assert.Equal(t, models.ReportFilter{}, sess.Report)
	assert.Equal(t, 4, sess.Selected, "the selected record survives a reset")
	assert.Equal(t, "سالم", sess.ActiveAdmin, "the active account survives a reset")
}

func TestSessionManager(t *testing.T) {
	t.Parallel()
	manager := NewSessionManager()

	first := manager.Get(42)
	assert.Equal(t, -1, first.Selected)
	assert.Equal(t, models.DefaultAdminName, first.ActiveAdmin)

	first.Mode = ModeSearchName
	again := manager.Get(42)
	assert.Same(t, first, again)

	other := manager.Get(7)
	assert.NotSame(t, first, other)
	assert.Equal(t, ModeIdle, other.Mode)
}
