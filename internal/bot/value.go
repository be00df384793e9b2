package bot

import (
	"fmt"
	"strconv"

	"gopkg.in/telebot.v4"

	"github.com/koolexil/koolbot/internal/billing"
	"github.com/koolexil/koolbot/internal/canon"
	"github.com/koolexil/koolbot/internal/models"
	"github.com/koolexil/koolbot/internal/perms"
)

// fieldPickHandler reacts to a field chosen from the field keyboard:
// hidden fields are refused, read-only fields display their current
// value, editable fields enter AwaitValue.
func (b *Bot) fieldPickHandler(ctx telebot.Context) error {
	sess := b.session(ctx)
	field := models.Field(ctx.Data())

	admins, err := b.admins.Load()
	if err != nil {
		b.log.Error("Failed to load admin accounts", "error", err)
		return ctx.Respond()
	}
	mode := perms.Resolve(admins, sess.ActiveAdmin, field)
	if mode == perms.ModeHide {
		return ctx.Respond(&telebot.CallbackResponse{Text: "هذا الحقل مخفي"})
	}

	if sess.Selected < 0 {
		return ctx.Respond()
	}
	records, err := b.loadRecords()
	if err != nil {
		b.log.Error("Failed to load records", "error", err)
		return b.send(ctx, msgInternalError, mainMenu)
	}
	if sess.Selected >= len(records) {
		sess.Reset()
		sess.Selected = -1
		_ = ctx.Respond()
		return b.send(ctx, msgRecordMissing, mainMenu)
	}
	current := fieldDisplayValue(&records[sess.Selected], field)

	if mode == perms.ModeRead {
		_ = ctx.Respond()
		return b.send(ctx, fmt.Sprintf("%s: %s", field, current), mainMenu)
	}

	sess.EditField = field
	sess.Mode = ModeAwaitValue
	_ = ctx.Respond()
	return b.send(ctx, fmt.Sprintf("أدخل القيمة الجديدة لـ %s\n(القيمة الحالية: %s)", field, current), mainMenu)
}

// handleValueInput commits a new value for the awaited field. Invalid
// numeric input re-prompts without leaving the state; a vanished record
// aborts back to the idle mode. A new current reading triggers the
// roll-forward rule before recomputation.
func (b *Bot) handleValueInput(ctx telebot.Context, sess *Session, input string) error {
	if sess.Selected < 0 || sess.EditField == "" {
		sess.Reset()
		return b.send(ctx, "لا يوجد سياق تعديل نشط.", mainMenu)
	}

	records, err := b.loadRecords()
	if err != nil {
		b.log.Error("Failed to load records", "error", err)
		sess.Reset()
		return b.send(ctx, msgInternalError, mainMenu)
	}
	if sess.Selected >= len(records) {
		sess.Reset()
		sess.Selected = -1
		return b.send(ctx, msgRecordMissing, mainMenu)
	}

	rec := &records[sess.Selected]
	switch field := sess.EditField; {
	case field == models.FieldCurrReading:
		newReading, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return b.send(ctx, msgInvalidNumber, mainMenu)
		}
		billing.ApplyReading(rec, newReading, b.unitPrice)
		b.logAction(b.actingUser(ctx), models.ActionUpdateReading, 0, rec)
	case field == models.FieldPaid:
		amount, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return b.send(ctx, msgInvalidNumber, mainMenu)
		}
		billing.ApplyPayment(rec, amount, b.unitPrice)
		b.logAction(b.actingUser(ctx), models.ActionPay, amount, rec)
	case models.IsNumeric(field):
		value, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return b.send(ctx, msgInvalidNumber, mainMenu)
		}
		rec.SetNumber(field, value)
	default:
		rec.SetText(field, input)
	}

	billing.Recompute(rec, b.unitPrice)
	if err = b.saveRecords(records); err != nil {
		b.log.Error("Failed to save records", "error", err)
		sess.Reset()
		return b.send(ctx, msgInternalError, mainMenu)
	}

	sess.Reset()
	return b.send(ctx, "✅ تم التحديث.", mainMenu)
}

// fieldDisplayValue renders the current value of one field for prompts.
func fieldDisplayValue(rec *models.Subscriber, field models.Field) string {
	if models.IsNumeric(field) {
		return canon.FormatNumber(rec.Number(field))
	}
	return rec.Text(field)
}
