package bot

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/koolexil/koolbot/internal/billing"
	"github.com/koolexil/koolbot/internal/canon"
	"github.com/koolexil/koolbot/internal/match"
	"github.com/koolexil/koolbot/internal/models"
)

// addReadingKindHandler fixes the lookup field for a reading update.
func (b *Bot) addReadingKindHandler(ctx telebot.Context) error {
	return b.searchKindSelected(ctx, ModeSearchReading)
}

// payKindHandler fixes the lookup field for a payment.
func (b *Bot) payKindHandler(ctx telebot.Context) error {
	return b.searchKindSelected(ctx, ModeSearchPay)
}

// subEditKindHandler fixes the lookup field for a subscriber edit.
func (b *Bot) subEditKindHandler(ctx telebot.Context) error {
	return b.searchKindSelected(ctx, ModeSearchEdit)
}

func (b *Bot) searchKindSelected(ctx telebot.Context, mode Mode) error {
	sess := b.session(ctx)
	kind := ctx.Data()
	if kind == "cancel" {
		sess.Reset()
		_ = ctx.Respond(&telebot.CallbackResponse{Text: msgCancelled})
		return b.send(ctx, "أُلغي الإجراء.", mainMenu)
	}

	field := searchFieldByKind(kind)
	sess.Mode = mode
	sess.SearchField = field
	_ = ctx.Respond()
	return b.send(ctx, fmt.Sprintf("أدخل %s:", field), mainMenu)
}

// searchFieldFor resolves the ledger field the session is searching on.
func searchFieldFor(sess *Session) models.Field {
	switch sess.Mode {
	case ModeSearchMeter:
		return models.FieldMeter
	case ModeSearchName:
		return models.FieldName
	case ModeSearchPhone:
		return models.FieldPhone
	default:
		if sess.SearchField != "" {
			return sess.SearchField
		}
		return models.FieldMeter
	}
}

// handleSearch runs the lookup behind every search mode. Zero hits end
// the dialog; several hits halt it for an explicit pick; a single hit
// continues straight into the flow that requested the lookup.
func (b *Bot) handleSearch(ctx telebot.Context, sess *Session, query string) error {
	records, err := b.loadRecords()
	if err != nil {
		b.log.Error("Failed to load records", "error", err)
		sess.Reset()
		return b.send(ctx, msgInternalError, mainMenu)
	}

	idxs := match.Find(records, searchFieldFor(sess), query)
	if len(idxs) == 0 {
		sess.Reset()
		return b.send(ctx, "❌ لا توجد نتائج مطابقة.", mainMenu)
	}
	if len(idxs) > 1 {
		return b.send(ctx, "اختر السجل المطلوب:", pickKeyboard(records, idxs))
	}

	outcome := sess.SelectRecord(idxs[0])
	return b.continueAfterPick(ctx, sess, records, outcome)
}

// pickHandler resumes the halted flow with the explicitly chosen
// record.
func (b *Bot) pickHandler(ctx telebot.Context) error {
	idx, err := strconv.Atoi(ctx.Data())
	if err != nil {
		return ctx.Respond()
	}

	sess := b.session(ctx)
	records, err := b.loadRecords()
	if err != nil {
		b.log.Error("Failed to load records", "error", err)
		sess.Reset()
		return b.send(ctx, msgInternalError, mainMenu)
	}
	if idx < 0 || idx >= len(records) {
		sess.Reset()
		sess.Selected = -1
		_ = ctx.Respond()
		return b.send(ctx, msgRecordMissing, mainMenu)
	}

	_ = ctx.Respond(&telebot.CallbackResponse{Text: "تم الاختيار"})
	outcome := sess.SelectRecord(idx)
	return b.continueAfterPick(ctx, sess, records, outcome)
}

// pickCancelHandler aborts an ambiguous lookup.
func (b *Bot) pickCancelHandler(ctx telebot.Context) error {
	b.session(ctx).Reset()
	_ = ctx.Respond(&telebot.CallbackResponse{Text: msgCancelled})
	return b.send(ctx, msgCancelled, mainMenu)
}

// continueAfterPick re-enters the flow that was active before the
// record selection.
func (b *Bot) continueAfterPick(
	ctx telebot.Context,
	sess *Session,
	records []models.Subscriber,
	outcome PickOutcome,
) error {
	rec := &records[sess.Selected]
	switch outcome {
	case PickAwaitReading:
		return b.send(ctx, fmt.Sprintf(
			"أدخل القيمة الجديدة للقراءة الحالية\n(الحالية الآن: %s — السابقة: %s)",
			canon.FormatNumber(rec.CurrReading), canon.FormatNumber(rec.PrevReading),
		), mainMenu)
	case PickAwaitPayment:
		return b.send(ctx, fmt.Sprintf(
			"الاستهلاك (ريال): %s\nالمتأخرات: %s\nالإجمالي: %s\nأدخل المبلغ المسدد:",
			canon.FormatNumber(float64(rec.ConsumptionValue)),
			canon.FormatNumber(rec.Arrears),
			canon.FormatNumber(float64(rec.Total)),
		), mainMenu)
	case PickChooseField:
		admins, err := b.admins.Load()
		if err != nil {
			b.log.Error("Failed to load admin accounts", "error", err)
			sess.Reset()
			return b.send(ctx, msgInternalError, mainMenu)
		}
		return b.send(ctx, "اختر الحقل المراد تعديله:", fieldsKeyboard(admins, sess.ActiveAdmin))
	default:
		return b.showRecord(ctx, sess, records)
	}
}

// showRecord recomputes the selected record so stale derived values
// heal before display, persists it and renders the vertical card.
func (b *Bot) showRecord(ctx telebot.Context, sess *Session, records []models.Subscriber) error {
	rec := &records[sess.Selected]
	billing.Recompute(rec, b.unitPrice)
	if err := b.saveRecords(records); err != nil {
		b.log.Error("Failed to save records", "error", err)
		return b.send(ctx, msgInternalError, mainMenu)
	}
	return b.send(ctx, formatVertical(rec), mainMenu)
}

// displayRenames replaces a few column titles on the vertical card.
var displayRenames = map[models.Field]string{
	models.FieldPhone:            "الهاتف",
	models.FieldTotal:            "الإجمالي عليه",
	models.FieldRemaining:        "المتبقي عليه",
	models.FieldConsumption:      "المستهلك/وحده",
	models.FieldConsumptionValue: "المستهلك/ريال",
}

// formatVertical renders one record as a field-per-line card.
func formatVertical(rec *models.Subscriber) string {
	var builder strings.Builder
	for _, field := range models.BaseFields {
		title := string(field)
		if rename, ok := displayRenames[field]; ok {
			title = rename
		}
		var value string
		switch {
		case models.IsNumeric(field):
			value = canon.FormatNumber(rec.Number(field))
		case field == models.FieldMeter || field == models.FieldPhone:
			value = canon.StripTrailingZero(rec.Text(field))
		default:
			value = rec.Text(field)
		}
		builder.WriteString(title)
		builder.WriteString("\t")
		builder.WriteString(value)
		builder.WriteString("\n")
	}
	return strings.TrimRight(builder.String(), "\n")
}

// displayTitle is the one-line identification of a record used on pick
// buttons.
func displayTitle(rec *models.Subscriber) string {
	name := rec.Name
	if name == "" {
		name = "—"
	}
	return fmt.Sprintf(
		"%s | عداد: %s | هاتف: %s",
		name, canon.StripTrailingZero(rec.Meter), canon.StripTrailingZero(rec.Phone),
	)
}
