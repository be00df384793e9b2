package bot

import (
	"strconv"

	"gopkg.in/telebot.v4"

	"github.com/koolexil/koolbot/internal/billing"
	"github.com/koolexil/koolbot/internal/models"
)

// subscriberMenuHandler routes the add/edit subscriber submenu.
func (b *Bot) subscriberMenuHandler(ctx telebot.Context) error {
	sess := b.session(ctx)
	switch ctx.Data() {
	case "new":
		_ = ctx.Respond(&telebot.CallbackResponse{Text: "مشترك جديد"})
		sess.Reset()
		sess.Mode = ModeAddSubName
		sess.Draft = &models.Subscriber{}
		return b.send(ctx, "أدخل اسم المشترك:", mainMenu)
	case "edit":
		_ = ctx.Respond(&telebot.CallbackResponse{Text: "تعديل بيانات مشترك"})
		return b.send(ctx, "اختر طريقة البحث لتعديل بيانات مشترك:", searchKindKeyboard(btnSubEditKind.Unique))
	default:
		sess.Reset()
		_ = ctx.Respond(&telebot.CallbackResponse{Text: msgCancelled})
		return b.send(ctx, msgCancelled, mainMenu)
	}
}

// handleAddSubscriberStep advances the strictly linear new-subscriber
// wizard. Numeric steps re-prompt on invalid input without advancing;
// the final step recomputes, appends and selects the new record.
func (b *Bot) handleAddSubscriberStep(ctx telebot.Context, sess *Session, input string) error {
	if sess.Draft == nil {
		sess.Reset()
		return b.send(ctx, msgPickFromMenu, mainMenu)
	}

	switch sess.Mode {
	case ModeAddSubName:
		sess.Draft.Name = input
		sess.Mode = ModeAddSubPhone
		return b.send(ctx, "أدخل رقم الهاتف:", mainMenu)
	case ModeAddSubPhone:
		sess.Draft.Phone = input
		sess.Mode = ModeAddSubMeter
		return b.send(ctx, "أدخل رقم العداد:", mainMenu)
	case ModeAddSubMeter:
		sess.Draft.Meter = input
		sess.Mode = ModeAddSubPrev
		return b.send(ctx, "أدخل القراءة السابقة (رقم):", mainMenu)
	case ModeAddSubPrev:
		value, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return b.send(ctx, "⚠️ أدخل رقمًا صحيحًا للقراءة السابقة.", mainMenu)
		}
		sess.Draft.PrevReading = value
		sess.Mode = ModeAddSubCurr
		return b.send(ctx, "أدخل القراءة الحالية (رقم):", mainMenu)
	case ModeAddSubCurr:
		value, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return b.send(ctx, "⚠️ أدخل رقمًا صحيحًا للقراءة الحالية.", mainMenu)
		}
		sess.Draft.CurrReading = value
		sess.Mode = ModeAddSubArrears
		return b.send(ctx, "أدخل المتأخرات (رقم):", mainMenu)
	case ModeAddSubArrears:
		value, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return b.send(ctx, "⚠️ أدخل رقمًا صحيحًا للمتأخرات.", mainMenu)
		}
		sess.Draft.Arrears = value
		sess.Mode = ModeAddSubPaid
		return b.send(ctx, "أدخل المسدد (رقم):", mainMenu)
	default: // ModeAddSubPaid
		value, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return b.send(ctx, "⚠️ أدخل رقمًا صحيحًا للمسدد.", mainMenu)
		}
		sess.Draft.Paid = value
		return b.commitNewSubscriber(ctx, sess)
	}
}

// commitNewSubscriber appends the completed draft to the record set.
func (b *Bot) commitNewSubscriber(ctx telebot.Context, sess *Session) error {
	records, err := b.loadRecords()
	if err != nil {
		b.log.Error("Failed to load records", "error", err)
		sess.Reset()
		return b.send(ctx, msgInternalError, mainMenu)
	}

	rec := *sess.Draft
	billing.Recompute(&rec, b.unitPrice)
	records = append(records, rec)

	if err = b.saveRecords(records); err != nil {
		b.log.Error("Failed to save records", "error", err)
		sess.Reset()
		return b.send(ctx, msgInternalError, mainMenu)
	}

	sess.Reset()
	sess.Selected = len(records) - 1
	return b.send(ctx, "✅ تمت إضافة المشترك وحُسبت القيم.", mainMenu)
}
