package bot

import (
	"strings"

	"gopkg.in/telebot.v4"
)

// User-visible notices shared across handlers.
const (
	msgPickFromMenu  = "اختر من لوحة التحكم:"
	msgCancelled     = "تم الإلغاء."
	msgInternalError = "🚫 حدث خطأ داخلي، حاول لاحقًا."
	msgRecordMissing = "⚠️ السجل غير موجود."
	msgInvalidNumber = "⚠️ أدخل رقمًا صحيحًا."
)

// startHandler processes command /start.
func (b *Bot) startHandler(ctx telebot.Context) error {
	b.log.Info("User started the bot", "id", ctx.Sender().ID, "username", ctx.Sender().Username)
	b.metrics.CommandReceived.WithLabelValues("start").Inc()

	b.session(ctx).Reset()
	return b.send(ctx, "مرحبًا بك في لوحة التحكم 👇", mainMenu)
}

// routeTextHandler dispatches every incoming text message: top-level
// menu selections first, then whatever input the session mode is
// waiting for.
func (b *Bot) routeTextHandler(ctx telebot.Context) error {
	text := strings.TrimSpace(ctx.Text())
	sess := b.session(ctx)

	switch text {
	case lblAddReading:
		b.metrics.CommandReceived.WithLabelValues("add_reading").Inc()
		sess.Reset()
		sess.Mode = ModeSearchReading
		return b.send(ctx, "اختر طريقة البحث لإضافة قراءة حالية:", searchKindKeyboard(btnAddReadingKind.Unique))
	case lblPay:
		b.metrics.CommandReceived.WithLabelValues("pay").Inc()
		sess.Reset()
		sess.Mode = ModeSearchPay
		return b.send(ctx, "اختر طريقة البحث لتسديد مبلغ:", searchKindKeyboard(btnPayKind.Unique))
	case lblSearchMeter:
		b.metrics.CommandReceived.WithLabelValues("search_meter").Inc()
		sess.Reset()
		sess.Mode = ModeSearchMeter
		return b.send(ctx, "أدخل رقم العداد:", mainMenu)
	case lblSearchName:
		b.metrics.CommandReceived.WithLabelValues("search_name").Inc()
		sess.Reset()
		sess.Mode = ModeSearchName
		return b.send(ctx, "أدخل اسم المشترك:", mainMenu)
	case lblSearchPhone:
		b.metrics.CommandReceived.WithLabelValues("search_phone").Inc()
		sess.Reset()
		sess.Mode = ModeSearchPhone
		return b.send(ctx, "أدخل رقم الهاتف:", mainMenu)
	case lblExport:
		b.metrics.CommandReceived.WithLabelValues("export").Inc()
		return b.send(ctx, "اختر نوع الملف للتصدير:", exportKeyboard())
	case lblAddSubscriber:
		b.metrics.CommandReceived.WithLabelValues("subscriber_menu").Inc()
		return b.send(ctx, "اختر العملية:", subscriberMenuKeyboard())
	case lblAdmins:
		b.metrics.CommandReceived.WithLabelValues("admin_menu").Inc()
		return b.send(ctx, "قائمة المسؤولين:", adminMenuKeyboard())
	case lblFieldList:
		return b.fieldListHandler(ctx, sess)
	}

	switch sess.Mode {
	case ModeReportDay, ModeReportRangeStart, ModeReportRangeEnd:
		return b.handleReportDate(ctx, sess, text)
	case ModeAdminNewName:
		return b.handleAdminName(ctx, sess, text)
	case ModeAdminNewPin:
		return b.handleAdminPin(ctx, sess, text)
	case ModeAwaitValue:
		return b.handleValueInput(ctx, sess, text)
	case ModeAddSubName, ModeAddSubPhone, ModeAddSubMeter,
		ModeAddSubPrev, ModeAddSubCurr, ModeAddSubArrears, ModeAddSubPaid:
		return b.handleAddSubscriberStep(ctx, sess, text)
	case ModeSearchMeter, ModeSearchName, ModeSearchPhone,
		ModeSearchReading, ModeSearchPay, ModeSearchEdit:
		return b.handleSearch(ctx, sess, text)
	default:
		return b.send(ctx, msgPickFromMenu, mainMenu)
	}
}

// fieldListHandler shows the per-field keyboard for the selected
// record, filtered by the active administrator's permissions.
func (b *Bot) fieldListHandler(ctx telebot.Context, sess *Session) error {
	if sess.Selected < 0 {
		return b.send(ctx, "⚠️ اختر مشتركًا أولًا بالبحث.", mainMenu)
	}
	records, err := b.loadRecords()
	if err != nil {
		b.log.Error("Failed to load records", "error", err)
		return b.send(ctx, msgInternalError, mainMenu)
	}
	if sess.Selected >= len(records) {
		sess.Reset()
		sess.Selected = -1
		return b.send(ctx, msgRecordMissing, mainMenu)
	}
	admins, err := b.admins.Load()
	if err != nil {
		b.log.Error("Failed to load admin accounts", "error", err)
		return b.send(ctx, msgInternalError, mainMenu)
	}
	return b.send(ctx, "قائمة الحقول:", fieldsKeyboard(admins, sess.ActiveAdmin))
}

// backMenuHandler returns to the control panel from an inline keyboard.
func (b *Bot) backMenuHandler(ctx telebot.Context) error {
	_ = ctx.Respond()
	return b.send(ctx, "العودة للوحة التحكم", mainMenu)
}

// send delivers a text message, counting it in the output metrics.
func (b *Bot) send(ctx telebot.Context, what interface{}, opts ...interface{}) error {
	b.metrics.SentMessages.WithLabelValues("text").Inc()
	return ctx.Send(what, opts...)
}
