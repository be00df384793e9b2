package bot

import (
	"strconv"

	"gopkg.in/telebot.v4"

	"github.com/koolexil/koolbot/internal/models"
	"github.com/koolexil/koolbot/internal/perms"
)

// Main menu button labels. routeTextHandler matches incoming text
// against these exactly.
const (
	lblAddReading    = "➕ إضافة قراءة حالية"
	lblPay           = "💵 تسديد مبلغ"
	lblSearchMeter   = "🔍 بحث برقم العداد"
	lblSearchName    = "🔎 بحث بالاسم"
	lblSearchPhone   = "📞 بحث بالهاتف"
	lblExport        = "📤 تصدير البيانات"
	lblAddSubscriber = "➕ إضافة مشترك"
	lblAdmins        = "👥 المسؤولين"
	lblFieldList     = "ايقونة الحقول"
	lblCancel        = "إلغاء"
)

// mainMenu is the static control-panel reply keyboard.
var mainMenu = buildMainMenu()

func buildMainMenu() *telebot.ReplyMarkup {
	menu := &telebot.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(lblAddReading), menu.Text(lblPay)),
		menu.Row(menu.Text(lblSearchMeter), menu.Text(lblSearchName)),
		menu.Row(menu.Text(lblSearchPhone), menu.Text(lblExport)),
		menu.Row(menu.Text(lblAddSubscriber), menu.Text(lblAdmins)),
	)
	return menu
}

// inlineMarkup wraps prepared rows of inline buttons.
func inlineMarkup(rows ...[]telebot.InlineButton) *telebot.ReplyMarkup {
	return &telebot.ReplyMarkup{InlineKeyboard: rows}
}

// searchKindKeyboard offers the three lookup fields for a flow routed
// through the given unique, plus a cancel button.
func searchKindKeyboard(unique string) *telebot.ReplyMarkup {
	return inlineMarkup(
		[]telebot.InlineButton{{Unique: unique, Text: "🔍 برقم العداد", Data: "meter"}},
		[]telebot.InlineButton{{Unique: unique, Text: "🔎 بالاسم", Data: "name"}},
		[]telebot.InlineButton{{Unique: unique, Text: "📞 بالهاتف", Data: "phone"}},
		[]telebot.InlineButton{{Unique: unique, Text: lblCancel, Data: "cancel"}},
	)
}

// searchFieldByKind maps a selector payload to its lookup field.
func searchFieldByKind(kind string) models.Field {
	switch kind {
	case "name":
		return models.FieldName
	case "phone":
		return models.FieldPhone
	default:
		return models.FieldMeter
	}
}

// pickKeyboard lists the ambiguous lookup hits for explicit selection.
func pickKeyboard(records []models.Subscriber, idxs []int) *telebot.ReplyMarkup {
	rows := make([][]telebot.InlineButton, 0, len(idxs)+1)
	for _, i := range idxs {
		rows = append(rows, []telebot.InlineButton{{
			Unique: btnPick.Unique,
			Text:   "اختيار: " + displayTitle(&records[i]),
			Data:   strconv.Itoa(i),
		}})
	}
	rows = append(rows, []telebot.InlineButton{{Unique: btnPickCancel.Unique, Text: lblCancel}})
	return inlineMarkup(rows...)
}

// fieldsKeyboard lists the record fields visible to the active
// administrator. Hidden fields are dropped; editable fields carry a
// pencil, read-only ones an eye.
func fieldsKeyboard(admins models.AdminList, activeAdmin string) *telebot.ReplyMarkup {
	var rows [][]telebot.InlineButton
	for _, field := range models.BaseFields {
		mode := perms.Resolve(admins, activeAdmin, field)
		if mode == perms.ModeHide {
			continue
		}
		label := "👁️ " + string(field)
		if mode == perms.ModeEdit && perms.EditableByDefault(field) {
			label = "✏️ " + string(field)
		}
		rows = append(rows, []telebot.InlineButton{{
			Unique: btnFieldPick.Unique,
			Text:   label,
			Data:   string(field),
		}})
	}
	rows = append(rows, []telebot.InlineButton{{Unique: btnBackMenu.Unique, Text: "🔙 رجوع"}})
	return inlineMarkup(rows...)
}

// subscriberMenuKeyboard offers new-subscriber and edit-subscriber
// actions.
func subscriberMenuKeyboard() *telebot.ReplyMarkup {
	return inlineMarkup(
		[]telebot.InlineButton{{Unique: btnSubMenu.Unique, Text: "🆕 مشترك جديد", Data: "new"}},
		[]telebot.InlineButton{{Unique: btnSubMenu.Unique, Text: "🛠️ تعديل بيانات مشترك", Data: "edit"}},
		[]telebot.InlineButton{{Unique: btnSubMenu.Unique, Text: lblCancel, Data: "cancel"}},
	)
}

// adminMenuKeyboard is the administrator management submenu.
func adminMenuKeyboard() *telebot.ReplyMarkup {
	return inlineMarkup(
		[]telebot.InlineButton{{Unique: btnAdminMenu.Unique, Text: "➕ مسؤول جديد", Data: "add"}},
		[]telebot.InlineButton{{Unique: btnAdminMenu.Unique, Text: "🛠️ تعديل صلاحيات مسؤول", Data: "edit"}},
		[]telebot.InlineButton{{Unique: btnAdminMenu.Unique, Text: "🗑️ حذف مسؤول", Data: "del"}},
		[]telebot.InlineButton{{Unique: btnAdminMenu.Unique, Text: "📅 تقرير مجدول", Data: "schedule"}},
		[]telebot.InlineButton{{Unique: btnAdminMenu.Unique, Text: lblCancel, Data: "cancel"}},
	)
}

// adminListKeyboard lists accounts for the given follow-up action.
func adminListKeyboard(names []string, unique, prefix string) *telebot.ReplyMarkup {
	rows := make([][]telebot.InlineButton, 0, len(names)+1)
	for _, name := range names {
		rows = append(rows, []telebot.InlineButton{{Unique: unique, Text: prefix + name, Data: name}})
	}
	rows = append(rows, []telebot.InlineButton{{Unique: btnAdminMenu.Unique, Text: lblCancel, Data: "cancel"}})
	return inlineMarkup(rows...)
}

// permMatrixKeyboard builds the read/edit/hide matrix for one account:
// a label row per field followed by the three mode buttons.
func permMatrixKeyboard(username string) *telebot.ReplyMarkup {
	var rows [][]telebot.InlineButton
	for _, field := range models.BaseFields {
		rows = append(rows, []telebot.InlineButton{{Unique: btnFieldName.Unique, Text: string(field)}})
		rows = append(rows, []telebot.InlineButton{
			{Unique: btnPermSet.Unique, Text: "👁️ قراءة", Data: permData(username, field, "read")},
			{Unique: btnPermSet.Unique, Text: "✏️ تحرير", Data: permData(username, field, "edit")},
			{Unique: btnPermSet.Unique, Text: "🙈 إخفاء", Data: permData(username, field, "hide")},
		})
	}
	rows = append(rows, []telebot.InlineButton{{Unique: btnAdminMenu.Unique, Text: "🔙 رجوع", Data: "edit"}})
	return inlineMarkup(rows...)
}

func permData(username string, field models.Field, mode string) string {
	return username + ":" + string(field) + ":" + mode
}

// exportKeyboard offers the export document formats.
func exportKeyboard() *telebot.ReplyMarkup {
	return inlineMarkup(
		[]telebot.InlineButton{
			{Unique: btnExportKind.Unique, Text: "📄 PDF", Data: "pdf"},
			{Unique: btnExportKind.Unique, Text: "📊 Excel", Data: "excel"},
		},
		[]telebot.InlineButton{{Unique: btnExportKind.Unique, Text: lblCancel, Data: "cancel"}},
	)
}

// reportPeriodKeyboard offers the scheduled-report period filters.
func reportPeriodKeyboard() *telebot.ReplyMarkup {
	return inlineMarkup(
		[]telebot.InlineButton{{Unique: btnReportKind.Unique, Text: "📅 يوم محدد", Data: "day"}},
		[]telebot.InlineButton{{Unique: btnReportKind.Unique, Text: "📆 بين تاريخين", Data: "range"}},
		[]telebot.InlineButton{{Unique: btnReportKind.Unique, Text: "📜 كامل السجل", Data: "all"}},
		[]telebot.InlineButton{{Unique: btnReportKind.Unique, Text: lblCancel, Data: "cancel"}},
	)
}

// reportFormatKeyboard offers the scheduled-report document formats.
func reportFormatKeyboard() *telebot.ReplyMarkup {
	return inlineMarkup(
		[]telebot.InlineButton{
			{Unique: btnReportFormat.Unique, Text: "📄 PDF", Data: "pdf"},
			{Unique: btnReportFormat.Unique, Text: "📊 Excel", Data: "excel"},
		},
	)
}
