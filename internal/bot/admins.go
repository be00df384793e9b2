package bot

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/koolexil/koolbot/internal/models"
	"github.com/koolexil/koolbot/internal/perms"
	"github.com/koolexil/koolbot/internal/store"
)

// adminMenuHandler routes the administrator submenu.
func (b *Bot) adminMenuHandler(ctx telebot.Context) error {
	sess := b.session(ctx)
	switch ctx.Data() {
	case "add":
		_ = ctx.Respond(&telebot.CallbackResponse{Text: "إضافة مسؤول"})
		sess.Reset()
		sess.Mode = ModeAdminNewName
		return b.send(ctx, "أدخل اسم المسؤول الجديد:", mainMenu)
	case "edit":
		_ = ctx.Respond(&telebot.CallbackResponse{Text: "تعديل الصلاحيات"})
		list, err := b.admins.Load()
		if err != nil {
			b.log.Error("Failed to load admins", "error", err)
			return b.send(ctx, msgInternalError, mainMenu)
		}
		return b.send(ctx, "اختر المسؤول لتعديل صلاحياته:", adminListKeyboard(list.Names(), btnAdminPick.Unique, "✏️ "))
	case "del":
		_ = ctx.Respond(&telebot.CallbackResponse{Text: "حذف مسؤول"})
		list, err := b.admins.Load()
		if err != nil {
			b.log.Error("Failed to load admins", "error", err)
			return b.send(ctx, msgInternalError, mainMenu)
		}
		return b.send(ctx, "اختر المسؤول المراد حذفه:", adminListKeyboard(list.Names(), btnAdminDelete.Unique, "🗑️ "))
	case "schedule":
		_ = ctx.Respond(&telebot.CallbackResponse{Text: "تقرير مجدول"})
		sess.Reset()
		return b.send(ctx, "اختر مدة التقرير:", reportPeriodKeyboard())
	default:
		sess.Reset()
		_ = ctx.Respond(&telebot.CallbackResponse{Text: msgCancelled})
		return b.send(ctx, msgCancelled, mainMenu)
	}
}

// adminPickHandler opens the per-field permission matrix for one admin.
func (b *Bot) adminPickHandler(ctx telebot.Context) error {
	username := ctx.Data()
	if username == "" {
		return ctx.Respond(&telebot.CallbackResponse{Text: msgInternalError})
	}
	_ = ctx.Respond(&telebot.CallbackResponse{Text: username})

	sess := b.session(ctx)
	sess.PermTarget = username

	return b.send(ctx, "تعديل صلاحيات: "+username, permMatrixKeyboard(username))
}

// adminDeleteHandler removes an administrator account.
func (b *Bot) adminDeleteHandler(ctx telebot.Context) error {
	username := ctx.Data()
	if err := b.admins.Delete(username); err != nil {
		b.log.Error("Failed to delete admin", "username", username, "error", err)
		_ = ctx.Respond(&telebot.CallbackResponse{Text: msgInternalError})
		return b.send(ctx, msgInternalError, mainMenu)
	}
	_ = ctx.Respond(&telebot.CallbackResponse{Text: "تم الحذف"})

	return b.send(ctx, "🗑️ تم حذف: "+username, mainMenu)
}

// permSetHandler persists a single read/edit/hide choice. Payloads are
// "username:field:mode"; a mangled mode degrades to read.
func (b *Bot) permSetHandler(ctx telebot.Context) error {
	parts := strings.SplitN(ctx.Data(), ":", 3)
	if len(parts) != 3 {
		return ctx.Respond(&telebot.CallbackResponse{Text: msgInternalError})
	}
	username, field, rawMode := parts[0], models.Field(parts[1]), parts[2]

	mode, ok := perms.ParseMode(rawMode)
	if !ok {
		mode = perms.ModeRead
	}

	if err := b.admins.SetPermission(username, field, mode.String()); err != nil {
		b.log.Error("Failed to save permission", "username", username, "field", field, "error", err)
		return ctx.Respond(&telebot.CallbackResponse{Text: msgInternalError})
	}
	_ = ctx.Respond(&telebot.CallbackResponse{Text: "تم الحفظ"})

	return b.send(ctx, fmt.Sprintf("✅ %s ← %s: %s", username, field, mode), permMatrixKeyboard(username))
}

// handleAdminName captures the username step of admin creation.
func (b *Bot) handleAdminName(ctx telebot.Context, sess *Session, input string) error {
	if strings.TrimSpace(input) == "" {
		return b.send(ctx, "أدخل اسمًا صالحًا.", mainMenu)
	}
	sess.NewAdminName = input
	sess.Mode = ModeAdminNewPin

	return b.send(ctx, "أدخل رمز الدخول (PIN):", mainMenu)
}

// handleAdminPin finishes admin creation with the default field policy.
func (b *Bot) handleAdminPin(ctx telebot.Context, sess *Session, input string) error {
	name := sess.NewAdminName
	sess.Reset()

	admin := models.Admin{Username: name, Pin: input, PerField: map[models.Field]string{}}
	if err := b.admins.Add(admin); err != nil {
		if errors.Is(err, store.ErrDuplicateAdmin) {
			return b.send(ctx, "⚠️ هذا الاسم موجود مسبقًا.", mainMenu)
		}
		b.log.Error("Failed to add admin", "username", name, "error", err)
		return b.send(ctx, msgInternalError, mainMenu)
	}

	return b.send(ctx, "✅ تم إضافة المسؤول: "+name, mainMenu)
}
