// Package perms resolves per-administrator field access policy.
package perms

import "github.com/koolexil/koolbot/internal/models"

// Mode is the access level an administrator has for one field.
type Mode uint8

const (
	ModeRead Mode = iota
	ModeEdit
	ModeHide
)

// String returns the mode name as stored in the account file.
func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "edit"
	case ModeHide:
		return "hide"
	default:
		return "read"
	}
}

// ParseMode maps a stored mode string back to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "read":
		return ModeRead, true
	case "edit":
		return ModeEdit, true
	case "hide":
		return ModeHide, true
	default:
		return ModeRead, false
	}
}

// editableByDefault are the operationally editable fields; every other
// field defaults to read-only.
var editableByDefault = map[models.Field]struct{}{
	models.FieldCurrReading: {},
	models.FieldPaid:        {},
	models.FieldArrears:     {},
	models.FieldPhone:       {},
	models.FieldName:        {},
}

// EditableByDefault reports whether field belongs to the static
// editable set.
func EditableByDefault(field models.Field) bool {
	_, ok := editableByDefault[field]
	return ok
}

// Default is the policy applied when an account carries no explicit
// entry for the field.
func Default(field models.Field) Mode {
	if EditableByDefault(field) {
		return ModeEdit
	}
	return ModeRead
}

// Resolve returns the access mode of the named administrator for the
// field: the explicit per-field entry when present, the static default
// otherwise. An unknown username falls through to the default. The
// policy is evaluated fresh on every call because the account store may
// change between calls.
func Resolve(admins models.AdminList, username string, field models.Field) Mode {
	if admin, ok := admins.Find(username); ok {
		if raw, ok := admin.PerField[field]; ok {
			if mode, valid := ParseMode(raw); valid {
				return mode
			}
		}
	}
	return Default(field)
}
