package models

// Default administrator account created when the account store is empty.
const (
	DefaultAdminName = "مدير"
	DefaultAdminPin  = "1234"
)

// Admin is one operator account. PerField maps a canonical field to an
// access mode string ("read", "edit" or "hide"); fields absent from the
// map fall back to the static policy default.
type Admin struct {
	Username string           `json:"username"`
	Pin      string           `json:"pin"`
	PerField map[Field]string `json:"per_field"`
}

// AdminList is the on-disk shape of the administrator account store.
type AdminList struct {
	Users []Admin `json:"users"`
}

// DefaultAdminList returns the bootstrap account store with the single
// root administrator.
func DefaultAdminList() AdminList {
	return AdminList{Users: []Admin{
		{Username: DefaultAdminName, Pin: DefaultAdminPin, PerField: map[Field]string{}},
	}}
}

// Names returns the usernames of all accounts, skipping empty ones.
func (l AdminList) Names() []string {
	names := make([]string, 0, len(l.Users))
	for _, u := range l.Users {
		if u.Username != "" {
			names = append(names, u.Username)
		}
	}
	return names
}

// Find returns the account with the given username, if present.
func (l AdminList) Find(username string) (Admin, bool) {
	for _, u := range l.Users {
		if u.Username == username {
			return u, true
		}
	}
	return Admin{}, false
}
