package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/koolexil/koolbot/internal/models"
)

// ErrDuplicateAdmin is returned when adding an account whose username
// already exists.
var ErrDuplicateAdmin = errors.New("administrator with this username already exists")

// AdminStore loads and saves the administrator account file. An absent,
// empty or unreadable file yields the single default root account.
type AdminStore struct {
	path string
}

// NewAdminStore returns a store over the JSON account file at path.
func NewAdminStore(path string) *AdminStore {
	return &AdminStore{path: path}
}

// Load reads all accounts, bootstrapping the default account when the
// file is missing, empty or corrupt.
func (s *AdminStore) Load() (models.AdminList, error) {
	if err := s.ensureExists(); err != nil {
		return models.AdminList{}, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return models.AdminList{}, fmt.Errorf("failed to read admin file: %w", err)
	}

	var list models.AdminList
	if err = json.Unmarshal(data, &list); err != nil || len(list.Users) == 0 {
		return models.DefaultAdminList(), nil
	}
	return list, nil
}

// Save writes the account list back to disk.
func (s *AdminStore) Save(list models.AdminList) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode admin file: %w", err)
	}
	if err = os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write admin file: %w", err)
	}
	return nil
}

// Add appends a new account, rejecting duplicate usernames.
func (s *AdminStore) Add(admin models.Admin) error {
	list, err := s.Load()
	if err != nil {
		return err
	}
	if _, exists := list.Find(admin.Username); exists {
		return ErrDuplicateAdmin
	}
	if admin.PerField == nil {
		admin.PerField = map[models.Field]string{}
	}
	list.Users = append(list.Users, admin)
	return s.Save(list)
}

// Delete removes the account with the given username, if present.
func (s *AdminStore) Delete(username string) error {
	list, err := s.Load()
	if err != nil {
		return err
	}
	kept := list.Users[:0]
	for _, u := range list.Users {
		if u.Username != username {
			kept = append(kept, u)
		}
	}
	list.Users = kept
	return s.Save(list)
}

// SetPermission records the access mode of one field for the named
// administrator, creating the account with the default pin when it does
// not exist yet.
func (s *AdminStore) SetPermission(username string, field models.Field, mode string) error {
	list, err := s.Load()
	if err != nil {
		return err
	}
	for i := range list.Users {
		if list.Users[i].Username == username {
			if list.Users[i].PerField == nil {
				list.Users[i].PerField = map[models.Field]string{}
			}
			list.Users[i].PerField[field] = mode
			return s.Save(list)
		}
	}
	list.Users = append(list.Users, models.Admin{
		Username: username,
		Pin:      models.DefaultAdminPin,
		PerField: map[models.Field]string{field: mode},
	})
	return s.Save(list)
}

// ensureExists writes the default account file when the file is absent
// or empty.
func (s *AdminStore) ensureExists() error {
	info, err := os.Stat(s.path)
	if err == nil && info.Size() > 0 {
		return nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat admin file: %w", err)
	}
	return s.Save(models.DefaultAdminList())
}
