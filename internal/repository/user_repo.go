package repository

import (
	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/storage"
)

// UserRepository defines the data access contract for the users mapping
// (username → account).
type UserRepository interface {
	All() (map[string]model.User, error)
	FindByUsername(username string) (*model.User, error)
	Upsert(username string, u model.User) error
	Delete(username string) error
}

type userRepo struct {
	col *storage.MapCollection[model.User]
}

// NewUserRepository returns a UserRepository backed by users.json.
func NewUserRepository(s *storage.Store) UserRepository {
	return &userRepo{col: storage.NewMapCollection[model.User](s, storage.UsersFile)}
}

func (r *userRepo) All() (map[string]model.User, error) { return r.col.Load() }

func (r *userRepo) FindByUsername(username string) (*model.User, error) {
	users, err := r.col.Load()
	if err != nil {
		return nil, err
	}
	u, ok := users[username]
	if !ok {
		return nil, &storage.Error{Kind: storage.KindValidation, Op: "find", File: r.col.Name(),
			Msg: "user not found: " + username}
	}
	return &u, nil
}

func (r *userRepo) Upsert(username string, u model.User) error {
	users, err := r.col.Load()
	if err != nil {
		return err
	}
	users[username] = u
	return r.col.Save(users)
}

func (r *userRepo) Delete(username string) error {
	users, err := r.col.Load()
	if err != nil {
		return err
	}
	if _, ok := users[username]; !ok {
		return &storage.Error{Kind: storage.KindValidation, Op: "delete", File: r.col.Name(),
			Msg: "user not found: " + username}
	}
	delete(users, username)
	return r.col.Save(users)
}

// SettingsRepository defines access to the settings mapping.
type SettingsRepository interface {
	Get() (map[string]any, error)
	Save(settings map[string]any) error
}

type settingsRepo struct {
	col *storage.MapCollection[any]
}

// NewSettingsRepository returns a SettingsRepository backed by settings.json.
func NewSettingsRepository(s *storage.Store) SettingsRepository {
	return &settingsRepo{col: storage.NewMapCollection[any](s, storage.SettingsFile)}
}

func (r *settingsRepo) Get() (map[string]any, error)          { return r.col.Load() }
func (r *settingsRepo) Save(settings map[string]any) error    { return r.col.Save(settings) }
