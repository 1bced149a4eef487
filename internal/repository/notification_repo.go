package repository

import (
	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/storage"
)

// NotificationRepository defines the data access contract for notifications.
// Generation passes rewrite the whole collection (dedup + 30-day prune), so
// the interface exposes a snapshot replace rather than per-record deletes.
type NotificationRepository interface {
	All() ([]model.Notification, error)
	ReplaceAll(ns []model.Notification) error
}

type notificationRepo struct {
	col *storage.ListCollection[model.Notification]
}

// NewNotificationRepository returns a repository backed by notifications.json.
func NewNotificationRepository(s *storage.Store) NotificationRepository {
	return &notificationRepo{col: storage.NewListCollection[model.Notification](s, storage.NotificationsFile)}
}

func (r *notificationRepo) All() ([]model.Notification, error)      { return r.col.Load() }
func (r *notificationRepo) ReplaceAll(ns []model.Notification) error { return r.col.Save(ns) }
