package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"pet-health/internal/domain/notifications"
)

type notificationRepo struct {
	mu   sync.RWMutex
	byID map[string]notifications.Notification
}

func NewNotificationRepo() notifications.Repository {
	return &notificationRepo{
		byID: make(map[string]notifications.Notification),
	}
}

func (r *notificationRepo) Create(ctx context.Context, n notifications.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n.ID == "" {
		return errors.New("notification id required")
	}
	if _, exists := r.byID[n.ID]; exists {
		return errors.New("notification already exists")
	}
	if !n.Read && r.hasUnreadLocked(n.OwnerUserID, n.Key) {
		return notifications.ErrAlreadyPending
	}
	r.byID[n.ID] = n
	return nil
}

func (r *notificationRepo) GetByID(ctx context.Context, id string) (notifications.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.byID[id]
	if !ok {
		return notifications.Notification{}, ErrNotFound
	}
	return n, nil
}

func (r *notificationRepo) HasUnread(ctx context.Context, ownerUserID, key string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.hasUnreadLocked(ownerUserID, key), nil
}

func (r *notificationRepo) hasUnreadLocked(ownerUserID, key string) bool {
	for _, n := range r.byID {
		if n.OwnerUserID == ownerUserID && n.Key == key && !n.Read {
			return true
		}
	}
	return false
}

func (r *notificationRepo) ListByOwner(ctx context.Context, ownerUserID string, unreadOnly bool) ([]notifications.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]notifications.Notification, 0)
	for _, n := range r.byID {
		if n.OwnerUserID != ownerUserID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	n.Read = true
	n.ReadAt = &at
	r.byID[id] = n
	return nil
}
