package notifications

import (
	"context"
	"time"
)

type Repository interface {
	// Create falla con ErrAlreadyPending si n no está leída y el dueño ya
	// tiene otra sin leer con la misma key.
	Create(ctx context.Context, n Notification) error
	GetByID(ctx context.Context, id string) (Notification, error)
	// HasUnread indica si el dueño ya tiene una notificación sin leer con esa key.
	HasUnread(ctx context.Context, ownerUserID, key string) (bool, error)
	// ListByOwner devuelve lo más reciente primero.
	ListByOwner(ctx context.Context, ownerUserID string, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id string, at time.Time) error
}

// Deliverer entrega la notificación fuera del sistema (webhook, push...).
type Deliverer interface {
	Deliver(ctx context.Context, n Notification) error
}
