package notifications

import (
	"time"

	"pet-health/internal/domain/healthscore"
)

// Notification es un NotificationIntent ya persistido para un dueño.
type Notification struct {
	ID          string
	OwnerUserID string
	PetID       string

	// Key deduplica: no puede haber dos no leídas con la misma (owner, key).
	Key  string
	Type string

	Title       string
	Message     string
	ActionPath  string
	ActionLabel string
	Priority    healthscore.Priority

	Read      bool
	ReadAt    *time.Time
	CreatedAt time.Time
}
