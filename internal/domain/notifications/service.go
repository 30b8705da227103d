package notifications

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-health/internal/domain/healthscore"
	"pet-health/internal/platform/logger"
	"pet-health/internal/platform/metrics"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("notification not found")
	ErrForbidden    = errors.New("forbidden")

	// ErrAlreadyPending lo devuelve el repo cuando el dueño ya tiene sin leer
	// una notificación con la misma key.
	ErrAlreadyPending = errors.New("notification already pending")
)

type Service struct {
	repo      Repository
	deliverer Deliverer
	log       logger.Logger
	now       func() time.Time
}

// NewService: deliverer puede ser nil (solo se persiste, sin envío externo).
func NewService(repo Repository, deliverer Deliverer, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		repo:      repo,
		deliverer: deliverer,
		log:       log,
		now:       time.Now,
	}
}

// Publish guarda los intents que el dueño todavía no tiene pendientes y los entrega.
// Devuelve solo las notificaciones nuevas. Un fallo de entrega no corta el publish.
func (s *Service) Publish(ctx context.Context, ownerUserID string, intents []healthscore.NotificationIntent) ([]Notification, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return nil, ErrInvalidInput
	}

	out := make([]Notification, 0, len(intents))
	for _, in := range intents {
		if strings.TrimSpace(in.Key) == "" {
			return out, ErrInvalidInput
		}

		exists, err := s.repo.HasUnread(ctx, ownerUserID, in.Key)
		if err != nil {
			return out, err
		}
		if exists {
			continue
		}

		n := Notification{
			ID:          uuid.NewString(),
			OwnerUserID: ownerUserID,
			PetID:       in.PetID,
			Key:         in.Key,
			Type:        in.Type,
			Title:       in.Title,
			Message:     in.Message,
			ActionPath:  in.ActionPath,
			ActionLabel: in.ActionLabel,
			Priority:    in.Priority,
			CreatedAt:   s.now(),
		}
		// HasUnread solo evita trabajo; la garantía la da Create.
		err = s.repo.Create(ctx, n)
		if errors.Is(err, ErrAlreadyPending) {
			continue
		}
		if err != nil {
			return out, err
		}
		out = append(out, n)

		s.deliver(ctx, n)
	}
	return out, nil
}

func (s *Service) deliver(ctx context.Context, n Notification) {
	if s.deliverer == nil {
		return
	}
	if err := s.deliverer.Deliver(ctx, n); err != nil {
		metrics.NotificationsDelivered.WithLabelValues("error").Inc()
		s.log.Warn("notification delivery failed", map[string]any{
			"notification_id": n.ID,
			"key":             n.Key,
			"err":             err,
		})
		return
	}
	metrics.NotificationsDelivered.WithLabelValues("ok").Inc()
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string, unreadOnly bool) ([]Notification, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerUserID, unreadOnly)
}

// MarkRead es idempotente: marcar dos veces no falla.
func (s *Service) MarkRead(ctx context.Context, ownerUserID, id string) (Notification, error) {
	n, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Notification{}, ErrNotFound
	}
	if n.OwnerUserID != ownerUserID {
		return Notification{}, ErrForbidden
	}
	if n.Read {
		return n, nil
	}

	at := s.now()
	if err := s.repo.MarkRead(ctx, n.ID, at); err != nil {
		return Notification{}, err
	}
	n.Read = true
	n.ReadAt = &at
	return n, nil
}
