package vaccines

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("vaccine not found")
)

// DeriveStatus calcula la vigencia respecto de now.
// Sin próxima dosis la vacuna se considera vigente.
func DeriveStatus(nextDue *time.Time, now time.Time) Status {
	if nextDue == nil || nextDue.IsZero() {
		return StatusValid
	}
	if nextDue.Before(now) {
		return StatusOverdue
	}
	if nextDue.Sub(now) <= ExpiringWindow {
		return StatusExpiringSoon
	}
	return StatusValid
}

type Service struct {
	repo     Repository
	now      func() time.Time
	onChange func(ctx context.Context, petID string)
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		now:      time.Now,
		onChange: func(context.Context, string) {},
	}
}

func (s *Service) OnChange(fn func(ctx context.Context, petID string)) {
	if fn != nil {
		s.onChange = fn
	}
}

type CreateInput struct {
	Name           string
	Type           string
	AdministeredAt time.Time
	NextDue        *time.Time
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Vaccine, error) {
	if strings.TrimSpace(petID) == "" || strings.TrimSpace(in.Name) == "" {
		return Vaccine{}, ErrInvalidInput
	}
	if in.AdministeredAt.IsZero() {
		return Vaccine{}, ErrInvalidInput
	}
	if in.NextDue != nil && in.NextDue.Before(in.AdministeredAt) {
		return Vaccine{}, ErrInvalidInput
	}

	now := s.now()
	v := Vaccine{
		ID:             uuid.NewString(),
		PetID:          petID,
		Name:           strings.TrimSpace(in.Name),
		Type:           strings.TrimSpace(in.Type),
		AdministeredAt: in.AdministeredAt.UTC(),
		Status:         DeriveStatus(in.NextDue, now),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.NextDue != nil {
		due := in.NextDue.UTC()
		v.NextDue = &due
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return Vaccine{}, err
	}
	s.onChange(ctx, petID)
	return v, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Vaccine, error) {
	return s.repo.ListByPet(ctx, petID)
}

func (s *Service) Delete(ctx context.Context, petID, id string) error {
	v, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil || v.PetID != petID {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, v.ID); err != nil {
		return err
	}
	s.onChange(ctx, petID)
	return nil
}

// RefreshStatuses recalcula el estado persistido de cada vacuna de la mascota
// y guarda solo las que cambiaron. Devuelve cuántas se actualizaron.
func (s *Service) RefreshStatuses(ctx context.Context, petID string) (int, error) {
	list, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return 0, err
	}

	now := s.now()
	updated := 0
	for _, v := range list {
		st := DeriveStatus(v.NextDue, now)
		if st == v.Status {
			continue
		}
		v.Status = st
		v.UpdatedAt = now
		if err := s.repo.Update(ctx, v); err != nil {
			return updated, err
		}
		updated++
	}
	if updated > 0 {
		s.onChange(ctx, petID)
	}
	return updated, nil
}
