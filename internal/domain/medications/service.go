package medications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medication not found")
	ErrAlreadyEnded = errors.New("medication already ended")
)

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
	Name      string
	Dosage    string
	Frequency string
	StartDate time.Time
	EndDate   *time.Time
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Medication, error) {
	if strings.TrimSpace(petID) == "" || strings.TrimSpace(in.Name) == "" {
		return Medication{}, ErrInvalidInput
	}
	if in.StartDate.IsZero() {
		return Medication{}, ErrInvalidInput
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return Medication{}, ErrInvalidInput
	}

	now := s.now()
	m := Medication{
		ID:        uuid.NewString(),
		PetID:     petID,
		Name:      strings.TrimSpace(in.Name),
		Dosage:    strings.TrimSpace(in.Dosage),
		Frequency: strings.TrimSpace(in.Frequency),
		StartDate: in.StartDate.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.EndDate != nil {
		end := in.EndDate.UTC()
		m.EndDate = &end
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medication{}, err
	}
	s.onChange(ctx, petID)
	return m, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Medication, error) {
	return s.repo.ListByPet(ctx, petID)
}

// Stop cierra el tratamiento ahora. Falla si ya no estaba activo.
func (s *Service) Stop(ctx context.Context, petID, id string) (Medication, error) {
	m, err := s.get(ctx, petID, id)
	if err != nil {
		return Medication{}, err
	}

	now := s.now()
	if !m.IsActive(now) {
		return Medication{}, ErrAlreadyEnded
	}
	m.EndDate = &now
	m.UpdatedAt = now
	if err := s.repo.Update(ctx, m); err != nil {
		return Medication{}, err
	}
	s.onChange(ctx, petID)
	return m, nil
}

func (s *Service) Delete(ctx context.Context, petID, id string) error {
	m, err := s.get(ctx, petID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, m.ID); err != nil {
		return err
	}
	s.onChange(ctx, petID)
	return nil
}

func (s *Service) get(ctx context.Context, petID, id string) (Medication, error) {
	m, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil || m.PetID != petID {
		return Medication{}, ErrNotFound
	}
	return m, nil
}
