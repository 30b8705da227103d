package activities

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("activity not found")
)

// MaxLimit acota cuántas entradas devuelve un listado.
const MaxLimit = 200

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
	Type        Type
	OccurredAt  time.Time
	Title       string
	Description string
	Source      Source
}

func (s *Service) Create(ctx context.Context, petID, actorID string, in CreateInput) (Activity, error) {
	if strings.TrimSpace(petID) == "" || strings.TrimSpace(actorID) == "" {
		return Activity{}, ErrInvalidInput
	}
	typ := Type(strings.ToLower(strings.TrimSpace(string(in.Type))))
	if !typ.Valid() {
		return Activity{}, ErrInvalidInput
	}
	if in.OccurredAt.IsZero() {
		return Activity{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" && strings.TrimSpace(in.Description) == "" {
		return Activity{}, ErrInvalidInput
	}

	src := in.Source
	if src == "" {
		src = SourceManual
	}

	a := Activity{
		ID:          uuid.NewString(),
		PetID:       petID,
		Type:        typ,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		OccurredAt:  in.OccurredAt.UTC(),
		RecordedAt:  s.now(),
		ActorID:     actorID,
		Source:      src,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Activity{}, err
	}
	s.onChange(ctx, petID)
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Activity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Activity{}, ErrInvalidInput
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Activity{}, ErrNotFound
	}
	return a, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Activity, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}
	return s.repo.ListByPet(ctx, petID, filter)
}

// All devuelve el historial completo, usado para el score. MaxLimit solo
// acota los listados.
func (s *Service) All(ctx context.Context, petID string) ([]Activity, error) {
	return s.repo.ListAllByPet(ctx, petID)
}

// Delete borra la entrada si pertenece a petID.
func (s *Service) Delete(ctx context.Context, petID, id string) error {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.PetID != petID {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.onChange(ctx, petID)
	return nil
}
