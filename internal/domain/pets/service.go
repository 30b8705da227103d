package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
	ErrForbidden    = errors.New("forbidden")
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

// OnChange registra un callback que se llama tras cada alta/modificación.
// Lo usa insights para invalidar reportes cacheados.
func (s *Service) OnChange(fn func(ctx context.Context, petID string)) {
	if fn != nil {
		s.onChange = fn
	}
}

type CreateInput struct {
	Name      string
	Species   string
	Breed     string
	Sex       string
	Weight    string
	Age       string
	Microchip string
	Status    string
	Notes     string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}

	status := Status(strings.TrimSpace(in.Status))
	if status == "" {
		status = StatusHealthy
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Species:     Species(strings.ToLower(strings.TrimSpace(in.Species))),
		Breed:       strings.TrimSpace(in.Breed),
		Sex:         Sex(strings.ToLower(strings.TrimSpace(in.Sex))),
		Weight:      strings.TrimSpace(in.Weight),
		Age:         strings.TrimSpace(in.Age),
		Microchip:   strings.TrimSpace(in.Microchip),
		Status:      status,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Sex == "" {
		p.Sex = SexUnknown
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	s.onChange(ctx, p.ID)
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// OwnerOf expone el ownerUserID de una mascota.
// Los demás módulos lo consumen vía interfaz para no importar pets.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}

// UpdateProfileInput usa punteros para PATCH real: nil = no tocar.
type UpdateProfileInput struct {
	Name      *string
	Species   *string
	Breed     *string
	Sex       *string
	Weight    *string
	Age       *string
	Microchip *string
	Status    *string
	Notes     *string
}

func (s *Service) UpdateProfile(ctx context.Context, petID, userID string, in UpdateProfileInput) (Pet, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerUserID != strings.TrimSpace(userID) {
		return Pet{}, ErrForbidden
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Species != nil {
		p.Species = Species(strings.ToLower(strings.TrimSpace(*in.Species)))
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		p.Sex = Sex(strings.ToLower(strings.TrimSpace(*in.Sex)))
	}
	if in.Weight != nil {
		p.Weight = strings.TrimSpace(*in.Weight)
	}
	if in.Age != nil {
		p.Age = strings.TrimSpace(*in.Age)
	}
	if in.Microchip != nil {
		p.Microchip = strings.TrimSpace(*in.Microchip)
	}
	if in.Status != nil {
		st := Status(strings.TrimSpace(*in.Status))
		if st == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Status = st
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	s.onChange(ctx, p.ID)
	return p, nil
}
