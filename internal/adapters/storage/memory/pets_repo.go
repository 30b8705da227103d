package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-health/internal/domain/pets"
)

var (
	ErrNotFound = errors.New("not found")
)

// petRepo indexa por dueño: ListByOwner es la lectura de /me/health.
type petRepo struct {
	mu      sync.RWMutex
	byID    map[string]pets.Pet
	byOwner map[string]map[string]struct{}
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID:    make(map[string]pets.Pet),
		byOwner: make(map[string]map[string]struct{}),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if strings.TrimSpace(p.OwnerUserID) == "" {
		return errors.New("pet owner required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}

	r.byID[p.ID] = p
	ids, ok := r.byOwner[p.OwnerUserID]
	if !ok {
		ids = make(map[string]struct{})
		r.byOwner[p.OwnerUserID] = ids
	}
	ids[p.ID] = struct{}{}
	return nil
}

// Update reemplaza el perfil. Igual que en Postgres, el dueño y CreatedAt
// no cambian por esta vía.
func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	stored, exists := r.byID[p.ID]
	if !exists {
		return ErrNotFound
	}

	p.OwnerUserID = stored.OwnerUserID
	p.CreatedAt = stored.CreatedAt
	r.byID[p.ID] = p
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byOwner[ownerUserID]
	out := make([]pets.Pet, 0, len(ids))
	for id := range ids {
		out = append(out, r.byID[id])
	}

	// created_at asc, como el índice pets_owner_idx; el ID desempata
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
