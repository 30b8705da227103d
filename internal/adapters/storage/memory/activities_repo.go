package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-health/internal/domain/activities"
)

type activityRepo struct {
	mu   sync.RWMutex
	byID map[string]activities.Activity
}

func NewActivityRepo() activities.Repository {
	return &activityRepo{
		byID: make(map[string]activities.Activity),
	}
}

func (r *activityRepo) Create(ctx context.Context, a activities.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == "" {
		return errors.New("activity id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("activity already exists")
	}

	r.byID[a.ID] = a
	return nil
}

func (r *activityRepo) GetByID(ctx context.Context, id string) (activities.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return activities.Activity{}, ErrNotFound
	}
	return a, nil
}

func (r *activityRepo) ListByPet(ctx context.Context, petID string, filter activities.ListFilter) ([]activities.Activity, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	out := r.matching(petID, filter)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *activityRepo) ListAllByPet(ctx context.Context, petID string) ([]activities.Activity, error) {
	return r.matching(petID, activities.ListFilter{}), nil
}

// matching aplica los filtros (ignora Limit) y ordena por OccurredAt desc.
func (r *activityRepo) matching(petID string, filter activities.ListFilter) []activities.Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]activities.Activity, 0)
	for _, a := range r.byID {
		if a.PetID != petID {
			continue
		}
		if !matchesType(a.Type, filter.Types) {
			continue
		}

		// Fechas (occurred_at), ambos extremos inclusivos
		if filter.From != nil && a.OccurredAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && a.OccurredAt.After(*filter.To) {
			continue
		}

		if q := strings.TrimSpace(filter.Query); q != "" {
			hay := strings.ToLower(a.Title + " " + a.Description)
			if !strings.Contains(hay, strings.ToLower(q)) {
				continue
			}
		}

		out = append(out, a)
	}

	// Más reciente primero
	sort.Slice(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})
	return out
}

func (r *activityRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func matchesType(t activities.Type, types []activities.Type) bool {
	if len(types) == 0 {
		return true
	}
	for _, want := range types {
		if t == want {
			return true
		}
	}
	return false
}
