package activities

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a Activity) error
	GetByID(ctx context.Context, id string) (Activity, error)
	ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Activity, error)
	// ListAllByPet devuelve el historial completo, sin límite, más reciente primero.
	ListAllByPet(ctx context.Context, petID string) ([]Activity, error)
	Delete(ctx context.Context, id string) error
}

// ListFilter: Limit <= 0 => 50. El resultado va ordenado por OccurredAt desc.
type ListFilter struct {
	Types []Type
	From  *time.Time
	To    *time.Time
	Query string
	Limit int
}
