package vaccines

import "context"

type Repository interface {
	Create(ctx context.Context, v Vaccine) error
	Update(ctx context.Context, v Vaccine) error
	GetByID(ctx context.Context, id string) (Vaccine, error)
	// ListByPet devuelve las vacunas ordenadas por AdministeredAt desc.
	ListByPet(ctx context.Context, petID string) ([]Vaccine, error)
	Delete(ctx context.Context, id string) error
}
