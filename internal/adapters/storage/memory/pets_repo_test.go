package memory

import (
	"context"
	"testing"
	"time"

	"pet-health/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPetRepo_ListByOwner_Ordered(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()
	t0 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "b", OwnerUserID: "owner-1", CreatedAt: t0}))
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "a", OwnerUserID: "owner-1", CreatedAt: t0}))
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "c", OwnerUserID: "owner-1", CreatedAt: t0.Add(-time.Hour)}))
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "x", OwnerUserID: "owner-2", CreatedAt: t0}))

	list, err := repo.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)

	none, err := repo.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPetRepo_Create_Validation(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()

	assert.Error(t, repo.Create(ctx, pets.Pet{OwnerUserID: "owner-1"}))
	assert.Error(t, repo.Create(ctx, pets.Pet{ID: "p1"}))
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p1", OwnerUserID: "owner-1"}))
	assert.Error(t, repo.Create(ctx, pets.Pet{ID: "p1", OwnerUserID: "owner-1"}))
}

func TestPetRepo_Update_KeepsOwnerAndCreatedAt(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p1", OwnerUserID: "owner-1", Name: "Milo", CreatedAt: created}))

	err := repo.Update(ctx, pets.Pet{ID: "p1", OwnerUserID: "intruder", Name: "Milo", Weight: "12 kg", Microchip: "985112"})
	require.NoError(t, err)

	p, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", p.OwnerUserID)
	assert.Equal(t, created, p.CreatedAt)
	assert.Equal(t, "12 kg", p.Weight)
	assert.Equal(t, "985112", p.Microchip)

	// el índice por dueño no se mueve
	list, err := repo.ListByOwner(ctx, "intruder")
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, repo.Update(ctx, pets.Pet{ID: "missing"}), ErrNotFound)
}
