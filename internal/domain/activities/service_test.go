package activities_test

import (
	"context"
	"testing"
	"time"

	"pet-health/internal/adapters/storage/memory"
	"pet-health/internal/domain/activities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, 6, d, 9, 0, 0, 0, time.UTC)
}

func TestService_Create_Validation(t *testing.T) {
	svc := activities.NewService(memory.NewActivityRepo())
	ctx := context.Background()

	cases := []struct {
		name  string
		petID string
		in    activities.CreateInput
	}{
		{"sin pet", "", activities.CreateInput{Type: activities.TypeNote, OccurredAt: day(1), Title: "x"}},
		{"tipo desconocido", "pet-1", activities.CreateInput{Type: "grooming", OccurredAt: day(1), Title: "x"}},
		{"sin fecha", "pet-1", activities.CreateInput{Type: activities.TypeNote, Title: "x"}},
		{"sin texto", "pet-1", activities.CreateInput{Type: activities.TypeNote, OccurredAt: day(1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.petID, "owner-1", tc.in)
			assert.ErrorIs(t, err, activities.ErrInvalidInput)
		})
	}
}

func TestService_Create_NormalizesAndNotifies(t *testing.T) {
	svc := activities.NewService(memory.NewActivityRepo())

	var changed []string
	svc.OnChange(func(_ context.Context, petID string) { changed = append(changed, petID) })

	a, err := svc.Create(context.Background(), "pet-1", "owner-1", activities.CreateInput{
		Type:       " Vitals ",
		OccurredAt: day(3),
		Title:      "  Weight 12 kg ",
	})
	require.NoError(t, err)

	assert.Equal(t, activities.TypeVitals, a.Type)
	assert.Equal(t, "Weight 12 kg", a.Title)
	assert.Equal(t, activities.SourceManual, a.Source)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, []string{"pet-1"}, changed)
}

func TestService_ListByPet_FiltersAndOrder(t *testing.T) {
	svc := activities.NewService(memory.NewActivityRepo())
	ctx := context.Background()

	mk := func(petID string, typ activities.Type, d int, title string) {
		_, err := svc.Create(ctx, petID, "owner-1", activities.CreateInput{Type: typ, OccurredAt: day(d), Title: title})
		require.NoError(t, err)
	}
	mk("pet-1", activities.TypeVitals, 1, "Weight 10 kg")
	mk("pet-1", activities.TypeCheckup, 5, "Annual vet visit")
	mk("pet-1", activities.TypeNote, 9, "Ate grass")
	mk("pet-2", activities.TypeCheckup, 7, "Other pet")

	all, err := svc.ListByPet(ctx, "pet-1", activities.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Ate grass", all[0].Title)
	assert.Equal(t, "Weight 10 kg", all[2].Title)

	only, err := svc.ListByPet(ctx, "pet-1", activities.ListFilter{Types: []activities.Type{activities.TypeCheckup}})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "Annual vet visit", only[0].Title)

	from, to := day(1), day(5)
	ranged, err := svc.ListByPet(ctx, "pet-1", activities.ListFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	q, err := svc.ListByPet(ctx, "pet-1", activities.ListFilter{Query: "WEIGHT"})
	require.NoError(t, err)
	require.Len(t, q, 1)

	limited, err := svc.ListByPet(ctx, "pet-1", activities.ListFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestService_Delete(t *testing.T) {
	svc := activities.NewService(memory.NewActivityRepo())
	ctx := context.Background()

	a, err := svc.Create(ctx, "pet-1", "owner-1", activities.CreateInput{Type: activities.TypeNote, OccurredAt: day(2), Title: "x"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, "pet-2", a.ID), activities.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, "pet-1", a.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "pet-1", a.ID), activities.ErrNotFound)
}

func TestService_All_IsUnbounded(t *testing.T) {
	svc := activities.NewService(memory.NewActivityRepo())
	ctx := context.Background()

	total := activities.MaxLimit + 5
	for i := 0; i < total; i++ {
		_, err := svc.Create(ctx, "pet-1", "owner-1", activities.CreateInput{
			Type:       activities.TypeNote,
			OccurredAt: day(1).Add(time.Duration(i) * time.Minute),
			Title:      "note",
		})
		require.NoError(t, err)
	}

	all, err := svc.All(ctx, "pet-1")
	require.NoError(t, err)
	assert.Len(t, all, total)
	assert.True(t, all[0].OccurredAt.After(all[total-1].OccurredAt))

	listed, err := svc.ListByPet(ctx, "pet-1", activities.ListFilter{Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, listed, activities.MaxLimit)
}
