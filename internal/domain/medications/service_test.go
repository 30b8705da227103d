package medications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID map[string]Medication
}

func newTestRepo() *testRepo { return &testRepo{byID: map[string]Medication{}} }

func (r *testRepo) Create(_ context.Context, m Medication) error {
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) Update(_ context.Context, m Medication) error {
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Medication, error) {
	m, ok := r.byID[id]
	if !ok {
		return Medication{}, errors.New("not found")
	}
	return m, nil
}

func (r *testRepo) ListByPet(_ context.Context, petID string) ([]Medication, error) {
	out := make([]Medication, 0)
	for _, m := range r.byID {
		if m.PetID == petID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestMedication_IsActive(t *testing.T) {
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	assert.True(t, Medication{}.IsActive(now))
	assert.True(t, Medication{EndDate: &future}.IsActive(now))
	assert.False(t, Medication{EndDate: &past}.IsActive(now))
	assert.False(t, Medication{EndDate: &now}.IsActive(now))
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(newTestRepo())
	before := now.AddDate(0, 0, -1)

	_, err := svc.Create(context.Background(), "pet-1", CreateInput{StartDate: now})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), "pet-1", CreateInput{Name: "Apoquel"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), "pet-1", CreateInput{Name: "Apoquel", StartDate: now, EndDate: &before})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Stop(t *testing.T) {
	svc := NewService(newTestRepo())
	svc.now = func() time.Time { return now }

	var changed int
	svc.OnChange(func(context.Context, string) { changed++ })

	m, err := svc.Create(context.Background(), "pet-1", CreateInput{
		Name:      "Apoquel",
		Dosage:    "16 mg",
		StartDate: now.AddDate(0, -1, 0),
	})
	require.NoError(t, err)
	assert.True(t, m.IsActive(now))

	stopped, err := svc.Stop(context.Background(), "pet-1", m.ID)
	require.NoError(t, err)
	require.NotNil(t, stopped.EndDate)
	assert.Equal(t, now, *stopped.EndDate)
	assert.False(t, stopped.IsActive(now))
	assert.Equal(t, 2, changed)

	_, err = svc.Stop(context.Background(), "pet-1", m.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnded)

	_, err = svc.Stop(context.Background(), "pet-2", m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	svc := NewService(newTestRepo())
	m, err := svc.Create(context.Background(), "pet-1", CreateInput{Name: "Apoquel", StartDate: now})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), "pet-2", m.ID), ErrNotFound)
	require.NoError(t, svc.Delete(context.Background(), "pet-1", m.ID))

	list, err := svc.ListByPet(context.Background(), "pet-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}
