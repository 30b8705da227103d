package vaccines

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID    map[string]Vaccine
	updates int
}

func newTestRepo() *testRepo { return &testRepo{byID: map[string]Vaccine{}} }

func (r *testRepo) Create(_ context.Context, v Vaccine) error {
	r.byID[v.ID] = v
	return nil
}

func (r *testRepo) Update(_ context.Context, v Vaccine) error {
	r.byID[v.ID] = v
	r.updates++
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Vaccine, error) {
	v, ok := r.byID[id]
	if !ok {
		return Vaccine{}, errors.New("not found")
	}
	return v, nil
}

func (r *testRepo) ListByPet(_ context.Context, petID string) ([]Vaccine, error) {
	out := make([]Vaccine, 0)
	for _, v := range r.byID {
		if v.PetID == petID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AdministeredAt.After(out[j].AdministeredAt) })
	return out, nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func at(t time.Time) *time.Time { return &t }

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name string
		due  *time.Time
		want Status
	}{
		{"sin próxima dosis", nil, StatusValid},
		{"vencida", at(now.AddDate(0, 0, -1)), StatusOverdue},
		{"vence hoy más tarde", at(now.Add(time.Hour)), StatusExpiringSoon},
		{"justo 30 días", at(now.Add(ExpiringWindow)), StatusExpiringSoon},
		{"31 días", at(now.AddDate(0, 0, 31)), StatusValid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveStatus(tc.due, now))
		})
	}
}

func TestService_Create(t *testing.T) {
	svc := NewService(newTestRepo())
	svc.now = func() time.Time { return now }

	var changed int
	svc.OnChange(func(context.Context, string) { changed++ })

	v, err := svc.Create(context.Background(), "pet-1", CreateInput{
		Name:           " Rabies ",
		AdministeredAt: now.AddDate(-1, 0, 0),
		NextDue:        at(now.AddDate(0, 0, -3)),
	})
	require.NoError(t, err)
	assert.Equal(t, "Rabies", v.Name)
	assert.Equal(t, StatusOverdue, v.Status)
	assert.Equal(t, 1, changed)

	_, err = svc.Create(context.Background(), "pet-1", CreateInput{Name: "DHPP"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), "pet-1", CreateInput{
		Name:           "DHPP",
		AdministeredAt: now,
		NextDue:        at(now.AddDate(0, 0, -1)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_RefreshStatuses(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return now }

	_, err := svc.Create(context.Background(), "pet-1", CreateInput{
		Name:           "Rabies",
		AdministeredAt: now.AddDate(-1, 0, 0),
		NextDue:        at(now.AddDate(0, 0, 20)),
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "pet-1", CreateInput{Name: "DHPP", AdministeredAt: now})
	require.NoError(t, err)

	n, err := svc.RefreshStatuses(context.Background(), "pet-1")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// pasan 25 días: la antirrábica queda vencida
	svc.now = func() time.Time { return now.AddDate(0, 0, 25) }
	n, err = svc.RefreshStatuses(context.Background(), "pet-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, repo.updates)

	list, err := svc.ListByPet(context.Background(), "pet-1")
	require.NoError(t, err)
	statuses := map[string]Status{}
	for _, v := range list {
		statuses[v.Name] = v.Status
	}
	assert.Equal(t, StatusOverdue, statuses["Rabies"])
	assert.Equal(t, StatusValid, statuses["DHPP"])
}

func TestService_Delete_OtherPet(t *testing.T) {
	svc := NewService(newTestRepo())
	v, err := svc.Create(context.Background(), "pet-1", CreateInput{Name: "Rabies", AdministeredAt: now})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), "pet-2", v.ID), ErrNotFound)
	assert.NoError(t, svc.Delete(context.Background(), "pet-1", v.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), "pet-1", v.ID), ErrNotFound)
}
