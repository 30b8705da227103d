package pets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, errRepoNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}

func strPtr(s string) *string { return &s }

func TestService_Create_DefaultsAndTrim(t *testing.T) {
	svc := NewService(newTestRepo())
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	var changed []string
	svc.OnChange(func(_ context.Context, petID string) { changed = append(changed, petID) })

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:    "  Milo ",
		Species: "Dog",
		Weight:  " 12.5 kg ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Milo", p.Name)
	assert.Equal(t, SpeciesDog, p.Species)
	assert.Equal(t, "12.5 kg", p.Weight)
	assert.Equal(t, StatusHealthy, p.Status)
	assert.Equal(t, SexUnknown, p.Sex)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, []string{p.ID}, changed)
}

func TestService_Create_RequiresOwnerAndName(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Create(context.Background(), "", CreateInput{Name: "Milo"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), "owner-1", CreateInput{Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_UpdateProfile_PatchSemantics(t *testing.T) {
	svc := NewService(newTestRepo())
	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Milo", Breed: "beagle", Weight: "10 kg"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), p.ID, "owner-1", UpdateProfileInput{
		Microchip: strPtr("985112"),
		Status:    strPtr("Check-up"),
	})
	require.NoError(t, err)

	assert.Equal(t, "beagle", updated.Breed)
	assert.Equal(t, "10 kg", updated.Weight)
	assert.Equal(t, "985112", updated.Microchip)
	assert.Equal(t, StatusCheckup, updated.Status)
}

func TestService_UpdateProfile_Errors(t *testing.T) {
	svc := NewService(newTestRepo())
	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Milo"})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(context.Background(), "missing", "owner-1", UpdateProfileInput{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateProfile(context.Background(), p.ID, "intruder", UpdateProfileInput{Name: strPtr("X")})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.UpdateProfile(context.Background(), p.ID, "owner-1", UpdateProfileInput{Name: strPtr(" ")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateProfile(context.Background(), p.ID, "owner-1", UpdateProfileInput{Status: strPtr("")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_OwnerOf(t *testing.T) {
	svc := NewService(newTestRepo())
	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Milo"})
	require.NoError(t, err)

	owner, err := svc.OwnerOf(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", owner)

	_, err = svc.OwnerOf(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
