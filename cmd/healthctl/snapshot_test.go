package main

import (
	"os"
	"path/filepath"
	"testing"

	"pet-health/internal/domain/healthscore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const miloYAML = `pet:
  id: milo
  name: Milo
  species: Dog
  breed: Beagle
  weight: 12.5 kg
  age: 3 yrs
  microchip_id: "985112"
  status: Healthy
vaccines:
  - name: Rabies
    type: rabies
    date_administered: 2025-01-10
    next_due: 2026-01-10
    status: Valid
  - name: DHPP
    type: core
    status: Valid
medications:
  - name: Apoquel
    active: true
activities:
  - type: vitals
    title: Weigh-in
    description: Weight check 12.5 kg
    date: 2025-06-01
  - type: checkup
    title: Annual exam
    date: 2025-03-20
`

const lunaJSON = `{"pet": {"name": "Luna", "species": "Cat"}}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "dogs", "milo.yaml"), miloYAML)
	writeFile(t, filepath.Join(dir, "cats", "indoor", "luna.json"), lunaJSON)
	writeFile(t, filepath.Join(dir, "README.md"), "# not a snapshot")
	return dir
}

func TestLoadSnapshot_YAML(t *testing.T) {
	dir := fixtureDir(t)

	s, err := loadSnapshot(filepath.Join(dir, "dogs", "milo.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "milo", s.Pet.ID)
	assert.Equal(t, "12.5 kg", s.Pet.Weight)
	assert.Equal(t, "985112", s.Pet.MicrochipID)
	assert.Equal(t, healthscore.StatusHealthy, s.Pet.Status)
	require.Len(t, s.Vaccines, 2)
	// las fechas sin comillas quedan como texto
	assert.Equal(t, "2025-01-10", s.Vaccines[0].DateAdministered)
	assert.Equal(t, healthscore.VaccineValid, s.Vaccines[1].Status)
	assert.True(t, s.Medications[0].Active)
	require.Len(t, s.Activities, 2)
	assert.Equal(t, healthscore.ActivityCheckup, s.Activities[1].Type)
}

func TestLoadSnapshot_JSONDefaultsPetID(t *testing.T) {
	dir := fixtureDir(t)

	s, err := loadSnapshot(filepath.Join(dir, "cats", "indoor", "luna.json"))
	require.NoError(t, err)
	assert.Equal(t, "luna", s.Pet.ID)
	assert.Equal(t, "Luna", s.Pet.Name)
	assert.Empty(t, s.Vaccines)
}

func TestLoadSnapshot_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, "{not json")

	_, err := loadSnapshot(bad)
	assert.ErrorContains(t, err, "bad.json")

	_, err = loadSnapshot(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExpandPaths(t *testing.T) {
	dir := fixtureDir(t)
	milo := filepath.Join(dir, "dogs", "milo.yaml")
	luna := filepath.Join(dir, "cats", "indoor", "luna.json")

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"file", []string{milo}, []string{milo}},
		{"directory is recursive", []string{filepath.Join(dir, "cats")}, []string{luna}},
		{"double star glob", []string{filepath.Join(dir, "**", "*.json")}, []string{luna}},
		{"glob skips non snapshots", []string{filepath.Join(dir, "*")}, nil},
		{"dedup keeps first order", []string{milo, dir}, []string{milo, luna}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandPaths(tt.args)
			if tt.want == nil {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandPaths_NoMatch(t *testing.T) {
	_, err := expandPaths([]string{filepath.Join(t.TempDir(), "**", "*.yaml")})
	assert.ErrorContains(t, err, "no snapshot files")
}
