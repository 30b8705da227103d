package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"pet-health/internal/domain/healthscore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestScoreFiles(t *testing.T) {
	dir := fixtureDir(t)
	paths := []string{
		filepath.Join(dir, "dogs", "milo.yaml"),
		filepath.Join(dir, "cats", "indoor", "luna.json"),
	}

	results, err := scoreFiles(context.Background(), paths, fixedNow, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	milo := results[0]
	assert.Equal(t, paths[0], milo.Path)
	assert.Equal(t, 100, milo.Score)
	assert.Equal(t, healthscore.LabelExcellent, milo.Label)
	assert.Equal(t, healthscore.StatusHealthy, milo.SuggestedStatus)
	assert.False(t, milo.StatusMismatch)
	assert.Empty(t, milo.Gaps)
	assert.Len(t, milo.Components, 6)

	// solo nombre: medicación 15 + edad 10 + perfil 2
	luna := results[1]
	assert.Equal(t, "luna", luna.PetID)
	assert.Equal(t, 27, luna.Score)
	assert.Equal(t, healthscore.LabelNeedsAttention, luna.Label)
	assert.Equal(t, healthscore.StatusCheckup, luna.SuggestedStatus)
	assert.False(t, luna.StatusMismatch, "sin estado guardado no hay mismatch")
	require.Len(t, luna.Gaps, 2)
	assert.Equal(t, "gap:luna:missing_weight", luna.Gaps[0].Key)
	assert.Equal(t, healthscore.PriorityHigh, luna.Gaps[0].Priority)
	assert.Equal(t, "gap:luna:missing_microchip", luna.Gaps[1].Key)
}

func TestScoreFiles_StaleRecords(t *testing.T) {
	dir := fixtureDir(t)
	milo := filepath.Join(dir, "dogs", "milo.yaml")

	// un año después: pesaje > 6 meses (0) y control entre 6 y 12 meses (80)
	later := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	results, err := scoreFiles(context.Background(), []string{milo}, later, 1)
	require.NoError(t, err)

	// 30 + 0 + 12 + 15 + 10 + 10
	assert.Equal(t, 77, results[0].Score)
	assert.Equal(t, healthscore.LabelGood, results[0].Label)
}

func TestScoreFiles_StopsOnError(t *testing.T) {
	dir := fixtureDir(t)
	_, err := scoreFiles(context.Background(), []string{
		filepath.Join(dir, "dogs", "milo.yaml"),
		filepath.Join(dir, "missing.yaml"),
	}, fixedNow, 0)
	assert.Error(t, err)
}

func TestResolveNow(t *testing.T) {
	clock, err := resolveNow("2025-06-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), clock())

	clock, err = resolveNow("2025-06-15T12:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, fixedNow, clock())

	clock, err = resolveNow("")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), clock(), time.Minute)

	_, err = resolveNow("yesterday")
	assert.Error(t, err)
}

func TestWriteResults(t *testing.T) {
	dir := fixtureDir(t)
	results, err := scoreFiles(context.Background(), []string{
		filepath.Join(dir, "cats", "indoor", "luna.json"),
	}, fixedNow, 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeResults(&buf, results, true))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, float64(27), decoded[0]["score"])
	assert.Equal(t, map[string]any{"label": "Needs Attention", "tone": "danger"}, decoded[0]["health"])

	buf.Reset()
	require.NoError(t, writeResults(&buf, results, false))
	out := buf.String()
	assert.Contains(t, out, "Luna")
	assert.Contains(t, out, "27 [Needs Attention]")
	assert.Contains(t, out, "vaccination")
	assert.Contains(t, out, "Log Luna's weight")
}

func TestRenderGaps(t *testing.T) {
	r := result{Path: "milo.yaml", PetID: "milo"}
	assert.Contains(t, renderGaps(r), "no gaps")

	r.Gaps = healthscore.ComputeHealthGaps(healthscore.Profile{ID: "milo", Name: "Milo", Age: "2 yrs"}, nil)
	out := renderGaps(r)
	assert.Contains(t, out, "Rabies vaccine missing")
	assert.Contains(t, out, "gap:milo:missing_rabies")
	assert.Contains(t, out, "Add rabies vaccine -> /pets/milo/vaccines")
}
