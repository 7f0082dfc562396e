package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rockcoast/internal/sims/rockcoast"
	"rockcoast/internal/sinks"
)

func TestRunWritesSinks(t *testing.T) {
	dir := t.TempDir()
	csvDir := filepath.Join(dir, "csv")
	db := filepath.Join(dir, "runs.db")
	jsonPath := filepath.Join(dir, "snaps.jsonl")
	var stdout, stderr bytes.Buffer

	code := run([]string{
		"-set", "end_time=20", "-set", "plot_interval=10",
		"-csv", csvDir, "-archive", db, "-run-name", "short", "-json", jsonPath,
		"-log-level", "warn",
	}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Run summary")

	entries, err := os.ReadDir(csvDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 3, bytes.Count(data, []byte("\n")))

	a, err := sinks.OpenArchive(db, nil)
	require.NoError(t, err)
	defer a.Close(context.Background())
	runs, err := a.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	snaps, err := a.Snapshots(runs[0].ID)
	require.NoError(t, err)
	assert.Len(t, snaps, 3)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-set", "dz=0"}, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "dz")
}

func TestRunPrintsSchemaAndParams(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-schema"}, &stdout, &stderr))
	var schema map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &schema))
	assert.Contains(t, schema, "properties")

	stdout.Reset()
	require.Equal(t, 0, run([]string{"-params", "-set", "tidal_range=3"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "tidal_range")

	stdout.Reset()
	require.Equal(t, 0, run([]string{"-dump-config", "-set", "tidal_range=3"}, &stdout, &stderr))
	var cfg rockcoast.Config
	require.NoError(t, cfg.UnmarshalYAMLBytes(stdout.Bytes()))
	assert.Equal(t, 3.0, cfg.TidalRange)
}
