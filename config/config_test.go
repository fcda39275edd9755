package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 1.72, cfg.Profile.Height)
	assert.Equal(t, 74.43, cfg.Profile.Weight)
	assert.Equal(t, "male", cfg.Profile.Sex)
	assert.Equal(t, "dubois", cfg.Profile.BSAEquation)
	assert.Equal(t, "harris-benedict", cfg.Profile.BMREquation)
	assert.Equal(t, 28.8, cfg.Environment.Tdb)
	assert.Equal(t, 0.45, cfg.Environment.Iclo)
	assert.Equal(t, "standing", cfg.Environment.Posture)
	assert.True(t, cfg.Thermoregulation.NonShivering)
	assert.False(t, cfg.Thermoregulation.AVAZero)
	assert.Equal(t, 10, cfg.Calibration.Batches)
	assert.Equal(t, 60000.0, cfg.Calibration.Dtime)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profile:\n  age: 65\nenvironment:\n  tdb: 35\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 65.0, cfg.Profile.Age)
	assert.Equal(t, 1.72, cfg.Profile.Height)
	assert.Equal(t, 35.0, cfg.Environment.Tdb)
	assert.Equal(t, 28.8, cfg.Environment.Tr)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading config file")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("profile: [unclosed"), 0644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "parsing config file")

	zero := filepath.Join(t.TempDir(), "zero.yaml")
	require.NoError(t, os.WriteFile(zero, []byte("calibration:\n  batches: 0\n"), 0644))
	_, err = Load(zero)
	assert.ErrorContains(t, err, "calibration")
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Profile.Sex = "female"
	cfg.Simulation.Workers = 8

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte("simulation:\n  workers: 0\nlogging:\n  format: text\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Simulation.Workers)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "info", cfg.Logging.Level)

	_, err = Parse([]byte("simulation:\n  dtime: -1\n"))
	assert.ErrorContains(t, err, "simulation")
}
