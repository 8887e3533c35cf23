package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTempConfig(t *testing.T, text string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "run.gcfg")
	if err := os.WriteFile(fname, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
	return fname
}

func TestReadRunConfig(t *testing.T) {
	fname := writeTempConfig(t, `[run]
Output = out.pqr
Radius = 15.0
Steps = 500
Seed = 42
SwapMoves = true
TargetDipole = 100.0
DipoleForce = 0.5
`)
	cfg, err := ReadRunConfig(fname)
	assert.NoError(t, err)

	// Overridden values.
	assert.Equal(t, "out.pqr", cfg.Output)
	assert.Equal(t, 15.0, cfg.Radius)
	assert.Equal(t, 500, cfg.Steps)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.True(t, cfg.SwapMoves)
	assert.Equal(t, 100.0, cfg.TargetDipole)
	assert.Equal(t, 0.5, cfg.DipoleForce)

	// Untouched values keep their defaults.
	assert.Equal(t, 7.0, cfg.BjerrumLength)
	assert.Equal(t, 643, cfg.NumTotal)
	assert.Equal(t, 29, cfg.NumPlus)
	assert.Equal(t, 37, cfg.NumMinus)
	assert.Equal(t, 0.01, cfg.Displacement)
}

func TestReadExampleRunFile(t *testing.T) {
	fname := writeTempConfig(t, ExampleRunFile)
	cfg, err := ReadRunConfig(fname)
	assert.NoError(t, err)
	assert.NoError(t, cfg.CheckInit())
	assert.Equal(t, "sphere.xyz", cfg.Output)
}

func TestCheckInit(t *testing.T) {
	base := DefaultRunConfig()
	base.Output = "out.xyz"
	assert.NoError(t, base.CheckInit())

	table := []struct {
		name   string
		mutate func(*RunConfig)
	}{
		{"missing output", func(c *RunConfig) { c.Output = "" }},
		{"zero radius", func(c *RunConfig) { c.Radius = 0 }},
		{"negative radius", func(c *RunConfig) { c.Radius = -1 }},
		{"negative bjerrum length", func(c *RunConfig) { c.BjerrumLength = -1 }},
		{"zero particles", func(c *RunConfig) { c.NumTotal = 0 }},
		{"negative plus", func(c *RunConfig) { c.NumPlus = -1 }},
		{"negative minus", func(c *RunConfig) { c.NumMinus = -1 }},
		{"charged exceeds total", func(c *RunConfig) { c.NumPlus = 600; c.NumMinus = 50 }},
		{"negative steps", func(c *RunConfig) { c.Steps = -1 }},
		{"zero displacement", func(c *RunConfig) { c.Displacement = 0 }},
		{"swap with one particle", func(c *RunConfig) {
			c.NumTotal = 1
			c.NumPlus, c.NumMinus = 0, 0
			c.SwapMoves = true
		}},
		{"negative dipole force", func(c *RunConfig) { c.DipoleForce = -1 }},
		{"negative target with restraint", func(c *RunConfig) {
			c.DipoleForce = 1
			c.TargetDipole = -5
		}},
	}

	for _, test := range table {
		cfg := base
		test.mutate(&cfg)
		assert.Error(t, cfg.CheckInit(), test.name)
	}

	// Zero Bjerrum length and zero steps are both allowed.
	cfg := base
	cfg.BjerrumLength = 0
	cfg.Steps = 0
	assert.NoError(t, cfg.CheckInit())
}
