package io

import (
	"fmt"

	"gopkg.in/gcfg.v1"
)

// RunConfig holds every parameter of a single generator run. Parameters are
// immutable once the run starts.
type RunConfig struct {
	// Required
	Output string // coordinate file, .xyz or .pqr

	// Geometry and interactions
	Radius        float64 // sphere radius, Angstrom
	BjerrumLength float64 // Angstrom; 0 switches electrostatics off
	NumTotal      int
	NumPlus       int
	NumMinus      int

	// Sampling
	Steps        int
	Seed         int64   // 0 derives a seed from the clock
	Displacement float64 // max angular step, radians
	SwapMoves    bool    // enable the charge-swap move

	// Dipole restraint; active iff DipoleForce > 0
	TargetDipole float64 // Debye
	DipoleForce  float64 // kT per (e*Angstrom)^2
}

// RunWrapper is the gcfg wrapper for the [run] section.
type RunWrapper struct {
	Run RunConfig
}

// DefaultRunConfig returns the defaults of the generator: 643 particles with
// 29 cations and 37 anions on a 20 A sphere at a Bjerrum length of 7 A,
// 10000 steps.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Radius:        20.0,
		BjerrumLength: 7.0,
		NumTotal:      643,
		NumPlus:       29,
		NumMinus:      37,
		Steps:         10000,
		Displacement:  0.01,
	}
}

// ExampleRunFile is an example run configuration file.
const ExampleRunFile = `[run]
Output = sphere.xyz
Radius = 20.0
BjerrumLength = 7.0
NumTotal = 643
NumPlus = 29
NumMinus = 37
Steps = 10000
Seed = 42
Displacement = 0.01
SwapMoves = false
TargetDipole = 0.0
DipoleForce = 0.0
`

// ReadRunConfig reads a gcfg run configuration file on top of the defaults.
func ReadRunConfig(fname string) (RunConfig, error) {
	wrap := RunWrapper{Run: DefaultRunConfig()}
	if err := gcfg.ReadFileInto(&wrap, fname); err != nil {
		return RunConfig{}, err
	}
	return wrap.Run, nil
}

// CheckInit validates the configuration before any sampling begins.
// Configuration errors abort the run immediately.
//
// A zero Bjerrum length and zero steps are both legal: the former samples a
// non-interacting reference system, the latter writes the initial random
// configuration unchanged.
func (c *RunConfig) CheckInit() error {
	if c.Output == "" {
		return fmt.Errorf("need an 'Output' coordinate file (.xyz or .pqr)")
	}
	if c.Radius <= 0 {
		return fmt.Errorf("'Radius' must be positive, but is %g", c.Radius)
	}
	if c.BjerrumLength < 0 {
		return fmt.Errorf("'BjerrumLength' must be non-negative, but is %g", c.BjerrumLength)
	}
	if c.NumTotal <= 0 {
		return fmt.Errorf("'NumTotal' must be positive, but is %d", c.NumTotal)
	}
	if c.NumPlus < 0 || c.NumMinus < 0 {
		return fmt.Errorf(
			"'NumPlus' and 'NumMinus' must be non-negative, but are %d and %d",
			c.NumPlus, c.NumMinus,
		)
	}
	if c.NumPlus+c.NumMinus > c.NumTotal {
		return fmt.Errorf(
			"'NumPlus' + 'NumMinus' (%d + %d) exceeds 'NumTotal' (%d)",
			c.NumPlus, c.NumMinus, c.NumTotal,
		)
	}
	if c.Steps < 0 {
		return fmt.Errorf("'Steps' must be non-negative, but is %d", c.Steps)
	}
	if c.Displacement <= 0 {
		return fmt.Errorf("'Displacement' must be positive, but is %g", c.Displacement)
	}
	if c.SwapMoves && c.NumTotal < 2 {
		return fmt.Errorf("'SwapMoves' needs at least 2 particles, have %d", c.NumTotal)
	}
	if c.DipoleForce < 0 {
		return fmt.Errorf("'DipoleForce' must be non-negative, but is %g", c.DipoleForce)
	}
	if c.DipoleForce > 0 && c.TargetDipole < 0 {
		return fmt.Errorf("'TargetDipole' must be non-negative, but is %g", c.TargetDipole)
	}
	return nil
}
