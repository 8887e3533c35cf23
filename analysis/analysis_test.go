package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/softmatterlab/cppm/particle"
)

func testEnsemble() *particle.Ensemble {
	return &particle.Ensemble{
		Particles: []particle.Particle{
			{Charge: +1, Pos: r3.Vec{X: 20}},
			{Charge: -1, Pos: r3.Vec{X: -20}},
			{Charge: 0, Pos: r3.Vec{Z: 20}},
		},
		Radius:   20,
		NumPlus:  1,
		NumMinus: 1,
	}
}

func TestGlobalProperties(t *testing.T) {
	p := GlobalProperties(testEnsemble())
	assert.Equal(t, 3, p.NumParticles)
	assert.Equal(t, 20.0, p.Radius)
	assert.InDelta(t, 4*math.Pi*400, p.SurfaceArea, 1e-9)
	assert.Equal(t, 0.0, p.NetCharge)
	assert.Equal(t, 2.0, p.AbsoluteCharge)
	assert.InDelta(t, 40.0, p.Dipole, 1e-12)

	s := p.String()
	assert.Contains(t, s, "number of particles")
	assert.Contains(t, s, "dipole moment")
	// No division by a zero net charge in the rendering.
	assert.NotContains(t, s, "Inf")
	assert.NotContains(t, s, "NaN")
}

func TestMomentsStride(t *testing.T) {
	ens := testEnsemble()
	m := &Moments{Stride: 10}
	for step := 1; step <= 100; step++ {
		m.Sample(step, ens, -1.0)
	}
	assert.Equal(t, 10, m.Samples())
	assert.InDelta(t, 40.0, m.MeanDipole(), 1e-12)
}

func TestMomentsString(t *testing.T) {
	ens := testEnsemble()
	m := &Moments{}
	assert.Contains(t, m.String(), "no samples")

	m.Sample(1, ens, -1.0)
	m.Sample(2, ens, -3.0)
	s := m.String()
	assert.Contains(t, s, "mean dipole moment")
	assert.Contains(t, s, "mean energy")
	// The dipole of the static configuration is 40 eA with no spread.
	assert.True(t, strings.Contains(s, "40.00 +/- 0.00 eA"), "got %q", s)
}
