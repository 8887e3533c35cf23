/*package particle holds the mutable particle ensemble that the Monte Carlo
engine samples over.*/
package particle

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/softmatterlab/cppm/geom"
)

// Particle is a point charge constrained to the surface of a sphere.
type Particle struct {
	// Charge in elementary units: one of 0, +1 or -1. Immutable after
	// construction except through Ensemble.SwapCharges.
	Charge float64
	// Pos is the Cartesian position. |Pos| equals the ensemble radius at
	// all times; only the Monte Carlo engine mutates it.
	Pos r3.Vec
}

// Ensemble is an ordered collection of particles on a sphere of fixed
// radius. The ordering carries no physical meaning but is stable, so output
// files list particles in construction order. The total and per-species
// counts never change during the ensemble's lifetime.
type Ensemble struct {
	Particles []Particle
	Radius    float64
	NumPlus   int
	NumMinus  int
}

// New builds an ensemble of numTotal particles placed randomly and uniformly
// on a sphere of the given radius: numPlus cations at the front, numMinus
// anions at the back and neutral particles in between.
func New(rng *rand.Rand, radius float64, numTotal, numPlus, numMinus int) (*Ensemble, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("sphere radius must be positive, but is %g", radius)
	}
	if numTotal <= 0 {
		return nil, fmt.Errorf("total number of particles must be positive, but is %d", numTotal)
	}
	if numPlus < 0 || numMinus < 0 {
		return nil, fmt.Errorf(
			"charged particle counts must be non-negative, but are %d and %d",
			numPlus, numMinus,
		)
	}
	if numPlus+numMinus > numTotal {
		return nil, fmt.Errorf(
			"number of charged particles (%d + %d) exceeds total number of particles (%d)",
			numPlus, numMinus, numTotal,
		)
	}

	ens := &Ensemble{
		Particles: make([]Particle, numTotal),
		Radius:    radius,
		NumPlus:   numPlus,
		NumMinus:  numMinus,
	}
	for i := 0; i < numPlus; i++ {
		ens.Particles[i].Charge = +1
	}
	for i := 0; i < numMinus; i++ {
		ens.Particles[numTotal-1-i].Charge = -1
	}
	for i := range ens.Particles {
		ens.Particles[i].Pos = geom.RandomOnSphere(rng, radius)
	}
	return ens, nil
}

// Len returns the number of particles.
func (ens *Ensemble) Len() int { return len(ens.Particles) }

// SwapCharges exchanges the charges of particles i and j. Species counts are
// unchanged since charges only trade places.
func (ens *Ensemble) SwapCharges(i, j int) {
	ps := ens.Particles
	ps[i].Charge, ps[j].Charge = ps[j].Charge, ps[i].Charge
}

// NetCharge returns the monopole moment, in e.
func (ens *Ensemble) NetCharge() float64 {
	var q float64
	for i := range ens.Particles {
		q += ens.Particles[i].Charge
	}
	return q
}

// AbsoluteCharge returns the sum of unsigned charges, in e.
func (ens *Ensemble) AbsoluteCharge() float64 {
	var q float64
	for i := range ens.Particles {
		if ens.Particles[i].Charge < 0 {
			q -= ens.Particles[i].Charge
		} else {
			q += ens.Particles[i].Charge
		}
	}
	return q
}

// Dipole returns the dipole moment with origin at the sphere center, in
// e*Angstrom.
func (ens *Ensemble) Dipole() r3.Vec {
	var mu r3.Vec
	for i := range ens.Particles {
		p := &ens.Particles[i]
		mu = r3.Add(mu, r3.Scale(p.Charge, p.Pos))
	}
	return mu
}

// GeometricCenter returns the mean particle position.
func (ens *Ensemble) GeometricCenter() r3.Vec {
	var c r3.Vec
	if len(ens.Particles) == 0 {
		return c
	}
	for i := range ens.Particles {
		c = r3.Add(c, ens.Particles[i].Pos)
	}
	return r3.Scale(1/float64(len(ens.Particles)), c)
}

// ChargeCenter returns the center of absolute charge, or the zero vector if
// the ensemble carries no charge at all.
func (ens *Ensemble) ChargeCenter() r3.Vec {
	var c r3.Vec
	abs := ens.AbsoluteCharge()
	if abs == 0 {
		return c
	}
	for i := range ens.Particles {
		p := &ens.Particles[i]
		q := p.Charge
		if q < 0 {
			q = -q
		}
		c = r3.Add(c, r3.Scale(q, p.Pos))
	}
	return r3.Scale(1/abs, c)
}
