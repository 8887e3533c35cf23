/*package energy implements the Hamiltonian of the charged sphere: a
pairwise-additive softcore Coulomb term and an optional harmonic restraint on
the dipole-moment magnitude. All energies are in kT.*/
package energy

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/softmatterlab/cppm/particle"
)

// PairPotential is the interaction energy between two particles, in kT.
type PairPotential interface {
	Energy(a, b *particle.Particle) float64
}

// softcoreDiameter is the length scale of the softcore regularization. Below
// roughly this separation the Coulomb potential saturates instead of
// diverging, which keeps the energy finite when two particles meet in the
// tangent plane of the sphere.
const softcoreDiameter = 0.5

// Coulomb is a softcore-regularized Coulomb interaction,
//
//	U(r) = lB * qi * qj / (r^6 + s^6)^(1/6)
//
// with s = softcoreDiameter. The effective separation approaches r for
// r >> s and saturates at s for overlapping pairs, so |U| never exceeds
// lB/s and vanishes identically when the Bjerrum length is zero.
type Coulomb struct {
	// BjerrumLength is e^2 / (4 pi eps0 epsr kB T) in Angstrom. It sets
	// the electrostatic energy scale; at separation lB two unit charges
	// interact with exactly 1 kT.
	BjerrumLength float64
}

func (c Coulomb) Energy(a, b *particle.Particle) float64 {
	r2 := r3.Norm2(r3.Sub(a.Pos, b.Pos))
	r6 := r2 * r2 * r2
	const s2 = softcoreDiameter * softcoreDiameter
	rEff := math.Cbrt(math.Sqrt(r6 + s2*s2*s2))
	return c.BjerrumLength * a.Charge * b.Charge / rEff
}

// Nonbonded sums a pair potential over particle pairs.
type Nonbonded struct {
	Pair PairPotential
}

// System returns the sum over all unordered pairs, in kT. This is O(N^2)
// and is only used for the one-time initial evaluation and for drift checks,
// never inside the sampling loop.
func (n *Nonbonded) System(ens *particle.Ensemble) float64 {
	var energy float64
	ps := ens.Particles
	for i := 1; i < len(ps); i++ {
		for j := 0; j < i; j++ {
			energy += n.Pair.Energy(&ps[i], &ps[j])
		}
	}
	return energy
}

// Particle returns the interaction energy of particle i with all others, in
// kT. O(N); this is what single-particle move deltas are built from.
func (n *Nonbonded) Particle(ens *particle.Ensemble, i int) float64 {
	var energy float64
	ps := ens.Particles
	for k := range ps {
		if k != i {
			energy += n.Pair.Energy(&ps[k], &ps[i])
		}
	}
	return energy
}

// Swap returns the energy of every pair whose value changes when particles i
// and j exchange charges: the (i, j) pair itself plus both particles'
// interactions with the rest.
func (n *Nonbonded) Swap(ens *particle.Ensemble, i, j int) float64 {
	ps := ens.Particles
	energy := n.Pair.Energy(&ps[i], &ps[j])
	for k := range ps {
		if k != i && k != j {
			energy += n.Pair.Energy(&ps[k], &ps[i]) + n.Pair.Energy(&ps[k], &ps[j])
		}
	}
	return energy
}

// DipoleRestraint biases the sampling toward a target dipole-moment
// magnitude through a harmonic penalty k * (|mu| - target)^2.
type DipoleRestraint struct {
	// Target dipole magnitude in e*Angstrom.
	Target float64
	// ForceConst k in kT per (e*Angstrom)^2.
	ForceConst float64
}

// Energy returns the restraint energy for the dipole vector mu.
func (d *DipoleRestraint) Energy(mu r3.Vec) float64 {
	diff := r3.Norm(mu) - d.Target
	return d.ForceConst * diff * diff
}

// Hamiltonian composes the independently toggleable energy terms. A nil
// Restraint disables the dipole bias.
type Hamiltonian struct {
	Nonbonded *Nonbonded
	Restraint *DipoleRestraint
}

// Total evaluates the full system energy from scratch, in kT. O(N^2).
func (h *Hamiltonian) Total(ens *particle.Ensemble) float64 {
	energy := h.Nonbonded.System(ens)
	if h.Restraint != nil {
		energy += h.Restraint.Energy(ens.Dipole())
	}
	return energy
}

// RestraintDelta returns the change of the restraint energy when the dipole
// vector moves from mu to mu + dmu, or zero when the restraint is disabled.
// The caller supplies the incrementally maintained dipole, so this is O(1).
func (h *Hamiltonian) RestraintDelta(mu, dmu r3.Vec) float64 {
	if h.Restraint == nil {
		return 0
	}
	return h.Restraint.Energy(r3.Add(mu, dmu)) - h.Restraint.Energy(mu)
}
