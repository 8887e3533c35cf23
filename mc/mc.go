/*package mc is the Metropolis-Hastings Monte Carlo engine. It owns the
cached total energy and dipole moment of the system and updates both
transactionally: every move computes a delta first, commits it on accept and
leaves the caches untouched on reject, so a full O(N^2) re-evaluation is
never needed inside the sampling loop.*/
package mc

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/softmatterlab/cppm/energy"
	"github.com/softmatterlab/cppm/geom"
	"github.com/softmatterlab/cppm/particle"
)

// System couples an ensemble to its Hamiltonian and caches the total energy
// and the dipole-moment vector.
type System struct {
	Ens *particle.Ensemble
	Ham *energy.Hamiltonian

	energy float64
	dipole r3.Vec
}

// NewSystem evaluates the full system energy once (O(N^2)) and returns the
// system. A non-finite initial energy indicates a modeling bug and is
// reported as an error.
func NewSystem(ens *particle.Ensemble, ham *energy.Hamiltonian) (*System, error) {
	s := &System{Ens: ens, Ham: ham, energy: ham.Total(ens), dipole: ens.Dipole()}
	if !isFinite(s.energy) {
		return nil, fmt.Errorf("initial system energy is not finite: %g", s.energy)
	}
	return s, nil
}

// Energy returns the cached total energy in kT.
func (s *System) Energy() float64 { return s.energy }

// Dipole returns the cached dipole moment in e*Angstrom.
func (s *System) Dipole() r3.Vec { return s.dipole }

// Recompute evaluates the total energy from scratch. O(N^2); used by tests
// and checkpoints to detect drift of the incremental cache, never by the
// sampling loop.
func (s *System) Recompute() float64 { return s.Ham.Total(s.Ens) }

func isFinite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// Metropolis decides whether to accept a move with the given energy change
// (in kT): moves with dE <= 0 are always accepted, uphill moves with
// probability exp(-dE). Exactly one uniform draw is consumed per call.
func Metropolis(rng *rand.Rand, dE float64) bool {
	return rng.Float64() < math.Exp(-dE)
}

// Stats counts proposed and accepted moves. The counters only grow; they are
// reset by constructing a fresh move.
type Stats struct {
	Proposed, Accepted uint64
}

// AcceptanceRatio returns accepted/proposed, or zero before any proposal.
func (s Stats) AcceptanceRatio() float64 {
	if s.Proposed == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(s.Proposed)
}

// Move is a single Metropolis-Hastings trial move.
type Move interface {
	// Do proposes one move and accepts or rejects it, updating the system
	// caches on accept. A non-finite energy change is returned as an
	// error; Monte Carlo rejection is not an error.
	Do(s *System, rng *rand.Rand) (accepted bool, err error)
	Name() string
	Stats() Stats
}

// Displace perturbs the position of one uniformly chosen particle by a
// random angular step on the sphere.
type Displace struct {
	// MaxAngle is the disc radius of the angular displacement, in radians.
	MaxAngle float64

	stats Stats
}

func (m *Displace) Name() string { return "displace" }

func (m *Displace) Stats() Stats { return m.stats }

func (m *Displace) Do(s *System, rng *rand.Rand) (bool, error) {
	m.stats.Proposed++
	ps := s.Ens.Particles
	i := rng.Intn(len(ps))
	old := ps[i].Pos

	oldEnergy := s.Ham.Nonbonded.Particle(s.Ens, i)
	ps[i].Pos = geom.Perturb(rng, old, m.MaxAngle, s.Ens.Radius)
	newEnergy := s.Ham.Nonbonded.Particle(s.Ens, i)

	dmu := r3.Scale(ps[i].Charge, r3.Sub(ps[i].Pos, old))
	dE := newEnergy - oldEnergy + s.Ham.RestraintDelta(s.dipole, dmu)
	if !isFinite(dE) {
		ps[i].Pos = old
		return false, fmt.Errorf("non-finite energy change %g displacing particle %d", dE, i)
	}
	if !Metropolis(rng, dE) {
		ps[i].Pos = old
		return false, nil
	}
	s.energy += dE
	s.dipole = r3.Add(s.dipole, dmu)
	m.stats.Accepted++
	return true, nil
}

// SwapCharges exchanges the charges of two randomly selected particles.
// Species counts are preserved; only the assignment of charges to positions
// changes. Requires at least two particles.
type SwapCharges struct {
	stats Stats
}

func (m *SwapCharges) Name() string { return "swap charges" }

func (m *SwapCharges) Stats() Stats { return m.stats }

func (m *SwapCharges) Do(s *System, rng *rand.Rand) (bool, error) {
	if len(s.Ens.Particles) < 2 {
		return false, fmt.Errorf("charge swap needs at least 2 particles, have %d", len(s.Ens.Particles))
	}
	m.stats.Proposed++
	ps := s.Ens.Particles
	i, j := randomPair(rng, len(ps))
	if ps[i].Charge == ps[j].Charge {
		// Swapping equal charges is the identity move.
		m.stats.Accepted++
		return true, nil
	}

	dmu := r3.Scale(ps[j].Charge-ps[i].Charge, r3.Sub(ps[i].Pos, ps[j].Pos))
	oldEnergy := s.Ham.Nonbonded.Swap(s.Ens, i, j)
	s.Ens.SwapCharges(i, j)
	newEnergy := s.Ham.Nonbonded.Swap(s.Ens, i, j)

	dE := newEnergy - oldEnergy + s.Ham.RestraintDelta(s.dipole, dmu)
	if !isFinite(dE) {
		s.Ens.SwapCharges(i, j)
		return false, fmt.Errorf("non-finite energy change %g swapping particles %d and %d", dE, i, j)
	}
	if !Metropolis(rng, dE) {
		s.Ens.SwapCharges(i, j)
		return false, nil
	}
	s.energy += dE
	s.dipole = r3.Add(s.dipole, dmu)
	m.stats.Accepted++
	return true, nil
}

// randomPair picks two distinct indices in [0, n) uniformly.
func randomPair(rng *rand.Rand, n int) (int, int) {
	i := rng.Intn(n)
	j := rng.Intn(n - 1)
	if j >= i {
		j++
	}
	return i, j
}

// Propagator aggregates Monte Carlo moves and runs the sampling loop.
type Propagator struct {
	moves []Move
}

// Push appends a move to the propagator.
func (p *Propagator) Push(m Move) { p.moves = append(p.moves, m) }

// Moves returns the registered moves, for acceptance reporting.
func (p *Propagator) Moves() []Move { return p.moves }

// Step runs one randomly selected move.
func (p *Propagator) Step(s *System, rng *rand.Rand) (bool, error) {
	m := p.moves[rng.Intn(len(p.moves))]
	return m.Do(s, rng)
}

// Run executes exactly steps trial moves; the step count is the sole
// termination criterion. After every step the callback, when non-nil, is
// invoked with the number of completed steps so a collaborator can render
// progress or sample observables. The first error aborts the run.
func (p *Propagator) Run(s *System, rng *rand.Rand, steps int, onStep func(step int)) error {
	if len(p.moves) == 0 {
		return fmt.Errorf("propagator has no moves")
	}
	for i := 0; i < steps; i++ {
		if _, err := p.Step(s, rng); err != nil {
			return fmt.Errorf("step %d: %v", i+1, err)
		}
		if onStep != nil {
			onStep(i + 1)
		}
	}
	return nil
}
