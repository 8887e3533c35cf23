/*package analysis computes summary statistics of sampled configurations:
running moments during the run and global properties of the final one. The
final properties are recomputed directly from the particle positions rather
than from the engine's incremental caches, so they double as an independent
consistency check.*/
package analysis

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/softmatterlab/cppm"
	"github.com/softmatterlab/cppm/particle"
)

// Moments accumulates a thinned trace of configuration moments during
// sampling.
type Moments struct {
	// Stride samples every Stride-th step; values below 1 sample every
	// step. A stride keeps the trace memory bounded on long runs.
	Stride int

	samples      int
	geomCenter   r3.Vec
	chargeCenter r3.Vec
	dipoleNorms  []float64
	energies     []float64
}

// Sample records the configuration moments after the given completed step,
// honoring the stride. energy is the engine's current total energy in kT.
func (m *Moments) Sample(step int, ens *particle.Ensemble, energy float64) {
	stride := m.Stride
	if stride < 1 {
		stride = 1
	}
	if step%stride != 0 {
		return
	}
	m.samples++
	m.geomCenter = r3.Add(m.geomCenter, ens.GeometricCenter())
	m.chargeCenter = r3.Add(m.chargeCenter, ens.ChargeCenter())
	m.dipoleNorms = append(m.dipoleNorms, r3.Norm(ens.Dipole()))
	m.energies = append(m.energies, energy)
}

// Samples returns the number of recorded samples.
func (m *Moments) Samples() int { return m.samples }

// MeanDipole returns the mean sampled dipole magnitude in e*Angstrom, or
// zero before any sample.
func (m *Moments) MeanDipole() float64 {
	if m.samples == 0 {
		return 0
	}
	return stat.Mean(m.dipoleNorms, nil)
}

func meanStd(xs []float64) (mean, std float64) {
	mean = stat.Mean(xs, nil)
	if len(xs) > 1 {
		std = stat.StdDev(xs, nil)
	}
	return mean, std
}

func (m *Moments) String() string {
	if m.samples == 0 {
		return "no samples collected\n"
	}
	n := float64(m.samples)
	mu, muStd := meanStd(m.dipoleNorms)
	u, uStd := meanStd(m.energies)

	var b strings.Builder
	fmt.Fprintf(&b, "geometric center displacement = %.2f A\n",
		r3.Norm(r3.Scale(1/n, m.geomCenter)))
	fmt.Fprintf(&b, "charge center displacement    = %.2f eA\n",
		r3.Norm(r3.Scale(1/n, m.chargeCenter)))
	fmt.Fprintf(&b, "mean dipole moment            = %.2f +/- %.2f eA = %.2f D\n",
		mu, muStd, cppm.EAngstromToDebye(mu))
	fmt.Fprintf(&b, "mean energy                   = %.2f +/- %.2f kT\n", u, uStd)
	return b.String()
}

// Properties are global properties of a configuration, recomputed from the
// particle positions.
type Properties struct {
	NumParticles   int
	Radius         float64 // Angstrom
	SurfaceArea    float64 // Angstrom^2
	NetCharge      float64 // e
	AbsoluteCharge float64 // e
	Dipole         float64 // e*Angstrom
}

// GlobalProperties computes the properties of the given ensemble.
func GlobalProperties(ens *particle.Ensemble) Properties {
	return Properties{
		NumParticles:   ens.Len(),
		Radius:         ens.Radius,
		SurfaceArea:    4 * math.Pi * ens.Radius * ens.Radius,
		NetCharge:      ens.NetCharge(),
		AbsoluteCharge: ens.AbsoluteCharge(),
		Dipole:         r3.Norm(ens.Dipole()),
	}
}

func (p Properties) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CPPM properties:\n")
	fmt.Fprintf(&b, "  number of particles  = %d\n", p.NumParticles)
	fmt.Fprintf(&b, "  radius               = %g A\n", p.Radius)
	fmt.Fprintf(&b, "  surface area         = %.2f A^2\n", p.SurfaceArea)
	fmt.Fprintf(&b, "  monopole moment      = %.2f e\n", p.NetCharge)
	fmt.Fprintf(&b, "  abs. net charge      = %.2f e\n", p.AbsoluteCharge)
	fmt.Fprintf(&b, "  dipole moment        = %.2f eA = %.2f D\n",
		p.Dipole, cppm.EAngstromToDebye(p.Dipole))
	fmt.Fprintf(&b, "  particle density     = %.2f A^2/particle\n",
		p.SurfaceArea/float64(p.NumParticles))
	if p.NetCharge != 0 {
		fmt.Fprintf(&b, "  surf. charge density = %.2f A^2/e\n", p.SurfaceArea/p.NetCharge)
	}
	if p.AbsoluteCharge != 0 {
		fmt.Fprintf(&b, "  abs. surf. charge density = %.2f A^2/e\n",
			p.SurfaceArea/p.AbsoluteCharge)
	}
	return b.String()
}

// Summary carries run statistics for inclusion in output file headers.
type Summary struct {
	AcceptanceRatio float64
	Dipole          float64 // e*Angstrom
	Energy          float64 // kT
}
