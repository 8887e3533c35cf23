/*Package cppm generates charged patchy particle model (CPPM) configurations:
point charges constrained to the surface of a sphere, sampled with
Metropolis-Hastings Monte Carlo under a softcore Coulomb energy and an
optional harmonic dipole-moment restraint.

The root package only holds unit conversions shared by the subpackages.
Energies are in units of the thermal energy kT, lengths in Angstrom and
charges in elementary units, so dipole moments come out in e*Angstrom.*/
package cppm

// DebyePerEAngstrom is one elementary charge displaced by one Angstrom,
// expressed in Debye.
const DebyePerEAngstrom = 1.0 / 0.2081943

// EAngstromToDebye converts a dipole moment from e*Angstrom to Debye.
func EAngstromToDebye(mu float64) float64 { return mu * DebyePerEAngstrom }

// DebyeToEAngstrom converts a dipole moment from Debye to e*Angstrom.
func DebyeToEAngstrom(mu float64) float64 { return mu / DebyePerEAngstrom }
