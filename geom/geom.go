/*package geom contains routines for geometry on the surface of a sphere.

All angles follow the ISO convention: theta is the polar angle in [0, pi]
measured from +z and phi is the azimuthal angle in [0, 2pi).
*/
package geom

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// SphericalToCartesian converts spherical coordinates to a Cartesian vector
// with the given magnitude. |result| equals radius by construction.
func SphericalToCartesian(theta, phi, radius float64) r3.Vec {
	sinTheta := math.Sin(theta)
	return r3.Vec{
		X: radius * sinTheta * math.Cos(phi),
		Y: radius * sinTheta * math.Sin(phi),
		Z: radius * math.Cos(theta),
	}
}

// CartesianToSpherical returns the polar and azimuthal angles of v.
func CartesianToSpherical(v r3.Vec) (theta, phi float64) {
	// Clamp against rounding so Acos never sees |x| > 1.
	z := v.Z / r3.Norm(v)
	if z > 1 {
		z = 1
	} else if z < -1 {
		z = -1
	}
	return math.Acos(z), math.Atan2(v.Y, v.X)
}

// RandomOnSphere draws a point uniformly distributed on the surface of a
// sphere with the given radius. cos(theta) is sampled uniformly in [-1, 1],
// which gives the correct area element and avoids clustering at the poles.
func RandomOnSphere(rng *rand.Rand, radius float64) r3.Vec {
	theta := math.Acos(2*rng.Float64() - 1)
	phi := 2 * math.Pi * rng.Float64()
	return SphericalToCartesian(theta, phi, radius)
}

// Perturb proposes a new position by displacing the spherical angles of pos
// on a disc of radius maxAngle (radians) around the current angles, then
// re-projecting onto the sphere. The step size controls the Monte Carlo
// acceptance rate.
func Perturb(rng *rand.Rand, pos r3.Vec, maxAngle, radius float64) r3.Vec {
	theta, phi := CartesianToSpherical(pos)
	angle := 2 * math.Pi * rng.Float64()
	length := maxAngle * rng.Float64()
	theta += math.Sin(angle) * length
	phi += math.Cos(angle) * length
	return SphericalToCartesian(theta, phi, radius)
}
