// Package lighting provides directional light helpers.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SunDirection converts azimuth/elevation angles in degrees to a unit vector
// pointing towards the sun. Azimuth rotates around Y starting at +Z,
// elevation is measured up from the horizon.
func SunDirection(azimuth, elevation float32) mgl32.Vec3 {
	lonRad := float64(mgl32.DegToRad(azimuth))
	latRad := float64(mgl32.DegToRad(elevation))

	// Spherical to Cartesian conversion
	x := float32(math.Cos(latRad) * math.Sin(lonRad))
	y := float32(math.Sin(latRad))
	z := float32(math.Cos(latRad) * math.Cos(lonRad))

	return mgl32.Vec3{x, y, z}
}

// Angles is the inverse of SunDirection. The zero vector maps to (0, 90).
func Angles(toSun mgl32.Vec3) (azimuth, elevation float32) {
	l := toSun.Len()
	if l == 0 {
		return 0, 90
	}
	d := toSun.Mul(1 / l)
	elevation = mgl32.RadToDeg(float32(math.Asin(float64(mgl32.Clamp(d[1], -1, 1)))))
	azimuth = mgl32.RadToDeg(float32(math.Atan2(float64(d[0]), float64(d[2]))))
	return azimuth, elevation
}

// Direction returns the direction light travels for a sun at the given
// angles, which is what shaders expect.
func Direction(azimuth, elevation float32) mgl32.Vec3 {
	return SunDirection(azimuth, elevation).Mul(-1)
}
