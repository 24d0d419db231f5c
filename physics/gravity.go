package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// GravitationalAccel returns the acceleration on a body at pos toward an attractor at center
// Returns acceleration (force/mass), not force; distance² is clamped to minDistSq to avoid the singularity
func GravitationalAccel(pos, center mgl64.Vec3, attractorMass, g, minDistSq float64) mgl64.Vec3 {
	delta := center.Sub(pos)
	distSq := delta.LenSqr()
	if distSq == 0 {
		return mgl64.Vec3{}
	}
	clamped := distSq
	if clamped < minDistSq {
		clamped = minDistSq
	}
	mag := g * attractorMass / clamped
	return delta.Normalize().Mul(mag)
}
