package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/brickstorm/vmath"
)

// BodySpec describes a body to be added to a World
// ID 0 asks the world to allocate one; a zero Orientation is read as identity
type BodySpec struct {
	ID          uint64
	Mass        float64
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Shape       Shape
}

// Body is a rigid body owned by exactly one World
type Body struct {
	ID              uint64
	Shape           Shape
	Position        mgl64.Vec3
	Orientation     mgl64.Quat
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3

	// AllowSleep false keeps the body permanently awake (player controller)
	AllowSleep bool

	mass       float64
	invMass    float64
	invInertia mgl64.Vec3 // Local principal axes

	sleeping   bool
	sleepTimer float64

	// Last transform handed out in an update batch
	reported     bool
	reportedPos  mgl64.Vec3
	reportedQuat mgl64.Quat
}

func newBody(id uint64, spec BodySpec) *Body {
	q := spec.Orientation
	if q.Len() == 0 {
		q = mgl64.QuatIdent()
	}
	b := &Body{
		ID:          id,
		Shape:       spec.Shape,
		Position:    spec.Position,
		Orientation: q.Normalize(),
		AllowSleep:  true,
	}
	b.SetMass(spec.Mass)
	return b
}

// Mass returns the body mass, 0 for fixed bodies
func (b *Body) Mass() float64 { return b.mass }

// InvMass returns the inverse mass, 0 for fixed bodies
func (b *Body) InvMass() float64 { return b.invMass }

// IsStatic reports whether the body is fixed (mass 0)
func (b *Body) IsStatic() bool { return b.mass == 0 }

// Sleeping reports whether the solver is currently skipping the body
func (b *Body) Sleeping() bool { return b.sleeping }

// SetMass updates mass and the derived inverse mass and inertia
// Negative mass is treated as 0
func (b *Body) SetMass(mass float64) {
	if mass <= 0 {
		b.mass, b.invMass = 0, 0
		b.invInertia = mgl64.Vec3{}
		b.Velocity = mgl64.Vec3{}
		b.AngularVelocity = mgl64.Vec3{}
		return
	}
	b.mass = mass
	b.invMass = 1 / mass
	in := b.Shape.localInertia(mass)
	for i := range in {
		if in[i] > 0 {
			b.invInertia[i] = 1 / in[i]
		} else {
			b.invInertia[i] = 0
		}
	}
}

// Wake resumes simulation of a sleeping body
func (b *Body) Wake() {
	b.sleeping = false
	b.sleepTimer = 0
}

func (b *Body) sleep() {
	b.sleeping = true
	b.sleepTimer = 0
	b.Velocity = mgl64.Vec3{}
	b.AngularVelocity = mgl64.Vec3{}
}

// SetTransform overwrites position and orientation, the only way a fixed body moves
func (b *Body) SetTransform(pos mgl64.Vec3, q mgl64.Quat) {
	b.Position = pos
	if q.Len() == 0 {
		q = mgl64.QuatIdent()
	}
	b.Orientation = q.Normalize()
}

// dynamic reports whether the solver may move the body this sub-step
func (b *Body) dynamic() bool {
	return b.invMass > 0 && !b.sleeping
}

// effInvMass is the inverse mass seen by the solver; sleeping bodies act as fixed
func (b *Body) effInvMass() float64 {
	if b.sleeping {
		return 0
	}
	return b.invMass
}

func (b *Body) rotation() mgl64.Mat3 {
	return b.Orientation.Mat4().Mat3()
}

// invInertiaWorld returns R * I^-1 * R^T
func (b *Body) invInertiaWorld() mgl64.Mat3 {
	if !b.dynamic() {
		return mgl64.Mat3{}
	}
	r := b.rotation()
	return r.Mul3(mgl64.Diag3(b.invInertia)).Mul3(r.Transpose())
}

// velocityAt returns the velocity of a point at offset r from the center
func (b *Body) velocityAt(r mgl64.Vec3) mgl64.Vec3 {
	return b.Velocity.Add(b.AngularVelocity.Cross(r))
}

func (b *Body) applyImpulseAt(j, r mgl64.Vec3, invI mgl64.Mat3) {
	im := b.effInvMass()
	if im == 0 {
		return
	}
	b.Velocity = b.Velocity.Add(j.Mul(im))
	b.AngularVelocity = b.AngularVelocity.Add(invI.Mul3x1(r.Cross(j)))
}

// AABB returns the world-space bounds of the body
func (b *Body) AABB() (lo, hi mgl64.Vec3) {
	ext := vmath.AbsMat3(b.rotation()).Mul3x1(b.Shape.boundingHalfExtents())
	return b.Position.Sub(ext), b.Position.Add(ext)
}

// changedSinceReport reports whether the transform differs from the last batch entry
func (b *Body) changedSinceReport() bool {
	if !b.reported {
		return true
	}
	return b.Position != b.reportedPos || b.Orientation != b.reportedQuat
}

func (b *Body) markReported() {
	b.reported = true
	b.reportedPos = b.Position
	b.reportedQuat = b.Orientation
}
