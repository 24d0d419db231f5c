package engine

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/brickstorm/parameter"
	"github.com/lixenwraith/brickstorm/physics"
	"github.com/lixenwraith/brickstorm/vmath"
)

// PartSpec describes a placed box part
type PartSpec struct {
	Position     mgl64.Vec3
	Rotation     mgl64.Quat // Zero value is identity
	Size         mgl64.Vec3 // Full edge lengths
	Color        colorful.Color
	Transparency float64
	Anchored     bool
	Collide      bool // Carried for renderers; the physics core always collides
}

// Facade is the render-facing view of one box body
// Mutated only on the coordinator goroutine
type Facade struct {
	uuid         uint64
	position     mgl64.Vec3
	rotation     mgl64.Quat
	size         mgl64.Vec3
	color        colorful.Color
	transparency float64
	anchored     bool
	density      float64
	collide      bool
	disposed     bool
}

func newFacade(uuid uint64, spec PartSpec) *Facade {
	f := &Facade{
		uuid:     uuid,
		position: spec.Position,
		size:     spec.Size,
		color:    spec.Color,
		anchored: spec.Anchored,
		collide:  spec.Collide,
	}
	f.SetRotation(spec.Rotation)
	f.SetTransparency(spec.Transparency)
	if !spec.Anchored {
		f.density = parameter.DensityDynamic
	}
	return f
}

// UUID is the process-unique correlation key shared with both simulations
func (f *Facade) UUID() uint64 { return f.uuid }

func (f *Facade) Position() mgl64.Vec3 { return f.position }

func (f *Facade) Rotation() mgl64.Quat { return f.rotation }

// SetRotation stores q normalized; the zero quaternion is read as identity
func (f *Facade) SetRotation(q mgl64.Quat) {
	if q.Len() == 0 {
		q = mgl64.QuatIdent()
	}
	f.rotation = q.Normalize()
}

// RotationEuler returns the rotation as Euler angles in radians, order YXZ
func (f *Facade) RotationEuler() mgl64.Vec3 {
	x, y, z := vmath.QuatToEulerYXZ(f.rotation)
	return mgl64.Vec3{x, y, z}
}

// SetRotationEuler sets the rotation from Euler angles in radians, order YXZ
func (f *Facade) SetRotationEuler(e mgl64.Vec3) {
	f.rotation = vmath.EulerYXZToQuat(e.X(), e.Y(), e.Z())
}

func (f *Facade) Size() mgl64.Vec3 { return f.size }

func (f *Facade) HalfExtents() mgl64.Vec3 { return f.size.Mul(0.5) }

func (f *Facade) Color() colorful.Color { return f.color }

func (f *Facade) Transparency() float64 { return f.transparency }

// SetTransparency clamps t to [0, 1]
func (f *Facade) SetTransparency(t float64) {
	f.transparency = mgl64.Clamp(t, 0, 1)
}

func (f *Facade) Anchored() bool { return f.anchored }

func (f *Facade) Collide() bool { return f.collide }

func (f *Facade) Disposed() bool { return f.disposed }

func (f *Facade) Volume() float64 {
	return f.size.X() * f.size.Y() * f.size.Z()
}

// Mass is 0 while anchored, volume × density otherwise
func (f *Facade) Mass() float64 {
	if f.anchored {
		return 0
	}
	return f.Volume() * f.density
}

// bodySpec is the simulation-side description, shared by the world body and its player mirror
func (f *Facade) bodySpec() physics.BodySpec {
	return physics.BodySpec{
		ID:          f.uuid,
		Mass:        f.Mass(),
		Position:    f.position,
		Orientation: f.rotation,
		Shape:       physics.Box(f.HalfExtents()),
	}
}

// unanchor flips the facade to dynamic; false if it already was
func (f *Facade) unanchor() bool {
	if !f.anchored {
		return false
	}
	f.anchored = false
	f.density = parameter.DensityDynamic
	return true
}

func (f *Facade) applyTransform(pos mgl64.Vec3, q mgl64.Quat) {
	f.position = pos
	f.rotation = q
}

func (f *Facade) dispose() {
	f.disposed = true
}
