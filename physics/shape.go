package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/brickstorm/parameter"
)

// ShapeKind tags the collision primitive carried by a Shape
type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
	ShapeCylinder
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	case ShapeCylinder:
		return "cylinder"
	default:
		return fmt.Sprintf("shape(%d)", uint8(k))
	}
}

// Shape is a tagged collision primitive
// Box uses HalfExtents, Sphere uses Radius, Cylinder uses Radius and Height (axis along local Y)
type Shape struct {
	Kind        ShapeKind
	HalfExtents mgl64.Vec3
	Radius      float64
	Height      float64
}

// Box returns a box shape from half extents
func Box(halfExtents mgl64.Vec3) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: halfExtents}
}

// Sphere returns a sphere shape
func Sphere(radius float64) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius}
}

// Cylinder returns an upright cylinder shape
func Cylinder(radius, height float64) Shape {
	return Shape{Kind: ShapeCylinder, Radius: radius, Height: height}
}

// Volume returns the full solid volume of the shape
func (s Shape) Volume() float64 {
	switch s.Kind {
	case ShapeBox:
		h := s.HalfExtents
		return 8 * h.X() * h.Y() * h.Z()
	case ShapeSphere:
		return 4.0 / 3.0 * math.Pi * s.Radius * s.Radius * s.Radius
	case ShapeCylinder:
		return math.Pi * s.Radius * s.Radius * s.Height
	}
	return 0
}

// localInertia returns the principal moments of inertia for the given mass
func (s Shape) localInertia(mass float64) mgl64.Vec3 {
	switch s.Kind {
	case ShapeBox:
		w, h, d := 2*s.HalfExtents.X(), 2*s.HalfExtents.Y(), 2*s.HalfExtents.Z()
		return mgl64.Vec3{
			mass / 12 * (h*h + d*d),
			mass / 12 * (w*w + d*d),
			mass / 12 * (w*w + h*h),
		}
	case ShapeSphere:
		i := 2.0 / 5.0 * mass * s.Radius * s.Radius
		return mgl64.Vec3{i, i, i}
	case ShapeCylinder:
		r2, h2 := s.Radius*s.Radius, s.Height*s.Height
		side := mass / 12 * (3*r2 + h2)
		return mgl64.Vec3{side, mass / 2 * r2, side}
	}
	return mgl64.Vec3{}
}

// boundingHalfExtents returns the local-space half extents enclosing the shape
func (s Shape) boundingHalfExtents() mgl64.Vec3 {
	switch s.Kind {
	case ShapeBox:
		return s.HalfExtents
	case ShapeSphere:
		return mgl64.Vec3{s.Radius, s.Radius, s.Radius}
	case ShapeCylinder:
		return mgl64.Vec3{s.Radius, s.Height / 2, s.Radius}
	}
	return mgl64.Vec3{}
}

func (s Shape) valid() bool {
	switch s.Kind {
	case ShapeBox:
		h := s.HalfExtents
		return h.X() > 0 && h.Y() > 0 && h.Z() > 0
	case ShapeSphere:
		return s.Radius > 0
	case ShapeCylinder:
		return s.Radius > 0 && s.Height > 0
	}
	return false
}

// sphereCluster returns local-space sphere centers and the shared radius approximating a cylinder
// Layers run along local Y; each layer has a center sphere and, for wide cylinders, a ring of six
func (s Shape) sphereCluster() ([]mgl64.Vec3, float64) {
	r := math.Min(s.Radius, s.Height/2)
	half := s.Height/2 - r

	layers := 1
	if half > 0 {
		layers = int(math.Ceil(2*half/parameter.CylinderSphereSpacing)) + 1
	}

	ring := s.Radius - r
	perLayer := 1
	if ring > 1e-9 {
		perLayer = 7
	}

	centers := make([]mgl64.Vec3, 0, layers*perLayer)
	for i := 0; i < layers; i++ {
		y := 0.0
		if layers > 1 {
			y = -half + 2*half*float64(i)/float64(layers-1)
		}
		centers = append(centers, mgl64.Vec3{0, y, 0})
		if perLayer == 1 {
			continue
		}
		for k := 0; k < 6; k++ {
			a := float64(k) * math.Pi / 3
			centers = append(centers, mgl64.Vec3{ring * math.Cos(a), y, ring * math.Sin(a)})
		}
	}
	return centers, r
}
