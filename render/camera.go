package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/brickstorm/parameter"
)

// Camera is a first-person view: eye position plus yaw about Y and pitch about the camera right axis
// Yaw 0 looks down +Z
type Camera struct {
	Position mgl64.Vec3
	Yaw      float64
	Pitch    float64
}

// basis returns the camera right, up and forward vectors in world space
func (c Camera) basis() (right, up, fwd mgl64.Vec3) {
	cp := math.Cos(c.Pitch)
	fwd = mgl64.Vec3{math.Sin(c.Yaw) * cp, math.Sin(c.Pitch), math.Cos(c.Yaw) * cp}
	right = fwd.Cross(mgl64.Vec3{0, 1, 0}).Normalize()
	up = right.Cross(fwd)
	return right, up, fwd
}

// Projection maps world points to terminal cells
type Projection struct {
	Camera
	Width, Height int // View area in cells, HUD excluded
	Focal         float64
	Aspect        float64 // Cell width / cell height
	Near, Far     float64

	right, up, fwd mgl64.Vec3
}

// NewProjection builds a projection for a w×h cell viewport
func NewProjection(cam Camera, w, h int) Projection {
	p := Projection{
		Camera: cam,
		Width:  w,
		Height: h,
		Focal:  parameter.FocalLength,
		Aspect: parameter.CellAspect,
		Near:   parameter.NearPlane,
		Far:    parameter.FarPlane,
	}
	p.right, p.up, p.fwd = cam.basis()
	return p
}

// View transforms a world point into camera space: x right, y up, z depth
func (p Projection) View(world mgl64.Vec3) mgl64.Vec3 {
	rel := world.Sub(p.Position)
	return mgl64.Vec3{rel.Dot(p.right), rel.Dot(p.up), rel.Dot(p.fwd)}
}

// Project returns the cell coordinates and depth of a world point; ok is false outside the depth range
func (p Projection) Project(world mgl64.Vec3) (sx, sy, depth float64, ok bool) {
	v := p.View(world)
	depth = v.Z()
	if depth < p.Near || depth > p.Far {
		return 0, 0, depth, false
	}
	inv := p.Focal / depth
	sx = float64(p.Width)/2 + v.X()*inv/p.Aspect
	sy = float64(p.Height)/2 - v.Y()*inv
	return sx, sy, depth, true
}

// rect is an inclusive cell rectangle
type rect struct {
	x0, y0, x1, y1 int
}

func (r rect) empty() bool { return r.x1 < r.x0 || r.y1 < r.y0 }

// ProjectBox returns the screen bounds of an oriented box; ok is false when it is entirely outside the view
func (p Projection) ProjectBox(center mgl64.Vec3, rot mgl64.Quat, half mgl64.Vec3) (r rect, depth float64, ok bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	visible := 0

	for i := 0; i < 8; i++ {
		corner := mgl64.Vec3{half.X(), half.Y(), half.Z()}
		if i&1 != 0 {
			corner[0] = -corner[0]
		}
		if i&2 != 0 {
			corner[1] = -corner[1]
		}
		if i&4 != 0 {
			corner[2] = -corner[2]
		}
		sx, sy, _, in := p.Project(center.Add(rot.Rotate(corner)))
		if !in {
			continue
		}
		visible++
		minX, maxX = math.Min(minX, sx), math.Max(maxX, sx)
		minY, maxY = math.Min(minY, sy), math.Max(maxY, sy)
	}
	if visible == 0 {
		return rect{}, 0, false
	}

	depth = p.View(center).Z()
	r = rect{
		x0: max(0, int(math.Floor(minX))),
		y0: max(0, int(math.Floor(minY))),
		x1: min(p.Width-1, int(math.Floor(maxX))),
		y1: min(p.Height-1, int(math.Floor(maxY))),
	}
	if r.empty() {
		return r, depth, false
	}
	return r, depth, true
}
