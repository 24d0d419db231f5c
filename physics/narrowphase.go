package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	maxManifoldPoints = 8
	vertexInsideTol   = 1e-3
	edgeAxisBias      = 0.95

	// Corner features of a box-box pair: A's corners 0-7, B's corners 8-15, edge fallback 16
	featureCornerB = 8
	featureEdge    = 16
	featureBits    = 5

	// Corners of B closer than this (in the contact plane) to one of A's are the same support point
	contactMergeDistSq = 1e-4
)

// primitive is a world-space collision piece of a body; cylinders expand to several spheres
type primitive struct {
	kind   ShapeKind // ShapeBox or ShapeSphere
	center mgl64.Vec3
	axes   [3]mgl64.Vec3
	half   mgl64.Vec3
	radius float64
}

// contact is one solver point; normal points from body B toward body A
type contact struct {
	point  mgl64.Vec3
	normal mgl64.Vec3
	depth  float64

	// feature identifies the generating primitive pair and corner, stable across sub-steps
	feature uint32

	// Solver state, filled by prepare
	rA, rB       mgl64.Vec3
	t1, t2       mgl64.Vec3
	kN, kT1, kT2 float64
	target       float64
	jn, jt1, jt2 float64
}

type manifold struct {
	a, b     *Body
	contacts []contact
}

func primitivesOf(b *Body, buf []primitive) []primitive {
	buf = buf[:0]
	switch b.Shape.Kind {
	case ShapeBox:
		r := b.rotation()
		buf = append(buf, primitive{
			kind:   ShapeBox,
			center: b.Position,
			axes:   [3]mgl64.Vec3{r.Col(0), r.Col(1), r.Col(2)},
			half:   b.Shape.HalfExtents,
		})
	case ShapeSphere:
		buf = append(buf, primitive{kind: ShapeSphere, center: b.Position, radius: b.Shape.Radius})
	case ShapeCylinder:
		centers, radius := b.Shape.sphereCluster()
		for _, c := range centers {
			buf = append(buf, primitive{
				kind:   ShapeSphere,
				center: b.Position.Add(b.Orientation.Rotate(c)),
				radius: radius,
			})
		}
	}
	return buf
}

// narrowPhase builds contact manifolds for candidate pairs
type narrowPhase struct {
	primA, primB []primitive
}

func (n *narrowPhase) collide(a, b *Body) (manifold, bool) {
	n.primA = primitivesOf(a, n.primA)
	n.primB = primitivesOf(b, n.primB)

	m := manifold{a: a, b: b}
	for i := range n.primA {
		for j := range n.primB {
			start := len(m.contacts)
			m.contacts = collidePrimitives(&n.primA[i], &n.primB[j], m.contacts)
			base := uint32(i*len(n.primB)+j) << featureBits
			for k := start; k < len(m.contacts); k++ {
				m.contacts[k].feature |= base
			}
			if len(m.contacts) >= maxManifoldPoints {
				m.contacts = m.contacts[:maxManifoldPoints]
				return m, true
			}
		}
	}
	return m, len(m.contacts) > 0
}

func collidePrimitives(pa, pb *primitive, out []contact) []contact {
	switch {
	case pa.kind == ShapeBox && pb.kind == ShapeBox:
		return collideBoxBox(pa, pb, out)
	case pa.kind == ShapeSphere && pb.kind == ShapeSphere:
		return collideSphereSphere(pa, pb, out)
	case pa.kind == ShapeSphere && pb.kind == ShapeBox:
		if c, ok := collideSphereBox(pa, pb); ok {
			out = append(out, c)
		}
		return out
	default:
		if c, ok := collideSphereBox(pb, pa); ok {
			c.normal = c.normal.Mul(-1)
			out = append(out, c)
		}
		return out
	}
}

func collideSphereSphere(pa, pb *primitive, out []contact) []contact {
	d := pa.center.Sub(pb.center)
	dist := d.Len()
	sum := pa.radius + pb.radius
	if dist >= sum {
		return out
	}
	n := mgl64.Vec3{0, 1, 0}
	if dist > 1e-9 {
		n = d.Mul(1 / dist)
	}
	depth := sum - dist
	return append(out, contact{
		point:  pb.center.Add(n.Mul(pb.radius - depth/2)),
		normal: n,
		depth:  depth,
	})
}

// collideSphereBox returns a contact whose normal points from the box toward the sphere
func collideSphereBox(s, bx *primitive) (contact, bool) {
	rel := s.center.Sub(bx.center)
	local := mgl64.Vec3{rel.Dot(bx.axes[0]), rel.Dot(bx.axes[1]), rel.Dot(bx.axes[2])}

	var clamped mgl64.Vec3
	for i := 0; i < 3; i++ {
		clamped[i] = mgl64.Clamp(local[i], -bx.half[i], bx.half[i])
	}
	diff := local.Sub(clamped)
	d2 := diff.LenSqr()
	if d2 > s.radius*s.radius {
		return contact{}, false
	}

	var nLocal, pLocal mgl64.Vec3
	var depth float64
	if d2 > 1e-18 {
		d := math.Sqrt(d2)
		nLocal = diff.Mul(1 / d)
		pLocal = clamped
		depth = s.radius - d
	} else {
		// Center inside the box: push out through the nearest face
		axis, gap := 0, math.Inf(1)
		for i := 0; i < 3; i++ {
			if g := bx.half[i] - math.Abs(local[i]); g < gap {
				axis, gap = i, g
			}
		}
		sign := 1.0
		if local[axis] < 0 {
			sign = -1
		}
		nLocal[axis] = sign
		pLocal = local
		pLocal[axis] = sign * bx.half[axis]
		depth = s.radius + gap
	}

	toWorld := func(v mgl64.Vec3) mgl64.Vec3 {
		return bx.axes[0].Mul(v[0]).Add(bx.axes[1].Mul(v[1])).Add(bx.axes[2].Mul(v[2]))
	}
	return contact{
		point:  bx.center.Add(toWorld(pLocal)),
		normal: toWorld(nLocal),
		depth:  depth,
	}, true
}

// collideBoxBox runs the separating axis test over the 15 OBB axes
func collideBoxBox(pa, pb *primitive, out []contact) []contact {
	t := pa.center.Sub(pb.center)

	bestDepth := math.Inf(1)
	var bestAxis mgl64.Vec3

	test := func(axis mgl64.Vec3, edge bool) bool {
		l2 := axis.LenSqr()
		if l2 < 1e-10 {
			return true
		}
		axis = axis.Mul(1 / math.Sqrt(l2))
		ra := projectRadius(pa, axis)
		rb := projectRadius(pb, axis)
		dist := t.Dot(axis)
		overlap := ra + rb - math.Abs(dist)
		if overlap < 0 {
			return false
		}
		if (!edge && overlap < bestDepth) || (edge && overlap < bestDepth*edgeAxisBias) {
			bestDepth = overlap
			if dist < 0 {
				axis = axis.Mul(-1)
			}
			bestAxis = axis
		}
		return true
	}

	for i := 0; i < 3; i++ {
		if !test(pa.axes[i], false) || !test(pb.axes[i], false) {
			return out
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !test(pa.axes[i].Cross(pb.axes[j]), true) {
				return out
			}
		}
	}

	n := bestAxis
	start := len(out)
	for i, v := range boxCorners(pa) {
		if pointInBox(v, pb, vertexInsideTol) {
			out = append(out, contact{point: v, normal: n, depth: bestDepth, feature: uint32(i)})
		}
	}
	fromA := len(out)
	for i, v := range boxCorners(pb) {
		if !pointInBox(v, pa, vertexInsideTol) || nearContact(out[start:fromA], v, n) {
			continue
		}
		out = append(out, contact{point: v, normal: n, depth: bestDepth, feature: featureCornerB + uint32(i)})
	}
	if len(out) == start {
		// Edge against edge: meet halfway between the deepest features
		p := boxSupport(pa, n.Mul(-1)).Add(boxSupport(pb, n)).Mul(0.5)
		out = append(out, contact{point: p, normal: n, depth: bestDepth, feature: featureEdge})
	}
	return out
}

// nearContact reports whether v coincides with an existing contact once projected onto the contact plane
// Face-on-face boxes of equal size otherwise yield every support point twice
func nearContact(cs []contact, v, n mgl64.Vec3) bool {
	for i := range cs {
		d := v.Sub(cs[i].point)
		d = d.Sub(n.Mul(d.Dot(n)))
		if d.LenSqr() < contactMergeDistSq {
			return true
		}
	}
	return false
}

func projectRadius(p *primitive, axis mgl64.Vec3) float64 {
	return p.half[0]*math.Abs(p.axes[0].Dot(axis)) +
		p.half[1]*math.Abs(p.axes[1].Dot(axis)) +
		p.half[2]*math.Abs(p.axes[2].Dot(axis))
}

func boxCorners(p *primitive) [8]mgl64.Vec3 {
	var c [8]mgl64.Vec3
	ex := p.axes[0].Mul(p.half[0])
	ey := p.axes[1].Mul(p.half[1])
	ez := p.axes[2].Mul(p.half[2])
	for i := 0; i < 8; i++ {
		v := p.center
		if i&1 != 0 {
			v = v.Add(ex)
		} else {
			v = v.Sub(ex)
		}
		if i&2 != 0 {
			v = v.Add(ey)
		} else {
			v = v.Sub(ey)
		}
		if i&4 != 0 {
			v = v.Add(ez)
		} else {
			v = v.Sub(ez)
		}
		c[i] = v
	}
	return c
}

func pointInBox(v mgl64.Vec3, p *primitive, tol float64) bool {
	rel := v.Sub(p.center)
	for i := 0; i < 3; i++ {
		if math.Abs(rel.Dot(p.axes[i])) > p.half[i]+tol {
			return false
		}
	}
	return true
}

func boxSupport(p *primitive, d mgl64.Vec3) mgl64.Vec3 {
	v := p.center
	for i := 0; i < 3; i++ {
		e := p.axes[i].Mul(p.half[i])
		if p.axes[i].Dot(d) >= 0 {
			v = v.Add(e)
		} else {
			v = v.Sub(e)
		}
	}
	return v
}
