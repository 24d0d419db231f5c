package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/brickstorm/parameter"
)

// solver resolves contact manifolds with sequential impulses
// Accumulated impulses are clamped per contact: normal ≥ 0, friction inside the Coulomb cone
// and carried to the next sub-step, keyed by body pair and contact feature, to warm start it
type solver struct {
	iterations  int
	restitution float64
	friction    float64

	cache, next map[contactKey]contactImpulse
}

type contactKey struct {
	a, b    uint64
	feature uint32
}

// contactImpulse is the accumulated impulse of one contact at the end of a sub-step
type contactImpulse struct {
	normal mgl64.Vec3
	jn     float64
	jt     mgl64.Vec3 // Friction, world space; the tangent basis is rebuilt every sub-step
}

type manifoldInertia struct {
	invIA, invIB mgl64.Mat3
}

func newSolver(iterations int, restitution, friction float64) solver {
	return solver{
		iterations:  iterations,
		restitution: restitution,
		friction:    friction,
		cache:       make(map[contactKey]contactImpulse),
		next:        make(map[contactKey]contactImpulse),
	}
}

func (s *solver) solve(manifolds []manifold, inertia []manifoldInertia) {
	// Restitution targets read the velocities before any impulse of this sub-step
	for mi := range manifolds {
		s.prepare(&manifolds[mi], &inertia[mi])
	}
	for mi := range manifolds {
		s.warmStart(&manifolds[mi], &inertia[mi])
	}
	for it := 0; it < s.iterations; it++ {
		for mi := range manifolds {
			m := &manifolds[mi]
			in := &inertia[mi]
			for ci := range m.contacts {
				s.solveContact(m.a, m.b, &m.contacts[ci], in)
			}
		}
	}
	s.store(manifolds)
}

// warmStart reapplies last sub-step's impulses for contacts that persist with a similar normal
func (s *solver) warmStart(m *manifold, in *manifoldInertia) {
	for ci := range m.contacts {
		c := &m.contacts[ci]
		prev, ok := s.cache[contactKey{m.a.ID, m.b.ID, c.feature}]
		if !ok || prev.normal.Dot(c.normal) < parameter.WarmStartNormalDot {
			continue
		}
		c.jn = prev.jn
		c.jt1 = prev.jt.Dot(c.t1)
		c.jt2 = prev.jt.Dot(c.t2)
		j := c.normal.Mul(c.jn).Add(c.t1.Mul(c.jt1)).Add(c.t2.Mul(c.jt2))
		s.apply(m.a, m.b, c, j, in)
	}
}

// store swaps in this sub-step's accumulated impulses; contacts that ended are forgotten
func (s *solver) store(manifolds []manifold) {
	clear(s.next)
	for mi := range manifolds {
		m := &manifolds[mi]
		for ci := range m.contacts {
			c := &m.contacts[ci]
			s.next[contactKey{m.a.ID, m.b.ID, c.feature}] = contactImpulse{
				normal: c.normal,
				jn:     c.jn,
				jt:     c.t1.Mul(c.jt1).Add(c.t2.Mul(c.jt2)),
			}
		}
	}
	s.cache, s.next = s.next, s.cache
}

func (s *solver) prepare(m *manifold, in *manifoldInertia) {
	a, b := m.a, m.b
	in.invIA = a.invInertiaWorld()
	in.invIB = b.invInertiaWorld()

	for ci := range m.contacts {
		c := &m.contacts[ci]
		c.rA = c.point.Sub(a.Position)
		c.rB = c.point.Sub(b.Position)
		c.t1, c.t2 = tangentBasis(c.normal)

		c.kN = effectiveMass(a, b, c.rA, c.rB, c.normal, in)
		c.kT1 = effectiveMass(a, b, c.rA, c.rB, c.t1, in)
		c.kT2 = effectiveMass(a, b, c.rA, c.rB, c.t2, in)

		vn := a.velocityAt(c.rA).Sub(b.velocityAt(c.rB)).Dot(c.normal)
		c.target = 0
		if vn < -parameter.RestitutionThreshold {
			c.target = -s.restitution * vn
		}
		c.jn, c.jt1, c.jt2 = 0, 0, 0
	}
}

func (s *solver) solveContact(a, b *Body, c *contact, in *manifoldInertia) {
	if c.kN <= 0 {
		return
	}

	vRel := a.velocityAt(c.rA).Sub(b.velocityAt(c.rB))
	vn := vRel.Dot(c.normal)
	lambda := (c.target - vn) / c.kN
	old := c.jn
	c.jn = math.Max(old+lambda, 0)
	s.apply(a, b, c, c.normal.Mul(c.jn-old), in)

	maxF := s.friction * c.jn
	vRel = a.velocityAt(c.rA).Sub(b.velocityAt(c.rB))
	c.jt1 = s.frictionAxis(a, b, c, in, vRel, c.t1, c.kT1, c.jt1, maxF)
	vRel = a.velocityAt(c.rA).Sub(b.velocityAt(c.rB))
	c.jt2 = s.frictionAxis(a, b, c, in, vRel, c.t2, c.kT2, c.jt2, maxF)
}

func (s *solver) frictionAxis(a, b *Body, c *contact, in *manifoldInertia, vRel, t mgl64.Vec3, k, acc, maxF float64) float64 {
	if k <= 0 {
		return acc
	}
	lambda := -vRel.Dot(t) / k
	next := mgl64.Clamp(acc+lambda, -maxF, maxF)
	s.apply(a, b, c, t.Mul(next-acc), in)
	return next
}

func (s *solver) apply(a, b *Body, c *contact, j mgl64.Vec3, in *manifoldInertia) {
	a.applyImpulseAt(j, c.rA, in.invIA)
	b.applyImpulseAt(j.Mul(-1), c.rB, in.invIB)
}

// effectiveMass returns the denominator of the impulse along d
func effectiveMass(a, b *Body, rA, rB, d mgl64.Vec3, in *manifoldInertia) float64 {
	k := a.effInvMass() + b.effInvMass()
	k += d.Dot(in.invIA.Mul3x1(rA.Cross(d)).Cross(rA))
	k += d.Dot(in.invIB.Mul3x1(rB.Cross(d)).Cross(rB))
	return k
}

// tangentBasis returns two unit vectors orthogonal to n and each other
func tangentBasis(n mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	ref := mgl64.Vec3{1, 0, 0}
	if math.Abs(n.X()) > 0.9 {
		ref = mgl64.Vec3{0, 1, 0}
	}
	t1 := n.Cross(ref).Normalize()
	return t1, n.Cross(t1)
}

// correctPositions pushes overlapping bodies apart along the deepest contact normal
func correctPositions(manifolds []manifold, slop, percent float64) {
	for mi := range manifolds {
		m := &manifolds[mi]
		ima, imb := m.a.effInvMass(), m.b.effInvMass()
		total := ima + imb
		if total == 0 {
			continue
		}
		deepest := -1
		for ci := range m.contacts {
			if deepest < 0 || m.contacts[ci].depth > m.contacts[deepest].depth {
				deepest = ci
			}
		}
		c := m.contacts[deepest]
		corr := math.Max(c.depth-slop, 0) * percent / total
		if corr == 0 {
			continue
		}
		m.a.Position = m.a.Position.Add(c.normal.Mul(corr * ima))
		m.b.Position = m.b.Position.Sub(c.normal.Mul(corr * imb))
	}
}
