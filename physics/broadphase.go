package physics

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/brickstorm/parameter"
)

type pair struct {
	a, b *Body
}

type sapEntry struct {
	body   *Body
	lo, hi mgl64.Vec3
}

// sweepAndPrune sorts bodies on their X interval and emits overlapping pairs
// Pairs where neither body can move this sub-step are skipped
type sweepAndPrune struct {
	entries []sapEntry
	pairs   []pair
}

func (s *sweepAndPrune) collect(bodies []*Body) []pair {
	s.entries = s.entries[:0]
	s.pairs = s.pairs[:0]

	margin := mgl64.Vec3{parameter.BroadphaseMargin, parameter.BroadphaseMargin, parameter.BroadphaseMargin}
	for _, b := range bodies {
		lo, hi := b.AABB()
		s.entries = append(s.entries, sapEntry{body: b, lo: lo.Sub(margin), hi: hi.Add(margin)})
	}

	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].lo.X() < s.entries[j].lo.X()
	})

	for i := range s.entries {
		ei := &s.entries[i]
		for j := i + 1; j < len(s.entries); j++ {
			ej := &s.entries[j]
			if ej.lo.X() > ei.hi.X() {
				break
			}
			if !ei.body.dynamic() && !ej.body.dynamic() {
				continue
			}
			if ei.hi.Y() < ej.lo.Y() || ej.hi.Y() < ei.lo.Y() ||
				ei.hi.Z() < ej.lo.Z() || ej.hi.Z() < ei.lo.Z() {
				continue
			}
			// Lower id first so a pair keeps its orientation while the sweep order shuffles
			a, b := ei.body, ej.body
			if b.ID < a.ID {
				a, b = b, a
			}
			s.pairs = append(s.pairs, pair{a: a, b: b})
		}
	}
	return s.pairs
}

// aabbOverlap reports whether two bodies' bounds touch, with margin
func aabbOverlap(a, b *Body, margin float64) bool {
	alo, ahi := a.AABB()
	blo, bhi := b.AABB()
	for i := 0; i < 3; i++ {
		if ahi[i]+margin < blo[i] || bhi[i]+margin < alo[i] {
			return false
		}
	}
	return true
}
