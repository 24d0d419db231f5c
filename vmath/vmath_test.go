package vmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestEulerYXZRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z float64
	}{
		{"identity", 0, 0, 0},
		{"yaw only", 0, DegToRad(90), 0},
		{"pitch only", DegToRad(30), 0, 0},
		{"roll only", 0, 0, DegToRad(-45)},
		{"mixed", DegToRad(15), DegToRad(-120), DegToRad(60)},
		{"negative pitch", DegToRad(-80), DegToRad(10), DegToRad(170)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := EulerYXZToQuat(tt.x, tt.y, tt.z)
			x, y, z := QuatToEulerYXZ(q)

			if math.Abs(x-tt.x) > 1e-9 || math.Abs(y-tt.y) > 1e-9 || math.Abs(z-tt.z) > 1e-9 {
				t.Errorf("round trip = (%v, %v, %v), want (%v, %v, %v)", x, y, z, tt.x, tt.y, tt.z)
			}

			back := EulerYXZToQuat(x, y, z)
			if !QuatAlmostEqual(q, back, 1e-12) {
				t.Errorf("quaternion round trip = %v, want %v", back, q)
			}
		})
	}
}

func TestEulerYXZOrder(t *testing.T) {
	// Yaw is applied last in world space: a pitched-then-yawed forward vector keeps its pitch
	q := EulerYXZToQuat(DegToRad(-30), DegToRad(90), 0)
	fwd := q.Rotate(mgl64.Vec3{0, 0, 1})

	want := mgl64.Vec3{math.Cos(DegToRad(30)), math.Sin(DegToRad(30)), 0}
	if !VecAlmostEqual(fwd, want, 1e-9) {
		t.Errorf("forward = %v, want %v", fwd, want)
	}
}

func TestYawOnly(t *testing.T) {
	q := EulerYXZToQuat(DegToRad(25), DegToRad(40), DegToRad(-10))
	upright := YawOnly(q)

	up := upright.Rotate(AxisY)
	if !VecAlmostEqual(up, AxisY, 1e-9) {
		t.Errorf("YawOnly tilted the up axis: %v", up)
	}

	plain := EulerYXZToQuat(0, DegToRad(40), 0)
	if math.Abs(Yaw(plain)-DegToRad(40)) > 1e-9 {
		t.Errorf("Yaw = %v, want %v", Yaw(plain), DegToRad(40))
	}
}

func TestHorizontalDistSq(t *testing.T) {
	a := mgl64.Vec3{1, 100, 2}
	b := mgl64.Vec3{4, -50, 6}
	if got := HorizontalDistSq(a, b); got != 25 {
		t.Errorf("HorizontalDistSq = %v, want 25", got)
	}
}

func TestScaleDamp(t *testing.T) {
	if ScaleDamp(0, 1.0/60) != 1 {
		t.Error("zero damping must not decay")
	}
	got := ScaleDamp(0.5, 2)
	if math.Abs(got-0.25) > 1e-12 {
		t.Errorf("ScaleDamp(0.5, 2) = %v, want 0.25", got)
	}
}

func TestFastRandRanges(t *testing.T) {
	rng := NewFastRand(0)
	for i := 0; i < 10000; i++ {
		if f := rng.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64 = %v out of [0, 1)", f)
		}
		if c := rng.Centered(0.1); c < -0.05 || c >= 0.05 {
			t.Fatalf("Centered = %v out of range", c)
		}
	}
	d := rng.HorizontalDir()
	if d.Y() != 0 || math.Abs(d.Len()-1) > 1e-12 {
		t.Errorf("HorizontalDir = %v", d)
	}
}

func TestFastRandDeterministic(t *testing.T) {
	a, b := NewFastRand(42), NewFastRand(42)
	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatal("same seed diverged")
		}
	}
}
