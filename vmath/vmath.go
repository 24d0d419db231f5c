package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	AxisX = mgl64.Vec3{1, 0, 0}
	AxisY = mgl64.Vec3{0, 1, 0}
	AxisZ = mgl64.Vec3{0, 0, 1}
)

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// EulerYXZToQuat builds an orientation from intrinsic Euler angles applied in Y, X, Z order
// Angles are in radians; result is q = qy * qx * qz
func EulerYXZToQuat(x, y, z float64) mgl64.Quat {
	qy := mgl64.QuatRotate(y, AxisY)
	qx := mgl64.QuatRotate(x, AxisX)
	qz := mgl64.QuatRotate(z, AxisZ)
	return qy.Mul(qx).Mul(qz).Normalize()
}

// QuatToEulerYXZ is the inverse of EulerYXZToQuat
// Near pitch ±90° the Y/Z split is ambiguous; Z is folded into Y
func QuatToEulerYXZ(q mgl64.Quat) (x, y, z float64) {
	m := q.Normalize().Mat4()
	m23 := m.At(1, 2)

	x = math.Asin(-mgl64.Clamp(m23, -1, 1))
	if math.Abs(m23) < 0.9999999 {
		y = math.Atan2(m.At(0, 2), m.At(2, 2))
		z = math.Atan2(m.At(1, 0), m.At(1, 1))
	} else {
		y = math.Atan2(-m.At(2, 0), m.At(0, 0))
		z = 0
	}
	return x, y, z
}

// Yaw returns the rotation of q about the vertical axis
func Yaw(q mgl64.Quat) float64 {
	fwd := q.Rotate(mgl64.Vec3{0, 0, 1})
	return math.Atan2(fwd.X(), fwd.Z())
}

// YawOnly strips pitch and roll from q, keeping its heading
func YawOnly(q mgl64.Quat) mgl64.Quat {
	return mgl64.QuatRotate(Yaw(q), AxisY)
}

// HorizontalDistSq is the squared distance between a and b ignoring the vertical (Y) axis
func HorizontalDistSq(a, b mgl64.Vec3) float64 {
	dx := a.X() - b.X()
	dz := a.Z() - b.Z()
	return dx*dx + dz*dz
}

// ScaleDamp returns (1 - damping)^h, the frame-rate independent decay factor
func ScaleDamp(damping, h float64) float64 {
	if damping <= 0 {
		return 1
	}
	return math.Pow(1-damping, h)
}

// AbsMat3 returns the element-wise absolute value of m
func AbsMat3(m mgl64.Mat3) mgl64.Mat3 {
	for i := range m {
		m[i] = math.Abs(m[i])
	}
	return m
}

// VecAlmostEqual reports whether every component of a and b is within eps
func VecAlmostEqual(a, b mgl64.Vec3, eps float64) bool {
	return math.Abs(a[0]-b[0]) <= eps && math.Abs(a[1]-b[1]) <= eps && math.Abs(a[2]-b[2]) <= eps
}

// QuatAlmostEqual compares rotations, treating q and -q as equal
func QuatAlmostEqual(a, b mgl64.Quat, eps float64) bool {
	d := math.Abs(a.Dot(b))
	return math.Abs(d-1) <= eps
}

// FastRand is a xorshift64 generator for per-tick jitter; not safe for concurrent use
type FastRand struct {
	state uint64
}

// NewFastRand seeds the generator; zero is replaced since xorshift never leaves it
func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Float64 returns a value in [0, 1) from the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Centered returns a value in [-width/2, width/2)
func (r *FastRand) Centered(width float64) float64 {
	return (r.Float64() - 0.5) * width
}

// HorizontalDir returns a random unit vector in the XZ plane
func (r *FastRand) HorizontalDir() mgl64.Vec3 {
	for {
		v := mgl64.Vec3{r.Centered(1), 0, r.Centered(1)}
		if v.LenSqr() > 1e-6 {
			return v.Normalize()
		}
	}
}
