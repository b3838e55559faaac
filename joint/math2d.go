package joint

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// cross2 is the 2D analogue of mgl64.Vec3.Cross: the scalar z-component of
// the 3D cross product of (a.x, a.y, 0) and (b.x, b.y, 0). mgl64 has no 2D
// cross product, so this is written by hand (the teacher does the same for
// clampSmallVelocities when a helper it needs doesn't exist in mathgl).
func cross2(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// crossScalarVec2 is omega x v for scalar angular velocity omega and 2D
// vector v: equivalent to the 3D cross product of (0,0,omega) and (v,0).
func crossScalarVec2(omega float64, v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-omega * v.Y(), omega * v.X()}
}

// perp returns v rotated 90 degrees counter-clockwise: (-y, x).
func perp(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v.Y(), v.X()}
}

// wrapAngle normalizes theta into (-pi, pi] (spec §4.3 "Angle wrapping").
func wrapAngle(theta float64) float64 {
	theta = math.Mod(theta+math.Pi, 2*math.Pi)
	if theta <= 0 {
		theta += 2 * math.Pi
	}
	return theta - math.Pi
}

// softParams computes the CIM (gamma) and ERP (beta) terms for a soft
// constraint of stiffness k and damping d over step dt (spec §4.3):
//
//	gamma = 1 / (dt*(dt*k + d))   (0 if the denominator underflows)
//	beta  = dt*k / (dt*k + d)
func softParams(k, d, dt float64) (gamma, beta float64) {
	const eps = 1e-12
	denom := dt*k + d
	if denom <= eps {
		return 0, 0
	}
	gamma = 1.0 / (dt * denom)
	beta = dt * k / denom
	return gamma, beta
}

// springStiffnessDamping converts a frequency (Hz) and damping ratio into
// stiffness k and damping d for a reduced mass/inertia mu (spec §4.3,
// §4.6): omega_n = 2*pi*f, k = mu*omega_n^2, d = 2*mu*zeta*omega_n.
func springStiffnessDamping(mu, frequency, dampingRatio float64) (k, d float64) {
	omegaN := 2 * math.Pi * frequency
	k = mu * omegaN * omegaN
	d = 2 * mu * dampingRatio * omegaN
	return k, d
}

// clampAbs clamps v to [-limit, limit].
func clampAbs(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

// solve2 solves k*x = rhs for x, i.e. x = k^-1 * rhs.
func solve2(k mgl64.Mat2, rhs mgl64.Vec2) mgl64.Vec2 {
	return k.Inv().Mul2x1(rhs)
}

// solve3 solves k*x = rhs for x, i.e. x = k^-1 * rhs.
func solve3(k mgl64.Mat3, rhs mgl64.Vec3) mgl64.Vec3 {
	return k.Inv().Mul3x1(rhs)
}
