package joint

import "fmt"

// LinearMotor is the capability mixin spec §4.5 describes: a target speed
// along some joint-specific axis, with an optional max-force clamp on the
// accumulated motor impulse.
type LinearMotor struct {
	enabled       bool
	targetSpeed   float64
	maxForceOn    bool
	maxForce      float64
	impulse       float64 // accumulated motor impulse, for warm start and ReactionForce
}

// IsMotorEnabled reports whether the motor is driving this joint.
func (m *LinearMotor) IsMotorEnabled() bool { return m.enabled }

// SetMotorEnabled toggles the motor.
func (m *LinearMotor) SetMotorEnabled(enabled bool) { m.enabled = enabled }

// MotorSpeed returns the target speed, in metres/second (signed).
func (m *LinearMotor) MotorSpeed() float64 { return m.targetSpeed }

// SetMotorSpeed sets the target speed.
func (m *LinearMotor) SetMotorSpeed(speed float64) { m.targetSpeed = speed }

// IsMaxMotorForceEnabled reports whether the accumulated impulse is clamped.
func (m *LinearMotor) IsMaxMotorForceEnabled() bool { return m.maxForceOn }

// SetMaxMotorForceEnabled toggles the max-force clamp.
func (m *LinearMotor) SetMaxMotorForceEnabled(enabled bool) { m.maxForceOn = enabled }

// MaxMotorForce returns the force cap, in newtons.
func (m *LinearMotor) MaxMotorForce() float64 { return m.maxForce }

// SetMaxMotorForce sets the force cap; must be > 0.
func (m *LinearMotor) SetMaxMotorForce(force float64) error {
	if force <= 0 {
		return fmt.Errorf("%w: max motor force must be > 0, got %v", ErrInvalidArgument, force)
	}
	m.maxForce = force
	return nil
}

// MotorForce returns the last applied motor force/torque, in newtons (or
// newton-metres for an angular motor), given invDt.
func (m *LinearMotor) MotorForce(invDt float64) float64 {
	return m.impulse * invDt
}

// resetImpulse clears the accumulated motor impulse.
func (m *LinearMotor) resetImpulse() { m.impulse = 0 }

// solveMotor computes and applies one Gauss-Seidel motor iteration given
// the current relative velocity along the motor axis, the effective mass mu
// for that axis, and dt. It returns the impulse delta that should be
// applied to the bodies (already clamped against the max-force cap).
func (m *LinearMotor) solveMotor(relativeVelocity, mu, dt float64) float64 {
	if !m.enabled || mu == 0 {
		return 0
	}

	cdot := relativeVelocity - m.targetSpeed
	deltaImpulse := -mu * cdot

	oldImpulse := m.impulse
	m.impulse += deltaImpulse

	if m.maxForceOn {
		maxImpulse := m.maxForce * dt
		m.impulse = clampAbs(m.impulse, maxImpulse)
	}

	return m.impulse - oldImpulse
}
