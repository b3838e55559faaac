package joint

import (
	"github.com/akmonengine/joint2d/body"
	"github.com/go-gl/mathgl/mgl64"
)

// RevoluteJoint pins two bodies together at a single point and lets them
// rotate freely about it, optionally bounded by AngularLimits and driven by
// a LinearMotor on the angle (spec §4.4, §4.5: the motor/limit capabilities
// need a host joint, and a revolute pin is the natural one).
//
// The point constraint is exactly WeldJoint's linear 2x2 block with the
// angular row/column dropped; the angular degree of freedom is instead
// owned by the embedded capabilities.
type RevoluteJoint struct {
	paired

	localAnchor1, localAnchor2 mgl64.Vec2
	referenceAngle             float64

	Limits AngularLimits
	Motor  LinearMotor

	impulse      mgl64.Vec2 // point-constraint impulse, for warm start
	motorImpulse float64    // reported separately via Motor.MotorForce

	rA, rB mgl64.Vec2
	k      mgl64.Mat2
	axialK float64 // effective mass for the angular (motor+limit) row
}

// NewRevoluteJoint binds body1 and body2 at the given world-space anchor
// point (both bodies rotate about the same world point at bind time).
func NewRevoluteJoint(body1, body2 *body.Body, worldAnchor mgl64.Vec2) (*RevoluteJoint, error) {
	p, err := newPaired(body1, body2)
	if err != nil {
		return nil, err
	}
	return &RevoluteJoint{
		paired:         p,
		localAnchor1:   body1.LocalPoint(worldAnchor),
		localAnchor2:   body2.LocalPoint(worldAnchor),
		referenceAngle: body1.Transform.Rotation - body2.Transform.Rotation,
		Limits:         NewAngularLimits(body1.Transform.Rotation - body2.Transform.Rotation),
	}, nil
}

// LocalAnchor1 returns the anchor point in body1's local frame.
func (r *RevoluteJoint) LocalAnchor1() mgl64.Vec2 { return r.localAnchor1 }

// LocalAnchor2 returns the anchor point in body2's local frame.
func (r *RevoluteJoint) LocalAnchor2() mgl64.Vec2 { return r.localAnchor2 }

// JointAngle returns the current relative angle (theta1 - theta2). The
// reference angle is not subtracted here; AngularLimits subtracts its own
// reference angle from this value before comparing it with the bounds.
func (r *RevoluteJoint) JointAngle() float64 {
	return r.Body1().Transform.Rotation - r.Body2().Transform.Rotation
}

// JointSpeed returns the current relative angular velocity (w1 - w2).
func (r *RevoluteJoint) JointSpeed() float64 {
	return r.Body1().AngularVelocity - r.Body2().AngularVelocity
}

func (r *RevoluteJoint) leverArms() (rA, rB mgl64.Vec2) {
	b1, b2 := r.Body1(), r.Body2()
	rA = Rotate(b1.Transform.Rotation, r.localAnchor1.Sub(b1.LocalCenter))
	rB = Rotate(b2.Transform.Rotation, r.localAnchor2.Sub(b2.LocalCenter))
	return rA, rB
}

// InitializeConstraints assembles the point-constraint K and the scalar
// axial effective mass, then warm starts both the point impulse and the
// motor impulse.
func (r *RevoluteJoint) InitializeConstraints(step Step, settings Settings) {
	b1, b2 := r.Body1(), r.Body2()
	invM1, invM2 := b1.InvMass, b2.InvMass
	invI1, invI2 := b1.InvInertia, b2.InvInertia

	r.rA, r.rB = r.leverArms()
	full := assembleK(invM1, invM2, invI1, invI2, r.rA, r.rB)
	r.k = mgl64.Mat2{full[0], full[1], full[3], full[4]}

	sum := invI1 + invI2
	if sum > 1e-9 {
		r.axialK = 1.0 / sum
	} else {
		r.axialK = 0
	}

	r.impulse = r.impulse.Mul(step.DtRatio)
	r.motorImpulse *= step.DtRatio
	r.Motor.impulse = r.motorImpulse
	r.applyImpulse(r.impulse, r.motorImpulse)
}

func (r *RevoluteJoint) applyImpulse(deltaXY mgl64.Vec2, deltaZ float64) {
	b1, b2 := r.Body1(), r.Body2()

	b1.Velocity = b1.Velocity.Add(deltaXY.Mul(b1.InvMass))
	b1.AngularVelocity += b1.InvInertia * (cross2(r.rA, deltaXY) + deltaZ)

	b2.Velocity = b2.Velocity.Sub(deltaXY.Mul(b2.InvMass))
	b2.AngularVelocity -= b2.InvInertia * (cross2(r.rB, deltaXY) + deltaZ)
}

// SolveVelocityConstraints solves, in order: the motor, the angular limit
// (clipped-impulse, spec §4.4), then the point-to-point block.
func (r *RevoluteJoint) SolveVelocityConstraints(step Step, settings Settings) {
	b1, b2 := r.Body1(), r.Body2()

	if r.Motor.IsMotorEnabled() && r.axialK > 0 {
		deltaZ := r.Motor.solveMotor(r.JointSpeed(), r.axialK, step.Dt)
		r.motorImpulse = r.Motor.impulse
		r.applyImpulse(mgl64.Vec2{0, 0}, deltaZ)
	}

	if r.Limits.IsLimitEnabled() && r.axialK > 0 {
		raw := -r.axialK * r.JointSpeed()
		clipped := r.Limits.clippedLimitImpulse(r.JointAngle(), raw)
		if clipped != 0 {
			r.applyImpulse(mgl64.Vec2{0, 0}, clipped)
		}
	}

	atAnchor1 := b1.Velocity.Add(crossScalarVec2(b1.AngularVelocity, r.rA))
	atAnchor2 := b2.Velocity.Add(crossScalarVec2(b2.AngularVelocity, r.rB))
	cdot := atAnchor1.Sub(atAnchor2)

	delta := solve2(r.k, cdot.Mul(-1))
	r.impulse = r.impulse.Add(delta)
	r.applyImpulse(delta, 0)
}

// SolvePositionConstraints corrects the point-to-point translation error
// only; the angular degree of freedom has no position constraint (it is
// free, unless clamped by AngularLimits, which position-correction does not
// touch — limits are velocity-only in this solver, spec §4.4).
func (r *RevoluteJoint) SolvePositionConstraints(step Step, settings Settings) bool {
	b1, b2 := r.Body1(), r.Body2()
	invM1, invM2 := b1.InvMass, b2.InvMass
	invI1, invI2 := b1.InvInertia, b2.InvInertia

	rA, rB := r.leverArms()
	anchor1 := b1.Transform.Position.Add(rA)
	anchor2 := b2.Transform.Position.Add(rB)
	c := anchor1.Sub(anchor2)
	clamped := clampVec2(c, settings.MaxLinearCorrection)

	full := assembleK(invM1, invM2, invI1, invI2, rA, rB)
	k2 := mgl64.Mat2{full[0], full[1], full[3], full[4]}
	impulse := solve2(k2, clamped.Mul(-1))

	b1.Translate(impulse.Mul(invM1))
	b1.RotateAboutCenter(invI1 * cross2(rA, impulse))
	b2.Translate(impulse.Mul(-invM2))
	b2.RotateAboutCenter(-invI2 * cross2(rB, impulse))

	return c.Len() <= settings.LinearTolerance
}

// ReactionForce returns the point-constraint impulse * invDt, in newtons.
func (r *RevoluteJoint) ReactionForce(invDt float64) mgl64.Vec2 {
	return r.impulse.Mul(invDt)
}

// ReactionTorque returns the motor impulse * invDt, in newton-metres.
func (r *RevoluteJoint) ReactionTorque(invDt float64) float64 {
	return r.motorImpulse * invDt
}
