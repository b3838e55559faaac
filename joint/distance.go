package joint

import (
	"fmt"
	"math"

	"github.com/akmonengine/joint2d/body"
	"github.com/go-gl/mathgl/mgl64"
)

// DistanceJoint holds two anchors at a target separation along the line
// between them (spec's supplemented-feature list: a second paired joint to
// exercise LinearSpring's rope/rigid/spring modes alongside WeldJoint's
// torsion spring).
//
// Three modes, selected by which fields are active:
//   - rigid: Spring disabled, rope disabled — length is held exactly at
//     Length via a hard equality constraint.
//   - spring: Spring enabled — length is pulled toward Length softly, at
//     the spring's frequency/damping.
//   - rope: RopeEnabled — length is free between MinLength and MaxLength,
//     enforced as two one-sided (clamped, non-negative) impulses; can be
//     combined with a spring for the free range, or used alone as a cable.
type DistanceJoint struct {
	paired

	localAnchor1, localAnchor2 mgl64.Vec2
	length                     float64

	Spring       Spring
	RopeEnabled  bool
	minLength    float64
	maxLength    float64

	impulse      float64
	lowerImpulse float64
	upperImpulse float64

	u      mgl64.Vec2
	rA, rB mgl64.Vec2
	mass   float64
	gamma  float64
	bias   float64
}

// NewDistanceJoint binds body1 and body2 at the given world anchors, with
// the rest length defaulting to their current separation.
func NewDistanceJoint(body1, body2 *body.Body, worldAnchor1, worldAnchor2 mgl64.Vec2) (*DistanceJoint, error) {
	p, err := newPaired(body1, body2)
	if err != nil {
		return nil, err
	}
	length := worldAnchor2.Sub(worldAnchor1).Len()
	return &DistanceJoint{
		paired:       p,
		localAnchor1: body1.LocalPoint(worldAnchor1),
		localAnchor2: body2.LocalPoint(worldAnchor2),
		length:       length,
		minLength:    length,
		maxLength:    length,
	}, nil
}

// Length returns the rest (rigid/spring target) length.
func (d *DistanceJoint) Length() float64 { return d.length }

// SetLength sets the rest length; must be >= 0.
func (d *DistanceJoint) SetLength(length float64) error {
	if length < 0 {
		return fmt.Errorf("%w: length must be >= 0, got %v", ErrInvalidArgument, length)
	}
	d.length = length
	return nil
}

// MinLength and MaxLength return the rope-mode bounds.
func (d *DistanceJoint) MinLength() float64 { return d.minLength }
func (d *DistanceJoint) MaxLength() float64 { return d.maxLength }

// SetLengthRange sets the rope-mode bounds; must have 0 <= min <= max.
func (d *DistanceJoint) SetLengthRange(min, max float64) error {
	if min < 0 || min > max {
		return fmt.Errorf("%w: min %v, max %v", ErrInvalidArgument, min, max)
	}
	d.minLength, d.maxLength = min, max
	return nil
}

func (d *DistanceJoint) leverArms() (rA, rB mgl64.Vec2) {
	b1, b2 := d.Body1(), d.Body2()
	rA = Rotate(b1.Transform.Rotation, d.localAnchor1.Sub(b1.LocalCenter))
	rB = Rotate(b2.Transform.Rotation, d.localAnchor2.Sub(b2.LocalCenter))
	return rA, rB
}

// InitializeConstraints computes the current separation axis u, the scalar
// effective mass along it, and warm starts the accumulated impulses.
func (d *DistanceJoint) InitializeConstraints(step Step, settings Settings) {
	b1, b2 := d.Body1(), d.Body2()
	invM1, invM2 := b1.InvMass, b2.InvMass
	invI1, invI2 := b1.InvInertia, b2.InvInertia

	d.rA, d.rB = d.leverArms()
	anchor1 := b1.Transform.Position.Add(d.rA)
	anchor2 := b2.Transform.Position.Add(d.rB)
	sep := anchor2.Sub(anchor1)
	dist := sep.Len()
	if dist > 1e-9 {
		d.u = sep.Mul(1.0 / dist)
	} else {
		d.u = mgl64.Vec2{1, 0}
	}

	crA := cross2(d.rA, d.u)
	crB := cross2(d.rB, d.u)
	invMass := invM1 + invM2 + invI1*crA*crA + invI2*crB*crB
	if invMass > 1e-9 {
		d.mass = 1.0 / invMass
	} else {
		d.mass = 0
	}

	d.gamma, d.bias = 0, 0
	if d.Spring.IsSpringEnabled() {
		mu := d.ReducedMass()
		k, dd := d.Spring.RecomputeDerived(mu)
		d.gamma, d.bias = softParams(k, dd, step.Dt)
		d.bias *= dist - d.length
	}

	d.impulse *= step.DtRatio
	d.lowerImpulse *= step.DtRatio
	d.upperImpulse *= step.DtRatio
	d.Spring.SetImpulse(d.impulse)

	total := d.impulse + d.lowerImpulse - d.upperImpulse
	d.applyImpulse(total)
}

func (d *DistanceJoint) applyImpulse(p float64) {
	b1, b2 := d.Body1(), d.Body2()
	pv := d.u.Mul(p)

	b1.Velocity = b1.Velocity.Sub(pv.Mul(b1.InvMass))
	b1.AngularVelocity -= b1.InvInertia * cross2(d.rA, pv)

	b2.Velocity = b2.Velocity.Add(pv.Mul(b2.InvMass))
	b2.AngularVelocity += b2.InvInertia * cross2(d.rB, pv)
}

func (d *DistanceJoint) axialSpeed() float64 {
	b1, b2 := d.Body1(), d.Body2()
	vpA := b1.Velocity.Add(crossScalarVec2(b1.AngularVelocity, d.rA))
	vpB := b2.Velocity.Add(crossScalarVec2(b2.AngularVelocity, d.rB))
	return vpB.Sub(vpA).Dot(d.u)
}

// SolveVelocityConstraints solves, in order: the free-length spring/rigid
// constraint, then the rope lower and upper bounds (clamped non-negative,
// the same clipped-impulse shape as AngularLimits).
func (d *DistanceJoint) SolveVelocityConstraints(step Step, settings Settings) {
	if d.mass == 0 {
		return
	}

	if d.Spring.IsSpringEnabled() || !d.RopeEnabled || d.minLength >= d.maxLength {
		cdot := d.axialSpeed()
		var delta float64
		if d.Spring.IsSpringEnabled() {
			delta = -d.mass * (cdot + d.bias + d.gamma*d.impulse)
			delta = d.Spring.ApplyImpulse(delta, step.Dt)
		} else {
			delta = -d.mass * cdot
		}
		d.impulse += delta
		d.applyImpulse(delta)
	}

	if d.RopeEnabled {
		b1, b2 := d.Body1(), d.Body2()
		anchor1 := b1.Transform.Position.Add(d.rA)
		anchor2 := b2.Transform.Position.Add(d.rB)
		dist := anchor2.Sub(anchor1).Len()

		{
			// C > 0 (slack): bias lets Cdot approach -C/dt (closing exactly
			// the gap this step) before any impulse engages, the same
			// speculative margin a contact solver uses to avoid overshoot.
			c := dist - d.minLength
			bias := math.Max(c, 0) * step.InvDt
			cdot := d.axialSpeed()
			delta := -d.mass * (cdot + bias)
			newImpulse := math.Max(d.lowerImpulse+delta, 0)
			delta = newImpulse - d.lowerImpulse
			d.lowerImpulse = newImpulse
			d.applyImpulse(delta)
		}
		{
			c := d.maxLength - dist
			bias := math.Max(c, 0) * step.InvDt
			cdot := -d.axialSpeed()
			delta := -d.mass * (cdot + bias)
			newImpulse := math.Max(d.upperImpulse+delta, 0)
			delta = newImpulse - d.upperImpulse
			d.upperImpulse = newImpulse
			d.applyImpulse(-delta)
		}
	}
}

// SolvePositionConstraints corrects toward the rest length in rigid mode,
// or back inside [MinLength, MaxLength] in rope mode. A spring-enabled
// joint skips position correction entirely — pulling a soft constraint to
// zero position error would fight the spring's own bias term.
func (d *DistanceJoint) SolvePositionConstraints(step Step, settings Settings) bool {
	if d.Spring.IsSpringEnabled() {
		return true
	}

	b1, b2 := d.Body1(), d.Body2()
	invM1, invM2 := b1.InvMass, b2.InvMass
	invI1, invI2 := b1.InvInertia, b2.InvInertia

	rA, rB := d.leverArms()
	anchor1 := b1.Transform.Position.Add(rA)
	anchor2 := b2.Transform.Position.Add(rB)
	sep := anchor2.Sub(anchor1)
	dist := sep.Len()
	if dist < 1e-9 {
		return true
	}
	u := sep.Mul(1.0 / dist)

	target := d.length
	if d.RopeEnabled {
		target = math.Min(math.Max(dist, d.minLength), d.maxLength)
	}
	c := dist - target
	clamped := clampAbs(c, settings.MaxLinearCorrection)

	crA := cross2(rA, u)
	crB := cross2(rB, u)
	invMass := invM1 + invM2 + invI1*crA*crA + invI2*crB*crB
	if invMass <= 1e-9 {
		return true
	}
	impulse := -clamped / invMass
	pv := u.Mul(impulse)

	b1.Translate(pv.Mul(-invM1))
	b1.RotateAboutCenter(-invI1 * cross2(rA, pv))
	b2.Translate(pv.Mul(invM2))
	b2.RotateAboutCenter(invI2 * cross2(rB, pv))

	return math.Abs(c) <= settings.LinearTolerance
}

// ReactionForce returns the combined axial impulse * invDt, in newtons,
// along the current separation axis.
func (d *DistanceJoint) ReactionForce(invDt float64) mgl64.Vec2 {
	total := d.impulse + d.lowerImpulse - d.upperImpulse
	return d.u.Mul(total * invDt)
}

// ReactionTorque is always zero: a distance joint carries no torque of its
// own (spec §4.2's general joint contract still requires the method).
func (d *DistanceJoint) ReactionTorque(invDt float64) float64 { return 0 }
