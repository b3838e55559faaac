package joint

import (
	"github.com/akmonengine/joint2d/body"
	"github.com/go-gl/mathgl/mgl64"
)

// WeldJoint is the spec's exemplar algorithm (§4.3): a 3-DOF constraint
// that welds two bodies together at an anchor point and a relative angle,
// with an optional torsion spring/damper on the angular component.
//
// Grounded on constraint/contact.go's effective-mass-then-impulse shape:
// build K from the current lever arms, accumulate impulse across
// iterations, apply via invMass/invInertia — generalized from a contact's
// normal+friction pair to a full 3x3 (or soft 2x2+1x1) block.
type WeldJoint struct {
	paired

	localAnchor1, localAnchor2 mgl64.Vec2
	referenceAngle             float64

	// AngularSpring is the torsion spring/damper. Disabled by default,
	// which puts the joint in hard (rigid weld) mode.
	AngularSpring Spring

	// impulse is the accumulated (lambda_x, lambda_y, lambda_z), persisted
	// across steps for warm starting (spec §3).
	impulse mgl64.Vec3

	// per-step derived state, computed in InitializeConstraints
	rA, rB   mgl64.Vec2
	k        mgl64.Mat3 // always assembled; m22 entry replaced in soft mode
	gamma    float64
	bias     float64
	softMode bool
}

// NewWeldJoint binds body1 and body2 at the given world-space anchor
// points. The reference angle defaults to the bodies' current relative
// orientation (theta1 - theta2); pass a non-nil referenceAngle to override
// it (e.g. when restoring saved state, spec §6).
func NewWeldJoint(body1, body2 *body.Body, worldAnchor1, worldAnchor2 mgl64.Vec2, referenceAngle *float64) (*WeldJoint, error) {
	p, err := newPaired(body1, body2)
	if err != nil {
		return nil, err
	}

	ref := body1.Transform.Rotation - body2.Transform.Rotation
	if referenceAngle != nil {
		ref = *referenceAngle
	}

	return &WeldJoint{
		paired:         p,
		localAnchor1:   body1.LocalPoint(worldAnchor1),
		localAnchor2:   body2.LocalPoint(worldAnchor2),
		referenceAngle: ref,
	}, nil
}

// LocalAnchor1 returns the anchor point in body1's local frame.
func (w *WeldJoint) LocalAnchor1() mgl64.Vec2 { return w.localAnchor1 }

// LocalAnchor2 returns the anchor point in body2's local frame.
func (w *WeldJoint) LocalAnchor2() mgl64.Vec2 { return w.localAnchor2 }

// ReferenceAngle returns the angle (theta1-theta2) captured as the zero of
// the angular constraint.
func (w *WeldJoint) ReferenceAngle() float64 { return w.referenceAngle }

// WorldAnchor1 returns the current world position of the anchor on body1.
func (w *WeldJoint) WorldAnchor1() mgl64.Vec2 {
	b1 := w.Body1()
	return b1.Transform.Position.Add(Rotate(b1.Transform.Rotation, w.localAnchor1.Sub(b1.LocalCenter)))
}

// WorldAnchor2 returns the current world position of the anchor on body2.
func (w *WeldJoint) WorldAnchor2() mgl64.Vec2 {
	b2 := w.Body2()
	return b2.Transform.Position.Add(Rotate(b2.Transform.Rotation, w.localAnchor2.Sub(b2.LocalCenter)))
}

// Rotate rotates v by theta. Re-exported from body for callers that only
// import package joint.
func Rotate(theta float64, v mgl64.Vec2) mgl64.Vec2 { return body.Rotate(theta, v) }

func (w *WeldJoint) leverArms() (rA, rB mgl64.Vec2) {
	b1, b2 := w.Body1(), w.Body2()
	rA = Rotate(b1.Transform.Rotation, w.localAnchor1.Sub(b1.LocalCenter))
	rB = Rotate(b2.Transform.Rotation, w.localAnchor2.Sub(b2.LocalCenter))
	return rA, rB
}

// assembleK builds the full hard-mode effective-mass matrix K from the
// current lever arms (spec §4.3's K.m00..m22 formulas).
func assembleK(invMass1, invMass2, invI1, invI2 float64, rA, rB mgl64.Vec2) mgl64.Mat3 {
	m00 := invMass1 + invMass2 + rA.Y()*rA.Y()*invI1 + rB.Y()*rB.Y()*invI2
	m11 := invMass1 + invMass2 + rA.X()*rA.X()*invI1 + rB.X()*rB.X()*invI2
	m22 := invI1 + invI2
	m01 := -rA.Y()*rA.X()*invI1 - rB.Y()*rB.X()*invI2
	m02 := -rA.Y()*invI1 - rB.Y()*invI2
	m12 := rA.X()*invI1 + rB.X()*invI2

	return mgl64.Mat3{
		m00, m01, m02,
		m01, m11, m12,
		m02, m12, m22,
	}
}

// InitializeConstraints computes K, bias, gamma, and applies the
// warm-started impulse (spec §4.3 "Warm start").
func (w *WeldJoint) InitializeConstraints(step Step, settings Settings) {
	b1, b2 := w.Body1(), w.Body2()
	invM1, invM2 := b1.InvMass, b2.InvMass
	invI1, invI2 := b1.InvInertia, b2.InvInertia

	w.rA, w.rB = w.leverArms()
	w.k = assembleK(invM1, invM2, invI1, invI2, w.rA, w.rB)

	w.softMode = w.AngularSpring.IsSpringEnabled()
	w.gamma, w.bias = 0, 0

	if w.softMode {
		mu := w.ReducedInertia()
		k, d := w.AngularSpring.RecomputeDerived(mu)
		gamma, beta := softParams(k, d, step.Dt)
		w.gamma = gamma

		relativeRotation := wrapAngle(b1.Transform.Rotation - b2.Transform.Rotation - w.referenceAngle)
		w.bias = beta * relativeRotation

		sum := invI1 + invI2
		if sum > 1e-9 {
			w.k[8] = 1.0 / (sum + gamma) // K.m22, column-major index 2,2
		} else {
			w.k[8] = 0
		}
	} else if invI1+invI2 <= 1e-9 {
		// both bodies have zero inverse inertia: angular sub-solve is
		// skipped entirely (spec §4.3's K.m22<=0 fallback)
		w.k[8] = 0
	}

	// warm start: scale stored impulse by dt/dt_prev, then apply as if
	// already solved (spec §3, §4.3)
	w.impulse = w.impulse.Mul(step.DtRatio)
	w.applyImpulse(mgl64.Vec2{w.impulse.X(), w.impulse.Y()}, w.impulse.Z())
}

// applyImpulse applies a (possibly partial) impulse to both bodies,
// following the lever-arm formula common to warm start and every velocity
// sub-solve (spec §4.3).
func (w *WeldJoint) applyImpulse(deltaXY mgl64.Vec2, deltaZ float64) {
	b1, b2 := w.Body1(), w.Body2()

	b1.Velocity = b1.Velocity.Add(deltaXY.Mul(b1.InvMass))
	b1.AngularVelocity += b1.InvInertia * (cross2(w.rA, deltaXY) + deltaZ)

	b2.Velocity = b2.Velocity.Sub(deltaXY.Mul(b2.InvMass))
	b2.AngularVelocity -= b2.InvInertia * (cross2(w.rB, deltaXY) + deltaZ)
}

// anchorVelocityGap returns the relative velocity of anchor1 w.r.t.
// anchor2: (v1 + w1 x rA) - (v2 + w2 x rB).
func (w *WeldJoint) anchorVelocityGap() mgl64.Vec2 {
	b1, b2 := w.Body1(), w.Body2()
	atAnchor1 := b1.Velocity.Add(crossScalarVec2(b1.AngularVelocity, w.rA))
	atAnchor2 := b2.Velocity.Add(crossScalarVec2(b2.AngularVelocity, w.rB))
	return atAnchor1.Sub(atAnchor2)
}

// SolveVelocityConstraints runs one Gauss-Seidel velocity iteration (spec
// §4.3 "Velocity iteration").
func (w *WeldJoint) SolveVelocityConstraints(step Step, settings Settings) {
	b1, b2 := w.Body1(), w.Body2()

	if w.softMode {
		// angular sub-constraint first (1x1)
		omegaRel := b1.AngularVelocity - b2.AngularVelocity
		deltaZ := -w.k[8] * (omegaRel + w.bias + w.gamma*w.impulse.Z())
		w.impulse[2] += deltaZ
		w.applyImpulse(mgl64.Vec2{0, 0}, deltaZ)

		// point-to-point block using the linear sub-matrix of K
		k2 := mgl64.Mat2{w.k[0], w.k[1], w.k[3], w.k[4]}
		deltaXY := solve2(k2, w.anchorVelocityGap().Mul(-1))
		w.impulse[0] += deltaXY.X()
		w.impulse[1] += deltaXY.Y()
		w.applyImpulse(deltaXY, 0)
		return
	}

	if w.k[8] <= 0 {
		// both bodies have zero inverse inertia: linear-only solve,
		// angular component stays zero (spec §4.3)
		k2 := mgl64.Mat2{w.k[0], w.k[1], w.k[3], w.k[4]}
		deltaXY := solve2(k2, w.anchorVelocityGap().Mul(-1))
		w.impulse[0] += deltaXY.X()
		w.impulse[1] += deltaXY.Y()
		w.applyImpulse(deltaXY, 0)
		return
	}

	cdot := w.anchorVelocityGap()
	cdot3 := mgl64.Vec3{cdot.X(), cdot.Y(), b1.AngularVelocity - b2.AngularVelocity}
	delta := solve3(w.k, cdot3.Mul(-1))
	w.impulse = w.impulse.Add(delta)
	w.applyImpulse(mgl64.Vec2{delta.X(), delta.Y()}, delta.Z())
}

// SolvePositionConstraints runs one position-correction iteration (spec
// §4.3 "Position iteration"). In soft mode only translation is corrected;
// the spring absorbs angular error across time.
func (w *WeldJoint) SolvePositionConstraints(step Step, settings Settings) bool {
	b1, b2 := w.Body1(), w.Body2()
	invM1, invM2 := b1.InvMass, b2.InvMass
	invI1, invI2 := b1.InvInertia, b2.InvInertia

	rA, rB := w.leverArms()
	c1 := w.WorldAnchor1().Sub(w.WorldAnchor2())
	c2 := wrapAngle(b1.Transform.Rotation - b2.Transform.Rotation - w.referenceAngle)

	if w.softMode {
		clamped := clampVec2(c1, settings.MaxLinearCorrection)
		k := assembleK(invM1, invM2, invI1, invI2, rA, rB)
		k2 := mgl64.Mat2{k[0], k[1], k[3], k[4]}
		impulse := solve2(k2, clamped.Mul(-1))

		b1.Translate(impulse.Mul(invM1))
		b1.RotateAboutCenter(invI1 * cross2(rA, impulse))
		b2.Translate(impulse.Mul(-invM2))
		b2.RotateAboutCenter(-invI2 * cross2(rB, impulse))
	} else {
		clampedC1 := clampVec2(c1, settings.MaxLinearCorrection)
		clampedC2 := clampAbs(c2, settings.MaxAngularCorrection)
		k := assembleK(invM1, invM2, invI1, invI2, rA, rB)

		if k[8] <= 0 {
			k2 := mgl64.Mat2{k[0], k[1], k[3], k[4]}
			impulse := solve2(k2, clampedC1.Mul(-1))
			b1.Translate(impulse.Mul(invM1))
			b1.RotateAboutCenter(invI1 * cross2(rA, impulse))
			b2.Translate(impulse.Mul(-invM2))
			b2.RotateAboutCenter(-invI2 * cross2(rB, impulse))
		} else {
			c3 := mgl64.Vec3{clampedC1.X(), clampedC1.Y(), clampedC2}
			impulse := solve3(k, c3.Mul(-1))
			xy := mgl64.Vec2{impulse.X(), impulse.Y()}
			b1.Translate(xy.Mul(invM1))
			b1.RotateAboutCenter(invI1 * (cross2(rA, xy) + impulse.Z()))
			b2.Translate(xy.Mul(-invM2))
			b2.RotateAboutCenter(-invI2 * (cross2(rB, xy) + impulse.Z()))
		}
	}

	return c1.Len() <= settings.LinearTolerance && absF(c2) <= settings.AngularTolerance
}

// ReactionForce returns (lambda_x, lambda_y) * invDt, in newtons.
func (w *WeldJoint) ReactionForce(invDt float64) mgl64.Vec2 {
	return mgl64.Vec2{w.impulse.X(), w.impulse.Y()}.Mul(invDt)
}

// ReactionTorque returns lambda_z * invDt, in newton-metres.
func (w *WeldJoint) ReactionTorque(invDt float64) float64 {
	return w.impulse.Z() * invDt
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func clampVec2(v mgl64.Vec2, max float64) mgl64.Vec2 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Mul(max / l)
}
