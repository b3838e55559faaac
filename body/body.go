package body

import "github.com/go-gl/mathgl/mgl64"

// Body is the 2D rigid-body view joints bind to and mutate during solving.
// It is intentionally thin: mass computation, collision shapes, and the
// integrator all live outside this package (see SPEC_FULL.md §1) — a Body
// only carries the state a joint needs to read or correct.
type Body struct {
	Transform Transform

	// LocalCenter is the offset, in the body's local frame, from the body's
	// local origin to its center of mass. Anchors supplied to joints are
	// expressed relative to the local origin; joints subtract LocalCenter
	// themselves when building a lever arm (spec §4.3: r = R(θ)·(a - c)).
	LocalCenter mgl64.Vec2

	Velocity        mgl64.Vec2
	AngularVelocity float64

	// InvMass and InvInertia are independently zero-able: a body can have
	// translational inertia with no rotational inertia, or vice versa
	// (spec §3).
	InvMass    float64
	InvInertia float64

	enabled bool
	atRest  bool
}

// New creates a dynamic body at the given transform with the given inverse
// mass and inverse inertia. Pass invMass=0 and/or invInertia=0 to make the
// corresponding degree of freedom immovable (a fully static body has both
// zero).
func New(transform Transform, invMass, invInertia float64) *Body {
	return &Body{
		Transform:  transform,
		InvMass:    invMass,
		InvInertia: invInertia,
		enabled:    true,
	}
}

// IsEnabled reports whether this body currently participates in solving.
func (b *Body) IsEnabled() bool { return b.enabled }

// SetEnabled toggles whether this body participates in solving.
func (b *Body) SetEnabled(enabled bool) { b.enabled = enabled }

// IsAtRest reports whether this body is asleep (skipped by the world's
// integration; joints still solve against it).
func (b *Body) IsAtRest() bool { return b.atRest }

// Sleep puts the body to rest, zeroing its velocities.
func (b *Body) Sleep() {
	b.atRest = true
	b.Velocity = mgl64.Vec2{0, 0}
	b.AngularVelocity = 0
}

// WakeUp clears the at-rest flag. A no-op if the body is already awake —
// callers that need to know whether a wake actually happened should check
// IsAtRest() first.
func (b *Body) WakeUp() {
	b.atRest = false
}

// IsStatic reports whether the body has no translational and no rotational
// inverse mass — it is immovable and contributes nothing to a solve.
func (b *Body) IsStatic() bool {
	return b.InvMass == 0 && b.InvInertia == 0
}

// Translate offsets the body's world position by delta. Used by position
// correction (spec §4.3 "Position iteration").
func (b *Body) Translate(delta mgl64.Vec2) {
	b.Transform.Position = b.Transform.Position.Add(delta)
}

// RotateAboutCenter adds dtheta to the body's orientation.
func (b *Body) RotateAboutCenter(dtheta float64) {
	b.Transform.Rotation += dtheta
}

// WorldPoint maps a point from the body's local frame to world space.
func (b *Body) WorldPoint(local mgl64.Vec2) mgl64.Vec2 {
	return b.Transform.WorldPoint(local)
}

// LocalPoint maps a point from world space to the body's local frame.
func (b *Body) LocalPoint(world mgl64.Vec2) mgl64.Vec2 {
	return b.Transform.LocalPoint(world)
}
