// Package joint implements the 2D rigid-body joint solver: the geometric
// and kinematic constraints that bind one or two bodies together and are
// corrected every simulation step by an outer world (see package solver).
package joint

import (
	"errors"

	"github.com/akmonengine/joint2d/body"
	"github.com/go-gl/mathgl/mgl64"
)

// Error kinds reported synchronously by constructors and setters (spec §7).
// Runtime numerical pathologies (near-singular K, CIM underflow) are never
// reported this way — they are handled by graceful fallback inside the
// solve methods.
var (
	// ErrSameBody is returned when a two-body joint is constructed with
	// both body slots bound to the same body.
	ErrSameBody = errors.New("joint: body1 and body2 must be different bodies")
	// ErrNilBody is returned when a required body reference is nil.
	ErrNilBody = errors.New("joint: body must not be nil")
	// ErrInvalidIndex is returned by Body(i) when i is out of [0, BodyCount).
	ErrInvalidIndex = errors.New("joint: body index out of range")
	// ErrInvalidArgument is returned when a setter's argument is outside
	// its declared domain (e.g. lower > upper, frequency <= 0, damping
	// ratio outside (0,1]).
	ErrInvalidArgument = errors.New("joint: invalid argument")
)

// SpringMode selects which of frequency/stiffness is the user-set quantity;
// the other is derived lazily (spec §4.6). It has exactly two distinguished
// values and round-trips: saving the tag and restoring via either setter
// reproduces the same derived scalar.
type SpringMode uint8

const (
	// ModeFrequency means frequency is authoritative; stiffness is derived.
	ModeFrequency SpringMode = iota
	// ModeStiffness means stiffness is authoritative; frequency is derived.
	ModeStiffness
)

// Step carries the per-step quantities the world supplies to every joint
// (spec §6 "Consumed from step/settings").
type Step struct {
	// Dt is the step's delta-time, in seconds.
	Dt float64
	// InvDt is 1/Dt, or 0 if Dt is 0.
	InvDt float64
	// DtRatio is Dt / Dt_prev, used to scale the warm-start impulse.
	DtRatio float64
}

// Settings carries the solver tolerances and caps the world supplies to
// every joint (spec §6).
type Settings struct {
	LinearTolerance     float64
	AngularTolerance    float64
	MaxLinearCorrection float64
	MaxAngularCorrection float64
}

// Joint is the protocol every joint exposes to the outer world (spec §4.1).
type Joint interface {
	// Bodies returns the joint's bound bodies, in binding order.
	Bodies() []*body.Body
	// BodyCount returns len(Bodies()): 1 or 2.
	BodyCount() int
	// Body returns the i'th bound body, or an error if i is out of range.
	Body(i int) (*body.Body, error)
	// IsMember reports whether b is one of this joint's bound bodies.
	IsMember(b *body.Body) bool

	// InitializeConstraints computes derived per-step quantities (effective
	// mass, bias, CIM gamma) and applies the warm-start impulse. Must be
	// called once per step, before the first SolveVelocityConstraints.
	InitializeConstraints(step Step, settings Settings)
	// SolveVelocityConstraints runs one Gauss-Seidel velocity iteration.
	SolveVelocityConstraints(step Step, settings Settings)
	// SolvePositionConstraints runs one position-correction iteration and
	// reports whether the joint's position error is within tolerance.
	SolvePositionConstraints(step Step, settings Settings) bool

	// ReactionForce returns the constraint force, in newtons, implied by
	// the accumulated impulse and invDt.
	ReactionForce(invDt float64) mgl64.Vec2
	// ReactionTorque returns the constraint torque, in newton-metres.
	ReactionTorque(invDt float64) float64

	// IsEnabled reports whether all bound bodies are enabled.
	IsEnabled() bool
	// IsCollisionAllowed reports whether the joint's two bodies are still
	// allowed to collide with each other.
	IsCollisionAllowed() bool
	// SetCollisionAllowed toggles collision between this joint's bodies,
	// waking both on an actual change.
	SetCollisionAllowed(allowed bool)

	// Shift offsets any world-frame anchors this joint stores by delta.
	// Joints that store anchors in local frame (all joints in this
	// package) are no-ops.
	Shift(delta mgl64.Vec2)
}
