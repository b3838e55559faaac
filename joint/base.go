package joint

import (
	"fmt"

	"github.com/akmonengine/joint2d/body"
	"github.com/go-gl/mathgl/mgl64"
)

// base is the common state shared by every joint in this package: the
// bound bodies (an ordered slice of 1 or 2, per spec §9's resolution to
// support both a single-body and a paired-body specialization), the
// collision-allowed bit, opaque user data, and an opaque owner handle.
//
// base does not implement Joint by itself — it has no Jacobian. Concrete
// joints embed it and add InitializeConstraints/SolveVelocityConstraints/
// SolvePositionConstraints/ReactionForce/ReactionTorque; Shift is provided
// here.
type base struct {
	bodies           []*body.Body
	collisionAllowed bool
	userData         any
	owner            any
}

func newBase(bodies []*body.Body) base {
	cp := make([]*body.Body, len(bodies))
	copy(cp, bodies)
	return base{bodies: cp}
}

// Bodies returns the joint's bound bodies, in binding order.
func (b *base) Bodies() []*body.Body { return b.bodies }

// BodyCount returns the number of bound bodies.
func (b *base) BodyCount() int { return len(b.bodies) }

// Body returns the i'th bound body, or ErrInvalidIndex if i is out of range.
func (b *base) Body(i int) (*body.Body, error) {
	if i < 0 || i >= len(b.bodies) {
		return nil, fmt.Errorf("%w: %d (have %d bodies)", ErrInvalidIndex, i, len(b.bodies))
	}
	return b.bodies[i], nil
}

// IsMember reports whether bd is one of this joint's bound bodies.
func (b *base) IsMember(bd *body.Body) bool {
	for _, candidate := range b.bodies {
		if candidate == bd {
			return true
		}
	}
	return false
}

// IsEnabled reports whether every bound body is enabled (spec §3: "enabled
// <=> all bound bodies enabled").
func (b *base) IsEnabled() bool {
	for _, bd := range b.bodies {
		if !bd.IsEnabled() {
			return false
		}
	}
	return true
}

// IsCollisionAllowed reports the joint's collision-allowed bit.
func (b *base) IsCollisionAllowed() bool { return b.collisionAllowed }

// UserData returns the opaque user data attached to this joint.
func (b *base) UserData() any { return b.userData }

// SetUserData attaches opaque user data to this joint.
func (b *base) SetUserData(data any) { b.userData = data }

// Owner returns the opaque owner handle (e.g. the world that created this
// joint), used by callers that need to route a joint back to its owner
// without this package depending on package solver.
func (b *base) Owner() any { return b.owner }

// SetOwner sets the opaque owner handle.
func (b *base) SetOwner(owner any) { b.owner = owner }

// Shift is a no-op for every joint in this package: anchors are always
// stored in local (body) frame, never in world frame.
func (b *base) Shift(mgl64.Vec2) {}
