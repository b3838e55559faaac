package joint

import (
	"fmt"

	"github.com/akmonengine/joint2d/body"
)

// paired is the two-body specialization of base (spec §4.2): it guards
// against binding the same body twice, adds reduced mass/inertia helpers,
// an other-body lookup, and wake-on-change for SetCollisionAllowed.
type paired struct {
	base
}

func newPaired(body1, body2 *body.Body) (paired, error) {
	if body1 == nil || body2 == nil {
		return paired{}, ErrNilBody
	}
	if body1 == body2 {
		return paired{}, fmt.Errorf("%w", ErrSameBody)
	}
	return paired{base: newBase([]*body.Body{body1, body2})}, nil
}

// Body1 returns the first bound body.
func (p *paired) Body1() *body.Body { return p.bodies[0] }

// Body2 returns the second bound body.
func (p *paired) Body2() *body.Body { return p.bodies[1] }

// GetOtherBody returns the partner of b, or nil if b is neither bound body.
func (p *paired) GetOtherBody(b *body.Body) *body.Body {
	switch b {
	case p.bodies[0]:
		return p.bodies[1]
	case p.bodies[1]:
		return p.bodies[0]
	default:
		return nil
	}
}

// IsEnabled is the conjunction of both bodies' enabled bits.
func (p *paired) IsEnabled() bool {
	return p.bodies[0].IsEnabled() && p.bodies[1].IsEnabled()
}

// SetCollisionAllowed toggles collision between the two bound bodies,
// waking both only on an actual change (spec §4.2).
func (p *paired) SetCollisionAllowed(allowed bool) {
	if p.collisionAllowed == allowed {
		return
	}
	p.collisionAllowed = allowed
	p.bodies[0].WakeUp()
	p.bodies[1].WakeUp()
}

// ReducedMass returns mu = m1*m2/(m1+m2) when both bodies are finite-mass,
// m1 (resp. m2) when only one is finite, or 0 if both are static (spec §3).
func (p *paired) ReducedMass() float64 {
	return reduced(p.bodies[0].InvMass, p.bodies[1].InvMass)
}

// ReducedInertia returns the same reduction applied to inverse inertia.
func (p *paired) ReducedInertia() float64 {
	return reduced(p.bodies[0].InvInertia, p.bodies[1].InvInertia)
}

// reduced computes the reduced (mass or inertia) scalar from two inverse
// quantities: 1/(invA+invB) when both are finite (nonzero), falling back to
// the one finite side, or 0 when both are static/infinite.
func reduced(invA, invB float64) float64 {
	sum := invA + invB
	if sum <= 0 {
		return 0
	}
	return 1.0 / sum
}
