package joint

import "fmt"

// AngularLimits is the capability mixin spec §4.4 describes: a lower/upper
// bound on a joint's relative angle, a reference angle, and an enabled bit.
// It carries no Jacobian of its own — concrete joints (e.g. RevoluteJoint)
// embed it and consult its bounds inside their own velocity solve.
type AngularLimits struct {
	enabled       bool
	lower, upper  float64
	referenceAngle float64
}

// NewAngularLimits returns a disabled limits capability with the given
// reference angle and an initial [lower, upper] of [0, 0].
func NewAngularLimits(referenceAngle float64) AngularLimits {
	return AngularLimits{referenceAngle: referenceAngle}
}

// IsLimitEnabled reports whether the limit is active.
func (l *AngularLimits) IsLimitEnabled() bool { return l.enabled }

// SetLimitEnabled toggles the limit.
func (l *AngularLimits) SetLimitEnabled(enabled bool) { l.enabled = enabled }

// LowerLimit returns the current lower bound, in radians.
func (l *AngularLimits) LowerLimit() float64 { return l.lower }

// UpperLimit returns the current upper bound, in radians.
func (l *AngularLimits) UpperLimit() float64 { return l.upper }

// ReferenceAngle returns the angle the limits are measured relative to.
func (l *AngularLimits) ReferenceAngle() float64 { return l.referenceAngle }

// SetLowerLimit sets the lower bound. Rejects (spec §9: reject, don't
// clamp) if lower would exceed the current upper bound.
func (l *AngularLimits) SetLowerLimit(lower float64) error {
	if lower > l.upper {
		return fmt.Errorf("%w: lower %v > upper %v", ErrInvalidArgument, lower, l.upper)
	}
	l.lower = lower
	return nil
}

// SetUpperLimit sets the upper bound. Rejects if upper would fall below the
// current lower bound.
func (l *AngularLimits) SetUpperLimit(upper float64) error {
	if upper < l.lower {
		return fmt.Errorf("%w: upper %v < lower %v", ErrInvalidArgument, upper, l.lower)
	}
	l.upper = upper
	return nil
}

// SetLimits sets lower and upper atomically. Rejects, leaving both bounds
// unchanged, unless lower <= upper.
func (l *AngularLimits) SetLimits(lower, upper float64) error {
	if lower > upper {
		return fmt.Errorf("%w: lower %v > upper %v", ErrInvalidArgument, lower, upper)
	}
	l.lower, l.upper = lower, upper
	return nil
}

// EnableLimitAndSet enables the limit and sets both bounds atomically; a
// convenience combining SetLimits with SetLimitEnabled(true).
func (l *AngularLimits) EnableLimitAndSet(lower, upper float64) error {
	if err := l.SetLimits(lower, upper); err != nil {
		return err
	}
	l.enabled = true
	return nil
}

// clippedLimitImpulse implements spec §4.4's clipped-impulse limit rule for
// a relative angle currentAngle against this capability's bounds: returns
// the portion of a raw corrective impulse that should actually apply.
//
//   - at or below lower: only a positive (pushing back toward valid range)
//     impulse is allowed.
//   - at or above upper: only a negative impulse is allowed.
//   - strictly inside: no impulse (returns 0).
func (l *AngularLimits) clippedLimitImpulse(currentAngle, rawImpulse float64) float64 {
	if !l.enabled {
		return 0
	}
	relative := currentAngle - l.referenceAngle
	switch {
	case relative <= l.lower:
		if rawImpulse < 0 {
			return 0
		}
		return rawImpulse
	case relative >= l.upper:
		if rawImpulse > 0 {
			return 0
		}
		return rawImpulse
	default:
		return 0
	}
}
