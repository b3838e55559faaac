package joint

import (
	"fmt"
	"math"
)

// Spring holds the state shared by LinearSpring and AngularSpring (spec
// §4.6): an enabled bit, a damper-enabled bit, a damping ratio, the
// frequency/stiffness pair (exactly one of which is authoritative at a
// time, per mode), and an optional max-force/torque clamp.
//
// LinearSpring and AngularSpring are the same shape — the spec
// distinguishes them only by which physical quantity (force vs torque,
// reduced mass vs reduced inertia) drives k and d. Rather than duplicate
// the bookkeeping, both are this one type; joint/weld.go and
// joint/distance.go each pick the mu (reduced mass or reduced inertia)
// appropriate to their own constraint when calling RecomputeDerived.
type Spring struct {
	enabled      bool
	damperOn     bool
	dampingRatio float64
	frequency    float64
	stiffness    float64
	mode         SpringMode
	maxForceOn   bool
	maxForce     float64
	impulse      float64
}

// NewLinearSpring returns a disabled spring in frequency mode with the
// given frequency (Hz) and damping ratio.
func NewLinearSpring(frequency, dampingRatio float64) Spring {
	return Spring{frequency: frequency, dampingRatio: dampingRatio, mode: ModeFrequency}
}

// NewAngularSpring is an alias of NewLinearSpring: both capabilities share
// the same representation (see type Spring's doc comment).
func NewAngularSpring(frequency, dampingRatio float64) Spring {
	return NewLinearSpring(frequency, dampingRatio)
}

// IsSpringEnabled reports whether the spring is active.
func (s *Spring) IsSpringEnabled() bool { return s.enabled }

// SetSpringEnabled toggles the spring. When disabled, the joint solves as
// a hard constraint along the spring's axis instead.
func (s *Spring) SetSpringEnabled(enabled bool) { s.enabled = enabled }

// IsDamperEnabled reports whether the damper term is active. Meaningful
// only when the spring itself is enabled.
func (s *Spring) IsDamperEnabled() bool { return s.damperOn }

// SetDamperEnabled toggles the damper.
func (s *Spring) SetDamperEnabled(enabled bool) { s.damperOn = enabled }

// DampingRatio returns the current damping ratio, in (0,1].
func (s *Spring) DampingRatio() float64 { return s.dampingRatio }

// SetDampingRatio validates and sets the damping ratio; must be in (0,1].
func (s *Spring) SetDampingRatio(ratio float64) error {
	if ratio <= 0 || ratio > 1 {
		return fmt.Errorf("%w: damping ratio must be in (0,1], got %v", ErrInvalidArgument, ratio)
	}
	s.dampingRatio = ratio
	return nil
}

// Mode returns which of frequency/stiffness currently drives the other.
func (s *Spring) Mode() SpringMode { return s.mode }

// Frequency returns the spring's natural frequency, in Hz. If the spring
// is in ModeStiffness, this is the value last derived by RecomputeDerived.
func (s *Spring) Frequency() float64 { return s.frequency }

// SetFrequency switches the spring into ModeFrequency and sets frequency;
// stiffness is recomputed lazily the next time RecomputeDerived runs (at
// the joint's next InitializeConstraints, once mu is known). Must be > 0.
func (s *Spring) SetFrequency(frequency float64) error {
	if frequency <= 0 {
		return fmt.Errorf("%w: frequency must be > 0, got %v", ErrInvalidArgument, frequency)
	}
	s.frequency = frequency
	s.mode = ModeFrequency
	return nil
}

// Stiffness returns the spring's stiffness. If the spring is in
// ModeFrequency, this is the value last derived by RecomputeDerived.
func (s *Spring) Stiffness() float64 { return s.stiffness }

// SetStiffness switches the spring into ModeStiffness and sets stiffness;
// frequency is recomputed lazily. Must be > 0.
func (s *Spring) SetStiffness(stiffness float64) error {
	if stiffness <= 0 {
		return fmt.Errorf("%w: stiffness must be > 0, got %v", ErrInvalidArgument, stiffness)
	}
	s.stiffness = stiffness
	s.mode = ModeStiffness
	return nil
}

// IsMaxForceEnabled reports whether the accumulated spring impulse is
// clamped.
func (s *Spring) IsMaxForceEnabled() bool { return s.maxForceOn }

// SetMaxForceEnabled toggles the clamp.
func (s *Spring) SetMaxForceEnabled(enabled bool) { s.maxForceOn = enabled }

// MaxForce returns the force/torque cap.
func (s *Spring) MaxForce() float64 { return s.maxForce }

// SetMaxForce sets the force/torque cap; must be >= 0.
func (s *Spring) SetMaxForce(maxForce float64) error {
	if maxForce < 0 {
		return fmt.Errorf("%w: max force must be >= 0, got %v", ErrInvalidArgument, maxForce)
	}
	s.maxForce = maxForce
	return nil
}

// RecomputeDerived resolves the spring's current mode against the reduced
// mass/inertia mu, returning the stiffness k and damping d to feed into
// softParams. In ModeFrequency: k = mu*(2*pi*f)^2 (spec §4.6). In
// ModeStiffness: k is the user value directly, and frequency is derived by
// symmetry as f = (1/2pi)*sqrt(k/mu) (spec §9: stiffness-mode derivation is
// specified by symmetry; at mu=0 frequency is reported as 0 instead of
// dividing by zero — DESIGN.md open-question resolution #3).
func (s *Spring) RecomputeDerived(mu float64) (k, d float64) {
	switch s.mode {
	case ModeStiffness:
		k = s.stiffness
		if mu > 0 {
			s.frequency = (1.0 / (2 * math.Pi)) * math.Sqrt(k/mu)
		} else {
			s.frequency = 0
		}
	default: // ModeFrequency
		k, d = springStiffnessDamping(mu, s.frequency, s.dampingRatio)
		s.stiffness = k
		if !s.damperOn {
			return k, 0
		}
		return k, d
	}
	if !s.damperOn {
		return k, 0
	}
	_, d = springStiffnessDamping(mu, s.frequency, s.dampingRatio)
	return k, d
}

// Impulse returns the accumulated spring impulse, for warm start and
// reaction-force reporting.
func (s *Spring) Impulse() float64 { return s.impulse }

// SetImpulse overwrites the accumulated spring impulse (used by warm-start
// scaling at the top of InitializeConstraints).
func (s *Spring) SetImpulse(impulse float64) { s.impulse = impulse }

// ApplyImpulse accumulates deltaImpulse, clamping the running total to
// [-maxForce*dt, +maxForce*dt] when the max-force cap is enabled, and
// returns the portion that should actually be applied to the bodies this
// iteration (the difference between the new and old accumulated totals —
// spec §4.6 "the accumulated spring impulse is clamped to +-Fmax*dt").
func (s *Spring) ApplyImpulse(deltaImpulse, dt float64) float64 {
	old := s.impulse
	s.impulse += deltaImpulse
	if s.maxForceOn {
		s.impulse = clampAbs(s.impulse, s.maxForce*dt)
	}
	return s.impulse - old
}
