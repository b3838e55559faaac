package joint

import (
	"errors"
	"math"
	"testing"

	"github.com/akmonengine/joint2d/body"
	"github.com/go-gl/mathgl/mgl64"
)

func floatEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func dynamicBody(x, y float64) *body.Body {
	tr := body.Transform{Position: mgl64.Vec2{x, y}, Rotation: 0}
	return body.New(tr, 1, 1)
}

func staticBody(x, y float64) *body.Body {
	tr := body.Transform{Position: mgl64.Vec2{x, y}, Rotation: 0}
	return body.New(tr, 0, 0)
}

func TestNewPaired_RejectsNilAndSameBody(t *testing.T) {
	a := dynamicBody(0, 0)

	if _, err := newPaired(nil, a); !errors.Is(err, ErrNilBody) {
		t.Errorf("newPaired(nil, a) err = %v, want ErrNilBody", err)
	}
	if _, err := newPaired(a, a); !errors.Is(err, ErrSameBody) {
		t.Errorf("newPaired(a, a) err = %v, want ErrSameBody", err)
	}
}

func TestPaired_GetOtherBody(t *testing.T) {
	a, b := dynamicBody(0, 0), dynamicBody(1, 0)
	p, err := newPaired(a, b)
	if err != nil {
		t.Fatal(err)
	}

	if got := p.GetOtherBody(a); got != b {
		t.Errorf("GetOtherBody(a) = %v, want b", got)
	}
	if got := p.GetOtherBody(b); got != a {
		t.Errorf("GetOtherBody(b) = %v, want a", got)
	}
	if got := p.GetOtherBody(dynamicBody(2, 0)); got != nil {
		t.Errorf("GetOtherBody(stranger) = %v, want nil", got)
	}
}

func TestReducedMassInertia(t *testing.T) {
	tests := []struct {
		name       string
		invA, invB float64
		want       float64
	}{
		{"both finite", 1.0 / 2, 1.0 / 3, 1.0 / (1.0/2 + 1.0/3)},
		{"b static", 1.0 / 4, 0, 4},
		{"a static", 0, 1.0 / 5, 5},
		{"both static", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reduced(tt.invA, tt.invB); !floatEqual(got, tt.want, 1e-9) {
				t.Errorf("reduced(%v,%v) = %v, want %v", tt.invA, tt.invB, got, tt.want)
			}
		})
	}
}

func TestPaired_SetCollisionAllowed_WakesOnlyOnChange(t *testing.T) {
	a, b := dynamicBody(0, 0), dynamicBody(1, 0)
	p, _ := newPaired(a, b)

	a.Sleep()
	b.Sleep()
	p.SetCollisionAllowed(false) // no change from zero value
	if !a.IsAtRest() || !b.IsAtRest() {
		t.Error("SetCollisionAllowed with no change should not wake bodies")
	}

	p.SetCollisionAllowed(true)
	if a.IsAtRest() || b.IsAtRest() {
		t.Error("SetCollisionAllowed on actual change should wake both bodies")
	}
}

func TestWrapAngle_Range(t *testing.T) {
	cases := []float64{0, math.Pi, -math.Pi, 3 * math.Pi, -3 * math.Pi, 0.1, 100}
	for _, theta := range cases {
		w := wrapAngle(theta)
		if w <= -math.Pi-1e-9 || w > math.Pi+1e-9 {
			t.Errorf("wrapAngle(%v) = %v, out of (-pi,pi]", theta, w)
		}
	}
}

func TestWrapAngle_PreservesEquivalence(t *testing.T) {
	theta := 5.5
	if !floatEqual(math.Sin(wrapAngle(theta)), math.Sin(theta), 1e-9) {
		t.Errorf("wrapAngle(%v) not equivalent mod 2pi", theta)
	}
}

func TestCross2(t *testing.T) {
	if got := cross2(mgl64.Vec2{1, 0}, mgl64.Vec2{0, 1}); !floatEqual(got, 1, 1e-12) {
		t.Errorf("cross2((1,0),(0,1)) = %v, want 1", got)
	}
}

func TestSoftParams_Degenerate(t *testing.T) {
	gamma, beta := softParams(0, 0, 1.0/60)
	if gamma != 0 || beta != 0 {
		t.Errorf("softParams(0,0,dt) = (%v,%v), want (0,0)", gamma, beta)
	}
}

func TestAngularLimits_RejectInversion(t *testing.T) {
	l := NewAngularLimits(0)
	if err := l.SetLimits(1, -1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetLimits(1,-1) err = %v, want ErrInvalidArgument", err)
	}
	if err := l.SetLimits(-1, 1); err != nil {
		t.Fatalf("SetLimits(-1,1) unexpected error: %v", err)
	}
	if err := l.SetLowerLimit(2); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetLowerLimit(2) err = %v, want ErrInvalidArgument (exceeds upper)", err)
	}
	if err := l.SetUpperLimit(-2); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetUpperLimit(-2) err = %v, want ErrInvalidArgument (below lower)", err)
	}
}

func TestAngularLimits_RoundTrip(t *testing.T) {
	l := NewAngularLimits(0)
	if err := l.EnableLimitAndSet(-0.5, 0.5); err != nil {
		t.Fatal(err)
	}
	if !l.IsLimitEnabled() {
		t.Error("EnableLimitAndSet should enable the limit")
	}
	if !floatEqual(l.LowerLimit(), -0.5, 1e-12) || !floatEqual(l.UpperLimit(), 0.5, 1e-12) {
		t.Errorf("limits = [%v,%v], want [-0.5,0.5]", l.LowerLimit(), l.UpperLimit())
	}
}

func TestAngularLimits_ClippedImpulse_Boundaries(t *testing.T) {
	l := NewAngularLimits(0)
	l.EnableLimitAndSet(-1, 1)

	// inside range: no impulse regardless of sign
	if got := l.clippedLimitImpulse(0, 5); got != 0 {
		t.Errorf("inside range: clippedLimitImpulse = %v, want 0", got)
	}

	// at lower bound: only a positive (separating) impulse passes
	if got := l.clippedLimitImpulse(-1, -3); got != 0 {
		t.Errorf("at lower, negative impulse: got %v, want 0", got)
	}
	if got := l.clippedLimitImpulse(-1, 3); got != 3 {
		t.Errorf("at lower, positive impulse: got %v, want 3", got)
	}

	// at upper bound: only a negative impulse passes
	if got := l.clippedLimitImpulse(1, 3); got != 0 {
		t.Errorf("at upper, positive impulse: got %v, want 0", got)
	}
	if got := l.clippedLimitImpulse(1, -3); got != -3 {
		t.Errorf("at upper, negative impulse: got %v, want -3", got)
	}
}

func TestLinearMotor_MaxForceClamp(t *testing.T) {
	m := LinearMotor{}
	m.SetMotorEnabled(true)
	m.SetMotorSpeed(100)
	if err := m.SetMaxMotorForce(1); err != nil {
		t.Fatal(err)
	}
	m.SetMaxMotorForceEnabled(true)

	dt := 1.0 / 60
	delta := m.solveMotor(0, 10, dt)
	_ = delta
	if math.Abs(m.impulse) > m.maxForce*dt+1e-9 {
		t.Errorf("motor impulse %v exceeds cap %v", m.impulse, m.maxForce*dt)
	}
}

func TestSpring_FrequencyStiffnessEquivalence(t *testing.T) {
	mu := 2.0
	s1 := NewLinearSpring(4.0, 0.7)
	k, _ := s1.RecomputeDerived(mu)

	s2 := NewLinearSpring(0, 0.7)
	if err := s2.SetStiffness(k); err != nil {
		t.Fatal(err)
	}
	k2, _ := s2.RecomputeDerived(mu)

	if !floatEqual(k, k2, 1e-9) {
		t.Errorf("stiffness round trip: k=%v, k2=%v", k, k2)
	}
	if !floatEqual(s2.Frequency(), 4.0, 1e-9) {
		t.Errorf("derived frequency = %v, want 4.0", s2.Frequency())
	}
}

func TestSpring_StiffnessModeAtZeroMu(t *testing.T) {
	s := NewLinearSpring(0, 0.7)
	if err := s.SetStiffness(10); err != nil {
		t.Fatal(err)
	}
	s.RecomputeDerived(0)
	if s.Frequency() != 0 {
		t.Errorf("frequency at mu=0 = %v, want 0", s.Frequency())
	}
}

func TestSpring_MaxForceClamp(t *testing.T) {
	s := NewLinearSpring(1, 0.2)
	s.SetMaxForce(1)
	s.SetMaxForceEnabled(true)

	applied := s.ApplyImpulse(100, 1.0/60)
	if math.Abs(s.Impulse()) > 1.0/60+1e-9 {
		t.Errorf("spring impulse %v exceeds cap", s.Impulse())
	}
	if applied <= 0 {
		t.Errorf("ApplyImpulse should report a positive delta, got %v", applied)
	}
}
