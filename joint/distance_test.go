package joint

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestDistanceJoint_RejectsSameBody(t *testing.T) {
	a := dynamicBody(0, 0)
	if _, err := NewDistanceJoint(a, a, mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}); err == nil {
		t.Error("NewDistanceJoint(a, a, ...) should reject identical bodies")
	}
}

func TestDistanceJoint_RigidModeHoldsLength(t *testing.T) {
	ground := staticBody(0, 0)
	bob := dynamicBody(3, 0)
	bob.Velocity = mgl64.Vec2{0, -4}

	d, err := NewDistanceJoint(ground, bob, mgl64.Vec2{0, 0}, mgl64.Vec2{3, 0})
	if err != nil {
		t.Fatal(err)
	}

	step := Step{Dt: 1.0 / 60, InvDt: 60, DtRatio: 1.0}
	settings := defaultSettings()

	for i := 0; i < 120; i++ {
		d.InitializeConstraints(step, settings)
		for j := 0; j < 8; j++ {
			d.SolveVelocityConstraints(step, settings)
		}
		d.SolvePositionConstraints(step, settings)
	}

	gap := bob.Transform.Position.Sub(ground.Transform.Position).Len()
	if gap < d.Length()-0.05 || gap > d.Length()+0.05 {
		t.Errorf("rigid distance = %v, want ~%v", gap, d.Length())
	}
}

func TestDistanceJoint_RopeModeAllowsSlack(t *testing.T) {
	ground := staticBody(0, 0)
	bob := dynamicBody(1, 0)

	d, err := NewDistanceJoint(ground, bob, mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	d.RopeEnabled = true
	if err := d.SetLengthRange(0, 3); err != nil {
		t.Fatal(err)
	}

	bob.Velocity = mgl64.Vec2{1, 0} // moving further within slack, should be unconstrained

	step := Step{Dt: 1.0 / 60, InvDt: 60, DtRatio: 1.0}
	settings := defaultSettings()

	d.InitializeConstraints(step, settings)
	d.SolveVelocityConstraints(step, settings)

	if !floatEqual(bob.Velocity.X(), 1.0, 1e-9) {
		t.Errorf("rope should not constrain motion within slack: velocity.x = %v, want 1.0", bob.Velocity.X())
	}
}

func TestDistanceJoint_RopeModeStopsAtMaxLength(t *testing.T) {
	ground := staticBody(0, 0)
	bob := dynamicBody(2, 0)

	d, err := NewDistanceJoint(ground, bob, mgl64.Vec2{0, 0}, mgl64.Vec2{2, 0})
	if err != nil {
		t.Fatal(err)
	}
	d.RopeEnabled = true
	if err := d.SetLengthRange(0, 2); err != nil {
		t.Fatal(err)
	}
	bob.Velocity = mgl64.Vec2{5, 0} // pulling outward past max length

	step := Step{Dt: 1.0 / 60, InvDt: 60, DtRatio: 1.0}
	settings := defaultSettings()

	for i := 0; i < 10; i++ {
		d.InitializeConstraints(step, settings)
		for j := 0; j < 8; j++ {
			d.SolveVelocityConstraints(step, settings)
		}
	}

	if bob.Velocity.X() > 0.1 {
		t.Errorf("rope at max length should arrest outward velocity, got %v", bob.Velocity.X())
	}
}
