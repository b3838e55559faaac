package joint

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestRevoluteJoint_RejectsSameBody(t *testing.T) {
	a := dynamicBody(0, 0)
	if _, err := NewRevoluteJoint(a, a, mgl64.Vec2{0, 0}); err == nil {
		t.Error("NewRevoluteJoint(a, a, ...) should reject identical bodies")
	}
}

// TestRevoluteJoint_MotorDrivesTowardTargetSpeed is one of the two
// linear-motor scenarios: an unloaded motor should converge the relative
// angular velocity to its target speed.
func TestRevoluteJoint_MotorDrivesTowardTargetSpeed(t *testing.T) {
	ground := staticBody(0, 0)
	wheel := dynamicBody(1, 0)

	r, err := NewRevoluteJoint(ground, wheel, mgl64.Vec2{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	r.Motor.SetMotorEnabled(true)
	r.Motor.SetMotorSpeed(5.0)

	step := Step{Dt: 1.0 / 60, InvDt: 60, DtRatio: 1.0}
	settings := defaultSettings()

	for i := 0; i < 180; i++ {
		r.InitializeConstraints(step, settings)
		for j := 0; j < 4; j++ {
			r.SolveVelocityConstraints(step, settings)
		}
		r.SolvePositionConstraints(step, settings)
	}

	if !floatEqual(r.JointSpeed(), 5.0, 0.05) {
		t.Errorf("joint speed = %v, want ~5.0", r.JointSpeed())
	}
}

// TestRevoluteJoint_MotorRespectsMaxForce is the second linear-motor
// scenario: capping the motor's force should keep it from reaching the
// target speed within one step.
func TestRevoluteJoint_MotorRespectsMaxForce(t *testing.T) {
	ground := staticBody(0, 0)
	wheel := dynamicBody(1, 0)

	r, err := NewRevoluteJoint(ground, wheel, mgl64.Vec2{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	r.Motor.SetMotorEnabled(true)
	r.Motor.SetMotorSpeed(1000.0)
	r.Motor.SetMaxMotorForce(0.01)
	r.Motor.SetMaxMotorForceEnabled(true)

	step := Step{Dt: 1.0 / 60, InvDt: 60, DtRatio: 1.0}
	settings := defaultSettings()

	r.InitializeConstraints(step, settings)
	r.SolveVelocityConstraints(step, settings)

	if math.Abs(r.Motor.MotorForce(step.InvDt)) > 0.01+1e-9 {
		t.Errorf("motor force = %v, exceeds cap 0.01", r.Motor.MotorForce(step.InvDt))
	}
	if r.JointSpeed() >= 1000.0 {
		t.Errorf("capped motor reached target speed in one step: %v", r.JointSpeed())
	}
}

func TestRevoluteJoint_AngularLimitsClampJointAngle(t *testing.T) {
	ground := staticBody(0, 0)
	arm := dynamicBody(1, 0)
	arm.AngularVelocity = -10 // spinning hard; JointAngle (theta1 - theta2) rises toward the upper limit

	r, err := NewRevoluteJoint(ground, arm, mgl64.Vec2{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	r.Limits.EnableLimitAndSet(-0.3, 0.3)

	step := Step{Dt: 1.0 / 240, InvDt: 240, DtRatio: 1.0}
	settings := defaultSettings()

	for i := 0; i < 600; i++ {
		r.InitializeConstraints(step, settings)
		for j := 0; j < 4; j++ {
			r.SolveVelocityConstraints(step, settings)
		}
		r.SolvePositionConstraints(step, settings)
		arm.RotateAboutCenter(arm.AngularVelocity * step.Dt)
	}

	if angle := r.JointAngle(); angle > 0.3+0.05 {
		t.Errorf("joint angle = %v, exceeded upper limit 0.3 by more than tolerance", angle)
	}
}
