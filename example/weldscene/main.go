package main

import (
	"fmt"

	"github.com/akmonengine/joint2d/body"
	"github.com/akmonengine/joint2d/joint"
	"github.com/akmonengine/joint2d/solver"
	"github.com/go-gl/mathgl/mgl64"
)

// buildScene sets up a ground anchor, a welded swing arm with a torsion
// spring, a motorized wheel on a revolute joint, and a rope-constrained
// weight, all sharing one world.
func buildScene() (*solver.World, *body.Body, *body.Body, *body.Body, *body.Body) {
	world := solver.NewWorld(mgl64.Vec2{0, -9.8})
	world.Substeps = 4
	world.Workers = 2

	ground := body.New(body.Transform{Position: mgl64.Vec2{0, 0}}, 0, 0)
	world.AddBody(ground)

	mass, inertia := body.BoxMass(1.0, 0.2, 2.0)
	arm := body.New(body.Transform{Position: mgl64.Vec2{1, 0}}, 1/mass, 1/inertia)
	world.AddBody(arm)

	weldJoint, err := joint.NewWeldJoint(ground, arm, mgl64.Vec2{0, 0}, mgl64.Vec2{0, 0}, nil)
	if err != nil {
		panic(err)
	}
	weldJoint.AngularSpring.SetSpringEnabled(true)
	weldJoint.AngularSpring.SetFrequency(1.5)
	weldJoint.AngularSpring.SetDamperEnabled(true)
	weldJoint.AngularSpring.SetDampingRatio(0.4)
	world.AddJoint(weldJoint)

	wheelMass, wheelInertia := body.DiscMass(0.5, 3.0)
	wheel := body.New(body.Transform{Position: mgl64.Vec2{3, 0}}, 1/wheelMass, 1/wheelInertia)
	world.AddBody(wheel)

	axle, err := joint.NewRevoluteJoint(ground, wheel, mgl64.Vec2{3, 0})
	if err != nil {
		panic(err)
	}
	axle.Motor.SetMotorEnabled(true)
	axle.Motor.SetMotorSpeed(4.0)
	axle.Motor.SetMaxMotorForce(5.0)
	axle.Motor.SetMaxMotorForceEnabled(true)
	world.AddJoint(axle)

	weightMass, weightInertia := body.DiscMass(0.3, 4.0)
	weight := body.New(body.Transform{Position: mgl64.Vec2{-2, 0}}, 1/weightMass, 1/weightInertia)
	world.AddBody(weight)

	rope, err := joint.NewDistanceJoint(ground, weight, mgl64.Vec2{-2, 2}, mgl64.Vec2{-2, 0})
	if err != nil {
		panic(err)
	}
	rope.RopeEnabled = true
	if err := rope.SetLengthRange(0, 2.0); err != nil {
		panic(err)
	}
	world.AddJoint(rope)

	return world, ground, arm, wheel, weight
}

func main() {
	world, _, arm, wheel, weight := buildScene()

	world.Events.Subscribe(solver.OnSleep, func(e solver.Event) {
		if se, ok := e.(solver.SleepEvent); ok {
			fmt.Printf("body %p went to sleep\n", se.Body)
		}
	})

	const dt = 1.0 / 60.0
	const steps = 240

	for step := 0; step < steps; step++ {
		world.Step(dt)

		if step%30 == 0 {
			fmt.Printf("t=%.2fs arm.rotation=%.3f wheel.speed=%.3f weight.pos=%v\n",
				float64(step)*dt, arm.Transform.Rotation, wheel.AngularVelocity, weight.Transform.Position)
		}
	}
}
