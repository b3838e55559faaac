package body

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func floatEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestNew_DefaultsEnabledAwake(t *testing.T) {
	b := New(NewTransform(), 1.0, 1.0)

	if !b.IsEnabled() {
		t.Error("New body should be enabled by default")
	}
	if b.IsAtRest() {
		t.Error("New body should not start at rest")
	}
}

func TestIsStatic(t *testing.T) {
	tests := []struct {
		name             string
		invMass, invIner float64
		want             bool
	}{
		{"both zero", 0, 0, true},
		{"mass only", 1, 0, false},
		{"inertia only", 0, 1, false},
		{"both finite", 1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(NewTransform(), tt.invMass, tt.invIner)
			if got := b.IsStatic(); got != tt.want {
				t.Errorf("IsStatic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSleepWakeUp(t *testing.T) {
	b := New(NewTransform(), 1, 1)
	b.Velocity = mgl64.Vec2{3, 4}
	b.AngularVelocity = 2

	b.Sleep()
	if !b.IsAtRest() {
		t.Error("Sleep() should set at-rest")
	}
	if b.Velocity != (mgl64.Vec2{0, 0}) || b.AngularVelocity != 0 {
		t.Error("Sleep() should zero velocities")
	}

	b.WakeUp()
	if b.IsAtRest() {
		t.Error("WakeUp() should clear at-rest")
	}
}

func TestTranslateRotateAboutCenter(t *testing.T) {
	b := New(NewTransform(), 1, 1)
	b.Translate(mgl64.Vec2{1, 2})
	b.RotateAboutCenter(math.Pi / 2)

	if b.Transform.Position != (mgl64.Vec2{1, 2}) {
		t.Errorf("Translate: position = %v, want (1,2)", b.Transform.Position)
	}
	if !floatEqual(b.Transform.Rotation, math.Pi/2, 1e-12) {
		t.Errorf("RotateAboutCenter: rotation = %v, want pi/2", b.Transform.Rotation)
	}
}

func TestWorldLocalPointRoundTrip(t *testing.T) {
	tr := Transform{Position: mgl64.Vec2{5, -3}, Rotation: 0.7}
	b := New(tr, 1, 1)

	local := mgl64.Vec2{2, 1}
	world := b.WorldPoint(local)
	back := b.LocalPoint(world)

	if !floatEqual(back.X(), local.X(), 1e-9) || !floatEqual(back.Y(), local.Y(), 1e-9) {
		t.Errorf("LocalPoint(WorldPoint(p)) = %v, want %v", back, local)
	}
}

func TestRotate90Degrees(t *testing.T) {
	v := mgl64.Vec2{1, 0}
	r := Rotate(math.Pi/2, v)

	if !floatEqual(r.X(), 0, 1e-9) || !floatEqual(r.Y(), 1, 1e-9) {
		t.Errorf("Rotate(pi/2, (1,0)) = %v, want (0,1)", r)
	}
}

func TestDiscMass(t *testing.T) {
	m, i := DiscMass(2.0, 1.0)
	wantMass := math.Pi * 4.0
	wantI := 0.5 * wantMass * 4.0

	if !floatEqual(m, wantMass, 1e-9) {
		t.Errorf("DiscMass mass = %v, want %v", m, wantMass)
	}
	if !floatEqual(i, wantI, 1e-9) {
		t.Errorf("DiscMass inertia = %v, want %v", i, wantI)
	}
}

func TestBoxMass(t *testing.T) {
	m, i := BoxMass(2.0, 4.0, 1.0)
	wantMass := 8.0
	wantI := wantMass * (4.0 + 16.0) / 12.0

	if !floatEqual(m, wantMass, 1e-9) {
		t.Errorf("BoxMass mass = %v, want %v", m, wantMass)
	}
	if !floatEqual(i, wantI, 1e-9) {
		t.Errorf("BoxMass inertia = %v, want %v", i, wantI)
	}
}
