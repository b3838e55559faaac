package body

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a 2D rigid transform: a world position and a scalar
// counter-clockwise orientation (radians).
type Transform struct {
	Position mgl64.Vec2
	Rotation float64
}

// NewTransform creates an identity transform.
func NewTransform() Transform {
	return Transform{Position: mgl64.Vec2{0, 0}, Rotation: 0}
}

// Rotate rotates v by theta radians, counter-clockwise.
func Rotate(theta float64, v mgl64.Vec2) mgl64.Vec2 {
	s, c := math.Sincos(theta)
	return mgl64.Vec2{c*v.X() - s*v.Y(), s*v.X() + c*v.Y()}
}

// InverseRotate rotates v by -theta; equivalent to Rotate(-theta, v). Used
// by LocalPoint.
func InverseRotate(theta float64, v mgl64.Vec2) mgl64.Vec2 {
	s, c := math.Sincos(theta)
	return mgl64.Vec2{c*v.X() + s*v.Y(), -s*v.X() + c*v.Y()}
}

// WorldPoint maps a point from this transform's local frame to world space.
func (t Transform) WorldPoint(local mgl64.Vec2) mgl64.Vec2 {
	return Rotate(t.Rotation, local).Add(t.Position)
}

// LocalPoint maps a point from world space to this transform's local frame.
func (t Transform) LocalPoint(world mgl64.Vec2) mgl64.Vec2 {
	return InverseRotate(t.Rotation, world.Sub(t.Position))
}
