package body

import "math"

// DiscMass returns the mass and rotational inertia (about its own center) of
// a solid disc of the given radius and density. Convenience only — this
// module does not model collision shapes; it exists so tests and the
// example scene can build bodies without hand-computing inertia each time.
func DiscMass(radius, density float64) (mass, inertia float64) {
	mass = density * math.Pi * radius * radius
	inertia = 0.5 * mass * radius * radius
	return mass, inertia
}

// BoxMass returns the mass and rotational inertia (about its own center) of
// a solid rectangle with the given full width/height and density.
func BoxMass(width, height, density float64) (mass, inertia float64) {
	mass = density * width * height
	inertia = mass * (width*width + height*height) / 12.0
	return mass, inertia
}
