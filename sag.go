package esis

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Sag defines the height profile z(x, y) of a surface.
type Sag interface {
	// Height returns the sag at (x, y) in mm.
	Height(x, y float64) float64
	// Normal returns the unit normal at the surface point p.
	Normal(p r3.Vector) r3.Vector
	fmt.Stringer
}

// NoSag is a flat plane.
type NoSag struct{}

// Height implements the Sag interface.
func (NoSag) Height(x, y float64) float64 { return 0 }

// Normal implements the Sag interface.
func (NoSag) Normal(r3.Vector) r3.Vector { return r3.Vector{Z: -1} }

func (NoSag) String() string { return "flat" }

// SphericalSag is a sphere of the given signed radius of curvature (mm).
type SphericalSag struct {
	Radius float64
}

// Curvature is the reciprocal of the radius; zero for an infinite radius.
func (s SphericalSag) Curvature() float64 {
	if s.Radius == 0 || math.IsInf(s.Radius, 0) {
		return 0
	}
	return 1 / s.Radius
}

// Height implements the Sag interface.
func (s SphericalSag) Height(x, y float64) float64 {
	c := s.Curvature()
	r2 := x*x + y*y
	return c * r2 / (1 + math.Sqrt(1-c*c*r2))
}

// Normal implements the Sag interface.
func (s SphericalSag) Normal(p r3.Vector) r3.Vector {
	c := s.Curvature()
	r2 := p.X*p.X + p.Y*p.Y
	g := c / math.Sqrt(1-c*c*r2)
	return unit(r3.Vector{X: g * p.X, Y: g * p.Y, Z: -1})
}

func (s SphericalSag) String() string {
	return fmt.Sprintf("spherical(R=%.3f mm)", s.Radius)
}

// ParabolicSag is a paraboloid of the given signed focal length (mm).
type ParabolicSag struct {
	FocalLength float64
}

// Height implements the Sag interface.
func (s ParabolicSag) Height(x, y float64) float64 {
	return (x*x + y*y) / (4 * s.FocalLength)
}

// Normal implements the Sag interface.
func (s ParabolicSag) Normal(p r3.Vector) r3.Vector {
	g := 1 / (2 * s.FocalLength)
	return unit(r3.Vector{X: g * p.X, Y: g * p.Y, Z: -1})
}

func (s ParabolicSag) String() string {
	return fmt.Sprintf("parabolic(f=%.3f mm)", s.FocalLength)
}
