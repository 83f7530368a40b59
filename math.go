package esis

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

const (
	deg2rad = math.Pi / 180
	// mmPerAngstrom converts the internal length unit (mm) to Ångström.
	mmPerAngstrom = 1e-7
	// eps is the tolerance used for geometric comparisons.
	eps = 1e-9
)

// unit returns the unit vector of a given vector, or the nil vector.
func unit(a r3.Vector) r3.Vector {
	n := a.Norm()
	if scalar.EqualWithinAbs(n, 0, 1e-12) {
		return r3.Vector{}
	}
	return a.Mul(1 / n)
}

// Deg2rad converts degrees to radians.
// Unlike angles of orbital elements, optical angles keep their sign.
func Deg2rad(a float64) float64 {
	return a * deg2rad
}

// Rad2deg converts radians to degrees, keeping the sign.
func Rad2deg(a float64) float64 {
	return a / deg2rad
}

// Deg2radAll converts a slice of angles from degrees to radians.
func Deg2radAll(a []float64) []float64 {
	b := make([]float64, len(a))
	for i, v := range a {
		b[i] = Deg2rad(v)
	}
	return b
}

// Cylindrical2Cartesian returns the offset of a point at the given radial distance
// and azimuth in the plane perpendicular to the axis of symmetry.
func Cylindrical2Cartesian(radial, azimuth float64) r3.Vector {
	s, c := math.Sincos(azimuth)
	return r3.Vector{X: radial * c, Y: radial * s}
}

// Linspace returns num evenly spaced samples over [start, stop].
// If endpoint is false, stop is excluded as with a full turn of polygon vertices.
func Linspace(start, stop float64, num int, endpoint bool) []float64 {
	if num < 1 {
		panic("linspace requires at least one sample")
	}
	if num == 1 {
		return []float64{start}
	}
	if !endpoint {
		stop -= (stop - start) / float64(num)
	}
	return floats.Span(make([]float64, num), start, stop)
}
