package esis

import (
	"fmt"
	"slices"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/floats"
)

// Grid is the default sampling of the object space traced through the system.
// Wavelengths are either physical (Å) or normalized to [-1, 1] across the passband;
// field and pupil positions are normalized to [-1, 1].
type Grid struct {
	Wavelength []float64
	Normalized bool
	Field      []r2.Point
	Pupil      []r2.Point
}

// NewGrid returns a grid of num wavelengths over [-1, 1] and num×num field and pupil positions.
func NewGrid(numWavelength, numField, numPupil int) Grid {
	if numWavelength < 1 || numField < 1 || numPupil < 1 {
		panic("grid requires at least one sample per axis")
	}
	return Grid{
		Wavelength: Linspace(-1, 1, numWavelength, true),
		Normalized: true,
		Field:      LinearGrid2D(-1, 1, numField, false),
		Pupil:      LinearGrid2D(-1, 1, numPupil, false),
	}
}

// LinearGrid2D returns the num×num Cartesian product of evenly spaced samples over [start, stop].
// With centers, the samples are the centers of num equal cells instead of their edges.
func LinearGrid2D(start, stop float64, num int, centers bool) []r2.Point {
	var axis []float64
	if centers {
		half := (stop - start) / float64(num) / 2
		axis = Linspace(start+half, stop-half, num, true)
	} else {
		axis = Linspace(start, stop, num, true)
	}
	points := make([]r2.Point, 0, num*num)
	for _, x := range axis {
		for _, y := range axis {
			points = append(points, r2.Point{X: x, Y: y})
		}
	}
	return points
}

// Size returns the number of rays described by this grid.
func (g Grid) Size() int {
	return max(len(g.Wavelength), 1) * max(len(g.Field), 1) * max(len(g.Pupil), 1)
}

// WavelengthPhysical maps a normalized grid onto [lo, hi]. Physical grids are returned as is.
func (g Grid) WavelengthPhysical(lo, hi float64) []float64 {
	if !g.Normalized {
		return slices.Clone(g.Wavelength)
	}
	out := make([]float64, len(g.Wavelength))
	center, half := (hi+lo)/2, (hi-lo)/2
	for i, w := range g.Wavelength {
		out[i] = center + half*w
	}
	return out
}

// Validate checks the normalized wavelengths are within [-1, 1] and physical ones are positive.
func (g Grid) Validate() error {
	if len(g.Wavelength) == 0 {
		return nil
	}
	lo, hi := floats.Min(g.Wavelength), floats.Max(g.Wavelength)
	if g.Normalized && (lo < -1 || hi > 1) {
		return fmt.Errorf("%w: normalized wavelength outside [-1, 1]: [%g, %g]", ErrConfig, lo, hi)
	}
	if !g.Normalized && lo <= 0 {
		return fmt.Errorf("%w: physical wavelength must be positive: %g", ErrConfig, lo)
	}
	return nil
}

func (g Grid) clone() Grid {
	return Grid{slices.Clone(g.Wavelength), g.Normalized, slices.Clone(g.Field), slices.Clone(g.Pupil)}
}
