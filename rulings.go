package esis

import (
	"fmt"
	"slices"

	"github.com/golang/geo/r3"
)

// Rulings is the groove pattern of a diffraction grating.
type Rulings interface {
	// Spacing returns the ruling spacing vector at p on a surface of the given normal.
	// Its length is the local groove spacing (mm); it points across the grooves.
	Spacing(p, normal r3.Vector) r3.Vector
	// DiffractionOrder returns the (signed) order of diffraction.
	DiffractionOrder() int
	fmt.Stringer
}

// rulingDirection is the local x axis projected onto the surface tangent plane.
func rulingDirection(normal r3.Vector) r3.Vector {
	x := r3.Vector{X: 1}
	n := unit(normal)
	return unit(x.Sub(n.Mul(x.Dot(n))))
}

// ConstantRulings have a uniform groove spacing.
type ConstantRulings struct {
	Period float64 // mm
	Order  int
}

// Spacing implements the Rulings interface.
func (r ConstantRulings) Spacing(_, normal r3.Vector) r3.Vector {
	return rulingDirection(normal).Mul(r.Period)
}

// DiffractionOrder implements the Rulings interface.
func (r ConstantRulings) DiffractionOrder() int { return r.Order }

func (r ConstantRulings) String() string {
	return fmt.Sprintf("constant(d=%.6g mm, m=%d)", r.Period, r.Order)
}

// SawtoothRulings are uniformly spaced blazed grooves.
type SawtoothRulings struct {
	Period float64 // mm
	Depth  float64 // mm
	Order  int
}

// Spacing implements the Rulings interface.
func (r SawtoothRulings) Spacing(_, normal r3.Vector) r3.Vector {
	return rulingDirection(normal).Mul(r.Period)
}

// DiffractionOrder implements the Rulings interface.
func (r SawtoothRulings) DiffractionOrder() int { return r.Order }

func (r SawtoothRulings) String() string {
	return fmt.Sprintf("sawtooth(d=%.6g mm, depth=%.3g mm, m=%d)", r.Period, r.Depth, r.Order)
}

// PolynomialRulings have a groove spacing varying along x: d(x) = Σ cᵢ xⁱ.
type PolynomialRulings struct {
	Coefficients []float64 // c0 in mm, c1 dimensionless, c2 in 1/mm, ...
	Order        int
}

// SpacingAt returns the scalar spacing at the given x position (mm).
func (r PolynomialRulings) SpacingAt(x float64) float64 {
	d := 0.0
	for i := len(r.Coefficients) - 1; i >= 0; i-- {
		d = d*x + r.Coefficients[i]
	}
	return d
}

// Spacing implements the Rulings interface.
func (r PolynomialRulings) Spacing(p, normal r3.Vector) r3.Vector {
	return rulingDirection(normal).Mul(r.SpacingAt(p.X))
}

// DiffractionOrder implements the Rulings interface.
func (r PolynomialRulings) DiffractionOrder() int { return r.Order }

func (r PolynomialRulings) String() string {
	return fmt.Sprintf("polynomial(c=%v mm, m=%d)", r.Coefficients, r.Order)
}

// cloneRulings deep copies rulings holding slices.
func cloneRulings(r Rulings) Rulings {
	if p, ok := r.(PolynomialRulings); ok {
		p.Coefficients = slices.Clone(p.Coefficients)
		return p
	}
	return r
}
