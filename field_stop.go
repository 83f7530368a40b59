package esis

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// FieldStop restricts the field of view of the spectrograph to simplify the inversion.
type FieldStop struct {
	NumFolds         int
	RadiusClear      float64 // center to a vertex of the clear aperture, mm
	RadiusMechanical float64 // radius of the exterior edge, mm
	Translation      r3.Vector
}

// NumSides is the number of sides of the clear aperture.
func (f *FieldStop) NumSides() int {
	return f.NumFolds
}

// WidthClear is the edge-to-edge width of the clear aperture.
func (f *FieldStop) WidthClear() float64 {
	return 2 * f.RadiusClear * math.Cos(math.Pi/float64(f.NumSides()))
}

// Transformation returns the pose of the field stop.
func (f *FieldStop) Transformation() Transform {
	return Translation(f.Translation)
}

// Surface implements the Element interface.
func (f *FieldStop) Surface() Surface {
	return Surface{
		Name:               "field stop",
		Aperture:           RegularPolygonalAperture{Radius: f.RadiusClear, NumVertices: f.NumSides()},
		ApertureMechanical: CircularAperture{Radius: f.RadiusMechanical},
		IsFieldStop:        true,
		Transformations:    []Transform{f.Transformation()},
	}
}

func (f *FieldStop) String() string {
	return fmt.Sprintf("FieldStop{folds=%d r_clear=%.3fmm r_mech=%.3fmm translation=%v}", f.NumFolds, f.RadiusClear, f.RadiusMechanical, f.Translation)
}

func (f *FieldStop) clone() *FieldStop {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}
