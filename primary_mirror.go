package esis

import (
	"fmt"
	"math"
)

// PrimaryMirror images the sun onto the field stop.
type PrimaryMirror struct {
	Sag         ParabolicSag
	NumFolds    int
	WidthClear  float64 // edge-to-edge width of the clear aperture, mm
	WidthBorder float64 // width of the border around the clear aperture, mm
	Material    Material
	Pose
}

// RadiusClear is the distance from the center to a vertex of the clear aperture.
func (p *PrimaryMirror) RadiusClear() float64 {
	return p.WidthClear / 2 / math.Cos(math.Pi/float64(p.NumFolds))
}

// RadiusMechanical is the distance from the center to a vertex of the substrate.
func (p *PrimaryMirror) RadiusMechanical() float64 {
	return (p.WidthClear/2 + p.WidthBorder) / math.Cos(math.Pi/float64(p.NumFolds))
}

// Surface implements the Element interface.
func (p *PrimaryMirror) Surface() Surface {
	return Surface{
		Name:               "primary",
		Sag:                p.Sag,
		Material:           p.Material,
		Aperture:           RegularPolygonalAperture{Radius: p.RadiusClear(), NumVertices: p.NumFolds},
		ApertureMechanical: RegularPolygonalAperture{Radius: p.RadiusMechanical(), NumVertices: p.NumFolds},
		Transformations:    []Transform{p.Pose.Transformation()},
	}
}

func (p *PrimaryMirror) String() string {
	return fmt.Sprintf("PrimaryMirror{%s folds=%d width_clear=%.3fmm %s}", p.Sag, p.NumFolds, p.WidthClear, p.Pose)
}

func (p *PrimaryMirror) clone() *PrimaryMirror {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
