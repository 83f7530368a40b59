package esis

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Grating models the array of diffraction gratings which disperse light onto the detectors.
// Gratings are mounted facing backwards, hence the fixed half-turn about x in their transformation.
type Grating struct {
	SerialNumber        string
	ManufacturingNumber string
	AngleInput          float64 // nominal incidence angle from the field stop, radians; documentation only
	AngleOutput         float64 // nominal diffraction angle to the detectors, radians; documentation only
	Sag                 SphericalSag
	Material            Material
	Rulings             Rulings
	NumFolds            int
	HalfwidthInner      float64 // apex to the inner edge of the clear aperture, mm
	HalfwidthOuter      float64 // apex to the outer edge of the clear aperture, mm
	WidthBorder         float64 // nominal border around the clear aperture, mm
	WidthBorderInner    float64 // border between the inner clear edge and the substrate edge, mm
	Clearance           float64 // minimum distance between adjacent gratings, mm
	Cylindrical
	Pose
}

// AngleAperture is the wedge angle of the grating aperture, 2π/n.
func (g *Grating) AngleAperture() float64 {
	return 2 * math.Pi / float64(g.NumFolds)
}

// Transformation returns the local-to-instrument transformation of the given channel.
func (g *Grating) Transformation(channel int) Transform {
	return placedTransformation(g.Pose, g.Cylindrical, channel).Compose(RotationX(math.Pi))
}

// offsets returns the distance from the axis of symmetry to the apex of the clear and
// mechanical apertures.
func (g *Grating) offsets() (clear, mechanical float64) {
	sinHalf := math.Sin(g.AngleAperture() / 2)
	clearance := g.Clearance / sinHalf
	sideBorder := g.WidthBorder/sinHalf + clearance
	return g.DistanceRadial - sideBorder, g.DistanceRadial - clearance
}

// ApertureClear returns the clear aperture of the grating in its local frame.
func (g *Grating) ApertureClear() IsoscelesTrapezoidalAperture {
	offsetClear, _ := g.offsets()
	return IsoscelesTrapezoidalAperture{
		XLeft:          offsetClear - g.HalfwidthInner,
		XRight:         offsetClear + g.HalfwidthOuter,
		Angle:          g.AngleAperture(),
		Transformation: Translation(r3.Vector{X: -offsetClear}),
	}
}

// ApertureMechanical returns the substrate outline of the grating in its local frame.
func (g *Grating) ApertureMechanical() IsoscelesTrapezoidalAperture {
	_, offsetMech := g.offsets()
	return IsoscelesTrapezoidalAperture{
		XLeft:          offsetMech - (g.HalfwidthInner + g.WidthBorderInner),
		XRight:         offsetMech + g.HalfwidthOuter + g.WidthBorder,
		Angle:          g.AngleAperture(),
		Transformation: Translation(r3.Vector{X: -offsetMech}),
	}
}

// Surface implements the Element interface.
func (g *Grating) Surface() Surface {
	return Surface{
		Name:               "grating",
		Sag:                g.Sag,
		Material:           g.Material,
		Aperture:           g.ApertureClear(),
		ApertureMechanical: g.ApertureMechanical(),
		Rulings:            g.Rulings,
		IsPupilStop:        true,
		Transformations:    transformsPerChannel(g.NumChannels(), g.Transformation),
	}
}

func (g *Grating) String() string {
	return fmt.Sprintf("Grating{sn=%q %s %v folds=%d r=%.3fmm channels=%d %s}", g.SerialNumber, g.Sag, g.Rulings, g.NumFolds, g.DistanceRadial, g.NumChannels(), g.Pose)
}

func (g *Grating) clone() *Grating {
	if g == nil {
		return nil
	}
	c := *g
	c.Cylindrical = g.Cylindrical.clone()
	if g.Rulings != nil {
		c.Rulings = cloneRulings(g.Rulings)
	}
	return &c
}
