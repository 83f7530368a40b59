package esis

import "fmt"

// Filter models the thin-film filters which block visible light before the detectors.
type Filter struct {
	Material    Material
	RadiusClear float64 // radius of the circular clear aperture, mm
	WidthBorder float64 // width of the frame around the clear aperture, mm
	Cylindrical
	Pose
}

// RadiusMechanical is the outer radius of the filter frame.
func (f *Filter) RadiusMechanical() float64 {
	return f.RadiusClear + f.WidthBorder
}

// Transformation returns the local-to-instrument transformation of the given channel.
func (f *Filter) Transformation(channel int) Transform {
	return placedTransformation(f.Pose, f.Cylindrical, channel)
}

// Surface implements the Element interface.
func (f *Filter) Surface() Surface {
	return Surface{
		Name:               "filter",
		Material:           f.Material,
		Aperture:           CircularAperture{Radius: f.RadiusClear},
		ApertureMechanical: CircularAperture{Radius: f.RadiusMechanical()},
		Transformations:    transformsPerChannel(f.NumChannels(), f.Transformation),
	}
}

func (f *Filter) String() string {
	return fmt.Sprintf("Filter{r_clear=%.3fmm border=%.3fmm r=%.3fmm channels=%d %s}", f.RadiusClear, f.WidthBorder, f.DistanceRadial, f.NumChannels(), f.Pose)
}

func (f *Filter) clone() *Filter {
	if f == nil {
		return nil
	}
	c := *f
	c.Cylindrical = f.Cylindrical.clone()
	return &c
}
