package esis

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// FrontAperture is the entrance aperture plate of the instrument.
type FrontAperture struct {
	Translation r3.Vector
}

// Transformation returns the pose of the front aperture.
func (f *FrontAperture) Transformation() Transform {
	return Translation(f.Translation)
}

// Surface implements the Element interface. The front aperture does not restrict the beam.
func (f *FrontAperture) Surface() Surface {
	return Surface{
		Name:            "front aperture",
		Transformations: []Transform{f.Transformation()},
	}
}

func (f *FrontAperture) String() string {
	return fmt.Sprintf("FrontAperture{translation=%v}", f.Translation)
}

func (f *FrontAperture) clone() *FrontAperture {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}
