package esis

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// CentralObscuration models the tuffet, which holds the diffraction gratings and
// obscures the central portion of the primary mirror.
type CentralObscuration struct {
	NumFolds  int     // order of the rotational symmetry of the optical system
	Halfwidth float64 // distance from the center to the edge, mm
	// RemoveLastVertex drops the last vertex of the polygon to model the truncated tuffet.
	RemoveLastVertex bool
	// AngleOffset is an extra rotation of the vertices, radians. The vertices are always
	// rotated back by one fold; this offset is subtracted on top of that.
	AngleOffset float64
	Translation r3.Vector
}

// Radius is the distance from the center to a vertex.
func (c *CentralObscuration) Radius() float64 {
	return c.Halfwidth / math.Cos(math.Pi/float64(c.NumFolds))
}

// Vertices returns the corners of the obscuration in its local frame.
func (c *CentralObscuration) Vertices() []r3.Vector {
	angleFold := 2 * math.Pi / float64(c.NumFolds)
	angles := Linspace(0, 2*math.Pi, c.NumFolds, false)
	if c.RemoveLastVertex {
		angles = angles[:len(angles)-1]
	}
	radius := c.Radius()
	vertices := make([]r3.Vector, len(angles))
	for i, θ := range angles {
		vertices[i] = Cylindrical2Cartesian(radius, θ-angleFold-c.AngleOffset)
	}
	return vertices
}

// Transformation returns the pose of the obscuration.
func (c *CentralObscuration) Transformation() Transform {
	return Translation(c.Translation)
}

// Surface implements the Element interface.
func (c *CentralObscuration) Surface() Surface {
	return Surface{
		Name:            "obscuration",
		Aperture:        PolygonalAperture{Points: c.Vertices(), Inverted: true},
		Transformations: []Transform{c.Transformation()},
	}
}

func (c *CentralObscuration) String() string {
	return fmt.Sprintf("CentralObscuration{folds=%d halfwidth=%.3fmm remove_last=%t translation=%v}", c.NumFolds, c.Halfwidth, c.RemoveLastVertex, c.Translation)
}

func (c *CentralObscuration) clone() *CentralObscuration {
	if c == nil {
		return nil
	}
	o := *c
	return &o
}
