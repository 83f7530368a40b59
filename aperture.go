package esis

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// DefaultWireNum is the number of samples per edge used when tracing aperture wires.
const DefaultWireNum = 11

// Aperture defines the boundary of a surface in its local xy plane.
type Aperture interface {
	// Vertices returns the corners of the aperture, if any.
	Vertices() []r3.Vector
	// Wire returns the boundary sampled with num points per edge (or in total for curves).
	Wire(num int) []r3.Vector
	// Contains returns whether the point is transmitted by the aperture.
	Contains(p r3.Vector) bool
	// Kind returns a short name of the aperture shape.
	Kind() string
}

// PolygonalAperture is an arbitrary polygon. When Inverted, the polygon blocks light.
type PolygonalAperture struct {
	Points   []r3.Vector
	Inverted bool
}

// Vertices implements the Aperture interface.
func (a PolygonalAperture) Vertices() []r3.Vector {
	return a.Points
}

// Wire implements the Aperture interface.
func (a PolygonalAperture) Wire(num int) []r3.Vector {
	return polygonWire(a.Points, num)
}

// Contains implements the Aperture interface.
func (a PolygonalAperture) Contains(p r3.Vector) bool {
	return polygonContains(a.Points, p) != a.Inverted
}

// Kind implements the Aperture interface.
func (a PolygonalAperture) Kind() string {
	if a.Inverted {
		return "polygon (obscuration)"
	}
	return "polygon"
}

// RegularPolygonalAperture is a regular polygon of the given vertex radius.
type RegularPolygonalAperture struct {
	Radius      float64
	NumVertices int
	OffsetAngle float64 // rotation of the first vertex from the x axis, radians
}

// Vertices implements the Aperture interface.
func (a RegularPolygonalAperture) Vertices() []r3.Vector {
	return regularPolygon(a.Radius, a.NumVertices, a.OffsetAngle)
}

// Wire implements the Aperture interface.
func (a RegularPolygonalAperture) Wire(num int) []r3.Vector {
	return polygonWire(a.Vertices(), num)
}

// Contains implements the Aperture interface.
func (a RegularPolygonalAperture) Contains(p r3.Vector) bool {
	return polygonContains(a.Vertices(), p)
}

// Kind implements the Aperture interface.
func (a RegularPolygonalAperture) Kind() string {
	return "regular polygon"
}

// Halfwidth is the distance from the center to the middle of an edge.
func (a RegularPolygonalAperture) Halfwidth() float64 {
	return a.Radius * math.Cos(math.Pi/float64(a.NumVertices))
}

// CircularAperture is a circle centered on the local origin.
type CircularAperture struct {
	Radius float64
}

// Vertices implements the Aperture interface: circles have none.
func (a CircularAperture) Vertices() []r3.Vector {
	return nil
}

// Wire implements the Aperture interface.
func (a CircularAperture) Wire(num int) []r3.Vector {
	angles := Linspace(0, 2*math.Pi, num, false)
	wire := make([]r3.Vector, num)
	for i, θ := range angles {
		wire[i] = Cylindrical2Cartesian(a.Radius, θ)
	}
	return wire
}

// Contains implements the Aperture interface.
func (a CircularAperture) Contains(p r3.Vector) bool {
	return math.Hypot(p.X, p.Y) <= a.Radius+eps
}

// Kind implements the Aperture interface.
func (a CircularAperture) Kind() string {
	return "circle"
}

// RectangularAperture is an axis-aligned rectangle centered on the local origin.
type RectangularAperture struct {
	HalfWidth r2.Point
}

// Vertices implements the Aperture interface.
func (a RectangularAperture) Vertices() []r3.Vector {
	x, y := a.HalfWidth.X, a.HalfWidth.Y
	return []r3.Vector{{X: x, Y: y}, {X: -x, Y: y}, {X: -x, Y: -y}, {X: x, Y: -y}}
}

// Wire implements the Aperture interface.
func (a RectangularAperture) Wire(num int) []r3.Vector {
	return polygonWire(a.Vertices(), num)
}

// Contains implements the Aperture interface.
func (a RectangularAperture) Contains(p r3.Vector) bool {
	return math.Abs(p.X) <= a.HalfWidth.X+eps && math.Abs(p.Y) <= a.HalfWidth.Y+eps
}

// Kind implements the Aperture interface.
func (a RectangularAperture) Kind() string {
	return "rectangle"
}

// IsoscelesTrapezoidalAperture is the wedge of the given apex angle, centered on the x axis,
// bounded by x = XLeft and x = XRight, and moved into place by Transformation.
type IsoscelesTrapezoidalAperture struct {
	XLeft          float64
	XRight         float64
	Angle          float64
	Transformation Transform
}

// Vertices implements the Aperture interface.
func (a IsoscelesTrapezoidalAperture) Vertices() []r3.Vector {
	tan := math.Tan(a.Angle / 2)
	corners := []r3.Vector{
		{X: a.XRight, Y: a.XRight * tan},
		{X: a.XLeft, Y: a.XLeft * tan},
		{X: a.XLeft, Y: -a.XLeft * tan},
		{X: a.XRight, Y: -a.XRight * tan},
	}
	return a.transformation().ApplyAll(corners)
}

// Wire implements the Aperture interface.
func (a IsoscelesTrapezoidalAperture) Wire(num int) []r3.Vector {
	return polygonWire(a.Vertices(), num)
}

// Contains implements the Aperture interface.
func (a IsoscelesTrapezoidalAperture) Contains(p r3.Vector) bool {
	return polygonContains(a.Vertices(), p)
}

// Kind implements the Aperture interface.
func (a IsoscelesTrapezoidalAperture) Kind() string {
	return "isosceles trapezoid"
}

func (a IsoscelesTrapezoidalAperture) transformation() Transform {
	if a.Transformation.rotation == nil {
		return Translation(a.Transformation.translation)
	}
	return a.Transformation
}

// regularPolygon places num vertices evenly on a circle, the first at the offset angle.
func regularPolygon(radius float64, num int, offset float64) []r3.Vector {
	angles := Linspace(0, 2*math.Pi, num, false)
	vertices := make([]r3.Vector, num)
	for i, θ := range angles {
		vertices[i] = Cylindrical2Cartesian(radius, θ+offset)
	}
	return vertices
}

// polygonWire samples each edge of a closed polygon with num points, the last
// point of an edge being the first of the next one.
func polygonWire(vertices []r3.Vector, num int) []r3.Vector {
	if num < 1 {
		num = 1
	}
	wire := make([]r3.Vector, 0, len(vertices)*num)
	for i, v := range vertices {
		next := vertices[(i+1)%len(vertices)]
		for k := 0; k < num; k++ {
			f := float64(k) / float64(num)
			wire = append(wire, v.Add(next.Sub(v).Mul(f)))
		}
	}
	return wire
}

// polygonContains is the even-odd rule in the xy plane.
func polygonContains(vertices []r3.Vector, p r3.Vector) bool {
	inside := false
	for i, j := 0, len(vertices)-1; i < len(vertices); j, i = i, i+1 {
		vi, vj := vertices[i], vertices[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) && p.X < (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
	}
	return inside
}
