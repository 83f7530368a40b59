package esis

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestCentralObscuration(t *testing.T) {
	for n := 3; n <= 12; n++ {
		for _, remove := range []bool{false, true} {
			c := &CentralObscuration{NumFolds: n, Halfwidth: 20, RemoveLastVertex: remove}
			exp := 20 / math.Cos(math.Pi/float64(n))
			if !scalar.EqualWithinAbs(c.Radius(), exp, 1e-12) {
				t.Fatalf("n=%d: radius %f != %f", n, c.Radius(), exp)
			}
			vertices := c.Vertices()
			expNum := n
			if remove {
				expNum--
			}
			if len(vertices) != expNum {
				t.Fatalf("n=%d remove=%t: %d vertices", n, remove, len(vertices))
			}
			for _, v := range vertices {
				if !scalar.EqualWithinAbs(v.Norm(), exp, 1e-12) {
					t.Fatalf("n=%d: vertex %v is not on the circumscribed circle", n, v)
				}
			}
		}
	}
}

func TestCentralObscurationOffset(t *testing.T) {
	c := &CentralObscuration{NumFolds: 8, Halfwidth: 20}
	first := c.Vertices()[0]
	if !scalar.EqualWithinAbs(math.Atan2(first.Y, first.X), -math.Pi/4, 1e-12) {
		t.Fatalf("first vertex must be rotated back by one fold, got %v", first)
	}
	c.AngleOffset = math.Pi / 8
	first = c.Vertices()[0]
	if !scalar.EqualWithinAbs(math.Atan2(first.Y, first.X), -3*math.Pi/8, 1e-12) {
		t.Fatalf("angle offset not applied, got %v", first)
	}
	surf := c.Surface()
	if surf.Aperture.Contains(r3.Vector{}) {
		t.Fatal("the obscuration must block its center")
	}
	if !surf.Aperture.Contains(r3.Vector{X: 100}) {
		t.Fatal("the obscuration must transmit outside of itself")
	}
}

func TestFieldStop(t *testing.T) {
	f := &FieldStop{NumFolds: 8, RadiusClear: 2, RadiusMechanical: 20}
	if f.NumSides() != 8 {
		t.Fatal("a field stop has one side per fold")
	}
	if !scalar.EqualWithinAbs(f.WidthClear(), 4*math.Cos(math.Pi/8), 1e-12) {
		t.Fatalf("width clear %f", f.WidthClear())
	}
	surf := f.Surface()
	if !surf.IsFieldStop || surf.IsPupilStop {
		t.Fatal("flags")
	}
	a := surf.Aperture.(RegularPolygonalAperture)
	if !scalar.EqualWithinAbs(2*a.Halfwidth(), f.WidthClear(), 1e-12) {
		t.Fatal("aperture and field stop disagree on the width")
	}
	if len(a.Wire(DefaultWireNum)) != 8*DefaultWireNum {
		t.Fatal("wire has num points per edge")
	}
}

func TestPrimaryMirrorRadii(t *testing.T) {
	p := &PrimaryMirror{NumFolds: 8, WidthClear: 100, WidthBorder: 1}
	cos := math.Cos(math.Pi / 8)
	if !scalar.EqualWithinAbs(p.RadiusClear(), 50/cos, 1e-12) {
		t.Fatal("radius clear")
	}
	if !scalar.EqualWithinAbs(p.RadiusMechanical(), 51/cos, 1e-12) {
		t.Fatal("radius mechanical")
	}
}

func TestGratingApertures(t *testing.T) {
	g := &Grating{
		NumFolds:         8,
		HalfwidthInner:   15,
		HalfwidthOuter:   10,
		WidthBorder:      1,
		WidthBorderInner: 1.5,
		Clearance:        1,
		Cylindrical:      Cylindrical{DistanceRadial: 50},
	}
	if !scalar.EqualWithinAbs(g.AngleAperture(), math.Pi/4, 1e-15) {
		t.Fatalf("aperture angle %f", g.AngleAperture())
	}
	sinHalf := math.Sin(math.Pi / 8)
	offsetClear, offsetMech := g.offsets()
	if !scalar.EqualWithinAbs(offsetClear, 50-1/sinHalf-1/sinHalf, 1e-12) {
		t.Fatalf("offset clear %f", offsetClear)
	}
	if !scalar.EqualWithinAbs(offsetMech, 50-1/sinHalf, 1e-12) {
		t.Fatalf("offset mechanical %f", offsetMech)
	}
	clear := g.ApertureClear().Vertices()
	if len(clear) != 4 {
		t.Fatalf("%d vertices", len(clear))
	}
	xs := []float64{clear[0].X, clear[1].X, clear[2].X, clear[3].X}
	if !floats.EqualApprox(xs, []float64{10, -15, -15, 10}, 1e-12) {
		t.Fatalf("clear aperture x extents %v", xs)
	}
	if clear[0].Y <= clear[1].Y {
		t.Fatal("the outer edge must be the long one")
	}
	mech := g.ApertureMechanical()
	xs = []float64{mech.Vertices()[0].X, mech.Vertices()[1].X}
	if !floats.EqualApprox(xs, []float64{11, -16.5}, 1e-12) {
		t.Fatalf("mechanical aperture x extents %v", xs)
	}
	for _, v := range clear {
		if !mech.Contains(v) {
			t.Fatalf("clear vertex %v is outside of the substrate", v)
		}
	}
}

func TestApertureContains(t *testing.T) {
	circle := CircularAperture{Radius: 2}
	if !circle.Contains(r3.Vector{X: 2}) || circle.Contains(r3.Vector{X: 2.1}) {
		t.Fatal("circle")
	}
	if len(circle.Vertices()) != 0 || len(circle.Wire(16)) != 16 {
		t.Fatal("circle wire")
	}
	for _, p := range circle.Wire(16) {
		if !scalar.EqualWithinAbs(p.Norm(), 2, 1e-12) {
			t.Fatalf("%v is not on the circle", p)
		}
	}
	rect := RectangularAperture{HalfWidth: r2.Point{X: 3, Y: 1}}
	if !rect.Contains(r3.Vector{X: -3, Y: 1}) || rect.Contains(r3.Vector{Y: 1.5}) {
		t.Fatal("rectangle")
	}
	square := PolygonalAperture{Points: rect.Vertices()}
	if !square.Contains(r3.Vector{X: 2.9}) || square.Contains(r3.Vector{X: 3.1}) {
		t.Fatal("polygon")
	}
	square.Inverted = true
	if square.Contains(r3.Vector{}) {
		t.Fatal("inverted polygon")
	}
}

func TestPolygonWire(t *testing.T) {
	vertices := []r3.Vector{{X: 0}, {X: 1}, {X: 1, Y: 1}}
	wire := polygonWire(vertices, 2)
	exp := []r3.Vector{{X: 0}, {X: 0.5}, {X: 1}, {X: 1, Y: 0.5}, {X: 1, Y: 1}, {X: 0.5, Y: 0.5}}
	if len(wire) != len(exp) {
		t.Fatalf("%d points", len(wire))
	}
	for i := range exp {
		if !vectorsEqual(wire[i], exp[i], 1e-15) {
			t.Fatalf("point %d: %v != %v", i, wire[i], exp[i])
		}
	}
}
