package esis

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestPoseOrder(t *testing.T) {
	// Rotations are applied after the translation, roll first.
	p := Pose{Translation: r3.Vector{Z: 100}, Pitch: math.Pi / 2, Roll: math.Pi / 2}
	got := p.Transformation().Apply(r3.Vector{X: 1})
	// Rz(90°) maps x onto y, then Rx(90°) maps y onto z.
	if !vectorsEqual(got, r3.Vector{Z: 101}, 1e-12) {
		t.Fatalf("got %v", got)
	}
}

func TestCylindricalPlacement(t *testing.T) {
	c := Cylindrical{DistanceRadial: 20, Azimuth: Deg2radAll(Linspace(0, 360, 8, false))}
	if c.NumChannels() != 8 {
		t.Fatalf("expected 8 channels, got %d", c.NumChannels())
	}
	g := &Grating{Cylindrical: c, NumFolds: 8}
	seen := make([]r3.Vector, 0, 8)
	for ch := 0; ch < c.NumChannels(); ch++ {
		origin := g.Transformation(ch).Offset()
		if !scalar.EqualWithinAbs(math.Hypot(origin.X, origin.Y), 20, 1e-12) {
			t.Fatalf("channel %d is %f mm from the axis", ch, math.Hypot(origin.X, origin.Y))
		}
		if !vectorsEqual(origin, c.Offset(ch), 1e-12) {
			t.Fatalf("channel %d: transformation and offset disagree", ch)
		}
		for k, o := range seen {
			if vectorsEqual(o, origin, 1e-6) {
				t.Fatalf("channels %d and %d share a position", k, ch)
			}
		}
		seen = append(seen, origin)
	}
}

func TestCylindricalBroadcast(t *testing.T) {
	var none Cylindrical
	if none.NumChannels() != 1 || none.AzimuthOf(5) != 0 {
		t.Fatal("an empty azimuth is a single channel at 0")
	}
	one := Cylindrical{DistanceRadial: 1, Azimuth: []float64{0.5}}
	if one.AzimuthOf(3) != 0.5 {
		t.Fatal("a single azimuth broadcasts over every channel")
	}
	many := Cylindrical{DistanceRadial: 1, Azimuth: []float64{0, 1, 2, 3}}
	s := many.slice(1, 3)
	if !floats.Equal(s.Azimuth, []float64{1, 2}) {
		t.Fatalf("slice gave %v", s.Azimuth)
	}
	s.Azimuth[0] = 42
	if many.Azimuth[1] != 1 {
		t.Fatal("slice must not alias the original")
	}
	if got := one.slice(0, 1); !floats.Equal(got.Azimuth, one.Azimuth) {
		t.Fatal("broadcast arrays are kept as is")
	}
}

func TestGratingFlip(t *testing.T) {
	g := &Grating{}
	n := g.Transformation(0).ApplyVector(r3.Vector{Z: -1})
	if !vectorsEqual(n, r3.Vector{Z: 1}, 1e-12) {
		t.Fatalf("an unrotated grating must face +z, got %v", n)
	}
	f := &Filter{}
	n = f.Transformation(0).ApplyVector(r3.Vector{Z: -1})
	if !vectorsEqual(n, r3.Vector{Z: -1}, 1e-12) {
		t.Fatalf("an unrotated filter must face -z, got %v", n)
	}
}
