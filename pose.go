package esis

import (
	"fmt"
	"slices"

	"github.com/golang/geo/r3"
)

// Pose is the position and orientation of an element with respect to the instrument.
// The rotations are applied pitch, then yaw, then roll, all after the translation.
type Pose struct {
	Translation r3.Vector // mm
	Pitch       float64   // rotation about x, radians
	Yaw         float64   // rotation about y, radians
	Roll        float64   // rotation about z, radians
}

// Transformation returns Translation∘Rx(pitch)∘Ry(yaw)∘Rz(roll).
func (p Pose) Transformation() Transform {
	return Chain(Translation(p.Translation), p.orientation())
}

func (p Pose) orientation() Transform {
	return Chain(RotationX(p.Pitch), RotationY(p.Yaw), RotationZ(p.Roll))
}

func (p Pose) String() string {
	return fmt.Sprintf("translation=%v pitch=%.4f° yaw=%.4f° roll=%.4f°", p.Translation, Rad2deg(p.Pitch), Rad2deg(p.Yaw), Rad2deg(p.Roll))
}

// Cylindrical places an element around the axis of symmetry, one azimuth per channel.
type Cylindrical struct {
	DistanceRadial float64   // distance from the axis of symmetry, mm
	Azimuth        []float64 // angle about the axis of symmetry per channel, radians
}

// NumChannels returns the length of the channel axis; an empty azimuth counts as one channel at 0.
func (c Cylindrical) NumChannels() int {
	if len(c.Azimuth) == 0 {
		return 1
	}
	return len(c.Azimuth)
}

// AzimuthOf returns the azimuth of the given channel, broadcasting a single value.
func (c Cylindrical) AzimuthOf(channel int) float64 {
	switch len(c.Azimuth) {
	case 0:
		return 0
	case 1:
		return c.Azimuth[0]
	default:
		return c.Azimuth[channel]
	}
}

// Offset is the Cartesian offset contributed by this placement for the given channel.
func (c Cylindrical) Offset(channel int) r3.Vector {
	return Cylindrical2Cartesian(c.DistanceRadial, c.AzimuthOf(channel))
}

// Transformation returns Rz(azimuth)∘Tx(distance_radial) for the given channel.
func (c Cylindrical) Transformation(channel int) Transform {
	return RotationZ(c.AzimuthOf(channel)).Compose(Translation(r3.Vector{X: c.DistanceRadial}))
}

func (c Cylindrical) slice(lo, hi int) Cylindrical {
	if len(c.Azimuth) <= 1 {
		return c.clone()
	}
	return Cylindrical{c.DistanceRadial, slices.Clone(c.Azimuth[lo:hi])}
}

func (c Cylindrical) clone() Cylindrical {
	return Cylindrical{c.DistanceRadial, slices.Clone(c.Azimuth)}
}

// placedTransformation is the shared chain of every cylindrically placed element:
// T(translation)∘Rz(az)∘Tx(r)∘Rx(pitch)∘Ry(yaw)∘Rz(roll).
func placedTransformation(p Pose, c Cylindrical, channel int) Transform {
	return Chain(Translation(p.Translation), c.Transformation(channel), p.orientation())
}
