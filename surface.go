package esis

import (
	"fmt"
	"time"
)

// Surface is the flat description of an optical element handed to a ray tracer:
// shape, material and pose.
type Surface struct {
	Name               string
	Sag                Sag      // nil is a flat plane
	Material           Material // nil is a fully transparent surface
	Aperture           Aperture // nil is unrestricted
	ApertureMechanical Aperture
	Rulings            Rulings
	IsFieldStop        bool
	IsPupilStop        bool
	// Transformations holds one transformation per channel, or a single one
	// broadcast over every channel.
	Transformations []Transform
}

// NumChannels returns the length of the channel axis of this surface.
func (s Surface) NumChannels() int {
	return len(s.Transformations)
}

// Transformation returns the local-to-instrument transformation of the given channel.
func (s Surface) Transformation(channel int) Transform {
	switch len(s.Transformations) {
	case 0:
		return Identity()
	case 1:
		return s.Transformations[0]
	default:
		return s.Transformations[channel]
	}
}

// SagOrFlat returns the sag, defaulting to a plane.
func (s Surface) SagOrFlat() Sag {
	if s.Sag == nil {
		return NoSag{}
	}
	return s.Sag
}

func (s Surface) String() string {
	aperture := "unrestricted"
	if s.Aperture != nil {
		aperture = s.Aperture.Kind()
	}
	return fmt.Sprintf("%s: sag=%s aperture=%s channels=%d", s.Name, s.SagOrFlat(), aperture, s.NumChannels())
}

// ImagingSensor is the final surface of a system: a pixelated detector.
type ImagingSensor struct {
	Surface
	WidthPixel        float64 // mm
	NumPixelX         int
	NumPixelY         int
	TimedeltaExposure time.Duration
}

func (s ImagingSensor) String() string {
	return fmt.Sprintf("%s pixels=%dx%d@%.4gmm exposure=%s", s.Surface, s.NumPixelX, s.NumPixelY, s.WidthPixel, s.TimedeltaExposure)
}

// transformsPerChannel evaluates f for every channel of n.
func transformsPerChannel(n int, f func(channel int) Transform) []Transform {
	ts := make([]Transform, n)
	for i := range ts {
		ts[i] = f(i)
	}
	return ts
}
