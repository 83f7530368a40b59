package esis

import (
	"fmt"
	"slices"
	"time"

	"github.com/golang/geo/r2"
)

// Teledyne CCD230-42 geometry, the sensor flown on every ESIS camera.
const (
	// DefaultWidthPixel is the pixel pitch in mm.
	DefaultWidthPixel = 15e-3
	// DefaultNumPixelX is the number of active pixels along the dispersion direction.
	DefaultNumPixelX = 2048
	// DefaultNumPixelY is the number of active pixels across the dispersion direction.
	DefaultNumPixelY = 1024
	// DefaultWidthPackage is the width of the ceramic package in mm.
	DefaultWidthPackage = 46.0
	// DefaultTemperature is the nominal operating temperature in °C.
	DefaultTemperature = -55.0
)

// Sensor models the CCD used to detect light.
type Sensor struct {
	WidthPixel   float64 // mm
	NumPixelX    int
	NumPixelY    int
	WidthPackage float64 // mm
	Temperature  float64 // °C
	// PositionImage is where the center of the field lands on the sensor for the target wavelength.
	PositionImage r2.Point
	Cylindrical
	Pose
}

// NewSensor returns a sensor with the CCD230 geometry.
func NewSensor() *Sensor {
	return &Sensor{
		WidthPixel:   DefaultWidthPixel,
		NumPixelX:    DefaultNumPixelX,
		NumPixelY:    DefaultNumPixelY,
		WidthPackage: DefaultWidthPackage,
		Temperature:  DefaultTemperature,
	}
}

// HalfWidthActive is half the size of the light-sensitive area.
func (s *Sensor) HalfWidthActive() r2.Point {
	return r2.Point{X: s.WidthPixel * float64(s.NumPixelX) / 2, Y: s.WidthPixel * float64(s.NumPixelY) / 2}
}

// Transformation returns the local-to-instrument transformation of the given channel.
func (s *Sensor) Transformation(channel int) Transform {
	return placedTransformation(s.Pose, s.Cylindrical, channel)
}

func (s *Sensor) String() string {
	return fmt.Sprintf("Sensor{%dx%d@%.4gmm T=%.1f°C r=%.3fmm channels=%d %s}", s.NumPixelX, s.NumPixelY, s.WidthPixel, s.Temperature, s.DistanceRadial, s.NumChannels(), s.Pose)
}

func (s *Sensor) clone() *Sensor {
	if s == nil {
		return nil
	}
	c := *s
	c.Cylindrical = s.Cylindrical.clone()
	return &c
}

// Camera wraps a sensor with the readout electronics of one camera per channel.
type Camera struct {
	// Sensor captures the light. If nil, NewSensor() is used.
	Sensor *Sensor
	// Gain converts DN to electrons, one value per readout tap.
	Gain []float64
	// TimedeltaSync is the synchronization error between the channels.
	TimedeltaSync time.Duration
	// TimedeltaExposure is the exposure length of each frame.
	TimedeltaExposure time.Duration
	// Channel holds the identifier of each channel.
	Channel []int
	// ChannelTrigger is the identifier, from Channel, of the channel triggering the others.
	ChannelTrigger int
}

// DefaultGain is the conversion factor of the MSFC cameras in electrons per DN.
const DefaultGain = 2.5

// NewCamera returns a camera with the default sensor and gain.
func NewCamera() *Camera {
	return &Camera{Sensor: NewSensor(), Gain: []float64{DefaultGain}}
}

// sensor returns the camera sensor, or a default one when unset. It never writes to c.
func (c *Camera) sensor() *Sensor {
	if c.Sensor == nil {
		return NewSensor()
	}
	return c.Sensor
}

// GainOf returns the gain of the given tap, broadcasting a single value.
func (c *Camera) GainOf(tap int) float64 {
	switch len(c.Gain) {
	case 0:
		return DefaultGain
	case 1:
		return c.Gain[0]
	default:
		return c.Gain[tap]
	}
}

// Electrons converts a signal in DN read from the given tap into electrons.
func (c *Camera) Electrons(dn float64, tap int) float64 {
	return dn * c.GainOf(tap)
}

// SensorSurface resolves the camera into the final surface of the system.
func (c *Camera) SensorSurface() ImagingSensor {
	s := c.sensor()
	return ImagingSensor{
		Surface: Surface{
			Name:               "sensor",
			Material:           SensorMaterial{Label: "e2v CCD230-42", Temperature: s.Temperature},
			Aperture:           RectangularAperture{HalfWidth: s.HalfWidthActive()},
			ApertureMechanical: RectangularAperture{HalfWidth: r2.Point{X: s.WidthPackage / 2, Y: s.WidthPackage / 2}},
			Transformations:    transformsPerChannel(s.NumChannels(), s.Transformation),
		},
		WidthPixel:        s.WidthPixel,
		NumPixelX:         s.NumPixelX,
		NumPixelY:         s.NumPixelY,
		TimedeltaExposure: c.TimedeltaExposure,
	}
}

// Surface implements the Element interface.
func (c *Camera) Surface() Surface {
	return c.SensorSurface().Surface
}

func (c *Camera) String() string {
	return fmt.Sprintf("Camera{%s gain=%v e/DN channels=%v trigger=%d sync=%s}", c.sensor(), c.Gain, c.Channel, c.ChannelTrigger, c.TimedeltaSync)
}

func (c *Camera) clone() *Camera {
	if c == nil {
		return nil
	}
	o := *c
	o.Sensor = c.Sensor.clone()
	o.Gain = slices.Clone(c.Gain)
	o.Channel = slices.Clone(c.Channel)
	return &o
}
