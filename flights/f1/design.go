// Package f1 holds the optical design of the first ESIS flight.
package f1

import (
	"math"
	"time"

	"github.com/esis-mission/esis"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// Lengths are in mm.
const (
	numFolds    = 8
	numChannels = 6

	focalLengthPrimary       = -1000.0
	radiusPrimaryClear       = 77.9
	radiusPrimaryMechanical  = 83.7
	radiusGrating            = 597.830
	errorRadiusGrating       = 0.4e-2
	widthGratingBorder       = 2.0
	widthGratingBorderInner  = 4.58
	distanceGratingPrimary   = 374.7
	distanceFilterGrating    = 1301.661998854058
	distanceSensorFilter     = 200.0
	distanceFrontAperture    = 500.0
	distanceRadialGrating    = 2.074999998438000e1
	distanceRadialFilter     = 95.9
	distanceRadialSensor     = 108.0
	zCentralObscuration      = -1404.270
	radiusFieldStopClear     = 1.82
	radiusFieldStopMechanism = 2.81
	errorDecenter            = 1.0
	errorGratingRoll         = 1.3e-2 // radians

	wavelengthDefault = 629.77 // Ne VII, Å
	numGridDefault    = 11
	channelTrigger    = 1
	timedeltaSync     = time.Millisecond
)

// angleChannel returns the azimuth of every channel: one per fold, starting half a fold before 0.
func angleChannel() []float64 {
	anglePerChannel := 2 * math.Pi / numFolds
	angles := esis.Linspace(0, numChannels*anglePerChannel, numChannels, false)
	for i := range angles {
		angles[i] -= anglePerChannel / 2
	}
	return angles
}

// radiusTuffet is where the edge of the tuffet, measured from the drawing, crosses the y axis.
func radiusTuffet() float64 {
	p1 := r2.Point{X: 2.54, Y: 37.1707}
	p2 := r2.Point{X: 24.4876, Y: 28.0797}
	d := p2.Sub(p1)
	slope := d.Y / d.X
	return p1.Y - slope*p1.X
}

// errorGratingZ combines the single-measurement and systematic errors of the grating position.
func errorGratingZ() float64 {
	single := 2.5e-5 * 1e3 // mm
	systematic := 5e-6 * 1e3
	return math.Sqrt(single*single/3 + systematic*systematic)
}

// DefaultGrid is the wavelength, field and pupil sampling used when none is given:
// the Ne VII line and 11×11 cell centers across the field and pupil.
func DefaultGrid() esis.Grid {
	return esis.Grid{
		Wavelength: []float64{wavelengthDefault},
		Normalized: false,
		Field:      esis.LinearGrid2D(-1, 1, numGridDefault, true),
		Pupil:      esis.LinearGrid2D(-1, 1, numGridDefault, true),
	}
}

// DesignFull is the final ESIS optical design prepared by Charles Kankelborg and Hans Courrier,
// with all six channels. A nil grid selects DefaultGrid.
func DesignFull(grid *esis.Grid) *esis.Instrument {
	cosPerChannel := math.Cos(math.Pi / numFolds)
	channels := angleChannel()

	primary := &esis.PrimaryMirror{
		Sag:         esis.ParabolicSag{FocalLength: focalLengthPrimary},
		NumFolds:    numFolds,
		WidthClear:  2 * radiusPrimaryClear * cosPerChannel,
		WidthBorder: (radiusPrimaryMechanical - radiusPrimaryClear) * cosPerChannel,
		Material:    MaterialPrimary(),
	}

	zGrating := focalLengthPrimary - distanceGratingPrimary
	grating := &esis.Grating{
		AngleInput:       esis.Deg2rad(1.301),
		AngleOutput:      esis.Deg2rad(8.057),
		Sag:              esis.SphericalSag{Radius: -radiusGrating},
		Material:         MaterialGrating(),
		Rulings:          RulingsDesign(),
		NumFolds:         numFolds,
		HalfwidthInner:   13.02 - widthGratingBorderInner,
		HalfwidthOuter:   10.49 - widthGratingBorder,
		WidthBorder:      widthGratingBorder,
		WidthBorderInner: widthGratingBorderInner,
		Clearance:        1.25,
		Cylindrical:      esis.Cylindrical{DistanceRadial: distanceRadialGrating, Azimuth: clone(channels)},
		Pose: esis.Pose{
			Translation: r3.Vector{Z: zGrating},
			Yaw:         esis.Deg2rad(-4.469567242792327),
		},
	}

	zFilter := zGrating + distanceFilterGrating
	filter := &esis.Filter{
		Material:    MaterialFilter(),
		RadiusClear: 15,
		Cylindrical: esis.Cylindrical{DistanceRadial: distanceRadialFilter, Azimuth: clone(channels)},
		Pose: esis.Pose{
			Translation: r3.Vector{Z: zFilter},
			Yaw:         esis.Deg2rad(-3.45),
			Roll:        esis.Deg2rad(45),
		},
	}

	sensor := esis.NewSensor()
	sensor.Temperature = -55
	sensor.Cylindrical = esis.Cylindrical{DistanceRadial: distanceRadialSensor, Azimuth: clone(channels)}
	sensor.Pose = esis.Pose{
		Translation: r3.Vector{Z: zFilter + distanceSensorFilter},
		Yaw:         esis.Deg2rad(-12.252),
	}

	ids := make([]int, numChannels)
	for i := range ids {
		ids[i] = i
	}
	camera := &esis.Camera{
		Sensor:         sensor,
		Gain:           []float64{esis.DefaultGain},
		Channel:        ids,
		ChannelTrigger: channelTrigger,
		TimedeltaSync:  timedeltaSync,
	}

	g := DefaultGrid()
	if grid != nil {
		g = *grid
	}
	return &esis.Instrument{
		Name:          "ESIS 1 final design (all channels)",
		AxisChannel:   "channel",
		FrontAperture: &esis.FrontAperture{Translation: r3.Vector{Z: focalLengthPrimary - distanceFrontAperture}},
		CentralObscuration: &esis.CentralObscuration{
			NumFolds:         numFolds,
			Halfwidth:        radiusTuffet() * cosPerChannel,
			RemoveLastVertex: true,
			Translation:      r3.Vector{Z: zCentralObscuration},
		},
		PrimaryMirror: primary,
		FieldStop: &esis.FieldStop{
			NumFolds:         numFolds,
			RadiusClear:      radiusFieldStopClear,
			RadiusMechanical: radiusFieldStopMechanism,
			Translation:      r3.Vector{X: primary.Translation.X, Y: primary.Translation.Y, Z: focalLengthPrimary},
		},
		Grating:      grating,
		Filter:       filter,
		Camera:       camera,
		Grid:         g,
		Requirements: Requirements(),
	}
}

// Design is the final ESIS optical design restricted to the four channels which flew, 1 through 4.
func Design(grid *esis.Grid) *esis.Instrument {
	inst, err := DesignFull(grid).SliceChannels(1, 5)
	if err != nil {
		panic(err)
	}
	inst.Name = "ESIS 1 final design"
	return inst
}

// DesignSingle is the first active channel of Design, rolled so that it lies along the x axis.
// Since the system is rotationally symmetric, a single channel is often enough.
func DesignSingle(grid *esis.Grid) *esis.Instrument {
	inst, err := Design(grid).SelectChannel(0)
	if err != nil {
		panic(err)
	}
	inst.Name = "ESIS 1 final design (single channel)"
	inst.Roll = -inst.Grating.AzimuthOf(0)
	return inst
}

// Requirements is the optical performance of ESIS required for mission success.
func Requirements() *esis.Requirements {
	return &esis.Requirements{
		ResolutionSpatial:  1.5,
		ResolutionSpectral: 18,
		FOV:                esis.Deg2rad(10.0 / 60),
		SNR:                17.3,
		Cadence:            15 * time.Second,
		LengthObservation:  150 * time.Second,
	}
}

func clone(a []float64) []float64 {
	return append([]float64(nil), a...)
}
