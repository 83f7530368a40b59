package esis

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-kit/log/level"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/floats"
)

// Instrument is the composition of the optical elements of ESIS and of a default grid of
// input rays. Elements are exclusively owned by the instrument; after mutating any of them,
// call Invalidate so that the next call to System recomposes the optical system.
type Instrument struct {
	Name        string
	AxisChannel string // name of the logical axis along which the channel changes

	FrontAperture      *FrontAperture
	CentralObscuration *CentralObscuration
	PrimaryMirror      *PrimaryMirror
	FieldStop          *FieldStop
	Grating            *Grating
	Filter             *Filter
	Camera             *Camera

	Grid         Grid
	Pitch        float64 // radians
	Yaw          float64 // radians
	Roll         float64 // radians
	Requirements *Requirements
	// WireNum is the number of samples per aperture edge used for the derived angles.
	// Zero means DefaultWireNum.
	WireNum int

	system *System
}

// System is the sequential optical system resolved from an instrument: the surfaces
// in the order light traverses them, followed by the sensor.
type System struct {
	Name           string
	Surfaces       []Surface
	Sensor         ImagingSensor
	Grid           Grid
	Transformation Transform
	numChannels    int
}

// NumChannels returns the length of the channel axis.
func (s *System) NumChannels() int {
	return s.numChannels
}

// AbsoluteTransformation returns the local-to-world transformation of a surface for a channel.
func (s *System) AbsoluteTransformation(surface Surface, channel int) Transform {
	return s.Transformation.Compose(surface.Transformation(channel))
}

// SurfaceNamed returns the surface of the given name, the sensor included.
func (s *System) SurfaceNamed(name string) (Surface, bool) {
	for _, surf := range s.Surfaces {
		if surf.Name == name {
			return surf, true
		}
	}
	if s.Sensor.Name == name {
		return s.Sensor.Surface, true
	}
	return Surface{}, false
}

func (s *System) String() string {
	names := make([]string, 0, len(s.Surfaces)+1)
	for _, surf := range s.Surfaces {
		names = append(names, surf.Name)
	}
	names = append(names, s.Sensor.Name)
	return fmt.Sprintf("%s: %s (%d channels, %d rays)", s.Name, strings.Join(names, " → "), s.numChannels, s.Grid.Size())
}

// Transformation returns the orientation of the whole instrument: Rx(pitch)∘Ry(yaw)∘Rz(roll).
func (i *Instrument) Transformation() Transform {
	return Pose{Pitch: i.Pitch, Yaw: i.Yaw, Roll: i.Roll}.Transformation()
}

// Elements returns the optical elements in the order light traverses them.
// Missing elements are nil interfaces.
func (i *Instrument) Elements() []Element {
	elements := make([]Element, 7)
	if i.FrontAperture != nil {
		elements[0] = i.FrontAperture
	}
	if i.CentralObscuration != nil {
		elements[1] = i.CentralObscuration
	}
	if i.PrimaryMirror != nil {
		elements[2] = i.PrimaryMirror
	}
	if i.FieldStop != nil {
		elements[3] = i.FieldStop
	}
	if i.Grating != nil {
		elements[4] = i.Grating
	}
	if i.Filter != nil {
		elements[5] = i.Filter
	}
	if i.Camera != nil {
		elements[6] = i.Camera
	}
	return elements
}

var elementNames = []string{"front aperture", "central obscuration", "primary mirror", "field stop", "grating", "filter", "camera"}

// Validate checks that the instrument is complete and that every per-channel array
// agrees on the number of channels.
func (i *Instrument) Validate() error {
	var missing []string
	for k, e := range i.Elements() {
		if e == nil {
			missing = append(missing, elementNames[k])
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingElement, strings.Join(missing, ", "))
	}
	_, err := i.channelCount()
	return err
}

// NumChannels returns the length of the channel axis, or an error if the arrays disagree.
func (i *Instrument) NumChannels() (int, error) {
	return i.channelCount()
}

// channelArrays names every per-channel array of an instrument.
var channelArrays = []string{"grating.azimuth", "filter.azimuth", "camera.channel", "camera.sensor.azimuth"}

// channelLengths lists the per-channel arrays of the instrument and their lengths.
func (i *Instrument) channelLengths() map[string]int {
	lengths := make(map[string]int)
	if i.Grating != nil {
		lengths["grating.azimuth"] = len(i.Grating.Azimuth)
	}
	if i.Filter != nil {
		lengths["filter.azimuth"] = len(i.Filter.Azimuth)
	}
	if i.Camera != nil {
		lengths["camera.channel"] = len(i.Camera.Channel)
		lengths["camera.sensor.azimuth"] = len(i.Camera.sensor().Azimuth)
	}
	return lengths
}

// channelCount broadcasts arrays of length 0 or 1 against the others.
func (i *Instrument) channelCount() (int, error) {
	n := 1
	lengths := i.channelLengths()
	for _, name := range channelArrays {
		l, ok := lengths[name]
		if !ok || l <= 1 {
			continue
		}
		if n > 1 && l != n {
			return 0, fmt.Errorf("%w: %s has %d channels, expected %d", ErrChannelMismatch, name, l, n)
		}
		n = l
	}
	return n, nil
}

// Compose resolves an instrument into its sequential optical system without caching.
func Compose(i *Instrument) (*System, error) {
	if err := i.Validate(); err != nil {
		return nil, err
	}
	if err := i.Grid.Validate(); err != nil {
		return nil, err
	}
	n, _ := i.channelCount()
	surfaces := make([]Surface, 0, 6)
	for _, e := range i.Elements()[:6] {
		surfaces = append(surfaces, e.Surface())
	}
	s := &System{
		Name:           i.Name,
		Surfaces:       surfaces,
		Sensor:         i.Camera.SensorSurface(),
		Grid:           i.Grid,
		Transformation: i.Transformation(),
		numChannels:    n,
	}
	level.Debug(pkgLogger()).Log("msg", "composed system", "instrument", i.Name, "surfaces", len(surfaces), "channels", n, "rays", i.Grid.Size())
	return s, nil
}

// System returns the sequential optical system, composing it on first access.
// The result is cached until Invalidate is called.
func (i *Instrument) System() (*System, error) {
	if i.system != nil {
		return i.system, nil
	}
	s, err := Compose(i)
	if err != nil {
		return nil, err
	}
	i.system = s
	return s, nil
}

// Invalidate drops the cached system; call it after mutating any element.
func (i *Instrument) Invalidate() {
	i.system = nil
}

func (i *Instrument) wireNum() int {
	if i.WireNum > 0 {
		return i.WireNum
	}
	return DefaultWireNum
}

// gratingAxes returns the surface normal and ruling direction at the grating vertex.
func (i *Instrument) gratingAxes() (normalSurface, normalRulings r3.Vector) {
	var origin r3.Vector
	normalSurface = i.Grating.Sag.Normal(origin)
	normalRulings = unit(i.Grating.Rulings.Spacing(origin, normalSurface))
	return
}

// anglesFromGrating returns, per channel, the angle between the grating normal and the
// direction towards every point of the wire of another surface.
func (i *Instrument) anglesFromGrating(other Surface) ([][]float64, error) {
	if err := i.Validate(); err != nil {
		return nil, err
	}
	if i.Grating.Rulings == nil {
		return nil, fmt.Errorf("%w: grating has no rulings", ErrConfig)
	}
	n, _ := i.channelCount()
	normalSurface, normalRulings := i.gratingAxes()
	wire := other.Aperture.Wire(i.wireNum())
	angles := make([][]float64, n)
	for ch := range angles {
		t := RelativeTransform(i.Grating.Transformation(ch), other.Transformation(ch))
		local := t.ApplyAll(wire)
		angles[ch] = make([]float64, len(local))
		for k, p := range local {
			angles[ch][k] = math.Atan2(p.Dot(normalRulings), p.Dot(normalSurface))
		}
	}
	return angles, nil
}

// AngleGratingInput returns, per channel and per point of the field stop wire, the angle
// between the grating normal and the direction of the incident light (radians).
func (i *Instrument) AngleGratingInput() ([][]float64, error) {
	if i.FieldStop == nil {
		return nil, fmt.Errorf("%w: field stop", ErrMissingElement)
	}
	return i.anglesFromGrating(i.FieldStop.Surface())
}

// AngleGratingOutput returns, per channel and per point of the sensor wire, the angle
// between the grating normal and the direction of the diffracted light (radians).
func (i *Instrument) AngleGratingOutput() ([][]float64, error) {
	if i.Camera == nil {
		return nil, fmt.Errorf("%w: camera", ErrMissingElement)
	}
	return i.anglesFromGrating(i.Camera.Surface())
}

// wavelengthTestGrid evaluates the grating equation m·λ = d·(sin α + sin β) over every
// pair of input and output wire points, per channel. Wavelengths are in Å.
func (i *Instrument) wavelengthTestGrid() ([][]float64, error) {
	input, err := i.AngleGratingInput()
	if err != nil {
		return nil, err
	}
	output, err := i.AngleGratingOutput()
	if err != nil {
		return nil, err
	}
	normalSurface, _ := i.gratingAxes()
	d := i.Grating.Rulings.Spacing(r3.Vector{}, normalSurface).Norm() / mmPerAngstrom
	m := float64(i.Grating.Rulings.DiffractionOrder())
	grid := make([][]float64, len(input))
	for ch := range grid {
		grid[ch] = make([]float64, 0, len(input[ch])*len(output[ch]))
		for _, α := range input[ch] {
			for _, β := range output[ch] {
				grid[ch] = append(grid[ch], math.Abs((math.Sin(α)+math.Sin(β))*d/m))
			}
		}
	}
	return grid, nil
}

// WavelengthMin returns the minimum wavelength permitted through the system, per channel (Å).
func (i *Instrument) WavelengthMin() ([]float64, error) {
	return i.reduceWavelength(floats.Min)
}

// WavelengthMax returns the maximum wavelength permitted through the system, per channel (Å).
func (i *Instrument) WavelengthMax() ([]float64, error) {
	return i.reduceWavelength(floats.Max)
}

func (i *Instrument) reduceWavelength(reduce func([]float64) float64) ([]float64, error) {
	grid, err := i.wavelengthTestGrid()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(grid))
	for ch, w := range grid {
		out[ch] = reduce(w)
	}
	return out, nil
}

// WavelengthPhysical returns the default wavelength grid in Å for every channel,
// mapping a normalized grid onto the passband of that channel.
func (i *Instrument) WavelengthPhysical() ([][]float64, error) {
	if !i.Grid.Normalized {
		n, err := i.channelCount()
		if err != nil {
			return nil, err
		}
		out := make([][]float64, n)
		for ch := range out {
			out[ch] = i.Grid.WavelengthPhysical(0, 0)
		}
		return out, nil
	}
	lo, err := i.WavelengthMin()
	if err != nil {
		return nil, err
	}
	hi, err := i.WavelengthMax()
	if err != nil {
		return nil, err
	}
	out := make([][]float64, len(lo))
	for ch := range out {
		out[ch] = i.Grid.WavelengthPhysical(lo[ch], hi[ch])
	}
	return out, nil
}

// Copy returns a deep copy of the instrument, without the cached system.
func (i *Instrument) Copy() *Instrument {
	c := *i
	c.FrontAperture = i.FrontAperture.clone()
	c.CentralObscuration = i.CentralObscuration.clone()
	c.PrimaryMirror = i.PrimaryMirror.clone()
	c.FieldStop = i.FieldStop.clone()
	c.Grating = i.Grating.clone()
	c.Filter = i.Filter.clone()
	c.Camera = i.Camera.clone()
	c.Grid = i.Grid.clone()
	if i.Requirements != nil {
		r := *i.Requirements
		c.Requirements = &r
	}
	c.system = nil
	return &c
}

func (i *Instrument) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Instrument %q (pitch=%.4f° yaw=%.4f° roll=%.4f°)\n", i.Name, Rad2deg(i.Pitch), Rad2deg(i.Yaw), Rad2deg(i.Roll))
	for k, e := range i.Elements() {
		if e == nil {
			fmt.Fprintf(&b, "  %s: <nil>\n", elementNames[k])
			continue
		}
		fmt.Fprintf(&b, "  %s\n", e)
	}
	if i.Requirements != nil {
		fmt.Fprintf(&b, "  %s\n", i.Requirements)
	}
	return b.String()
}
