package esis

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

var (
	cfgOnce sync.Once
	config  = _esisconfig{}
)

// _esisconfig is a "hidden" struct, just use `esisConfig`.
type _esisconfig struct {
	OutputDir string
	DesignDir string
	LogLevel  string
}

// esisConfig returns the esis configuration, read from `$ESIS_CONFIG/conf.toml` on first use.
// Without ESIS_CONFIG, everything defaults to the working directory.
func esisConfig() _esisconfig {
	cfgOnce.Do(func() {
		config = _esisconfig{OutputDir: ".", DesignDir: ".", LogLevel: "info"}
		confPath := os.Getenv("ESIS_CONFIG")
		if confPath == "" {
			return
		}
		v := viper.New()
		v.SetConfigName("conf")
		v.AddConfigPath(confPath)
		if err := v.ReadInConfig(); err != nil {
			panic(fmt.Errorf("%s/conf.toml not found", confPath))
		}
		if dir := v.GetString("general.output_path"); dir != "" {
			config.OutputDir = dir
		}
		if dir := v.GetString("general.design_path"); dir != "" {
			config.DesignDir = dir
		}
		if lvl := v.GetString("general.log_level"); lvl != "" {
			config.LogLevel = lvl
		}
	})
	return config
}

// DesignPath returns the path of a design file in the configured design directory.
func DesignPath(name string) string {
	if filepath.Ext(name) != ".toml" {
		name += ".toml"
	}
	return filepath.Join(esisConfig().DesignDir, name)
}

// LogLevel returns the configured log level.
func LogLevel() string {
	return esisConfig().LogLevel
}

// LoadInstrument reads an instrument from a TOML (or any viper-supported) design file.
// Lengths are in mm and angles in degrees.
func LoadInstrument(path string) (*Instrument, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfig, path, err)
	}
	return InstrumentFromViper(v)
}

// InstrumentFromViper builds an instrument from an already loaded configuration.
// Missing element sections leave the corresponding element nil.
func InstrumentFromViper(v *viper.Viper) (*Instrument, error) {
	r := confReader{v: v}
	inst := &Instrument{
		Name:        v.GetString("instrument.name"),
		AxisChannel: v.GetString("instrument.axis_channel"),
		Pitch:       r.angle("instrument.pitch"),
		Yaw:         r.angle("instrument.yaw"),
		Roll:        r.angle("instrument.roll"),
		WireNum:     v.GetInt("instrument.wire_num"),
	}
	if inst.Name == "" {
		inst.Name = "ESIS"
	}
	if inst.AxisChannel == "" {
		inst.AxisChannel = "channel"
	}
	if v.IsSet("front_aperture") {
		inst.FrontAperture = &FrontAperture{Translation: r.vector("front_aperture.translation")}
	}
	if v.IsSet("central_obscuration") {
		inst.CentralObscuration = &CentralObscuration{
			NumFolds:         v.GetInt("central_obscuration.num_folds"),
			Halfwidth:        v.GetFloat64("central_obscuration.halfwidth"),
			RemoveLastVertex: v.GetBool("central_obscuration.remove_last_vertex"),
			AngleOffset:      r.angle("central_obscuration.angle_offset"),
			Translation:      r.vector("central_obscuration.translation"),
		}
	}
	if v.IsSet("primary_mirror") {
		inst.PrimaryMirror = &PrimaryMirror{
			Sag:         ParabolicSag{FocalLength: v.GetFloat64("primary_mirror.focal_length")},
			NumFolds:    v.GetInt("primary_mirror.num_folds"),
			WidthClear:  v.GetFloat64("primary_mirror.width_clear"),
			WidthBorder: v.GetFloat64("primary_mirror.width_border"),
			Material:    r.mirror("primary_mirror.material"),
			Pose:        r.pose("primary_mirror"),
		}
	}
	if v.IsSet("field_stop") {
		inst.FieldStop = &FieldStop{
			NumFolds:         v.GetInt("field_stop.num_folds"),
			RadiusClear:      v.GetFloat64("field_stop.radius_clear"),
			RadiusMechanical: v.GetFloat64("field_stop.radius_mechanical"),
			Translation:      r.vector("field_stop.translation"),
		}
	}
	if v.IsSet("grating") {
		inst.Grating = &Grating{
			SerialNumber:        v.GetString("grating.serial_number"),
			ManufacturingNumber: v.GetString("grating.manufacturing_number"),
			AngleInput:          r.angle("grating.angle_input"),
			AngleOutput:         r.angle("grating.angle_output"),
			Sag:                 SphericalSag{Radius: v.GetFloat64("grating.radius")},
			Material:            r.mirror("grating.material"),
			Rulings:             r.rulings("grating.rulings"),
			NumFolds:            v.GetInt("grating.num_folds"),
			HalfwidthInner:      v.GetFloat64("grating.halfwidth_inner"),
			HalfwidthOuter:      v.GetFloat64("grating.halfwidth_outer"),
			WidthBorder:         v.GetFloat64("grating.width_border"),
			WidthBorderInner:    v.GetFloat64("grating.width_border_inner"),
			Clearance:           v.GetFloat64("grating.clearance"),
			Cylindrical:         r.cylindrical("grating"),
			Pose:                r.pose("grating"),
		}
	}
	if v.IsSet("filter") {
		inst.Filter = &Filter{
			RadiusClear: v.GetFloat64("filter.radius_clear"),
			WidthBorder: v.GetFloat64("filter.width_border"),
			Cylindrical: r.cylindrical("filter"),
			Pose:        r.pose("filter"),
		}
		if m := v.GetString("filter.material"); m != "" {
			inst.Filter.Material = ThinFilmFilter{
				Layer:        Layer{Material: m, Thickness: v.GetFloat64("filter.thickness")},
				MeshMaterial: v.GetString("filter.mesh_material"),
			}
		}
	}
	if v.IsSet("camera") || v.IsSet("sensor") {
		cam := NewCamera()
		s := cam.Sensor
		if v.IsSet("sensor.width_pixel") {
			s.WidthPixel = v.GetFloat64("sensor.width_pixel")
		}
		if v.IsSet("sensor.num_pixel") {
			n := v.GetIntSlice("sensor.num_pixel")
			if len(n) != 2 {
				return nil, fmt.Errorf("%w: sensor.num_pixel needs 2 values, got %v", ErrConfig, n)
			}
			s.NumPixelX, s.NumPixelY = n[0], n[1]
		}
		if v.IsSet("sensor.temperature") {
			s.Temperature = v.GetFloat64("sensor.temperature")
		}
		if v.IsSet("sensor.position_image") {
			p := r.floats("sensor.position_image")
			if len(p) != 2 {
				return nil, fmt.Errorf("%w: sensor.position_image needs 2 values, got %v", ErrConfig, p)
			}
			s.PositionImage = r2.Point{X: p[0], Y: p[1]}
		}
		s.Cylindrical = r.cylindrical("sensor")
		s.Pose = r.pose("sensor")
		if v.IsSet("camera.gain") {
			cam.Gain = r.floats("camera.gain")
		}
		cam.TimedeltaSync = v.GetDuration("camera.timedelta_sync")
		cam.TimedeltaExposure = v.GetDuration("camera.timedelta_exposure")
		cam.Channel = v.GetIntSlice("camera.channel")
		cam.ChannelTrigger = v.GetInt("camera.channel_trigger")
		inst.Camera = cam
	}
	if v.IsSet("requirements") {
		inst.Requirements = &Requirements{
			ResolutionSpatial:  v.GetFloat64("requirements.resolution_spatial"),
			ResolutionSpectral: v.GetFloat64("requirements.resolution_spectral"),
			FOV:                Deg2rad(v.GetFloat64("requirements.fov") / 60),
			SNR:                v.GetFloat64("requirements.snr"),
			Cadence:            v.GetDuration("requirements.cadence"),
			LengthObservation:  v.GetDuration("requirements.length_observation"),
		}
	}
	grid, err := r.grid("grid")
	if err != nil {
		return nil, err
	}
	inst.Grid = grid
	if r.err != nil {
		return nil, r.err
	}
	return inst, nil
}

// confReader reads typed values, keeping the first error.
type confReader struct {
	v   *viper.Viper
	err error
}

func (r *confReader) fail(format string, args ...interface{}) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: "+format, append([]interface{}{ErrConfig}, args...)...)
	}
}

// floats reads a list of numbers; TOML integers and floats are both accepted.
func (r *confReader) floats(key string) []float64 {
	if !r.v.IsSet(key) {
		return nil
	}
	items, err := cast.ToSliceE(r.v.Get(key))
	if err != nil {
		r.fail("%s is not a list: %v", key, err)
		return nil
	}
	out := make([]float64, len(items))
	for i, item := range items {
		if out[i], err = cast.ToFloat64E(item); err != nil {
			r.fail("%s[%d]: %v", key, i, err)
			return nil
		}
	}
	return out
}

// angle reads a value in degrees and returns it in radians.
func (r *confReader) angle(key string) float64 {
	return Deg2rad(r.v.GetFloat64(key))
}

func (r *confReader) vector(key string) r3.Vector {
	if !r.v.IsSet(key) {
		return r3.Vector{}
	}
	xyz := r.floats(key)
	if len(xyz) != 3 {
		r.fail("%s needs 3 values, got %v", key, xyz)
		return r3.Vector{}
	}
	return r3.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]}
}

func (r *confReader) pose(prefix string) Pose {
	return Pose{
		Translation: r.vector(prefix + ".translation"),
		Pitch:       r.angle(prefix + ".pitch"),
		Yaw:         r.angle(prefix + ".yaw"),
		Roll:        r.angle(prefix + ".roll"),
	}
}

func (r *confReader) cylindrical(prefix string) Cylindrical {
	return Cylindrical{
		DistanceRadial: r.v.GetFloat64(prefix + ".distance_radial"),
		Azimuth:        Deg2radAll(r.floats(prefix + ".azimuth")),
	}
}

func (r *confReader) mirror(key string) Material {
	switch name := r.v.GetString(key); name {
	case "":
		return nil
	case "mirror":
		return Mirror{}
	default:
		return MultilayerMirror{Label: name}
	}
}

func (r *confReader) rulings(prefix string) Rulings {
	if !r.v.IsSet(prefix) {
		return nil
	}
	order := r.v.GetInt(prefix + ".order")
	switch kind := r.v.GetString(prefix + ".kind"); kind {
	case "", "constant":
		return ConstantRulings{Period: r.v.GetFloat64(prefix + ".spacing"), Order: order}
	case "sawtooth":
		return SawtoothRulings{Period: r.v.GetFloat64(prefix + ".spacing"), Depth: r.v.GetFloat64(prefix + ".depth"), Order: order}
	case "polynomial":
		return PolynomialRulings{Coefficients: r.floats(prefix + ".coefficients"), Order: order}
	default:
		r.fail("unknown rulings kind %q", kind)
		return nil
	}
}

func (r *confReader) grid(prefix string) (Grid, error) {
	numField, numPupil := r.v.GetInt(prefix+".num_field"), r.v.GetInt(prefix+".num_pupil")
	if numField == 0 {
		numField = 1
	}
	if numPupil == 0 {
		numPupil = 1
	}
	centers := r.v.GetBool(prefix + ".centers")
	g := Grid{
		Wavelength: r.floats(prefix + ".wavelength"),
		Normalized: !r.v.GetBool(prefix + ".physical"),
		Field:      LinearGrid2D(-1, 1, numField, centers),
		Pupil:      LinearGrid2D(-1, 1, numPupil, centers),
	}
	if numField == 1 {
		g.Field = []r2.Point{{}}
	}
	if numPupil == 1 {
		g.Pupil = []r2.Point{{}}
	}
	return g, g.Validate()
}
