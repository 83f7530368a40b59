package esis

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-kit/log/level"
	"github.com/golang/geo/r3"
	"gopkg.in/yaml.v3"
)

// Catalog is the YAML description of a composed system, for diagnostic tools.
type Catalog struct {
	Version  string            `yaml:"version"`
	Name     string            `yaml:"name"`
	Channels int               `yaml:"channels"`
	Rays     int               `yaml:"rays"`
	Surfaces []CatalogSurface  `yaml:"surfaces"`
	Passband []CatalogPassband `yaml:"passband,omitempty"`
}

func (c *Catalog) String() string {
	return c.Name + "(" + c.Version + ")"
}

// CatalogSurface describes one surface of the catalog.
type CatalogSurface struct {
	Name               string           `yaml:"name"`
	Sag                string           `yaml:"sag"`
	Material           string           `yaml:"material,omitempty"`
	Rulings            string           `yaml:"rulings,omitempty"`
	Aperture           *CatalogAperture `yaml:"aperture,omitempty"`
	ApertureMechanical *CatalogAperture `yaml:"aperture_mechanical,omitempty"`
	Poses              []CatalogPose    `yaml:"poses"`
}

// CatalogAperture is the shape and corners of an aperture in the local frame (mm).
type CatalogAperture struct {
	Kind     string       `yaml:"kind"`
	Vertices [][3]float64 `yaml:"vertices,omitempty,flow"`
}

// CatalogPose is where a surface lies for one channel, in instrument coordinates (mm).
type CatalogPose struct {
	Channel int        `yaml:"channel"`
	Origin  [3]float64 `yaml:"origin,flow"`
	Normal  [3]float64 `yaml:"normal,flow"`
}

// CatalogPassband is the wavelength range of one channel (Å).
type CatalogPassband struct {
	Channel int     `yaml:"channel"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
}

func vec3(v r3.Vector) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func catalogAperture(a Aperture) *CatalogAperture {
	if a == nil {
		return nil
	}
	c := &CatalogAperture{Kind: a.Kind()}
	for _, v := range a.Vertices() {
		c.Vertices = append(c.Vertices, vec3(v))
	}
	return c
}

func catalogSurface(s *System, surf Surface) CatalogSurface {
	c := CatalogSurface{
		Name:               surf.Name,
		Sag:                surf.SagOrFlat().String(),
		Aperture:           catalogAperture(surf.Aperture),
		ApertureMechanical: catalogAperture(surf.ApertureMechanical),
	}
	if surf.Material != nil {
		c.Material = surf.Material.Name()
	}
	if surf.Rulings != nil {
		c.Rulings = surf.Rulings.String()
	}
	normal := surf.SagOrFlat().Normal(r3.Vector{})
	for ch := 0; ch < s.NumChannels(); ch++ {
		t := s.AbsoluteTransformation(surf, ch)
		c.Poses = append(c.Poses, CatalogPose{ch, vec3(t.Offset()), vec3(t.ApplyVector(normal))})
	}
	return c
}

// NewCatalog builds the catalog of an instrument. The passband is included when the
// grating has rulings.
func NewCatalog(inst *Instrument) (*Catalog, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	s, err := inst.System()
	if err != nil {
		return nil, err
	}
	c := &Catalog{Version: "1.0", Name: s.Name, Channels: s.NumChannels(), Rays: s.Grid.Size()}
	for _, surf := range s.Surfaces {
		c.Surfaces = append(c.Surfaces, catalogSurface(s, surf))
	}
	c.Surfaces = append(c.Surfaces, catalogSurface(s, s.Sensor.Surface))
	if inst.Grating.Rulings != nil {
		lo, err := inst.WavelengthMin()
		if err != nil {
			return nil, err
		}
		hi, err := inst.WavelengthMax()
		if err != nil {
			return nil, err
		}
		for ch := range lo {
			c.Passband = append(c.Passband, CatalogPassband{ch, lo[ch], hi[ch]})
		}
	}
	return c, nil
}

// ExportSystem writes the YAML catalog of the instrument to w.
func ExportSystem(w io.Writer, inst *Instrument) error {
	c, err := NewCatalog(inst)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// ExportAnglesCSV writes one record per channel and wire point of the grating input and
// output angles, in degrees.
func ExportAnglesCSV(w io.Writer, inst *Instrument) error {
	input, err := inst.AngleGratingInput()
	if err != nil {
		return err
	}
	output, err := inst.AngleGratingOutput()
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"channel", "wire", "kind", "angle_deg"}); err != nil {
		return err
	}
	for ch := range input {
		for _, set := range []struct {
			kind   string
			angles []float64
		}{{"input", input[ch]}, {"output", output[ch]}} {
			for k, a := range set.angles {
				rec := []string{strconv.Itoa(ch), strconv.Itoa(k), set.kind, strconv.FormatFloat(Rad2deg(a), 'f', 6, 64)}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportConfig configures the exporting of an instrument.
type ExportConfig struct {
	Filename  string
	OutputDir string // defaults to the configured output path
	Catalog   bool
	AnglesCSV bool
	Timestamp bool
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return !c.Catalog && !c.AnglesCSV
}

func (c ExportConfig) path(kind, ext string) string {
	dir := c.OutputDir
	if dir == "" {
		dir = esisConfig().OutputDir
	}
	name := fmt.Sprintf("%s-%s", kind, c.Filename)
	if c.Timestamp {
		name += "-" + time.Now().UTC().Format("2006-01-02T15.04.05")
	}
	return filepath.Join(dir, name+"."+ext)
}

// Export writes the requested files and returns their paths.
func Export(conf ExportConfig, inst *Instrument) ([]string, error) {
	var paths []string
	write := func(path string, f func(io.Writer, *Instrument) error) error {
		fh, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := f(fh, inst); err != nil {
			fh.Close()
			return err
		}
		if err := fh.Close(); err != nil {
			return err
		}
		level.Info(pkgLogger()).Log("msg", "exported", "path", path)
		paths = append(paths, path)
		return nil
	}
	if conf.Catalog {
		if err := write(conf.path("catalog", "yaml"), ExportSystem); err != nil {
			return paths, err
		}
	}
	if conf.AnglesCSV {
		if err := write(conf.path("angles", "csv"), ExportAnglesCSV); err != nil {
			return paths, err
		}
	}
	return paths, nil
}
