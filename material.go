package esis

import (
	"fmt"
	"strings"
)

// Material describes how a surface interacts with light.
// These are stubs: efficiency curves belong to the radiometric model, not the geometry.
type Material interface {
	// Name returns a human-readable name.
	Name() string
	// IsMirror returns whether light is reflected rather than transmitted.
	IsMirror() bool
}

// Mirror is an ideal reflector.
type Mirror struct{}

// Name implements the Material interface.
func (Mirror) Name() string { return "mirror" }

// IsMirror implements the Material interface.
func (Mirror) IsMirror() bool { return true }

// Layer is one film of a multilayer stack.
type Layer struct {
	Material  string
	Thickness float64 // nm
}

// MultilayerMirror is a reflective coating made of a periodic stack of thin films.
type MultilayerMirror struct {
	Label     string
	Layers    []Layer
	NumPeriod int
	Substrate string
}

// Name implements the Material interface.
func (m MultilayerMirror) Name() string {
	if m.Label != "" {
		return m.Label
	}
	names := make([]string, len(m.Layers))
	for i, l := range m.Layers {
		names[i] = fmt.Sprintf("%s(%gnm)", l.Material, l.Thickness)
	}
	return fmt.Sprintf("[%s]x%d", strings.Join(names, "/"), m.NumPeriod)
}

// IsMirror implements the Material interface.
func (MultilayerMirror) IsMirror() bool { return true }

// ThinFilmFilter is a transmissive film supported by a mesh.
type ThinFilmFilter struct {
	Layer        Layer
	LayerOxide   Layer
	MeshMaterial string
	MeshPitch    float64 // lines per inch
	MeshRatio    float64 // open fraction of the mesh
}

// Name implements the Material interface.
func (f ThinFilmFilter) Name() string {
	return fmt.Sprintf("%s(%gnm) filter on %s mesh", f.Layer.Material, f.Layer.Thickness, f.MeshMaterial)
}

// IsMirror implements the Material interface.
func (ThinFilmFilter) IsMirror() bool { return false }

// SensorMaterial is the light-sensitive part of a detector.
type SensorMaterial struct {
	Label       string
	Temperature float64 // °C
}

// Name implements the Material interface.
func (s SensorMaterial) Name() string {
	return fmt.Sprintf("%s at %g°C", s.Label, s.Temperature)
}

// IsMirror implements the Material interface.
func (SensorMaterial) IsMirror() bool { return false }
