package esis

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestExportSystem(t *testing.T) {
	inst := newTestInstrumentChannels(2)
	var buf bytes.Buffer
	require.NoError(t, ExportSystem(&buf, inst))

	var got Catalog
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "esis-test", got.Name)
	assert.Equal(t, 2, got.Channels)
	assert.Equal(t, inst.Grid.Size(), got.Rays)

	names := make([]string, len(got.Surfaces))
	for i, s := range got.Surfaces {
		names[i] = s.Name
	}
	want := []string{"front aperture", "obscuration", "primary", "field stop", "grating", "filter", "sensor"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("surfaces mismatch (-want +got):\n%s", diff)
	}
	grating := got.Surfaces[4]
	assert.Equal(t, "isosceles trapezoid", grating.Aperture.Kind)
	assert.Len(t, grating.Aperture.Vertices, 4)
	require.Len(t, grating.Poses, 2)
	assert.InDelta(t, 50, grating.Poses[0].Origin[0], 1e-9)
	assert.InDelta(t, 750, grating.Poses[0].Origin[2], 1e-9)
	assert.True(t, strings.HasPrefix(grating.Rulings, "sawtooth(d=0.001 mm"), grating.Rulings)
	front := got.Surfaces[0]
	assert.Nil(t, front.Aperture)
	require.Len(t, front.Poses, 2, "single poses are broadcast over every channel")

	require.Len(t, got.Passband, 2)
	lo, err := inst.WavelengthMin()
	require.NoError(t, err)
	assert.InDelta(t, lo[1], got.Passband[1].Min, 1e-9)
}

func TestExportAnglesCSV(t *testing.T) {
	inst := newTestInstrument(150)
	inst.WireNum = 2
	var buf bytes.Buffer
	require.NoError(t, ExportAnglesCSV(&buf, inst))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"channel", "wire", "kind", "angle_deg"}, records[0])
	// 8 sides of the field stop and 4 of the sensor, 2 points each.
	assert.Len(t, records, 1+8*2+4*2)
	assert.Equal(t, "input", records[1][2])
	assert.Equal(t, "output", records[len(records)-1][2])
}

func TestExport(t *testing.T) {
	inst := newTestInstrument(150)
	conf := ExportConfig{Filename: "test", OutputDir: t.TempDir()}
	assert.True(t, conf.IsUseless())
	paths, err := Export(conf, inst)
	require.NoError(t, err)
	assert.Empty(t, paths)

	conf.Catalog = true
	conf.AnglesCSV = true
	paths, err = Export(conf, inst)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(conf.OutputDir, "catalog-test.yaml"), paths[0])
	assert.Equal(t, filepath.Join(conf.OutputDir, "angles-test.csv"), paths[1])
	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	missing := conf
	missing.OutputDir = filepath.Join(conf.OutputDir, "missing")
	paths, err = Export(missing, inst)
	assert.Error(t, err)
	assert.Empty(t, paths)

	inst.Grating = nil
	inst.Invalidate()
	paths, err = Export(conf, inst)
	assert.ErrorIs(t, err, ErrMissingElement)
	assert.Empty(t, paths, "a failed write is not reported")
}
