package esis

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadInstrument(t *testing.T) {
	inst, err := LoadInstrument("testdata/esis-test.toml")
	require.NoError(t, err)
	assert.Equal(t, "esis-test", inst.Name)
	assert.Equal(t, "channel", inst.AxisChannel)
	require.NoError(t, inst.Validate())

	exp := newTestInstrument(150)
	opts := cmp.Options{cmpopts.EquateApprox(0, 1e-12), cmpopts.EquateEmpty()}
	if diff := cmp.Diff(exp.Requirements, inst.Requirements, opts); diff != "" {
		t.Errorf("requirements mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(exp.Grating.Pose, inst.Grating.Pose, opts); diff != "" {
		t.Errorf("grating pose mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(exp.Grating.Cylindrical, inst.Grating.Cylindrical, opts, cmpopts.IgnoreFields(Cylindrical{}, "Azimuth")); diff != "" {
		t.Errorf("grating placement mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(exp.Grid, inst.Grid, opts); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, SawtoothRulings{Period: 1e-3, Depth: 1e-5, Order: 1}, inst.Grating.Rulings)
	assert.Equal(t, Mirror{}, inst.PrimaryMirror.Material)
	assert.Equal(t, "abc123", inst.Grating.SerialNumber)
	assert.Equal(t, time.Millisecond, inst.Camera.TimedeltaSync)
	assert.Equal(t, []int{0}, inst.Camera.Channel)
	assert.Equal(t, DefaultNumPixelX, inst.Camera.Sensor.NumPixelX)

	lo, err := inst.WavelengthMin()
	require.NoError(t, err)
	expLo, err := exp.WavelengthMin()
	require.NoError(t, err)
	assert.InDeltaSlice(t, expLo, lo, 1e-9)
}

func writeConf(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "design.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadInstrumentErrors(t *testing.T) {
	_, err := LoadInstrument("testdata/does-not-exist.toml")
	assert.ErrorIs(t, err, ErrConfig)

	for name, contents := range map[string]string{
		"vector":   "[field_stop]\nnum_folds = 8\ntranslation = [1.0, 2.0]\n",
		"rulings":  "[grating]\nnum_folds = 8\n[grating.rulings]\nkind = \"holographic\"\n",
		"pixels":   "[sensor]\nnum_pixel = [2048]\n",
		"grid":     "[grid]\nwavelength = [-3.0, 1.0]\n",
		"physical": "[grid]\nphysical = true\nwavelength = [0.0]\n",
		"list":     "[grating]\nazimuth = 3.0\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadInstrument(writeConf(t, contents))
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestLoadInstrumentPartial(t *testing.T) {
	inst, err := LoadInstrument(writeConf(t, "[instrument]\nname = \"bare\"\nroll = 90.0\n[grid]\nwavelength = [630.0]\nphysical = true\n"))
	require.NoError(t, err)
	assert.Equal(t, "bare", inst.Name)
	assert.InDelta(t, Deg2rad(90), inst.Roll, 1e-15)
	assert.Nil(t, inst.Grating)
	assert.Nil(t, inst.Camera)
	assert.Equal(t, []float64{630}, inst.Grid.Wavelength)
	assert.False(t, inst.Grid.Normalized)
	assert.ErrorIs(t, inst.Validate(), ErrMissingElement)
}

func TestEsisConfig(t *testing.T) {
	reset := func() {
		cfgOnce = sync.Once{}
		config = _esisconfig{}
	}
	reset()
	t.Cleanup(reset)

	t.Setenv("ESIS_CONFIG", "")
	assert.Equal(t, _esisconfig{OutputDir: ".", DesignDir: ".", LogLevel: "info"}, esisConfig())

	reset()
	t.Setenv("ESIS_CONFIG", "testdata")
	conf := esisConfig()
	assert.Equal(t, "./testdata/out", conf.OutputDir)
	assert.Equal(t, "debug", LogLevel())
	assert.Equal(t, filepath.Join("testdata", "esis-test.toml"), DesignPath("esis-test"))
	assert.Equal(t, filepath.Join("testdata", "esis-test.toml"), DesignPath("esis-test.toml"))
	assert.Equal(t, filepath.Join("testdata", "f1", "full.toml"), DesignPath("f1/full"))

	reset()
	t.Setenv("ESIS_CONFIG", t.TempDir())
	assertPanic(t, func() { esisConfig() })
}
