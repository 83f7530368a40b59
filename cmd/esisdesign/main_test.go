package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/esis-mission/esis"
	kitlog "github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesignNames(t *testing.T) {
	assert.Equal(t, []string{"f1", "f1-full", "f1-single", "f2"}, designNames())
}

func TestExportName(t *testing.T) {
	defer func() { scenario, design = defaultScenario, "f1" }()
	scenario, design = defaultScenario, "f2"
	assert.Equal(t, "f2", exportName())
	scenario = "../../testdata/esis-test.toml"
	assert.Equal(t, "esis-test", exportName())
	scenario = "designs/v1.2.toml"
	assert.Equal(t, "v1.2", exportName())
}

func TestLoad(t *testing.T) {
	scenario = defaultScenario
	design = "f1-single"
	inst, perts, err := load(kitlog.NewNopLogger())
	require.NoError(t, err)
	assert.NotEmpty(t, perts)
	n, err := inst.NumChannels()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	design = "f9"
	_, _, err = load(kitlog.NewNopLogger())
	assert.ErrorIs(t, err, esis.ErrConfig)

	scenario = "../../testdata/esis-test.toml"
	inst, perts, err = load(kitlog.NewNopLogger())
	require.NoError(t, err)
	assert.Empty(t, perts)
	assert.Equal(t, "esis-test", inst.Name)
	scenario = defaultScenario
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	inst := designs["f1"].build()
	require.NoError(t, report(&buf, inst))
	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// System, header, 4 channels and requirements.
	assert.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[2], "1 "), lines[2])
	assert.Contains(t, out, "10 exposures")

	buf.Reset()
	require.NoError(t, reportEnsemble(&buf, inst, designs["f1"].tolerances, 4, 1))
	assert.Contains(t, buf.String(), "ensemble of 4 realizations")

	inst.Filter = nil
	inst.Invalidate()
	assert.ErrorIs(t, report(&buf, inst), esis.ErrMissingElement)
}
