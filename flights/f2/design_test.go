package f2

import (
	"testing"

	"github.com/esis-mission/esis"
	"github.com/esis-mission/esis/flights/f1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesignProposed(t *testing.T) {
	inst := DesignProposed(nil)
	require.NoError(t, inst.Validate())
	assert.InDelta(t, esis.Deg2rad(-3.65), inst.Grating.Yaw, 1e-15)
	assert.InDelta(t, 1291.012, inst.Filter.Translation.Z-inst.Grating.Translation.Z, 1e-9)
	assert.InDelta(t, 200, inst.Camera.Sensor.Translation.Z-inst.Filter.Translation.Z, 1e-9)

	rulings, ok := inst.Grating.Rulings.(esis.PolynomialRulings)
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{1.0 / 2700, -2.852e-8, -2.112e-10}, rulings.Coefficients, 1e-20)

	lo, err := inst.WavelengthMin()
	require.NoError(t, err)
	hi, err := inst.WavelengthMax()
	require.NoError(t, err)
	require.Len(t, lo, 6)
	for ch := range lo {
		assert.Greater(t, lo[ch], 400.0)
		assert.Less(t, lo[ch], hi[ch])
		assert.Less(t, hi[ch], 600.0)
	}

	// The proposal leaves the ESIS 1 design untouched.
	original := f1.DesignFull(nil)
	assert.NotEqual(t, original.Grating.Yaw, inst.Grating.Yaw)
	loF1, err := original.WavelengthMin()
	require.NoError(t, err)
	assert.Greater(t, loF1[0], lo[0])
}
