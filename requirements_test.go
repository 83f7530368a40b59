package esis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequirements(t *testing.T) {
	r := Requirements{
		ResolutionSpatial:  1.5,
		ResolutionSpectral: 18,
		FOV:                Deg2rad(10.0 / 60),
		SNR:                17.3,
		Cadence:            15 * time.Second,
		LengthObservation:  150 * time.Second,
	}
	assert.Equal(t, 10, r.NumExposures())
	assert.Equal(t, "Requirements{spatial=1.50 Mm spectral=18.0 km/s fov=10.00' snr=17.3 cadence=15s observation=2m30s}", r.String())
	assert.Equal(t, 0, Requirements{}.NumExposures())
}
