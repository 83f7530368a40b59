package esis

import (
	"fmt"
	"time"
)

// Requirements is the optical performance required for mission success.
// These are targets to compare against; nothing here is derived from the geometry.
type Requirements struct {
	ResolutionSpatial  float64 // Mm on the sun
	ResolutionSpectral float64 // km/s
	FOV                float64 // radians
	SNR                float64
	Cadence            time.Duration
	LengthObservation  time.Duration
}

// NumExposures is the number of exposures fitting in the observation at the required cadence.
func (r Requirements) NumExposures() int {
	if r.Cadence <= 0 {
		return 0
	}
	return int(r.LengthObservation / r.Cadence)
}

func (r Requirements) String() string {
	return fmt.Sprintf("Requirements{spatial=%.2f Mm spectral=%.1f km/s fov=%.2f' snr=%.1f cadence=%s observation=%s}",
		r.ResolutionSpatial, r.ResolutionSpectral, Rad2deg(r.FOV)*60, r.SNR, r.Cadence, r.LengthObservation)
}
