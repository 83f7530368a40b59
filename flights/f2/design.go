// Package f2 holds the optical design proposed for the second ESIS flight.
package f2

import (
	"github.com/esis-mission/esis"
	"github.com/esis-mission/esis/flights/f1"
)

const (
	// distanceFilterGrating is the refocused grating to filter distance, mm.
	distanceFilterGrating = 1291.012
	yawGrating            = -3.65 // degrees
)

// RulingsProposed is the varied line space groove pattern proposed for the new gratings.
func RulingsProposed() esis.PolynomialRulings {
	return esis.PolynomialRulings{
		Coefficients: []float64{
			1.0 / 2700,       // mm
			-2.852e-5 * 1e-3, // µm/mm
			-2.112e-7 * 1e-3, // µm/mm²
		},
		Order: 1,
	}
}

// DesignProposed is the optical design proposed for ESIS 2: the ESIS 1 design with
// new rulings, a smaller grating yaw, and the filters and sensors moved to refocus.
// A nil grid selects the ESIS 1 default grid.
func DesignProposed(grid *esis.Grid) *esis.Instrument {
	inst := f1.DesignFull(grid)
	inst.Name = "ESIS 2 proposed design"
	inst.Grating.Rulings = RulingsProposed()
	inst.Grating.Yaw = esis.Deg2rad(yawGrating)

	zFilter := inst.Grating.Translation.Z + distanceFilterGrating
	dz := zFilter - inst.Filter.Translation.Z
	inst.Filter.Translation.Z += dz
	inst.Camera.Sensor.Translation.Z += dz
	return inst
}
