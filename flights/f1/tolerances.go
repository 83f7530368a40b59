package f1

import "github.com/esis-mission/esis"

// Tolerances lists the alignment and fabrication errors of the design, for Monte Carlo ensembles.
// The field stop is positioned relative to the primary mirror and follows its decenter.
func Tolerances() []esis.Perturbation {
	return []esis.Perturbation{
		{
			Name:  "primary.translation.x",
			Value: esis.Uncertain{Nominal: 0, Width: errorDecenter},
			Apply: func(i *esis.Instrument, v float64) {
				i.PrimaryMirror.Translation.X = v
				i.FieldStop.Translation.X = v
			},
		},
		{
			Name:  "primary.translation.y",
			Value: esis.Uncertain{Nominal: 0, Width: errorDecenter},
			Apply: func(i *esis.Instrument, v float64) {
				i.PrimaryMirror.Translation.Y = v
				i.FieldStop.Translation.Y = v
			},
		},
		{
			Name:  "grating.translation.x",
			Value: esis.Uncertain{Nominal: 0, Width: errorDecenter},
			Apply: func(i *esis.Instrument, v float64) { i.Grating.Translation.X = v },
		},
		{
			Name:  "grating.translation.y",
			Value: esis.Uncertain{Nominal: 0, Width: errorDecenter},
			Apply: func(i *esis.Instrument, v float64) { i.Grating.Translation.Y = v },
		},
		{
			Name:  "grating.translation.z",
			Value: esis.Uncertain{Nominal: focalLengthPrimary - distanceGratingPrimary, Width: errorGratingZ()},
			Apply: func(i *esis.Instrument, v float64) { i.Grating.Translation.Z = v },
		},
		{
			Name:  "grating.sag.radius",
			Value: esis.Uncertain{Nominal: -radiusGrating, Width: radiusGrating * errorRadiusGrating},
			Apply: func(i *esis.Instrument, v float64) { i.Grating.Sag.Radius = v },
		},
		{
			Name:  "grating.roll",
			Value: esis.Uncertain{Nominal: 0, Width: errorGratingRoll},
			Apply: func(i *esis.Instrument, v float64) { i.Grating.Roll = v },
		},
	}
}
