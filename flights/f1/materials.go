package f1

import "github.com/esis-mission/esis"

// MaterialPrimary is the design multilayer coating of the primary mirror.
func MaterialPrimary() esis.MultilayerMirror {
	return esis.MultilayerMirror{
		Label:     "primary Al/SiC multilayer design",
		Layers:    []esis.Layer{{Material: "SiC", Thickness: 25}, {Material: "Al", Thickness: 10}},
		NumPeriod: 1,
		Substrate: "Zerodur",
	}
}

// MaterialGrating is the design multilayer coating of the gratings.
func MaterialGrating() esis.MultilayerMirror {
	return esis.MultilayerMirror{
		Label:     "grating Al/SiC multilayer design",
		Layers:    []esis.Layer{{Material: "SiC", Thickness: 10}, {Material: "Al", Thickness: 6.4}},
		NumPeriod: 3,
		Substrate: "fused silica",
	}
}

// MaterialFilter is the design aluminum thin film filter.
func MaterialFilter() esis.ThinFilmFilter {
	return esis.ThinFilmFilter{
		Layer:        esis.Layer{Material: "Al", Thickness: 100},
		LayerOxide:   esis.Layer{Material: "Al2O3", Thickness: 4},
		MeshMaterial: "Ni",
		MeshPitch:    70,
		MeshRatio:    0.82,
	}
}

// RulingsDesign is the nominal groove pattern of the gratings: 2700 grooves/mm in first order.
func RulingsDesign() esis.PolynomialRulings {
	return esis.PolynomialRulings{
		Coefficients: []float64{1.0 / 2700, 0, 0},
		Order:        1,
	}
}
