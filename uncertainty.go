package esis

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Uncertain is a scalar known to lie uniformly within Nominal ± Width.
type Uncertain struct {
	Nominal float64
	Width   float64
}

// Distribution draws num samples of this value.
func (u Uncertain) Distribution(num int, src rand.Source) []float64 {
	samples := make([]float64, num)
	if u.Width == 0 {
		for i := range samples {
			samples[i] = u.Nominal
		}
		return samples
	}
	dist := distuv.Uniform{Min: u.Nominal - u.Width, Max: u.Nominal + u.Width, Src: src}
	for i := range samples {
		samples[i] = dist.Rand()
	}
	return samples
}

// Perturbation is an uncertain parameter of an instrument and the way to set it.
type Perturbation struct {
	Name  string
	Value Uncertain
	// Apply sets the parameter of the given instrument to v.
	Apply func(i *Instrument, v float64)
}

// Ensemble returns num Monte Carlo realizations of the instrument. Each realization is an
// independent copy with every perturbation applied to a value drawn from its distribution.
// With num == 0, only the nominal instrument (all perturbations at their nominal values) is returned.
func (i *Instrument) Ensemble(num int, seed uint64, perts []Perturbation) ([]*Instrument, error) {
	if err := i.Validate(); err != nil {
		return nil, err
	}
	if num == 0 {
		nominal := i.Copy()
		for _, p := range perts {
			p.Apply(nominal, p.Value.Nominal)
		}
		return []*Instrument{nominal}, nil
	}
	if num < 0 {
		return nil, fmt.Errorf("%w: negative ensemble size %d", ErrConfig, num)
	}
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	draws := make([][]float64, len(perts))
	for k, p := range perts {
		draws[k] = p.Value.Distribution(num, src)
	}
	out := make([]*Instrument, num)
	for n := range out {
		out[n] = i.Copy()
		for k, p := range perts {
			p.Apply(out[n], draws[k][n])
		}
	}
	return out, nil
}

// Summary is the mean and standard deviation of a quantity across an ensemble.
type Summary struct {
	Mean   float64
	StdDev float64
}

func (s Summary) String() string {
	return fmt.Sprintf("%.3f ± %.3f", s.Mean, s.StdDev)
}

// Summarize reduces per-realization, per-channel values into per-channel statistics.
func Summarize(values [][]float64) []Summary {
	if len(values) == 0 {
		return nil
	}
	out := make([]Summary, len(values[0]))
	column := make([]float64, len(values))
	for ch := range out {
		for n, v := range values {
			column[n] = v[ch]
		}
		if len(column) == 1 {
			out[ch] = Summary{column[0], 0}
			continue
		}
		mean, std := stat.MeanStdDev(column, nil)
		out[ch] = Summary{mean, std}
	}
	return out
}

// EnsembleWavelengthBounds evaluates the passband of every realization and summarizes it per channel.
func EnsembleWavelengthBounds(ensemble []*Instrument) (lo, hi []Summary, err error) {
	mins := make([][]float64, len(ensemble))
	maxs := make([][]float64, len(ensemble))
	for n, inst := range ensemble {
		if mins[n], err = inst.WavelengthMin(); err != nil {
			return nil, nil, err
		}
		if maxs[n], err = inst.WavelengthMax(); err != nil {
			return nil, nil, err
		}
	}
	return Summarize(mins), Summarize(maxs), nil
}
