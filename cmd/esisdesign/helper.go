package main

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/esis-mission/esis"
	"github.com/esis-mission/esis/flights/f1"
	"github.com/esis-mission/esis/flights/f2"
	"gonum.org/v1/gonum/floats"
)

type builtin struct {
	build      func() *esis.Instrument
	tolerances []esis.Perturbation
}

var designs = map[string]builtin{
	"f1-full":   {func() *esis.Instrument { return f1.DesignFull(nil) }, f1.Tolerances()},
	"f1":        {func() *esis.Instrument { return f1.Design(nil) }, f1.Tolerances()},
	"f1-single": {func() *esis.Instrument { return f1.DesignSingle(nil) }, f1.Tolerances()},
	"f2":        {func() *esis.Instrument { return f2.DesignProposed(nil) }, f1.Tolerances()},
}

func designNames() []string {
	names := make([]string, 0, len(designs))
	for name := range designs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// exportName is the base name of the exported files: the scenario file name or the design name.
func exportName() string {
	if scenario == defaultScenario {
		return design
	}
	base := filepath.Base(scenario)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// report prints the passband and grating angles of every channel.
func report(w io.Writer, inst *esis.Instrument) error {
	s, err := inst.System()
	if err != nil {
		return err
	}
	lo, err := inst.WavelengthMin()
	if err != nil {
		return err
	}
	hi, err := inst.WavelengthMax()
	if err != nil {
		return err
	}
	input, err := inst.AngleGratingInput()
	if err != nil {
		return err
	}
	output, err := inst.AngleGratingOutput()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, s)
	fmt.Fprintf(w, "%-8s %-10s %-10s %-22s %-22s\n", "channel", "λ min (Å)", "λ max (Å)", "α (°)", "β (°)")
	for ch := range lo {
		id := fmt.Sprint(ch)
		if inst.Camera != nil && len(inst.Camera.Channel) > ch {
			id = fmt.Sprint(inst.Camera.Channel[ch])
		}
		fmt.Fprintf(w, "%-8s %-10.2f %-10.2f %-22s %-22s\n", id, lo[ch], hi[ch], angleRange(input[ch]), angleRange(output[ch]))
	}
	if inst.Requirements != nil {
		fmt.Fprintf(w, "%s: %d exposures\n", inst.Requirements, inst.Requirements.NumExposures())
	}
	return nil
}

func angleRange(angles []float64) string {
	return fmt.Sprintf("[%.3f, %.3f]", esis.Rad2deg(floats.Min(angles)), esis.Rad2deg(floats.Max(angles)))
}

// reportEnsemble prints the statistics of the passband across Monte Carlo realizations.
func reportEnsemble(w io.Writer, inst *esis.Instrument, perts []esis.Perturbation, num int, seed uint64) error {
	ensemble, err := inst.Ensemble(num, seed, perts)
	if err != nil {
		return err
	}
	lo, hi, err := esis.EnsembleWavelengthBounds(ensemble)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "ensemble of %d realizations (seed %d)\n", num, seed)
	for ch := range lo {
		fmt.Fprintf(w, "%-8d λ min %s Å\tλ max %s Å\n", ch, lo[ch], hi[ch])
	}
	return nil
}
