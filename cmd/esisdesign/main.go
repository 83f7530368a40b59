package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/esis-mission/esis"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// This command loads an optical design, either built-in or from a TOML scenario,
// and reports its passband and grating angles per channel.

const defaultScenario = "~~unset~~"

var (
	scenario  string
	design    string
	numSample int
	seed      uint64
	export    bool
	outputDir string
	debug     bool
)

func init() {
	// Read flags
	flag.StringVar(&scenario, "scenario", defaultScenario, "instrument scenario TOML file")
	flag.StringVar(&design, "design", "f1", "built-in design: "+strings.Join(designNames(), ", "))
	flag.IntVar(&numSample, "ensemble", 0, "number of Monte Carlo realizations of the tolerances (0 to skip)")
	flag.Uint64Var(&seed, "seed", 1, "seed of the Monte Carlo draws")
	flag.BoolVar(&export, "export", false, "export the YAML catalog and the CSV of grating angles")
	flag.StringVar(&outputDir, "outputdir", "", "export directory (defaults to the configured output path)")
	flag.BoolVar(&debug, "debug", false, "debug everything (really verbose)")
}

func main() {
	flag.Parse()
	logger := esis.NewLogger(os.Stderr, "esisdesign")
	if debug || esis.LogLevel() == "debug" {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}
	esis.SetLogger(logger)

	inst, perts, err := load(logger)
	if err != nil {
		level.Error(logger).Log("msg", "could not load the instrument", "err", err)
		os.Exit(1)
	}
	if err := report(os.Stdout, inst); err != nil {
		level.Error(logger).Log("msg", "could not evaluate the instrument", "err", err)
		os.Exit(1)
	}
	if numSample > 0 {
		if len(perts) == 0 {
			level.Warn(logger).Log("msg", "no tolerances known for this design, skipping the ensemble")
		} else if err := reportEnsemble(os.Stdout, inst, perts, numSample, seed); err != nil {
			level.Error(logger).Log("msg", "ensemble failed", "err", err)
			os.Exit(1)
		}
	}
	if export {
		conf := esis.ExportConfig{Filename: exportName(), OutputDir: outputDir, Catalog: true, AnglesCSV: true}
		paths, err := esis.Export(conf, inst)
		if err != nil {
			level.Error(logger).Log("msg", "export failed", "err", err)
			os.Exit(1)
		}
		for _, p := range paths {
			fmt.Printf("wrote %s\n", p)
		}
	}
}

// load returns the requested instrument and its known tolerances.
func load(logger kitlog.Logger) (*esis.Instrument, []esis.Perturbation, error) {
	if scenario != defaultScenario {
		path := scenario
		if _, err := os.Stat(path); err != nil {
			path = esis.DesignPath(scenario)
		}
		level.Info(logger).Log("msg", "loading scenario", "path", path)
		inst, err := esis.LoadInstrument(path)
		return inst, nil, err
	}
	d, ok := designs[design]
	if !ok {
		return nil, nil, fmt.Errorf("%w: unknown design %q", esis.ErrConfig, design)
	}
	level.Info(logger).Log("msg", "loading built-in design", "design", design)
	return d.build(), d.tolerances, nil
}
