// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"

	"github.com/katalvlaran/transport"
	"github.com/katalvlaran/transport/internal/problemfile"
	"github.com/katalvlaran/transport/internal/trace"
)

// envPrefix is the prefix of environment variables mirroring the flags:
// --max-iterations is TRANSPORT_MAX_ITERATIONS.
const envPrefix = "TRANSPORT"

const (
	flagFile              = "file"
	flagMethod            = "method"
	flagInitializer       = "initializer"
	flagEpsilon           = "epsilon"
	flagMaxIterations     = "max-iterations"
	flagRentMaxIterations = "rent-max-iterations"
	flagOutput            = "output"
	flagTrace             = "trace"
)

type solveOptions struct {
	file        string
	method      transport.Method
	initializer transport.Initializer
	solverOpts  []transport.Option
	output      string
	trace       bool
}

func newSolveCommand() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "solve -f FILE",
		Short: "Solve the problem defined in FILE and print the optimal plan",
		Example: `
  transport solve -f plants.yaml
  transport solve -f plants.json --method rent --output yaml
  transport solve -f plants.yaml --initializer vogel --trace`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := problemfile.Load(v.GetString(flagFile))
			if err != nil {
				return err
			}
			o, err := completeSolveOptions(v, def)
			if err != nil {
				return err
			}

			return runSolve(cmd, def, o)
		},
	}

	flags := cmd.Flags()
	flags.StringP(flagFile, "f", "", "Problem definition (YAML or JSON)")
	flags.String(flagMethod, "", "Strategy: potentials | rent (default: file value, then potentials)")
	flags.String(flagInitializer, "", "Initial plan: min-cost | northwest | vogel (default: file value, then min-cost)")
	flags.Float64(flagEpsilon, transport.DefaultEpsilon, "Zero tolerance")
	flags.Int(flagMaxIterations, transport.DefaultMaxIterations, "Maximum MODI reallocations")
	flags.Int(flagRentMaxIterations, transport.DefaultRentMaxIterations, "Maximum differential rent rounds")
	flags.StringP(flagOutput, "o", "table", "Output format: table | yaml | json")
	flags.Bool(flagTrace, false, "Print the progress journal after the plan")
	bindFlags(v, flags)

	return cmd
}

// bindFlags makes every flag readable through v, with TRANSPORT_* environment
// variables as fallback.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		klog.Fatalf("binding flags: %v", err)
	}
}

// completeSolveOptions merges flags and environment with the file settings.
// Flags and environment win over the file; the file wins over defaults.
func completeSolveOptions(v *viper.Viper, def *problemfile.Definition) (*solveOptions, error) {
	o := &solveOptions{
		file:   v.GetString(flagFile),
		output: v.GetString(flagOutput),
		trace:  v.GetBool(flagTrace),
	}

	var err error
	if o.method, err = transport.ParseMethod(pick(v.GetString(flagMethod), def.Method)); err != nil {
		return nil, err
	}
	if o.initializer, err = transport.ParseInitializer(pick(v.GetString(flagInitializer), def.Initializer)); err != nil {
		return nil, err
	}
	switch o.output {
	case "table", "yaml", "json":
	default:
		return nil, fmt.Errorf("unknown output format %q", o.output)
	}

	o.solverOpts = []transport.Option{
		transport.WithMethod(o.method),
		transport.WithInitializer(o.initializer),
		transport.WithEpsilon(v.GetFloat64(flagEpsilon)),
		transport.WithMaxIterations(v.GetInt(flagMaxIterations)),
		transport.WithRentMaxIterations(v.GetInt(flagRentMaxIterations)),
	}

	return o, nil
}

func pick(values ...string) string {
	for _, s := range values {
		if s != "" {
			return s
		}
	}

	return ""
}

func runSolve(cmd *cobra.Command, def *problemfile.Definition, o *solveOptions) error {
	costs, err := def.Matrix()
	if err != nil {
		return err
	}

	rec := trace.New()
	opts := append(o.solverOpts, transport.WithObserver(rec.Observe))
	klog.V(trace.LevelPhase).InfoS("solving", "file", o.file, "method", o.method.String(),
		"initializer", o.initializer.String(), "suppliers", costs.Rows(), "consumers", costs.Cols())

	res, solveErr := transport.SolveMatrix(costs, def.Supplies, def.Demands, opts...)
	if res == nil {
		return solveErr
	}

	out := cmd.OutOrStdout()
	rep := newReport(def, res, o.initializer)
	switch o.output {
	case "yaml":
		err = writeYAML(out, rep)
	case "json":
		err = writeJSON(out, rep)
	default:
		err = writeTable(out, rep)
	}
	if err != nil {
		return err
	}
	if o.trace {
		if err = writeJournal(out, rec.Journal()); err != nil {
			return err
		}
	}

	if errors.Is(solveErr, transport.ErrCycleNotFound) {
		return fmt.Errorf("plan is not optimal: %w", solveErr)
	}

	return solveErr
}
