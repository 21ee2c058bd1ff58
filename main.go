package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ftl/muxsim/core"
	"github.com/ftl/muxsim/core/app"
	"github.com/ftl/muxsim/core/cfg"
	"github.com/ftl/muxsim/core/logging"
	"github.com/ftl/muxsim/core/mux"
	"github.com/ftl/muxsim/core/render"
)

const simulationTimeout = 10 * time.Second

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	mode    string
	inputA  string
	inputB  string
	format  string
	invalid string
	static  bool
	debug   bool

	// set contains the names of the flags given on the command line.
	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var result options
	flags := flag.NewFlagSet("muxsim", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&result.mode, "mode", "", "multiplexing mode: TDM, FDM, WDM or all (default from configuration)")
	flags.StringVar(&result.inputA, "a", "", "digit stream A (default from configuration)")
	flags.StringVar(&result.inputB, "b", "", "digit stream B (default from configuration)")
	flags.StringVar(&result.format, "format", "table", "output format: table, csv or json")
	flags.StringVar(&result.invalid, "invalid", "", "handling of invalid digits: propagate, zero or reject (default from configuration)")
	flags.BoolVar(&result.static, "static", false, "ignore the configuration file")
	flags.BoolVar(&result.debug, "debug", false, "log at debug level")
	if err := flags.Parse(args); err != nil {
		return options{}, err
	}
	if flags.NArg() > 0 {
		return options{}, errors.Errorf("unexpected arguments: %s", strings.Join(flags.Args(), " "))
	}
	result.set = make(map[string]bool)
	flags.Visit(func(f *flag.Flag) {
		result.set[f.Name] = true
	})
	return result, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if err != flag.ErrHelp {
			fmt.Fprintln(stderr, err)
		}
		return 2
	}

	logger, err := logging.New(opts.debug)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer logger.Sync()

	configuration := loadConfiguration(opts.static, logger)
	all, err := applyOptions(&configuration, opts)
	if err != nil {
		logger.Error("invalid options", zap.Error(err))
		return 2
	}
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		logger.Error("invalid options", zap.Error(err))
		return 2
	}

	engine, err := mux.New(configuration, mux.WithLogger(logger))
	if err != nil {
		logger.Error("cannot create signal engine", zap.Error(err))
		return 1
	}

	if all {
		err = simulateAll(engine, configuration, format, stdout)
	} else {
		err = simulate(engine, configuration, format, stdout, logger)
	}
	if err != nil {
		logger.Error("simulation failed", zap.Error(err))
		return 1
	}
	return 0
}

func loadConfiguration(static bool, logger *zap.Logger) core.Configuration {
	if static {
		return cfg.Static()
	}
	configuration, err := cfg.Load()
	if err != nil {
		logger.Info("using static configuration", zap.Error(err))
		return cfg.Static()
	}
	return configuration
}

// applyOptions overrides the configuration with the command line options that
// were given, even if they are empty. It returns true if all modes are selected.
func applyOptions(configuration *core.Configuration, opts options) (bool, error) {
	all := false
	if opts.set["mode"] {
		if strings.EqualFold(strings.TrimSpace(opts.mode), "all") {
			all = true
		} else {
			mode, err := core.ParseMode(opts.mode)
			if err != nil {
				return false, err
			}
			configuration.Mode = mode
		}
	}
	if opts.set["a"] {
		configuration.InputA = opts.inputA
	}
	if opts.set["b"] {
		configuration.InputB = opts.inputB
	}
	if opts.set["invalid"] {
		policy, err := core.ParseDigitPolicy(opts.invalid)
		if err != nil {
			return false, err
		}
		configuration.InvalidDigits = policy
	}
	return all, nil
}

func simulateAll(engine *mux.Engine, configuration core.Configuration, format render.Format, out io.Writer) error {
	results, err := engine.GenerateAll(configuration.InputA, configuration.InputB)
	if err != nil {
		return err
	}
	signals := make([]core.Signal, 0, len(core.Modes))
	for _, mode := range core.Modes {
		signals = append(signals, core.Signal{Mode: mode, Samples: results[mode]})
	}
	return render.Write(out, format, signals...)
}

func simulate(engine *mux.Engine, configuration core.Configuration, format render.Format, out io.Writer, logger *zap.Logger) error {
	controller := app.NewController(engine, configuration, logger)
	controller.Startup()
	defer controller.Shutdown()

	view := &outputView{
		out:    out,
		format: format,
		done:   make(chan error, 1),
	}
	controller.SetOutputView(view)
	controller.Simulate()

	select {
	case err := <-view.done:
		return err
	case <-time.After(simulationTimeout):
		return errors.New("simulation timed out")
	}
}

// outputView writes the simulated signal.
type outputView struct {
	out    io.Writer
	format render.Format
	done   chan error
}

func (v *outputView) ShowSignal(signal core.Signal) {
	v.done <- render.Write(v.out, v.format, signal)
}

func (v *outputView) ShowError(err error) {
	v.done <- err
}
