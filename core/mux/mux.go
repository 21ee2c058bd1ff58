// Package mux generates the samples of multiplexed signals. Every generator
// is a pure function of its two digit streams and the engine configuration.
package mux

import (
	"math"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ftl/muxsim/core"
	"github.com/ftl/muxsim/core/bits"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger of the engine.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.log = logger
		}
	}
}

// New returns an engine with the given configuration.
func New(configuration core.Configuration, opts ...Option) (*Engine, error) {
	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	result := &Engine{
		cfg: configuration,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(result)
		}
	}
	return result, nil
}

// Engine generates multiplexed signals.
type Engine struct {
	cfg core.Configuration
	log *zap.Logger
}

// Configuration of the engine.
func (e *Engine) Configuration() core.Configuration {
	return e.cfg
}

// Generate the samples of the given mode.
func (e *Engine) Generate(mode core.Mode, streamA, streamB string) (core.Samples, error) {
	switch mode {
	case core.TDM:
		return e.TDM(streamA, streamB)
	case core.FDM:
		return e.FDM(streamA, streamB)
	case core.WDM:
		return e.WDM(streamA, streamB)
	default:
		return nil, errors.Wrapf(core.ErrUnsupportedMode, "%v", mode)
	}
}

// GenerateAll generates the samples of all modes concurrently.
func (e *Engine) GenerateAll(streamA, streamB string) (map[core.Mode]core.Samples, error) {
	results := make([]core.Samples, len(core.Modes))
	errs := make([]error, len(core.Modes))

	wait := new(sync.WaitGroup)
	for i, mode := range core.Modes {
		wait.Add(1)
		go func(i int, mode core.Mode) {
			defer wait.Done()
			results[i], errs[i] = e.Generate(mode, streamA, streamB)
		}(i, mode)
	}
	wait.Wait()

	result := make(map[core.Mode]core.Samples, len(core.Modes))
	for i, mode := range core.Modes {
		if errs[i] != nil {
			return nil, errs[i]
		}
		result[mode] = results[i]
	}
	return result, nil
}

// parse the given stream. With RejectInvalid, the first invalid digit fails
// the whole generation before any sample is produced.
func (e *Engine) parse(s string, name string) (bits.Stream, error) {
	result := bits.ParseStream(s)
	if e.cfg.InvalidDigits != core.RejectInvalid {
		return result, nil
	}
	position := result.FirstInvalid()
	if position < 0 {
		return result, nil
	}
	d := result[position]
	e.logInvalid(d, name, position)
	return nil, errors.Wrapf(core.ErrInvalidDigit, "stream %s, position %d: %q", name, position, d.Rune())
}

// resolve returns the numeric value of d according to the digit policy.
func (e *Engine) resolve(d bits.Digit, stream string, position int) float64 {
	if d.Valid() {
		return d.Float()
	}

	e.logInvalid(d, stream, position)
	if e.cfg.InvalidDigits == core.ZeroInvalid {
		return 0
	}
	return math.NaN()
}

func (e *Engine) logInvalid(d bits.Digit, stream string, position int) {
	e.log.Debug("invalid digit",
		zap.String("stream", stream),
		zap.Int("position", position),
		zap.String("character", d.String()),
		zap.Stringer("policy", e.cfg.InvalidDigits),
	)
}

// bitValues resolves the first n digits of the stream. Positions beyond the
// end of the stream transmit 0.
func (e *Engine) bitValues(stream bits.Stream, name string, n int) []float64 {
	result := make([]float64, n)
	for i := range result {
		d, ok := stream.At(i)
		if !ok {
			break
		}
		result[i] = e.resolve(d, name, i)
	}
	return result
}

func maxLen(a, b bits.Stream) int {
	if len(a) > len(b) {
		return len(a)
	}
	return len(b)
}

var defaultEngine = mustNew(core.DefaultConfiguration())

func mustNew(configuration core.Configuration) *Engine {
	result, err := New(configuration)
	if err != nil {
		panic(err)
	}
	return result
}

// TDM interleaves the two streams using the default configuration.
func TDM(streamA, streamB string) core.Samples {
	result, _ := defaultEngine.TDM(streamA, streamB)
	return result
}

// FDM modulates the two streams onto their carriers using the default configuration.
func FDM(streamA, streamB string) core.Samples {
	result, _ := defaultEngine.FDM(streamA, streamB)
	return result
}

// WDM weights the two streams with their wavelengths using the default configuration.
func WDM(streamA, streamB string) core.Samples {
	result, _ := defaultEngine.WDM(streamA, streamB)
	return result
}

// Simulate generates the samples for the mode with the given tag using the
// default configuration. The tag must be exactly "TDM", "FDM" or "WDM", any
// other tag yields an empty sequence.
func Simulate(tag, streamA, streamB string) core.Samples {
	for _, mode := range core.Modes {
		if tag != mode.String() {
			continue
		}
		result, _ := defaultEngine.Generate(mode, streamA, streamB)
		return result
	}
	return core.Samples{}
}
