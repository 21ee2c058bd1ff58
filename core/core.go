package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Errors reported by the signal engine and the configuration.
var (
	ErrUnsupportedMode      = errors.New("unsupported mode")
	ErrInvalidDigit         = errors.New("invalid digit")
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Frequency represents a frequency in Hz.
type Frequency float64

func (f Frequency) String() string {
	return fmt.Sprintf("%.2fHz", f)
}

// Mode of multiplexing.
type Mode int

// All modes.
const (
	TDM Mode = iota
	FDM
	WDM
)

// Modes in the order they are presented.
var Modes = []Mode{TDM, FDM, WDM}

func (m Mode) String() string {
	switch m {
	case TDM:
		return "TDM"
	case FDM:
		return "FDM"
	case WDM:
		return "WDM"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid indicates if m is one of the known modes.
func (m Mode) Valid() bool {
	return m == TDM || m == FDM || m == WDM
}

// Explanation returns a short description of the multiplexing discipline.
func (m Mode) Explanation() string {
	switch m {
	case TDM:
		return "Time Division Multiplexing (TDM) takes turns sending bits from multiple input streams. " +
			"For every cycle, one bit from A, then one from B is transmitted."
	case FDM:
		return "Frequency Division Multiplexing (FDM) assigns each signal to a different frequency. " +
			"Each bit modulates a sine wave, and the combined signal is the sum of these waveforms."
	case WDM:
		return "Wavelength Division Multiplexing (WDM) uses different light wavelengths to transmit signals " +
			"simultaneously over fiber optics. This simulation uses different numerical wavelengths for " +
			"input A and input B to mimic the combined signal."
	default:
		return ""
	}
}

// ParseMode returns the mode for the given tag. Leading and trailing
// whitespace and the letter case are ignored.
func ParseMode(tag string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(tag)) {
	case "TDM":
		return TDM, nil
	case "FDM":
		return FDM, nil
	case "WDM":
		return WDM, nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedMode, "%q", tag)
	}
}

// DigitPolicy decides how the numeric modes treat characters that are not decimal digits.
type DigitPolicy int

// All digit policies.
const (
	// PropagateInvalid turns an invalid digit into NaN.
	PropagateInvalid DigitPolicy = iota
	// ZeroInvalid substitutes 0 for an invalid digit.
	ZeroInvalid
	// RejectInvalid stops the generation with ErrInvalidDigit.
	RejectInvalid
)

var digitPolicyNames = map[DigitPolicy]string{
	PropagateInvalid: "propagate",
	ZeroInvalid:      "zero",
	RejectInvalid:    "reject",
}

func (p DigitPolicy) String() string {
	if name, ok := digitPolicyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("DigitPolicy(%d)", int(p))
}

// ParseDigitPolicy returns the policy with the given name.
func ParseDigitPolicy(name string) (DigitPolicy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for p, n := range digitPolicyNames {
		if n == name {
			return p, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidConfiguration, "unknown digit policy %q", name)
}

// Sample is one point of a multiplexed signal.
type Sample struct {
	// Time is the tick index (TDM, WDM) or the elapsed time (FDM).
	Time float64
	// Label is the time as shown on the time axis.
	Label string
	// Value is the signal value at Time. It may be NaN.
	Value float64
	// Symbol is the raw transmitted character, only set in TDM.
	Symbol string
}

// Samples is a chronologically ordered sequence of samples.
type Samples []Sample

// Times of all samples.
func (s Samples) Times() []float64 {
	result := make([]float64, len(s))
	for i, sample := range s {
		result[i] = sample.Time
	}
	return result
}

// Values of all samples.
func (s Samples) Values() []float64 {
	result := make([]float64, len(s))
	for i, sample := range s {
		result[i] = sample.Value
	}
	return result
}

// Labels of all samples.
func (s Samples) Labels() []string {
	result := make([]string, len(s))
	for i, sample := range s {
		result[i] = sample.Label
	}
	return result
}

// Span returns the smallest and the largest finite value. ok is false if
// there is no finite value.
func (s Samples) Span() (min, max float64, ok bool) {
	finite := make([]float64, 0, len(s))
	for _, sample := range s {
		if math.IsNaN(sample.Value) || math.IsInf(sample.Value, 0) {
			continue
		}
		finite = append(finite, sample.Value)
	}
	if len(finite) == 0 {
		return 0, 0, false
	}
	return floats.Min(finite), floats.Max(finite), true
}

// TickLabel formats an integer tick for the time axis.
func TickLabel(tick int) string {
	return strconv.Itoa(tick)
}

// SecondsLabel formats an elapsed time for the time axis, with two decimal
// places. Exact ties round away from zero, so 0.125 becomes "0.13".
func SecondsLabel(t float64) string {
	// the only exact ties at two decimals are the odd multiples of 1/8
	if eighths := t * 8; eighths == math.Trunc(eighths) && math.Mod(eighths, 2) != 0 {
		t = math.Nextafter(t, math.Copysign(math.Inf(1), t))
	}
	return strconv.FormatFloat(t, 'f', 2, 64)
}

// Signal is the output of one simulation run.
type Signal struct {
	Mode    Mode
	Samples Samples
}

// Label of the signal, as used for the chart legend.
func (s Signal) Label() string {
	return s.Mode.String() + " Signal"
}

// Configuration parameters of the application.
type Configuration struct {
	Mode   Mode
	InputA string
	InputB string

	BitDuration float64
	SampleRate  int
	CarrierA    Frequency
	CarrierB    Frequency

	WavelengthA float64
	WavelengthB float64

	InvalidDigits DigitPolicy
}

// DefaultConfiguration returns the constants of the simulation.
func DefaultConfiguration() Configuration {
	return Configuration{
		Mode:   TDM,
		InputA: "1010",
		InputB: "1100",

		BitDuration: 1,
		SampleRate:  100,
		CarrierA:    2,
		CarrierB:    5,

		WavelengthA: 1,
		WavelengthB: 2,

		InvalidDigits: PropagateInvalid,
	}
}

// SamplesPerBit is the number of FDM samples that carry one bit.
func (c Configuration) SamplesPerBit() int {
	return int(math.Round(c.BitDuration * float64(c.SampleRate)))
}

// Validate the configuration.
func (c Configuration) Validate() error {
	switch {
	case !c.Mode.Valid():
		return errors.Wrapf(ErrInvalidConfiguration, "mode %v", c.Mode)
	case c.SampleRate <= 0:
		return errors.Wrapf(ErrInvalidConfiguration, "sample rate must be > 0: %d", c.SampleRate)
	case !(c.BitDuration > 0) || math.IsInf(c.BitDuration, 1):
		return errors.Wrapf(ErrInvalidConfiguration, "bit duration must be finite and > 0: %f", c.BitDuration)
	case c.SamplesPerBit() <= 0:
		return errors.Wrapf(ErrInvalidConfiguration, "bit duration %f yields no samples at %d samples/unit", c.BitDuration, c.SampleRate)
	case !finite(float64(c.CarrierA)) || !finite(float64(c.CarrierB)):
		return errors.Wrapf(ErrInvalidConfiguration, "carrier frequency must be finite: %v, %v", c.CarrierA, c.CarrierB)
	case !finite(c.WavelengthA) || !finite(c.WavelengthB):
		return errors.Wrapf(ErrInvalidConfiguration, "wavelength must be finite: %f, %f", c.WavelengthA, c.WavelengthB)
	}
	if _, ok := digitPolicyNames[c.InvalidDigits]; !ok {
		return errors.Wrapf(ErrInvalidConfiguration, "digit policy %v", c.InvalidDigits)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
