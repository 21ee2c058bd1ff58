package cfg

import (
	"math"

	"github.com/ftl/hamradio/cfg"
	"github.com/pkg/errors"

	"github.com/ftl/muxsim/core"
)

const (
	mode          cfg.Key = "muxsim.mode"
	inputA        cfg.Key = "muxsim.inputA"
	inputB        cfg.Key = "muxsim.inputB"
	invalidDigits cfg.Key = "muxsim.invalidDigits"
	bitDuration   cfg.Key = "muxsim.fdm.bitDuration"
	sampleRate    cfg.Key = "muxsim.fdm.sampleRate"
	carrierA      cfg.Key = "muxsim.fdm.carrierA"
	carrierB      cfg.Key = "muxsim.fdm.carrierB"
	wavelengthA   cfg.Key = "muxsim.wdm.wavelengthA"
	wavelengthB   cfg.Key = "muxsim.wdm.wavelengthB"
)

// Getter provides configuration values by key.
type Getter interface {
	Get(key cfg.Key, defaultValue interface{}) interface{}
}

// GetterFunc adapts a function to the Getter interface.
type GetterFunc func(key cfg.Key, defaultValue interface{}) interface{}

// Get the value for the given key.
func (f GetterFunc) Get(key cfg.Key, defaultValue interface{}) interface{} {
	return f(key, defaultValue)
}

// Load the configuration from the default configuration file.
func Load() (core.Configuration, error) {
	configuration, err := cfg.LoadDefault()
	if err != nil {
		return core.Configuration{}, errors.Wrap(err, "cannot load configuration")
	}
	return FromGetter(GetterFunc(configuration.Get))
}

// FromGetter reads the configuration from the given values. Missing keys fall back to the static configuration.
func FromGetter(configuration Getter) (core.Configuration, error) {
	defaults := Static()
	result := defaults

	modeTag, err := getString(configuration, mode, defaults.Mode.String())
	if err != nil {
		return core.Configuration{}, err
	}
	result.Mode, err = core.ParseMode(modeTag)
	if err != nil {
		return core.Configuration{}, errors.Wrap(err, "cannot read "+string(mode))
	}

	policyName, err := getString(configuration, invalidDigits, defaults.InvalidDigits.String())
	if err != nil {
		return core.Configuration{}, err
	}
	result.InvalidDigits, err = core.ParseDigitPolicy(policyName)
	if err != nil {
		return core.Configuration{}, errors.Wrap(err, "cannot read "+string(invalidDigits))
	}

	if result.InputA, err = getString(configuration, inputA, defaults.InputA); err != nil {
		return core.Configuration{}, err
	}
	if result.InputB, err = getString(configuration, inputB, defaults.InputB); err != nil {
		return core.Configuration{}, err
	}
	if result.BitDuration, err = getFloat(configuration, bitDuration, defaults.BitDuration); err != nil {
		return core.Configuration{}, err
	}
	rate, err := getFloat(configuration, sampleRate, float64(defaults.SampleRate))
	if err != nil {
		return core.Configuration{}, err
	}
	if rate != math.Trunc(rate) || math.Abs(rate) > math.MaxInt32 {
		return core.Configuration{}, errors.Wrapf(core.ErrInvalidConfiguration, "%s must be an integer: %v", sampleRate, rate)
	}
	result.SampleRate = int(rate)
	fA, err := getFloat(configuration, carrierA, float64(defaults.CarrierA))
	if err != nil {
		return core.Configuration{}, err
	}
	result.CarrierA = core.Frequency(fA)
	fB, err := getFloat(configuration, carrierB, float64(defaults.CarrierB))
	if err != nil {
		return core.Configuration{}, err
	}
	result.CarrierB = core.Frequency(fB)
	if result.WavelengthA, err = getFloat(configuration, wavelengthA, defaults.WavelengthA); err != nil {
		return core.Configuration{}, err
	}
	if result.WavelengthB, err = getFloat(configuration, wavelengthB, defaults.WavelengthB); err != nil {
		return core.Configuration{}, err
	}

	if err := result.Validate(); err != nil {
		return core.Configuration{}, err
	}
	return result, nil
}

// Static configuration with the default values.
func Static() core.Configuration {
	return core.DefaultConfiguration()
}

// JSON numbers are always decoded as float64.
func getFloat(configuration Getter, key cfg.Key, defaultValue float64) (float64, error) {
	value, ok := configuration.Get(key, defaultValue).(float64)
	if !ok {
		return 0, errors.Wrapf(core.ErrInvalidConfiguration, "%s must be a number", key)
	}
	return value, nil
}

func getString(configuration Getter, key cfg.Key, defaultValue string) (string, error) {
	value, ok := configuration.Get(key, defaultValue).(string)
	if !ok {
		return "", errors.Wrapf(core.ErrInvalidConfiguration, "%s must be a string", key)
	}
	return value, nil
}
