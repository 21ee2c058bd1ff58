package mux

import (
	"github.com/ftl/muxsim/core"
)

// WDM transmits both streams at the same time, each bit weighted by the
// wavelength of its stream. A stream that is exhausted transmits 0.
func (e *Engine) WDM(streamA, streamB string) (core.Samples, error) {
	a, err := e.parse(streamA, "A")
	if err != nil {
		return nil, err
	}
	b, err := e.parse(streamB, "B")
	if err != nil {
		return nil, err
	}

	n := maxLen(a, b)
	bitsA := e.bitValues(a, "A", n)
	bitsB := e.bitValues(b, "B", n)

	result := make(core.Samples, n)
	for i := range result {
		result[i] = core.Sample{
			Time:  float64(i),
			Label: core.TickLabel(i),
			Value: bitsA[i]*e.cfg.WavelengthA + bitsB[i]*e.cfg.WavelengthB,
		}
	}
	return result, nil
}
