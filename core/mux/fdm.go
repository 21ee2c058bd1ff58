package mux

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/ftl/muxsim/core"
)

// FDM modulates each stream onto its own sine carrier and sums both carriers.
// Every bit lasts for SamplesPerBit samples. A stream that is exhausted
// transmits 0.
func (e *Engine) FDM(streamA, streamB string) (core.Samples, error) {
	a, err := e.parse(streamA, "A")
	if err != nil {
		return nil, err
	}
	b, err := e.parse(streamB, "B")
	if err != nil {
		return nil, err
	}

	bitCount := maxLen(a, b)
	samplesPerBit := e.cfg.SamplesPerBit()
	n := samplesPerBit * bitCount

	bitsA := e.bitValues(a, "A", bitCount)
	bitsB := e.bitValues(b, "B", bitCount)

	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i) / float64(e.cfg.SampleRate)
	}

	sum := make([]float64, n)
	floats.Add(sum, modulate(bitsA, samplesPerBit, times, e.cfg.CarrierA))
	floats.Add(sum, modulate(bitsB, samplesPerBit, times, e.cfg.CarrierB))

	result := make(core.Samples, n)
	for i, t := range times {
		result[i] = core.Sample{
			Time:  t,
			Label: core.SecondsLabel(t),
			Value: sum[i],
		}
	}
	return result, nil
}

// modulate returns the carrier with frequency f, keyed by the given bits.
func modulate(bitValues []float64, samplesPerBit int, times []float64, f core.Frequency) []float64 {
	carrier := make([]float64, len(times))
	envelope := make([]float64, len(times))
	for i, t := range times {
		carrier[i] = math.Sin(2 * math.Pi * float64(f) * t)
		envelope[i] = bitValues[i/samplesPerBit]
	}
	vecmath.MulBlockInPlace(carrier, envelope)
	return carrier
}
