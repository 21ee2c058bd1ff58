package mux

import (
	"github.com/ftl/muxsim/core"
	"github.com/ftl/muxsim/core/bits"
)

// TDM interleaves the streams bit by bit: A goes into the even slots, B into
// the odd slots. Once a stream is exhausted, its slots stay empty.
func (e *Engine) TDM(streamA, streamB string) (core.Samples, error) {
	a, err := e.parse(streamA, "A")
	if err != nil {
		return nil, err
	}
	b, err := e.parse(streamB, "B")
	if err != nil {
		return nil, err
	}
	result := make(core.Samples, 0, len(a)+len(b))

	n := maxLen(a, b)
	for i := 0; i < n; i++ {
		if d, ok := a.At(i); ok {
			result = append(result, e.slot(d, "A", i, 2*i))
		}
		if d, ok := b.At(i); ok {
			result = append(result, e.slot(d, "B", i, 2*i+1))
		}
	}

	return result, nil
}

func (e *Engine) slot(d bits.Digit, stream string, position, tick int) core.Sample {
	return core.Sample{
		Time:   float64(tick),
		Label:  core.TickLabel(tick),
		Value:  e.resolve(d, stream, position),
		Symbol: d.String(),
	}
}
