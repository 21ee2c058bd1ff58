package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/ftl/muxsim/core"
)

func TestStopAndDone(t *testing.T) {
	m := newMainLoop(&mockEngine{}, State{}, zap.NewNop())

	stop := make(chan struct{})
	start := time.Now()
	go func() {
		time.Sleep(100 * time.Millisecond)
		close(stop)
	}()
	m.Run(stop)
	duration := time.Since(start)

	assert.True(t, duration >= 100*time.Millisecond)
}

func TestCommandsAfterStopAreDropped(t *testing.T) {
	m := newMainLoop(&mockEngine{}, State{}, zap.NewNop())
	stop := make(chan struct{})
	close(stop)
	m.Run(stop)

	m.SetInputA("1")
	_, ok := m.State()

	assert.False(t, ok)
}

func TestSimulateUsesCurrentState(t *testing.T) {
	engine := &mockEngine{samples: core.Samples{{Time: 0, Label: "0", Value: 1}}}
	m := newMainLoop(engine, State{Mode: core.TDM}, zap.NewNop())
	stop := make(chan struct{})
	defer close(stop)
	go m.Run(stop)

	m.SetMode(core.WDM)
	m.SetInputA("10")
	m.SetInputB("01")
	m.Simulate()
	state, ok := m.State()

	assert.True(t, ok)
	assert.Equal(t, []call{{core.WDM, "10", "01"}}, engine.calls)
	assert.Equal(t, core.Signal{Mode: core.WDM, Samples: engine.samples}, state.Output)
}

type call struct {
	mode core.Mode
	a, b string
}

type mockEngine struct {
	samples core.Samples
	err     error
	calls   []call
}

func (m *mockEngine) Generate(mode core.Mode, streamA, streamB string) (core.Samples, error) {
	m.calls = append(m.calls, call{mode, streamA, streamB})
	return m.samples, m.err
}
