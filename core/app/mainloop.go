package app

import (
	"go.uber.org/zap"

	"github.com/ftl/muxsim/core"
)

func newMainLoop(engine Engine, initial State, logger *zap.Logger) *mainLoop {
	return &mainLoop{
		engine:  engine,
		state:   initial,
		command: make(chan command, 10),
		stopped: make(chan struct{}),
		log:     logger,
	}
}

type command func()

type mainLoop struct {
	engine Engine
	view   OutputView
	state  State

	command chan command
	stopped chan struct{}
	log     *zap.Logger
}

// Engine generates the samples of a mode.
type Engine interface {
	Generate(mode core.Mode, streamA, streamB string) (core.Samples, error)
}

// State of the simulation, as shown to the user.
type State struct {
	Mode   core.Mode
	InputA string
	InputB string
	Output core.Signal
}

func (m *mainLoop) Run(stop chan struct{}) {
	defer m.log.Debug("main loop shutdown")
	defer close(m.stopped)
	for {
		select {
		case command := <-m.command:
			command()
		case <-stop:
			return
		}
	}
}

// q enqueues the command. It returns false if the main loop is not running anymore.
func (m *mainLoop) q(cmd command) bool {
	select {
	case m.command <- cmd:
		return true
	case <-m.stopped:
		m.log.Warn("main loop stopped, command dropped")
		return false
	}
}

func (m *mainLoop) SetView(view OutputView) {
	m.q(func() {
		m.view = view
	})
}

func (m *mainLoop) SetMode(mode core.Mode) {
	m.q(func() {
		m.state.Mode = mode
	})
}

func (m *mainLoop) SetInputA(bits string) {
	m.q(func() {
		m.state.InputA = bits
	})
}

func (m *mainLoop) SetInputB(bits string) {
	m.q(func() {
		m.state.InputB = bits
	})
}

func (m *mainLoop) Simulate() {
	m.q(m.simulate)
}

func (m *mainLoop) simulate() {
	samples, err := m.engine.Generate(m.state.Mode, m.state.InputA, m.state.InputB)
	if err != nil {
		m.log.Warn("simulation failed", zap.Stringer("mode", m.state.Mode), zap.Error(err))
		if m.view != nil {
			m.view.ShowError(err)
		}
		return
	}

	m.state.Output = core.Signal{Mode: m.state.Mode, Samples: samples}
	m.log.Debug("simulation done", zap.Stringer("mode", m.state.Mode), zap.Int("samples", len(samples)))
	if m.view != nil {
		m.view.ShowSignal(m.state.Output)
	}
}

func (m *mainLoop) State() (State, bool) {
	result := make(chan State, 1)
	if !m.q(func() { result <- m.state }) {
		return State{}, false
	}
	select {
	case state := <-result:
		return state, true
	case <-m.stopped:
		select {
		case state := <-result:
			return state, true
		default:
			return State{}, false
		}
	}
}
