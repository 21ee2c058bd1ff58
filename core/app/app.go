package app

import (
	"sync"

	"go.uber.org/zap"

	"github.com/ftl/muxsim/core"
)

// NewController returns a new controller that simulates with the given engine.
// The initial state is taken from the configuration.
func NewController(engine Engine, configuration core.Configuration, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	initial := State{
		Mode:   configuration.Mode,
		InputA: configuration.InputA,
		InputB: configuration.InputB,
		Output: core.Signal{Mode: configuration.Mode, Samples: core.Samples{}},
	}
	return &Controller{
		loop: newMainLoop(engine, initial, logger),
		log:  logger,
	}
}

// OutputView shows the result of a simulation.
type OutputView interface {
	ShowSignal(core.Signal)
	ShowError(error)
}

// Controller for the application.
type Controller struct {
	done         chan struct{}
	subProcesses *sync.WaitGroup

	loop *mainLoop
	log  *zap.Logger
}

// Startup the application.
func (c *Controller) Startup() {
	c.done = make(chan struct{})
	c.subProcesses = new(sync.WaitGroup)

	c.subProcesses.Add(1)
	go func() {
		defer c.subProcesses.Done()
		c.loop.Run(c.done)
	}()
	c.log.Debug("controller started")
}

// Shutdown the application.
func (c *Controller) Shutdown() {
	close(c.done)
	c.subProcesses.Wait()
}

// SetOutputView sets the view that shows the simulated signal.
func (c *Controller) SetOutputView(view OutputView) {
	c.loop.SetView(view)
}

// SelectMode selects the mode for the next simulation.
func (c *Controller) SelectMode(mode core.Mode) {
	c.loop.SetMode(mode)
}

// SelectModeTag selects the mode with the given tag for the next simulation.
func (c *Controller) SelectModeTag(tag string) error {
	mode, err := core.ParseMode(tag)
	if err != nil {
		return err
	}
	c.loop.SetMode(mode)
	return nil
}

// SetInputA sets the digit stream A.
func (c *Controller) SetInputA(bits string) {
	c.loop.SetInputA(bits)
}

// SetInputB sets the digit stream B.
func (c *Controller) SetInputB(bits string) {
	c.loop.SetInputB(bits)
}

// Simulate the current mode with the current inputs. The result is sent to the output view.
func (c *Controller) Simulate() {
	c.loop.Simulate()
}

// State returns the current state. ok is false if the controller is not running.
func (c *Controller) State() (state State, ok bool) {
	return c.loop.State()
}
