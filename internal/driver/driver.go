// Package driver runs programs on the CHIP-8 machine. It samples the keypad,
// fetches and executes instructions, resolves key waits, ticks the timers and
// hands the display and sound state to the frontend.
package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

const (
	// TimerFrequency is the rate in Hz that the delay and sound timers are
	// decremented with.
	TimerFrequency = 60

	// DefaultSpeed is the default number of instructions executed per second.
	DefaultSpeed = 700
)

// ErrBreakpoint is returned when execution reaches a breakpoint address.
var ErrBreakpoint = errors.New("breakpoint reached")

// Keyboard provides the current state of the keypad.
type Keyboard interface {
	Keys() machine.Keys
}

// Display renders the frame buffer.
type Display interface {
	Render(display *machine.Display) error
}

// Buzzer receives the sound state once per timer tick.
type Buzzer interface {
	SetTone(active bool)
}

// Options configures the runner.
type Options struct {
	Speed       int             // instructions per second
	Steps       int             // stop after this many cycles, 0 for no limit
	Trace       bool            // log every executed instruction
	Breakpoints set.Set[uint16] // addresses to stop execution at
}

// Runner drives the execution of a program.
type Runner struct {
	logger *log.Logger
	state  *machine.State
	cpu    *cpu.CPU
	opts   Options

	keyboard Keyboard
	display  Display
	buzzer   Buzzer

	previousKeys machine.Keys
	rendered     machine.Display
	cycles       int
	executed     int
}

// New returns a new runner for the given machine state. Keyboard, display
// and buzzer are optional.
func New(logger *log.Logger, state *machine.State, c *cpu.CPU, opts Options,
	keyboard Keyboard, display Display, buzzer Buzzer) *Runner {

	if opts.Speed <= 0 {
		opts.Speed = DefaultSpeed
	}

	return &Runner{
		logger:   logger,
		state:    state,
		cpu:      c,
		opts:     opts,
		keyboard: keyboard,
		display:  display,
		buzzer:   buzzer,
	}
}

// State returns the machine state that the runner operates on.
func (r *Runner) State() *machine.State {
	return r.state
}

// Executed returns the number of instructions executed so far.
func (r *Runner) Executed() int {
	return r.executed
}

// Done returns whether the configured cycle limit has been reached.
func (r *Runner) Done() bool {
	return r.opts.Steps > 0 && r.cycles >= r.opts.Steps
}

// Step performs a single cycle. While a key is awaited no instruction is
// executed, instead the keypad is scanned for a key that was pressed since
// the previous cycle.
func (r *Runner) Step() error {
	r.cycles++
	keys := r.sampleKeys()
	previous := r.previousKeys
	r.previousKeys = keys

	if r.state.WaitingForKey {
		r.resolveKeyWait(previous, keys)
		return nil
	}

	address := r.state.Address()
	if r.opts.Breakpoints.Contains(address) {
		return fmt.Errorf("%w at address $%03X", ErrBreakpoint, address)
	}

	op := opcode.Fetch(r.state.Memory[:], r.state.PC)
	if r.opts.Trace {
		r.logger.Debug("Executing instruction",
			log.Hex("address", address),
			log.String("opcode", op.String()),
			log.String("instruction", op.Mnemonic()))
	}

	if err := r.cpu.Execute(r.state, op, keys); err != nil {
		return fmt.Errorf("executing %s: %w", op.Mnemonic(), err)
	}
	r.executed++
	return nil
}

// Tick decrements the timers and updates the buzzer. It has to be called
// with the timer frequency.
func (r *Runner) Tick() {
	r.state.TickTimers()
	if r.buzzer != nil {
		r.buzzer.SetTone(r.state.SoundActive())
	}
}

// Frame executes the instructions of one timer period, ticks the timers and
// renders the display if it changed.
func (r *Runner) Frame() error {
	for i := 0; i < r.instructionsPerFrame() && !r.Done(); i++ {
		if err := r.Step(); err != nil {
			return err
		}
	}
	r.Tick()
	return r.render()
}

// Run executes the program in real time until the context is canceled,
// the cycle limit is reached or a fatal error occurs.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / TimerFrequency)
	defer ticker.Stop()

	if err := r.render(); err != nil {
		return err
	}

	for !r.Done() {
		select {
		case <-ctx.Done():
			return fmt.Errorf("running program: %w", ctx.Err())
		case <-ticker.C:
			if err := r.Frame(); err != nil {
				return err
			}
		}
	}

	r.logger.Debug("Cycle limit reached", log.Int("instructions", r.executed))
	return nil
}

// RunHeadless executes the program as fast as possible, ticking the timers
// every instructions per frame. It requires a cycle limit or a cancelable
// context to terminate.
func (r *Runner) RunHeadless(ctx context.Context) error {
	for !r.Done() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("running program: %w", err)
		}
		if err := r.Frame(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) instructionsPerFrame() int {
	n := r.opts.Speed / TimerFrequency
	if n < 1 {
		return 1
	}
	return n
}

func (r *Runner) sampleKeys() machine.Keys {
	if r.keyboard == nil {
		return machine.Keys{}
	}
	return r.keyboard.Keys()
}

// resolveKeyWait stores the lowest key that changed from released to pressed.
func (r *Runner) resolveKeyWait(previous, keys machine.Keys) {
	for key := range keys {
		if keys[key] && !previous[key] {
			r.logger.Debug("Key pressed while waiting",
				log.Hex("key", uint8(key)),
				log.String("register", fmt.Sprintf("V%X", r.state.KeyRegister)))
			r.state.ResolveKey(uint8(key))
			return
		}
	}
}

func (r *Runner) render() error {
	if r.display == nil || r.rendered == r.state.Display {
		return nil
	}
	if err := r.display.Render(&r.state.Display); err != nil {
		return fmt.Errorf("rendering display: %w", err)
	}
	r.rendered = r.state.Display
	return nil
}
