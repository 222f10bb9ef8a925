// Package pipeline orchestrates loading, running and inspecting a program.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/buzzer"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/driver"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/statsview"
	"github.com/retroenv/retrochip8/internal/terminal"
	"github.com/retroenv/retrogolib/log"
)

// Frontend is the keyboard, display and buzzer that a program runs with.
type Frontend interface {
	driver.Keyboard
	driver.Display
	driver.Buzzer
}

// Pipeline orchestrates the complete emulation workflow.
type Pipeline struct {
	logger *log.Logger
}

// New creates a new emulation pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
	}
}

// List writes the names of all programs of the rom directory.
func (p *Pipeline) List(opts options.Program, w io.Writer) error {
	names, err := loader.NewDir(opts.RomDir).Names()
	if err != nil {
		return fmt.Errorf("listing roms: %w", err)
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return fmt.Errorf("writing rom name: %w", err)
		}
	}
	return nil
}

// Execute loads the program and runs it, using the terminal as frontend
// unless headless mode is enabled.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) (*machine.State, error) {
	program, err := p.loadProgram(opts)
	if err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}

	app.PrintInfo(p.logger, opts, len(program))

	if opts.Statsview {
		statsview.Launch(p.logger)
	}

	var frontend Frontend
	if !opts.Headless {
		term := terminal.New(os.Stdin, os.Stdout)
		if err := term.Open(); err != nil {
			return nil, fmt.Errorf("opening terminal: %w", err)
		}
		defer func() {
			if err := term.Close(); err != nil {
				p.logger.Error("Restoring terminal failed", log.Err(err))
			}
		}()
		frontend = term
	}

	return p.ExecuteWithProgram(ctx, program, opts, frontend)
}

// ExecuteWithProgram runs an already loaded program. Without a frontend the
// program runs headless as fast as possible.
func (p *Pipeline) ExecuteWithProgram(ctx context.Context, program []byte, opts options.Program,
	frontend Frontend) (state *machine.State, rerr error) {

	state, err := machine.New(program)
	if err != nil {
		return nil, fmt.Errorf("creating machine: %w", err)
	}

	var buzzers buzzer.Multi
	if frontend != nil {
		buzzers = append(buzzers, frontend)
	}
	if opts.Wav != "" {
		recorder := buzzer.NewRecorder(opts.Wav)
		buzzers = append(buzzers, recorder)
		defer func() {
			if err := recorder.Close(); err != nil && rerr == nil {
				rerr = fmt.Errorf("recording sound: %w", err)
			}
		}()
	}

	c := config.CreateCPU(p.logger, opts)
	runner := driver.New(p.logger, state, c, config.CreateDriverOptions(opts), frontend, frontend, buzzers)

	if frontend == nil || opts.Headless {
		err = runner.RunHeadless(ctx)
	} else {
		err = runner.Run(ctx)
	}

	if errors.Is(err, driver.ErrBreakpoint) {
		p.logger.Info("Breakpoint reached", log.Hex("address", state.Address()))
		err = nil
	}

	if opts.Memviz != "" {
		if dumpErr := p.dumpState(opts.Memviz, state); dumpErr != nil && err == nil {
			err = dumpErr
		}
	}

	p.logger.Debug("Execution finished", log.Int("instructions", runner.Executed()))
	return state, err
}

func (p *Pipeline) loadProgram(opts options.Program) ([]byte, error) {
	if opts.RomDir != "" {
		program, err := loader.NewDir(opts.RomDir).Load(opts.Input)
		if err != nil {
			return nil, fmt.Errorf("loading rom '%s': %w", opts.Input, err)
		}
		return program, nil
	}

	program, err := loader.LoadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading file '%s': %w", opts.Input, err)
	}
	return program, nil
}

// snapshot is the part of the machine state that is written as graph,
// memory and display are left out as they would dominate it.
type snapshot struct {
	PC            int32
	I             uint16
	V             [machine.RegisterCount]uint8
	Stack         []uint16
	DelayTimer    uint8
	SoundTimer    uint8
	WaitingForKey bool
	KeyRegister   uint8
}

// dumpState writes a graphviz graph of the machine registers and stack.
func (p *Pipeline) dumpState(filename string, state *machine.State) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating state graph file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("closing state graph file: %w", err)
		}
	}()

	memviz.Map(f, &snapshot{
		PC:            state.PC,
		I:             state.I,
		V:             state.V,
		Stack:         state.Stack,
		DelayTimer:    state.DelayTimer,
		SoundTimer:    state.SoundTimer,
		WaitingForKey: state.WaitingForKey,
		KeyRegister:   state.KeyRegister,
	})

	p.logger.Info("State graph written", log.String("file", filename))
	return nil
}
