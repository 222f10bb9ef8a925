// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/driver"
	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Program
	var breakpoints string
	readOptionFlags(flags, &opts, &breakpoints)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && !opts.List) {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts, breakpoints); err != nil {
		return opts, err
	}

	if len(args) > 0 {
		opts.Input = args[0]
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <rom file or name>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, "-") {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after rom to run, please pass the rom as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions validates option values and parses the breakpoint list
func normalizeOptions(opts *options.Program, breakpoints string) error {
	if opts.Speed <= 0 {
		return fmt.Errorf("invalid speed %d, the speed has to be positive", opts.Speed)
	}
	if opts.Steps < 0 {
		return fmt.Errorf("invalid steps %d, the steps can not be negative", opts.Steps)
	}
	if opts.List && opts.RomDir == "" {
		return fmt.Errorf("listing roms requires a rom directory")
	}
	if opts.Headless && opts.Steps == 0 {
		return fmt.Errorf("headless mode requires a steps limit")
	}

	for _, s := range strings.Split(breakpoints, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		address, err := strconv.ParseUint(s, 0, 12)
		if err != nil {
			return fmt.Errorf("invalid breakpoint address '%s': %w", s, err)
		}
		opts.Break = append(opts.Break, uint16(address))
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program, breakpoints *string) {
	flags.StringVar(&opts.RomDir, "d", "", "directory to look up the rom by name in")
	flags.StringVar(&opts.Wav, "wav", "", "name of the .wav file to record the buzzer output to")
	flags.StringVar(&opts.Memviz, "memviz", "", "name of the .dot file to write a graph of the final machine state to")
	flags.StringVar(breakpoints, "break", "", "comma separated list of addresses to stop execution at, for example 0x2A0,0x300")
	flags.BoolVar(&opts.List, "list", false, "list all roms of the rom directory")
	flags.BoolVar(&opts.Headless, "headless", false, "run without terminal display and keyboard, requires -steps")
	flags.BoolVar(&opts.Statsview, "statsview", false, "serve runtime statistics of the emulator process")
	flags.IntVar(&opts.Speed, "speed", driver.DefaultSpeed, "instructions to execute per second")
	flags.IntVar(&opts.Steps, "steps", 0, "stop after executing this many cycles, 0 for no limit")
	flags.Int64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 for a time based seed")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging and instruction tracing")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
