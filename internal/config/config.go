// Package config handles application configuration and setup
package config

import (
	"math/rand"

	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/driver"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateCPU creates the instruction executor, a nonzero seed makes the
// random instruction deterministic.
func CreateCPU(logger *log.Logger, opts options.Program) *cpu.CPU {
	cpuOptions := []cpu.Option{cpu.WithLogger(logger)}
	if opts.Seed != 0 {
		cpuOptions = append(cpuOptions, cpu.WithRandom(rand.New(rand.NewSource(opts.Seed))))
	}
	return cpu.New(cpuOptions...)
}

// CreateDriverOptions converts the program options to runner options.
func CreateDriverOptions(opts options.Program) driver.Options {
	breakpoints := set.New[uint16]()
	for _, address := range opts.Break {
		breakpoints.Add(address)
	}

	return driver.Options{
		Speed:       opts.Speed,
		Steps:       opts.Steps,
		Trace:       opts.Debug,
		Breakpoints: breakpoints,
	}
}
