// Package app provides the main application helpers for the emulator.
package app

import (
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints the application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Debug("Build", log.String("date", date))
	}
}

// PrintInfo prints the information about the program to run.
func PrintInfo(logger *log.Logger, opts options.Program, programSize int) {
	if opts.Quiet {
		return
	}

	logger.Info("Running CHIP-8 program",
		log.String("file", opts.Input),
		log.Int("size", programSize),
		log.Int("speed", opts.Speed),
	)
	if opts.Seed != 0 {
		logger.Info("Using fixed random seed", log.Int("seed", int(opts.Seed)))
	}
	if len(opts.Break) > 0 {
		logger.Info("Breakpoints set", log.Int("count", len(opts.Break)))
	}
}
