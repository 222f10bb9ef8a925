// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string // ROM file, or ROM name if RomDir is set
	RomDir string // directory to look up ROMs by name
	Wav    string // file to record the buzzer output to
	Memviz string // file to write a graph of the final machine state to
}

// Flags contains behavior options.
type Flags struct {
	List      bool     // list the ROMs of RomDir and exit
	Headless  bool     // run without terminal frontend
	Statsview bool     // serve runtime statistics while running
	Speed     int      // instructions per second
	Steps     int      // stop after this many cycles, 0 for no limit
	Seed      int64    // seed of the random instruction, 0 for time based
	Break     []uint16 // breakpoint addresses
	Debug     bool
	Quiet     bool
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
}
