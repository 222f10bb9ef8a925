// Package terminal implements a text terminal frontend for the machine,
// rendering the display with block characters and reading the keypad from
// the raw mode standard input.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/retroenv/retrochip8/internal/machine"
)

// HoldDuration is how long a key counts as pressed after its character was
// received. Terminals only report key presses, not releases.
const HoldDuration = 150 * time.Millisecond

// keyMap maps the keyboard layout to the hex keypad of the COSMAC VIP:
//
//	1 2 3 4      1 2 3 C
//	q w e r      4 5 6 D
//	a s d f  ->  7 8 9 E
//	z x c v      A 0 B F
var keyMap = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Terminal is the keyboard, display and bell of a text terminal.
type Terminal struct {
	input  *os.File
	output io.Writer

	mu       sync.Mutex
	lastSeen [machine.KeyCount]time.Time
	now      func() time.Time

	restore func() error
	bell    bool
}

// New returns a terminal frontend for the given files.
func New(input *os.File, output io.Writer) *Terminal {
	return &Terminal{
		input:  input,
		output: output,
		now:    time.Now,
	}
}

// Open switches the input to raw mode and starts reading keys in the
// background. Close has to be called to restore the terminal mode.
func (t *Terminal) Open() error {
	restore, err := enterRawMode(int(t.input.Fd()))
	if err != nil {
		return fmt.Errorf("entering raw terminal mode: %w", err)
	}
	t.restore = restore

	// clear screen and hide cursor
	if _, err := io.WriteString(t.output, "\x1b[2J\x1b[?25l"); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}

	go t.readKeys(t.input)
	return nil
}

// Close restores the terminal mode and shows the cursor again.
func (t *Terminal) Close() error {
	_, _ = io.WriteString(t.output, "\x1b[?25h\n")
	if t.restore == nil {
		return nil
	}
	if err := t.restore(); err != nil {
		return fmt.Errorf("restoring terminal mode: %w", err)
	}
	return nil
}

// readKeys records the time of every mapped key press until the reader fails.
func (t *Terminal) readKeys(r io.Reader) {
	reader := bufio.NewReader(r)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return
		}
		t.press(b)
	}
}

func (t *Terminal) press(b byte) {
	key, ok := keyMap[toLower(b)]
	if !ok {
		return
	}
	t.mu.Lock()
	t.lastSeen[key] = t.now()
	t.mu.Unlock()
}

// Keys returns the keys that were pressed within the hold duration.
func (t *Terminal) Keys() machine.Keys {
	var keys machine.Keys
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()
	for key, seen := range t.lastSeen {
		keys[key] = !seen.IsZero() && now.Sub(seen) < HoldDuration
	}
	return keys
}

// Render draws the display using half block characters, two pixel rows
// per text line.
func (t *Terminal) Render(display *machine.Display) error {
	var sb strings.Builder
	sb.WriteString("\x1b[H")
	for y := 0; y < machine.DisplayHeight; y += 2 {
		for x := 0; x < machine.DisplayWidth; x++ {
			sb.WriteString(halfBlock(display[x][y], display[x][y+1]))
		}
		sb.WriteString("\r\n")
	}

	if _, err := io.WriteString(t.output, sb.String()); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	return nil
}

// SetTone rings the terminal bell when the tone starts.
func (t *Terminal) SetTone(active bool) {
	if active && !t.bell {
		_, _ = io.WriteString(t.output, "\a")
	}
	t.bell = active
}

func halfBlock(upper, lower bool) string {
	switch {
	case upper && lower:
		return "█"
	case upper:
		return "▀"
	case lower:
		return "▄"
	default:
		return " "
	}
}

func toLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 'a' - 'A'
	}
	return b
}
