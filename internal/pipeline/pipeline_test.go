package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// counterProgram loads 5 into V0 and increments it in an endless loop.
var counterProgram = []byte{
	0x60, 0x05, // 0x200: LD V0, 5
	0x70, 0x01, // 0x202: ADD V0, 1
	0x12, 0x02, // 0x204: JP 0x202
}

func headlessOptions(steps int) options.Program {
	return options.Program{
		Flags: options.Flags{
			Headless: true,
			Speed:    700,
			Steps:    steps,
			Quiet:    true,
		},
	}
}

func TestNew(t *testing.T) {
	p := New(log.NewTestLogger(t))
	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
}

func TestExecuteWithProgram(t *testing.T) {
	p := New(log.NewTestLogger(t))

	state, err := p.ExecuteWithProgram(context.Background(), counterProgram, headlessOptions(10), nil)
	assert.NoError(t, err)
	assert.Equal(t, uint8(10), state.V[0])
	assert.Equal(t, int32(0x204), state.PC)
}

func TestExecuteWithProgram_Breakpoint(t *testing.T) {
	p := New(log.NewTestLogger(t))
	opts := headlessOptions(100)
	opts.Break = []uint16{0x204}

	state, err := p.ExecuteWithProgram(context.Background(), counterProgram, opts, nil)
	assert.NoError(t, err)
	assert.Equal(t, int32(0x204), state.PC)
	assert.Equal(t, uint8(6), state.V[0])
}

func TestExecuteWithProgram_Canceled(t *testing.T) {
	p := New(log.NewTestLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.ExecuteWithProgram(ctx, counterProgram, headlessOptions(100), nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestExecuteWithProgram_TooLarge(t *testing.T) {
	p := New(log.NewTestLogger(t))

	_, err := p.ExecuteWithProgram(context.Background(), make([]byte, 4000), headlessOptions(1), nil)
	assert.ErrorContains(t, err, "creating machine")
}

func TestExecuteWithProgram_Outputs(t *testing.T) {
	dir := t.TempDir()
	p := New(log.NewTestLogger(t))

	opts := headlessOptions(30)
	opts.Wav = filepath.Join(dir, "sound.wav")
	opts.Memviz = filepath.Join(dir, "state.dot")

	program := []byte{
		0x60, 0x03, // 0x200: LD V0, 3
		0xF0, 0x18, // 0x202: LD ST, V0
		0x12, 0x04, // 0x204: JP 0x204
	}
	_, err := p.ExecuteWithProgram(context.Background(), program, opts, nil)
	assert.NoError(t, err)

	info, err := os.Stat(opts.Wav)
	assert.NoError(t, err)
	assert.True(t, info.Size() > 44)

	graph, err := os.ReadFile(opts.Memviz)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(string(graph), "digraph"))
}

func TestExecute(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "counter.ch8"), counterProgram, 0o600))
	p := New(log.NewTestLogger(t))

	opts := headlessOptions(4)
	opts.RomDir = dir
	opts.Input = "counter.ch8"
	state, err := p.Execute(context.Background(), opts)
	assert.NoError(t, err)
	assert.Equal(t, uint8(7), state.V[0])

	opts.RomDir = ""
	opts.Input = filepath.Join(dir, "counter.ch8")
	state, err = p.Execute(context.Background(), opts)
	assert.NoError(t, err)
	assert.Equal(t, uint8(7), state.V[0])
}

func TestExecute_MissingFile(t *testing.T) {
	p := New(log.NewTestLogger(t))
	opts := headlessOptions(1)
	opts.Input = filepath.Join(t.TempDir(), "missing.ch8")

	_, err := p.Execute(context.Background(), opts)
	assert.ErrorContains(t, err, "loading program")
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "pong.ch8"), counterProgram, 0o600))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("readme"), 0o600))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "TETRIS"), counterProgram, 0o600))
	p := New(log.NewTestLogger(t))

	var buf bytes.Buffer
	opts := options.Program{Parameters: options.Parameters{RomDir: dir}}
	assert.NoError(t, p.List(opts, &buf))
	assert.Equal(t, "TETRIS\npong.ch8\n", buf.String())
}
