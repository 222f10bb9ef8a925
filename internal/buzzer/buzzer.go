// Package buzzer converts the sound timer state into audio. The recorder
// buffers the generated square wave in memory and writes it as WAV file when
// it is closed, it is therefore meant for debugging and testing.
package buzzer

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	// SampleRate of the generated audio in Hz, a multiple of the tick rate.
	SampleRate = 44100

	// ToneFrequency of the square wave in Hz.
	ToneFrequency = 440

	// ticksPerSecond is the rate that SetTone is called with.
	ticksPerSecond = 60

	bitDepth  = 16
	amplitude = 8000

	wavFormatPCM = 1
)

// Recorder records the buzzer output of every timer tick.
type Recorder struct {
	filename string
	samples  []int
	phase    int
}

// NewRecorder returns a recorder that writes to the given file on Close.
func NewRecorder(filename string) *Recorder {
	return &Recorder{
		filename: filename,
	}
}

// SetTone appends the audio of one timer tick, a square wave if the tone
// is active and silence otherwise.
func (r *Recorder) SetTone(active bool) {
	const samplesPerTick = SampleRate / ticksPerSecond
	const halfPeriod = SampleRate / ToneFrequency / 2

	for i := 0; i < samplesPerTick; i++ {
		value := 0
		if active {
			value = amplitude
			if (r.phase/halfPeriod)%2 == 1 {
				value = -amplitude
			}
			r.phase++
		}
		r.samples = append(r.samples, value)
	}
}

// Samples returns the number of recorded samples.
func (r *Recorder) Samples() int {
	return len(r.samples)
}

// Close writes the recorded audio to the file.
func (r *Recorder) Close() (rerr error) {
	f, err := os.Create(r.filename)
	if err != nil {
		return fmt.Errorf("creating wav file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("closing wav file: %w", err)
		}
	}()

	enc := wav.NewEncoder(f, SampleRate, bitDepth, 1, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  SampleRate,
		},
		Data:           r.samples,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encoding wav data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing wav file: %w", err)
	}
	return nil
}

// Buzzer receives the sound state once per timer tick.
type Buzzer interface {
	SetTone(active bool)
}

// Multi forwards the sound state to all given buzzers.
type Multi []Buzzer

// SetTone implements the driver buzzer interface.
func (m Multi) SetTone(active bool) {
	for _, b := range m {
		b.SetTone(active)
	}
}
