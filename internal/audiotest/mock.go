// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds synthetic audio sources and sample generators
// shared by the package tests.
package audiotest

import (
	"io"
	"math"
)

// Waveform returns the value of one channel at a frame index.
type Waveform func(sample int, channel int) float32

// MockSource generates audio on demand.
// It implements the audio.Source interface (without importing it to avoid cycles).
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // Total samples to generate (per channel)
	generated    int // Samples generated so far (per channel)
	waveform     Waveform
}

// NewMockSource creates a new mock audio source.
// totalSamples is the total number of samples per channel to generate.
func NewMockSource(sampleRate, channels, totalSamples int, waveform Waveform) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, Constant(0))
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, Sine(sampleRate, frequency))
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, Constant(value))
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

// Reset resets the generated sample counter to allow re-reading
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	framesToWrite := min(len(dst)/m.channels, m.totalSamples-m.generated)

	for frame := range framesToWrite {
		sampleIndex := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(sampleIndex, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalSamples {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}

// Constant is a flat waveform.
func Constant(value float32) Waveform {
	return func(int, int) float32 { return value }
}

// Sine is a full-scale sine at frequency Hz on every channel.
func Sine(sampleRate int, frequency float64) Waveform {
	return func(sample int, _ int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	}
}

// Steps holds level[i] for frames [i*width, (i+1)*width).
func Steps(width int, levels ...float32) Waveform {
	return func(sample int, _ int) float32 {
		i := sample / width
		if i >= len(levels) {
			return 0
		}
		return levels[i]
	}
}

// Interleaved renders frames of waveform into an interleaved sample slice.
func Interleaved(channels, frames int, waveform Waveform) []float32 {
	out := make([]float32, channels*frames)
	for f := range frames {
		for c := range channels {
			out[f*channels+c] = waveform(f, c)
		}
	}
	return out
}
