// SPDX-License-Identifier: EPL-2.0

// Package envelope reduces PCM audio to a normalized RMS amplitude curve
// with a fixed number of points per second of audio.
package envelope

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/ik5/wavy/audio"
	"gonum.org/v1/gonum/floats"
)

// DefaultPointsPerSecond is the time resolution of the envelope.
const DefaultPointsPerSecond = 20

// ChannelMode selects how multi-channel buffers are chunked.
type ChannelMode string

const (
	// ChannelModeDownmix averages every frame to mono first, so the
	// envelope has PointsPerSecond points per second whatever the layout.
	ChannelModeDownmix ChannelMode = "downmix"
	// ChannelModeInterleaved chunks the raw interleaved samples as if they
	// were mono at the stored sample rate. A stereo file then yields twice
	// the points per second.
	ChannelModeInterleaved ChannelMode = "interleaved"
)

// ParseChannelMode maps a mode name to a ChannelMode. The empty string is
// the default, ChannelModeDownmix.
func ParseChannelMode(s string) (ChannelMode, error) {
	switch ChannelMode(s) {
	case "", ChannelModeDownmix:
		return ChannelModeDownmix, nil
	case ChannelModeInterleaved:
		return ChannelModeInterleaved, nil
	default:
		return "", fmt.Errorf("%w: unknown channel mode %q", audio.ErrInvalidData, s)
	}
}

// Generator computes envelopes. The zero value uses DefaultPointsPerSecond,
// ChannelModeDownmix and no logging.
type Generator struct {
	PointsPerSecond int
	ChannelMode     ChannelMode
	Logger          *slog.Logger
}

// Compute returns one RMS value per chunk of pcm, divided by the largest of
// them, so the result lies in [0,1] and its maximum is exactly 1.
//
// The chunk size is the sample count divided by round(duration *
// PointsPerSecond); audio shorter than half a point is one chunk. Empty and
// all-silent buffers fail with audio.ErrProcessing, a non-positive sample
// rate with audio.ErrInvalidData.
func (g Generator) Compute(pcm audio.PcmBuffer) ([]float32, error) {
	pps := g.PointsPerSecond
	if pps == 0 {
		pps = DefaultPointsPerSecond
	}
	if pps < 0 {
		return nil, fmt.Errorf("%w: %d points per second", audio.ErrInvalidData, pps)
	}

	if len(pcm.Samples) == 0 {
		return nil, fmt.Errorf("%w: empty audio buffer", audio.ErrProcessing)
	}
	if pcm.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", audio.ErrInvalidData, pcm.SampleRate)
	}

	mode, err := ParseChannelMode(string(g.ChannelMode))
	if err != nil {
		return nil, err
	}

	samples := pcm.Samples
	if mode == ChannelModeDownmix && pcm.Channels != 1 {
		mono, err := audio.Downmix(pcm)
		if err != nil {
			return nil, err
		}
		samples = mono.Samples
	}

	count := len(samples)
	duration := float64(count) / float64(pcm.SampleRate)
	desired := int(math.Round(duration * float64(pps)))

	chunkSize := count
	if desired > 0 {
		chunkSize = count / desired
	}
	if chunkSize == 0 {
		return nil, fmt.Errorf("%w: chunk size is zero (%d samples, %d points)", audio.ErrProcessing, count, desired)
	}

	rms := chunkRMS(samples, chunkSize)
	if len(rms) == 0 {
		return nil, fmt.Errorf("%w: no chunks", audio.ErrProcessing)
	}

	peak := floats.Max(rms)
	if peak == 0 {
		return nil, fmt.Errorf("%w: audio is silent", audio.ErrProcessing)
	}

	out := make([]float32, len(rms))
	for i, v := range rms {
		out[i] = float32(v / peak)
	}

	g.logger().Debug("computed envelope",
		slog.String("channel_mode", string(mode)),
		slog.Int("samples", count),
		slog.Int("chunk_size", chunkSize),
		slog.Int("points", len(out)),
	)

	return out, nil
}

func (g Generator) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return g.Logger
}

// chunkRMS splits samples into contiguous chunks of size (the last one may
// be shorter) and returns the RMS of each, accumulated in float64.
func chunkRMS(samples []float32, size int) []float64 {
	out := make([]float64, 0, (len(samples)+size-1)/size)
	scratch := make([]float64, size)

	for start := 0; start < len(samples); start += size {
		chunk := samples[start:min(start+size, len(samples))]
		x := scratch[:len(chunk)]
		for i, s := range chunk {
			x[i] = float64(s)
		}

		out = append(out, math.Sqrt(floats.Dot(x, x)/float64(len(x))))
	}

	return out
}
