// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"
)

// maxEmptyReads bounds how many (0, nil) reads ReadAll tolerates in a row
// before giving up on a source.
const maxEmptyReads = 64

// PcmBuffer is a fully decoded PCM stream held in memory.
type PcmBuffer struct {
	// Samples are interleaved across channels, in [-1,1].
	Samples []float32
	// SampleRate in Hz, per channel.
	SampleRate int
	Channels   int
}

// Frames returns the number of sample frames (samples per channel).
func (b PcmBuffer) Frames() int {
	if b.Channels <= 0 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// Duration of the buffer, or zero when the sample rate is unknown.
func (b PcmBuffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(b.Frames()) / float64(b.SampleRate) * float64(time.Second))
}

// Source streams the buffer back through the Source interface, so it can be
// fed to MonoMixer and friends. The returned source shares Samples.
func (b PcmBuffer) Source() Source {
	return &bufferSource{buf: b}
}

type bufferSource struct {
	buf PcmBuffer
	pos int
}

func (s *bufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *bufferSource) Channels() int   { return s.buf.Channels }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.buf.Samples) {
		return 0, io.EOF
	}

	n := copy(dst, s.buf.Samples[s.pos:])
	s.pos += n

	if s.pos >= len(s.buf.Samples) {
		return n, io.EOF
	}
	return n, nil
}

// ReadAll drains src into a PcmBuffer. io.EOF ends the stream and is not
// reported; any other error is returned together with what was read so far.
func ReadAll(src Source) (PcmBuffer, error) {
	channels := src.Channels()
	out := PcmBuffer{
		SampleRate: src.SampleRate(),
		Channels:   channels,
	}

	size := max(src.BufSize(), 4096)
	if channels > 1 {
		// Frame-based sources need whole frames per read
		size -= size % channels
	}
	buf := make([]float32, size)

	empty := 0
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			out.Samples = append(out.Samples, buf[:n]...)
			empty = 0
		} else if err == nil {
			empty++
			if empty >= maxEmptyReads {
				return out, io.ErrNoProgress
			}
		}

		if err == io.EOF {
			return out, nil
		}

		if err != nil {
			return out, fmt.Errorf("%w", err)
		}
	}
}
