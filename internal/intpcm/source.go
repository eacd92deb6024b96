// SPDX-License-Identifier: EPL-2.0

// Package intpcm adapts go-audio integer PCM decoders (wav, aiff) to
// audio.Source.
package intpcm

import (
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/wavy/utils"
)

// Reader is the part of go-audio's wav.Decoder and aiff.Decoder that a
// Source needs.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source streams integer samples from a Reader as float32 in [-1,1].
type Source struct {
	dec        Reader
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
}

func NewSource(dec Reader, sampleRate, channels, bitDepth int) *Source {
	return &Source{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		bitDepth:   bitDepth,
	}
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }
func (s *Source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.dec.Format(),
			SourceBitDepth: s.bitDepth,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err == io.ErrUnexpectedEOF {
		// Truncated data chunk: keep what was decoded
		err = io.EOF
	}
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	n = utils.IntToFloat32(dst, s.intBuf.Data[:n], s.bitDepth)

	if n < len(dst) && err == nil {
		return n, io.EOF
	}

	return n, err
}
