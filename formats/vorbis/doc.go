// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio using
// github.com/jfreymuth/oggvorbis.
//
// The returned audio.Source keeps the channel count and sample rate of the
// stream, with float32 samples clipped to [-1.0, 1.0] by the library. A
// destination buffer must hold at least one whole frame; smaller buffers
// fail with audio.ErrInvalidDstSize.
//
// Streams oggvorbis cannot open fail with ErrNotOggVorbisFile wrapping the
// library error.
package vorbis
