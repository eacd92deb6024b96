// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes RIFF/WAVE files.
//
// Decoding is built on github.com/go-audio/wav and accepts integer PCM at
// 16, 24 or 32 bits, with any channel count and sample rate. Chunks other
// than fmt and data (LIST, JUNK and so on) are skipped. 8-bit (unsigned) and
// IEEE float files are rejected with ErrUnsupportedBitDepth and
// ErrUnsupportedEncoding.
//
//	source, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// Samples come out interleaved, as float32 in [-1.0, 1.0].
//
// # Writing
//
// WriteWAV16 writes a canonical 44-byte header followed by 16-bit samples,
// in chunks of 8192 samples. EncodePCM does the same for an
// audio.PcmBuffer, clamping out-of-range samples. Every encode failure wraps
// audio.ErrEncoding; bad layouts also wrap ErrInvalidParams.
package wav
