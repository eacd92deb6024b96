// SPDX-License-Identifier: EPL-2.0

// Package wavy extracts compact, plottable features from encoded audio.
//
// A Pipeline turns the bytes of a WAV, AIFF, Ogg Vorbis or MP3 file into
//
//   - an envelope: one RMS value per 1/20 s of audio, scaled so the loudest
//     point is exactly 1 (ExtractEnvelope), or
//   - spectral features: the envelope reduced to the loudest value of every
//     group of points, then the magnitude of its discrete Fourier transform
//     (ExtractSpectralFeatures).
//
// Each stage lives in its own package and can be used on its own:
//
//	decoder   bytes -> audio.PcmBuffer (container sniffing, codec probing)
//	envelope  audio.PcmBuffer -> []float32
//	peaks     []float32 -> []float32 (group maxima)
//	spectrum  []float32 -> []complex64 / []float32 magnitudes
//
// # Ownership
//
// Input bytes are handed over with audio.Own. The decoder takes them exactly
// once; decoding the same audio.OwnedBytes twice fails with
// audio.ErrInvalidData. The package-level functions take ownership of the
// slice they are given.
//
// # Errors
//
// Every failure wraps one of the kind sentinels of package audio
// (ErrDecoding, ErrInvalidData, ErrProcessing, ...). The pipeline returns the
// failing stage's error unchanged, so
//
//	points, err := wavy.ExtractEnvelope(data)
//	if err != nil {
//	    log.Printf("%s: %v", audio.KindOf(err), err)
//	}
//
// reports the kind label ("Decoding error", "Invalid data", ...).
//
// # Configuration
//
// Config selects the envelope resolution, how multi-channel audio is
// chunked (downmix to mono, or the raw interleaved stream), the FFT kernel
// (github.com/mjibson/go-dsp or gonum) and which formats are tried. It is
// validated with go-playground/validator and can be read from JSON with
// DecodeConfig.
package wavy
