// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG Layer III audio using
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo, so the returned audio.Source reports
// two channels even for mono files (the library duplicates the channel).
// Samples are normalized to float32 in [-1.0, 1.0]. Feed the source through
// audio.NewMonoMixer for a mono signal.
//
// Inputs go-mp3 cannot parse fail with ErrNotMP3File wrapping the library
// error. Encoding is not supported.
package mp3
