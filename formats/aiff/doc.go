// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to parse the FORM/COMM/SSND
// layout and decode big-endian PCM. Samples come out interleaved as float32
// in [-1.0, 1.0], with the file's channel count and sample rate.
//
// # Supported Formats
//
//   - Uncompressed AIFF
//   - 16, 24 and 32-bit PCM
//   - Mono and multi-channel, any sample rate
//
// AIFF-C (compressed) and 8-bit files are rejected.
//
// # Error Handling
//
//   - ErrNotAiffFile: the input is not a valid AIFF file
//   - ErrUnsupportedBitDepth: the sample size is not 16, 24 or 32 bits
//   - ErrUnsupportedAiffLayout: the COMM chunk describes no channels
//
// Inputs that are not seekable are read into memory first, since
// go-audio needs an io.ReadSeeker.
package aiff
