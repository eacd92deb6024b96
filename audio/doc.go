// SPDX-License-Identifier: EPL-2.0

// Package audio provides the low-level building blocks shared by the
// decoders and the feature extractors.
//
// This package contains:
//   - Source interface for streamed PCM input
//   - PcmBuffer, a fully decoded stream held in memory, and ReadAll
//   - MonoMixer and Downmix for channel averaging
//   - Registry for decoder registration by format key and MIME type
//   - OwnedBytes, the single-use hand-over of an encoded buffer
//   - the five error kinds reported by the pipeline
//
// # Source Interface
//
// The Source interface is the foundation of audio input:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Every format decoder returns a Source. ReadAll drains one into a
// PcmBuffer:
//
//	src, _ := wav.Decoder{}.Decode(r)
//	pcm, err := audio.ReadAll(src)
//
// # Channel Mixing
//
// The MonoMixer converts multi-channel audio to mono by averaging:
//
//	mono := audio.NewMonoMixer(source)
//	buf := make([]float32, 4096)
//	n, err := mono.ReadSamples(buf)
//
// Downmix does the same for a whole PcmBuffer.
//
// # Format Registry
//
// The registry maps format keys and MIME types to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{}, "audio/wav")
//	decoder, _ := registry.Get("wav")
//	format, decoder, _ := registry.LookupMIME("audio/wav")
//
// # Buffer Ownership
//
// An encoded buffer is handed to the decoder through OwnedBytes. Own gives
// the slice away; Take returns it exactly once:
//
//	raw := audio.Own(data) // data must not be used after this
//	b, err := raw.Take()   // a second Take fails with ErrInvalidData
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0],
// interleaved across channels.
//
// # Error Kinds
//
// Failures are classified into five flat kinds, each with a sentinel:
//   - ErrDecoding: the bytes are not a supported encoded audio stream
//   - ErrEncoding: writing an output encoding failed
//   - ErrIO: reading or writing a file failed
//   - ErrInvalidData: a precondition was violated before processing began
//   - ErrProcessing: a computation produced a degenerate or empty result
//
// Stages wrap the sentinel with detail; use errors.Is or KindOf:
//
//	if audio.KindOf(err) == audio.KindProcessing {
//	    // silent or too short input
//	}
//
// Streaming reads return io.EOF when no more data is available.
package audio
