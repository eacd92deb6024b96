// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/ik5/wavy/audio"
	"github.com/ik5/wavy/formats"
	"github.com/ik5/wavy/formats/wav"
	"github.com/ik5/wavy/internal/audiotest"
)

func encodeWAV(t testing.TB, rate, channels int, samples []float32) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	err := wav.EncodePCM(buf, audio.PcmBuffer{Samples: samples, SampleRate: rate, Channels: channels})
	if err != nil {
		t.Fatalf("EncodePCM() error = %v", err)
	}
	return buf.Bytes()
}

func newDecoder(t testing.TB, names ...string) *Decoder {
	t.Helper()

	reg, err := formats.NewRegistry(names...)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return New(reg, nil)
}

// fakeDecoder accepts any input and returns src.
type fakeDecoder struct {
	src audio.Source
	err error
}

func (f fakeDecoder) Decode(io.Reader) (audio.Source, error) { return f.src, f.err }

// brokenSource yields one batch and then fails.
type brokenSource struct {
	reads int
}

var errCorrupt = errors.New("corrupt frame")

func (s *brokenSource) SampleRate() int { return 8000 }
func (s *brokenSource) Channels() int   { return 1 }
func (s *brokenSource) BufSize() int    { return 16 }
func (s *brokenSource) Close() error    { return nil }
func (s *brokenSource) ReadSamples(dst []float32) (int, error) {
	s.reads++
	if s.reads > 1 {
		return 0, errCorrupt
	}
	return copy(dst, []float32{0.1, 0.2}), nil
}

func fakeRegistry(d audio.Decoder) *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("fake", d)
	return reg
}

func TestDecode_WAV(t *testing.T) {
	t.Parallel()

	samples := audiotest.Interleaved(2, 4000, audiotest.Sine(8000, 440))
	data := encodeWAV(t, 8000, 2, samples)

	pcm, err := newDecoder(t).Decode(audio.Own(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if pcm.SampleRate != 8000 || pcm.Channels != 2 {
		t.Errorf("layout = %d ch @ %d Hz, want 2 ch @ 8000 Hz", pcm.Channels, pcm.SampleRate)
	}
	if len(pcm.Samples) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(pcm.Samples), len(samples))
	}
	for i := range samples {
		if d := pcm.Samples[i] - samples[i]; d > 1e-3 || d < -1e-3 {
			t.Fatalf("sample[%d] = %v, want ≈%v", i, pcm.Samples[i], samples[i])
		}
	}
}

func TestDecode_ProbesWhenSniffingFails(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(1000, 1, 10, 0.5)
	reg := audio.NewRegistry()
	reg.Register("reject", fakeDecoder{err: errors.New("nope")})
	reg.Register("accept", fakeDecoder{src: src})

	pcm, err := New(reg, nil).Decode(audio.Own([]byte("raw headerless samples")))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(pcm.Samples) != 10 {
		t.Errorf("decoded %d samples, want 10", len(pcm.Samples))
	}
}

func TestDecode_Failures(t *testing.T) {
	t.Parallel()

	headerOnly := encodeWAV(t, 8000, 1, nil)

	tests := []struct {
		name     string
		dec      *Decoder
		raw      func() *audio.OwnedBytes
		wantKind audio.Kind
		wantErr  error
	}{
		{
			name:     "nil handle",
			dec:      newDecoder(t),
			raw:      func() *audio.OwnedBytes { return nil },
			wantKind: audio.KindInvalidData,
		},
		{
			name: "consumed handle",
			dec:  newDecoder(t),
			raw: func() *audio.OwnedBytes {
				o := audio.Own([]byte("x"))
				_, _ = o.Take()
				return o
			},
			wantKind: audio.KindInvalidData,
		},
		{
			name:     "empty",
			dec:      newDecoder(t),
			raw:      func() *audio.OwnedBytes { return audio.Own(nil) },
			wantKind: audio.KindDecoding,
		},
		{
			name:     "text",
			dec:      newDecoder(t),
			raw:      func() *audio.OwnedBytes { return audio.Own([]byte("hello, this is not audio")) },
			wantKind: audio.KindDecoding,
		},
		{
			name:     "sniffed but broken",
			dec:      newDecoder(t),
			raw:      func() *audio.OwnedBytes { return audio.Own([]byte("RIFF\x04\x00\x00\x00WAVEjunk")) },
			wantKind: audio.KindDecoding,
			wantErr:  wav.ErrNotWavFile,
		},
		{
			name:     "no decoders",
			dec:      New(audio.NewRegistry(), nil),
			raw:      func() *audio.OwnedBytes { return audio.Own([]byte{1, 2, 3}) },
			wantKind: audio.KindDecoding,
		},
		{
			name:     "header only WAV",
			dec:      newDecoder(t),
			raw:      func() *audio.OwnedBytes { return audio.Own(headerOnly) },
			wantKind: audio.KindProcessing,
		},
		{
			name:     "zero sample rate",
			dec:      New(fakeRegistry(fakeDecoder{src: audiotest.NewConstantSource(0, 1, 10, 0.5)}), nil),
			raw:      func() *audio.OwnedBytes { return audio.Own([]byte{0}) },
			wantKind: audio.KindInvalidData,
		},
		{
			name:     "zero channels",
			dec:      New(fakeRegistry(fakeDecoder{src: audiotest.NewConstantSource(8000, 0, 10, 0.5)}), nil),
			raw:      func() *audio.OwnedBytes { return audio.Own([]byte{0}) },
			wantKind: audio.KindInvalidData,
		},
		{
			name:     "read error",
			dec:      New(fakeRegistry(fakeDecoder{src: &brokenSource{}}), nil),
			raw:      func() *audio.OwnedBytes { return audio.Own([]byte{0}) },
			wantKind: audio.KindDecoding,
			wantErr:  errCorrupt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pcm, err := tt.dec.Decode(tt.raw())
			if err == nil {
				t.Fatalf("Decode() = %d samples, want error", len(pcm.Samples))
			}
			if got := audio.KindOf(err); got != tt.wantKind {
				t.Errorf("KindOf(%v) = %v, want %v", err, got, tt.wantKind)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v in chain", err, tt.wantErr)
			}
		})
	}
}

func TestDecode_ConsumesHandle(t *testing.T) {
	t.Parallel()

	dec := newDecoder(t)
	raw := audio.Own(encodeWAV(t, 8000, 1, []float32{0.5, -0.5}))

	if _, err := dec.Decode(raw); err != nil {
		t.Fatalf("first Decode() error = %v", err)
	}
	if _, err := raw.Take(); !errors.Is(err, audio.ErrInvalidData) {
		t.Errorf("Take() after Decode error = %v, want ErrInvalidData", err)
	}

	_, err := dec.Decode(raw)
	if !errors.Is(err, audio.ErrInvalidData) {
		t.Errorf("second Decode() error = %v, want ErrInvalidData", err)
	}
}

func TestDecode_ConcurrentDecoders(t *testing.T) {
	t.Parallel()

	dec := newDecoder(t)
	data := encodeWAV(t, 8000, 1, audiotest.Interleaved(1, 800, audiotest.Sine(8000, 200)))

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		raw := audio.Own(bytes.Clone(data))
		wg.Go(func() {
			if _, err := dec.Decode(raw); err != nil {
				errs <- err
			}
		})
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Decode() error = %v", err)
	}
}

func TestDecode_Logs(t *testing.T) {
	t.Parallel()

	out := new(bytes.Buffer)
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	reg, _ := formats.NewRegistry()
	_, err := New(reg, logger).Decode(audio.Own(encodeWAV(t, 16000, 1, []float32{0.25, 0.5})))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	for _, want := range []string{"format=wav", "sample_rate=16000", "channels=1", "samples=2", "mime=audio/wav"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("log output missing %q:\n%s", want, out.String())
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	dec := newDecoder(b)
	data := encodeWAV(b, 44100, 2, audiotest.Interleaved(2, 44100, audiotest.Sine(44100, 440)))

	b.ReportAllocs()

	for b.Loop() {
		if _, err := dec.Decode(audio.Own(data)); err != nil {
			b.Fatal(err)
		}
	}
}
