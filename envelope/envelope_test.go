// SPDX-License-Identifier: EPL-2.0

package envelope

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/ik5/wavy/audio"
	"github.com/ik5/wavy/internal/audiotest"
)

func buffer(rate, channels, frames int, w audiotest.Waveform) audio.PcmBuffer {
	return audio.PcmBuffer{
		Samples:    audiotest.Interleaved(channels, frames, w),
		SampleRate: rate,
		Channels:   channels,
	}
}

func TestCompute_Lengths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		gen  Generator
		pcm  audio.PcmBuffer
		want int
	}{
		{"2s mono constant", Generator{}, buffer(1000, 1, 2000, audiotest.Constant(0.3)), 40},
		{"1s mono 44.1k sine", Generator{}, buffer(44100, 1, 44100, audiotest.Sine(44100, 440)), 20},
		{"stereo downmix", Generator{}, buffer(1000, 2, 1000, audiotest.Constant(0.5)), 20},
		{"stereo interleaved", Generator{ChannelMode: ChannelModeInterleaved}, buffer(1000, 2, 1000, audiotest.Constant(0.5)), 40},
		{"5.1 downmix", Generator{ChannelMode: ChannelModeDownmix}, buffer(1000, 6, 1000, audiotest.Constant(0.5)), 20},
		{"shorter than half a point", Generator{}, buffer(1000, 1, 10, audiotest.Constant(0.5)), 1},
		{"trailing partial chunk", Generator{}, buffer(1000, 1, 1030, audiotest.Constant(0.5)), 22},
		{"custom resolution", Generator{PointsPerSecond: 100}, buffer(8000, 1, 8000, audiotest.Constant(0.5)), 100},
		{"half rounds away from zero", Generator{PointsPerSecond: 1}, buffer(2, 1, 5, audiotest.Constant(0.5)), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.gen.Compute(tt.pcm)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("Compute() len = %d, want %d", len(got), tt.want)
			}
			if m := slices.Max(got); m != 1 {
				t.Errorf("max = %v, want exactly 1", m)
			}
			for i, v := range got {
				if v < 0 || v > 1 {
					t.Errorf("point[%d] = %v, out of [0,1]", i, v)
				}
			}
		})
	}
}

func TestCompute_ConstantIsFlat(t *testing.T) {
	t.Parallel()

	got, err := Generator{}.Compute(buffer(1000, 1, 2000, audiotest.Constant(-0.25)))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	for i, v := range got {
		if v != 1 {
			t.Errorf("point[%d] = %v, want 1", i, v)
		}
	}
}

func TestCompute_Steps(t *testing.T) {
	t.Parallel()

	// 0.5 for the first half second, 1.0 for the second
	got, err := Generator{}.Compute(buffer(1000, 1, 1000, audiotest.Steps(500, 0.5, 1.0)))
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if len(got) != 20 {
		t.Fatalf("len = %d, want 20", len(got))
	}

	for i, v := range got {
		want := float32(1)
		if i < 10 {
			want = 0.5
		}
		if math.Abs(float64(v-want)) > 1e-6 {
			t.Errorf("point[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestCompute_RMSOfChunk(t *testing.T) {
	t.Parallel()

	// 4 samples at 40 Hz = 0.1 s = 2 points of 2 samples each; the second
	// chunk is silent
	pcm := audio.PcmBuffer{Samples: []float32{0.3, 0.4, 0, 0}, SampleRate: 40, Channels: 1}

	got, err := Generator{}.Compute(pcm)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	want := []float32{1, 0}
	if !slices.Equal(got, want) {
		t.Errorf("Compute() = %v, want %v", got, want)
	}
}

func TestCompute_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		gen  Generator
		pcm  audio.PcmBuffer
		want error
	}{
		{"silent", Generator{}, buffer(1000, 1, 1000, audiotest.Constant(0)), audio.ErrProcessing},
		{"empty", Generator{}, audio.PcmBuffer{SampleRate: 8000, Channels: 1}, audio.ErrProcessing},
		{"zero rate", Generator{}, audio.PcmBuffer{Samples: []float32{1}, Channels: 1}, audio.ErrInvalidData},
		{"negative rate", Generator{}, audio.PcmBuffer{Samples: []float32{1}, SampleRate: -1, Channels: 1}, audio.ErrInvalidData},
		{"zero channels", Generator{}, audio.PcmBuffer{Samples: []float32{1}, SampleRate: 8000}, audio.ErrInvalidData},
		{"unknown mode", Generator{ChannelMode: "surround"}, buffer(1000, 1, 100, audiotest.Constant(1)), audio.ErrInvalidData},
		{"negative resolution", Generator{PointsPerSecond: -5}, buffer(1000, 1, 100, audiotest.Constant(1)), audio.ErrInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.gen.Compute(tt.pcm)
			if !errors.Is(err, tt.want) {
				t.Errorf("Compute() error = %v, want %v", err, tt.want)
			}
			if got != nil {
				t.Errorf("Compute() = %v, want nil on error", got)
			}
		})
	}
}

func TestCompute_Deterministic(t *testing.T) {
	t.Parallel()

	pcm := buffer(22050, 2, 50000, audiotest.Sine(22050, 997))

	a, err := Generator{}.Compute(pcm)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generator{}.Compute(pcm)
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(a, b) {
		t.Error("Compute() is not deterministic")
	}
}

func TestCompute_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	pcm := buffer(1000, 2, 1000, audiotest.Sine(1000, 50))
	before := slices.Clone(pcm.Samples)

	if _, err := (Generator{}).Compute(pcm); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(before, pcm.Samples) {
		t.Error("Compute() modified its input")
	}
}

func TestCompute_Logs(t *testing.T) {
	t.Parallel()

	out := new(bytes.Buffer)
	gen := Generator{Logger: slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	if _, err := gen.Compute(buffer(1000, 1, 1000, audiotest.Constant(1))); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"points=20", "chunk_size=50", "channel_mode=downmix"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("log output missing %q:\n%s", want, out.String())
		}
	}
}

func TestParseChannelMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    ChannelMode
		wantErr bool
	}{
		{"", ChannelModeDownmix, false},
		{"downmix", ChannelModeDownmix, false},
		{"interleaved", ChannelModeInterleaved, false},
		{"Downmix", "", true},
		{"mono", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseChannelMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseChannelMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseChannelMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if err != nil && !errors.Is(err, audio.ErrInvalidData) {
				t.Errorf("error = %v, want ErrInvalidData", err)
			}
		})
	}
}

func BenchmarkCompute(b *testing.B) {
	pcm := buffer(44100, 2, 44100*10, audiotest.Sine(44100, 440))

	b.ReportAllocs()

	for b.Loop() {
		_, _ = Generator{}.Compute(pcm)
	}
}

func BenchmarkCompute_Interleaved(b *testing.B) {
	pcm := buffer(44100, 2, 44100*10, audiotest.Sine(44100, 440))
	gen := Generator{ChannelMode: ChannelModeInterleaved}

	b.ReportAllocs()

	for b.Loop() {
		_, _ = gen.Compute(pcm)
	}
}
