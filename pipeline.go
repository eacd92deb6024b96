// SPDX-License-Identifier: EPL-2.0

package wavy

import (
	"log/slog"

	"github.com/ik5/wavy/audio"
	"github.com/ik5/wavy/decoder"
	"github.com/ik5/wavy/envelope"
	"github.com/ik5/wavy/formats"
	"github.com/ik5/wavy/peaks"
	"github.com/ik5/wavy/spectrum"
)

// Pipeline runs decode, envelope, peak reduction and spectrum stages with a
// fixed configuration. It holds no per-call state and is safe for
// concurrent use as long as every call gets its own audio.OwnedBytes.
type Pipeline struct {
	decoder     *decoder.Decoder
	envelope    envelope.Generator
	transformer spectrum.Transformer
	logger      *slog.Logger
}

// NewPipeline validates cfg and builds the stages.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reg, err := formats.NewRegistry(cfg.Formats...)
	if err != nil {
		return nil, err
	}

	kernel, err := spectrum.KernelByName(cfg.Kernel)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Pipeline{
		decoder: decoder.New(reg, logger),
		envelope: envelope.Generator{
			PointsPerSecond: cfg.PointsPerSecond,
			ChannelMode:     cfg.ChannelMode,
			Logger:          logger,
		},
		transformer: spectrum.Transformer{Kernel: kernel, Logger: logger},
		logger:      logger,
	}, nil
}

// ExtractEnvelope decodes raw and returns its normalized RMS envelope.
func (p *Pipeline) ExtractEnvelope(raw *audio.OwnedBytes) ([]float32, error) {
	pcm, err := p.decoder.Decode(raw)
	if err != nil {
		return nil, err
	}

	return p.envelope.Compute(pcm)
}

// ExtractSpectralFeatures decodes raw, computes the envelope, keeps the
// loudest value of every groupSize points and returns the magnitude
// spectrum of that reduced curve.
func (p *Pipeline) ExtractSpectralFeatures(raw *audio.OwnedBytes, groupSize int) ([]float32, error) {
	env, err := p.ExtractEnvelope(raw)
	if err != nil {
		return nil, err
	}

	reduced, err := peaks.Reduce(env, groupSize)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("reduced envelope",
		slog.Int("points", len(env)),
		slog.Int("group_size", groupSize),
		slog.Int("groups", len(reduced)),
	)

	return p.transformer.Magnitude(reduced)
}

var defaultPipeline = func() *Pipeline {
	p, err := NewPipeline(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return p
}()

// ExtractEnvelope runs the default pipeline on data. The caller gives data
// up and must not touch it afterwards.
func ExtractEnvelope(data []byte) ([]float32, error) {
	return defaultPipeline.ExtractEnvelope(audio.Own(data))
}

// ExtractSpectralFeatures runs the default pipeline's full chain on data.
// The caller gives data up and must not touch it afterwards.
func ExtractSpectralFeatures(data []byte, groupSize int) ([]float32, error) {
	return defaultPipeline.ExtractSpectralFeatures(audio.Own(data), groupSize)
}
