// SPDX-License-Identifier: EPL-2.0

// Package decoder turns an encoded audio buffer into an in-memory
// audio.PcmBuffer, picking the codec by sniffing the container.
package decoder

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ik5/wavy/audio"
	"github.com/ik5/wavy/formats"
)

// Decoder decodes whole files held in memory. The zero value is not usable;
// build one with New.
type Decoder struct {
	registry *audio.Registry
	logger   *slog.Logger
}

// New returns a Decoder over reg. A nil logger discards.
func New(reg *audio.Registry, logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Decoder{
		registry: reg,
		logger:   logger,
	}
}

// Decode consumes raw and returns its samples, interleaved as stored.
//
// The container is sniffed first; when no registered format claims the
// detected type every registered decoder is tried in order. Failures wrap
// audio.ErrInvalidData (ownership, bad layout), audio.ErrDecoding (no codec
// accepted the bytes, or the stream broke mid-way) or audio.ErrProcessing
// (the stream decoded to nothing).
func (d *Decoder) Decode(raw *audio.OwnedBytes) (audio.PcmBuffer, error) {
	data, err := raw.Take()
	if err != nil {
		return audio.PcmBuffer{}, err
	}

	format, src, err := d.open(data)
	if err != nil {
		return audio.PcmBuffer{}, err
	}
	defer src.Close()

	rate, channels := src.SampleRate(), src.Channels()
	if rate <= 0 {
		return audio.PcmBuffer{}, fmt.Errorf("%w: %s sample rate %d", audio.ErrInvalidData, format, rate)
	}
	if channels <= 0 {
		return audio.PcmBuffer{}, fmt.Errorf("%w: %s channel count %d", audio.ErrInvalidData, format, channels)
	}

	pcm, err := audio.ReadAll(src)
	if err != nil {
		return audio.PcmBuffer{}, fmt.Errorf("%w: %s: %w", audio.ErrDecoding, format, err)
	}

	if len(pcm.Samples) == 0 {
		return audio.PcmBuffer{}, fmt.Errorf("%w: %s stream holds no samples", audio.ErrProcessing, format)
	}

	d.logger.Debug("decoded audio",
		slog.String("format", format),
		slog.Int("sample_rate", pcm.SampleRate),
		slog.Int("channels", pcm.Channels),
		slog.Int("samples", len(pcm.Samples)),
		slog.Duration("duration", pcm.Duration()),
	)

	return pcm, nil
}

func (d *Decoder) open(data []byte) (string, audio.Source, error) {
	format, dec, mime, ok := formats.Lookup(d.registry, data)
	if ok {
		d.logger.Debug("sniffed container", slog.String("mime", mime), slog.String("format", format))

		src, err := dec.Decode(bytes.NewReader(data))
		if err != nil {
			return "", nil, fmt.Errorf("%w: %s: %w", audio.ErrDecoding, format, err)
		}
		return format, src, nil
	}

	d.logger.Debug("unrecognized container, probing", slog.String("mime", mime))

	var errs []error
	for _, format := range d.registry.Formats() {
		dec, ok := d.registry.Get(format)
		if !ok {
			continue
		}

		src, err := dec.Decode(bytes.NewReader(data))
		if err == nil {
			return format, src, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", format, err))
	}

	if len(errs) == 0 {
		return "", nil, fmt.Errorf("%w: no decoders registered", audio.ErrDecoding)
	}

	return "", nil, fmt.Errorf("%w: unsupported %s stream: %w", audio.ErrDecoding, mime, errors.Join(errs...))
}
