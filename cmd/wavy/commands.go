// SPDX-License-Identifier: EPL-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/ik5/wavy"
	"github.com/ik5/wavy/audio"
	"github.com/ik5/wavy/decoder"
	"github.com/ik5/wavy/formats"
	"github.com/ik5/wavy/formats/wav"
)

// EnvelopeCmd prints one envelope point per line.
type EnvelopeCmd struct {
	File string `arg:"" help:"Audio file, or - for stdin."`
}

func (c *EnvelopeCmd) Run(rt *runtime) error {
	p, err := wavy.NewPipeline(rt.cfg)
	if err != nil {
		return err
	}

	data, err := rt.readInput(c.File)
	if err != nil {
		return err
	}

	env, err := p.ExtractEnvelope(audio.Own(data))
	if err != nil {
		return err
	}

	return rt.print(env)
}

// SpectrumCmd prints one magnitude per line.
type SpectrumCmd struct {
	File      string `arg:"" help:"Audio file, or - for stdin."`
	GroupSize int    `short:"g" default:"8" help:"Envelope points per peak group."`
}

func (c *SpectrumCmd) Run(rt *runtime) error {
	p, err := wavy.NewPipeline(rt.cfg)
	if err != nil {
		return err
	}

	data, err := rt.readInput(c.File)
	if err != nil {
		return err
	}

	features, err := p.ExtractSpectralFeatures(audio.Own(data), c.GroupSize)
	if err != nil {
		return err
	}

	return rt.print(features)
}

// DecodeCmd writes the decoded PCM as a 16-bit WAV file.
type DecodeCmd struct {
	File string `arg:"" help:"Audio file, or - for stdin."`
	Out  string `short:"o" required:"" help:"Output WAV file."`
	Mono bool   `help:"Downmix to a single channel before writing."`
}

func (c *DecodeCmd) Run(rt *runtime) error {
	reg, err := formats.NewRegistry(rt.cfg.Formats...)
	if err != nil {
		return err
	}

	data, err := rt.readInput(c.File)
	if err != nil {
		return err
	}

	pcm, err := decoder.New(reg, rt.logger).Decode(audio.Own(data))
	if err != nil {
		return err
	}

	if c.Mono {
		pcm, err = audio.Downmix(pcm)
		if err != nil {
			return err
		}
	}

	f, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	if err := wav.EncodePCM(f, pcm); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	rt.logger.Info("wrote wav",
		slog.String("path", c.Out),
		slog.Int("sample_rate", pcm.SampleRate),
		slog.Int("channels", pcm.Channels),
		slog.Int("frames", pcm.Frames()),
	)

	return nil
}

func (rt *runtime) readInput(path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(rt.stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	return data, nil
}

func (rt *runtime) print(values []float32) error {
	if rt.json {
		if err := json.NewEncoder(rt.stdout).Encode(values); err != nil {
			return fmt.Errorf("%w: %w", audio.ErrIO, err)
		}
		return nil
	}

	buf := make([]byte, 0, 16*len(values))
	for _, v := range values {
		buf = strconv.AppendFloat(buf, float64(v), 'g', -1, 32)
		buf = append(buf, '\n')
	}

	if _, err := rt.stdout.Write(buf); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrIO, err)
	}
	return nil
}
