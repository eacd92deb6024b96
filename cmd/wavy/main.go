// SPDX-License-Identifier: EPL-2.0

// Command wavy prints the amplitude envelope or spectral features of an
// audio file, or decodes it to a 16-bit PCM WAV file.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/ik5/wavy"
	"github.com/ik5/wavy/audio"
	"github.com/ik5/wavy/envelope"
)

var version = "0.1.0"

// Globals are the flags shared by every command. Zero values leave the
// config file (or the defaults) in charge.
type Globals struct {
	Verbose         bool             `short:"v" help:"Log every pipeline stage to stderr."`
	JSON            bool             `name:"json" help:"Print results as a JSON array."`
	Config          string           `short:"c" help:"JSON config file."`
	ChannelMode     string           `help:"How multi-channel audio is chunked (downmix or interleaved)."`
	PointsPerSecond int              `help:"Envelope resolution."`
	Kernel          string           `help:"FFT implementation (godsp or gonum)."`
	Formats         []string         `sep:"," help:"Codecs to try, in order (wav,aiff,ogg,mp3)."`
	Version         kong.VersionFlag `help:"Show version information."`
}

// CLI is the command tree.
type CLI struct {
	Globals

	Envelope EnvelopeCmd `cmd:"" help:"Print the normalized RMS envelope."`
	Spectrum SpectrumCmd `cmd:"" help:"Print the magnitude spectrum of the peak-reduced envelope."`
	Decode   DecodeCmd   `cmd:"" help:"Decode to a 16-bit PCM WAV file."`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cli := &CLI{}

	exited := false
	parser, err := kong.New(cli,
		kong.Name("wavy"),
		kong.Description("Amplitude envelope and spectral features of audio files"),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Vars{"version": version},
		kong.Exit(func(int) { exited = true }),
	)
	if err != nil {
		fmt.Fprintln(stderr, "wavy:", err)
		return 1
	}

	ctx, err := parser.Parse(args)
	if exited {
		// --help or --version
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "wavy:", err)
		return 1
	}

	logger := newLogger(stderr, cli.Verbose)

	rt, err := newRuntime(&cli.Globals, stdin, stdout, logger)
	if err == nil {
		err = ctx.Run(rt)
	}
	if err != nil {
		logger.Error("command failed",
			slog.String("command", ctx.Command()),
			slog.String("kind", audio.KindOf(err).String()),
			slog.Any("error", err),
		)
		return 1
	}

	return 0
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// runtime is bound into every command's Run method.
type runtime struct {
	stdin  io.Reader
	stdout io.Writer
	logger *slog.Logger
	cfg    wavy.Config
	json   bool
}

func newRuntime(g *Globals, stdin io.Reader, stdout io.Writer, logger *slog.Logger) (*runtime, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, err
	}
	cfg.Logger = logger

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &runtime{
		stdin:  stdin,
		stdout: stdout,
		logger: logger,
		cfg:    cfg,
		json:   g.JSON,
	}, nil
}

// loadConfig reads the config file, if any, and lays the flags over it.
func loadConfig(g *Globals) (wavy.Config, error) {
	cfg := wavy.DefaultConfig()

	if g.Config != "" {
		f, err := os.Open(g.Config)
		if err != nil {
			return wavy.Config{}, fmt.Errorf("%w: %w", audio.ErrIO, err)
		}
		defer f.Close()

		cfg, err = wavy.DecodeConfig(f)
		if err != nil {
			return wavy.Config{}, fmt.Errorf("%s: %w", g.Config, err)
		}
	}

	if g.ChannelMode != "" {
		mode, err := envelope.ParseChannelMode(g.ChannelMode)
		if err != nil {
			return wavy.Config{}, err
		}
		cfg.ChannelMode = mode
	}
	if g.PointsPerSecond != 0 {
		cfg.PointsPerSecond = g.PointsPerSecond
	}
	if g.Kernel != "" {
		cfg.Kernel = g.Kernel
	}
	if len(g.Formats) > 0 {
		cfg.Formats = g.Formats
	}

	return cfg, nil
}
