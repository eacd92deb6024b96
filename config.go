// SPDX-License-Identifier: EPL-2.0

package wavy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ik5/wavy/audio"
	"github.com/ik5/wavy/envelope"
	"github.com/ik5/wavy/formats"
	"github.com/ik5/wavy/spectrum"
)

// validate is the shared validator instance for Config. It is set up at
// declaration so defaultPipeline can use it during package initialization.
var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names, which is what users write in config files
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

// Config selects how a Pipeline decodes and analyzes audio.
type Config struct {
	// PointsPerSecond is the envelope resolution.
	PointsPerSecond int `json:"points_per_second" validate:"gte=1,lte=1000"`
	// ChannelMode picks how multi-channel audio is chunked.
	ChannelMode envelope.ChannelMode `json:"channel_mode" validate:"oneof=downmix interleaved"`
	// Kernel names the FFT implementation.
	Kernel string `json:"kernel" validate:"oneof=godsp gonum"`
	// Formats restricts and orders the codecs tried. Empty means all.
	Formats []string `json:"formats" validate:"unique,dive,oneof=wav mp3 ogg aiff"`
	// Logger receives Debug records from every stage. Nil discards.
	Logger *slog.Logger `json:"-" validate:"-"`
}

// DefaultConfig returns the configuration used by the package-level
// ExtractEnvelope and ExtractSpectralFeatures.
func DefaultConfig() Config {
	return Config{
		PointsPerSecond: envelope.DefaultPointsPerSecond,
		ChannelMode:     envelope.ChannelModeDownmix,
		Kernel:          spectrum.KernelGoDSP,
		Formats:         formats.All(),
	}
}

// Validate checks every field. Failures wrap audio.ErrInvalidData and list
// each offending field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", audio.ErrInvalidData, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, e.Field()+" "+formatValidationMessage(e))
	}

	return fmt.Errorf("%w: invalid config: %s", audio.ErrInvalidData, strings.Join(msgs, "; "))
}

// DecodeConfig reads a JSON config from r on top of DefaultConfig. Unknown
// keys are rejected; the result is validated.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: config: %w", audio.ErrInvalidData, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// formatValidationMessage creates a human-readable message from a validator error.
func formatValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "unique":
		return "must not repeat entries"
	default:
		return fmt.Sprintf("failed validation '%s'", e.Tag())
	}
}
