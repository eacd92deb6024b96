// SPDX-License-Identifier: EPL-2.0

// Package spectrum computes the discrete Fourier transform of an amplitude
// curve and its magnitude spectrum.
package spectrum

import (
	"fmt"
	"log/slog"
	"math/cmplx"

	"github.com/ik5/wavy/audio"
)

// Transformer runs forward transforms through a Kernel. The zero value uses
// GoDSP and does not log.
type Transformer struct {
	Kernel Kernel
	Logger *slog.Logger
}

// Transform returns X_k = sum_n x_n e^(-2 pi i k n / N) for every k, so
// the result has the same length as values. Empty input fails with
// audio.ErrInvalidData.
func (t Transformer) Transform(values []float32) ([]complex64, error) {
	coeffs, err := t.forward(values)
	if err != nil {
		return nil, err
	}

	out := make([]complex64, len(coeffs))
	for i, c := range coeffs {
		out[i] = complex64(c)
	}

	return out, nil
}

// Magnitude returns |X_k| for every bin of the transform of values.
func (t Transformer) Magnitude(values []float32) ([]float32, error) {
	coeffs, err := t.forward(values)
	if err != nil {
		return nil, err
	}

	out := make([]float32, len(coeffs))
	for i, c := range coeffs {
		out[i] = float32(cmplx.Abs(c))
	}

	return out, nil
}

func (t Transformer) forward(values []float32) ([]complex128, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: empty sequence", audio.ErrInvalidData)
	}

	kernel := t.Kernel
	if kernel == nil {
		kernel = GoDSP{}
	}

	x := make([]float64, len(values))
	for i, v := range values {
		x[i] = float64(v)
	}

	coeffs := kernel.Forward(x)
	if len(coeffs) != len(values) {
		return nil, fmt.Errorf("%w: %s kernel returned %d bins for %d values",
			audio.ErrProcessing, kernel.Name(), len(coeffs), len(values))
	}

	if t.Logger != nil {
		t.Logger.Debug("computed spectrum", slog.String("kernel", kernel.Name()), slog.Int("bins", len(coeffs)))
	}

	return coeffs, nil
}
