// SPDX-License-Identifier: EPL-2.0

package spectrum

import (
	"fmt"
	"math/cmplx"

	"github.com/ik5/wavy/audio"
	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Kernel names accepted by KernelByName.
const (
	KernelGoDSP = "godsp"
	KernelGonum = "gonum"
)

// Kernel computes the forward DFT of a real sequence of any length. The
// result has len(x) bins.
type Kernel interface {
	Forward(x []float64) []complex128
	Name() string
}

// GoDSP runs github.com/mjibson/go-dsp/fft, which falls back to Bluestein's
// algorithm for lengths that are not a power of two.
type GoDSP struct{}

func (GoDSP) Name() string { return KernelGoDSP }

func (GoDSP) Forward(x []float64) []complex128 {
	return fft.FFTReal(x)
}

// Gonum runs the gonum real FFT (FFTPACK) and fills the upper half of the
// spectrum from conjugate symmetry.
type Gonum struct{}

func (Gonum) Name() string { return KernelGonum }

func (Gonum) Forward(x []float64) []complex128 {
	n := len(x)
	half := fourier.NewFFT(n).Coefficients(nil, x)

	out := make([]complex128, n)
	copy(out, half)
	for k := len(half); k < n; k++ {
		out[k] = cmplx.Conj(out[n-k])
	}

	return out
}

// KernelByName returns the kernel registered under name. The empty name
// selects GoDSP.
func KernelByName(name string) (Kernel, error) {
	switch name {
	case "", KernelGoDSP:
		return GoDSP{}, nil
	case KernelGonum:
		return Gonum{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown FFT kernel %q", audio.ErrInvalidData, name)
	}
}
