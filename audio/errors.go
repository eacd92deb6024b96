// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
)

// Pipeline failures fall into one of five flat kinds. Stages wrap the
// matching sentinel with detail, so errors.Is and KindOf both work on
// whatever a stage returns.
var (
	ErrDecoding    = errors.New(KindDecoding.String())
	ErrEncoding    = errors.New(KindEncoding.String())
	ErrIO          = errors.New(KindIO.String())
	ErrInvalidData = errors.New(KindInvalidData.String())
	ErrProcessing  = errors.New(KindProcessing.String())
)

// Kind classifies an error returned by the pipeline.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindDecoding
	KindEncoding
	KindIO
	KindInvalidData
	KindProcessing
)

func (k Kind) String() string {
	switch k {
	case KindDecoding:
		return "Decoding error"
	case KindEncoding:
		return "Encoding error"
	case KindIO:
		return "IO error"
	case KindInvalidData:
		return "Invalid data"
	case KindProcessing:
		return "Processing error"
	default:
		return "Unknown error"
	}
}

// KindOf reports the kind of err, or KindUnknown when err does not wrap one
// of the kind sentinels. A nil error is KindUnknown as well.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrDecoding):
		return KindDecoding
	case errors.Is(err, ErrEncoding):
		return KindEncoding
	case errors.Is(err, ErrIO):
		return KindIO
	case errors.Is(err, ErrInvalidData):
		return KindInvalidData
	case errors.Is(err, ErrProcessing):
		return KindProcessing
	default:
		return KindUnknown
	}
}
