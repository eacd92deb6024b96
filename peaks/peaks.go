// SPDX-License-Identifier: EPL-2.0

// Package peaks downsamples an amplitude curve for rendering by keeping the
// loudest value of every group.
package peaks

import (
	"fmt"
	"slices"

	"github.com/ik5/wavy/audio"
)

// Reduce splits values into contiguous groups of groupSize (the last group
// may be shorter) and returns the maximum of each. The result has
// ceil(len(values)/groupSize) elements; values is not modified.
func Reduce(values []float32, groupSize int) ([]float32, error) {
	if groupSize <= 0 {
		return nil, fmt.Errorf("%w: group size %d", audio.ErrInvalidData, groupSize)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no values to reduce", audio.ErrInvalidData)
	}

	out := make([]float32, 0, (len(values)+groupSize-1)/groupSize)
	for group := range slices.Chunk(values, groupSize) {
		if len(group) == 0 {
			return nil, fmt.Errorf("%w: empty group at %d", audio.ErrProcessing, len(out))
		}
		out = append(out, slices.Max(group))
	}

	return out, nil
}
