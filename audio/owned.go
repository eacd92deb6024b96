// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"sync/atomic"
)

// OwnedBytes is a single-use handle around an encoded audio buffer.
//
// Whoever calls Own gives the buffer up: it must not read or write the slice
// afterwards. The consumer (the decoder) calls Take exactly once; any later
// Take, from the same goroutine or another one, fails with ErrInvalidData
// instead of handing out an aliased buffer.
type OwnedBytes struct {
	data atomic.Pointer[[]byte]
}

// Own transfers b into a new handle.
func Own(b []byte) *OwnedBytes {
	o := &OwnedBytes{}
	o.data.Store(&b)
	return o
}

// Take hands the buffer to the caller and empties the handle.
func (o *OwnedBytes) Take() ([]byte, error) {
	if o == nil {
		return nil, fmt.Errorf("%w: nil audio buffer", ErrInvalidData)
	}

	p := o.data.Swap(nil)
	if p == nil {
		return nil, fmt.Errorf("%w: audio buffer already consumed", ErrInvalidData)
	}

	return *p, nil
}
