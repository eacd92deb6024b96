// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"slices"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
// Each format may also be reachable by one or more MIME types.
type Registry struct {
	codecs map[string]Decoder
	mimes  map[string]string
	order  []string

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mimes:  make(map[string]string),
		mtx:    &sync.Mutex{},
	}
}

// Register adds d under format, replacing any previous decoder for it.
// mimeTypes are aliases used by LookupMIME.
func (r *Registry) Register(format string, d Decoder, mimeTypes ...string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.codecs[format]; !ok {
		r.order = append(r.order, format)
	}
	r.codecs[format] = d

	for _, m := range mimeTypes {
		r.mimes[m] = format
	}
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// LookupMIME returns the format key and decoder registered for mimeType.
func (r *Registry) LookupMIME(mimeType string) (string, Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	format, ok := r.mimes[mimeType]
	if !ok {
		return "", nil, false
	}

	return format, r.codecs[format], true
}

// Formats lists the registered format keys in registration order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return slices.Clone(r.order)
}
