// SPDX-License-Identifier: EPL-2.0

// Package formats wires the codec packages into an audio.Registry and sniffs
// containers with mimetype.
package formats

import (
	"fmt"
	"slices"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ik5/wavy/audio"
	"github.com/ik5/wavy/formats/aiff"
	"github.com/ik5/wavy/formats/mp3"
	"github.com/ik5/wavy/formats/vorbis"
	"github.com/ik5/wavy/formats/wav"
)

// Format keys.
const (
	WAV  = "wav"
	MP3  = "mp3"
	Ogg  = "ogg"
	AIFF = "aiff"
)

type entry struct {
	decoder audio.Decoder
	mimes   []string
}

// known is in probe order: containers with strong magic first, mp3 last
// since go-mp3 scans for a frame sync.
var (
	known = []string{WAV, AIFF, Ogg, MP3}

	entries = map[string]entry{
		WAV:  {wav.Decoder{}, []string{"audio/wav", "audio/x-wav", "audio/wave", "audio/vnd.wave"}},
		AIFF: {aiff.Decoder{}, []string{"audio/aiff", "audio/x-aiff"}},
		Ogg:  {vorbis.Decoder{}, []string{"audio/ogg", "application/ogg"}},
		MP3:  {mp3.Decoder{}, []string{"audio/mpeg", "audio/x-mpeg", "audio/mp3"}},
	}
)

// All lists every supported format key in probe order.
func All() []string {
	return slices.Clone(known)
}

// NewRegistry registers the named formats, or all of them when none are
// given. Registration follows the order of names. Unknown or duplicated
// names fail with audio.ErrInvalidData.
func NewRegistry(names ...string) (*audio.Registry, error) {
	if len(names) == 0 {
		names = known
	}

	reg := audio.NewRegistry()
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		e, ok := entries[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown format %q", audio.ErrInvalidData, name)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: format %q listed twice", audio.ErrInvalidData, name)
		}
		seen[name] = true

		reg.Register(name, e.decoder, e.mimes...)
	}

	return reg, nil
}

// Detect sniffs the container of data.
func Detect(data []byte) *mimetype.MIME {
	return mimetype.Detect(data)
}

// Lookup finds the decoder registered for the sniffed MIME type of data,
// walking up to parent types (audio/ogg -> application/ogg). mime is the
// detected type even when nothing matched.
func Lookup(reg *audio.Registry, data []byte) (format string, dec audio.Decoder, mime string, ok bool) {
	detected := Detect(data)
	mime = detected.String()

	for m := detected; m != nil; m = m.Parent() {
		if format, dec, ok = reg.LookupMIME(m.String()); ok {
			return format, dec, mime, true
		}
	}

	return "", nil, mime, false
}
