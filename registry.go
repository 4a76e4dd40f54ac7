// SPDX-License-Identifier: EPL-2.0

package oggstream

import (
	"github.com/ik5/oggstream/audio"
	"github.com/ik5/oggstream/formats/aiff"
	"github.com/ik5/oggstream/formats/mp3"
	"github.com/ik5/oggstream/formats/vorbis"
	"github.com/ik5/oggstream/formats/wav"
)

// DefaultRegistry returns a registry with every bundled decoder, keyed by
// the usual file extensions.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	return r
}
