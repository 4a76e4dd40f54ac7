// SPDX-License-Identifier: EPL-2.0

package oggstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/oggstream/audio"
	"github.com/ik5/oggstream/formats/aiff"
	"github.com/ik5/oggstream/formats/mp3"
	"github.com/ik5/oggstream/formats/vorbis"
	"github.com/ik5/oggstream/formats/wav"
)

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	r := DefaultRegistry()
	assert.Equal(t, []string{"aif", "aiff", "mp3", "oga", "ogg", "wav", "wave"}, r.Formats())

	tests := []struct {
		path string
		want audio.Decoder
	}{
		{"speech.ogg", vorbis.Decoder{}},
		{"/tmp/MUSIC.MP3", mp3.Decoder{}},
		{"take1.wav", wav.Decoder{}},
		{"loop.aif", aiff.Decoder{}},
	}

	for _, tt := range tests {
		d, err := r.Lookup(tt.path)
		require.NoError(t, err, tt.path)
		assert.IsType(t, tt.want, d, tt.path)
	}

	_, err := r.Lookup("notes.txt")
	assert.ErrorIs(t, err, audio.ErrUnknownFormat)
}
