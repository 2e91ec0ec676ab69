package sniffer

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectHead(t *testing.T) {
	tests := []struct {
		name string
		head []byte
		want MediaType
		mime string
	}{
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10}, TypeJPEG, "image/jpeg"},
		{"png", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0x00}, TypePNG, "image/png"},
		{"gif87", []byte("GIF87a......"), TypeGIF, "image/gif"},
		{"gif89", []byte("GIF89a......"), TypeGIF, "image/gif"},
		{"webp", append([]byte("RIFF"), append([]byte{0x10, 0x00, 0x00, 0x00}, []byte("WEBPVP8 ")...)...), TypeWEBP, "image/webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DetectHead(tt.head)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Type)
			assert.Equal(t, tt.mime, result.MIME)
		})
	}
}

func TestDetectHeadUnknown(t *testing.T) {
	_, err := DetectHead([]byte("%PDF-1.7 ..."))
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = DetectHead(nil)
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = DetectHead([]byte("<svg xmlns=\"http://www.w3.org/2000/svg\">"))
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestMimeTypeFromHTTP(t *testing.T) {
	header := http.Header{}
	assert.Equal(t, "", MimeTypeFromHTTP(header))

	header.Set("Content-Type", "image/png")
	assert.Equal(t, "image/png", MimeTypeFromHTTP(header))

	header.Set("Content-Type", "image/jpeg; charset=binary")
	assert.Equal(t, "image/jpeg", MimeTypeFromHTTP(header))
}
