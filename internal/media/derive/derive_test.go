package derive

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(t *testing.T, width, height int, encode func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x += 10 {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(buf *bytes.Buffer, img image.Image) error {
	return jpeg.Encode(buf, img, &jpeg.Options{Quality: 90})
}

func encodePNG(buf *bytes.Buffer, img image.Image) error {
	return png.Encode(buf, img)
}

func decodedSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
	return cfg.Width, cfg.Height
}

func TestVariantsCapsWidths(t *testing.T) {
	src := testImage(t, 2400, 1200, encodeJPEG)

	display, thumbnail, err := Variants(src)
	require.NoError(t, err)

	w, h := decodedSize(t, display.Data)
	assert.Equal(t, DisplayMaxWidth, w)
	assert.Equal(t, 960, h) // aspect ratio preserved
	assert.Equal(t, DisplayMaxWidth, display.Width)

	w, h = decodedSize(t, thumbnail.Data)
	assert.Equal(t, ThumbnailMaxWidth, w)
	assert.Equal(t, 250, h)
	assert.Equal(t, ThumbnailMaxWidth, thumbnail.Width)
}

func TestVariantsNeverUpscales(t *testing.T) {
	src := testImage(t, 300, 200, encodeJPEG)

	display, thumbnail, err := Variants(src)
	require.NoError(t, err)

	w, h := decodedSize(t, display.Data)
	assert.Equal(t, 300, w)
	assert.Equal(t, 200, h)

	w, h = decodedSize(t, thumbnail.Data)
	assert.Equal(t, 300, w)
	assert.Equal(t, 200, h)
}

func TestVariantsIntermediateWidth(t *testing.T) {
	// Wider than the thumbnail cap, narrower than the display cap.
	src := testImage(t, 1000, 500, encodeJPEG)

	display, thumbnail, err := Variants(src)
	require.NoError(t, err)

	w, _ := decodedSize(t, display.Data)
	assert.Equal(t, 1000, w)

	w, _ = decodedSize(t, thumbnail.Data)
	assert.Equal(t, ThumbnailMaxWidth, w)
}

func TestVariantsReencodesPNGToJPEG(t *testing.T) {
	src := testImage(t, 800, 600, encodePNG)

	display, thumbnail, err := Variants(src)
	require.NoError(t, err)

	// decodedSize asserts the jpeg format.
	decodedSize(t, display.Data)
	decodedSize(t, thumbnail.Data)
}

func TestVariantsRejectsGarbage(t *testing.T) {
	_, _, err := Variants([]byte("definitely not an image"))
	assert.Error(t, err)
}
