package derive

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	// Registers the webp decoder for image.Decode.
	_ "golang.org/x/image/webp"
)

const (
	ThumbnailMaxWidth = 500
	DisplayMaxWidth   = 1920

	ThumbnailQuality = 80
	DisplayQuality   = 85
)

type Variant struct {
	Data   []byte
	Width  int
	Height int
}

// Variants decodes a source image, corrects its visual orientation from EXIF,
// and produces the two JPEG variants the gallery serves. Re-encoding drops
// all embedded metadata. Neither variant is ever wider than the source.
func Variants(src []byte) (display Variant, thumbnail Variant, err error) {
	img, err := imaging.Decode(bytes.NewReader(src), imaging.AutoOrientation(true))
	if err != nil {
		return Variant{}, Variant{}, fmt.Errorf("decode image: %w", err)
	}

	display, err = encodeCapped(img, DisplayMaxWidth, DisplayQuality)
	if err != nil {
		return Variant{}, Variant{}, fmt.Errorf("display variant: %w", err)
	}

	thumbnail, err = encodeCapped(img, ThumbnailMaxWidth, ThumbnailQuality)
	if err != nil {
		return Variant{}, Variant{}, fmt.Errorf("thumbnail variant: %w", err)
	}

	return display, thumbnail, nil
}

func encodeCapped(img image.Image, maxWidth, quality int) (Variant, error) {
	resized := img
	if img.Bounds().Dx() > maxWidth {
		resized = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return Variant{}, fmt.Errorf("encode jpeg: %w", err)
	}

	bounds := resized.Bounds()
	return Variant{
		Data:   buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
