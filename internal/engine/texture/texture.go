// Package texture decodes image files into RGBA pixels ready for upload.
package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
)

// Decode decodes PNG, JPEG, BMP or TGA data. The name is only used to
// recognize TGA, which has no magic number.
func Decode(data []byte, name string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

// DecodeRGBA decodes data and flips it for GL upload.
func DecodeRGBA(data []byte, name string) (*image.RGBA, error) {
	img, err := Decode(data, name)
	if err != nil {
		return nil, err
	}
	return ImageToRGBA(img, true), nil
}

// FlatNormal returns a 1x1 texture encoding the unperturbed tangent-space
// normal (0,0,1), used when a mesh has no normal map.
func FlatNormal() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	copy(img.Pix, []uint8{128, 128, 255, 255})
	return img
}

// Solid returns a 1x1 opaque texture of the given color.
func Solid(r, g, b uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	copy(img.Pix, []uint8{r, g, b, 255})
	return img
}
