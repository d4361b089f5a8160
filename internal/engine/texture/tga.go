package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// ErrTruncatedTGA is returned when pixel data ends early.
var ErrTruncatedTGA = errors.New("TGA data truncated")

// tgaWriter places decoded pixels in scanline order, honoring the origin bit.
type tgaWriter struct {
	img         *image.RGBA
	width       int
	height      int
	bpp         int
	topToBottom bool
	next        int
}

func (w *tgaWriter) done() bool {
	return w.next >= w.width*w.height
}

// pixel reads one BGR(A) pixel from src.
func (w *tgaWriter) pixel(src []byte) color.RGBA {
	c := color.RGBA{R: src[2], G: src[1], B: src[0], A: 255}
	if w.bpp == 4 {
		c.A = src[3]
	}
	return c
}

func (w *tgaWriter) put(c color.RGBA) {
	x := w.next % w.width
	y := w.next / w.width
	if !w.topToBottom {
		y = w.height - 1 - y
	}
	w.img.SetRGBA(x, y, c)
	w.next++
}

// DecodeTGA decodes a TGA image file.
// Supports uncompressed true-color (type 2) and RLE compressed (type 10) TGA files,
// the variants most texture tools export for normal maps.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := int(data[2])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, ErrTruncatedTGA
	}

	w := &tgaWriter{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		width:       width,
		height:      height,
		bpp:         bpp / 8,
		topToBottom: descriptor&0x20 != 0,
	}

	if imageType == TGATypeUncompressed {
		if err := decodeTGARaw(w, data[offset:]); err != nil {
			return nil, err
		}
	} else {
		decodeTGARLE(w, data[offset:])
	}

	return w.img, nil
}

func decodeTGARaw(w *tgaWriter, src []byte) error {
	if len(src) < w.width*w.height*w.bpp {
		return ErrTruncatedTGA
	}
	for i := 0; !w.done(); i += w.bpp {
		w.put(w.pixel(src[i:]))
	}
	return nil
}

// decodeTGARLE decodes RLE packets until the image is full or data runs out.
// A short stream leaves the remaining pixels transparent.
func decodeTGARLE(w *tgaWriter, src []byte) {
	i := 0
	for !w.done() && i < len(src) {
		packet := src[i]
		i++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if i+w.bpp > len(src) {
				return
			}
			c := w.pixel(src[i:])
			i += w.bpp
			for n := 0; n < count && !w.done(); n++ {
				w.put(c)
			}
			continue
		}

		for n := 0; n < count && !w.done(); n++ {
			if i+w.bpp > len(src) {
				return
			}
			w.put(w.pixel(src[i:]))
			i += w.bpp
		}
	}
}

// ImageToRGBA converts any image.Image to *image.RGBA with its origin at (0,0).
// If flipY is true, rows are reversed so the first row is the bottom of the
// image, which is what GL texture coordinates expect.
func ImageToRGBA(img image.Image, flipY bool) *image.RGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		destY := y
		if flipY {
			destY = h - 1 - y
		}
		for x := 0; x < w; x++ {
			r16, g16, b16, a16 := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			rgba.SetRGBA(x, destY, color.RGBA{R: uint8(r16 >> 8), G: uint8(g16 >> 8), B: uint8(b16 >> 8), A: uint8(a16 >> 8)})
		}
	}

	return rgba
}
