package mask

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned for files that are not a supported image.
var ErrUnsupportedFormat = errors.New("unsupported mask image format")

// Decode decodes a mask image. The format is sniffed from the content;
// anything else is tried as TGA, which has no signature.
func Decode(data []byte) (image.Image, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("detecting image type: %w", err)
	}

	r := bytes.NewReader(data)
	switch kind.Extension {
	case "png":
		return png.Decode(r)
	case "jpg":
		return jpeg.Decode(r)
	case "gif":
		return gif.Decode(r)
	case "bmp":
		return bmp.Decode(r)
	case "webp":
		return webp.Decode(r)
	}

	// TGA headers can collide with other signatures, so any type not
	// handled above still gets a TGA attempt.
	img, tgaErr := DecodeTGA(data)
	if tgaErr == nil {
		return img, nil
	}
	if kind != filetype.Unknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.MIME.Value)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, tgaErr)
}

// Load reads and decodes a mask image file.
func Load(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// IsDeletePixel reports whether a mask image pixel marks its texel for
// deletion: opaque enough to be painted and no channel brighter than
// threshold. A threshold of 0 accepts pure black only.
func IsDeletePixel(c color.Color, threshold uint8) bool {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0 {
		return false
	}
	return n.R <= threshold && n.G <= threshold && n.B <= threshold
}

// FromImage builds a mask the size of img from its dark pixels.
// Image rows run top-down while mask rows run bottom-up, so the image is
// flipped vertically.
func FromImage(img image.Image, threshold uint8) Mask {
	b := img.Bounds()
	m := New(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := m.Height - 1 - (y - b.Min.Y)
		for x := b.Min.X; x < b.Max.X; x++ {
			if IsDeletePixel(img.At(x, y), threshold) {
				m.Set(x-b.Min.X, row, true)
			}
		}
	}
	return m
}

// Resize scales a mask image to width x height with nearest-neighbour
// sampling so painted pixels stay pure.
func Resize(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	return transform.Resize(img, width, height, transform.NearestNeighbor)
}
