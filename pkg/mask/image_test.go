package mask

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

var (
	black = color.NRGBA{A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// checkerImage returns a 2x2 image with black at the top-left and
// bottom-right, white elsewhere.
func checkerImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, black)
	img.SetNRGBA(1, 0, white)
	img.SetNRGBA(0, 1, white)
	img.SetNRGBA(1, 1, black)
	return img
}

func TestIsDeletePixel(t *testing.T) {
	tests := []struct {
		name      string
		c         color.Color
		threshold uint8
		want      bool
	}{
		{"black", black, 0, true},
		{"white", white, 0, false},
		{"near black strict", color.NRGBA{R: 3, G: 3, B: 3, A: 255}, 0, false},
		{"near black with threshold", color.NRGBA{R: 3, G: 3, B: 3, A: 255}, 8, true},
		{"dark red", color.NRGBA{R: 90, A: 255}, 8, false},
		{"transparent", color.NRGBA{}, 0, false},
		{"gray16 black", color.Gray16{}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDeletePixel(tt.c, tt.threshold))
		})
	}
}

func TestFromImageFlipsRows(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.SetNRGBA(x, y, white)
		}
	}
	img.SetNRGBA(2, 0, black) // top-right in image space

	m := FromImage(img, 0)
	require.NoError(t, m.Validate())
	assert.Equal(t, 1, m.Count())
	// Top image row is the last mask row.
	assert.True(t, m.At(2, 1))
	assert.True(t, m.Bits[5])
}

func TestFromImageOffsetBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 20, 12, 22))
	img.SetNRGBA(10, 21, black) // bottom-left
	img.SetNRGBA(11, 21, white)
	img.SetNRGBA(10, 20, white)
	img.SetNRGBA(11, 20, white)

	m := FromImage(img, 0)
	assert.Equal(t, 2, m.Width)
	assert.True(t, m.At(0, 0))
	assert.Equal(t, 1, m.Count())
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, checkerImage()))

	img, err := Decode(buf.Bytes())
	require.NoError(t, err)

	m := FromImage(img, 0)
	assert.Equal(t, []bool{false, true, true, false}, m.Bits)
}

func TestDecodeBMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, checkerImage()))

	img, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())

	m := FromImage(img, 0)
	assert.Equal(t, []bool{false, true, true, false}, m.Bits)
}

func TestDecodeUnsupported(t *testing.T) {
	_, err := Decode([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Decode(nil)
	assert.Error(t, err)
}

func TestResize(t *testing.T) {
	img := checkerImage()

	same := Resize(img, 2, 2)
	assert.Same(t, img, same.(*image.NRGBA))

	big := Resize(img, 4, 4)
	assert.Equal(t, image.Rect(0, 0, 4, 4), big.Bounds())
	assert.True(t, IsDeletePixel(big.At(0, 0), 0))
	assert.True(t, IsDeletePixel(big.At(3, 3), 0))
	assert.False(t, IsDeletePixel(big.At(3, 0), 0))
	assert.False(t, IsDeletePixel(big.At(0, 3), 0))
}
