package mask

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeGray         = 3  // Uncompressed grayscale
	TGATypeRLE          = 10 // RLE compressed true-color
	TGATypeGrayRLE      = 11 // RLE compressed grayscale
)

const (
	tgaHeaderSize            = 18
	tgaDescriptorTopToBottom = 0x20
)

// TGA decoding errors.
var (
	ErrTGATruncated   = errors.New("TGA data truncated")
	ErrTGAUnsupported = errors.New("unsupported TGA image")
)

// tgaPixels walks TGA pixel data and writes decoded texels into an image.
type tgaPixels struct {
	img           *image.NRGBA
	data          []byte
	width, height int
	bytesPerPixel int
	topToBottom   bool
	next          int // texels written so far
}

// read decodes the texel at data[off:] into a color.
func (p *tgaPixels) read(off int) color.NRGBA {
	px := p.data[off : off+p.bytesPerPixel]
	switch p.bytesPerPixel {
	case 1:
		return color.NRGBA{R: px[0], G: px[0], B: px[0], A: 255}
	case 3:
		return color.NRGBA{R: px[2], G: px[1], B: px[0], A: 255}
	default:
		return color.NRGBA{R: px[2], G: px[1], B: px[0], A: px[3]}
	}
}

// put stores c at the next texel position in file order.
func (p *tgaPixels) put(c color.NRGBA) {
	x := p.next % p.width
	y := p.next / p.width
	if !p.topToBottom {
		y = p.height - 1 - y
	}
	p.img.SetNRGBA(x, y, c)
	p.next++
}

func (p *tgaPixels) done() bool {
	return p.next >= p.width*p.height
}

// DecodeTGA decodes a TGA image.
// Supports uncompressed and RLE compressed true-color (24/32 bpp) and
// grayscale (8 bpp) images.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, ErrTGATruncated
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped", ErrTGAUnsupported)
	}
	gray := imageType == TGATypeGray || imageType == TGATypeGrayRLE
	switch {
	case imageType != TGATypeUncompressed && imageType != TGATypeRLE && !gray:
		return nil, fmt.Errorf("%w: type %d", ErrTGAUnsupported, imageType)
	case gray && bpp != 8:
		return nil, fmt.Errorf("%w: grayscale bit depth %d", ErrTGAUnsupported, bpp)
	case !gray && bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("%w: bit depth %d", ErrTGAUnsupported, bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, ErrTGATruncated
	}

	p := &tgaPixels{
		img:           image.NewNRGBA(image.Rect(0, 0, width, height)),
		data:          data[offset:],
		width:         width,
		height:        height,
		bytesPerPixel: bpp / 8,
		topToBottom:   descriptor&tgaDescriptorTopToBottom != 0,
	}

	if imageType == TGATypeRLE || imageType == TGATypeGrayRLE {
		if err := p.decodeRLE(); err != nil {
			return nil, err
		}
		return p.img, nil
	}

	if len(p.data) < width*height*p.bytesPerPixel {
		return nil, ErrTGATruncated
	}
	for off := 0; !p.done(); off += p.bytesPerPixel {
		p.put(p.read(off))
	}
	return p.img, nil
}

// decodeRLE decodes run-length packets. A truncated stream is an error.
func (p *tgaPixels) decodeRLE() error {
	off := 0
	for !p.done() {
		if off >= len(p.data) {
			return ErrTGATruncated
		}
		packet := p.data[off]
		off++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run packet: one texel repeated
			if off+p.bytesPerPixel > len(p.data) {
				return ErrTGATruncated
			}
			c := p.read(off)
			off += p.bytesPerPixel
			for i := 0; i < count && !p.done(); i++ {
				p.put(c)
			}
			continue
		}

		// Raw packet
		for i := 0; i < count && !p.done(); i++ {
			if off+p.bytesPerPixel > len(p.data) {
				return ErrTGATruncated
			}
			p.put(p.read(off))
			off += p.bytesPerPixel
		}
	}
	return nil
}
