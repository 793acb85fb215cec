package imageprocessor

import (
	"image"
	"image/color"
)

// ColorMode names the pixel layout of an image, using the short names common
// to imaging tools (RGB, RGBA, P, L, ...).
type ColorMode string

const (
	ModeRGB   ColorMode = "RGB"
	ModeRGBA  ColorMode = "RGBA"
	ModeP     ColorMode = "P"
	ModeL     ColorMode = "L"
	ModeI16   ColorMode = "I;16"
	ModeCMYK  ColorMode = "CMYK"
	ModeAlpha ColorMode = "A"
)

// RGB is an 8-bit image with three meaningful channels. The alpha byte of
// the backing RGBA buffer is always 0xff.
type RGB struct {
	*image.RGBA
}

// Opaque always reports true.
func (p *RGB) Opaque() bool { return true }

// ModeOf reports the color mode of img.
//
// Decoders hand back truecolor data without an alpha channel as *image.RGBA
// (PNG, BMP, TIFF) or *image.YCbCr (JPEG), so an opaque *image.RGBA counts as
// RGB. Non-premultiplied buffers come from sources that carry alpha and stay
// RGBA even when every pixel happens to be opaque.
func ModeOf(img image.Image) ColorMode {
	switch m := img.(type) {
	case *RGB, *image.YCbCr:
		return ModeRGB
	case *image.RGBA:
		if m.Opaque() {
			return ModeRGB
		}
		return ModeRGBA
	case *image.RGBA64:
		if m.Opaque() {
			return ModeRGB
		}
		return ModeRGBA
	case *image.NRGBA, *image.NRGBA64, *image.NYCbCrA:
		return ModeRGBA
	case *image.Paletted:
		return ModeP
	case *image.Gray:
		return ModeL
	case *image.Gray16:
		return ModeI16
	case *image.CMYK:
		return ModeCMYK
	case *image.Alpha, *image.Alpha16:
		return ModeAlpha
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return ModeRGB
	}
	return ModeRGBA
}

// ToRGB converts img to RGB. Alpha is dropped, not composited: each output
// pixel keeps the straight (non-premultiplied) color of the source pixel.
func ToRGB(img image.Image) *RGB {
	if rgb, ok := img.(*RGB); ok {
		return rgb
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			si := src.PixOffset(b.Min.X, b.Min.Y+y)
			di := dst.PixOffset(0, y)
			for x := 0; x < b.Dx(); x++ {
				dst.Pix[di+0] = src.Pix[si+0]
				dst.Pix[di+1] = src.Pix[si+1]
				dst.Pix[di+2] = src.Pix[si+2]
				dst.Pix[di+3] = 0xff
				si += 4
				di += 4
			}
		}
		return &RGB{RGBA: dst}
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			dst.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return &RGB{RGBA: dst}
}
