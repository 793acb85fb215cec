package imageprocessor

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"io"
)

// GifImageLoader decodes the first frame of a GIF. image/gif blanks the
// transparent palette entry to color.RGBA{}; the loader puts the color
// table's RGB back so an RGB conversion shows the stored color, not black.
type GifImageLoader struct {
	BaseImageLoader
}

// NewGifImageLoader creates a new GIF image loader
func NewGifImageLoader() *GifImageLoader {
	return &GifImageLoader{
		BaseImageLoader: BaseImageLoader{
			SupportedFormats: []FormatType{FormatGIF},
		},
	}
}

// LoadImage decodes the first frame of a GIF file
func (l *GifImageLoader) LoadImage(path string) (image.Image, error) {
	return decodeFile(path, func(r io.Reader) (image.Image, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		img, err := gif.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		if p, ok := img.(*image.Paletted); ok {
			restoreTransparentEntry(p, firstFrameColorTable(data))
		}
		return img, nil
	})
}

func restoreTransparentEntry(p *image.Paletted, table []color.RGBA) {
	blank := color.Color(color.RGBA{})
	pal := make(color.Palette, len(p.Palette))
	copy(pal, p.Palette)
	for i, c := range pal {
		if c == blank && i < len(table) {
			pal[i] = table[i]
		}
	}
	p.Palette = pal
}

// firstFrameColorTable returns the color table the first frame is drawn
// with: its local table when present, otherwise the global one.
func firstFrameColorTable(data []byte) []color.RGBA {
	const headerLen = 13
	if len(data) < headerLen {
		return nil
	}

	pos := headerLen
	var global []color.RGBA
	if flags := data[10]; flags&0x80 != 0 {
		n := 3 << ((flags & 0x07) + 1)
		if len(data) < pos+n {
			return nil
		}
		global = rgbTable(data[pos : pos+n])
		pos += n
	}

	for pos < len(data) {
		switch data[pos] {
		case 0x21: // extension: introducer, label, sub-blocks
			pos = skipSubBlocks(data, pos+2)
		case 0x2c: // image descriptor
			if len(data) < pos+10 {
				return nil
			}
			flags := data[pos+9]
			pos += 10
			if flags&0x80 == 0 {
				return global
			}
			n := 3 << ((flags & 0x07) + 1)
			if len(data) < pos+n {
				return nil
			}
			return rgbTable(data[pos : pos+n])
		default:
			return nil
		}
	}
	return nil
}

func skipSubBlocks(data []byte, pos int) int {
	for pos < len(data) {
		size := int(data[pos])
		pos++
		if size == 0 {
			return pos
		}
		pos += size
	}
	return pos
}

func rgbTable(raw []byte) []color.RGBA {
	table := make([]color.RGBA, len(raw)/3)
	for i := range table {
		table[i] = color.RGBA{R: raw[3*i], G: raw[3*i+1], B: raw[3*i+2], A: 0xff}
	}
	return table
}
