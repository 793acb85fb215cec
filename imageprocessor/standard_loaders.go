package imageprocessor

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// StandardImageLoader handles common image formats like JPEG, PNG, etc.
// Decoding sniffs the content, so it also serves as the fallback for files
// whose extension does not match what they contain.
type StandardImageLoader struct {
	BaseImageLoader
}

// NewStandardImageLoader creates a new loader for standard image formats
func NewStandardImageLoader() *StandardImageLoader {
	return &StandardImageLoader{
		BaseImageLoader: BaseImageLoader{
			SupportedFormats: []FormatType{
				FormatJPEG,
				FormatPNG,
				FormatWEBP,
			},
		},
	}
}

// LoadImage loads a standard image format. GIFs reaching this loader
// through the sniffing fallback yield their first frame.
func (l *StandardImageLoader) LoadImage(path string) (image.Image, error) {
	return decodeFile(path, func(r io.Reader) (image.Image, error) {
		return imaging.Decode(r)
	})
}

// TiffImageLoader specializes in TIFF format loading
type TiffImageLoader struct {
	BaseImageLoader
}

// NewTiffImageLoader creates a new TIFF image loader
func NewTiffImageLoader() *TiffImageLoader {
	return &TiffImageLoader{
		BaseImageLoader: BaseImageLoader{
			SupportedFormats: []FormatType{FormatTIFF},
		},
	}
}

// LoadImage decodes the first page of a TIFF file
func (l *TiffImageLoader) LoadImage(path string) (image.Image, error) {
	return decodeFile(path, tiff.Decode)
}

// BmpImageLoader handles Windows bitmaps
type BmpImageLoader struct {
	BaseImageLoader
}

// NewBmpImageLoader creates a new BMP image loader
func NewBmpImageLoader() *BmpImageLoader {
	return &BmpImageLoader{
		BaseImageLoader: BaseImageLoader{
			SupportedFormats: []FormatType{FormatBMP},
		},
	}
}

// LoadImage decodes a BMP file
func (l *BmpImageLoader) LoadImage(path string) (image.Image, error) {
	return decodeFile(path, bmp.Decode)
}
