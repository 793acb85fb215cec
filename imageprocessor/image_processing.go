package imageprocessor

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
)

// Default thumbnail geometry and encoding.
const (
	DefaultWidth   = 128
	DefaultHeight  = 128
	DefaultQuality = 75
)

// Resampling filter names accepted by ParseFilter.
const (
	FilterAuto    = "auto"
	FilterNearest = "nearest"
	FilterLinear  = "linear"
	FilterBicubic = "bicubic"
	FilterLanczos = "lanczos"
)

// TransformOptions defines the fixed per-image pipeline parameters
type TransformOptions struct {
	Width   int
	Height  int
	Filter  string
	Quality int
}

// DefaultTransformOptions returns the 128x128 bicubic, quality 75 pipeline.
func DefaultTransformOptions() TransformOptions {
	return TransformOptions{
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		Filter:  FilterAuto,
		Quality: DefaultQuality,
	}
}

var resampleFilters = map[string]imaging.ResampleFilter{
	FilterNearest: imaging.NearestNeighbor,
	FilterLinear:  imaging.Linear,
	FilterBicubic: imaging.CatmullRom,
	FilterLanczos: imaging.Lanczos,
}

// ParseFilter validates a filter name
func ParseFilter(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == FilterAuto {
		return FilterAuto, nil
	}
	if _, ok := resampleFilters[name]; !ok {
		return "", fmt.Errorf("unknown resampling filter %q", name)
	}
	return name, nil
}

// resampleFilter resolves "auto": palette images are scaled with nearest
// neighbor, everything else bicubic.
func resampleFilter(name string, source ColorMode) imaging.ResampleFilter {
	if f, ok := resampleFilters[name]; ok {
		return f
	}
	if source == ModeP {
		return imaging.NearestNeighbor
	}
	return imaging.CatmullRom
}

// RotateClockwise turns img a quarter turn clockwise. The canvas grows to the
// rotated bounds, so a WxH image comes back HxW with nothing cropped.
func RotateClockwise(img image.Image) *image.NRGBA {
	return imaging.Rotate270(img)
}

// Resize scales img to exactly width x height, ignoring the aspect ratio.
func Resize(img image.Image, width, height int, filter imaging.ResampleFilter) *image.NRGBA {
	return imaging.Resize(img, width, height, filter)
}

// Transform runs the rotate, resize, RGB pipeline. Color conversion happens
// last, after resampling.
func Transform(img image.Image, opts TransformOptions) image.Image {
	filter := resampleFilter(opts.Filter, ModeOf(img))

	var out image.Image = Resize(RotateClockwise(img), opts.Width, opts.Height, filter)
	if ModeOf(out) != ModeRGB {
		out = ToRGB(out)
	}
	return out
}

// EncodeJPEG writes img as a baseline JPEG
func EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	if rgb, ok := img.(*RGB); ok {
		img = rgb.RGBA
	}
	return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
}
