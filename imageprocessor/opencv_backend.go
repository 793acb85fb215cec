//go:build opencv

package imageprocessor

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

func init() {
	RegisterBackend("opencv", newOpenCVBackend)
}

// openCVBackend runs the same pipeline through OpenCV. Build with -tags opencv.
type openCVBackend struct {
	opts TransformOptions
}

func newOpenCVBackend(opts TransformOptions) (Backend, error) {
	return &openCVBackend{opts: opts}, nil
}

func (b *openCVBackend) Name() string { return "opencv" }

var interpolations = map[string]gocv.InterpolationFlags{
	FilterNearest: gocv.InterpolationNearestNeighbor,
	FilterLinear:  gocv.InterpolationLinear,
	FilterBicubic: gocv.InterpolationCubic,
	FilterLanczos: gocv.InterpolationLanczos4,
}

// matMode maps a channel count to a color mode. OpenCV expands palette
// images on read, so P never shows up here.
func matMode(m gocv.Mat) ColorMode {
	switch m.Channels() {
	case 1:
		return ModeL
	case 3:
		return ModeRGB
	default:
		return ModeRGBA
	}
}

func (b *openCVBackend) Render(path string) (*Thumbnail, error) {
	src := gocv.IMRead(path, gocv.IMReadUnchanged)
	defer src.Close()
	if src.Empty() {
		return nil, &DecodeError{Path: path, Err: errors.New("opencv could not read image")}
	}

	thumb := &Thumbnail{
		Format:       GetFileFormat(path),
		SourceMode:   matMode(src),
		SourceWidth:  src.Cols(),
		SourceHeight: src.Rows(),
	}

	// 16-bit PNG and TIFF come back at full depth; JPEG needs 8 bits.
	in := src
	switch src.Type() {
	case gocv.MatTypeCV16UC1, gocv.MatTypeCV16UC3, gocv.MatTypeCV16UC4:
		eight := gocv.NewMat()
		defer eight.Close()
		if err := src.ConvertToWithParams(&eight, gocv.MatTypeCV8U, 1.0/257.0, 0); err != nil {
			return nil, errors.Wrapf(err, "cannot reduce bit depth of %s", path)
		}
		in = eight
	}

	rotated := gocv.NewMat()
	defer rotated.Close()
	if err := gocv.Rotate(in, &rotated, gocv.Rotate90Clockwise); err != nil {
		return nil, errors.Wrapf(err, "cannot rotate %s", path)
	}

	interp, ok := interpolations[b.opts.Filter]
	if !ok {
		interp = gocv.InterpolationCubic
	}
	resized := gocv.NewMat()
	defer resized.Close()
	if err := gocv.Resize(rotated, &resized, image.Pt(b.opts.Width, b.opts.Height), 0, 0, interp); err != nil {
		return nil, errors.Wrapf(err, "cannot resize %s", path)
	}

	out := resized
	if resized.Channels() != 3 {
		converted := gocv.NewMat()
		defer converted.Close()
		code := gocv.ColorBGRAToBGR
		if resized.Channels() == 1 {
			code = gocv.ColorGrayToBGR
		}
		if err := gocv.CvtColor(resized, &converted, code); err != nil {
			return nil, errors.Wrapf(err, "cannot convert %s to RGB", path)
		}
		out = converted
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, out, []int{gocv.IMWriteJpegQuality, b.opts.Quality})
	if err != nil {
		return nil, errors.Wrapf(err, "cannot encode thumbnail for %s", path)
	}
	defer buf.Close()

	thumb.Data = append([]byte(nil), buf.GetBytes()...)
	thumb.Mode = matMode(out)
	thumb.Width = out.Cols()
	thumb.Height = out.Rows()
	return thumb, nil
}
