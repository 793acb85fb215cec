package imageprocessor

import (
	"bytes"
	"fmt"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Thumbnail is one rendered output plus what was learned about its source.
type Thumbnail struct {
	Data         []byte
	Format       FormatType
	SourceMode   ColorMode
	SourceWidth  int
	SourceHeight int
	Mode         ColorMode
	Width        int
	Height       int
}

// Backend renders a source file into an encoded JPEG thumbnail
type Backend interface {
	Name() string
	Render(path string) (*Thumbnail, error)
}

// BackendFactory builds a Backend for the given pipeline parameters
type BackendFactory func(opts TransformOptions) (Backend, error)

// DefaultBackend is always compiled in
const DefaultBackend = "imaging"

var (
	backendsMu sync.RWMutex
	backends   = map[string]BackendFactory{
		DefaultBackend: newImagingBackend,
	}
)

// RegisterBackend makes a backend selectable by name
func RegisterBackend(name string, factory BackendFactory) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[name] = factory
}

// HasBackend reports whether name was compiled in
func HasBackend(name string) bool {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// AvailableBackends returns the registered backend names, sorted
func AvailableBackends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBackend builds the named backend
func NewBackend(name string, opts TransformOptions) (Backend, error) {
	backendsMu.RLock()
	factory, ok := backends[name]
	backendsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("backend %q not available (have %v)", name, AvailableBackends())
	}
	return factory(opts)
}

// imagingBackend is the pure Go pipeline
type imagingBackend struct {
	registry *ImageLoaderRegistry
	opts     TransformOptions
}

func newImagingBackend(opts TransformOptions) (Backend, error) {
	return &imagingBackend{
		registry: NewImageLoaderRegistry(),
		opts:     opts,
	}, nil
}

func (b *imagingBackend) Name() string { return DefaultBackend }

func (b *imagingBackend) Render(path string) (*Thumbnail, error) {
	img, err := b.registry.LoadImage(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	thumb := &Thumbnail{
		Format:       GetFileFormat(path),
		SourceMode:   ModeOf(img),
		SourceWidth:  bounds.Dx(),
		SourceHeight: bounds.Dy(),
	}

	out := Transform(img, b.opts)

	var buf bytes.Buffer
	if err := EncodeJPEG(&buf, out, b.opts.Quality); err != nil {
		return nil, errors.Wrapf(err, "cannot encode thumbnail for %s", path)
	}

	thumb.Data = buf.Bytes()
	thumb.Mode = ModeOf(out)
	thumb.Width = out.Bounds().Dx()
	thumb.Height = out.Bounds().Dy()
	return thumb, nil
}
