package imageprocessor

import (
	"image"
	"path/filepath"
	"strings"
	"sync"

	"iconmaker/logging"

	"github.com/pkg/errors"
)

// ImageLoaderRegistry maintains a registry of image loaders
type ImageLoaderRegistry struct {
	loaders       map[string]ImageLoader
	defaultLoader ImageLoader
	mutex         sync.RWMutex
}

// NewImageLoaderRegistry creates a new image loader registry
func NewImageLoaderRegistry() *ImageLoaderRegistry {
	registry := &ImageLoaderRegistry{
		loaders: make(map[string]ImageLoader),
	}

	standardLoader := NewStandardImageLoader()
	registry.RegisterLoader(".jpg", standardLoader)
	registry.RegisterLoader(".jpeg", standardLoader)
	registry.RegisterLoader(".png", standardLoader)
	registry.RegisterLoader(".webp", standardLoader)
	registry.defaultLoader = standardLoader

	tiffLoader := NewTiffImageLoader()
	registry.RegisterLoader(".tif", tiffLoader)
	registry.RegisterLoader(".tiff", tiffLoader)

	registry.RegisterLoader(".bmp", NewBmpImageLoader())
	registry.RegisterLoader(".gif", NewGifImageLoader())

	return registry
}

// RegisterLoader registers a new loader for a specific file extension
func (r *ImageLoaderRegistry) RegisterLoader(ext string, loader ImageLoader) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.loaders[strings.ToLower(ext)] = loader
}

// GetLoader returns the appropriate loader for the given path
func (r *ImageLoaderRegistry) GetLoader(path string) ImageLoader {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if loader, ok := r.loaders[strings.ToLower(filepath.Ext(path))]; ok {
		return loader
	}
	return r.defaultLoader
}

// CanLoadFile checks if the loader registered for the file's extension
// supports its format
func (r *ImageLoaderRegistry) CanLoadFile(path string) bool {
	r.mutex.RLock()
	loader, ok := r.loaders[strings.ToLower(filepath.Ext(path))]
	r.mutex.RUnlock()

	return ok && loader.CanLoad(path)
}

// LoadImage loads an image using the loader registered for its extension.
// If that loader cannot decode the content, the sniffing default loader gets
// a second try; the first decode error is reported when both fail.
func (r *ImageLoaderRegistry) LoadImage(path string) (image.Image, error) {
	loader := r.GetLoader(path)
	img, err := loader.LoadImage(path)
	if err == nil {
		return img, nil
	}

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) || loader == r.defaultLoader {
		return nil, err
	}

	logging.DebugLog("Extension loader failed for %s (%v), sniffing content", path, err)
	img, fallbackErr := r.defaultLoader.LoadImage(path)
	if fallbackErr != nil {
		return nil, err
	}
	return img, nil
}
