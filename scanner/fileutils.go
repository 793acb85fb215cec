package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ListEntries returns the entries of dir sorted by name. Subdirectories are
// included; nothing below them is visited.
func ListEntries(dir string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot list source directory %s", dir)
	}
	return entries, nil
}

// SplitExt splits name into base and final extension. Leading dots belong to
// the base, so ".png" has no extension and "archive.tar.gz" yields ".gz".
func SplitExt(name string) (base, ext string) {
	trimmed := strings.TrimLeft(name, ".")
	ext = filepath.Ext(trimmed)
	return name[:len(name)-len(ext)], ext
}

// OutputName returns the thumbnail file name for a source file name
func OutputName(name string) string {
	base, _ := SplitExt(name)
	return base + ".jpeg"
}

// ExtensionFilter accepts file names by lower-cased final extension
type ExtensionFilter map[string]bool

// NewExtensionFilter builds a filter from an allow-list
func NewExtensionFilter(exts []string) ExtensionFilter {
	f := make(ExtensionFilter, len(exts))
	for _, ext := range exts {
		f[strings.ToLower(ext)] = true
	}
	return f
}

// Accepts reports whether name carries an allowed extension
func (f ExtensionFilter) Accepts(name string) bool {
	_, ext := SplitExt(name)
	return f[strings.ToLower(ext)]
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it over path, so readers never observe a partial thumbnail.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "cannot create temporary file in %s", dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "cannot write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "cannot close %s", tmpName)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "cannot set permissions on %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "cannot move thumbnail into place at %s", path)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
