package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitExt(t *testing.T) {
	tests := []struct {
		name, base, ext string
	}{
		{"photo.PNG", "photo", ".PNG"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{"noext", "noext", ""},
		{".png", ".png", ""},
		{"..hidden.jpg", "..hidden", ".jpg"},
		{"trailing.", "trailing", "."},
	}
	for _, tt := range tests {
		base, ext := SplitExt(tt.name)
		assert.Equal(t, tt.base, base, tt.name)
		assert.Equal(t, tt.ext, ext, tt.name)
	}
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "photo.jpeg", OutputName("photo.PNG"))
	assert.Equal(t, "c.jpeg", OutputName("c.jpg"))
	assert.Equal(t, "scan.2024.jpeg", OutputName("scan.2024.tiff"))
}

func TestExtensionFilter(t *testing.T) {
	f := NewExtensionFilter([]string{".png", ".JPG"})
	assert.True(t, f.Accepts("a.png"))
	assert.True(t, f.Accepts("a.PnG"))
	assert.True(t, f.Accepts("b.jpg"))
	assert.False(t, f.Accepts("notes.txt"))
	assert.False(t, f.Accepts(".png"))
	assert.False(t, f.Accepts("png"))
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.jpeg")

	require.NoError(t, WriteFileAtomic(path, []byte("first")))
	require.NoError(t, WriteFileAtomic(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	err := WriteFileAtomic(filepath.Join(t.TempDir(), "gone", "a.jpeg"), []byte("x"))
	assert.Error(t, err)
}

func TestListEntriesSorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.png", "a.png", "b.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	entries, err := ListEntries(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"a.png", "b.txt", "c.png"}, names)

	_, err = ListEntries(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
