package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 32, 16))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func TestRunConvertsDirectory(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "images")
	dest := filepath.Join(root, "opt", "icons")
	require.NoError(t, os.Mkdir(src, 0755))
	writeTestPNG(t, filepath.Join(src, "a.png"))

	manifest := filepath.Join(root, "manifest.db")
	metricsFile := filepath.Join(root, "iconmaker.prom")

	code := run([]string{"--source=" + src, "--dest=" + dest, "--manifest", manifest, "--metrics-file=" + metricsFile})
	assert.Equal(t, 0, code)
	assert.FileExists(t, filepath.Join(dest, "a.jpeg"))
	assert.FileExists(t, manifest)

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "iconmaker_files_total")
}

func TestRunExitCodes(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "images")
	require.NoError(t, os.Mkdir(src, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "broken.png"), []byte("nope"), 0644))
	dest := filepath.Join(root, "icons")

	assert.Equal(t, 0, run([]string{"help"}))
	assert.Equal(t, 2, run([]string{"--quality=0"}))
	assert.Equal(t, 2, run([]string{"--on-collision=merge"}))
	assert.Equal(t, 1, run([]string{"--source=" + filepath.Join(root, "missing"), "--dest=" + dest}))
	assert.Equal(t, 1, run([]string{"--source=" + src, "--dest=" + dest}))
	assert.Equal(t, 1, run([]string{"--source=" + src, "--dest=" + dest, "--on-error=continue"}))
}
