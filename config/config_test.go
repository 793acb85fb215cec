package config

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesClassicLayout(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "images", cfg.SourceDir)
	assert.Equal(t, "./opt/icons/", cfg.DestDir)
	assert.Equal(t, []string{".png", ".tiff", ".tif", ".jpg", ".jpeg", ".bmp", ".gif"}, cfg.Extensions)
	assert.Equal(t, 128, cfg.Width)
	assert.Equal(t, 128, cfg.Height)
	assert.Equal(t, CollisionOverwrite, cfg.Collision)
	assert.Equal(t, ErrorAbort, cfg.OnError)
	assert.Equal(t, "imaging", cfg.Backend)
}

func TestDefaultDoesNotShareExtensionSlice(t *testing.T) {
	a := Default()
	a.Extensions[0] = ".xyz"
	assert.Equal(t, ".png", Default().Extensions[0])
}

func TestFromArguments(t *testing.T) {
	cfg, err := FromArguments(map[string]string{
		"source":       "in",
		"dest":         "out",
		"extensions":   "PNG, .jpg,,png",
		"width":        "64",
		"height":       "32",
		"quality":      "90",
		"filter":       "Lanczos",
		"on-collision": "Rename",
		"on-error":     "continue",
		"manifest":     "icons.db",
		"force":        "true",
		"debug":        "true",
		"logfile":      "run.log",
	})
	require.NoError(t, err)

	assert.Equal(t, "in", cfg.SourceDir)
	assert.Equal(t, "out", cfg.DestDir)
	assert.Equal(t, []string{".png", ".jpg"}, cfg.Extensions)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 32, cfg.Height)
	assert.Equal(t, 90, cfg.Quality)
	assert.Equal(t, "lanczos", cfg.Filter)
	assert.Equal(t, CollisionRename, cfg.Collision)
	assert.Equal(t, ErrorContinue, cfg.OnError)
	assert.Equal(t, "icons.db", cfg.ManifestPath)
	assert.True(t, cfg.Force)
	assert.True(t, cfg.DebugMode)
	assert.Equal(t, "run.log", cfg.LogPath)
}

func TestWatchForcesContinue(t *testing.T) {
	cfg, err := FromArguments(map[string]string{"command": "watch", "on-error": "abort", "settle": "2s"})
	require.NoError(t, err)
	assert.Equal(t, ErrorContinue, cfg.OnError)
	assert.Equal(t, 2*time.Second, cfg.Settle)
}

func TestFromArgumentsRejectsBadValues(t *testing.T) {
	tests := []map[string]string{
		{"command": "search"},
		{"width": "0"},
		{"height": "-4"},
		{"width": "wide"},
		{"quality": "101"},
		{"filter": "sharpen"},
		{"backend": "magick"},
		{"on-collision": "merge"},
		{"on-error": "retry"},
		{"force": "maybe"},
		{"settle": "soon"},
		{"extensions": ", ,"},
		{"extensions": ".png,.txt"},
		{"source": ""},
	}
	for _, args := range tests {
		_, err := FromArguments(args)
		require.Error(t, err, "%v", args)
		assert.True(t, errors.Is(err, ErrInvalidConfig), "%v: %v", args, err)
	}
}

func TestParseExtensions(t *testing.T) {
	assert.Equal(t, []string{".png", ".webp"}, ParseExtensions("png,WEBP"))
	assert.Empty(t, ParseExtensions(""))
}
