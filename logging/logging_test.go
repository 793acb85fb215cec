package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugLogWritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, SetupLogger(logPath))
	assert.True(t, IsDebug())

	DebugLog("converting %s", "a.png")
	LogImageProcessed("images/a.png", "opt/icons/a.jpeg", true, "")
	LogImageProcessed("images/b.png", "", false, "bad header")
	CloseLogger()
	assert.False(t, IsDebug())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"message":"converting a.png"`)
	assert.Contains(t, out, `"path":"images/a.png"`)
	assert.Contains(t, out, `"error":"bad header"`)
	assert.Contains(t, out, `"level":"debug"`)
}

func TestDebugLogWithoutSetupIsSilent(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	DebugLog("not shown")
	LogInfo("not shown either")
	assert.Empty(t, buf.String())
}

func TestWarningsReachConsole(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	LogWarning("destination %s already had %d files", "opt/icons", 3)
	LogError(errors.New("permission denied"), "cannot write %s", "a.jpeg")

	out := buf.String()
	assert.Contains(t, out, "destination opt/icons already had 3 files")
	assert.Contains(t, out, "cannot write a.jpeg")
	assert.Contains(t, out, "permission denied")
}
