package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArguments(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want map[string]string
	}{
		{
			name: "no arguments",
			argv: nil,
			want: map[string]string{},
		},
		{
			name: "command with equals flags",
			argv: []string{"watch", "--source=in", "--dest=out"},
			want: map[string]string{"command": "watch", "source": "in", "dest": "out"},
		},
		{
			name: "space separated value and bare flag",
			argv: []string{"--source", "in", "--force", "--debug"},
			want: map[string]string{"source": "in", "force": "true", "debug": "true"},
		},
		{
			name: "command after flags",
			argv: []string{"--quality=80", "convert"},
			want: map[string]string{"command": "convert", "quality": "80"},
		},
		{
			name: "bare flag before command",
			argv: []string{"--force", "watch", "--settle", "1s"},
			want: map[string]string{"command": "watch", "force": "true", "settle": "1s"},
		},
		{
			name: "separate value before command",
			argv: []string{"--source", "in", "watch"},
			want: map[string]string{"command": "watch", "source": "in"},
		},
		{
			name: "duration value before command",
			argv: []string{"--settle", "1s", "watch", "--dest=out"},
			want: map[string]string{"command": "watch", "settle": "1s", "dest": "out"},
		},
		{
			name: "help flag",
			argv: []string{"--help"},
			want: map[string]string{"command": "help"},
		},
		{
			name: "value containing equals",
			argv: []string{"--extensions=.png,.jpg", "--logfile=a=b.log"},
			want: map[string]string{"extensions": ".png,.jpg", "logfile": "a=b.log"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseArguments(tt.argv))
		})
	}
}

func TestPrintUsageMentionsDefaults(t *testing.T) {
	var buf bytes.Buffer
	PrintUsage(&buf, "iconmaker")
	out := buf.String()
	assert.Contains(t, out, "--on-collision")
	assert.Contains(t, out, "./opt/icons/")
	assert.Contains(t, out, ".png,.tiff,.tif,.jpg,.jpeg,.bmp,.gif")
}
