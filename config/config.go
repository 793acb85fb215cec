// Package config holds the run configuration. Every path and limit the
// converter uses lives here and is passed explicitly into the scanner.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"iconmaker/imageprocessor"

	"github.com/pkg/errors"
)

// Commands
const (
	CommandConvert = "convert"
	CommandWatch   = "watch"
)

// Defaults for paths and logging
const (
	DefaultSourceDir = "images"
	DefaultDestDir   = "./opt/icons/"
	DefaultLogPath   = "iconmaker.log"
	DefaultSettle    = 500 * time.Millisecond
)

// CollisionPolicy decides what happens when two sources map to one output name
type CollisionPolicy string

const (
	CollisionOverwrite CollisionPolicy = "overwrite"
	CollisionSkip      CollisionPolicy = "skip"
	CollisionRename    CollisionPolicy = "rename"
	CollisionError     CollisionPolicy = "error"
)

// ErrorPolicy decides whether a per-file failure stops the run
type ErrorPolicy string

const (
	ErrorAbort    ErrorPolicy = "abort"
	ErrorContinue ErrorPolicy = "continue"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings for one invocation
type Config struct {
	Command      string
	SourceDir    string
	DestDir      string
	Extensions   []string
	Width        int
	Height       int
	Quality      int
	Filter       string
	Backend      string
	Collision    CollisionPolicy
	OnError      ErrorPolicy
	ManifestPath string
	Force        bool
	MetricsPath  string
	Settle       time.Duration
	DebugMode    bool
	LogPath      string
}

// Default returns the configuration that reproduces the classic behavior:
// convert ./images into ./opt/icons/ as 128x128 JPEGs.
func Default() *Config {
	exts := make([]string, len(imageprocessor.DefaultExtensions))
	copy(exts, imageprocessor.DefaultExtensions)

	return &Config{
		Command:    CommandConvert,
		SourceDir:  DefaultSourceDir,
		DestDir:    DefaultDestDir,
		Extensions: exts,
		Width:      imageprocessor.DefaultWidth,
		Height:     imageprocessor.DefaultHeight,
		Quality:    imageprocessor.DefaultQuality,
		Filter:     imageprocessor.FilterAuto,
		Backend:    imageprocessor.DefaultBackend,
		Collision:  CollisionOverwrite,
		OnError:    ErrorAbort,
		Settle:     DefaultSettle,
		LogPath:    DefaultLogPath,
	}
}

// FromArguments applies parsed command line arguments on top of Default and
// validates the result.
func FromArguments(args map[string]string) (*Config, error) {
	cfg := Default()

	if cmd, ok := args["command"]; ok {
		cfg.Command = cmd
	}
	if v, ok := args["source"]; ok {
		cfg.SourceDir = v
	}
	if v, ok := args["dest"]; ok {
		cfg.DestDir = v
	}
	if v, ok := args["extensions"]; ok {
		cfg.Extensions = ParseExtensions(v)
	}
	if v, ok := args["filter"]; ok {
		cfg.Filter = v
	}
	if v, ok := args["backend"]; ok {
		cfg.Backend = v
	}
	if v, ok := args["on-collision"]; ok {
		cfg.Collision = CollisionPolicy(strings.ToLower(v))
	}
	if v, ok := args["on-error"]; ok {
		cfg.OnError = ErrorPolicy(strings.ToLower(v))
	}
	if v, ok := args["manifest"]; ok {
		cfg.ManifestPath = v
	}
	if v, ok := args["metrics-file"]; ok {
		cfg.MetricsPath = v
	}
	if v, ok := args["logfile"]; ok && v != "" {
		cfg.LogPath = v
	}

	var err error
	if cfg.Force, err = boolArg(args, "force"); err != nil {
		return nil, err
	}
	if cfg.DebugMode, err = boolArg(args, "debug"); err != nil {
		return nil, err
	}
	if cfg.Width, err = intArg(args, "width", cfg.Width); err != nil {
		return nil, err
	}
	if cfg.Height, err = intArg(args, "height", cfg.Height); err != nil {
		return nil, err
	}
	if cfg.Quality, err = intArg(args, "quality", cfg.Quality); err != nil {
		return nil, err
	}
	if v, ok := args["settle"]; ok {
		if cfg.Settle, err = time.ParseDuration(v); err != nil {
			return nil, errors.Wrapf(ErrInvalidConfig, "--settle: %v", err)
		}
	}

	// Watch mode runs unattended; one bad file must not stop it.
	if cfg.Command == CommandWatch {
		cfg.OnError = ErrorContinue
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot honor
func (c *Config) Validate() error {
	switch c.Command {
	case CommandConvert, CommandWatch:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown command %q", c.Command)
	}
	if c.SourceDir == "" {
		return errors.Wrap(ErrInvalidConfig, "source directory is empty")
	}
	if c.DestDir == "" {
		return errors.Wrap(ErrInvalidConfig, "destination directory is empty")
	}
	if len(c.Extensions) == 0 {
		return errors.Wrap(ErrInvalidConfig, "extension allow-list is empty")
	}
	for _, ext := range c.Extensions {
		if !imageprocessor.IsKnownExtension(ext) {
			return errors.Wrapf(ErrInvalidConfig, "no decoder for extension %q", ext)
		}
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "thumbnail size %dx%d must be positive", c.Width, c.Height)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return errors.Wrapf(ErrInvalidConfig, "JPEG quality %d outside 1-100", c.Quality)
	}
	filter, err := imageprocessor.ParseFilter(c.Filter)
	if err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	c.Filter = filter
	if !imageprocessor.HasBackend(c.Backend) {
		return errors.Wrapf(ErrInvalidConfig, "backend %q not available (have %v)", c.Backend, imageprocessor.AvailableBackends())
	}
	switch c.Collision {
	case CollisionOverwrite, CollisionSkip, CollisionRename, CollisionError:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown collision policy %q", c.Collision)
	}
	switch c.OnError {
	case ErrorAbort, ErrorContinue:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown error policy %q", c.OnError)
	}
	if c.Settle <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "settle delay %v must be positive", c.Settle)
	}
	return nil
}

// TransformOptions returns the per-image pipeline parameters
func (c *Config) TransformOptions() imageprocessor.TransformOptions {
	return imageprocessor.TransformOptions{
		Width:   c.Width,
		Height:  c.Height,
		Filter:  c.Filter,
		Quality: c.Quality,
	}
}

// ParseExtensions splits a comma separated list, lower-cases each entry and
// adds the leading dot where missing. Empty entries are dropped.
func ParseExtensions(list string) []string {
	var exts []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(list, ",") {
		ext := strings.ToLower(strings.TrimSpace(part))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !seen[ext] {
			seen[ext] = true
			exts = append(exts, ext)
		}
	}
	return exts
}

func boolArg(args map[string]string, key string) (bool, error) {
	v, ok := args[key]
	if !ok {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Wrapf(ErrInvalidConfig, "--%s: %q is not a boolean", key, v)
	}
	return b, nil
}

func intArg(args map[string]string, key string, def int) (int, error) {
	v, ok := args[key]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidConfig, "--%s: %q is not a number", key, v)
	}
	return n, nil
}

// String renders the settings that shape the output, for the debug log
func (c *Config) String() string {
	return fmt.Sprintf("source=%s dest=%s exts=%v size=%dx%d quality=%d filter=%s backend=%s collision=%s on-error=%s manifest=%q",
		c.SourceDir, c.DestDir, c.Extensions, c.Width, c.Height, c.Quality, c.Filter, c.Backend, c.Collision, c.OnError, c.ManifestPath)
}
