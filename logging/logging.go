package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var (
	consoleLogger zerolog.Logger
	debugLogger   *zerolog.Logger
	logFile       *os.File
	mu            sync.Mutex
	isSetup       bool
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	consoleLogger = newConsoleLogger(os.Stderr)
}

// newConsoleLogger builds the human-facing logger. Only warnings and errors
// reach the console; stdout is reserved for the per-file progress lines.
func newConsoleLogger(out io.Writer) zerolog.Logger {
	noColor := true
	if f, ok := out.(*os.File); ok {
		noColor = !term.IsTerminal(int(f.Fd())) || os.Getenv("NO_COLOR") != ""
	}
	writer := zerolog.ConsoleWriter{Out: out, NoColor: noColor, TimeFormat: time.TimeOnly}
	return zerolog.New(writer).Level(zerolog.WarnLevel).With().Timestamp().Logger()
}

// SetOutput redirects console output, mainly for tests
func SetOutput(out io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	consoleLogger = newConsoleLogger(out)
}

// SetupLogger initializes the debug logger with the specified log file
func SetupLogger(logFilePath string) error {
	mu.Lock()
	defer mu.Unlock()

	if isSetup {
		return nil
	}

	var err error
	logFile, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %v", err)
	}

	l := zerolog.New(logFile).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	debugLogger = &l
	debugLogger.Info().Str("event", "start").Msg("iconmaker debug log started")

	isSetup = true
	return nil
}

// SetRunID tags every subsequent log line with the run identifier
func SetRunID(runID string) {
	mu.Lock()
	defer mu.Unlock()

	consoleLogger = consoleLogger.With().Str("run_id", runID).Logger()
	if debugLogger != nil {
		l := debugLogger.With().Str("run_id", runID).Logger()
		debugLogger = &l
	}
}

// CloseLogger closes the log file
func CloseLogger() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		debugLogger.Info().Str("event", "stop").Msg("iconmaker debug log closed")
		logFile.Close()
		logFile = nil
		debugLogger = nil
		isSetup = false
	}
}

// IsDebug reports whether a debug log file is active
func IsDebug() bool {
	mu.Lock()
	defer mu.Unlock()
	return debugLogger != nil
}

// LogInfo logs an information message to the debug log
func LogInfo(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if debugLogger != nil {
		debugLogger.Info().Msgf(format, args...)
	}
}

// DebugLog logs a message if debug mode is enabled
func DebugLog(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if debugLogger != nil {
		debugLogger.Debug().Msgf(format, args...)
	}
}

// LogError logs an error message
func LogError(err error, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	consoleLogger.Error().Err(err).Msgf(format, args...)
	if debugLogger != nil {
		debugLogger.Error().Err(err).Msgf(format, args...)
	}
}

// LogWarning logs a warning message
func LogWarning(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	consoleLogger.Warn().Msgf(format, args...)
	if debugLogger != nil {
		debugLogger.Warn().Msgf(format, args...)
	}
}

// LogImageProcessed logs when an image is processed
func LogImageProcessed(path, output string, success bool, errMsg string) {
	mu.Lock()
	defer mu.Unlock()

	if debugLogger == nil {
		return
	}
	if success {
		debugLogger.Info().Str("path", path).Str("output", output).Msg("processed")
	} else {
		debugLogger.Warn().Str("path", path).Str("error", errMsg).Msg("failed")
	}
}
