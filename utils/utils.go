package utils

import (
	"fmt"
	"io"
	"strings"

	"iconmaker/config"
	"iconmaker/imageprocessor"
)

// ParseArguments converts command-line arguments into a map of flags and
// values. The first command word found anywhere in argv is stored under
// "command", so flags and their values may precede it.
func ParseArguments(argv []string) map[string]string {
	args := make(map[string]string)

	commandIndex := -1
	for i, arg := range argv {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		switch arg {
		case config.CommandConvert, config.CommandWatch, "help":
			args["command"] = arg
			commandIndex = i
		}
		if commandIndex >= 0 {
			break
		}
	}

	for i := 0; i < len(argv); i++ {
		if i == commandIndex {
			continue
		}

		arg := argv[i]
		if arg == "-h" || arg == "--help" {
			args["command"] = "help"
			continue
		}

		// Handle flags with equals sign (--key=value)
		if strings.HasPrefix(arg, "--") && strings.Contains(arg, "=") {
			parts := strings.SplitN(arg, "=", 2)
			args[strings.TrimPrefix(parts[0], "--")] = parts[1]
			continue
		}

		// Handle flags without equals sign (--key value)
		if strings.HasPrefix(arg, "--") {
			flagName := strings.TrimPrefix(arg, "--")

			// Check if this is a boolean flag (no value)
			if i+1 >= len(argv) || i+1 == commandIndex || strings.HasPrefix(argv[i+1], "--") {
				args[flagName] = "true"
			} else {
				args[flagName] = argv[i+1]
				i++
			}
		}
	}

	return args
}

// PrintUsage outputs the command-line usage instructions
func PrintUsage(w io.Writer, program string) {
	fmt.Fprintf(w, "Usage:\n")
	fmt.Fprintf(w, "  %s [convert] [--source=DIR] [--dest=DIR] [options]\n", program)
	fmt.Fprintf(w, "  %s watch [--source=DIR] [--dest=DIR] [--settle=DURATION] [options]\n", program)
	fmt.Fprintf(w, "\nParameters:\n")
	fmt.Fprintf(w, "  --source       : Folder with the original images (default: %s)\n", config.DefaultSourceDir)
	fmt.Fprintf(w, "  --dest         : Folder receiving the thumbnails (default: %s)\n", config.DefaultDestDir)
	fmt.Fprintf(w, "  --extensions   : Comma separated allow-list (default: %s)\n", strings.Join(imageprocessor.DefaultExtensions, ","))
	fmt.Fprintf(w, "  --width        : Thumbnail width in pixels (default: %d)\n", imageprocessor.DefaultWidth)
	fmt.Fprintf(w, "  --height       : Thumbnail height in pixels (default: %d)\n", imageprocessor.DefaultHeight)
	fmt.Fprintf(w, "  --quality      : JPEG quality 1-100 (default: %d)\n", imageprocessor.DefaultQuality)
	fmt.Fprintf(w, "  --filter       : auto, nearest, linear, bicubic or lanczos (default: auto)\n")
	fmt.Fprintf(w, "  --backend      : %s (default: %s)\n", strings.Join(imageprocessor.AvailableBackends(), ", "), imageprocessor.DefaultBackend)
	fmt.Fprintf(w, "  --on-collision : overwrite, skip, rename or error (default: overwrite)\n")
	fmt.Fprintf(w, "  --on-error     : abort or continue (default: abort)\n")
	fmt.Fprintf(w, "  --manifest     : SQLite file recording conversions; unchanged sources are skipped\n")
	fmt.Fprintf(w, "  --force        : Convert even when the manifest says a source is unchanged\n")
	fmt.Fprintf(w, "  --metrics-file : Write Prometheus metrics in text format to this file\n")
	fmt.Fprintf(w, "  --settle       : Watch mode quiet period before converting a file (default: %v)\n", config.DefaultSettle)
	fmt.Fprintf(w, "  --debug        : Enable debug mode (logs detailed information)\n")
	fmt.Fprintf(w, "  --logfile      : Debug log path (default: %s)\n", config.DefaultLogPath)
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  %s\n", program)
	fmt.Fprintf(w, "  %s --source=photos --dest=out/icons --on-error=continue\n", program)
	fmt.Fprintf(w, "  %s watch --source=inbox --manifest=icons.db --debug\n", program)
}
