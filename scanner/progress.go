package scanner

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"iconmaker/logging"
)

// PrintStartupInfo records the run parameters in the debug log
func PrintStartupInfo(opts Options) {
	if !logging.IsDebug() {
		return
	}
	backend := "none"
	if opts.Backend != nil {
		backend = opts.Backend.Name()
	}
	logging.DebugLog("Starting run %s: %s -> %s", opts.RunID, opts.SourceDir, opts.DestDir)
	logging.DebugLog("Extensions: %v, backend: %s, collisions: %s, errors: %s, force: %v",
		opts.Extensions, backend, opts.Collision, opts.OnError, opts.Force)
}

// PrintCompletionStats prints the end-of-run summary. A run where every
// accepted file converted prints only the completion line.
func PrintCompletionStats(out io.Writer, report *Report) {
	if report.Skipped > 0 || report.Failed > 0 {
		fmt.Fprintf(out, "\nConverted: %d, skipped: %d, failed: %d (%s)\n",
			report.Converted, report.Skipped, report.Failed, report.Elapsed.Round(time.Millisecond))
		for _, res := range report.Results {
			if res.Status == StatusConverted {
				continue
			}
			fmt.Fprintf(out, "  %-8s %s: %s\n", res.Status, filepath.Base(res.Path), res.Reason)
		}
	}
	fmt.Fprintln(out, "Processing complete!")
}
