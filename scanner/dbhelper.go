package scanner

import (
	"database/sql"
	"os"
	"time"

	"iconmaker/database"
	"iconmaker/imageprocessor"
	"iconmaker/logging"
	"iconmaker/types"

	"github.com/pkg/errors"
)

// sourceState is what the manifest needs to know about a source file
type sourceState struct {
	hash    string
	size    int64
	modTime time.Time
}

func statSource(path string) (*sourceState, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot stat %s", path)
	}
	hash, err := imageprocessor.HashFile(path)
	if err != nil {
		return nil, err
	}
	return &sourceState{hash: hash, size: info.Size(), modTime: info.ModTime()}, nil
}

// checkAndSkipIfUnchanged reports whether path was already converted to
// output from identical content and the output is still on disk.
func checkAndSkipIfUnchanged(db *sql.DB, path, output string, state *sourceState) (bool, error) {
	rec, found, err := database.GetConversion(db, path)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	if rec.SourceHash != state.hash || rec.OutputPath != output {
		logging.DebugLog("Manifest entry for %s is stale", path)
		return false, nil
	}
	if !fileExists(output) {
		logging.DebugLog("Output %s recorded for %s is missing", output, path)
		return false, nil
	}
	return true, nil
}

// recordConversion upserts the manifest row for a written thumbnail
func recordConversion(db *sql.DB, runID, path, output string, state *sourceState, thumb *imageprocessor.Thumbnail) error {
	return database.StoreConversion(db, types.ConversionRecord{
		SourcePath:   path,
		OutputPath:   output,
		SourceHash:   state.hash,
		SourceSize:   state.size,
		ModifiedAt:   state.modTime.UTC().Format(time.RFC3339),
		Format:       string(thumb.Format),
		SourceMode:   string(thumb.SourceMode),
		SourceWidth:  thumb.SourceWidth,
		SourceHeight: thumb.SourceHeight,
		Width:        thumb.Width,
		Height:       thumb.Height,
		RunID:        runID,
	})
}

func storeRun(db *sql.DB, opts Options, report *Report) {
	summary := types.RunSummary{
		RunID:      report.RunID,
		SourceDir:  opts.SourceDir,
		DestDir:    opts.DestDir,
		StartedAt:  report.StartedAt.UTC().Format(time.RFC3339),
		FinishedAt: report.StartedAt.Add(report.Elapsed).UTC().Format(time.RFC3339),
		Converted:  report.Converted,
		Skipped:    report.Skipped,
		Failed:     report.Failed,
	}
	if err := database.StoreRunSummary(db, summary); err != nil {
		logging.LogWarning("Could not record run %s in manifest: %v", report.RunID, err)
	}
}
