package types

// ConversionRecord holds what the manifest remembers about one converted source file
type ConversionRecord struct {
	ID           int64  `json:"id"`
	SourcePath   string `json:"source_path"`
	OutputPath   string `json:"output_path"`
	SourceHash   string `json:"source_hash"`
	SourceSize   int64  `json:"source_size"`
	ModifiedAt   string `json:"modified_at"`
	Format       string `json:"format"`
	SourceMode   string `json:"source_mode"`
	SourceWidth  int    `json:"source_width"`
	SourceHeight int    `json:"source_height"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	RunID        string `json:"run_id"`
	ConvertedAt  string `json:"converted_at"`
}

// RunSummary holds the counters recorded for a finished run
type RunSummary struct {
	RunID      string `json:"run_id"`
	SourceDir  string `json:"source_dir"`
	DestDir    string `json:"dest_dir"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
	Converted  int    `json:"converted"`
	Skipped    int    `json:"skipped"`
	Failed     int    `json:"failed"`
}
