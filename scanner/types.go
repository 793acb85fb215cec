package scanner

import (
	"io"
	"time"

	"iconmaker/config"
	"iconmaker/imageprocessor"
	"iconmaker/metrics"
)

// Options defines the options for one conversion run
type Options struct {
	SourceDir  string
	DestDir    string
	Extensions []string
	Collision  config.CollisionPolicy
	OnError    config.ErrorPolicy
	Force      bool
	Backend    imageprocessor.Backend
	Metrics    *metrics.Recorder
	RunID      string
	// Stdout receives the per-entry progress lines; nil means os.Stdout.
	Stdout io.Writer
}

// Status is the outcome for one accepted file
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Result holds the result of processing one accepted file
type Result struct {
	Path     string
	Output   string
	Status   Status
	Reason   string
	Err      error
	Duration time.Duration
}

// Report aggregates the results of a run in processing order
type Report struct {
	RunID     string
	StartedAt time.Time
	Elapsed   time.Duration
	Results   []Result
	Converted int
	Skipped   int
	Failed    int
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
	switch res.Status {
	case StatusConverted:
		r.Converted++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}

// Failures returns the failed results in processing order
func (r *Report) Failures() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			failed = append(failed, res)
		}
	}
	return failed
}
