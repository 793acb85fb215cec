package scanner

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"iconmaker/config"
	"iconmaker/imageprocessor"
	"iconmaker/logging"

	"github.com/pkg/errors"
)

// Scanner converts the images of one source directory into thumbnails
type Scanner struct {
	db       *sql.DB
	opts     Options
	filter   ExtensionFilter
	resolver *CollisionResolver
	out      io.Writer
}

// New prepares a scanner. db may be nil, in which case no manifest is kept.
func New(db *sql.DB, opts Options) (*Scanner, error) {
	if opts.SourceDir == "" || opts.DestDir == "" {
		return nil, errors.Wrap(config.ErrInvalidConfig, "source and destination directories are required")
	}
	if opts.Backend == nil {
		backend, err := imageprocessor.NewBackend(imageprocessor.DefaultBackend, imageprocessor.DefaultTransformOptions())
		if err != nil {
			return nil, err
		}
		opts.Backend = backend
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = imageprocessor.DefaultExtensions
	}
	if opts.OnError == "" {
		opts.OnError = config.ErrorAbort
	}

	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}

	return &Scanner{
		db:       db,
		opts:     opts,
		filter:   NewExtensionFilter(opts.Extensions),
		resolver: NewCollisionResolver(opts.Collision),
		out:      out,
	}, nil
}

// Run lists the source directory once and converts every accepted file in
// name order. The returned report is never nil. Under the abort policy the
// first per-file error ends the run and is returned.
func (s *Scanner) Run(ctx context.Context) (*Report, error) {
	report := &Report{RunID: s.opts.RunID, StartedAt: time.Now()}
	PrintStartupInfo(s.opts)

	if err := os.MkdirAll(s.opts.DestDir, 0755); err != nil {
		return report, errors.Wrapf(err, "cannot create destination directory %s", s.opts.DestDir)
	}
	entries, err := ListEntries(s.opts.SourceDir)
	if err != nil {
		return report, err
	}

	defer s.finish(report)

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, errors.Wrap(err, "run interrupted")
		}

		name := entry.Name()
		fmt.Fprintln(s.out, name)

		path := filepath.Join(s.opts.SourceDir, name)
		if !s.accepts(path, entry) {
			logging.DebugLog("Ignoring %s", path)
			continue
		}

		res := s.processFile(path)
		report.add(res)
		if res.Status == StatusFailed && s.opts.OnError == config.ErrorAbort {
			return report, res.Err
		}
	}

	return report, nil
}

func (s *Scanner) finish(report *Report) {
	report.Elapsed = time.Since(report.StartedAt)
	s.opts.Metrics.Finish(time.Now())
	if s.db != nil {
		storeRun(s.db, s.opts, report)
	}
	logging.LogInfo("Run %s finished: %d converted, %d skipped, %d failed in %s",
		report.RunID, report.Converted, report.Skipped, report.Failed, report.Elapsed)
}

// accepts reports whether an entry should be converted. Directories are
// never converted, whatever their name.
func (s *Scanner) accepts(path string, entry os.DirEntry) bool {
	if !s.filter.Accepts(entry.Name()) {
		return false
	}
	if entry.IsDir() {
		return false
	}
	if entry.Type()&os.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			return false
		}
	}
	return true
}

// processFile converts one accepted source file
func (s *Scanner) processFile(path string) Result {
	start := time.Now()
	res := s.convert(path)
	res.Duration = time.Since(start)

	s.opts.Metrics.Observe(string(res.Status), res.Duration)
	switch res.Status {
	case StatusFailed:
		logging.LogImageProcessed(path, res.Output, false, res.Err.Error())
		if s.opts.OnError == config.ErrorContinue {
			logging.LogError(res.Err, "Failed to convert %s", path)
		}
	case StatusSkipped:
		logging.DebugLog("Skipped %s: %s", path, res.Reason)
	default:
		logging.LogImageProcessed(path, res.Output, true, "")
	}
	return res
}

func (s *Scanner) convert(path string) Result {
	requested := filepath.Join(s.opts.DestDir, OutputName(filepath.Base(path)))
	res := Result{Path: path, Output: requested}

	output, err := s.resolver.Resolve(path, requested)
	if errors.Is(err, ErrCollisionSkipped) {
		res.Status = StatusSkipped
		res.Reason = err.Error()
		return res
	}
	if err != nil {
		return failed(res, err)
	}
	res.Output = output

	var state *sourceState
	if s.db != nil {
		state, err = statSource(path)
		if err != nil {
			s.resolver.Release(output)
			return failed(res, err)
		}
		if !s.opts.Force {
			unchanged, err := checkAndSkipIfUnchanged(s.db, path, output, state)
			if err != nil {
				s.resolver.Release(output)
				return failed(res, err)
			}
			if unchanged {
				res.Status = StatusSkipped
				res.Reason = "unchanged since last conversion"
				return res
			}
		}
	}

	thumb, err := s.opts.Backend.Render(path)
	if err != nil {
		s.resolver.Release(output)
		return failed(res, err)
	}
	if err := WriteFileAtomic(output, thumb.Data); err != nil {
		s.resolver.Release(output)
		return failed(res, err)
	}

	if s.db != nil {
		if err := recordConversion(s.db, s.opts.RunID, path, output, state, thumb); err != nil {
			logging.LogWarning("Converted %s but could not update manifest: %v", path, err)
		}
	}

	res.Status = StatusConverted
	return res
}

func failed(res Result, err error) Result {
	res.Status = StatusFailed
	res.Err = err
	res.Reason = err.Error()
	return res
}
