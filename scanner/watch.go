package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"iconmaker/logging"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Watch converts accepted files that appear or change in the source
// directory until ctx is cancelled. A file is converted once it has seen no
// events for settle. Results are appended to report, and failures never
// stop the watch.
func (s *Scanner) Watch(ctx context.Context, settle time.Duration, report *Report) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "cannot start file watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(s.opts.SourceDir); err != nil {
		return errors.Wrapf(err, "cannot watch %s", s.opts.SourceDir)
	}
	logging.LogInfo("Watching %s for new images", s.opts.SourceDir)
	defer s.finish(report)

	tick := settle / 2
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	pending := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			logging.LogInfo("Stopped watching %s with %d pending", s.opts.SourceDir, len(pending))
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path := event.Name
			if !s.filter.Accepts(filepath.Base(path)) || s.resolver.isOutput(path) {
				continue
			}
			if event.Op&fsnotify.Write != 0 || event.Op&fsnotify.Create != 0 {
				pending[path] = time.Now()
			} else if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				delete(pending, path)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.LogWarning("File watcher error: %v", err)

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < settle {
					continue
				}
				delete(pending, path)
				s.watchedFile(path, report)
			}
		}
	}
}

func (s *Scanner) watchedFile(path string, report *Report) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}
	fmt.Fprintln(s.out, filepath.Base(path))
	report.add(s.processFile(path))
	s.opts.Metrics.Finish(time.Now())
}
