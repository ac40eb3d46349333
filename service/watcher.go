package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/Aashish23092/payslip-filler/dto"
)

// DirectoryFiller fills the template of a directory from its report.
type DirectoryFiller interface {
	FillDirectory(ctx context.Context, dir string) (*dto.FillResult, error)
}

// Watcher refills a directory's template whenever a report file appears or
// changes there. Fills run one at a time on the watch goroutine.
type Watcher struct {
	filler   DirectoryFiller
	reports  ReportSource
	dir      string
	debounce time.Duration
	logger   zerolog.Logger

	// OnFill, when set, is called after every fill attempt.
	OnFill func(*dto.FillResult, error)
}

func NewWatcher(filler DirectoryFiller, reports ReportSource, dir string, debounce time.Duration, logger zerolog.Logger) *Watcher {
	return &Watcher{
		filler:   filler,
		reports:  reports,
		dir:      dir,
		debounce: debounce,
		logger:   logger.With().Str("component", "watcher").Str("dir", dir).Logger(),
	}
}

// Run blocks until ctx is cancelled or the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.logger.Info().Dur("debounce", w.debounce).Msg("Watching for reports")

	tick := w.debounce / 2
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var pending time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.isReportEvent(ev) {
				w.logger.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("Report changed")
				pending = time.Now()
			}
		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= w.debounce {
				pending = time.Time{}
				w.fill(ctx)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("Watch error")
		}
	}
}

func (w *Watcher) isReportEvent(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}
	name := filepath.Base(ev.Name)
	if strings.HasPrefix(name, "~$") || strings.HasPrefix(name, ".") {
		return false
	}
	return w.reports.Supports(ev.Name)
}

func (w *Watcher) fill(ctx context.Context) {
	result, err := w.filler.FillDirectory(ctx, w.dir)
	switch {
	case errors.Is(err, dto.ErrNothingToDo):
		w.logger.Debug().Err(err).Msg("Nothing to fill")
	case err != nil:
		w.logger.Error().Err(err).Msg("Fill failed")
	default:
		w.logger.Info().Str("output", result.OutputPath).Int("replacements", result.Replacements).Msg("Directory filled")
	}
	if w.OnFill != nil {
		w.OnFill(result, err)
	}
}
