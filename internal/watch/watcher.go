// Package watch re-validates the content tree when it changes on disk,
// plus on a fixed schedule, and serves prometheus metrics while running.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.home.luguber.info/inful/contentkit/internal/cerrors"
	"git.home.luguber.info/inful/contentkit/internal/config"
	"git.home.luguber.info/inful/contentkit/internal/logfields"
	"git.home.luguber.info/inful/contentkit/internal/metrics"
)

// Runner performs one validation pass. trigger is "watch" or "schedule".
type Runner func(ctx context.Context, trigger string)

// Watcher monitors a content root and triggers re-validation runs.
type Watcher struct {
	root     string
	cfg      config.WatchConfig
	recorder *metrics.Recorder
	run      Runner

	watcher   *fsnotify.Watcher
	scheduler gocron.Scheduler
}

// New creates a watcher over the content root.
func New(root string, cfg config.WatchConfig, recorder *metrics.Recorder, run Runner) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, cerrors.WatcherError(err)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		_ = fw.Close()
		return nil, cerrors.WatcherError(err)
	}

	w := &Watcher{
		root:     abs,
		cfg:      cfg,
		recorder: recorder,
		run:      run,
		watcher:  fw,
	}

	// fsnotify watches are not recursive; register every directory.
	if err := w.addTree(abs); err != nil {
		_ = fw.Close()
		return nil, cerrors.WatcherError(err)
	}

	if cfg.FullRevalidateEvery > 0 {
		s, err := gocron.NewScheduler()
		if err != nil {
			_ = fw.Close()
			return nil, cerrors.WatcherError(fmt.Errorf("create scheduler: %w", err))
		}
		w.scheduler = s
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return fs.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// Start runs the watch loop until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	slog.Info("watching content tree",
		logfields.Path(w.root),
		slog.Duration("debounce", w.cfg.Debounce.Std()))

	if w.scheduler != nil {
		_, err := w.scheduler.NewJob(
			gocron.DurationJob(w.cfg.FullRevalidateEvery.Std()),
			gocron.NewTask(func() { w.run(ctx, "schedule") }),
			gocron.WithName("full-revalidate"),
		)
		if err != nil {
			return cerrors.WatcherError(fmt.Errorf("schedule revalidation: %w", err))
		}
		w.scheduler.Start()
		defer func() { _ = w.scheduler.Shutdown() }()
	}

	if w.cfg.MetricsListen != "" && w.recorder != nil {
		stop := w.serveMetrics()
		defer stop()
	}

	// Initial pass so the daemon starts from a known state.
	w.run(ctx, "watch")

	var (
		debounce = w.cfg.Debounce.Std()
		timer    *time.Timer
		timerC   <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if w.recorder != nil {
				w.recorder.RecordWatchEvent(event.Op.String())
			}
			// New directories must be added to the watch set.
			if event.Op.Has(fsnotify.Create) {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					_ = w.addTree(event.Name)
				}
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			w.run(ctx, "watch")

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watcher error", logfields.Error(err))
		}
	}
}

// relevant filters out events for files the validation never reads.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	// Editor swap/backup files churn constantly.
	for _, suffix := range []string{"~", ".swp", ".swx", ".tmp"} {
		if strings.HasSuffix(name, suffix) {
			return false
		}
	}
	return true
}

func (w *Watcher) serveMetrics() func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(w.recorder.Registry(), promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: w.cfg.MetricsListen, Handler: mux}
	go func() {
		slog.Info("metrics endpoint listening", slog.String("addr", w.cfg.MetricsListen))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics endpoint failed", logfields.Error(err))
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}
