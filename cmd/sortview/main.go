// Command sortview shuffles and sorts a large array of uint32 values while
// drawing it live in the terminal. Each pixel is colored by where its value
// belongs, so the picture turns from noise into a gradient as the sort
// completes.
//
// Keys: s sorts again, p saves a PNG snapshot, q quits.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/gogpu/sortview"
	"github.com/gogpu/sortview/integration/termview"
	"github.com/gogpu/sortview/snapshot"
	"github.com/gogpu/sortview/store"
)

type config struct {
	count         int
	backing       string
	file          string
	idleDelay     time.Duration
	frameInterval time.Duration
	renderWorkers int
	view          string
	snapshotDir   string
	snapshotSize  int
	logFile       string
	logLevel      string
	runFor        time.Duration
	seed          uint64
}

func main() {
	var cfg config
	fs := newFlagSet(&cfg)
	// ExitOnError: Parse never returns an error here.
	_ = fs.Parse(os.Args[1:])

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "sortview: %v\n", err)
		os.Exit(1)
	}
}

func newFlagSet(cfg *config) *pflag.FlagSet {
	fs := pflag.NewFlagSet("sortview", pflag.ExitOnError)
	fs.IntVarP(&cfg.count, "count", "n", sortview.DefaultCount, "number of elements to sort")
	fs.StringVar(&cfg.backing, "backing", "heap", "backing store: heap, file or auto")
	fs.StringVar(&cfg.file, "file", store.DefaultPath, "backing file for --backing=file or auto")
	fs.DurationVar(&cfg.idleDelay, "idle-delay", sortview.DefaultIdleDelay, "sort worker poll delay while idle")
	fs.DurationVar(&cfg.frameInterval, "frame-interval", 0, "pause between render passes")
	fs.IntVarP(&cfg.renderWorkers, "render-workers", "j", 1, "goroutines per render pass, 0 for GOMAXPROCS")
	fs.StringVar(&cfg.view, "view", "term", "presenter: term or none")
	fs.StringVar(&cfg.snapshotDir, "snapshot-dir", ".", "directory for PNG snapshots")
	fs.IntVar(&cfg.snapshotSize, "snapshot-size", snapshot.DefaultSize, "snapshot width and height in pixels")
	fs.StringVar(&cfg.logFile, "log-file", "", "write logs to this file instead of stderr")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.DurationVar(&cfg.runFor, "run-for", 0, "stop after this long, 0 runs until quit")
	fs.Uint64Var(&cfg.seed, "seed", 0, "shuffle seed, 0 for a time-based seed")
	return fs
}

func run(cfg config) error {
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	sortview.SetLogger(logger)

	kind, err := store.ParseKind(cfg.backing)
	if err != nil {
		return err
	}

	opts := []sortview.Option{
		sortview.WithCount(cfg.count),
		sortview.WithBacking(store.Config{Kind: kind, Path: cfg.file}),
		sortview.WithIdleDelay(cfg.idleDelay),
		sortview.WithFrameInterval(cfg.frameInterval),
		sortview.WithRenderWorkers(cfg.renderWorkers),
		sortview.WithSnapshotHandler(snapshot.Handler(cfg.snapshotDir, cfg.snapshotSize)),
	}
	if cfg.seed != 0 {
		opts = append(opts, sortview.WithSeed(cfg.seed))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.runFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.runFor)
		defer cancel()
	}

	v, err := sortview.New(opts...)
	if err != nil {
		return err
	}

	switch cfg.view {
	case "term":
		view := termview.New()
		if err := view.Start(); err != nil {
			_ = v.Close()
			return err
		}
		runErr := v.Run(ctx, view)
		if err := view.Close(); err != nil && runErr == nil {
			runErr = err
		}
		return runErr
	case "none":
		return v.Run(ctx, &headless{logger: logger})
	default:
		_ = v.Close()
		return fmt.Errorf("unknown view %q", cfg.view)
	}
}

// newLogger writes text logs to stderr, or to cfg.logFile. The terminal
// view owns the screen, so it discards logs unless a file is given.
func newLogger(cfg config) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.logLevel)); err != nil {
		return nil, nil, fmt.Errorf("--log-level: %w", err)
	}

	var (
		w       io.Writer = os.Stderr
		closeFn           = func() {}
	)
	switch {
	case cfg.logFile != "":
		f, err := os.OpenFile(cfg.logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w, closeFn = f, func() { _ = f.Close() }
	case strings.EqualFold(cfg.view, "term"):
		w = io.Discard
	}

	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h), closeFn, nil
}

// headless is a Presenter without a screen. Status changes are logged.
type headless struct {
	logger *slog.Logger
}

func (h *headless) Present(*sortview.Canvas) error { return nil }

func (h *headless) SetTitle(title string) {
	h.logger.Info(title)
}

func (h *headless) Poll() sortview.Command { return sortview.CommandNone }
