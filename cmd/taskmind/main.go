// Command taskmind is a terminal task manager. Each input line becomes a task
// through the natural-language parser; lines starting with "/" are commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rezkam/taskmind/internal/application/capture"
	"github.com/rezkam/taskmind/internal/application/reminder"
	"github.com/rezkam/taskmind/internal/application/todo"
	"github.com/rezkam/taskmind/internal/config"
	"github.com/rezkam/taskmind/internal/domain"
	linecapture "github.com/rezkam/taskmind/internal/infrastructure/capture"
	"github.com/rezkam/taskmind/internal/infrastructure/notify"
	"github.com/rezkam/taskmind/internal/infrastructure/observability"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		// slog may not be initialized if config fails
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Root context for all normal operations; cancelled on SIGTERM/SIGINT.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	providers, err := observability.Setup(ctx, observability.Config{
		Enabled:        cfg.Observability.OTelEnabled,
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: version,
	})
	if err != nil {
		return fmt.Errorf("failed to init observability: %w", err)
	}
	defer func() {
		// Bounded so an unreachable collector cannot hang exit.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "failed to shutdown observability: %v\n", err)
		}
	}()
	slog.SetDefault(providers.Log)
	logger := providers.Log

	logger.InfoContext(ctx, "starting taskmind", "env", cfg.Env, "version", version)

	metrics, err := observability.NewStoreMetrics(providers.Meter, providers.Tracer)
	if err != nil {
		return fmt.Errorf("failed to init store metrics: %w", err)
	}

	sink, closeSink, err := openSink(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := closeSink(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()
	logger.InfoContext(ctx, "storage initialized", "type", cfg.Storage.Type, "location", describeSink(cfg.Storage))

	store := todo.NewStore(sink,
		todo.WithLogger(logger),
		todo.WithMetrics(metrics),
		todo.WithPersistTimeout(cfg.Store.PersistTimeout),
		todo.WithInitialFilter(cfg.Store.Filter()),
		todo.WithThemeApplier(todo.ThemeApplierFunc(func(theme domain.Theme) {
			logger.Debug("theme applied", "theme", theme)
		})),
	)
	store.Load(ctx)

	notifiers := notify.Multi{notify.NewLogger(logger)}
	if cfg.Reminder.Console {
		notifiers = append(notifiers, notify.NewConsole(os.Stdout))
	}
	monitor := reminder.New(store, notifiers,
		reminder.WithInterval(cfg.Reminder.Interval),
		reminder.WithLogger(logger),
	)

	sh := newShell(store, monitor, os.Stdout)
	producer := linecapture.NewLineProducer(os.Stdin, linecapture.WithCommandHandler(sh.handle))
	session := capture.NewSession(producer, store, capture.WithLogger(logger))

	errResult := make(chan error, 2)
	go func() {
		if err := monitor.Start(ctx); err != nil {
			errResult <- fmt.Errorf("reminder monitor failed: %w", err)
		}
	}()

	inputDone := make(chan struct{})
	go func() {
		defer close(inputDone)
		if err := captureLoop(ctx, session, sh); err != nil {
			errResult <- err
		}
	}()

	// stdin reads cannot be interrupted, so the capture goroutine is
	// abandoned on signal rather than joined.
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		return nil
	case <-inputDone:
		logger.Info("input closed, shutting down")
		select {
		case err := <-errResult:
			return err
		default:
			return nil
		}
	case err := <-errResult:
		return err
	}
}

// captureLoop activates the session until input is exhausted or ctx ends.
func captureLoop(ctx context.Context, session *capture.Session, sh *shell) error {
	sh.printf("taskmind %s. Type a task, or /help for commands.\n", version)
	for ctx.Err() == nil {
		task, err := session.Activate(ctx)
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, domain.ErrCapabilityUnavailable):
			return err
		case err != nil:
			slog.ErrorContext(ctx, "capture failed", "error", err)
			continue
		}
		if task != nil {
			sh.printAdded(*task)
		}
	}
	return nil
}
