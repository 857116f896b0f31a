package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/edgeui/internal/input"
	"github.com/jmylchreest/edgeui/internal/kv"
	"github.com/jmylchreest/edgeui/internal/model"
)

var watchOpts struct {
	stdin       bool
	metricsAddr string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print notifications until interrupted",
	Long: `Stay running and print every notification as it is broadcast.

With the file session backend, token changes made by other edgeui processes
are reported as info notifications. With --stdin, JSON lines of the form
{"type":"warning","message":"..."} are read from standard input and
broadcast.`,
	Args: cobra.NoArgs,
	RunE: guarded(runWatch),
}

func init() {
	watchCmd.Flags().BoolVar(&watchOpts.stdin, "stdin", false,
		"Broadcast JSON-line notifications read from stdin")
	watchCmd.Flags().StringVar(&watchOpts.metricsAddr, "metrics-addr", "",
		"Serve Prometheus metrics on this address (e.g. :9090)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watchOpts.metricsAddr != "" {
		startMetricsServer(ctx, watchOpts.metricsAddr)
	}

	if cfg.Session.Backend == kv.BackendFile {
		fw, err := watchSession(ctx, cfg.SessionFile())
		if err != nil {
			return err
		}
		defer fw.Stop()
	}

	if watchOpts.stdin {
		reader := input.NewLineReader(os.Stdin, logger)
		count, err := reader.Run(ctx, coord.Notify)
		logger.Debug("stdin closed", "notifications", count)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}

	<-ctx.Done()
	return nil
}

// watchSession reports token changes written to the session file by other
// processes.
func watchSession(ctx context.Context, path string) (*kv.FileWatcher, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	var mu sync.Mutex
	last, hadToken, err := coord.Token(ctx)
	if err != nil {
		logger.Warn("failed to read session token", "error", err)
	}

	fw, err := kv.NewFileWatcher(path, func() {
		mu.Lock()
		defer mu.Unlock()

		token, ok, err := coord.Token(ctx)
		if err != nil {
			logger.Warn("failed to read session token", "error", err)
			return
		}
		switch {
		case hadToken && !ok:
			_ = notify(model.TypeInfo, "session.ended")
		case ok && (!hadToken || token != last):
			_ = notify(model.TypeInfo, "session.changed")
		}
		last, hadToken = token, ok
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session watcher: %w", err)
	}
	if err := fw.Start(); err != nil {
		return nil, fmt.Errorf("failed to watch session file: %w", err)
	}
	return fw, nil
}

// startMetricsServer serves /metrics until ctx is cancelled.
func startMetricsServer(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("metrics server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", "error", err)
		}
	}()
}
