package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/hoanghai1803/newslens/internal/analysis"
	"github.com/hoanghai1803/newslens/internal/api"
	"github.com/hoanghai1803/newslens/internal/app"
	"github.com/hoanghai1803/newslens/internal/config"
	"github.com/hoanghai1803/newslens/internal/recommend"
	"github.com/hoanghai1803/newslens/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	dataDir := flag.String("data-dir", "./data", "path to data directory")
	flag.Parse()

	if err := run(*configPath, *dataDir); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, dataDir string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration (auto-creates default if missing).
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := storage.OpenDatabase(filepath.Join(dataDir, "newslens.db"))
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.RunMigrations(db); err != nil {
		return err
	}
	store := storage.NewStore(db)

	entities, err := app.NewEntityService(cfg)
	if err != nil {
		return err
	}

	deps := api.Deps{
		Store:      store,
		Entities:   entities,
		Aggregator: analysis.NewAggregator(entities, cfg.NLP.Concurrency),
		Engine:     analysis.NewEngine(entities, cfg.NLP.Concurrency),
		Ranker:     recommend.NewRanker(),
	}

	deps.Summarizer, err = app.NewSummarizer(cfg)
	if err != nil {
		return err
	}

	fetcher, closeCache := app.NewFetcher(ctx, cfg)
	defer closeCache()
	deps.Fetcher = fetcher
	deps.Extractor = fetcher

	// Localhost only: the API has no authentication.
	addr := fmt.Sprintf("localhost:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(deps, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.Server.AutoOpenBrowser {
		go func() {
			time.Sleep(500 * time.Millisecond)
			openBrowser("http://" + addr + "/healthz")
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", "http://"+addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listening on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// openBrowser opens the given URL in the user's default browser.
// It is a fire-and-forget operation; errors are silently ignored.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}
