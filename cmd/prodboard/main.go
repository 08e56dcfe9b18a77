package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/arlett/prodboard/internal/cache"
	"github.com/arlett/prodboard/internal/config"
	"github.com/arlett/prodboard/internal/domain/mirror"
	"github.com/arlett/prodboard/internal/domain/people"
	"github.com/arlett/prodboard/internal/domain/project"
	"github.com/arlett/prodboard/internal/domain/stats"
	"github.com/arlett/prodboard/internal/notion"
	"github.com/arlett/prodboard/internal/sqlite"
	"github.com/arlett/prodboard/internal/transport"
)

type cli struct {
	Serve ServeCmd `cmd:"" default:"1" help:"Run the dashboard API server."`
	Sync  SyncCmd  `cmd:"" help:"Run one sync cycle and exit."`
}

func main() {
	var cli cli
	ctx := kong.Parse(&cli,
		kong.UsageOnError(),
		kong.Name("prodboard"),
		kong.Description("Project monitoring dashboard backed by a Notion database."),
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the wired services shared by the commands.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	db     *sqlite.DB

	projects *project.Service
	stats    *stats.Service
	people   *people.Service
	mirror   *mirror.Service
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repo := sqlite.NewProjectRepository(db)
	syncLog := sqlite.NewSyncLogRepository(db)
	store := cache.NewProjects(repo, time.Duration(cfg.Cache.TTLSeconds)*time.Second)

	client := notion.NewClient(notion.Config{
		APIKey:     cfg.Notion.APIKey,
		DatabaseID: cfg.Notion.DatabaseID,
		BaseURL:    cfg.Notion.BaseURL,
	}, logger)

	return &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		projects: project.NewService(store, client, logger),
		stats:    stats.NewService(store, logger),
		people:   people.NewService(store, logger),
		mirror:   mirror.NewService(client, store, syncLog, logger),
	}, nil
}

type ServeCmd struct{}

func (c *ServeCmd) Run() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.db.Close()

	server := transport.NewServer(a.projects, a.stats, a.people, a.mirror, a.logger)
	httpServer := &http.Server{
		Addr:    a.cfg.Server.Addr(),
		Handler: server.Router(),
	}

	go func() {
		a.logger.Info("server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(a.logger, httpServer)
	return nil
}

type SyncCmd struct{}

func (c *SyncCmd) Run() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.db.Close()

	result, err := a.mirror.Run(context.Background())
	if err != nil {
		return err
	}
	a.logger.Info("sync finished", "total", result.TotalSynced, "duration_ms", result.DurationMs)
	return nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
