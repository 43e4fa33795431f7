package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/ContentExplorer/internal/config"
	"github.com/JonMunkholm/ContentExplorer/internal/core"
	"github.com/JonMunkholm/ContentExplorer/internal/logging"
	"github.com/JonMunkholm/ContentExplorer/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// .env never overrides variables already set in the environment
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	if envErr != nil {
		slog.Debug("no .env file loaded", "error", envErr)
	}
	dataDir := cfg.Data.Path(config.ProgramDir())
	slog.Info("configuration loaded", "addr", cfg.Server.Addr(), "data_dir", dataDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snap, err := core.Load(ctx, dataDir, core.DefaultRegistry())
	if err != nil {
		ue := core.NewUserError(err)
		slog.Error("failed to load datasets",
			"error", ue.Technical,
			"code", ue.User.Code,
			"message", ue.Error(),
			"action", ue.User.Action,
		)
		os.Exit(1)
	}

	stats := snap.Stats()
	slog.Info("datasets loaded",
		"snapshot", snap.ID,
		"rows", snap.TotalRows(),
		"ships", stats.Ships,
		"cabins", stats.Cabins,
		"excursions", stats.Excursions,
		"ports", stats.Ports,
		"voyage_products", stats.VoyageProducts,
		"locales", stats.Locales,
		"bookings", stats.Bookings,
	)

	server := web.NewServer(snap, cfg)

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	<-done
	slog.Info("server stopped")
}
