package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/typeflow/internal/config"
	"github.com/verte-zerg/typeflow/internal/model"
	"github.com/verte-zerg/typeflow/internal/server"
	"github.com/verte-zerg/typeflow/internal/store"
)

const shutdownTimeout = 10 * time.Second

var (
	serveAddr       string
	serveDB         string
	serveProduction bool
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the text/result/leaderboard service",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", config.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&serveDB, "db", "", "SQLite database path (default: XDG data dir)")
	cmd.Flags().BoolVar(&serveProduction, "production", false, "run the router in release mode")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "addr", &serveAddr, fileCfg.Server.Addr)
	applyStringConfig(cmd, "db", &serveDB, fileCfg.Server.DB)
	applyBoolConfig(cmd, "production", &serveProduction, fileCfg.Server.Production)
	if serveDB == "" {
		serveDB = config.DefaultDBPath()
	}

	cfg := model.ServerConfig{Addr: serveAddr, DBPath: serveDB, Production: serveProduction}
	if err := config.ValidateServer(cfg); err != nil {
		return err
	}
	setupServerLogger(cfg.Production)

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	srv := server.New(cfg, st)
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(srv.Start)
	eg.Go(func() error {
		<-egCtx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func setupServerLogger(production bool) {
	if production {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
}
