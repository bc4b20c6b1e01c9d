// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/agreemint/internal/records"
	"github.com/pdiddy/agreemint/internal/server"
	"github.com/pdiddy/agreemint/internal/service"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for contract upload and analysis",
	Long: `Serve starts the HTTP API. Uploaded contracts are kept under upload.dir
and analysis records in a SQLite database under store.data_dir. The server
stops gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	a, err := newAnalyzer(cfg.Analysis)
	if err != nil {
		return err
	}

	store, err := records.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	svc := service.New(store, a, cfg.Upload, logger)
	srv := server.New(svc, cfg.Server, logger)
	logger.Debug("configuration loaded",
		"data_dir", cfg.Store.DataDir,
		"upload_dir", cfg.Upload.Dir,
		"rules_file", cfg.Analysis.RulesFile,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from server.addr, \":8000\")")
	serveCmd.Flags().Bool("verbose", false, "log at debug level")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}
