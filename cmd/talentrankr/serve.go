// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/talentrankr/internal/api"
	"github.com/pdiddy/talentrankr/internal/logger"
	"github.com/pdiddy/talentrankr/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ranking API over HTTP",
	Long: `Serve starts the HTTP API. Clients upload applicant files to
POST /api/upload and read rankings back from /api/rank. Batches are kept in
memory and are lost on restart.

If .secrets/cookie-key (or --cookie-key) holds a base64 encoded 32-byte key,
session cookies are encrypted with it.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	eng, err := newEngine(cfg.Scoring)
	if err != nil {
		return err
	}

	st, err := store.New(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	flagKey, _ := cmd.Flags().GetString("cookie-key")
	cookieKey, ok, err := loadedSecrets.CookieEncryptionKey(flagKey)
	if err != nil {
		return err
	}
	if !ok {
		log.Warn("no cookie-key secret, session cookies are not encrypted")
	}

	srv := api.New(eng, st, cfg.Server, api.Options{CookieKey: cookieKey, Logger: log})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped", zap.String("addr", cfg.Server.Addr))
	return nil
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().String("cookie-key", "", "base64 session cookie key (overrides .secrets/cookie-key)")

	rootCmd.AddCommand(serveCmd)
}
