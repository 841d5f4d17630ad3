package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/NefariousNGGA/backend/internal/infrastructure/providers"
	"github.com/NefariousNGGA/backend/internal/infrastructure/tracing"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, rootOpts)
		},
	}
}

func runServe(ctx context.Context, opts *RootOptions) error {
	conf, err := opts.loadConfig()
	if err != nil {
		return err
	}

	if conf.Server.EnableTrace {
		shutdown, err := tracing.Setup(ctx, conf.Server.TraceEndpoint, "platos-lair")
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Error("tracer shutdown failed", slog.String("error", err.Error()), slog.String("module", "main"))
			}
		}()
	}

	db, err := providers.NewDatabase(conf.Server)
	if err != nil {
		return errors.Wrap(err, "failed to connect database")
	}
	if err := providers.MigrateDatabase(db); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	signalService := providers.NewSignalService(conf.Server)
	uc := providers.NewUsecases(conf, db, providers.NewPostCache(conf.Server), signalService)
	e := providers.NewServer(conf, uc, signalService)

	if conf.Auth.AdminToken == "" {
		slog.Warn("admin token is not configured; moderation is disabled", slog.String("module", "main"))
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", slog.String("addr", conf.Server.Listen), slog.String("module", "main"))
		errCh <- e.Start(conf.Server.Listen)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
