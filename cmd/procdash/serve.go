package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ukaji3/procdash-go/internal/logger"
	"github.com/ukaji3/procdash-go/pkg/procdash/config"
	"github.com/ukaji3/procdash-go/pkg/procdash/refresh"
	"github.com/ukaji3/procdash-go/pkg/procdash/server"
	"github.com/ukaji3/procdash-go/pkg/procdash/source"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard and refresh it when the dataset changes",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func newSource(cfg *config.Config) source.Source {
	if cfg.Source.Kind == config.SourceHTTP {
		return source.NewHTTPSource(cfg.Source.URL, nil, cfg.Source.Timeout)
	}
	return source.NewFileSource(cfg.Source.Path)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyLogLevel(cfg)
	theme, err := cfg.BuildTheme()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src := newSource(cfg)
	r := refresh.New(src, theme, &refresh.Slot{}, refresh.RetryPolicy{
		Attempts: cfg.Source.Retry.Attempts,
		Backoff:  cfg.Source.Retry.Backoff,
	})
	// The server starts even when the first load fails; it answers 503
	// until a refresh succeeds.
	if _, err := r.Refresh(ctx); err != nil {
		logger.Errorf("initial dashboard load failed: %v", err)
	}

	trigger := make(chan struct{}, 1)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Serve(gctx, cfg.Server.Addr, server.New(r))
	})
	g.Go(func() error {
		return r.Run(gctx, cfg.Source.PollInterval, trigger)
	})
	if fs, ok := src.(*source.FileSource); ok {
		g.Go(func() error {
			return fs.Watch(gctx, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})
		})
	}

	err = g.Wait()
	if err == nil || errors.Is(err, context.Canceled) {
		logger.Infof("procdash stopped")
		return nil
	}
	return err
}
