package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ghostnote/internal/api"
	wagerin "ghostnote/internal/modules/wager/port/in"
)

const dueCheckInterval = time.Hour

func newServeCmd(dataDir *string) *cobra.Command {
	var addr string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ledger and public archive over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(app)
			if addr == "" {
				addr = app.Config.ListenAddr
			}

			srv := api.NewServer(app.Drafts, app.Wagers, app.Audits, app.Archive, app.Logger.Named("api"))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				return srv.Run(ctx, addr)
			})
			g.Go(func() error {
				return watchDue(ctx, app.Wagers, app.Logger.Named("due"))
			})
			err = g.Wait()
			app.Logger.Info("ghostnote stopped", zap.Error(err))
			return err
		},
	}
	serve.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return serve
}

// watchDue logs how many wagers are waiting for an audit, once at start and
// then every dueCheckInterval.
func watchDue(ctx context.Context, wagers wagerin.Usecase, logger *zap.Logger) error {
	ticker := time.NewTicker(dueCheckInterval)
	defer ticker.Stop()
	for {
		stats, err := wagers.Stats(ctx)
		if err != nil {
			logger.Warn("due check failed", zap.Error(err))
		} else if stats.Due > 0 {
			logger.Info("wagers due for audit", zap.Int("due", stats.Due))
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
