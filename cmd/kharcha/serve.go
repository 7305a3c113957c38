package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"kharcha/internal/classifier"
	"kharcha/internal/common"
	"kharcha/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Serve the expense API over HTTP: natural-language logging, category
suggestions, summaries, budget, debts and savings goals.

The server rechecks the model artifact on a schedule, so a 'kharcha
train' run in another terminal takes effect without a restart.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			addr := viper.GetString("server.addr")
			schedule := viper.GetString("model.reload_schedule")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStore(store)

			p, cls, err := initParser()
			if err != nil {
				return err
			}

			scheduler := cron.New()
			if _, err := scheduler.AddFunc(schedule, func() { reloadModel(cls) }); err != nil {
				return fmt.Errorf("invalid model.reload_schedule %q: %w", schedule, err)
			}
			scheduler.Start()
			defer scheduler.Stop()
			slog.Info("Model reload scheduled", "schedule", schedule, "path", modelStore().Path())

			srv := server.New(store, p, slog.Default())
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().String("addr", ":8080", "Listen address for the HTTP server")
	cmd.Flags().String("reload-schedule", "@every 5m", "Cron schedule for model artifact reloads")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("model.reload_schedule", cmd.Flags().Lookup("reload-schedule"))

	return cmd
}

// reloadModel swaps the latest trained artifact into the running classifier.
// A missing artifact keeps whatever is loaded; parsing stays available on
// the keyword fallback either way.
func reloadModel(cls *classifier.Classifier) {
	store := modelStore()
	m, err := store.Load()
	switch {
	case err == nil:
		cls.Replace(m)
		slog.Debug("Model artifact reloaded", "path", store.Path())
	case errors.Is(err, common.ErrModelNotFound):
		slog.Debug("No model artifact to reload", "path", store.Path())
	default:
		slog.Warn("Failed to reload model artifact", "error", err)
	}
}
