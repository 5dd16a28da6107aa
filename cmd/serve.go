package cmd

import (
	"database/sql"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/trknhr/tonecheck/internal/api"
	"github.com/trknhr/tonecheck/internal/config"
	"github.com/trknhr/tonecheck/internal/logger"
)

func newServeCmd(db *sql.DB, cfg *config.Cfg) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve predictions over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// the server starts even without a model; /health reports it
			svc := loadService(ctx, db, cfg)
			srv := api.NewServer(svc, api.ServerOptions{
				Addr:        cfg.ListenAddr(),
				CORSOrigins: api.ParseOrigins(cfg.CORSAllowedOrigins),
			})
			logger.Info("serving", "addr", srv.Addr, "state", svc.State(), "backend", cfg.ArtifactBackend)
			return api.Run(ctx, srv)
		},
	}

	cmd.Flags().StringVar(&cfg.ListenHost, "host", cfg.ListenHost, "listen host")
	cmd.Flags().IntVarP(&cfg.Port, "port", "p", cfg.Port, "listen port")
	return cmd
}

