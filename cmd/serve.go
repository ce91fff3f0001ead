package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/paperdesk/internal/dashboard"
	"github.com/ziadkadry99/paperdesk/internal/server"
)

var (
	servePort    int
	serveAPIBase string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	Long: `Starts the paperdesk dashboard on the configured port. The backend URL is
taken from --api-base or the config; when both are empty each browser talks
to the backend on the host it loaded the page from.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		if cmd.Flags().Changed("api-base") {
			cfg.API.Base = serveAPIBase
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log, err := newLogger(cfg)
		if err != nil {
			return err
		}

		srv := server.New(server.Config{
			Host:           cfg.Server.Host,
			Port:           cfg.Server.Port,
			AllowAll:       cfg.Server.AllowAll,
			RequestTimeout: cfg.Server.RequestTimeout,
		}, log)

		dash := dashboard.New(dashboard.Settings{
			APIBase: cfg.API.Base,
			APIPort: cfg.API.Port,
			Views:   viewOptions(cfg, log),
		}, log)
		dash.RegisterRoutes(srv.Router())

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			log.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		backend := cfg.API.Base
		if backend == "" {
			backend = "page host"
		}
		log.WithFields(logrus.Fields{
			"version": Version,
			"port":    cfg.Server.Port,
			"backend": backend,
		}).Info("paperdesk starting")

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 5173, "Port to listen on")
	serveCmd.Flags().StringVar(&serveAPIBase, "api-base", "", "Backend base URL (default: derived from the page host)")
	rootCmd.AddCommand(serveCmd)
}
