package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kutbudev/taskpilot/api"
	"github.com/kutbudev/taskpilot/pkg/config"
	"github.com/kutbudev/taskpilot/pkg/repository"
	"github.com/kutbudev/taskpilot/pkg/services"
)

// Version will be set during build with ldflags
var Version = "1.0.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "taskpilot",
		Short:   "Task and project tracking backend",
		Version: Version,
	}
	rootCmd.AddCommand(serveCmd(), migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Debug {
				log.SetLevel(log.DebugLevel)
			}

			db, err := repository.NewDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := services.New(repository.NewStore(db))
			r := api.NewRouter(svc, db)

			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			log.Infof("listening on %s", addr)
			return r.Run(addr)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database schema migration and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := repository.NewDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Migrate(); err != nil {
				return err
			}
			log.Info("migration complete")
			return nil
		},
	}
}
