package main

import (
	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/marquee/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := db.Init(cfg.Database.URL, cfg.Database.MaxRetries); err != nil {
		return err
	}
	defer db.DB.Close()
	return db.RunMigrations(cfg.Database.MigrationsPath)
}
