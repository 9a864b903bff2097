package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/service"
)

var (
	resolveTenant int
	resolveAt     string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print the playlist a tenant's players should show at an instant",
	RunE:  runResolve,
}

func init() {
	resolveCmd.Flags().IntVar(&resolveTenant, "tenant", 0, "tenant id")
	resolveCmd.Flags().StringVar(&resolveAt, "at", "", "RFC3339 instant (default now)")
	_ = resolveCmd.MarkFlagRequired("tenant")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	at := time.Now()
	if resolveAt != "" {
		parsed, err := time.Parse(time.RFC3339, resolveAt)
		if err != nil {
			return fmt.Errorf("parse --at: %w", err)
		}
		at = parsed
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := db.Init(cfg.Database.URL, cfg.Database.MaxRetries); err != nil {
		return err
	}
	defer db.DB.Close()

	opts, cleanup, err := serviceOptions(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	schedules := service.NewScheduleService(db.NewStore(db.DB), opts...)

	res, err := schedules.ResolveActivePlaylist(cmd.Context(), resolveTenant, at)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
