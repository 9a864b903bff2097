package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/middleware"
)

var (
	bootstrapTenant   string
	bootstrapEmail    string
	bootstrapPassword string
	bootstrapName     string
	bootstrapFallback string
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create a tenant with its first administrator",
	RunE:  runBootstrap,
}

func init() {
	f := bootstrapCmd.Flags()
	f.StringVar(&bootstrapTenant, "tenant", "", "tenant name")
	f.StringVar(&bootstrapEmail, "email", "", "administrator email")
	f.StringVar(&bootstrapPassword, "password", "", "administrator password")
	f.StringVar(&bootstrapName, "name", "", "administrator display name")
	f.StringVar(&bootstrapFallback, "fallback-playlist", "", "create a playlist with this name and show it when nothing is scheduled")
	for _, name := range []string{"tenant", "email", "password"} {
		_ = bootstrapCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(bootstrapCmd)
}

func runBootstrap(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := db.Init(cfg.Database.URL, cfg.Database.MaxRetries); err != nil {
		return err
	}
	defer db.DB.Close()
	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		return fmt.Errorf("db migrate: %w", err)
	}
	store := db.NewStore(db.DB)

	hash, err := middleware.HashPassword(bootstrapPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	tenantID, err := store.CreateTenant(ctx, bootstrapTenant)
	if err != nil {
		return fmt.Errorf("create tenant: %w", err)
	}
	var name *string
	if bootstrapName != "" {
		name = &bootstrapName
	}
	userID, err := store.CreateUser(ctx, tenantID, bootstrapEmail, hash, name)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	logger := log.Info().Int("tenant_id", tenantID).Int("user_id", userID)

	if bootstrapFallback != "" {
		pl, err := store.CreatePlaylist(ctx, tenantID, bootstrapFallback, nil)
		if err != nil {
			return fmt.Errorf("create fallback playlist: %w", err)
		}
		if err := store.SetFallbackPlaylist(ctx, tenantID, &pl.ID); err != nil {
			return fmt.Errorf("set fallback playlist: %w", err)
		}
		logger = logger.Int("fallback_playlist_id", pl.ID)
	}
	logger.Msg("tenant bootstrapped")
	return nil
}
