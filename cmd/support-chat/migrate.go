package main

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-support-chat/internal/repo"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the interactions table if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			db, err := repo.OpenSQLite(cfg.DBPath, repo.Options{LogLevel: logger.Silent})
			if err != nil {
				return errors.Wrapf(err, "open database %s", cfg.DBPath)
			}
			defer func() { _ = repo.Close(db) }()

			if err := repo.EnsureSchema(cmd.Context(), db); err != nil {
				return err
			}
			n, err := repo.CountInteractions(cmd.Context(), db)
			if err != nil {
				return err
			}
			log.Info().Str("db", cfg.DBPath).Int64("rows", n).Msg("schema ready")
			return nil
		},
	}
}
