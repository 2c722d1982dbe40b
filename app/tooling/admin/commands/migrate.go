package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/zaplanje/coin/business/data/dbmigrate"
	"github.com/zaplanje/coin/business/sys/database"
)

var seed bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the schema and optionally seed it",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Migrate(dbConfig, seed)
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&seed, "seed", true, "Seed the statistics row after migrating.")
	rootCmd.AddCommand(migrateCmd)
}

// Migrate creates the schema in the database.
func Migrate(cfg database.Config, seed bool) error {
	db, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := dbmigrate.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	log.Infow("migrate", "status", "migrations complete", "host", cfg.Host)

	if !seed {
		return nil
	}

	if err := dbmigrate.Seed(ctx, db); err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	log.Infow("migrate", "status", "seed data complete")

	return nil
}
