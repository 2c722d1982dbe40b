// Package dbmigrate contains the database schema, migrations and seeding data.
package dbmigrate

import (
	"context"
	"fmt"

	"github.com/zaplanje/coin/business/sys/database"
	"gorm.io/gorm"
)

// migrations are applied in order. Every statement is idempotent so the
// full set can run on each deploy.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id       UUID        NOT NULL,
		email         TEXT        UNIQUE NOT NULL,
		password_hash TEXT        NOT NULL,
		date_created  TIMESTAMPTZ NOT NULL,
		date_updated  TIMESTAMPTZ NOT NULL,

		PRIMARY KEY (user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS wallet_addresses (
		user_id      UUID        NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		address      TEXT        UNIQUE NOT NULL,
		date_created TIMESTAMPTZ NOT NULL,

		PRIMARY KEY (user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS statistics (
		id           INT         NOT NULL,
		total_users  INT         NOT NULL DEFAULT 0,
		date_updated TIMESTAMPTZ NOT NULL DEFAULT NOW(),

		PRIMARY KEY (id)
	)`,
}

// seeds holds the rows every installation starts with.
var seeds = []string{
	`INSERT INTO statistics (id, total_users, date_updated) VALUES (1, 0, NOW()) ON CONFLICT (id) DO NOTHING`,
}

// Migrate attempts to bring the schema for db up to date with the migrations
// defined in this package.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := database.StatusCheck(ctx, db); err != nil {
		return fmt.Errorf("status check database: %w", err)
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, stmt := range migrations {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("migration %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

// Seed runs the set of seed-data queries against db.
func Seed(ctx context.Context, db *gorm.DB) error {
	if err := database.StatusCheck(ctx, db); err != nil {
		return fmt.Errorf("status check database: %w", err)
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range seeds {
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seeding: %w", err)
	}

	return nil
}
