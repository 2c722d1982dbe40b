// Package userdb contains user related CRUD functionality.
package userdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zaplanje/coin/business/core/user"
	"github.com/zaplanje/coin/business/sys/database"
	"gorm.io/gorm"
)

// Store manages the set of APIs for user database access.
type Store struct {
	db *gorm.DB
}

// NewStore constructs the api for data access.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db: db,
	}
}

// Create inserts a new user into the database.
func (s *Store) Create(ctx context.Context, usr user.User) error {
	row := toDBUser(usr)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(database.TranslateError(err), database.ErrDBDuplicatedEntry) {
			return fmt.Errorf("create: %w", user.ErrUniqueEmail)
		}
		return fmt.Errorf("create: %w", err)
	}

	return nil
}

// UpdatePassword replaces the password hash of a user.
func (s *Store) UpdatePassword(ctx context.Context, userID string, hash []byte, now time.Time) error {
	res := s.db.WithContext(ctx).
		Model(&dbUser{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"password_hash": hash,
			"date_updated":  now.UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("update: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return user.ErrNotFound
	}

	return nil
}

// QueryByID gets the specified user from the database.
func (s *Store) QueryByID(ctx context.Context, userID string) (user.User, error) {
	var row dbUser
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(database.TranslateError(err), database.ErrDBNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, fmt.Errorf("selecting userID[%q]: %w", userID, err)
	}

	return toCoreUser(row), nil
}

// QueryByEmail gets the specified user from the database by email.
func (s *Store) QueryByEmail(ctx context.Context, email string) (user.User, error) {
	var row dbUser
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		if errors.Is(database.TranslateError(err), database.ErrDBNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, fmt.Errorf("selecting email[%q]: %w", email, err)
	}

	return toCoreUser(row), nil
}

// Count returns the number of registered users.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&dbUser{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}

	return int(count), nil
}
