// Package walletdb contains wallet address related CRUD functionality.
package walletdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zaplanje/coin/business/core/wallet"
	"github.com/zaplanje/coin/business/sys/database"
	"gorm.io/gorm"
)

type dbAddress struct {
	UserID      string    `gorm:"column:user_id;primaryKey"`
	Address     string    `gorm:"column:address"`
	DateCreated time.Time `gorm:"column:date_created"`
}

func (dbAddress) TableName() string {
	return "wallet_addresses"
}

// Store manages the set of APIs for wallet address database access.
type Store struct {
	db *gorm.DB
}

// NewStore constructs the api for data access.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db: db,
	}
}

// Create inserts a new address into the database.
func (s *Store) Create(ctx context.Context, addr wallet.Address) error {
	row := dbAddress{
		UserID:      addr.UserID,
		Address:     addr.Address,
		DateCreated: addr.DateCreated.UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(database.TranslateError(err), database.ErrDBDuplicatedEntry) {
			return fmt.Errorf("create: %w", wallet.ErrDuplicateAddress)
		}
		return fmt.Errorf("create: %w", err)
	}

	return nil
}

// QueryByUserID gets the address issued to the user.
func (s *Store) QueryByUserID(ctx context.Context, userID string) (wallet.Address, error) {
	return s.query(ctx, "user_id = ?", userID)
}

// QueryByAddress gets the wallet with the address.
func (s *Store) QueryByAddress(ctx context.Context, address string) (wallet.Address, error) {
	return s.query(ctx, "address = ?", address)
}

func (s *Store) query(ctx context.Context, where string, arg string) (wallet.Address, error) {
	var row dbAddress
	if err := s.db.WithContext(ctx).Where(where, arg).First(&row).Error; err != nil {
		if errors.Is(database.TranslateError(err), database.ErrDBNotFound) {
			return wallet.Address{}, wallet.ErrNotFound
		}
		return wallet.Address{}, fmt.Errorf("selecting %s: %w", arg, err)
	}

	return wallet.Address{
		UserID:      row.UserID,
		Address:     row.Address,
		DateCreated: row.DateCreated,
	}, nil
}
