// Package wallet provides the core business API for wallet addresses and
// transfers between community members.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zaplanje/coin/business/core/balance"
	"github.com/zaplanje/coin/business/sys/broker"
	"go.uber.org/zap"
)

// DefaultTransferDelay is how long a transfer takes to confirm.
const DefaultTransferDelay = 2 * time.Second

// StatusCompleted is the status of a confirmed transfer.
const StatusCompleted = "completed"

// Set of error variables for wallet operations.
var (
	ErrNotFound         = errors.New("wallet address not found")
	ErrDuplicateAddress = errors.New("wallet address already exists")
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrMissingRecipient = errors.New("recipient address is required")
	ErrSelfTransfer     = errors.New("cannot send to your own address")
)

// Address represents the wallet address issued to a user.
type Address struct {
	UserID      string    `json:"user_id"`
	Address     string    `json:"address"`
	DateCreated time.Time `json:"date_created"`
}

// Transfer is what a user asks to send.
type Transfer struct {
	To     string      `json:"to" validate:"required"`
	Amount balance.ZPL `json:"amount"`
}

// Receipt describes a confirmed transfer.
type Receipt struct {
	ID      string      `json:"id"`
	From    string      `json:"from"`
	To      string      `json:"to"`
	Amount  balance.ZPL `json:"amount"`
	Balance balance.ZPL `json:"balance"`
	Date    time.Time   `json:"date"`
	Status  string      `json:"status"`
}

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	Create(ctx context.Context, addr Address) error
	QueryByUserID(ctx context.Context, userID string) (Address, error)
	QueryByAddress(ctx context.Context, address string) (Address, error)
}

// Config represents the settings of the wallet core.
type Config struct {
	Log           *zap.SugaredLogger
	Storer        Storer
	Book          *balance.Book
	Publisher     broker.Publisher
	TransferDelay time.Duration
}

// Core manages the set of APIs for wallet access.
type Core struct {
	log    *zap.SugaredLogger
	storer Storer
	book   *balance.Book
	pub    broker.Publisher
	delay  time.Duration
}

// NewCore constructs a core for wallet api access.
func NewCore(cfg Config) *Core {
	return &Core{
		log:    cfg.Log,
		storer: cfg.Storer,
		book:   cfg.Book,
		pub:    cfg.Publisher,
		delay:  cfg.TransferDelay,
	}
}

// GetOrCreate returns the address of the user, generating one the first
// time it is asked for.
func (c *Core) GetOrCreate(ctx context.Context, userID string) (Address, error) {
	addr, err := c.storer.QueryByUserID(ctx, userID)
	if err == nil {
		return addr, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return Address{}, fmt.Errorf("query: userID[%s]: %w", userID, err)
	}

	address, err := GenerateAddress()
	if err != nil {
		return Address{}, err
	}

	addr = Address{
		UserID:      userID,
		Address:     address,
		DateCreated: time.Now().UTC(),
	}

	if err := c.storer.Create(ctx, addr); err != nil {
		if !errors.Is(err, ErrDuplicateAddress) {
			return Address{}, fmt.Errorf("create: %w", err)
		}

		// Another request issued the address first.
		winner, err := c.storer.QueryByUserID(ctx, userID)
		if err != nil {
			return Address{}, fmt.Errorf("query: userID[%s]: %w", userID, err)
		}
		return winner, nil
	}

	c.log.Infow("wallet", "status", "address issued", "userID", userID, "address", addr.Address)

	return addr, nil
}

// QueryByAddress finds the wallet with the specified address.
func (c *Core) QueryByAddress(ctx context.Context, address string) (Address, error) {
	addr, err := c.storer.QueryByAddress(ctx, address)
	if err != nil {
		return Address{}, fmt.Errorf("query: address[%s]: %w", address, err)
	}
	return addr, nil
}

// Balance returns the current balance of the user.
func (c *Core) Balance(userID string) balance.ZPL {
	return c.book.Balance(userID)
}

// Send debits the amount from the user once the transfer confirms. The
// recipient is only recorded on the receipt.
func (c *Core) Send(ctx context.Context, userID string, tr Transfer) (Receipt, error) {
	to := strings.TrimSpace(tr.To)
	if to == "" {
		return Receipt{}, ErrMissingRecipient
	}

	if tr.Amount <= 0 {
		return Receipt{}, ErrInvalidAmount
	}

	from, err := c.GetOrCreate(ctx, userID)
	if err != nil {
		return Receipt{}, err
	}

	if from.Address == to {
		return Receipt{}, ErrSelfTransfer
	}

	if tr.Amount > c.book.Balance(userID) {
		return Receipt{}, balance.ErrInsufficientFunds
	}

	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return Receipt{}, fmt.Errorf("transfer cancelled: %w", ctx.Err())
		}
	}

	remaining, err := c.book.Debit(userID, tr.Amount)
	if err != nil {
		return Receipt{}, err
	}

	rcpt := Receipt{
		ID:      uuid.NewString(),
		From:    from.Address,
		To:      to,
		Amount:  tr.Amount,
		Balance: remaining,
		Date:    time.Now().UTC(),
		Status:  StatusCompleted,
	}

	if err := c.pub.Publish(ctx, broker.WalletSent, userID, rcpt); err != nil {
		c.log.Errorw("wallet", "status", "publish transfer", "userID", userID, "ERROR", err)
	}

	return rcpt, nil
}
