// Package market provides the core business API for the village
// marketplace: the product catalog, shopping carts and checkout.
package market

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zaplanje/coin/business/core/balance"
	"github.com/zaplanje/coin/business/sys/broker"
	"go.uber.org/zap"
)

// DefaultCheckoutDelay is how long a purchase takes to confirm.
const DefaultCheckoutDelay = 2 * time.Second

// StatusCompleted is the status of a confirmed purchase.
const StatusCompleted = "completed"

// Set of error variables for marketplace operations.
var (
	ErrProductNotFound    = errors.New("product not found")
	ErrSoldOut            = errors.New("product is sold out")
	ErrOutOfStock         = errors.New("no more items in stock")
	ErrInsufficientStock  = errors.New("not enough items in stock")
	ErrNotInCart          = errors.New("product is not in the cart")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)

// CartStorer declares the behavior this package needs to persist carts.
type CartStorer interface {
	Query(ctx context.Context, userID string) (Cart, error)
	Save(ctx context.Context, cart Cart) error
	Delete(ctx context.Context, userID string) error
}

// Config represents the settings of the market core.
type Config struct {
	Log           *zap.SugaredLogger
	Carts         CartStorer
	Book          *balance.Book
	Publisher     broker.Publisher
	Products      []Product
	CheckoutDelay time.Duration
}

// Core manages the set of APIs for marketplace access.
type Core struct {
	log     *zap.SugaredLogger
	carts   CartStorer
	book    *balance.Book
	pub     broker.Publisher
	catalog *catalog
	delay   time.Duration
	pending *pending
}

// NewCore constructs a core for marketplace api access.
func NewCore(cfg Config) *Core {
	products := cfg.Products
	if products == nil {
		products = DefaultProducts()
	}

	return &Core{
		log:     cfg.Log,
		carts:   cfg.Carts,
		book:    cfg.Book,
		pub:     cfg.Publisher,
		catalog: newCatalog(products),
		delay:   cfg.CheckoutDelay,
		pending: newPending(),
	}
}

// Products returns the catalog with current stock.
func (c *Core) Products(ctx context.Context) []Product {
	return c.catalog.list()
}

// Stats returns the marketplace charts.
func (c *Core) Stats() Stats {
	return salesStats
}

// Cart returns the user's cart joined with the catalog.
func (c *Core) Cart(ctx context.Context, userID string) (CartSummary, error) {
	cart, err := c.carts.Query(ctx, userID)
	if err != nil {
		return CartSummary{}, fmt.Errorf("query cart: userID[%s]: %w", userID, err)
	}

	return c.summarize(userID, cart), nil
}

// AddToCart puts one more of the product in the user's cart.
func (c *Core) AddToCart(ctx context.Context, userID string, productID int) (CartSummary, error) {
	prd, exists := c.catalog.product(productID)
	if !exists {
		return CartSummary{}, ErrProductNotFound
	}

	if prd.Stock <= 0 {
		return CartSummary{}, ErrSoldOut
	}

	cart, err := c.carts.Query(ctx, userID)
	if err != nil {
		return CartSummary{}, fmt.Errorf("query cart: userID[%s]: %w", userID, err)
	}

	switch i := cart.line(productID); {
	case i < 0:
		cart.Lines = append(cart.Lines, Line{ProductID: productID, Quantity: 1})

	case cart.Lines[i].Quantity >= prd.Stock:
		return CartSummary{}, ErrOutOfStock

	default:
		cart.Lines[i].Quantity++
	}

	return c.save(ctx, userID, cart)
}

// UpdateQuantity sets the quantity of a product already in the cart. The
// quantity never drops below one.
func (c *Core) UpdateQuantity(ctx context.Context, userID string, productID int, quantity int) (CartSummary, error) {
	prd, exists := c.catalog.product(productID)
	if !exists {
		return CartSummary{}, ErrProductNotFound
	}

	if quantity > prd.Stock {
		return CartSummary{}, ErrInsufficientStock
	}

	cart, err := c.carts.Query(ctx, userID)
	if err != nil {
		return CartSummary{}, fmt.Errorf("query cart: userID[%s]: %w", userID, err)
	}

	i := cart.line(productID)
	if i < 0 {
		return CartSummary{}, ErrNotInCart
	}

	cart.Lines[i].Quantity = max(1, quantity)

	return c.save(ctx, userID, cart)
}

// RemoveFromCart takes the product out of the cart.
func (c *Core) RemoveFromCart(ctx context.Context, userID string, productID int) (CartSummary, error) {
	cart, err := c.carts.Query(ctx, userID)
	if err != nil {
		return CartSummary{}, fmt.Errorf("query cart: userID[%s]: %w", userID, err)
	}

	i := cart.line(productID)
	if i < 0 {
		return CartSummary{}, ErrNotInCart
	}

	cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)

	return c.save(ctx, userID, cart)
}

// ClearCart empties the user's cart.
func (c *Core) ClearCart(ctx context.Context, userID string) error {
	if err := c.carts.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete cart: userID[%s]: %w", userID, err)
	}
	return nil
}

// Checkout buys everything in the cart once the purchase confirms.
func (c *Core) Checkout(ctx context.Context, userID string) (Receipt, error) {
	if !c.pending.acquire(userID) {
		return Receipt{}, ErrCheckoutInProgress
	}
	defer c.pending.release(userID)

	cart, err := c.carts.Query(ctx, userID)
	if err != nil {
		return Receipt{}, fmt.Errorf("query cart: userID[%s]: %w", userID, err)
	}

	if len(cart.Lines) == 0 {
		return Receipt{}, ErrEmptyCart
	}

	sum := c.summarize(userID, cart)
	if sum.Total > sum.Balance {
		return Receipt{}, balance.ErrInsufficientFunds
	}

	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return Receipt{}, fmt.Errorf("checkout cancelled: %w", ctx.Err())
		}
	}

	remaining, err := c.commit(userID, cart)
	if err != nil {
		return Receipt{}, err
	}

	if err := c.carts.Delete(ctx, userID); err != nil {
		c.log.Errorw("market", "status", "clear cart", "userID", userID, "ERROR", err)
	}

	rcpt := Receipt{
		ID:      uuid.NewString(),
		Items:   sum.Items,
		Total:   sum.Total,
		Balance: remaining,
		Date:    time.Now().UTC(),
		Status:  StatusCompleted,
	}

	c.log.Infow("market", "status", "purchase completed", "userID", userID, "total", rcpt.Total.String())

	if err := c.pub.Publish(ctx, broker.MarketPurchased, userID, rcpt); err != nil {
		c.log.Errorw("market", "status", "publish purchase", "userID", userID, "ERROR", err)
	}

	return rcpt, nil
}

// =============================================================================

// commit takes the stock and the money for the cart in one step so another
// purchase can't take the stock in between.
func (c *Core) commit(userID string, cart Cart) (balance.ZPL, error) {
	c.catalog.mu.Lock()
	defer c.catalog.mu.Unlock()

	var total balance.ZPL
	for _, l := range cart.Lines {
		prd, exists := c.catalog.find(l.ProductID)
		if !exists {
			return 0, fmt.Errorf("product[%d]: %w", l.ProductID, ErrProductNotFound)
		}

		if l.Quantity > prd.Stock {
			return 0, fmt.Errorf("product[%d]: %w", l.ProductID, ErrInsufficientStock)
		}

		total += prd.Price * balance.ZPL(l.Quantity)
	}

	remaining, err := c.book.Debit(userID, total)
	if err != nil {
		return 0, err
	}

	for _, l := range cart.Lines {
		for i := range c.catalog.products {
			if c.catalog.products[i].ID == l.ProductID {
				c.catalog.products[i].Stock -= l.Quantity
			}
		}
	}

	return remaining, nil
}

func (c *Core) save(ctx context.Context, userID string, cart Cart) (CartSummary, error) {
	cart.UserID = userID
	cart.DateUpdated = time.Now().UTC()

	if err := c.carts.Save(ctx, cart); err != nil {
		return CartSummary{}, fmt.Errorf("save cart: userID[%s]: %w", userID, err)
	}

	return c.summarize(userID, cart), nil
}

func (c *Core) summarize(userID string, cart Cart) CartSummary {
	sum := CartSummary{
		Items:   []Item{},
		Balance: c.book.Balance(userID),
	}

	for _, l := range cart.Lines {
		prd, exists := c.catalog.product(l.ProductID)
		if !exists {
			continue
		}

		item := Item{
			Product:  prd,
			Quantity: l.Quantity,
			Subtotal: prd.Price * balance.ZPL(l.Quantity),
		}

		sum.Items = append(sum.Items, item)
		sum.Count += item.Quantity
		sum.Total += item.Subtotal
	}

	return sum
}
