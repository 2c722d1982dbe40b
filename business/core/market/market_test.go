package market_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/zaplanje/coin/business/core/balance"
	"github.com/zaplanje/coin/business/core/market"
	"github.com/zaplanje/coin/business/core/market/stores/cartmem"
	"github.com/zaplanje/coin/business/sys/broker"
	"github.com/zaplanje/coin/foundation/logger"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const (
	honey   = 1
	cheese  = 2
	piglets = 3
	rakija  = 4
)

func newCore(initial balance.ZPL, delay time.Duration) (*market.Core, *balance.Book) {
	book := balance.NewBook(initial)

	core := market.NewCore(market.Config{
		Log:           logger.NewTest(),
		Carts:         cartmem.NewStore(),
		Book:          book,
		Publisher:     broker.Nop{},
		CheckoutDelay: delay,
	})

	return core, book
}

func TestCart(t *testing.T) {
	t.Log("Given the need to fill a shopping cart.")
	{
		ctx := context.Background()

		testID := 0
		t.Logf("\tTest %d:\tWhen adding more than the stock.", testID)
		{
			core, _ := newCore(balance.DefaultInitial, 0)

			for range 5 {
				if _, err := core.AddToCart(ctx, "user-1", piglets); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to add within stock : %v", failed, testID, err)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould be able to add within stock.", success, testID)

			if _, err := core.AddToCart(ctx, "user-1", piglets); !errors.Is(err, market.ErrOutOfStock) {
				t.Fatalf("\t%s\tTest %d:\tShould stop at the stock : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould stop at the stock.", success, testID)

			sum, err := core.Cart(ctx, "user-1")
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to read the cart : %v", failed, testID, err)
			}

			if sum.Count != 5 || sum.Total != balance.FromFloat(1250) {
				t.Fatalf("\t%s\tTest %d:\tShould total the cart : count %d total %s", failed, testID, sum.Count, sum.Total)
			}
			t.Logf("\t%s\tTest %d:\tShould total the cart.", success, testID)

			if _, err := core.AddToCart(ctx, "user-1", 99); !errors.Is(err, market.ErrProductNotFound) {
				t.Fatalf("\t%s\tTest %d:\tShould reject unknown products : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould reject unknown products.", success, testID)
		}

		testID = 1
		t.Logf("\tTest %d:\tWhen changing quantities.", testID)
		{
			core, _ := newCore(balance.DefaultInitial, 0)

			if _, err := core.UpdateQuantity(ctx, "user-1", cheese, 2); !errors.Is(err, market.ErrNotInCart) {
				t.Fatalf("\t%s\tTest %d:\tShould reject products not in the cart : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould reject products not in the cart.", success, testID)

			core.AddToCart(ctx, "user-1", cheese)

			if _, err := core.UpdateQuantity(ctx, "user-1", cheese, 9); !errors.Is(err, market.ErrInsufficientStock) {
				t.Fatalf("\t%s\tTest %d:\tShould reject more than the stock : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould reject more than the stock.", success, testID)

			sum, err := core.UpdateQuantity(ctx, "user-1", cheese, 0)
			if err != nil || sum.Items[0].Quantity != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould keep at least one : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould keep at least one.", success, testID)

			sum, err = core.RemoveFromCart(ctx, "user-1", cheese)
			if err != nil || len(sum.Items) != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould be able to remove the product : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to remove the product.", success, testID)
		}
	}
}

func TestCheckout(t *testing.T) {
	t.Log("Given the need to buy the products in a cart.")
	{
		ctx := context.Background()

		testID := 0
		t.Logf("\tTest %d:\tWhen the balance covers the cart.", testID)
		{
			core, book := newCore(balance.DefaultInitial, time.Millisecond)

			if _, err := core.Checkout(ctx, "user-1"); !errors.Is(err, market.ErrEmptyCart) {
				t.Fatalf("\t%s\tTest %d:\tShould reject an empty cart : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould reject an empty cart.", success, testID)

			core.AddToCart(ctx, "user-1", honey)
			core.AddToCart(ctx, "user-1", honey)
			core.AddToCart(ctx, "user-1", rakija)

			rcpt, err := core.Checkout(ctx, "user-1")
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to checkout : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to checkout.", success, testID)

			exp := balance.DefaultInitial - balance.FromFloat(900)
			if rcpt.Total != balance.FromFloat(900) || book.Balance("user-1") != exp {
				t.Fatalf("\t%s\tTest %d:\tShould debit the total : got %s", failed, testID, book.Balance("user-1"))
			}
			t.Logf("\t%s\tTest %d:\tShould debit the total.", success, testID)

			for _, p := range core.Products(ctx) {
				switch p.ID {
				case honey:
					if p.Stock != 13 {
						t.Fatalf("\t%s\tTest %d:\tShould take honey from stock : %d", failed, testID, p.Stock)
					}
				case rakija:
					if p.Stock != 19 {
						t.Fatalf("\t%s\tTest %d:\tShould take rakija from stock : %d", failed, testID, p.Stock)
					}
				}
			}
			t.Logf("\t%s\tTest %d:\tShould take the products from stock.", success, testID)

			sum, _ := core.Cart(ctx, "user-1")
			if sum.Count != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould clear the cart : %d", failed, testID, sum.Count)
			}
			t.Logf("\t%s\tTest %d:\tShould clear the cart.", success, testID)
		}

		testID = 1
		t.Logf("\tTest %d:\tWhen the balance does not cover the cart.", testID)
		{
			core, book := newCore(balance.FromFloat(500), 0)

			core.AddToCart(ctx, "user-1", rakija)
			core.AddToCart(ctx, "user-1", rakija)

			if _, err := core.Checkout(ctx, "user-1"); !errors.Is(err, balance.ErrInsufficientFunds) {
				t.Fatalf("\t%s\tTest %d:\tShould reject the purchase : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould reject the purchase.", success, testID)

			if book.Balance("user-1") != balance.FromFloat(500) {
				t.Fatalf("\t%s\tTest %d:\tShould leave the balance untouched.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould leave the balance untouched.", success, testID)
		}

		testID = 2
		t.Logf("\tTest %d:\tWhen a checkout is already underway.", testID)
		{
			core, _ := newCore(balance.DefaultInitial, 200*time.Millisecond)
			core.AddToCart(ctx, "user-1", honey)

			done := make(chan error, 1)
			go func() {
				_, err := core.Checkout(ctx, "user-1")
				done <- err
			}()

			time.Sleep(50 * time.Millisecond)
			if _, err := core.Checkout(ctx, "user-1"); !errors.Is(err, market.ErrCheckoutInProgress) {
				t.Fatalf("\t%s\tTest %d:\tShould reject a second checkout : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould reject a second checkout.", success, testID)

			if err := <-done; err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould complete the first checkout : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould complete the first checkout.", success, testID)
		}

		testID = 3
		t.Logf("\tTest %d:\tWhen two carts together want more than the stock.", testID)
		{
			core, book := newCore(balance.DefaultInitial, 50*time.Millisecond)

			want := map[string]int{"user-1": 4, "user-2": 2}
			for userID, n := range want {
				for range n {
					if _, err := core.AddToCart(ctx, userID, piglets); err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to fill the cart : %v", failed, testID, err)
					}
				}
			}

			errs := make(map[string]error)
			var mu sync.Mutex
			var wg sync.WaitGroup
			for userID := range want {
				wg.Add(1)
				go func(userID string) {
					defer wg.Done()
					_, err := core.Checkout(ctx, userID)

					mu.Lock()
					errs[userID] = err
					mu.Unlock()
				}(userID)
			}
			wg.Wait()

			var winner, loser string
			for userID, err := range errs {
				switch {
				case err == nil:
					winner = userID
				case errors.Is(err, market.ErrInsufficientStock):
					loser = userID
				default:
					t.Fatalf("\t%s\tTest %d:\tShould only fail on stock : %s got %v", failed, testID, userID, err)
				}
			}
			if winner == "" || loser == "" {
				t.Fatalf("\t%s\tTest %d:\tShould let exactly one checkout through : %v", failed, testID, errs)
			}
			t.Logf("\t%s\tTest %d:\tShould let exactly one checkout through.", success, testID)

			if got := book.Balance(loser); got != balance.DefaultInitial {
				t.Fatalf("\t%s\tTest %d:\tShould not debit the losing member : got %s", failed, testID, got)
			}
			t.Logf("\t%s\tTest %d:\tShould not debit the losing member.", success, testID)

			sum, err := core.Cart(ctx, loser)
			if err != nil || sum.Count != want[loser] {
				t.Fatalf("\t%s\tTest %d:\tShould keep the losing cart : got %d, exp %d, %v", failed, testID, sum.Count, want[loser], err)
			}
			t.Logf("\t%s\tTest %d:\tShould keep the losing cart.", success, testID)

			for _, p := range core.Products(ctx) {
				if p.ID == piglets && p.Stock != 5-want[winner] {
					t.Fatalf("\t%s\tTest %d:\tShould take only the winning cart from stock : %d", failed, testID, p.Stock)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould take only the winning cart from stock.", success, testID)
		}

		testID = 4
		t.Logf("\tTest %d:\tWhen the request is cancelled during the delay.", testID)
		{
			core, book := newCore(balance.DefaultInitial, time.Hour)
			core.AddToCart(ctx, "user-1", honey)

			cctx, cancel := context.WithCancel(ctx)
			go func() {
				time.Sleep(20 * time.Millisecond)
				cancel()
			}()

			if _, err := core.Checkout(cctx, "user-1"); !errors.Is(err, context.Canceled) {
				t.Fatalf("\t%s\tTest %d:\tShould abort the checkout : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould abort the checkout.", success, testID)

			if got := book.Balance("user-1"); got != balance.DefaultInitial {
				t.Fatalf("\t%s\tTest %d:\tShould not debit the balance : got %s", failed, testID, got)
			}
			t.Logf("\t%s\tTest %d:\tShould not debit the balance.", success, testID)

			for _, p := range core.Products(ctx) {
				if p.ID == honey && p.Stock != 15 {
					t.Fatalf("\t%s\tTest %d:\tShould leave the stock : %d", failed, testID, p.Stock)
				}
			}

			sum, _ := core.Cart(ctx, "user-1")
			if sum.Count != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould keep the cart : %d", failed, testID, sum.Count)
			}
			t.Logf("\t%s\tTest %d:\tShould leave stock and cart as they were.", success, testID)
		}
	}
}
