package market

import (
	"time"

	"github.com/zaplanje/coin/business/core/balance"
)

// Product is an item offered in the marketplace.
type Product struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       balance.ZPL `json:"price"`
	Image       string      `json:"image"`
	Stock       int         `json:"stock"`
}

// Line is a product and quantity held in a cart.
type Line struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// Cart is the stored shopping cart of a user.
type Cart struct {
	UserID      string    `json:"user_id"`
	Lines       []Line    `json:"lines"`
	DateUpdated time.Time `json:"date_updated"`
}

// line returns the index of the product in the cart or -1.
func (c Cart) line(productID int) int {
	for i, l := range c.Lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// Item is a cart line joined with its product.
type Item struct {
	Product  Product     `json:"product"`
	Quantity int         `json:"quantity"`
	Subtotal balance.ZPL `json:"subtotal"`
}

// CartSummary is the cart as shown to the user.
type CartSummary struct {
	Items   []Item      `json:"items"`
	Count   int         `json:"count"`
	Total   balance.ZPL `json:"total"`
	Balance balance.ZPL `json:"balance"`
}

// Receipt describes a completed purchase.
type Receipt struct {
	ID      string      `json:"id"`
	Items   []Item      `json:"items"`
	Total   balance.ZPL `json:"total"`
	Balance balance.ZPL `json:"balance"`
	Date    time.Time   `json:"date"`
	Status  string      `json:"status"`
}

// Dataset is one series of a chart.
type Dataset struct {
	Label string `json:"label"`
	Data  []int  `json:"data"`
}

// Chart holds labels and the series plotted over them.
type Chart struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Stats are the marketplace charts.
type Stats struct {
	Sales        Chart `json:"sales"`
	ProductShare Chart `json:"product_share"`
}
