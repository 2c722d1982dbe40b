package market

import (
	"slices"
	"sync"

	"github.com/zaplanje/coin/business/core/balance"
)

// DefaultProducts is the produce the village offers.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:          1,
			Name:        "Домаћи Мед",
			Description: "Природни мед из Заплања, 1кг",
			Price:       balance.FromFloat(250),
			Stock:       15,
			Image:       "https://images.unsplash.com/photo-1644221362202-2e3e6b01d717?w=500&auto=format&fit=crop&q=60&ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxzZWFyY2h8MTIzfHxob25leXxlbnwwfHwwfHx8MA%3D%3D",
		},
		{
			ID:          2,
			Name:        "Сир",
			Description: "Традиционални сир из Заплања, 1кг",
			Price:       balance.FromFloat(300),
			Stock:       8,
			Image:       "https://images.unsplash.com/photo-1486297678162-eb2a19b0a32d?auto=format&fit=crop&q=80&w=800",
		},
		{
			ID:          3,
			Name:        "Прасићи",
			Description: "Прасићи, 1кг",
			Price:       balance.FromFloat(250),
			Stock:       5,
			Image:       "https://images.unsplash.com/photo-1586348323398-678d15d9e87f?w=500&auto=format&fit=crop&q=60&ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxzZWFyY2h8MzR8fHBpZ3xlbnwwfHwwfHx8Mg%3D%3D",
		},
		{
			ID:          4,
			Name:        "Ракија",
			Description: "Шљивовица из Заплања, 1л",
			Price:       balance.FromFloat(400),
			Stock:       20,
			Image:       "https://images.unsplash.com/photo-1569529465841-dfecdab7503b?auto=format&fit=crop&q=80&w=800",
		},
	}
}

// catalog holds the products and their stock shared by every user.
type catalog struct {
	mu       sync.RWMutex
	products []Product
}

func newCatalog(products []Product) *catalog {
	return &catalog{
		products: slices.Clone(products),
	}
}

func (c *catalog) list() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.products)
}

func (c *catalog) product(id int) (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.find(id)
}

// find looks up a product. The caller must hold a lock.
func (c *catalog) find(id int) (Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
