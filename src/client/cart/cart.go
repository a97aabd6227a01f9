package cart

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"historyatlas/src/client/auth"
	"historyatlas/src/client/storage"
	"historyatlas/src/domain/entities"
)

var (
	ErrEmptyCart = errors.New("cart is empty")

	// ErrCartNotCleared acompanha um pedido aceito: o pedido existe, só o carrinho salvo ficou para trás.
	ErrCartNotCleared = errors.New("order placed but the saved cart could not be cleared")
)

// Checkouter envia o pedido. *auth.Session satisfaz esta interface.
type Checkouter interface {
	LoggedIn() bool
	CreateOrder(ctx context.Context, items []entities.LineItem, total float64) (entities.Order, error)
}

// Cart guarda as linhas na ordem de inserção. Toda mutação grava o snapshot
// completo antes de trocar o estado em memória.
type Cart struct {
	store storage.KeyValueStore

	mu    sync.Mutex
	items []entities.LineItem
}

func Load(store storage.KeyValueStore) (*Cart, error) {
	var items []entities.LineItem
	if _, err := storage.GetJSON(store, storage.KeyCart, &items); err != nil {
		return nil, fmt.Errorf("Cart.Load - %w", err)
	}
	return &Cart{store: store, items: items}, nil
}

// Add incrementa a quantidade quando o produto já está no carrinho.
func (c *Cart) Add(product entities.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := slices.Clone(c.items)
	if i := indexOf(next, product.ID); i >= 0 {
		next[i].Quantity++
	} else {
		next = append(next, entities.LineItem{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Quantity: 1,
			Image:    product.Image,
			Category: product.Category,
		})
	}
	return c.commit(next)
}

// ChangeQuantity aplica delta; zero ou menos remove a linha. Ids desconhecidos são ignorados.
func (c *Cart) ChangeQuantity(id string, delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexOf(c.items, id)
	if i < 0 {
		return nil
	}

	quantity := max(0, c.items[i].Quantity+delta)
	if quantity == 0 {
		return c.commit(without(c.items, id))
	}

	next := slices.Clone(c.items)
	next[i].Quantity = quantity
	return c.commit(next)
}

func (c *Cart) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.commit(without(c.items, id))
}

func (c *Cart) Items() []entities.LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.items)
}

// Count soma as quantidades, não as linhas.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return entities.Subtotal(c.items)
}

// Total é igual ao subtotal: não há frete nem impostos.
func (c *Cart) Total() float64 {
	return c.Subtotal()
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items) == 0
}

// Checkout só limpa o carrinho depois que o pedido foi aceito. Com o pedido aceito o
// carrinho em memória é sempre esvaziado; falha ao gravar vira ErrCartNotCleared.
func (c *Cart) Checkout(ctx context.Context, checkouter Checkouter) (entities.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		return entities.Order{}, ErrEmptyCart
	}
	if !checkouter.LoggedIn() {
		return entities.Order{}, auth.ErrNotAuthenticated
	}

	items := slices.Clone(c.items)
	order, err := checkouter.CreateOrder(ctx, items, entities.Subtotal(items))
	if err != nil {
		return entities.Order{}, err
	}

	if err := c.commit([]entities.LineItem{}); err != nil {
		c.items = []entities.LineItem{}
		if deleteErr := c.store.Delete(storage.KeyCart); deleteErr != nil {
			return order, fmt.Errorf("%w: %w", ErrCartNotCleared, errors.Join(err, deleteErr))
		}
	}
	return order, nil
}

func (c *Cart) commit(next []entities.LineItem) error {
	if next == nil {
		next = []entities.LineItem{}
	}
	if err := storage.SetJSON(c.store, storage.KeyCart, next); err != nil {
		return fmt.Errorf("Cart - failed to persist: %w", err)
	}
	c.items = next
	return nil
}

func indexOf(items []entities.LineItem, id string) int {
	return slices.IndexFunc(items, func(item entities.LineItem) bool {
		return item.ID == id
	})
}

func without(items []entities.LineItem, id string) []entities.LineItem {
	next := make([]entities.LineItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			next = append(next, item)
		}
	}
	return next
}
