package fakes

import (
	"context"
	"sort"
	"sync"
	"time"

	"historyatlas/src/domain/entities"

	"github.com/google/uuid"
)

type OrderRepository struct {
	mu     sync.Mutex
	orders []entities.Order
	Err    error
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) Create(_ context.Context, order entities.Order) (entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return entities.Order{}, r.Err
	}
	if order.CreatedAt.IsZero() {
		now := time.Now().UTC()
		order.CreatedAt, order.UpdatedAt = now, now
	}
	r.orders = append(r.orders, order)
	return order, nil
}

func (r *OrderRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	var orders []entities.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (r *OrderRepository) All() []entities.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entities.Order(nil), r.orders...)
}
