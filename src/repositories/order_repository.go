package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"historyatlas/src/domain/entities"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderRepository é insert-only: pedidos nunca são alterados depois do checkout.
type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) Create(ctx context.Context, order entities.Order) (entities.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `
		INSERT INTO orders (id, user_id, items, total, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err = r.pool.QueryRow(ctx, query,
		order.ID,
		order.UserID,
		itemsJSON,
		order.Total,
		string(order.Status),
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	return order, nil
}

// ListByUser devolve os pedidos do usuário, mais recentes primeiro.
func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.Order, error) {
	query := `
		SELECT id, user_id, items, total, status, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.Order, error) {
		var (
			order     entities.Order
			itemsJSON []byte
			status    string
		)

		if err := row.Scan(&order.ID, &order.UserID, &itemsJSON, &order.Total, &status, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return entities.Order{}, err
		}

		if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
			return entities.Order{}, fmt.Errorf("failed to decode order items: %w", err)
		}
		order.Status = entities.OrderStatus(status)

		return order, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan orders: %w", err)
	}

	return orders, nil
}
