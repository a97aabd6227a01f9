package orders

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"historyatlas/src/domain"
	"historyatlas/src/domain/entities"
	"historyatlas/src/services/events"

	"github.com/google/uuid"
)

type OrderRepository interface {
	Create(ctx context.Context, order entities.Order) (entities.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.Order, error)
}

type EventPublisher interface {
	PublishSingleEvent(ctx context.Context, event domain.DomainEvent) error
}

type OrderService struct {
	logger          *slog.Logger
	orderRepository OrderRepository
	publisher       EventPublisher
}

// NewOrderService aceita publisher nil: pedidos continuam funcionando sem Kafka.
func NewOrderService(logger *slog.Logger, orderRepository OrderRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		logger:          logger,
		orderRepository: orderRepository,
		publisher:       publisher,
	}
}

// Create grava o pedido já como "completed" com uma cópia dos itens do carrinho.
// O total declarado pelo cliente é mantido; divergência do subtotal só é logada.
func (svc *OrderService) Create(ctx context.Context, userID uuid.UUID, items []entities.LineItem, total float64) (entities.Order, error) {
	if len(items) == 0 {
		return entities.Order{}, fmt.Errorf("OrderService.Create - order without items: %w", domain.ErrInvalidInput)
	}
	if total < 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return entities.Order{}, fmt.Errorf("OrderService.Create - invalid total %v: %w", total, domain.ErrInvalidInput)
	}
	for _, item := range items {
		if item.ID == "" || item.Quantity <= 0 || item.Price < 0 {
			return entities.Order{}, fmt.Errorf("OrderService.Create - invalid line item %q: %w", item.ID, domain.ErrInvalidInput)
		}
	}

	if subtotal := entities.Subtotal(items); math.Abs(subtotal-total) >= 0.01 {
		svc.logger.Warn("order total differs from items subtotal",
			"user_id", userID,
			"declared_total", total,
			"subtotal", subtotal)
	}

	snapshot := make([]entities.LineItem, len(items))
	copy(snapshot, items)

	order, err := svc.orderRepository.Create(ctx, entities.Order{
		ID:     uuid.New(),
		UserID: userID,
		Items:  snapshot,
		Total:  total,
		Status: entities.OrderStatusCompleted,
	})
	if err != nil {
		return entities.Order{}, fmt.Errorf("OrderService.Create - failed to save order: %w", err)
	}

	svc.publishCreated(ctx, order)

	return order, nil
}

// publishCreated é best-effort: o pedido já está gravado.
func (svc *OrderService) publishCreated(ctx context.Context, order entities.Order) {
	if svc.publisher == nil {
		return
	}

	event, err := events.NewDomainEvent(domain.EventTypeOrderCreated, order.UserID.String(), order)
	if err != nil {
		svc.logger.Error("failed to build order event", "order_id", order.ID, "error", err)
		return
	}

	if err := svc.publisher.PublishSingleEvent(ctx, event); err != nil {
		svc.logger.Error("failed to publish order event", "order_id", order.ID, "error", err)
	}
}

func (svc *OrderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.Order, error) {
	orders, err := svc.orderRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("OrderService.ListByUser - failed to list orders for %s: %w", userID, err)
	}

	if orders == nil {
		orders = []entities.Order{}
	}

	return orders, nil
}
