package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"historyatlas/src/domain"
	"historyatlas/src/infra/kafka"

	"github.com/google/uuid"
)

const (
	sourceService = "historyatlas-api"
	schemaVersion = "v1"
)

// Producer é o lado de envio do kafka.KafkaClient.
type Producer interface {
	Producer(messages []kafka.Message, topic string) error
}

type DomainEventPublisher struct {
	logger   *slog.Logger
	producer Producer
	topic    string
}

func NewDomainEventPublisher(logger *slog.Logger, producer Producer, topic string) *DomainEventPublisher {
	return &DomainEventPublisher{
		logger:   logger,
		producer: producer,
		topic:    topic,
	}
}

// NewDomainEvent monta o envelope com id e horário novos. key define a partição.
func NewDomainEvent(eventType string, key string, data any) (domain.DomainEvent, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return domain.DomainEvent{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	return domain.DomainEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Key:        key,
		Data:       payload,
	}, nil
}

// PublishDomainEvents publica o lote inteiro ou falha.
func (p *DomainEventPublisher) PublishDomainEvents(ctx context.Context, events []domain.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	kafkaMessages := make([]kafka.Message, 0, len(events))

	for _, event := range events {
		eventBytes, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal domain event %s: %w", event.EventID, err)
		}

		kafkaMessages = append(kafkaMessages, kafka.Message{
			Key:     event.Key,
			Value:   eventBytes,
			Headers: p.createEventHeaders(event),
		})
	}

	if err := p.producer.Producer(kafkaMessages, p.topic); err != nil {
		p.logger.Error("failed to publish domain events to kafka",
			"error", err,
			"topic", p.topic,
			"events_count", len(kafkaMessages))
		return fmt.Errorf("failed to publish domain events to topic %s: %w", p.topic, err)
	}

	p.logger.Info("published domain events", "topic", p.topic, "events_count", len(kafkaMessages))

	return nil
}

// createEventHeaders permite filtrar eventos sem abrir o payload.
func (p *DomainEventPublisher) createEventHeaders(event domain.DomainEvent) map[string]string {
	return map[string]string{
		"event_type":     event.EventType,
		"event_id":       event.EventID,
		"source_service": sourceService,
		"schema_version": schemaVersion,
	}
}

func (p *DomainEventPublisher) PublishSingleEvent(ctx context.Context, event domain.DomainEvent) error {
	return p.PublishDomainEvents(ctx, []domain.DomainEvent{event})
}
