package fakes

import (
	"context"
	"sync"

	"historyatlas/src/domain"
	"historyatlas/src/infra/kafka"
)

// Producer registra as mensagens enviadas por tópico.
type Producer struct {
	mu       sync.Mutex
	Messages map[string][]kafka.Message
	Err      error
}

func NewProducer() *Producer {
	return &Producer{Messages: map[string][]kafka.Message{}}
}

func (p *Producer) Producer(messages []kafka.Message, topic string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Err != nil {
		return p.Err
	}
	p.Messages[topic] = append(p.Messages[topic], messages...)
	return nil
}

// Publisher registra eventos de domínio publicados.
type Publisher struct {
	mu     sync.Mutex
	Events []domain.DomainEvent
	Err    error
}

func (p *Publisher) PublishSingleEvent(_ context.Context, event domain.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, event)
	return nil
}
