package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/IBM/sarama"
)

// KafkaClient agrupa o producer síncrono e, quando há groupID, o consumer group.
type KafkaClient struct {
	consumer  sarama.ConsumerGroup
	producer  sarama.SyncProducer
	brokers   []string
	batchSize int
	logger    *slog.Logger
}

type Message struct {
	Key      string
	Value    []byte
	Headers  map[string]string
	internal *sarama.ConsumerMessage
}

// Handler recebe um lote. Erro encerra a sessão e o lote é relido a partir do último offset commitado.
type Handler func(ctx context.Context, messages []Message) error

const (
	defaultBatchTimeout = 2 * time.Second
	retryBackoff        = 5 * time.Second
)

func newConfig(batchSize int) *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V2_8_0_0

	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Consumer.Group.Session.Timeout = 30 * time.Second
	config.Consumer.Group.Heartbeat.Interval = 10 * time.Second
	config.Consumer.MaxProcessingTime = 60 * time.Second
	config.Consumer.MaxWaitTime = 100 * time.Millisecond
	config.ChannelBufferSize = batchSize * 2

	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1024 * 1024

	return config
}

// NewKafkaClient cria o producer e, se groupID não for vazio, o consumer group.
func NewKafkaClient(logger *slog.Logger, brokers string, groupID string, batchSize int) (*KafkaClient, error) {
	brokerList := strings.Split(brokers, ",")
	if batchSize <= 0 {
		batchSize = 1
	}
	config := newConfig(batchSize)

	producer, err := sarama.NewSyncProducer(brokerList, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	var consumer sarama.ConsumerGroup
	if groupID != "" {
		consumer, err = sarama.NewConsumerGroup(brokerList, groupID, config)
		if err != nil {
			producer.Close()
			return nil, fmt.Errorf("failed to create consumer group: %w", err)
		}
	}

	logger.Info("kafka client initialized", "brokers", brokerList, "group_id", groupID, "batch_size", batchSize)

	return &KafkaClient{
		consumer:  consumer,
		producer:  producer,
		brokers:   brokerList,
		batchSize: batchSize,
		logger:    logger,
	}, nil
}

// Consumer bloqueia consumindo o tópico até o contexto ser cancelado.
func (k *KafkaClient) Consumer(ctx context.Context, handler Handler, topic string) error {
	if k.consumer == nil {
		return errors.New("kafka client was created without a consumer group")
	}

	consumerHandler := &consumerGroupHandler{
		handler:      handler,
		batchSize:    k.batchSize,
		batchTimeout: defaultBatchTimeout,
		logger:       k.logger,
	}

	for {
		select {
		case <-ctx.Done():
			k.logger.Info("kafka consumer context cancelled", "topic", topic)
			return nil
		default:
		}

		err := k.consumer.Consume(ctx, []string{topic}, consumerHandler)
		if err != nil {
			k.logger.Error("error consuming from topic", "topic", topic, "error", err)
		}

		// Lote com falha: espera antes de reler os mesmos offsets
		if err != nil || consumerHandler.failed.Swap(false) {
			select {
			case <-ctx.Done():
			case <-time.After(retryBackoff):
			}
		}
	}
}

// Producer envia o lote e só retorna nil se todas as mensagens foram aceitas.
func (k *KafkaClient) Producer(messages []Message, topic string) error {
	if len(messages) == 0 {
		return nil
	}

	kafkaMessages := make([]*sarama.ProducerMessage, len(messages))
	for i, msg := range messages {
		headers := make([]sarama.RecordHeader, 0, len(msg.Headers))
		for key, value := range msg.Headers {
			headers = append(headers, sarama.RecordHeader{Key: []byte(key), Value: []byte(value)})
		}

		kafkaMessages[i] = &sarama.ProducerMessage{
			Topic:   topic,
			Key:     sarama.StringEncoder(msg.Key),
			Value:   sarama.ByteEncoder(msg.Value),
			Headers: headers,
		}
	}

	if err := k.producer.SendMessages(kafkaMessages); err != nil {
		var producerErrs sarama.ProducerErrors
		if errors.As(err, &producerErrs) {
			k.logger.Error("batch completed with errors", "topic", topic, "failed", len(producerErrs), "total", len(messages))
			return fmt.Errorf("batch send failed: %d/%d messages failed: %w", len(producerErrs), len(messages), err)
		}
		return fmt.Errorf("batch send failed: %w", err)
	}

	k.logger.Debug("batch sent", "topic", topic, "count", len(messages))
	return nil
}

func (k *KafkaClient) Close() error {
	var errs []error

	if k.consumer != nil {
		if err := k.consumer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close consumer: %w", err))
		}
	}

	if err := k.producer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close producer: %w", err))
	}

	return errors.Join(errs...)
}

// consumerGroupHandler implementa sarama.ConsumerGroupHandler.
// Só marca offsets de lotes processados; o primeiro lote com erro encerra a claim.
type consumerGroupHandler struct {
	handler      Handler
	batchSize    int
	batchTimeout time.Duration
	logger       *slog.Logger
	failed       atomic.Bool
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	h.logger.Info("kafka consumer group session setup", "batch_size", h.batchSize)
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	h.logger.Info("kafka consumer group session cleanup")
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	batchTimeout := h.batchTimeout
	if batchTimeout <= 0 {
		batchTimeout = defaultBatchTimeout
	}

	messages := make([]Message, 0, h.batchSize)
	timer := time.NewTimer(batchTimeout)
	defer timer.Stop()

	flush := func() error {
		if len(messages) == 0 {
			return nil
		}
		err := h.processBatch(session, messages)
		messages = messages[:0]
		return err
	}

	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return flush()
			}

			messages = append(messages, toMessage(message))

			if len(messages) >= h.batchSize {
				if err := flush(); err != nil {
					return err
				}
				timer.Reset(batchTimeout)
			}

		case <-timer.C:
			if err := flush(); err != nil {
				return err
			}
			timer.Reset(batchTimeout)

		case <-session.Context().Done():
			return flush()
		}
	}
}

func toMessage(message *sarama.ConsumerMessage) Message {
	headers := make(map[string]string, len(message.Headers))
	for _, header := range message.Headers {
		if header != nil {
			headers[string(header.Key)] = string(header.Value)
		}
	}

	return Message{
		Key:      string(message.Key),
		Value:    message.Value,
		Headers:  headers,
		internal: message,
	}
}

func (h *consumerGroupHandler) processBatch(session sarama.ConsumerGroupSession, messages []Message) error {
	if err := h.handler(session.Context(), messages); err != nil {
		// Nenhum offset do lote (nem posterior) é marcado
		h.failed.Store(true)
		h.logger.Error("handler error for batch", "count", len(messages), "error", err)
		return fmt.Errorf("kafka.processBatch - failed to handle %d messages: %w", len(messages), err)
	}

	for _, msg := range messages {
		if msg.internal != nil {
			session.MarkMessage(msg.internal, "")
		}
	}

	h.logger.Debug("batch processed", "count", len(messages))
	return nil
}
