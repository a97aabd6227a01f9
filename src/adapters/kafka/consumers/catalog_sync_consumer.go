package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"historyatlas/src/domain"
	"historyatlas/src/infra/debezium"
	"historyatlas/src/infra/kafka"
)

type DocumentWriter interface {
	UpsertDocuments(ctx context.Context, collection domain.Collection, documents []domain.Document) error
	DeleteDocuments(ctx context.Context, collection domain.Collection, ids []string) error
}

type CacheInvalidator interface {
	Invalidate(ctx context.Context, collections ...domain.Collection) error
}

type MessageSource interface {
	Consumer(ctx context.Context, handler kafka.Handler, topic string) error
}

// CatalogSyncConsumer alimenta as coleções de leitura a partir do tópico de catálogo.
// Aceita mensagens {collection, documents} e eventos de CDC do Debezium.
type CatalogSyncConsumer struct {
	logger           *slog.Logger
	documentWriter   DocumentWriter
	cacheInvalidator CacheInvalidator
	serializer       *debezium.CDCSerializer
}

func NewCatalogSyncConsumer(
	logger *slog.Logger,
	documentWriter DocumentWriter,
	cacheInvalidator CacheInvalidator,
) *CatalogSyncConsumer {
	tables := make([]string, len(domain.CatalogCollections))
	for i, collection := range domain.CatalogCollections {
		tables[i] = string(collection)
	}

	return &CatalogSyncConsumer{
		logger:           logger,
		documentWriter:   documentWriter,
		cacheInvalidator: cacheInvalidator,
		serializer:       &debezium.CDCSerializer{IncludeTables: tables},
	}
}

func (c *CatalogSyncConsumer) Start(ctx context.Context, source MessageSource, topic string) error {
	c.logger.Info("Starting catalog sync consumer", "topic", topic)

	return source.Consumer(ctx, c.HandleMessages, topic)
}

// change é o estado final de um documento dentro do lote.
type change struct {
	document domain.Document
	deleted  bool
}

// batchChanges agrupa por coleção, na ordem de chegada, mantendo a última mudança de cada id.
type batchChanges struct {
	touched   []domain.Collection
	changes   map[domain.Collection][]change
	positions map[domain.Collection]map[string]int
}

func newBatchChanges() *batchChanges {
	return &batchChanges{
		changes:   map[domain.Collection][]change{},
		positions: map[domain.Collection]map[string]int{},
	}
}

func (b *batchChanges) add(collection domain.Collection, ch change) {
	if _, seen := b.positions[collection]; !seen {
		b.touched = append(b.touched, collection)
		b.positions[collection] = map[string]int{}
	}

	if position, exists := b.positions[collection][ch.document.ID]; exists {
		b.changes[collection][position] = ch
		return
	}
	b.positions[collection][ch.document.ID] = len(b.changes[collection])
	b.changes[collection] = append(b.changes[collection], ch)
}

// HandleMessages processa o lote inteiro ou nada: qualquer mensagem inválida
// devolve erro e nenhum offset é marcado.
func (c *CatalogSyncConsumer) HandleMessages(ctx context.Context, messages []kafka.Message) error {
	if len(messages) == 0 {
		return nil
	}

	c.logger.Info("Processing catalog batch", "count", len(messages))

	batch := newBatchChanges()
	for _, msg := range messages {
		var err error
		if debezium.LooksLikeChangeEvent(msg.Value) || len(msg.Value) == 0 {
			err = c.decodeChangeEvent(msg, batch)
		} else {
			err = c.decodeSyncMessage(msg, batch)
		}
		if err != nil {
			c.logger.Error("Invalid catalog message", "error", err, "key", msg.Key)
			return err
		}
	}

	for _, collection := range batch.touched {
		var (
			upserts []domain.Document
			deletes []string
		)
		for _, ch := range batch.changes[collection] {
			if ch.deleted {
				deletes = append(deletes, ch.document.ID)
			} else {
				upserts = append(upserts, ch.document)
			}
		}

		if len(upserts) > 0 {
			if err := c.documentWriter.UpsertDocuments(ctx, collection, upserts); err != nil {
				return fmt.Errorf("failed to upsert %s: %w", collection, err)
			}
		}
		if len(deletes) > 0 {
			if err := c.documentWriter.DeleteDocuments(ctx, collection, deletes); err != nil {
				return fmt.Errorf("failed to delete from %s: %w", collection, err)
			}
		}
	}

	if len(batch.touched) == 0 {
		return nil
	}

	if err := c.cacheInvalidator.Invalidate(ctx, batch.touched...); err != nil {
		return err
	}

	c.logger.Info("Catalog batch applied", "collections", batch.touched)

	return nil
}

func (c *CatalogSyncConsumer) decodeSyncMessage(msg kafka.Message, batch *batchChanges) error {
	var syncMessage domain.CatalogSyncMessage
	if err := json.Unmarshal(msg.Value, &syncMessage); err != nil {
		return fmt.Errorf("failed to unmarshal message with key %s: %w", msg.Key, err)
	}

	collection, err := domain.ParseCollection(syncMessage.Collection)
	if err != nil {
		return fmt.Errorf("invalid message with key %s: %w", msg.Key, err)
	}

	for _, body := range syncMessage.Documents {
		id, err := documentID(body)
		if err != nil {
			return fmt.Errorf("invalid document in message with key %s: %w", msg.Key, err)
		}
		batch.add(collection, change{document: domain.Document{ID: id, Body: body}})
	}
	return nil
}

func (c *CatalogSyncConsumer) decodeChangeEvent(msg kafka.Message, batch *batchChanges) error {
	event, err := c.serializer.ParseCDCEvent(msg.Value)
	if errors.Is(err, debezium.ErrTombstone) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("message with key %s: %w", msg.Key, err)
	}

	// Tópicos de CDC podem carregar outras tabelas do banco de origem
	if !c.serializer.IsTableMonitored(event.Source.Target()) {
		c.logger.Debug("Skipping CDC event for unmonitored table", "table", event.Source.Target())
		return nil
	}
	collection, err := domain.ParseCollection(event.Source.Target())
	if err != nil {
		return err
	}

	if event.IsDelete() {
		id, err := c.deletedID(event, msg)
		if err != nil {
			return err
		}
		batch.add(collection, change{document: domain.Document{ID: id}, deleted: true})
		return nil
	}

	row, err := event.Row()
	if err != nil {
		return fmt.Errorf("message with key %s: %w", msg.Key, err)
	}
	id, err := debezium.RowID(row)
	if err != nil {
		return fmt.Errorf("%w: message with key %s: %v", domain.ErrInvalidInput, msg.Key, err)
	}

	body, err := withID(row, id)
	if err != nil {
		return err
	}
	batch.add(collection, change{document: domain.Document{ID: id, Body: body}})
	return nil
}

// deletedID usa a imagem "before" e, na falta dela, a chave da mensagem.
func (c *CatalogSyncConsumer) deletedID(event *debezium.ChangeEvent, msg kafka.Message) (string, error) {
	if row, err := event.Row(); err == nil {
		if id, err := debezium.RowID(row); err == nil {
			return id, nil
		}
	}
	if id, err := debezium.RowID(json.RawMessage(msg.Key)); err == nil {
		return id, nil
	}
	if msg.Key != "" && !json.Valid([]byte(msg.Key)) {
		return msg.Key, nil
	}
	return "", fmt.Errorf("%w: delete event without id", domain.ErrInvalidInput)
}

// withID grava "id" como string no documento: o conector MongoDB só traz "_id"
// e tabelas relacionais podem ter id numérico.
func withID(row json.RawMessage, id string) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(row, &fields); err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(id)
	if err != nil {
		return nil, err
	}
	fields["id"] = encoded
	return json.Marshal(fields)
}

func documentID(body json.RawMessage) (string, error) {
	var head struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &head); err != nil {
		return "", fmt.Errorf("document is not a JSON object: %w", err)
	}
	if head.ID == "" {
		return "", fmt.Errorf("%w: document without id", domain.ErrInvalidInput)
	}
	return head.ID, nil
}
