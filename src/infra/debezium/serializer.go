package debezium

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrTombstone marca a mensagem vazia que o Debezium envia depois de um delete.
var ErrTombstone = errors.New("tombstone message")

// CDCSerializer handles parsing and validation of CDC messages
type CDCSerializer struct {
	IncludeTables []string
}

// IsTableMonitored checks if table should be processed
func (s *CDCSerializer) IsTableMonitored(tableName string) bool {
	for _, included := range s.IncludeTables {
		if tableName == included {
			return true
		}
		// Prefixo com "*" (ex: "catalog_*")
		if strings.HasSuffix(included, "*") && strings.HasPrefix(tableName, strings.TrimSuffix(included, "*")) {
			return true
		}
	}
	return false
}

// LooksLikeChangeEvent diz se o valor tem cara de envelope Debezium, com ou sem schema.
func LooksLikeChangeEvent(value []byte) bool {
	var probe struct {
		Operation *string          `json:"op"`
		Payload   *json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(value, &probe); err != nil {
		return false
	}
	return probe.Operation != nil || probe.Payload != nil
}

// ParseCDCEvent deserializes Kafka message to CDC event
func (s *CDCSerializer) ParseCDCEvent(messageValue []byte) (*ChangeEvent, error) {
	if len(bytes.TrimSpace(messageValue)) == 0 || bytes.Equal(bytes.TrimSpace(messageValue), []byte("null")) {
		return nil, ErrTombstone
	}

	// JsonConverter com schemas.enable=true embrulha o evento em {"schema", "payload"}
	var envelope struct {
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(messageValue, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal CDC event: %w", err)
	}
	if len(envelope.Payload) > 0 && !bytes.Equal(envelope.Payload, []byte("null")) {
		messageValue = envelope.Payload
	}

	var event ChangeEvent
	if err := json.Unmarshal(messageValue, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal CDC event: %w", err)
	}

	if err := validateCDCEvent(&event); err != nil {
		return nil, fmt.Errorf("invalid CDC event: %w", err)
	}

	return &event, nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// validateCDCEvent performs basic validation on CDC event
func validateCDCEvent(event *ChangeEvent) error {
	if event.Source.Target() == "" {
		return fmt.Errorf("missing source table")
	}

	switch event.Operation {
	case OpCreate, OpUpdate, OpRead:
		if isAbsent(event.After) {
			return fmt.Errorf("missing 'after' data for operation %s", event.Operation)
		}
	case OpDelete:
		// O conector MongoDB pode mandar delete só com a chave; nesse caso o id vem do Key
		return nil
	case "":
		return fmt.Errorf("missing operation")
	default:
		return fmt.Errorf("invalid operation: %s", event.Operation)
	}

	return nil
}

// IsDelete reports whether the event removes the row.
func (e *ChangeEvent) IsDelete() bool {
	return e.Operation == OpDelete
}

// Row devolve o estado relevante como objeto JSON: After para c/u/r, Before para d.
func (e *ChangeEvent) Row() (json.RawMessage, error) {
	raw := e.After
	if e.IsDelete() {
		raw = e.Before
	}
	if isAbsent(raw) {
		return nil, fmt.Errorf("event for %s has no row data", e.Source.Target())
	}

	// Conector MongoDB: o documento chega como string contendo JSON estendido
	if raw[0] == '"' {
		var document string
		if err := json.Unmarshal(raw, &document); err != nil {
			return nil, fmt.Errorf("failed to unquote document: %w", err)
		}
		raw = json.RawMessage(document)
	}

	if !json.Valid(raw) {
		return nil, fmt.Errorf("row of %s is not valid JSON", e.Source.Target())
	}
	return raw, nil
}

// RowID extrai o identificador da linha: "id", ou "_id" (string, número ou {"$oid": ...}).
func RowID(row json.RawMessage) (string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(row, &fields); err != nil {
		return "", fmt.Errorf("row is not a JSON object: %w", err)
	}

	for _, key := range []string{"id", "_id"} {
		raw, ok := fields[key]
		if !ok || isAbsent(raw) {
			continue
		}
		if id := scalarID(raw); id != "" {
			return id, nil
		}
	}

	return "", fmt.Errorf("row without id")
}

func scalarID(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		// Chave do conector MongoDB: {"id": "{\"$oid\": \"...\"}"}
		if strings.HasPrefix(text, "{") {
			return scalarID(json.RawMessage(text))
		}
		return text
	}

	var number json.Number
	if err := json.Unmarshal(raw, &number); err == nil {
		return number.String()
	}

	var oid struct {
		OID string `json:"$oid"`
	}
	if err := json.Unmarshal(raw, &oid); err == nil {
		return oid.OID
	}

	return ""
}
