package debezium

import "encoding/json"

// Operações emitidas pelo Debezium
const (
	OpCreate = "c"
	OpUpdate = "u"
	OpDelete = "d"
	OpRead   = "r" // snapshot
)

// ChangeEvent é o envelope de mudança de uma linha (ou documento, no conector MongoDB).
// Before/After ficam crus: o conector MongoDB os envia como string com JSON dentro.
type ChangeEvent struct {
	Before    json.RawMessage `json:"before"`
	After     json.RawMessage `json:"after"`
	Source    Source          `json:"source"`
	Operation string          `json:"op"`
	TsMs      int64           `json:"ts_ms"`
}

type Source struct {
	Version    string `json:"version"`
	Connector  string `json:"connector"`
	Name       string `json:"name"`
	TsMs       int64  `json:"ts_ms"`
	Snapshot   string `json:"snapshot"`
	DB         string `json:"db"`
	Schema     string `json:"schema"`
	Table      string `json:"table"`
	Collection string `json:"collection"`
}

// Target é a tabela (conectores relacionais) ou a coleção (MongoDB) de origem.
func (s Source) Target() string {
	if s.Collection != "" {
		return s.Collection
	}
	return s.Table
}
