package domain

import (
	"encoding/json"
	"errors"
	"time"

	"historyatlas/src/domain/entities"

	"github.com/google/uuid"
)

var (
	ErrEntityNotFound = errors.New("entity not found")

	ErrUserNotFound = errors.New("user not found")

	ErrUserAlreadyExists = errors.New("User already exists")

	ErrInvalidCredentials = errors.New("Invalid credentials")

	ErrInvalidToken = errors.New("Invalid token")

	ErrInvalidInput = errors.New("invalid input")

	ErrUnknownCollection = errors.New("unknown collection")

	ErrUnavailableServer = errors.New("Oops, something unexpected happened. Please try again later.")
)

// ############################################################
// ################ COLEÇÕES DO CATÁLOGO ######################
// ############################################################

// Collection identifica uma coleção de leitura (somente leitura para a API).
type Collection string

const (
	CollectionRegions  Collection = "regions"
	CollectionRulers   Collection = "rulers"
	CollectionBattles  Collection = "battles"
	CollectionPeople   Collection = "people"
	CollectionPlaces   Collection = "places"
	CollectionProducts Collection = "products"
)

// CatalogCollections lista todas as coleções que podem ser sincronizadas e cacheadas.
var CatalogCollections = []Collection{
	CollectionRegions,
	CollectionRulers,
	CollectionBattles,
	CollectionPeople,
	CollectionPlaces,
	CollectionProducts,
}

func ParseCollection(name string) (Collection, error) {
	for _, collection := range CatalogCollections {
		if string(collection) == name {
			return collection, nil
		}
	}
	return "", ErrUnknownCollection
}

// Document é um registro cru de uma coleção: o id externo e o JSON original.
type Document struct {
	ID   string
	Body json.RawMessage
}

// ############################################################
// ################### AUTENTICAÇÃO ###########################
// ############################################################

// Session é o resultado de signup/login: token + perfil público.
type Session struct {
	Token string         `json:"token"`
	User  *entities.User `json:"user"`
}

// Claims extraídas de um token válido.
type Principal struct {
	UserID uuid.UUID
	Email  string
}

// ############################################################
// ################### EVENTOS DE DOMÍNIO #####################
// ############################################################

const EventTypeOrderCreated = "order.created"

// DomainEvent é o envelope publicado no Kafka.
type DomainEvent struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Key        string          `json:"-"`
	Data       json.RawMessage `json:"data"`
}

// CatalogSyncMessage é o schema das mensagens consumidas do tópico de catálogo.
type CatalogSyncMessage struct {
	Collection string            `json:"collection"`
	Documents  []json.RawMessage `json:"documents"`
}
