package test_seeder

import (
	"context"
	"encoding/json"
	"fmt"

	"historyatlas/src/domain"
	"historyatlas/src/domain/entities"
)

// InsertDocuments grava os documentos na coleção, na ordem recebida.
func (ts TestSeeder) InsertDocuments(ctx context.Context, collection domain.Collection, documents ...any) {
	query := fmt.Sprintf(`INSERT INTO %s (id, document) VALUES ($1, $2)`, collection)

	for _, document := range documents {
		body, err := json.Marshal(document)
		if err != nil {
			panic(fmt.Sprintf("Seeder.InsertDocuments marshal failed: %v", err))
		}

		var head struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(body, &head); err != nil || head.ID == "" {
			panic(fmt.Sprintf("Seeder.InsertDocuments needs documents with an id: %s", body))
		}

		if _, err := ts.pool.Exec(ctx, query, head.ID, body); err != nil {
			panic(fmt.Sprintf("Seeder.InsertDocuments failed: %v", err))
		}
	}
}

// InsertUser grava o usuário com o hash informado no stub.
func (ts TestSeeder) InsertUser(ctx context.Context, user *entities.User) {
	query := `
		INSERT INTO users (id, name, email, password_hash, city, country, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := ts.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Location.City,
		user.Location.Country,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertUser failed: %v", err))
	}
}

func (ts TestSeeder) InsertOrder(ctx context.Context, order *entities.Order) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertOrder marshal failed: %v", err))
	}

	query := `
		INSERT INTO orders (id, user_id, items, total, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = ts.pool.Exec(ctx, query,
		order.ID,
		order.UserID,
		items,
		order.Total,
		string(order.Status),
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertOrder failed: %v", err))
	}
}
