package test_seeder

import (
	"context"
	"encoding/json"
	"fmt"

	"historyatlas/src/domain"
)

// SelectDocumentIDs devolve os ids da coleção na ordem de inserção.
func (ts TestSeeder) SelectDocumentIDs(ctx context.Context, collection domain.Collection) ([]string, error) {
	rows, err := ts.pool.Query(ctx, fmt.Sprintf(`SELECT id FROM %s ORDER BY seq`, collection))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (ts TestSeeder) SelectDocument(ctx context.Context, collection domain.Collection, id string) (json.RawMessage, error) {
	var document []byte
	err := ts.pool.QueryRow(ctx, fmt.Sprintf(`SELECT document FROM %s WHERE id = $1`, collection), id).Scan(&document)
	return document, err
}

func (ts TestSeeder) CountOrders(ctx context.Context) (int, error) {
	var count int
	err := ts.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}
