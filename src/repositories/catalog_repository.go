package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"historyatlas/src/domain"
	"historyatlas/src/domain/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentReader devolve os documentos crus de uma coleção, na ordem de inserção.
type DocumentReader interface {
	ListDocuments(ctx context.Context, collection domain.Collection) ([]json.RawMessage, error)
}

type CatalogRepository struct {
	catalogLists
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	repository := &CatalogRepository{pool: pool}
	repository.catalogLists = catalogLists{reader: repository}
	return repository
}

func (r *CatalogRepository) ListDocuments(ctx context.Context, collection domain.Collection) ([]json.RawMessage, error) {
	if _, err := domain.ParseCollection(string(collection)); err != nil {
		return nil, err
	}

	// O nome da tabela vem da lista fechada de coleções, nunca do request.
	query := fmt.Sprintf(`SELECT document FROM %s ORDER BY seq`, pgx.Identifier{string(collection)}.Sanitize())

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}

	documents, err := pgx.CollectRows(rows, pgx.RowTo[json.RawMessage])
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", collection, err)
	}

	return documents, nil
}

// UpsertDocuments grava (ou substitui) documentos por id. Documentos novos vão para
// o fim da ordem de inserção; os existentes mantêm a posição.
func (r *CatalogRepository) UpsertDocuments(ctx context.Context, collection domain.Collection, documents []domain.Document) error {
	if _, err := domain.ParseCollection(string(collection)); err != nil {
		return err
	}
	if len(documents) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, document)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE
		SET document = EXCLUDED.document, updated_at = now()`,
		pgx.Identifier{string(collection)}.Sanitize(),
	)

	batch := &pgx.Batch{}
	for _, document := range documents {
		batch.Queue(query, document.ID, []byte(document.Body))
	}

	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to upsert %d documents into %s: %w", len(documents), collection, err)
	}

	return nil
}

// DeleteDocuments remove documentos por id. Ids inexistentes são ignorados.
func (r *CatalogRepository) DeleteDocuments(ctx context.Context, collection domain.Collection, ids []string) error {
	if _, err := domain.ParseCollection(string(collection)); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ANY($1)`, pgx.Identifier{string(collection)}.Sanitize())

	if _, err := r.pool.Exec(ctx, query, ids); err != nil {
		return fmt.Errorf("failed to delete %d documents from %s: %w", len(ids), collection, err)
	}

	return nil
}

// catalogLists dá a qualquer DocumentReader a superfície tipada de leitura.
type catalogLists struct {
	reader DocumentReader
}

func listCollection[T any](ctx context.Context, reader DocumentReader, collection domain.Collection) ([]T, error) {
	documents, err := reader.ListDocuments(ctx, collection)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, len(documents))
	for _, document := range documents {
		var item T
		if err := json.Unmarshal(document, &item); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", collection, err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (c catalogLists) ListRegions(ctx context.Context) ([]entities.Region, error) {
	return listCollection[entities.Region](ctx, c.reader, domain.CollectionRegions)
}

func (c catalogLists) ListRulers(ctx context.Context) ([]entities.Ruler, error) {
	return listCollection[entities.Ruler](ctx, c.reader, domain.CollectionRulers)
}

func (c catalogLists) ListBattles(ctx context.Context) ([]entities.Battle, error) {
	return listCollection[entities.Battle](ctx, c.reader, domain.CollectionBattles)
}

func (c catalogLists) ListPeople(ctx context.Context) ([]entities.Person, error) {
	return listCollection[entities.Person](ctx, c.reader, domain.CollectionPeople)
}

func (c catalogLists) ListPlaces(ctx context.Context) ([]entities.Place, error) {
	return listCollection[entities.Place](ctx, c.reader, domain.CollectionPlaces)
}

func (c catalogLists) ListProducts(ctx context.Context) ([]entities.Product, error) {
	return listCollection[entities.Product](ctx, c.reader, domain.CollectionProducts)
}
