package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"historyatlas/src/domain"
)

const cacheFillTimeout = 30 * time.Second

// Cache é o subconjunto do redis.RedisClient usado pelo repositório.
// Cada invalidação incrementa a versão da chave; o preenchimento só grava se a
// versão lida antes da consulta ao Postgres ainda for a atual.
type Cache interface {
	GetKey(ctx context.Context, key string) (string, bool, error)
	Version(ctx context.Context, key string) (int64, error)
	SetKeyAtVersion(ctx context.Context, key string, value string, version int64) (bool, error)
	InvalidateKeys(ctx context.Context, keys ...string) error
}

// CachedCatalogRepository guarda cada coleção inteira sob uma chave. Falhas de cache
// nunca falham a leitura: o Postgres é sempre a fonte da verdade.
type CachedCatalogRepository struct {
	catalogLists
	catalogRepository DocumentReader
	cache             Cache
	logger            *slog.Logger
}

// NewCachedCatalogRepository aceita cache nil: nesse caso as leituras vão direto ao banco.
func NewCachedCatalogRepository(logger *slog.Logger, catalogRepository DocumentReader, cache Cache) *CachedCatalogRepository {
	repository := &CachedCatalogRepository{
		catalogRepository: catalogRepository,
		cache:             cache,
		logger:            logger,
	}
	repository.catalogLists = catalogLists{reader: repository}
	return repository
}

func cacheKey(collection domain.Collection) string {
	return fmt.Sprintf("catalog:%s", collection)
}

func (r *CachedCatalogRepository) ListDocuments(ctx context.Context, collection domain.Collection) ([]json.RawMessage, error) {
	if r.cache == nil {
		return r.catalogRepository.ListDocuments(ctx, collection)
	}

	key := cacheKey(collection)

	documents, found, err := r.getFromCache(ctx, key)
	if found && err == nil {
		r.logger.Debug("cache hit", "key", key)
		return documents, nil
	}

	if err != nil {
		r.logger.Warn("cache error, falling back to postgres", "key", key, "error", err)
	}

	r.logger.Debug("cache miss", "key", key)

	version, versionErr := r.cache.Version(ctx, key)
	if versionErr != nil {
		r.logger.Warn("cache version unavailable, skipping fill", "key", key, "error", versionErr)
	}

	documents, err = r.catalogRepository.ListDocuments(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("postgres query failed: %w", err)
	}

	if versionErr == nil {
		go func() {
			ctxWithTimeout, cancel := context.WithTimeout(context.Background(), cacheFillTimeout)
			defer cancel()

			r.setInCache(ctxWithTimeout, key, version, documents)
		}()
	}

	return documents, nil
}

func (r *CachedCatalogRepository) getFromCache(ctx context.Context, key string) ([]json.RawMessage, bool, error) {
	cachedJSON, found, err := r.cache.GetKey(ctx, key)
	if !found || err != nil {
		return nil, found, err
	}

	var documents []json.RawMessage
	if err := json.Unmarshal([]byte(cachedJSON), &documents); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached data: %w", err)
	}

	return documents, true, nil
}

func (r *CachedCatalogRepository) setInCache(ctx context.Context, key string, version int64, documents []json.RawMessage) {
	if documents == nil {
		documents = []json.RawMessage{}
	}

	dataJSON, err := json.Marshal(documents)
	if err != nil {
		r.logger.Error("failed to marshal cache data", "key", key, "error", err)
		return
	}

	stored, err := r.cache.SetKeyAtVersion(ctx, key, string(dataJSON), version)
	if err != nil {
		r.logger.Error("failed to set cache", "key", key, "error", err)
		return
	}
	if !stored {
		r.logger.Debug("cache fill skipped, collection invalidated during the read", "key", key)
		return
	}

	r.logger.Debug("cache set", "key", key, "count", len(documents))
}

// Invalidate remove as coleções informadas do cache.
func (r *CachedCatalogRepository) Invalidate(ctx context.Context, collections ...domain.Collection) error {
	if r.cache == nil || len(collections) == 0 {
		return nil
	}

	keys := make([]string, len(collections))
	for i, collection := range collections {
		keys[i] = cacheKey(collection)
	}

	if err := r.cache.InvalidateKeys(ctx, keys...); err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}

	return nil
}
