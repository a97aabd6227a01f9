package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient guarda cada valor num hash {data, cached_at} com TTL.
// Um único endereço usa um cliente simples; vários endereços, um cliente de cluster.
type RedisClient struct {
	client     redis.UniversalClient
	defaultTTL time.Duration
	prefix     string
}

func NewRedisClient(addrs string, poolSize int, defaultTTL time.Duration) *RedisClient {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: strings.Split(addrs, ","),

		PoolSize:     poolSize,
		MinIdleConns: 2,

		MaxRedirects: 3,

		// Timeouts curtos: cache lento não pode segurar a leitura
		DialTimeout:  5 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,

		MaxRetries:      3,
		MinRetryBackoff: 50 * time.Millisecond,
		MaxRetryBackoff: 500 * time.Millisecond,
	})

	return &RedisClient{
		client:     client,
		defaultTTL: defaultTTL,
	}
}

// WithPrefix isola as chaves (ex: "test:") sem alterar o cliente original.
func (rc *RedisClient) WithPrefix(prefix string) *RedisClient {
	return &RedisClient{
		client:     rc.client,
		defaultTTL: rc.defaultTTL,
		prefix:     prefix,
	}
}

// key usa hash tag para que o valor e a sua versão fiquem no mesmo slot do cluster.
func (rc *RedisClient) key(key string) string {
	return rc.prefix + "{" + key + "}"
}

func (rc *RedisClient) versionKey(key string) string {
	return rc.key(key) + ":version"
}

func (rc *RedisClient) writeValue(ctx context.Context, pipe redis.Pipeliner, key string, value string) {
	fields := map[string]interface{}{
		"data":      value,
		"cached_at": time.Now().Unix(),
	}

	pipe.HSet(ctx, rc.key(key), fields)
	pipe.Expire(ctx, rc.key(key), rc.defaultTTL)
}

func (rc *RedisClient) SetKey(ctx context.Context, key string, value string) error {
	pipe := rc.client.TxPipeline()
	rc.writeValue(ctx, pipe, key, value)

	_, err := pipe.Exec(ctx)
	return err
}

// Version devolve o contador de invalidações da chave (0 se nunca invalidada).
func (rc *RedisClient) Version(ctx context.Context, key string) (int64, error) {
	version, err := rc.client.Get(ctx, rc.versionKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return version, err
}

// SetKeyAtVersion só grava se nenhuma invalidação aconteceu desde Version.
// Retorna false quando a versão mudou.
func (rc *RedisClient) SetKeyAtVersion(ctx context.Context, key string, value string, version int64) (bool, error) {
	versionKey := rc.versionKey(key)
	stored := false

	err := rc.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			rc.writeValue(ctx, pipe, key, value)
			return nil
		})
		stored = err == nil
		return err
	}, versionKey)

	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	return stored, err
}

func (rc *RedisClient) GetKey(ctx context.Context, key string) (string, bool, error) {
	result := rc.client.HGet(ctx, rc.key(key), "data")

	// Cache miss
	if result.Err() == redis.Nil {
		return "", false, nil
	}
	if result.Err() != nil {
		return "", false, result.Err()
	}

	return result.Val(), true, nil
}

// InvalidateKeys incrementa a versão e remove o valor, chave por chave: em cluster
// um DEL com várias chaves falha quando elas caem em slots diferentes.
func (rc *RedisClient) InvalidateKeys(ctx context.Context, keys ...string) error {
	var failures []string

	for _, key := range keys {
		pipe := rc.client.TxPipeline()
		pipe.Incr(ctx, rc.versionKey(key))
		pipe.Del(ctx, rc.key(key))

		if _, err := pipe.Exec(ctx); err != nil {
			failures = append(failures, fmt.Sprintf("key %s: %v", key, err))
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("invalidation errors: %s", strings.Join(failures, "; "))
	}

	return nil
}

// FlushByPrefix apaga todas as chaves do prefixo atual. Usado pelos testes.
func (rc *RedisClient) FlushByPrefix(ctx context.Context) error {
	if rc.prefix == "" {
		return fmt.Errorf("refusing to flush without a prefix")
	}

	iter := rc.client.Scan(ctx, 0, rc.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := rc.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (rc *RedisClient) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

func (rc *RedisClient) Close() error {
	return rc.client.Close()
}
