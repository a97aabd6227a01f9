package fakes

import (
	"context"
	"sync"
)

// Cache é um cache em memória com contadores, no lugar do Redis.
type Cache struct {
	mu          sync.Mutex
	values      map[string]string
	versions    map[string]int64
	Gets        int
	Sets        int
	Skipped     int
	GetErr      error
	SetErr      error
	Invalidated []string
}

func NewCache() *Cache {
	return &Cache{values: map[string]string{}, versions: map[string]int64{}}
}

func (c *Cache) GetKey(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Gets++
	if c.GetErr != nil {
		return "", false, c.GetErr
	}

	value, found := c.values[key]
	return value, found, nil
}

func (c *Cache) Version(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.GetErr != nil {
		return 0, c.GetErr
	}
	return c.versions[key], nil
}

func (c *Cache) SetKeyAtVersion(_ context.Context, key string, value string, version int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Sets++
	if c.SetErr != nil {
		return false, c.SetErr
	}
	if c.versions[key] != version {
		c.Skipped++
		return false, nil
	}

	c.values[key] = value
	return true, nil
}

func (c *Cache) InvalidateKeys(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		c.versions[key]++
		delete(c.values, key)
		c.Invalidated = append(c.Invalidated, key)
	}
	return nil
}

// Value devolve o conteúdo atual de uma chave.
func (c *Cache) Value(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, found := c.values[key]
	return value, found
}

func (c *Cache) SkippedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Skipped
}

func (c *Cache) SetCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Sets
}
