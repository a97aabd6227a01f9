package api

import (
	"context"

	"historyatlas/src/domain/entities"
	"historyatlas/src/timeline"

	"golang.org/x/sync/errgroup"
)

func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var values []T
	if err := c.Do(ctx, Request{Path: path}, &values); err != nil {
		return nil, err
	}
	if values == nil {
		values = []T{}
	}
	return values, nil
}

func (c *Client) Regions(ctx context.Context) ([]entities.Region, error) {
	return list[entities.Region](ctx, c, "/regions")
}

func (c *Client) Rulers(ctx context.Context) ([]entities.Ruler, error) {
	return list[entities.Ruler](ctx, c, "/rulers")
}

func (c *Client) Battles(ctx context.Context) ([]entities.Battle, error) {
	return list[entities.Battle](ctx, c, "/battles")
}

func (c *Client) People(ctx context.Context) ([]entities.Person, error) {
	return list[entities.Person](ctx, c, "/people")
}

func (c *Client) Places(ctx context.Context) ([]entities.Place, error) {
	return list[entities.Place](ctx, c, "/places")
}

func (c *Client) Products(ctx context.Context) ([]entities.Product, error) {
	return list[entities.Product](ctx, c, "/products")
}

func (c *Client) Timeline(ctx context.Context) ([]timeline.Item, error) {
	return list[timeline.Item](ctx, c, "/timeline")
}

// FetchHistory busca as quatro coleções em paralelo. Uma falha cancela as demais
// e nenhum dado parcial é devolvido.
func (c *Client) FetchHistory(ctx context.Context) (timeline.Collections, error) {
	var collections timeline.Collections

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		collections.Rulers, err = c.Rulers(gctx)
		return err
	})
	g.Go(func() (err error) {
		collections.Places, err = c.Places(gctx)
		return err
	})
	g.Go(func() (err error) {
		collections.Battles, err = c.Battles(gctx)
		return err
	})
	g.Go(func() (err error) {
		collections.People, err = c.People(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return timeline.Collections{}, err
	}
	return collections, nil
}
