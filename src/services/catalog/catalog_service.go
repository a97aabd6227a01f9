package catalog

import (
	"context"
	"fmt"

	"historyatlas/src/domain"
	"historyatlas/src/domain/entities"
	"historyatlas/src/timeline"

	"golang.org/x/sync/errgroup"
)

// CatalogReader é a superfície de leitura dos repositórios de catálogo.
type CatalogReader interface {
	ListRegions(ctx context.Context) ([]entities.Region, error)
	ListRulers(ctx context.Context) ([]entities.Ruler, error)
	ListBattles(ctx context.Context) ([]entities.Battle, error)
	ListPeople(ctx context.Context) ([]entities.Person, error)
	ListPlaces(ctx context.Context) ([]entities.Place, error)
	ListProducts(ctx context.Context) ([]entities.Product, error)
}

type CatalogService struct {
	catalogReader CatalogReader
}

func NewCatalogService(catalogReader CatalogReader) *CatalogService {
	return &CatalogService{catalogReader: catalogReader}
}

// List devolve a coleção inteira, sem paginação.
func (cs *CatalogService) List(ctx context.Context, collection domain.Collection) (any, error) {
	var (
		result any
		err    error
	)

	switch collection {
	case domain.CollectionRegions:
		regions, listErr := cs.catalogReader.ListRegions(ctx)
		result, err = orEmpty(regions), listErr
	case domain.CollectionRulers:
		rulers, listErr := cs.catalogReader.ListRulers(ctx)
		result, err = orEmpty(rulers), listErr
	case domain.CollectionBattles:
		battles, listErr := cs.catalogReader.ListBattles(ctx)
		result, err = orEmpty(battles), listErr
	case domain.CollectionPeople:
		people, listErr := cs.catalogReader.ListPeople(ctx)
		result, err = orEmpty(people), listErr
	case domain.CollectionPlaces:
		places, listErr := cs.catalogReader.ListPlaces(ctx)
		result, err = orEmpty(places), listErr
	case domain.CollectionProducts:
		products, listErr := cs.catalogReader.ListProducts(ctx)
		result, err = orEmpty(products), listErr
	default:
		return nil, fmt.Errorf("CatalogService.List - %q: %w", collection, domain.ErrUnknownCollection)
	}

	if err != nil {
		return nil, fmt.Errorf("CatalogService.List - failed to list %s: %w", collection, err)
	}

	return result, nil
}

// orEmpty garante que coleções vazias serializem como [] e não null.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// Collections carrega as quatro coleções da timeline em paralelo. Se qualquer uma
// falhar, o carregamento inteiro falha.
func (cs *CatalogService) Collections(ctx context.Context) (timeline.Collections, error) {
	var collections timeline.Collections

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		collections.Rulers, err = cs.catalogReader.ListRulers(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		collections.Places, err = cs.catalogReader.ListPlaces(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		collections.Battles, err = cs.catalogReader.ListBattles(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		collections.People, err = cs.catalogReader.ListPeople(groupCtx)
		return err
	})

	if err := group.Wait(); err != nil {
		return timeline.Collections{}, fmt.Errorf("CatalogService.Collections - failed to load timeline collections: %w", err)
	}

	return collections, nil
}

// Timeline monta o payload de /api/timeline.
func (cs *CatalogService) Timeline(ctx context.Context) ([]timeline.Item, error) {
	collections, err := cs.Collections(ctx)
	if err != nil {
		return nil, err
	}

	return timeline.ServerTimeline(collections), nil
}
