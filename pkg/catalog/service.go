// Package catalog owns the lifecycle of the product catalog snapshot and
// its retrieval index: load from the Postgres cache on first use, wholesale
// refresh from the store, explicit invalidation.
package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/cuvee/pkg/models"
	"github.com/Ramsey-B/cuvee/pkg/retrieval"
	"github.com/Ramsey-B/cuvee/pkg/tracing"
)

// Fetcher pulls the full product catalog from the store.
type Fetcher interface {
	FetchProducts(ctx context.Context) ([]models.CatalogProduct, error)
}

// Store caches catalog snapshots between restarts.
type Store interface {
	ReplaceAll(ctx context.Context, products []models.CatalogProduct) error
	ListAll(ctx context.Context) ([]models.CatalogProduct, error)
}

// Service provides the retrieval index for the current catalog snapshot.
type Service struct {
	fetcher Fetcher
	store   Store
	log     ectologger.Logger

	mu    sync.RWMutex
	index *retrieval.Index
	info  models.CatalogInfo
}

// NewService creates a new catalog service
func NewService(fetcher Fetcher, store Store, log ectologger.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		store:   store,
		log:     log,
	}
}

// Index returns the BM25 index for the current snapshot, loading the cached
// catalog from the store on first use. The returned index is immutable and
// shared between concurrent callers.
func (s *Service) Index(ctx context.Context) (*retrieval.Index, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.Service.Index")
	defer span.End()

	s.mu.RLock()
	if s.index != nil {
		index := s.index
		s.mu.RUnlock()
		return index, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index != nil {
		return s.index, nil
	}

	products, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	s.index = retrieval.NewIndex(products)
	s.info = snapshotInfo(products)
	s.log.WithContext(ctx).WithField("product_count", len(products)).Info("Loaded catalog snapshot from cache")

	return s.index, nil
}

// Refresh refetches the catalog from the store, replaces the cached
// snapshot and rebuilds the index. On failure the previous snapshot stays
// in place.
func (s *Service) Refresh(ctx context.Context) (models.CatalogInfo, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.Service.Refresh")
	defer span.End()

	products, err := s.fetcher.FetchProducts(ctx)
	if err != nil {
		return models.CatalogInfo{}, err
	}

	if err := s.store.ReplaceAll(ctx, products); err != nil {
		return models.CatalogInfo{}, err
	}

	info := models.CatalogInfo{
		ProductCount: len(products),
		RefreshedAt:  time.Now().UTC(),
	}

	s.mu.Lock()
	s.index = retrieval.NewIndex(products)
	s.info = info
	s.mu.Unlock()

	s.log.WithContext(ctx).WithField("product_count", len(products)).Info("Refreshed catalog snapshot")
	return info, nil
}

// Invalidate drops the in-memory index; the next Index call reloads the
// snapshot from the store.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.index = nil
	s.mu.Unlock()
}

// Info reports the currently loaded snapshot, loading it if necessary.
func (s *Service) Info(ctx context.Context) (models.CatalogInfo, error) {
	if _, err := s.Index(ctx); err != nil {
		return models.CatalogInfo{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info, nil
}

func snapshotInfo(products []models.CatalogProduct) models.CatalogInfo {
	info := models.CatalogInfo{ProductCount: len(products)}
	for _, p := range products {
		if p.RefreshedAt.After(info.RefreshedAt) {
			info.RefreshedAt = p.RefreshedAt
		}
	}
	return info
}
