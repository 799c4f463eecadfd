package menu

import (
	"context"
	"encoding/json"
	"time"

	"tableside/internal/domain"
	"tableside/internal/logger"
)

const cacheKey = "menu:products"

// Cache is the small slice of Redis the menu needs.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type ServiceInterface interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int) (domain.Product, error)
}

type Service struct {
	repo  RepositoryInterface
	cache Cache
	ttl   time.Duration
	lg    *logger.Logger
}

func NewService(repo RepositoryInterface, cache Cache, ttl time.Duration, lg *logger.Logger) *Service {
	return &Service{repo: repo, cache: cache, ttl: ttl, lg: lg}
}

// ListProducts serves the menu from cache when possible. Every device
// polls the menu on screen entry, so the list is worth keeping hot; cache
// trouble degrades to a database read and is only logged.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil && data != "" {
			var products []domain.Product
			if json.Unmarshal([]byte(data), &products) == nil {
				return products, nil
			}
		}
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(products); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(data), s.ttl); err != nil {
				s.lg.Error("menu_cache_set_failed", "", err, nil)
			}
		}
	}
	return products, nil
}

// GetProduct resolves a single product for cart additions. Reads through
// the cached list first to spare the database the per-tap lookup.
func (s *Service) GetProduct(ctx context.Context, id int) (domain.Product, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil && data != "" {
			var products []domain.Product
			if json.Unmarshal([]byte(data), &products) == nil {
				for _, p := range products {
					if p.ID == id {
						return p, nil
					}
				}
			}
		}
	}
	return s.repo.GetProduct(ctx, id)
}
