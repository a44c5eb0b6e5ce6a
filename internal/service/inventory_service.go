package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/pharmacy-service/internal/domain"
	"github.com/spec-kit/pharmacy-service/internal/repository"
)

const drugCachePrefix = "drug:"

// InventoryService fronts the drug repository with a read-through Redis
// cache. Cache failures degrade to repository reads; they never fail a
// request.
type InventoryService struct {
	drugs  repository.DrugRepository
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewInventoryService builds the service. cache may be nil.
func NewInventoryService(drugs repository.DrugRepository, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *InventoryService {
	return &InventoryService{drugs: drugs, cache: cache, ttl: ttl, logger: logger}
}

// GetDrug returns a drug, preferring the cache.
func (s *InventoryService) GetDrug(ctx context.Context, id string) (*domain.Drug, error) {
	if cached := s.fromCache(ctx, id); cached != nil {
		return cached, nil
	}

	drug, err := s.drugs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, drug)
	return drug, nil
}

// ListDrugs lists the catalog. Filtered lists bypass the cache.
func (s *InventoryService) ListDrugs(ctx context.Context, filter repository.DrugFilter) ([]domain.Drug, error) {
	return s.drugs.List(ctx, filter)
}

// CreateDrug persists a new drug and primes the cache.
func (s *InventoryService) CreateDrug(ctx context.Context, drug *domain.Drug) error {
	if err := s.drugs.Create(ctx, drug); err != nil {
		return err
	}
	s.toCache(ctx, drug)
	return nil
}

// UpdateDrug replaces a drug and invalidates its cache entry.
func (s *InventoryService) UpdateDrug(ctx context.Context, id string, drug *domain.Drug) error {
	if err := s.drugs.Update(ctx, id, drug); err != nil {
		return err
	}
	s.Invalidate(ctx, id)
	return nil
}

// DeleteDrug removes a drug and invalidates its cache entry.
func (s *InventoryService) DeleteDrug(ctx context.Context, id string) error {
	if err := s.drugs.Delete(ctx, id); err != nil {
		return err
	}
	s.Invalidate(ctx, id)
	return nil
}

// Invalidate drops the cache entry for a drug. Called by the order flow after
// stock adjustments.
func (s *InventoryService) Invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, drugCachePrefix+id).Err(); err != nil {
		s.logger.Debug("drug cache invalidation failed", zap.String("drug_id", id), zap.Error(err))
	}
}

func (s *InventoryService) fromCache(ctx context.Context, id string) *domain.Drug {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, drugCachePrefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debug("drug cache read failed", zap.String("drug_id", id), zap.Error(err))
		}
		return nil
	}
	var drug domain.Drug
	if err := json.Unmarshal(raw, &drug); err != nil {
		return nil
	}
	return &drug
}

func (s *InventoryService) toCache(ctx context.Context, drug *domain.Drug) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(drug)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, drugCachePrefix+drug.ID, raw, s.ttl).Err(); err != nil {
		s.logger.Debug("drug cache write failed", zap.String("drug_id", drug.ID), zap.Error(err))
	}
}
