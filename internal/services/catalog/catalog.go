// Package services содержит бизнес-логику чтения каталога размещений
// с кешированием горячих объектов в redis.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magelanov/travel-booking/internal/models"
)

// CatalogRepository определяет методы чтения каталога из хранилища.
type CatalogRepository interface {
	// SearchCities ищет города по фрагменту названия.
	SearchCities(ctx context.Context, namePart string, limit int) ([]*models.City, error)
	// SearchCitiesNear возвращает города в радиусе от точки.
	SearchCitiesNear(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]*models.City, error)
	// ListStays возвращает размещения города с пагинацией.
	ListStays(ctx context.Context, cityID int64, limit, offset int) ([]*models.Stay, error)
	// GetStay возвращает размещение с номерным фондом.
	GetStay(ctx context.Context, id int64) (*models.Stay, error)
	// GetUnit возвращает номер по ID.
	GetUnit(ctx context.Context, id int64) (*models.Unit, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// CatalogService реализует чтение каталога. Каталог для бронирования
// доступен только на чтение, поэтому кеш не требует инвалидации при записи.
type CatalogService struct {
	repo  CatalogRepository
	cache Cache
	log   *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo CatalogRepository, cache Cache, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// SearchCities ищет города по фрагменту названия.
func (s *CatalogService) SearchCities(ctx context.Context, namePart string, limit int) ([]*models.City, error) {
	return s.repo.SearchCities(ctx, namePart, limit)
}

// SearchCitiesNear возвращает города в радиусе radiusKm от точки.
func (s *CatalogService) SearchCitiesNear(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]*models.City, error) {
	return s.repo.SearchCitiesNear(ctx, lat, lon, radiusKm, limit)
}

// ListStays возвращает размещения города с пагинацией.
func (s *CatalogService) ListStays(ctx context.Context, cityID int64, limit, offset int) ([]*models.Stay, error) {
	return s.repo.ListStays(ctx, cityID, limit, offset)
}

// GetStay возвращает размещение с номерами, используя кеш или репозиторий.
func (s *CatalogService) GetStay(ctx context.Context, id int64) (*models.Stay, error) {
	var result *models.Stay
	cacheKey := fmt.Sprintf("stay:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetStay(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache stay", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// GetUnit возвращает номер, используя кеш или репозиторий.
func (s *CatalogService) GetUnit(ctx context.Context, id int64) (*models.Unit, error) {
	var result *models.Unit
	cacheKey := fmt.Sprintf("unit:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetUnit(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache unit", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}
