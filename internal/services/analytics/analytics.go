// Package services содержит бизнес-логику выборки аналитики использования функций.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/feature-analytics/internal/lib/sl"
	"github.com/magabrotheeeer/feature-analytics/internal/models"
)

// MaxItems жёсткий предел числа записей в одном ответе.
const MaxItems = 1000

const cachePrefix = "analytics:"

// Repository описывает чтение записей использования функций.
type Repository interface {
	// FindFeatureUsage возвращает не более limit записей, подходящих под фильтр,
	// упорядоченных по дню и id.
	FindFeatureUsage(ctx context.Context, filter models.Filter, limit int) ([]models.FeatureUsage, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Recorder получает события обращения к кешу.
type Recorder interface {
	CacheHit()
	CacheMiss()
	CacheError()
}

// Service выполняет запросы аналитики с кешированием результатов.
type Service struct {
	repo     Repository
	cache    Cache
	ttl      time.Duration
	recorder Recorder
	log      *slog.Logger
}

// Option настраивает Service.
type Option func(*Service)

// WithCache включает кеширование результатов на ttl.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = cache
		s.ttl = ttl
	}
}

// WithRecorder подключает учёт попаданий в кеш.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// NewService создает новый экземпляр Service. Без WithCache кеш не используется.
func NewService(repo Repository, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		recorder: nopRecorder{},
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Query возвращает записи, удовлетворяющие фильтру, не более MaxItems штук.
// Ошибки кеша не прерывают запрос.
func (s *Service) Query(ctx context.Context, userID int, filter models.Filter) ([]models.FeatureUsage, error) {
	const op = "services.analytics.Query"
	log := s.log.With(slog.String("op", op), slog.Int("user_id", userID))

	key := cachePrefix + filter.Key()
	if s.cache != nil {
		if cached, ok := s.fromCache(ctx, log, key); ok {
			return cached, nil
		}
	}

	records, err := s.repo.FindFeatureUsage(ctx, filter, MaxItems)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if records == nil {
		records = []models.FeatureUsage{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, records, s.ttl); err != nil {
			log.Warn("failed to add to cache", slog.String("key", key), sl.Err(err))
		}
	}
	log.Debug("analytics loaded from storage", slog.Int("count", len(records)))

	return records, nil
}

func (s *Service) fromCache(ctx context.Context, log *slog.Logger, key string) ([]models.FeatureUsage, bool) {
	var cached []models.FeatureUsage
	found, err := s.cache.Get(ctx, key, &cached)
	switch {
	case err != nil:
		s.recorder.CacheError()
		log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
		return nil, false
	case !found || cached == nil:
		s.recorder.CacheMiss()
		return nil, false
	}
	s.recorder.CacheHit()
	log.Debug("analytics served from cache", slog.Int("count", len(cached)))
	return cached, true
}

type nopRecorder struct{}

func (nopRecorder) CacheHit()   {}
func (nopRecorder) CacheMiss()  {}
func (nopRecorder) CacheError() {}
