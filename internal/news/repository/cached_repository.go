package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stock-news-aggregator/internal/entity"
	"stock-news-aggregator/pkg/common"
	"stock-news-aggregator/pkg/logger"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// CacheStore keeps the result of a source fetch for a fixed TTL.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]entity.NewsArticle, bool)
	Set(ctx context.Context, key string, articles []entity.NewsArticle)
}

type memoryCacheStore struct {
	cache *cache.Cache
}

// NewMemoryCacheStore creates an in-process CacheStore whose entries expire after ttl.
func NewMemoryCacheStore(ttl time.Duration) CacheStore {
	return &memoryCacheStore{cache: cache.New(ttl, 2*ttl)}
}

func (s *memoryCacheStore) Get(_ context.Context, key string) ([]entity.NewsArticle, bool) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}
	articles, ok := v.([]entity.NewsArticle)
	if !ok {
		return nil, false
	}
	return append([]entity.NewsArticle(nil), articles...), true
}

func (s *memoryCacheStore) Set(_ context.Context, key string, articles []entity.NewsArticle) {
	s.cache.SetDefault(key, append([]entity.NewsArticle(nil), articles...))
}

type redisCacheStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// NewRedisCacheStore creates a CacheStore shared between instances through Redis.
func NewRedisCacheStore(client *redis.Client, ttl time.Duration, log *logger.Logger) CacheStore {
	return &redisCacheStore{client: client, ttl: ttl, logger: log}
}

func (s *redisCacheStore) Get(ctx context.Context, key string) ([]entity.NewsArticle, bool) {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.WarnContext(ctx, "Failed to read news cache", logger.StringField("key", key), logger.ErrorField(err))
		}
		return nil, false
	}

	var articles []entity.NewsArticle
	if err := json.Unmarshal(raw, &articles); err != nil {
		s.logger.WarnContext(ctx, "Failed to decode news cache entry", logger.StringField("key", key), logger.ErrorField(err))
		return nil, false
	}
	return articles, true
}

func (s *redisCacheStore) Set(ctx context.Context, key string, articles []entity.NewsArticle) {
	raw, err := json.Marshal(articles)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to encode news cache entry", logger.StringField("key", key), logger.ErrorField(err))
		return
	}
	if err := s.client.Set(ctx, s.key(key), raw, s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "Failed to write news cache", logger.StringField("key", key), logger.ErrorField(err))
	}
}

func (s *redisCacheStore) key(key string) string {
	return common.RedisKeyNewsCache + ":" + key
}

type cachedRepository struct {
	next   SourceRepository
	store  CacheStore
	logger *logger.Logger
}

// NewCachedRepository puts store in front of next. Only successful non-empty fetches are
// cached; errors always reach the caller.
func NewCachedRepository(next SourceRepository, store CacheStore, log *logger.Logger) SourceRepository {
	return &cachedRepository{next: next, store: store, logger: log}
}

func (r *cachedRepository) ID() string {
	return r.next.ID()
}

func (r *cachedRepository) Name() string {
	return r.next.Name()
}

func (r *cachedRepository) Fetch(ctx context.Context, opts FetchOptions) ([]entity.NewsArticle, error) {
	key := cacheKey(r.next.ID(), opts)
	if articles, ok := r.store.Get(ctx, key); ok {
		r.logger.DebugContext(ctx, "News cache hit", logger.StringField("key", key), logger.IntField("count", len(articles)))
		return articles, nil
	}

	articles, err := r.next.Fetch(ctx, opts)
	if err != nil {
		return nil, err
	}
	if len(articles) > 0 {
		r.store.Set(ctx, key, articles)
	}
	return articles, nil
}

func cacheKey(sourceID string, opts FetchOptions) string {
	return fmt.Sprintf("%s:%s:%d", sourceID, opts.Symbol, opts.Limit)
}
