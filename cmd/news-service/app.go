package main

import (
	"fmt"

	"stock-news-aggregator/internal/news/config"
	"stock-news-aggregator/internal/news/repository"
	"stock-news-aggregator/internal/news/service"
	"stock-news-aggregator/pkg/common"
	"stock-news-aggregator/pkg/logger"
	"stock-news-aggregator/pkg/redis"
)

// newsApp bundles the wired news pipeline and the resources it holds.
type newsApp struct {
	service service.NewsService
	closers []func() error
}

func (a *newsApp) Close() {
	for _, c := range a.closers {
		_ = c()
	}
}

func newNewsApp(cfg *config.Config, appLogger *logger.Logger) (*newsApp, error) {
	app := &newsApp{}

	store, err := newCacheStore(cfg, appLogger, app)
	if err != nil {
		return nil, err
	}

	var content repository.ContentRepository
	if cfg.News.Content.Enabled {
		content = repository.NewContentRepository(cfg.News.FetchTimeout, appLogger)
	}

	wrap := func(src repository.SourceRepository) repository.SourceRepository {
		if content != nil {
			src = repository.NewContentEnrichedRepository(src, content, cfg.News.Content.MaxArticles, appLogger)
		}
		if store != nil {
			src = repository.NewCachedRepository(src, store, appLogger)
		}
		return src
	}

	feeds := make([]repository.SourceRepository, 0, len(cfg.News.Feeds))
	for _, feed := range cfg.News.Feeds {
		feeds = append(feeds, wrap(repository.NewRSSRepository(feed, cfg.News.FetchTimeout, appLogger)))
	}
	provider := wrap(repository.NewProviderRepository(cfg.News.Provider, cfg.News.FetchTimeout, appLogger))

	appLogger.Info("News sources configured",
		logger.IntField("feeds", len(feeds)),
		logger.Field("provider_enabled", cfg.News.Provider.Available()),
		logger.StringField("cache_driver", cfg.News.Cache.Driver),
		logger.Field("content_enabled", cfg.News.Content.Enabled),
	)

	app.service = service.NewNewsService(feeds, provider, service.Options{
		SourceLimit:        cfg.News.SourceLimit,
		DefaultPageSize:    cfg.News.DefaultPageSize,
		MaxPageSize:        cfg.News.MaxPageSize,
		SymbolDefaultLimit: cfg.News.SymbolDefaultLimit,
	}, appLogger)
	return app, nil
}

func newCacheStore(cfg *config.Config, appLogger *logger.Logger, app *newsApp) (repository.CacheStore, error) {
	switch cfg.News.Cache.Driver {
	case common.CacheDriverNone:
		return nil, nil
	case common.CacheDriverMemory:
		return repository.NewMemoryCacheStore(cfg.News.Cache.TTL), nil
	case common.CacheDriverRedis:
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		app.closers = append(app.closers, redisClient.Close)
		return repository.NewRedisCacheStore(redisClient.Client, cfg.News.Cache.TTL, appLogger), nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.News.Cache.Driver)
	}
}
