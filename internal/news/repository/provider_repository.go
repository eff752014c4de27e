package repository

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"stock-news-aggregator/internal/entity"
	"stock-news-aggregator/internal/news/config"
	"stock-news-aggregator/internal/news/dto"
	"stock-news-aggregator/pkg/common"
	"stock-news-aggregator/pkg/logger"
	"stock-news-aggregator/pkg/utils"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

var providerDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type providerRepository struct {
	cfg            config.Provider
	source         sourceInfo
	client         *resty.Client
	requestLimiter *rate.Limiter
	logger         *logger.Logger
	now            func() time.Time
}

// NewProviderRepository creates the SourceRepository for the news provider API. When the
// provider is disabled or has no base URL every Fetch returns an empty slice.
func NewProviderRepository(cfg config.Provider, timeout time.Duration, log *logger.Logger) SourceRepository {
	perMinute := cfg.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("User-Agent", common.UserAgent).
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		client.SetHeader("X-API-Key", cfg.APIKey)
	}

	return &providerRepository{
		cfg:            cfg,
		source:         sourceInfo{ID: cfg.ID, Name: cfg.Name},
		client:         client,
		requestLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
		logger:         log,
		now:            time.Now,
	}
}

func (r *providerRepository) ID() string {
	return r.source.ID
}

func (r *providerRepository) Name() string {
	return r.source.Name
}

// Fetch queries the provider, optionally scoped to opts.Symbol.
func (r *providerRepository) Fetch(ctx context.Context, opts FetchOptions) ([]entity.NewsArticle, error) {
	if !r.cfg.Available() {
		r.logger.DebugContext(ctx, "News provider not available, returning no articles", logger.StringField("source", r.source.ID))
		return []entity.NewsArticle{}, nil
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: wait for %s rate limit: %v", ErrSourceUnavailable, r.source.ID, err)
	}

	symbol := strings.ToUpper(strings.TrimSpace(opts.Symbol))

	req := r.client.R().
		SetContext(ctx).
		SetResult(&dto.ProviderNewsResponse{})
	if symbol != "" {
		req.SetQueryParam("symbol", symbol)
	}

	resp, err := req.Get("/news")
	if err != nil {
		return nil, fmt.Errorf("%w: request %s: %v", ErrSourceUnavailable, r.source.ID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrSourceUnavailable, r.source.ID, resp.StatusCode())
	}

	body, ok := resp.Result().(*dto.ProviderNewsResponse)
	if !ok || body == nil {
		return nil, fmt.Errorf("%w: %s returned an unreadable body", ErrSourceUnavailable, r.source.ID)
	}

	items := body.Data
	if opts.Limit > 0 && len(items) > opts.Limit {
		items = items[:opts.Limit]
	}

	articles := make([]entity.NewsArticle, 0, len(items))
	for i, item := range items {
		var article entity.NewsArticle
		err := utils.SafeCall(func() error {
			var err error
			article, err = r.normalize(item, symbol)
			return err
		})
		if err != nil {
			r.logger.WarnContext(ctx, "Skipping malformed provider entry",
				logger.StringField("source", r.source.ID),
				logger.IntField("index", i),
				logger.StringField("error_kind", ErrorKindEntryMalformed),
				logger.ErrorField(err),
			)
			continue
		}
		articles = append(articles, article)
	}

	r.logger.InfoContext(ctx, "Retrieved articles from provider",
		logger.StringField("source", r.source.ID),
		logger.StringField("symbol", symbol),
		logger.IntField("count", len(articles)),
	)
	return articles, nil
}

func (r *providerRepository) normalize(item dto.ProviderNewsItem, symbol string) (entity.NewsArticle, error) {
	summary := item.Content
	if strings.TrimSpace(summary) == "" {
		summary = item.Summary
	}

	publishDate, ok := parseProviderDate(item.PubDate)
	if !ok {
		publishDate = r.now()
	}

	return buildArticle(r.source, rawEntry{
		Title:       item.Title,
		Summary:     summary,
		URL:         item.URL,
		PublishDate: publishDate,
	}, symbol)
}

func parseProviderDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range providerDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	if t, err := mail.ParseDate(raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
