package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"stock-news-aggregator/internal/entity"
	"stock-news-aggregator/internal/news/config"
	"stock-news-aggregator/pkg/common"
	"stock-news-aggregator/pkg/logger"
	"stock-news-aggregator/pkg/utils"

	"github.com/mmcdole/gofeed"
)

type rssRepository struct {
	source  sourceInfo
	url     string
	parser  *gofeed.Parser
	timeout time.Duration
	logger  *logger.Logger
	now     func() time.Time
}

// NewRSSRepository creates a SourceRepository reading the given RSS feed.
func NewRSSRepository(feed config.Feed, timeout time.Duration, log *logger.Logger) SourceRepository {
	parser := gofeed.NewParser()
	parser.UserAgent = common.UserAgent
	parser.Client = &http.Client{Timeout: timeout}

	return &rssRepository{
		source: sourceInfo{
			ID:              feed.ID,
			Name:            feed.Name,
			StripHTML:       feed.StripHTML,
			CategoryMapping: feed.CategoryMapping,
		},
		url:     feed.URL,
		parser:  parser,
		timeout: timeout,
		logger:  log,
		now:     time.Now,
	}
}

func (r *rssRepository) ID() string {
	return r.source.ID
}

func (r *rssRepository) Name() string {
	return r.source.Name
}

// Fetch parses the feed and normalizes at most opts.Limit entries. A feed-level failure is
// returned as ErrSourceUnavailable; malformed entries are logged and skipped.
func (r *rssRepository) Fetch(ctx context.Context, opts FetchOptions) ([]entity.NewsArticle, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	feed, err := r.parser.ParseURLWithContext(r.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s feed: %v", ErrSourceUnavailable, r.source.ID, err)
	}

	items := feed.Items
	if opts.Limit > 0 && len(items) > opts.Limit {
		items = items[:opts.Limit]
	}

	articles := make([]entity.NewsArticle, 0, len(items))
	for i, item := range items {
		var article entity.NewsArticle
		err := utils.SafeCall(func() error {
			var err error
			article, err = r.normalize(item)
			return err
		})
		if err != nil {
			r.logger.WarnContext(ctx, "Skipping malformed feed entry",
				logger.StringField("source", r.source.ID),
				logger.IntField("index", i),
				logger.StringField("error_kind", ErrorKindEntryMalformed),
				logger.ErrorField(err),
			)
			continue
		}
		articles = append(articles, article)
	}

	r.logger.InfoContext(ctx, "Retrieved articles from feed",
		logger.StringField("source", r.source.ID),
		logger.IntField("count", len(articles)),
	)
	return articles, nil
}

func (r *rssRepository) normalize(item *gofeed.Item) (entity.NewsArticle, error) {
	if item == nil {
		return entity.NewsArticle{}, fmt.Errorf("%w: nil feed item", ErrEntryMalformed)
	}

	summary := item.Description
	if strings.TrimSpace(summary) == "" {
		summary = item.Content
	}

	return buildArticle(r.source, rawEntry{
		Title:       item.Title,
		Summary:     summary,
		URL:         item.Link,
		PublishDate: resolvePublishDate(item, r.now()),
		Categories:  item.Categories,
	}, "")
}

// resolvePublishDate prefers the parsed timestamp, then an RFC-822 parse of the raw string,
// then now.
func resolvePublishDate(item *gofeed.Item, now time.Time) time.Time {
	if item.PublishedParsed != nil && !item.PublishedParsed.IsZero() {
		return *item.PublishedParsed
	}
	if raw := strings.TrimSpace(item.Published); raw != "" {
		if t, err := mail.ParseDate(raw); err == nil {
			return t
		}
	}
	return now
}
