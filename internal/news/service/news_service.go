package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"stock-news-aggregator/internal/entity"
	"stock-news-aggregator/internal/news/dto"
	"stock-news-aggregator/internal/news/repository"
	"stock-news-aggregator/pkg/logger"
	"stock-news-aggregator/pkg/utils"
)

var (
	// ErrAggregationFailure is logged when the aggregation pipeline itself breaks.
	ErrAggregationFailure = errors.New("news aggregation failed")
	// ErrUnknownSource is returned for a source id that is not configured.
	ErrUnknownSource = errors.New("unknown news source")
)

// ErrorKindAggregationFailure is the error_kind log value for ErrAggregationFailure.
const ErrorKindAggregationFailure = "aggregation_failure"

// NewsService aggregates, filters and ranks news from every configured source.
type NewsService interface {
	GetAllNews(ctx context.Context, filter *dto.NewsFilter) *dto.NewsResponse
	GetCategories() []entity.NewsCategory
	GetNewsBySymbol(ctx context.Context, symbol string, limit int) []entity.NewsArticle
	GetFromSource(ctx context.Context, sourceID string, limit int, symbol string) ([]entity.NewsArticle, error)
	GetFromProvider(ctx context.Context, symbol string) []entity.NewsArticle
	SourceIDs() []string
}

// Options tunes the aggregation limits.
type Options struct {
	// SourceLimit caps every source during aggregation, independent of the page size.
	SourceLimit        int
	DefaultPageSize    int
	MaxPageSize        int
	SymbolDefaultLimit int
}

func (o Options) withDefaults() Options {
	if o.SourceLimit <= 0 {
		o.SourceLimit = 30
	}
	if o.DefaultPageSize <= 0 {
		o.DefaultPageSize = 20
	}
	if o.MaxPageSize < o.DefaultPageSize {
		o.MaxPageSize = max(100, o.DefaultPageSize)
	}
	if o.SymbolDefaultLimit <= 0 {
		o.SymbolDefaultLimit = 10
	}
	return o
}

// NewNewsService creates a NewsService. feeds are queried in the given order, then provider;
// that order decides which copy of a duplicated article is kept. provider may be nil.
func NewNewsService(feeds []repository.SourceRepository, provider repository.SourceRepository, opts Options, log *logger.Logger) NewsService {
	return &newsService{
		feeds:    feeds,
		provider: provider,
		opts:     opts.withDefaults(),
		logger:   log,
	}
}

type newsService struct {
	feeds    []repository.SourceRepository
	provider repository.SourceRepository
	opts     Options
	logger   *logger.Logger
}

// GetAllNews fetches every source, drops duplicates, filters, sorts newest first and returns
// the requested page. It never fails: a broken pipeline yields an empty response.
func (s *newsService) GetAllNews(ctx context.Context, filter *dto.NewsFilter) (resp *dto.NewsResponse) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "Failed to aggregate news",
				logger.StringField("error_kind", ErrorKindAggregationFailure),
				logger.ErrorField(fmt.Errorf("%w: %v", ErrAggregationFailure, r)),
			)
			resp = &dto.NewsResponse{Articles: []entity.NewsArticle{}, Total: 0, Page: 1, PerPage: s.opts.DefaultPageSize}
		}
	}()

	if filter == nil {
		filter = &dto.NewsFilter{}
	}
	page, perPage := s.pagination(filter)

	articles := dedupe(s.fetchAll(ctx))
	filtered := applyFilters(articles, filter)
	sortByRecency(filtered)

	s.logger.DebugContext(ctx, "Aggregated news",
		logger.IntField("unique", len(articles)),
		logger.IntField("filtered", len(filtered)),
		logger.IntField("page", page),
		logger.IntField("per_page", perPage),
	)

	return &dto.NewsResponse{
		Articles: paginate(filtered, page, perPage),
		Total:    len(filtered),
		Page:     page,
		PerPage:  perPage,
	}
}

// GetCategories returns the fixed category catalog.
func (s *newsService) GetCategories() []entity.NewsCategory {
	return entity.NewsCategories()
}

// GetNewsBySymbol merges provider news scoped to symbol with aggregated news mentioning it and
// ranks them by impact, then recency.
func (s *newsService) GetNewsBySymbol(ctx context.Context, symbol string, limit int) (articles []entity.NewsArticle) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "Failed to rank symbol news",
				logger.StringField("symbol", symbol),
				logger.StringField("error_kind", ErrorKindAggregationFailure),
				logger.ErrorField(fmt.Errorf("%w: %v", ErrAggregationFailure, r)),
			)
			articles = []entity.NewsArticle{}
		}
	}()

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return []entity.NewsArticle{}
	}
	if limit <= 0 {
		limit = s.opts.SymbolDefaultLimit
	}

	scoped := s.fetchSource(ctx, s.provider, repository.FetchOptions{Limit: s.opts.SourceLimit, Symbol: symbol})
	general := s.GetAllNews(ctx, &dto.NewsFilter{
		Symbols: []string{symbol},
		Limit:   s.opts.MaxPageSize,
		Page:    1,
	})

	merged := dedupe(append(scoped, general.Articles...))
	sortByImpact(merged)

	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// GetFromSource returns the raw normalized view of one configured source, optionally scoped to symbol.
func (s *newsService) GetFromSource(ctx context.Context, sourceID string, limit int, symbol string) ([]entity.NewsArticle, error) {
	if limit <= 0 {
		limit = s.opts.DefaultPageSize
	}
	for _, src := range s.sources() {
		if strings.EqualFold(src.ID(), sourceID) {
			return s.fetchSource(ctx, src, repository.FetchOptions{
				Limit:  limit,
				Symbol: strings.ToUpper(strings.TrimSpace(symbol)),
			}), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSource, sourceID)
}

// GetFromProvider returns provider news, optionally scoped to symbol.
func (s *newsService) GetFromProvider(ctx context.Context, symbol string) []entity.NewsArticle {
	return s.fetchSource(ctx, s.provider, repository.FetchOptions{
		Limit:  s.opts.SourceLimit,
		Symbol: strings.ToUpper(strings.TrimSpace(symbol)),
	})
}

// SourceIDs lists the configured sources in merge order.
func (s *newsService) SourceIDs() []string {
	sources := s.sources()
	ids := make([]string, 0, len(sources))
	for _, src := range sources {
		ids = append(ids, src.ID())
	}
	return ids
}

func (s *newsService) sources() []repository.SourceRepository {
	sources := make([]repository.SourceRepository, 0, len(s.feeds)+1)
	sources = append(sources, s.feeds...)
	if s.provider != nil {
		sources = append(sources, s.provider)
	}
	return sources
}

// fetchAll queries all sources concurrently and concatenates the results in source order.
func (s *newsService) fetchAll(ctx context.Context) []entity.NewsArticle {
	sources := s.sources()
	results := make([][]entity.NewsArticle, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		utils.GoSafe(s.logger, func() {
			defer wg.Done()
			results[i] = s.fetchSource(ctx, src, repository.FetchOptions{Limit: s.opts.SourceLimit})
		})
	}
	wg.Wait()

	var all []entity.NewsArticle
	for i, r := range results {
		s.logger.DebugContext(ctx, "Fetched news source",
			logger.StringField("source", sources[i].ID()),
			logger.IntField("count", len(r)),
		)
		all = append(all, r...)
	}
	return all
}

// fetchSource calls one source and absorbs its failure into an empty slice.
func (s *newsService) fetchSource(ctx context.Context, src repository.SourceRepository, opts repository.FetchOptions) (articles []entity.NewsArticle) {
	if src == nil {
		return []entity.NewsArticle{}
	}

	err := utils.SafeCall(func() error {
		var err error
		articles, err = src.Fetch(ctx, opts)
		return err
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to fetch news source",
			logger.StringField("source", src.ID()),
			logger.StringField("error_kind", repository.ErrorKindSourceUnavailable),
			logger.ErrorField(err),
		)
		return []entity.NewsArticle{}
	}
	if articles == nil {
		articles = []entity.NewsArticle{}
	}
	return articles
}

// pagination clamps page to >= 1 and the page size to [1, MaxPageSize], using the default
// page size when none was given.
func (s *newsService) pagination(filter *dto.NewsFilter) (int, int) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.Limit
	if perPage <= 0 {
		perPage = s.opts.DefaultPageSize
	}
	if perPage > s.opts.MaxPageSize {
		perPage = s.opts.MaxPageSize
	}
	return page, perPage
}

// dedupe keeps the first article of every id.
func dedupe(articles []entity.NewsArticle) []entity.NewsArticle {
	seen := make(map[string]struct{}, len(articles))
	unique := make([]entity.NewsArticle, 0, len(articles))
	for _, a := range articles {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		unique = append(unique, a)
	}
	return unique
}

func sortByRecency(articles []entity.NewsArticle) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishDate.After(articles[j].PublishDate)
	})
}

func sortByImpact(articles []entity.NewsArticle) {
	sort.SliceStable(articles, func(i, j int) bool {
		if articles[i].ImpactScore != articles[j].ImpactScore {
			return articles[i].ImpactScore > articles[j].ImpactScore
		}
		return articles[i].PublishDate.After(articles[j].PublishDate)
	})
}

// paginate returns one page. perPage must be >= 1; page may be arbitrarily large.
func paginate(articles []entity.NewsArticle, page, perPage int) []entity.NewsArticle {
	pages := (len(articles) + perPage - 1) / perPage
	if page-1 >= pages {
		return []entity.NewsArticle{}
	}
	offset := (page - 1) * perPage
	end := min(offset+perPage, len(articles))
	return articles[offset:end]
}
