package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"stock-news-aggregator/internal/entity"
	"stock-news-aggregator/internal/news/dto"
	"stock-news-aggregator/internal/news/service"
	"stock-news-aggregator/pkg/logger"
	"stock-news-aggregator/pkg/utils"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

// NewsHandler handles HTTP requests for news.
type NewsHandler struct {
	newsService service.NewsService
	logger      *logger.Logger
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(newsService service.NewsService, logger *logger.Logger) *NewsHandler {
	return &NewsHandler{newsService: newsService, logger: logger}
}

// RegisterRoutes registers the news routes to the Echo group.
func (h *NewsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetAllNews)
	g.GET("/categories", h.GetCategories)
	g.GET("/symbol/:symbol", h.GetNewsBySymbol)
	g.GET("/sources", h.GetSources)
	g.GET("/sources/:source", h.GetNewsFromSource)
}

// GetAllNews godoc
// @Summary List aggregated news
// @Description Aggregate news from every source, filter, sort newest first and paginate
// @Tags news
// @Produce  json
// @Param   category   query   string  false  "Category id"
// @Param   symbols    query   string  false  "Comma separated ticker symbols"
// @Param   sentiment  query   string  false  "positive, negative or neutral"
// @Param   from_date  query   string  false  "Lower bound, RFC3339 or YYYY-MM-DD"
// @Param   to_date    query   string  false  "Upper bound, RFC3339 or YYYY-MM-DD"
// @Param   limit      query   int     false  "Page size"
// @Param   page       query   int     false  "Page number"
// @Success 200 {object} dto.NewsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /news [get]
func (h *NewsHandler) GetAllNews(c echo.Context) error {
	var query dto.NewsQuery
	if err := c.Bind(&query); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
	}

	filter, err := toNewsFilter(query)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, h.newsService.GetAllNews(c.Request().Context(), filter))
}

// GetCategories godoc
// @Summary List news categories
// @Tags news
// @Produce  json
// @Success 200 {array} entity.NewsCategory
// @Router /news/categories [get]
func (h *NewsHandler) GetCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.newsService.GetCategories())
}

// GetNewsBySymbol godoc
// @Summary List news for one symbol
// @Description Provider news scoped to the symbol merged with aggregated news mentioning it, ranked by impact
// @Tags news
// @Produce  json
// @Param   symbol  path    string  true   "Ticker symbol"
// @Param   limit   query   int     false  "Maximum number of articles"
// @Success 200 {array} entity.NewsArticle
// @Failure 400 {object} dto.ErrorResponse
// @Router /news/symbol/{symbol} [get]
func (h *NewsHandler) GetNewsBySymbol(c echo.Context) error {
	symbol := strings.TrimSpace(c.Param("symbol"))
	if symbol == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Symbol is required"})
	}

	var query dto.SymbolNewsQuery
	if err := c.Bind(&query); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
	}

	return c.JSON(http.StatusOK, h.newsService.GetNewsBySymbol(c.Request().Context(), symbol, query.Limit))
}

// GetSources godoc
// @Summary List configured source ids
// @Tags news
// @Produce  json
// @Success 200 {array} string
// @Router /news/sources [get]
func (h *NewsHandler) GetSources(c echo.Context) error {
	return c.JSON(http.StatusOK, h.newsService.SourceIDs())
}

// GetNewsFromSource godoc
// @Summary List news of one source
// @Description Normalized articles of a single source, unsorted and not deduplicated
// @Tags news
// @Produce  json
// @Param   source  path    string  true   "Source id"
// @Param   limit   query   int     false  "Maximum number of articles"
// @Param   symbol  query   string  false  "Scope the source to a symbol when it supports it"
// @Success 200 {array} entity.NewsArticle
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /news/sources/{source} [get]
func (h *NewsHandler) GetNewsFromSource(c echo.Context) error {
	var query dto.SourceNewsQuery
	if err := c.Bind(&query); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
	}

	articles, err := h.newsService.GetFromSource(c.Request().Context(), c.Param("source"), query.Limit, query.Symbol)
	if err != nil {
		if errors.Is(err, service.ErrUnknownSource) {
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		}
		h.logger.ErrorContext(c.Request().Context(), "Failed to get source news", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get news"})
	}
	return c.JSON(http.StatusOK, articles)
}

func toNewsFilter(query dto.NewsQuery) (*dto.NewsFilter, error) {
	filter := &dto.NewsFilter{
		Category: strings.ToLower(strings.TrimSpace(query.Category)),
		Limit:    query.Limit,
		Page:     query.Page,
	}

	if filter.Category != "" && !entity.IsNewsCategory(filter.Category) {
		return nil, fmt.Errorf("unknown category %q", query.Category)
	}

	if s := strings.TrimSpace(query.Sentiment); s != "" {
		filter.Sentiment = entity.Sentiment(strings.ToLower(s))
		if !filter.Sentiment.IsValid() {
			return nil, fmt.Errorf("unknown sentiment %q", query.Sentiment)
		}
	}

	for _, s := range strings.Split(query.Symbols, ",") {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			filter.Symbols = append(filter.Symbols, s)
		}
	}
	filter.Symbols = utils.UniqueStrings(filter.Symbols)

	if query.FromDate != "" {
		from, _, err := parseDate(query.FromDate)
		if err != nil {
			return nil, fmt.Errorf("invalid from_date: %w", err)
		}
		filter.FromDate = &from
	}
	if query.ToDate != "" {
		to, dateOnly, err := parseDate(query.ToDate)
		if err != nil {
			return nil, fmt.Errorf("invalid to_date: %w", err)
		}
		if dateOnly {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		filter.ToDate = &to
	}

	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		return nil, errors.New("from_date is after to_date")
	}
	return filter, nil
}

// parseDate accepts RFC3339 or a bare UTC date and reports which one it got.
func parseDate(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("expected RFC3339 or %s, got %q", dateLayout, s)
	}
	return t, true, nil
}
