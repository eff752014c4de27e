package dto

import (
	"time"

	"stock-news-aggregator/internal/entity"
)

// NewsFilter narrows down the aggregated article list. Zero-valued fields are not applied.
type NewsFilter struct {
	Category  string
	Symbols   []string
	Sentiment entity.Sentiment
	FromDate  *time.Time
	ToDate    *time.Time
	Limit     int
	Page      int
}

// NewsResponse is one page of filtered articles.
type NewsResponse struct {
	Articles []entity.NewsArticle `json:"articles"`
	Total    int                  `json:"total"`
	Page     int                  `json:"page"`
	PerPage  int                  `json:"per_page"`
}

// NewsQuery binds the query string of GET /news.
type NewsQuery struct {
	Category  string `query:"category"`
	Symbols   string `query:"symbols"`
	Sentiment string `query:"sentiment"`
	FromDate  string `query:"from_date"`
	ToDate    string `query:"to_date"`
	Limit     int    `query:"limit"`
	Page      int    `query:"page"`
}

// SymbolNewsQuery binds the query string of GET /news/symbol/:symbol.
type SymbolNewsQuery struct {
	Limit int `query:"limit"`
}

// SourceNewsQuery binds the query string of GET /news/sources/:source.
type SourceNewsQuery struct {
	Limit  int    `query:"limit"`
	Symbol string `query:"symbol"`
}

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}
