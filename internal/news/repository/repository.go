package repository

import (
	"context"
	"errors"

	"stock-news-aggregator/internal/entity"
)

var (
	// ErrSourceUnavailable means the whole source could not be read (network, status, parse).
	ErrSourceUnavailable = errors.New("news source unavailable")
	// ErrEntryMalformed means a single entry could not be normalized.
	ErrEntryMalformed = errors.New("news entry malformed")
)

// Values of the error_kind log field.
const (
	ErrorKindSourceUnavailable = "source_unavailable"
	ErrorKindEntryMalformed    = "entry_malformed"
)

// FetchOptions scopes one fetch. Limit <= 0 means no cap. Symbol is only honoured by sources
// that support single-symbol queries.
type FetchOptions struct {
	Limit  int
	Symbol string
}

// SourceRepository fetches and normalizes articles from one news source.
type SourceRepository interface {
	ID() string
	Name() string
	Fetch(ctx context.Context, opts FetchOptions) ([]entity.NewsArticle, error)
}
