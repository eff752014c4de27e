package service

import (
	"strings"

	"stock-news-aggregator/internal/entity"
	"stock-news-aggregator/internal/news/dto"
)

// applyFilters keeps the articles matching every filter that is set. Date bounds are inclusive.
func applyFilters(articles []entity.NewsArticle, filter *dto.NewsFilter) []entity.NewsArticle {
	if filter == nil {
		return articles
	}

	symbols := make([]string, 0, len(filter.Symbols))
	for _, s := range filter.Symbols {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			symbols = append(symbols, s)
		}
	}

	filtered := make([]entity.NewsArticle, 0, len(articles))
	for _, a := range articles {
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		if len(symbols) > 0 && !a.HasSymbol(symbols) {
			continue
		}
		if filter.Sentiment != "" && a.Sentiment != filter.Sentiment {
			continue
		}
		if filter.FromDate != nil && a.PublishDate.Before(*filter.FromDate) {
			continue
		}
		if filter.ToDate != nil && a.PublishDate.After(*filter.ToDate) {
			continue
		}
		filtered = append(filtered, a)
	}
	return filtered
}
