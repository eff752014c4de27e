package repository

import (
	"fmt"
	"strings"
	"time"

	"stock-news-aggregator/internal/entity"
	"stock-news-aggregator/internal/news/analyzer"
	"stock-news-aggregator/pkg/utils"
)

const maxSymbolTags = 3

// sourceInfo is what normalization needs to know about the origin of an entry.
type sourceInfo struct {
	ID              string
	Name            string
	StripHTML       bool
	CategoryMapping map[string]string
}

// rawEntry is a source record before enrichment.
type rawEntry struct {
	Title       string
	Summary     string
	URL         string
	PublishDate time.Time
	Categories  []string
}

// buildArticle enriches a raw entry into a NewsArticle. A non-empty scopeSymbol pins that
// symbol at the front of RelatedSymbols and forces the stocks category.
func buildArticle(src sourceInfo, raw rawEntry, scopeSymbol string) (entity.NewsArticle, error) {
	title := utils.CleanToValidUTF8(raw.Title)
	link := strings.TrimSpace(raw.URL)
	if title == "" && link == "" {
		return entity.NewsArticle{}, fmt.Errorf("%w: entry has neither title nor link", ErrEntryMalformed)
	}
	if raw.PublishDate.IsZero() {
		return entity.NewsArticle{}, fmt.Errorf("%w: entry %q has no publish date", ErrEntryMalformed, title)
	}

	summary := utils.CleanToValidUTF8(raw.Summary)
	if src.StripHTML {
		summary = analyzer.StripHTML(summary)
	}

	symbols := analyzer.ExtractSymbols(title + " " + summary)
	scopeSymbol = strings.ToUpper(strings.TrimSpace(scopeSymbol))
	if scopeSymbol != "" && !utils.ContainsString(symbols, scopeSymbol) {
		symbols = append([]string{scopeSymbol}, symbols...)
	}

	sentiment, impact := analyzer.ScoreSentiment(title, summary)

	category := entity.CategoryStocks
	if scopeSymbol == "" {
		category = analyzer.Categorize(title, summary, src.fallbackCategory(raw.Categories))
	}

	tags := make([]string, 0, 1+maxSymbolTags)
	tags = append(tags, src.ID)
	tags = append(tags, symbols[:min(len(symbols), maxSymbolTags)]...)

	return entity.NewsArticle{
		ID:             analyzer.NewsID(title, link, raw.PublishDate),
		Title:          title,
		Summary:        summary,
		URL:            link,
		Source:         src.Name,
		PublishDate:    raw.PublishDate,
		Category:       category,
		RelatedSymbols: symbols,
		Sentiment:      sentiment,
		ImpactScore:    impact,
		Tags:           tags,
	}, nil
}

// fallbackCategory maps the first known feed category slug to a catalog category.
func (s sourceInfo) fallbackCategory(categories []string) string {
	if len(s.CategoryMapping) == 0 {
		return ""
	}
	for _, c := range categories {
		slug := strings.ToLower(strings.TrimSpace(c))
		if mapped, ok := s.CategoryMapping[slug]; ok && entity.IsNewsCategory(mapped) {
			return mapped
		}
	}
	return ""
}
