package entity

import "time"

// Sentiment is the three-way label assigned to an article.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// IsValid reports whether s is one of the known labels.
func (s Sentiment) IsValid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// Category identifiers.
const (
	CategoryMarket        = "market"
	CategoryStocks        = "stocks"
	CategoryAnalysis      = "analysis"
	CategoryEconomy       = "economy"
	CategoryInternational = "international"
	CategoryCorporate     = "corporate"
)

// NewsArticle is a normalized news item coming from any source.
type NewsArticle struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Summary        string    `json:"summary"`
	Content        string    `json:"content,omitempty"`
	URL            string    `json:"url"`
	Source         string    `json:"source"`
	PublishDate    time.Time `json:"publish_date"`
	Category       string    `json:"category"`
	RelatedSymbols []string  `json:"related_symbols"`
	Sentiment      Sentiment `json:"sentiment"`
	ImpactScore    float64   `json:"impact_score"`
	Tags           []string  `json:"tags"`
}

// HasSymbol reports whether the article mentions any of symbols. Symbols must be upper-cased.
func (a NewsArticle) HasSymbol(symbols []string) bool {
	for _, related := range a.RelatedSymbols {
		for _, s := range symbols {
			if related == s {
				return true
			}
		}
	}
	return false
}

// NewsCategory describes one entry of the fixed category catalog.
type NewsCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewsCategories returns the fixed category catalog in display order.
func NewsCategories() []NewsCategory {
	return []NewsCategory{
		{ID: CategoryMarket, Name: "Thị trường", Description: "Tin tức thị trường chung"},
		{ID: CategoryStocks, Name: "Cổ phiếu", Description: "Tin tức về cổ phiếu cụ thể"},
		{ID: CategoryAnalysis, Name: "Phân tích", Description: "Phân tích kỹ thuật và cơ bản"},
		{ID: CategoryEconomy, Name: "Kinh tế", Description: "Tin tức kinh tế vĩ mô"},
		{ID: CategoryInternational, Name: "Quốc tế", Description: "Tin tức thị trường quốc tế"},
		{ID: CategoryCorporate, Name: "Doanh nghiệp", Description: "Tin tức doanh nghiệp"},
	}
}

// IsNewsCategory reports whether id belongs to the catalog.
func IsNewsCategory(id string) bool {
	for _, c := range NewsCategories() {
		if c.ID == id {
			return true
		}
	}
	return false
}
