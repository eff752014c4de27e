package analyzer

import (
	"strings"

	"stock-news-aggregator/internal/entity"
)

type categoryRule struct {
	category string
	keywords []string
}

// categoryRules are evaluated in order; the first rule with a matching keyword wins.
var categoryRules = []categoryRule{
	{entity.CategoryStocks, []string{"cổ phiếu", "mã", "ticker", "niêm yết"}},
	{entity.CategoryMarket, []string{"thị trường", "chỉ số", "vnindex", "hnx", "upcom"}},
	{entity.CategoryAnalysis, []string{"phân tích", "dự báo", "khuyến nghị", "đánh giá"}},
	{entity.CategoryCorporate, []string{"doanh nghiệp", "công ty", "cổ đông", "ban điều hành"}},
	{entity.CategoryEconomy, []string{"kinh tế", "gdp", "lạm phát", "lãi suất", "ngân hàng"}},
}

// Categorize picks the category of an article from its text. When no rule matches it returns
// fallback, or "market" when fallback is empty.
func Categorize(title, summary, fallback string) string {
	text := strings.ToLower(title + " " + summary)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.category
			}
		}
	}
	if fallback != "" {
		return fallback
	}
	return entity.CategoryMarket
}
