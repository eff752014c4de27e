package analyzer

import (
	"strings"

	"stock-news-aggregator/internal/entity"
)

const (
	neutralImpact = 30
	maxImpact     = 80
	impactPerHit  = 15
	impactBase    = 20
)

var positiveKeywords = []string{
	"tăng", "tích cực", "khả quan", "thành công", "phát triển", "lợi nhuận",
	"tăng trưởng", "cải thiện", "ký kết", "hợp tác", "đầu tư", "mở rộng",
	"thuận lợi", "hiệu quả", "ưu việt", "bứt phá", "đột phá",
}

var negativeKeywords = []string{
	"giảm", "sụt", "rớt", "mất", "thiệt hại", "khó khăn", "thách thức",
	"suy thoái", "lỗ", "âm", "giảm sút", "cạnh tranh", "rủi ro",
	"bất ổn", "lo ngại", "căng thẳng", "suy yếu", "khủng hoảng",
}

// ScoreSentiment labels title+summary by counting which keywords appear in it and derives a
// 0-100 impact score from the winning side's count. Each keyword counts at most once.
func ScoreSentiment(title, summary string) (entity.Sentiment, float64) {
	text := strings.ToLower(title + " " + summary)

	positive := countKeywords(text, positiveKeywords)
	negative := countKeywords(text, negativeKeywords)

	switch {
	case positive > negative:
		return entity.SentimentPositive, impactFor(positive)
	case negative > positive:
		return entity.SentimentNegative, impactFor(negative)
	default:
		return entity.SentimentNeutral, neutralImpact
	}
}

func countKeywords(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

func impactFor(hits int) float64 {
	return float64(min(maxImpact, hits*impactPerHit+impactBase))
}
