package telegram

import (
	"fmt"
	"strings"

	"stock-news-aggregator/internal/entity"
	"stock-news-aggregator/pkg/utils"
)

const (
	maxMessageLen = 4090
	maxSummaryLen = 280
	dateFormat    = "02/01/2006 15:04"
)

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// FormatSymbolNewsForTelegram formats ranked news for one symbol into Markdown messages,
// each no longer than the Telegram limit.
func FormatSymbolNewsForTelegram(symbol string, articles []entity.NewsArticle) []string {
	symbol = strings.ToUpper(symbol)
	if len(articles) == 0 {
		return []string{fmt.Sprintf("Không có tin tức nào cho mã %s.", symbol)}
	}

	return formatParts(articles,
		fmt.Sprintf("📰 *Tin tức %s* 📰\n\n", symbol),
		func(part int) string {
			return fmt.Sprintf("---*Tin tức %s (phần %d)*---\n\n", symbol, part)
		},
	)
}

// FormatHeadlinesForTelegram formats the latest aggregated headlines into Markdown messages.
func FormatHeadlinesForTelegram(articles []entity.NewsArticle) []string {
	if len(articles) == 0 {
		return []string{"Không có tin tức mới."}
	}

	return formatParts(articles,
		"📰 *Tin tức thị trường* 📰\n\n",
		func(part int) string {
			return fmt.Sprintf("---*Tin tức thị trường (phần %d)*---\n\n", part)
		},
	)
}

func formatParts(articles []entity.NewsArticle, header string, continued func(part int) string) []string {
	var messages []string
	var current strings.Builder
	part := 1
	current.WriteString(header)

	for _, a := range articles {
		entry := formatArticle(a)
		if current.Len()+len(entry) > maxMessageLen {
			messages = append(messages, current.String())
			part++
			current.Reset()
			current.WriteString(continued(part))
		}
		current.WriteString(entry)
	}

	return append(messages, current.String())
}

func formatArticle(a entity.NewsArticle) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s *%s*\n", sentimentIcon(a.Sentiment), markdownEscaper.Replace(a.Title)))
	b.WriteString(fmt.Sprintf("🗂 %s | 🎯 Impact: %.0f | 🕒 %s\n", a.Source, a.ImpactScore, a.PublishDate.Format(dateFormat)))
	if len(a.RelatedSymbols) > 0 {
		b.WriteString(fmt.Sprintf("🏷 %s\n", strings.Join(a.RelatedSymbols, ", ")))
	}
	if a.Summary != "" {
		b.WriteString(markdownEscaper.Replace(utils.Truncate(a.Summary, maxSummaryLen)))
		b.WriteString("\n")
	}
	if a.URL != "" {
		b.WriteString(fmt.Sprintf("🔗 %s\n", a.URL))
	}
	b.WriteString("\n")

	return b.String()
}

func sentimentIcon(s entity.Sentiment) string {
	switch s {
	case entity.SentimentPositive:
		return "🟢"
	case entity.SentimentNegative:
		return "🔴"
	default:
		return "🟡"
	}
}
