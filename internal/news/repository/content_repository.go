package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"stock-news-aggregator/internal/entity"
	"stock-news-aggregator/pkg/common"
	"stock-news-aggregator/pkg/logger"
	"stock-news-aggregator/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
)

const maxContentBodyBytes = 2 << 20

// ContentRepository extracts the readable text of an article page.
type ContentRepository interface {
	Extract(ctx context.Context, url string) (string, error)
}

type contentRepository struct {
	client *http.Client
	logger *logger.Logger
}

// NewContentRepository creates a ContentRepository using a client with the given timeout.
func NewContentRepository(timeout time.Duration, log *logger.Logger) ContentRepository {
	return &contentRepository{
		client: &http.Client{Timeout: timeout},
		logger: log,
	}
}

func (r *contentRepository) Extract(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for article: %w", err)
	}
	req.Header.Set("User-Agent", common.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "vi-VN,vi;q=0.9,en-US;q=0.5")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch article, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxContentBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read article body: %w", err)
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse article: %w", err)
	}

	docHTML, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(doc.Content())))
	if err != nil {
		return "", fmt.Errorf("failed to parse article content: %w", err)
	}

	content := strings.Join(strings.Fields(docHTML.Text()), " ")
	return utils.CleanToValidUTF8(content), nil
}

type contentEnrichedRepository struct {
	next        SourceRepository
	content     ContentRepository
	maxArticles int
	logger      *logger.Logger
}

// NewContentEnrichedRepository fills Content for up to maxArticles articles returned by next.
// Extraction failures leave Content empty.
func NewContentEnrichedRepository(next SourceRepository, content ContentRepository, maxArticles int, log *logger.Logger) SourceRepository {
	return &contentEnrichedRepository{next: next, content: content, maxArticles: maxArticles, logger: log}
}

func (r *contentEnrichedRepository) ID() string {
	return r.next.ID()
}

func (r *contentEnrichedRepository) Name() string {
	return r.next.Name()
}

func (r *contentEnrichedRepository) Fetch(ctx context.Context, opts FetchOptions) ([]entity.NewsArticle, error) {
	articles, err := r.next.Fetch(ctx, opts)
	if err != nil {
		return nil, err
	}

	for i := range articles {
		if i >= r.maxArticles || !utils.ShouldContinue(ctx, r.logger) {
			break
		}
		if articles[i].Content != "" || articles[i].URL == "" {
			continue
		}
		content, err := r.content.Extract(ctx, articles[i].URL)
		if err != nil {
			r.logger.WarnContext(ctx, "Failed to extract article content",
				logger.StringField("source", r.next.ID()),
				logger.StringField("url", articles[i].URL),
				logger.ErrorField(err),
			)
			continue
		}
		articles[i].Content = content
	}
	return articles, nil
}
