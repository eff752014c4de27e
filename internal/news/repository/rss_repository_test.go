package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stock-news-aggregator/internal/entity"
	"stock-news-aggregator/internal/news/analyzer"
	"stock-news-aggregator/internal/news/config"
	"stock-news-aggregator/pkg/logger"

	"github.com/stretchr/testify/require"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>CafeF</title>
<item>
  <title>VCB tăng mạnh sau kết quả tích cực</title>
  <link>https://cafef.vn/vcb.chn</link>
  <description>Lợi nhuận tăng trưởng</description>
  <pubDate>Sat, 10 Aug 2024 10:00:00 +0700</pubDate>
</item>
<item>
  <title></title>
  <link></link>
  <description>orphan entry</description>
</item>
<item>
  <title>HPG niêm yết thêm cổ phiếu</title>
  <link>https://cafef.vn/hpg.chn</link>
  <description><![CDATA[<a href="https://cafef.vn/hpg.chn"><img src="hpg.jpg"></a></br>Cổ đông HPG &amp; VNM]]></description>
</item>
<item>
  <title>Thời tiết ngày mai</title>
  <link>https://cafef.vn/weather.chn</link>
  <category>quoc-te</category>
  <pubDate>Fri, 09 Aug 2024 08:30:00 +0700</pubDate>
</item>
</channel>
</rss>`

func newTestFeedServer(t *testing.T, body string, status int, delay time.Duration) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestRSSRepository(url string, timeout time.Duration, now time.Time) *rssRepository {
	repo := NewRSSRepository(config.Feed{
		ID:              "cafef",
		Name:            "CafeF",
		URL:             url,
		StripHTML:       true,
		CategoryMapping: map[string]string{"quoc-te": entity.CategoryInternational},
	}, timeout, logger.NewNop()).(*rssRepository)
	repo.now = func() time.Time { return now }
	return repo
}

func TestRSSRepositoryFetch(t *testing.T) {
	srv := newTestFeedServer(t, testFeed, http.StatusOK, 0)
	now := time.Date(2024, 8, 11, 12, 0, 0, 0, time.UTC)
	repo := newTestRSSRepository(srv.URL, time.Second, now)

	articles, err := repo.Fetch(context.Background(), FetchOptions{Limit: 10})
	require.NoError(t, err)
	require.Len(t, articles, 3, "the entry without title and link is skipped")

	vcb := articles[0]
	require.True(t, vcb.PublishDate.Equal(time.Date(2024, 8, 10, 3, 0, 0, 0, time.UTC)))
	require.Equal(t, analyzer.NewsID("VCB tăng mạnh sau kết quả tích cực", "https://cafef.vn/vcb.chn", vcb.PublishDate), vcb.ID)
	require.Equal(t, "CafeF", vcb.Source)
	require.Equal(t, []string{"VCB"}, vcb.RelatedSymbols)
	require.Equal(t, entity.SentimentPositive, vcb.Sentiment)
	require.Equal(t, float64(80), vcb.ImpactScore)
	require.Equal(t, entity.CategoryMarket, vcb.Category)
	require.Equal(t, []string{"cafef", "VCB"}, vcb.Tags)

	hpg := articles[1]
	require.Equal(t, "Cổ đông HPG & VNM", hpg.Summary)
	require.Equal(t, now, hpg.PublishDate, "missing pubDate falls back to fetch time")
	require.Equal(t, []string{"HPG", "VNM"}, hpg.RelatedSymbols)
	require.Equal(t, entity.CategoryStocks, hpg.Category)
	require.Equal(t, []string{"cafef", "HPG", "VNM"}, hpg.Tags)

	weather := articles[2]
	require.Equal(t, entity.CategoryInternational, weather.Category, "feed category mapping is the fallback")
	require.Equal(t, entity.SentimentNeutral, weather.Sentiment)
	require.Equal(t, float64(30), weather.ImpactScore)
	require.Equal(t, []string{"cafef"}, weather.Tags)
	require.Empty(t, weather.RelatedSymbols)
}

func TestRSSRepositoryFetchAppliesLimit(t *testing.T) {
	srv := newTestFeedServer(t, testFeed, http.StatusOK, 0)
	repo := newTestRSSRepository(srv.URL, time.Second, time.Now())

	articles, err := repo.Fetch(context.Background(), FetchOptions{Limit: 1})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	require.Equal(t, "https://cafef.vn/vcb.chn", articles[0].URL)
}

func TestRSSRepositoryFetchSourceUnavailable(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		delay   time.Duration
		timeout time.Duration
	}{
		{name: "server error", body: "boom", status: http.StatusInternalServerError, timeout: time.Second},
		{name: "not a feed", body: "<html><body>maintenance</body></html>", status: http.StatusOK, timeout: time.Second},
		{name: "timeout", body: testFeed, status: http.StatusOK, delay: 500 * time.Millisecond, timeout: 50 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestFeedServer(t, tt.body, tt.status, tt.delay)
			repo := newTestRSSRepository(srv.URL, tt.timeout, time.Now())

			articles, err := repo.Fetch(context.Background(), FetchOptions{Limit: 10})
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrSourceUnavailable))
			require.Empty(t, articles)
		})
	}
}
