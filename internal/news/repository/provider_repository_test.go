package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stock-news-aggregator/internal/entity"
	"stock-news-aggregator/internal/news/config"
	"stock-news-aggregator/internal/news/dto"
	"stock-news-aggregator/pkg/logger"

	"github.com/stretchr/testify/require"
)

func newTestProviderServer(t *testing.T, status int, items []dto.ProviderNewsItem, gotSymbol *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/news" {
			http.NotFound(w, r)
			return
		}
		if gotSymbol != nil {
			*gotSymbol = r.URL.Query().Get("symbol")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(dto.ProviderNewsResponse{Data: items})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestProviderRepository(baseURL string, enabled bool) *providerRepository {
	return NewProviderRepository(config.Provider{
		Enabled:             enabled,
		ID:                  "vnstock",
		Name:                "VNStock",
		BaseURL:             baseURL,
		MaxRequestPerMinute: 6000,
	}, time.Second, logger.NewNop()).(*providerRepository)
}

var providerItems = []dto.ProviderNewsItem{
	{Title: "Ngân hàng báo lãi lớn", URL: "https://provider.vn/1", PubDate: "2024-08-10 09:00:00"},
	{Title: "HPG và VCB dẫn dắt", Content: "Dòng tiền vào HPG", Summary: "ignored", URL: "https://provider.vn/2", PubDate: "2024-08-10T08:00:00+07:00"},
	{Title: "", URL: ""},
}

func TestProviderRepositoryUnavailable(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer srv.Close()

	for _, repo := range []*providerRepository{
		newTestProviderRepository(srv.URL, false),
		newTestProviderRepository("", true),
	} {
		articles, err := repo.Fetch(context.Background(), FetchOptions{Symbol: "VCB"})
		require.NoError(t, err)
		require.NotNil(t, articles)
		require.Empty(t, articles)
	}
	require.False(t, called)
}

func TestProviderRepositoryFetchScoped(t *testing.T) {
	var gotSymbol string
	srv := newTestProviderServer(t, http.StatusOK, providerItems, &gotSymbol)
	repo := newTestProviderRepository(srv.URL, true)

	articles, err := repo.Fetch(context.Background(), FetchOptions{Symbol: "vcb"})
	require.NoError(t, err)
	require.Equal(t, "VCB", gotSymbol)
	require.Len(t, articles, 2)

	first := articles[0]
	require.Equal(t, []string{"VCB"}, first.RelatedSymbols, "scope symbol is inserted when not detected")
	require.Equal(t, entity.CategoryStocks, first.Category)
	require.Equal(t, []string{"vnstock", "VCB"}, first.Tags)
	require.Equal(t, "VNStock", first.Source)
	require.True(t, time.Date(2024, 8, 10, 9, 0, 0, 0, time.UTC).Equal(first.PublishDate))

	second := articles[1]
	require.Equal(t, "Dòng tiền vào HPG", second.Summary, "content wins over summary")
	require.Equal(t, []string{"HPG", "VCB"}, second.RelatedSymbols, "detected scope symbol keeps its position")
	require.Equal(t, entity.CategoryStocks, second.Category)
}

func TestProviderRepositoryFetchUnscoped(t *testing.T) {
	var gotSymbol string
	srv := newTestProviderServer(t, http.StatusOK, providerItems, &gotSymbol)
	repo := newTestProviderRepository(srv.URL, true)

	articles, err := repo.Fetch(context.Background(), FetchOptions{Limit: 1})
	require.NoError(t, err)
	require.Empty(t, gotSymbol)
	require.Len(t, articles, 1)
	require.Empty(t, articles[0].RelatedSymbols)
	// "ngân hàng" triggers the economy rule
	require.Equal(t, entity.CategoryEconomy, articles[0].Category)
}

func TestProviderRepositoryFetchError(t *testing.T) {
	srv := newTestProviderServer(t, http.StatusBadGateway, nil, nil)
	repo := newTestProviderRepository(srv.URL, true)

	articles, err := repo.Fetch(context.Background(), FetchOptions{})
	require.True(t, errors.Is(err, ErrSourceUnavailable))
	require.Nil(t, articles)
}

func TestParseProviderDate(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
		ok   bool
	}{
		{raw: "2024-08-10T08:00:00Z", want: time.Date(2024, 8, 10, 8, 0, 0, 0, time.UTC), ok: true},
		{raw: "2024-08-10 08:00:00", want: time.Date(2024, 8, 10, 8, 0, 0, 0, time.UTC), ok: true},
		{raw: "2024-08-10", want: time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC), ok: true},
		{raw: "Sat, 10 Aug 2024 08:00:00 +0000", want: time.Date(2024, 8, 10, 8, 0, 0, 0, time.UTC), ok: true},
		{raw: "", ok: false},
		{raw: "yesterday", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := parseProviderDate(tt.raw)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.True(t, tt.want.Equal(got), "got %s", got)
			}
		})
	}
}
