package repository

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"stock-news-aggregator/internal/entity"
	"stock-news-aggregator/pkg/logger"

	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls    atomic.Int32
	articles []entity.NewsArticle
	err      error
}

func (s *countingSource) ID() string   { return "counting" }
func (s *countingSource) Name() string { return "Counting" }

func (s *countingSource) Fetch(_ context.Context, _ FetchOptions) ([]entity.NewsArticle, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return append([]entity.NewsArticle(nil), s.articles...), nil
}

func TestCachedRepositoryServesFromCache(t *testing.T) {
	src := &countingSource{articles: []entity.NewsArticle{{ID: "a"}, {ID: "b"}}}
	repo := NewCachedRepository(src, NewMemoryCacheStore(time.Minute), logger.NewNop())

	first, err := repo.Fetch(context.Background(), FetchOptions{Limit: 30})
	require.NoError(t, err)
	second, err := repo.Fetch(context.Background(), FetchOptions{Limit: 30})
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.EqualValues(t, 1, src.calls.Load())
	require.Equal(t, "counting", repo.ID())
}

func TestCachedRepositoryKeysByOptions(t *testing.T) {
	src := &countingSource{articles: []entity.NewsArticle{{ID: "a"}}}
	repo := NewCachedRepository(src, NewMemoryCacheStore(time.Minute), logger.NewNop())

	_, _ = repo.Fetch(context.Background(), FetchOptions{Limit: 30})
	_, _ = repo.Fetch(context.Background(), FetchOptions{Limit: 30, Symbol: "VCB"})
	_, _ = repo.Fetch(context.Background(), FetchOptions{Limit: 10})

	require.EqualValues(t, 3, src.calls.Load())
}

func TestCachedRepositoryExpires(t *testing.T) {
	src := &countingSource{articles: []entity.NewsArticle{{ID: "a"}}}
	repo := NewCachedRepository(src, NewMemoryCacheStore(20*time.Millisecond), logger.NewNop())

	_, _ = repo.Fetch(context.Background(), FetchOptions{})
	time.Sleep(40 * time.Millisecond)
	_, _ = repo.Fetch(context.Background(), FetchOptions{})

	require.EqualValues(t, 2, src.calls.Load())
}

func TestCachedRepositoryDoesNotCacheFailuresOrEmpty(t *testing.T) {
	failing := &countingSource{err: ErrSourceUnavailable}
	repo := NewCachedRepository(failing, NewMemoryCacheStore(time.Minute), logger.NewNop())

	for i := 0; i < 2; i++ {
		_, err := repo.Fetch(context.Background(), FetchOptions{})
		require.True(t, errors.Is(err, ErrSourceUnavailable))
	}
	require.EqualValues(t, 2, failing.calls.Load())

	empty := &countingSource{}
	repo = NewCachedRepository(empty, NewMemoryCacheStore(time.Minute), logger.NewNop())
	_, _ = repo.Fetch(context.Background(), FetchOptions{})
	_, _ = repo.Fetch(context.Background(), FetchOptions{})
	require.EqualValues(t, 2, empty.calls.Load())
}

func TestMemoryCacheStoreReturnsCopies(t *testing.T) {
	store := NewMemoryCacheStore(time.Minute)
	store.Set(context.Background(), "k", []entity.NewsArticle{{ID: "a"}})

	got, ok := store.Get(context.Background(), "k")
	require.True(t, ok)
	got[0].ID = "mutated"

	again, ok := store.Get(context.Background(), "k")
	require.True(t, ok)
	require.Equal(t, "a", again[0].ID)
}
