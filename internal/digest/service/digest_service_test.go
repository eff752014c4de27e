package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"stock-news-aggregator/internal/entity"
	"stock-news-aggregator/internal/news/config"
	"stock-news-aggregator/internal/news/dto"
	"stock-news-aggregator/pkg/logger"

	"github.com/stretchr/testify/require"
)

type stubNewsService struct {
	symbolCalls []string
	filters     []*dto.NewsFilter
}

func (s *stubNewsService) GetAllNews(_ context.Context, filter *dto.NewsFilter) *dto.NewsResponse {
	s.filters = append(s.filters, filter)
	return &dto.NewsResponse{Articles: []entity.NewsArticle{{ID: "h1", Title: "Thị trường mở cửa"}}, Total: 1, Page: 1, PerPage: filter.Limit}
}

func (s *stubNewsService) GetCategories() []entity.NewsCategory { return entity.NewsCategories() }

func (s *stubNewsService) GetNewsBySymbol(_ context.Context, symbol string, _ int) []entity.NewsArticle {
	s.symbolCalls = append(s.symbolCalls, symbol)
	return []entity.NewsArticle{{ID: "s1", Title: "VCB tăng mạnh", RelatedSymbols: []string{"VCB"}}}
}

func (s *stubNewsService) GetFromSource(context.Context, string, int, string) ([]entity.NewsArticle, error) {
	return nil, nil
}

func (s *stubNewsService) GetFromProvider(context.Context, string) []entity.NewsArticle { return nil }

func (s *stubNewsService) SourceIDs() []string { return nil }

type recordingNotifier struct {
	sent [][]string
	err  error
}

func (n *recordingNotifier) SendMessage(text string) error {
	return n.SendMessages([]string{text})
}

func (n *recordingNotifier) SendMessages(texts []string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, texts)
	return nil
}

func TestNewDigestService_InvalidCron(t *testing.T) {
	_, err := NewDigestService(&stubNewsService{}, &recordingNotifier{},
		[]config.DigestSchedule{{Cron: "every morning"}}, time.Minute, logger.NewNop())

	require.Error(t, err)
	require.Contains(t, err.Error(), "every morning")
}

func TestProcessDue_FiresOnSchedule(t *testing.T) {
	news := &stubNewsService{}
	notifier := &recordingNotifier{}
	svc, err := NewDigestService(news, notifier,
		[]config.DigestSchedule{{Cron: "0 8 * * *", Symbol: "VCB", Limit: 5}}, time.Minute, logger.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	day := func(d, h, m int) time.Time { return time.Date(2024, 8, d, h, m, 0, 0, time.Local) }

	svc.ProcessDue(ctx, day(10, 7, 58))
	svc.ProcessDue(ctx, day(10, 7, 59))
	require.Empty(t, notifier.sent)

	svc.ProcessDue(ctx, day(10, 8, 0))
	require.Len(t, notifier.sent, 1)
	require.Equal(t, []string{"VCB"}, news.symbolCalls)
	require.Contains(t, notifier.sent[0][0], "VCB tăng mạnh")

	svc.ProcessDue(ctx, day(10, 8, 1))
	svc.ProcessDue(ctx, day(11, 7, 59))
	require.Len(t, notifier.sent, 1)

	svc.ProcessDue(ctx, day(11, 8, 0))
	require.Len(t, notifier.sent, 2)
}

func TestProcessDue_FailureDoesNotStopSchedule(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("telegram down")}
	svc, err := NewDigestService(&stubNewsService{}, notifier,
		[]config.DigestSchedule{{Cron: "@hourly"}}, time.Minute, logger.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	start := time.Date(2024, 8, 10, 9, 30, 0, 0, time.Local)
	svc.ProcessDue(ctx, start)
	svc.ProcessDue(ctx, start.Add(30*time.Minute))

	notifier.err = nil
	svc.ProcessDue(ctx, start.Add(time.Hour))
	require.Len(t, notifier.sent, 0)

	svc.ProcessDue(ctx, start.Add(90*time.Minute))
	require.Len(t, notifier.sent, 1)
}

func TestBuild(t *testing.T) {
	news := &stubNewsService{}
	svc, err := NewDigestService(news, &recordingNotifier{}, nil, 0, logger.NewNop())
	require.NoError(t, err)

	headlines := svc.Build(context.Background(), "", 0)
	require.Len(t, headlines, 1)
	require.Contains(t, headlines[0], "Thị trường mở cửa")
	require.Len(t, news.filters, 1)
	require.Equal(t, 10, news.filters[0].Limit)
	require.Equal(t, 1, news.filters[0].Page)

	symbol := svc.Build(context.Background(), "VCB", 3)
	require.Contains(t, symbol[0], "Tin tức VCB")
}

func TestSend(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, err := NewDigestService(&stubNewsService{}, notifier, nil, time.Minute, logger.NewNop())
	require.NoError(t, err)

	require.NoError(t, svc.Send(context.Background(), "VCB", 5))
	require.Len(t, notifier.sent, 1)

	notifier.err = errors.New("blocked")
	require.ErrorIs(t, svc.Send(context.Background(), "VCB", 5), notifier.err)
}
