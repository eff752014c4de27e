package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"stock-news-aggregator/internal/news/config"
	"stock-news-aggregator/internal/news/dto"
	newsservice "stock-news-aggregator/internal/news/service"
	"stock-news-aggregator/pkg/logger"
	"stock-news-aggregator/pkg/telegram"

	"github.com/robfig/cron/v3"
)

const defaultDigestLimit = 10

// DigestService builds news digests and delivers them to Telegram, on demand or on a cron schedule.
type DigestService interface {
	Start(ctx context.Context)
	ProcessDue(ctx context.Context, now time.Time)
	Send(ctx context.Context, symbol string, limit int) error
	Build(ctx context.Context, symbol string, limit int) []string
}

type scheduledDigest struct {
	config.DigestSchedule
	schedule cron.Schedule
	next     time.Time
}

// NewDigestService creates a DigestService. Every cron expression is validated up front.
func NewDigestService(newsService newsservice.NewsService, notifier telegram.Notifier, schedules []config.DigestSchedule, pollingInterval time.Duration, log *logger.Logger) (DigestService, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

	jobs := make([]*scheduledDigest, 0, len(schedules))
	for _, s := range schedules {
		schedule, err := parser.Parse(s.Cron)
		if err != nil {
			return nil, fmt.Errorf("invalid digest cron %q: %w", s.Cron, err)
		}
		jobs = append(jobs, &scheduledDigest{DigestSchedule: s, schedule: schedule})
	}

	if pollingInterval <= 0 {
		pollingInterval = time.Minute
	}

	return &digestService{
		newsService:     newsService,
		notifier:        notifier,
		jobs:            jobs,
		pollingInterval: pollingInterval,
		logger:          log,
	}, nil
}

type digestService struct {
	newsService     newsservice.NewsService
	notifier        telegram.Notifier
	pollingInterval time.Duration
	logger          *logger.Logger

	mu   sync.Mutex
	jobs []*scheduledDigest
}

// Start polls the schedules until ctx is done.
func (s *digestService) Start(ctx context.Context) {
	ticker := time.NewTicker(s.pollingInterval)
	defer ticker.Stop()

	s.ProcessDue(ctx, time.Now())
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Digest scheduler stopping")
			return
		case now := <-ticker.C:
			s.ProcessDue(ctx, now)
		}
	}
}

// ProcessDue sends every digest whose next run is not after now. A schedule seen for the first
// time only gets its next run computed.
func (s *digestService) ProcessDue(ctx context.Context, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if job.next.IsZero() {
			job.next = job.schedule.Next(now)
			s.logger.Info("Digest scheduled",
				logger.StringField("cron", job.Cron),
				logger.StringField("symbol", job.Symbol),
				logger.Field("next_execution", job.next),
			)
			continue
		}
		if now.Before(job.next) {
			continue
		}

		if err := s.Send(ctx, job.Symbol, job.Limit); err != nil {
			s.logger.ErrorContext(ctx, "Failed to send scheduled digest",
				logger.StringField("cron", job.Cron),
				logger.StringField("symbol", job.Symbol),
				logger.ErrorField(err),
			)
		}
		job.next = job.schedule.Next(now)
	}
}

// Send builds a digest and delivers it.
func (s *digestService) Send(ctx context.Context, symbol string, limit int) error {
	messages := s.Build(ctx, symbol, limit)
	if err := s.notifier.SendMessages(messages); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Digest sent",
		logger.StringField("symbol", symbol),
		logger.IntField("messages", len(messages)),
	)
	return nil
}

// Build formats ranked symbol news, or the latest headlines when symbol is empty.
func (s *digestService) Build(ctx context.Context, symbol string, limit int) []string {
	if limit <= 0 {
		limit = defaultDigestLimit
	}
	if symbol != "" {
		return telegram.FormatSymbolNewsForTelegram(symbol, s.newsService.GetNewsBySymbol(ctx, symbol, limit))
	}
	resp := s.newsService.GetAllNews(ctx, &dto.NewsFilter{Limit: limit, Page: 1})
	return telegram.FormatHeadlinesForTelegram(resp.Articles)
}
