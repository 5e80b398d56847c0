package eventlog

import (
	"context"

	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"
	"gymdesk/internal/role"
)

type Service interface {
	// Record appends an event and trims the log to its retained tail.
	// Eviction failures are logged and swallowed: they must never fail
	// the write that triggered them.
	Record(ctx context.Context, event, page string, actorID int, actorRole role.Role, details string)
	Analytics(ctx context.Context) (*AnalyticsResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, event, page string, actorID int, actorRole role.Role, details string) {
	if err := s.repo.Insert(ctx, event, page, actorID, actorRole.String(), details); err != nil {
		logger.Error("Failed to record event", "event", event, "error", err)
		return
	}

	evicted, err := s.repo.EvictOldest(ctx)
	if err != nil {
		logger.Error("Event log eviction failed", "error", err)
		return
	}
	if evicted > 0 {
		metrics.RecordEventLogEvictions(evicted)
	}
}

func (s *service) Analytics(ctx context.Context) (*AnalyticsResponse, error) {
	pageViews, err := s.repo.PageViews(ctx)
	if err != nil {
		return nil, err
	}

	distribution, err := s.repo.UserDistribution(ctx)
	if err != nil {
		return nil, err
	}

	events, err := s.repo.ListLatest(ctx, retainLimit)
	if err != nil {
		return nil, err
	}

	return &AnalyticsResponse{
		PageViews:        pageViews,
		UserDistribution: distribution,
		Events:           events,
	}, nil
}
