package eventlog

import "context"

type Repository interface {
	Insert(ctx context.Context, event, page string, actorID int, actorRole, details string) error
	EvictOldest(ctx context.Context) (int, error)
	ListLatest(ctx context.Context, limit int) ([]Event, error)
	PageViews(ctx context.Context) ([]PageViewCount, error)
	UserDistribution(ctx context.Context) ([]RoleCount, error)
}
