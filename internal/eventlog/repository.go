package eventlog

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, event, page string, actorID int, actorRole, details string) error {
	query := `
		INSERT INTO event_logs (event, page, actor_id, actor_role, details)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query, event, page, actorID, actorRole, details)
	return err
}

// EvictOldest deletes everything but the newest rows. Re-evaluated on
// every write so burst inserts still collapse to the retained tail.
func (r *repository) EvictOldest(ctx context.Context) (int, error) {
	query := `
		DELETE FROM event_logs
		WHERE id IN (
			SELECT id FROM event_logs
			ORDER BY created_at DESC, id DESC
			OFFSET $1
		)
	`

	result, err := r.db.ExecContext(ctx, query, retainLimit)
	if err != nil {
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(rowsAffected), nil
}

func (r *repository) ListLatest(ctx context.Context, limit int) ([]Event, error) {
	query := `
		SELECT id, event, page, actor_id, actor_role, details, created_at
		FROM event_logs
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	var events []Event
	err := r.db.SelectContext(ctx, &events, query, limit)
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *repository) PageViews(ctx context.Context) ([]PageViewCount, error) {
	query := `
		SELECT page, COUNT(*) AS count
		FROM event_logs
		WHERE event = 'Page View'
		GROUP BY page
		ORDER BY count DESC
	`

	var counts []PageViewCount
	err := r.db.SelectContext(ctx, &counts, query)
	if err != nil {
		return nil, err
	}

	return counts, nil
}

func (r *repository) UserDistribution(ctx context.Context) ([]RoleCount, error) {
	query := `
		SELECT actor_role, COUNT(*) AS count
		FROM event_logs
		WHERE event IN ('Login', 'Register')
		GROUP BY actor_role
	`

	var counts []RoleCount
	err := r.db.SelectContext(ctx, &counts, query)
	if err != nil {
		return nil, err
	}

	return counts, nil
}
