package eventlog

import (
	"time"

	"gymdesk/internal/role"
)

// retainLimit is the number of rows the log keeps; older rows are
// evicted after every append.
const retainLimit = 20

type Event struct {
	ID        int       `db:"id" json:"id"`
	Event     string    `db:"event" json:"event"`
	Page      string    `db:"page" json:"page"`
	ActorID   int       `db:"actor_id" json:"actor_id"`
	ActorRole role.Role `db:"actor_role" json:"actor_role"`
	Details   string    `db:"details" json:"details"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type PageViewCount struct {
	Page  string `db:"page" json:"page"`
	Count int    `db:"count" json:"count"`
}

type RoleCount struct {
	Role  role.Role `db:"actor_role" json:"role"`
	Count int       `db:"count" json:"count"`
}

type AnalyticsResponse struct {
	PageViews        []PageViewCount `json:"page_views"`
	UserDistribution []RoleCount     `json:"user_distribution"`
	Events           []Event         `json:"events"`
}
