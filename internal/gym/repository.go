package gym

import (
	"context"
	"time"

	"gymdesk/internal/db"
	"gymdesk/internal/role"

	"github.com/jmoiron/sqlx"
)

const gymColumns = `id, owner_id, name, address, owner_name, owner_email, membership_plans, photos, created_at`

const requestColumns = `jr.id, jr.user_id, jr.user_role, jr.gym_id, jr.status, jr.membership_duration, jr.created_at,
	u.name AS user_name, u.email AS user_email`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListGyms(ctx context.Context) ([]Gym, error) {
	query := `SELECT ` + gymColumns + ` FROM gyms ORDER BY created_at DESC`

	gyms := []Gym{}
	err := r.db.SelectContext(ctx, &gyms, query)
	if err != nil {
		return nil, err
	}

	return gyms, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Gym, error) {
	query := `SELECT ` + gymColumns + ` FROM gyms WHERE id = $1`

	var g Gym
	err := r.db.GetContext(ctx, &g, query, id)
	if err != nil {
		return nil, err
	}

	return &g, nil
}

func (r *repository) FindByOwner(ctx context.Context, ownerID int) (*Gym, error) {
	query := `SELECT ` + gymColumns + ` FROM gyms WHERE owner_id = $1`

	var g Gym
	err := r.db.GetContext(ctx, &g, query, ownerID)
	if err != nil {
		return nil, err
	}

	return &g, nil
}

func (r *repository) Members(ctx context.Context, gymID int) ([]Person, error) {
	return r.people(ctx, gymID, "member")
}

func (r *repository) Trainers(ctx context.Context, gymID int) ([]Person, error) {
	return r.people(ctx, gymID, "trainer")
}

func (r *repository) people(ctx context.Context, gymID int, rl string) ([]Person, error) {
	query := `SELECT id, name, email FROM users WHERE gym_id = $1 AND role = $2 ORDER BY name ASC`

	people := []Person{}
	err := r.db.SelectContext(ctx, &people, query, gymID, rl)
	if err != nil {
		return nil, err
	}

	return people, nil
}

func (r *repository) UpdateProfile(ctx context.Context, gymID int, name, address, ownerName string, plans MembershipPlans) error {
	query := `
		UPDATE gyms
		SET name = $1, address = $2, owner_name = $3, membership_plans = $4
		WHERE id = $5`

	_, err := r.db.ExecContext(ctx, query, name, address, ownerName, plans, gymID)
	return err
}

func (r *repository) AddPhoto(ctx context.Context, gymID int, url string) error {
	query := `UPDATE gyms SET photos = array_append(photos, $1) WHERE id = $2`

	_, err := r.db.ExecContext(ctx, query, url, gymID)
	return err
}

func (r *repository) RemovePhoto(ctx context.Context, gymID int, url string) error {
	query := `UPDATE gyms SET photos = array_remove(photos, $1) WHERE id = $2`

	_, err := r.db.ExecContext(ctx, query, url, gymID)
	return err
}

// DeleteGym removes the gym and clears membership state for everyone
// attached to it in one transaction.
func (r *repository) DeleteGym(ctx context.Context, gymID int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE users
		SET gym_id = NULL, membership_duration = NULL, membership_start = NULL, membership_end = NULL
		WHERE gym_id = $1`, gymID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM gyms WHERE id = $1`, gymID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) GymIDOfUser(ctx context.Context, userID int) (*int, error) {
	var gymID *int
	err := r.db.GetContext(ctx, &gymID, `SELECT gym_id FROM users WHERE id = $1`, userID)
	if err != nil {
		return nil, err
	}

	return gymID, nil
}

func (r *repository) PendingRequestExists(ctx context.Context, userID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM join_requests WHERE user_id = $1 AND status = 'pending')`
	return db.Exists(ctx, r.db, query, userID)
}

func (r *repository) CreateJoinRequest(ctx context.Context, userID int, rl role.Role, gymID int, duration *string) (*JoinRequest, error) {
	query := `
		INSERT INTO join_requests (user_id, user_role, gym_id, membership_duration)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, user_role, gym_id, status, membership_duration, created_at`

	var req JoinRequest
	err := r.db.GetContext(ctx, &req, query, userID, rl.String(), gymID, duration)
	if err != nil {
		return nil, err
	}

	return &req, nil
}

func (r *repository) FindJoinRequest(ctx context.Context, id int) (*JoinRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM join_requests jr
		JOIN users u ON u.id = jr.user_id
		WHERE jr.id = $1`

	var req JoinRequest
	err := r.db.GetContext(ctx, &req, query, id)
	if err != nil {
		return nil, err
	}

	return &req, nil
}

func (r *repository) ListPendingRequests(ctx context.Context, gymID int, onlyRole *role.Role) ([]JoinRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM join_requests jr
		JOIN users u ON u.id = jr.user_id
		WHERE jr.gym_id = $1 AND jr.status = 'pending'`
	args := []interface{}{gymID}

	if onlyRole != nil {
		query += ` AND jr.user_role = $2`
		args = append(args, onlyRole.String())
	}

	query += ` ORDER BY jr.created_at ASC`

	reqs := []JoinRequest{}
	err := r.db.SelectContext(ctx, &reqs, query, args...)
	if err != nil {
		return nil, err
	}

	return reqs, nil
}

// AcceptRequest marks the request accepted and attaches the user to the
// gym. Membership window columns are set only for members (start/end
// non-nil).
func (r *repository) AcceptRequest(ctx context.Context, req *JoinRequest, start, end *time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `UPDATE join_requests SET status = 'accepted' WHERE id = $1`, req.ID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users
		SET gym_id = $1, membership_duration = $2, membership_start = $3, membership_end = $4
		WHERE id = $5`, req.GymID, req.MembershipDuration, start, end, req.UserID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) DenyRequest(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE join_requests SET status = 'denied' WHERE id = $1`, id)
	return err
}
