package user

import (
	"context"

	"gymdesk/internal/role"

	"github.com/jmoiron/sqlx"
)

const userColumns = `id, name, email, password_hash, role, gym_id, membership_duration, membership_start, membership_end, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, email, passwordHash string, rl role.Role) (*User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	var u User
	err := r.db.GetContext(ctx, &u, query, name, email, passwordHash, rl.String())
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// CreateGymAccount creates the gym login and its profile row in one
// transaction. Returns the account and the gym profile id.
func (r *repository) CreateGymAccount(ctx context.Context, name, email, passwordHash, gymName, address string) (*User, int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	var u User
	err = tx.GetContext(ctx, &u, `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, 'gym')
		RETURNING `+userColumns, name, email, passwordHash)
	if err != nil {
		return nil, 0, err
	}

	var gymID int
	err = tx.GetContext(ctx, &gymID, `
		INSERT INTO gyms (owner_id, name, address, owner_name, owner_email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`, u.ID, gymName, address, name, email)
	if err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}

	return &u, gymID, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var u User
	err := r.db.GetContext(ctx, &u, query, email)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, email)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) UpdateName(ctx context.Context, id int, name string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET name = $1 WHERE id = $2`, name, id)
	return err
}
