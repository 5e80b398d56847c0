package review

import (
	"context"

	"gymdesk/internal/db"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	GymIDOfUser(ctx context.Context, userID int) (*int, error)
	Exists(ctx context.Context, gymID, memberID int) (bool, error)
	Create(ctx context.Context, gymID, memberID, rating int, comment string) (*Review, error)
	ListForGym(ctx context.Context, gymID int) ([]Review, error)
	ListAll(ctx context.Context) ([]Review, error)
	Find(ctx context.Context, id int) (*Review, error)
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GymIDOfUser(ctx context.Context, userID int) (*int, error) {
	var gymID *int
	err := r.db.GetContext(ctx, &gymID, `SELECT gym_id FROM users WHERE id = $1`, userID)
	if err != nil {
		return nil, err
	}

	return gymID, nil
}

func (r *repository) Exists(ctx context.Context, gymID, memberID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM gym_reviews WHERE gym_id = $1 AND member_id = $2)`
	return db.Exists(ctx, r.db, query, gymID, memberID)
}

func (r *repository) Create(ctx context.Context, gymID, memberID, rating int, comment string) (*Review, error) {
	query := `
		INSERT INTO gym_reviews (gym_id, member_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, gym_id, member_id, rating, comment, created_at`

	var rv Review
	err := r.db.GetContext(ctx, &rv, query, gymID, memberID, rating, comment)
	if err != nil {
		return nil, err
	}

	return &rv, nil
}

func (r *repository) ListForGym(ctx context.Context, gymID int) ([]Review, error) {
	query := `
		SELECT gr.id, gr.gym_id, gr.member_id, gr.rating, gr.comment, gr.created_at,
			m.name AS member_name
		FROM gym_reviews gr
		JOIN users m ON m.id = gr.member_id
		WHERE gr.gym_id = $1
		ORDER BY gr.created_at DESC`

	reviews := []Review{}
	err := r.db.SelectContext(ctx, &reviews, query, gymID)
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Review, error) {
	query := `
		SELECT gr.id, gr.gym_id, gr.member_id, gr.rating, gr.comment, gr.created_at,
			m.name AS member_name, g.name AS gym_name
		FROM gym_reviews gr
		JOIN users m ON m.id = gr.member_id
		JOIN gyms g ON g.id = gr.gym_id
		ORDER BY gr.created_at DESC`

	reviews := []Review{}
	err := r.db.SelectContext(ctx, &reviews, query)
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *repository) Find(ctx context.Context, id int) (*Review, error) {
	query := `SELECT id, gym_id, member_id, rating, comment, created_at FROM gym_reviews WHERE id = $1`

	var rv Review
	err := r.db.GetContext(ctx, &rv, query, id)
	if err != nil {
		return nil, err
	}

	return &rv, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM gym_reviews WHERE id = $1`, id)
	return err
}
