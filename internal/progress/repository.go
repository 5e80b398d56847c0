package progress

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repository interface {
	CreateMacroLog(ctx context.Context, memberID int, req MacroLogRequest) (*MacroLog, error)
	ListMacroLogs(ctx context.Context, memberID int) ([]MacroLog, error)
	FindMacroLog(ctx context.Context, id int) (*MacroLog, error)
	DeleteMacroLog(ctx context.Context, id int) error

	CreateProgressLog(ctx context.Context, memberID int, req ProgressLogRequest, photos []string) (*ProgressLog, error)
	ListProgressLogs(ctx context.Context, memberID int) ([]ProgressLog, error)
	FindProgressLog(ctx context.Context, id int) (*ProgressLog, error)
	AddProgressPhoto(ctx context.Context, id int, photoURL string) error
	DeleteProgressLog(ctx context.Context, id int) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateMacroLog(ctx context.Context, memberID int, req MacroLogRequest) (*MacroLog, error) {
	query := `
		INSERT INTO macro_logs (member_id, food, calories, protein, carbs, fats)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, member_id, food, calories, protein, carbs, fats, logged_at`

	var m MacroLog
	err := r.db.GetContext(ctx, &m, query, memberID, req.Food, req.Calories, req.Protein, req.Carbs, req.Fats)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) ListMacroLogs(ctx context.Context, memberID int) ([]MacroLog, error) {
	query := `
		SELECT id, member_id, food, calories, protein, carbs, fats, logged_at
		FROM macro_logs
		WHERE member_id = $1
		ORDER BY logged_at DESC`

	logs := []MacroLog{}
	err := r.db.SelectContext(ctx, &logs, query, memberID)
	if err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *repository) FindMacroLog(ctx context.Context, id int) (*MacroLog, error) {
	query := `SELECT id, member_id, food, calories, protein, carbs, fats, logged_at FROM macro_logs WHERE id = $1`

	var m MacroLog
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) DeleteMacroLog(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM macro_logs WHERE id = $1`, id)
	return err
}

func (r *repository) CreateProgressLog(ctx context.Context, memberID int, req ProgressLogRequest, photos []string) (*ProgressLog, error) {
	query := `
		INSERT INTO progress_logs (member_id, weight, muscle_mass, fat_percentage, photos)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, member_id, weight, muscle_mass, fat_percentage, photos, logged_at`

	var p ProgressLog
	err := r.db.GetContext(ctx, &p, query,
		memberID, req.Weight, req.MuscleMass, req.FatPercentage, pq.StringArray(photos))
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) ListProgressLogs(ctx context.Context, memberID int) ([]ProgressLog, error) {
	query := `
		SELECT id, member_id, weight, muscle_mass, fat_percentage, photos, logged_at
		FROM progress_logs
		WHERE member_id = $1
		ORDER BY logged_at DESC`

	logs := []ProgressLog{}
	err := r.db.SelectContext(ctx, &logs, query, memberID)
	if err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *repository) FindProgressLog(ctx context.Context, id int) (*ProgressLog, error) {
	query := `SELECT id, member_id, weight, muscle_mass, fat_percentage, photos, logged_at FROM progress_logs WHERE id = $1`

	var p ProgressLog
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) AddProgressPhoto(ctx context.Context, id int, photoURL string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE progress_logs SET photos = array_append(photos, $1) WHERE id = $2`, photoURL, id)
	return err
}

func (r *repository) DeleteProgressLog(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM progress_logs WHERE id = $1`, id)
	return err
}
