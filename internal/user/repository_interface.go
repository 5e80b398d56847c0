package user

import (
	"context"

	"gymdesk/internal/role"
)

type Repository interface {
	Create(ctx context.Context, name, email, passwordHash string, r role.Role) (*User, error)
	CreateGymAccount(ctx context.Context, name, email, passwordHash, gymName, address string) (*User, int, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateName(ctx context.Context, id int, name string) error
}
