package gym

import (
	"context"
	"time"

	"gymdesk/internal/role"
)

type Repository interface {
	ListGyms(ctx context.Context) ([]Gym, error)
	FindByID(ctx context.Context, id int) (*Gym, error)
	FindByOwner(ctx context.Context, ownerID int) (*Gym, error)
	Members(ctx context.Context, gymID int) ([]Person, error)
	Trainers(ctx context.Context, gymID int) ([]Person, error)
	UpdateProfile(ctx context.Context, gymID int, name, address, ownerName string, plans MembershipPlans) error
	AddPhoto(ctx context.Context, gymID int, url string) error
	RemovePhoto(ctx context.Context, gymID int, url string) error
	DeleteGym(ctx context.Context, gymID int) error

	GymIDOfUser(ctx context.Context, userID int) (*int, error)
	PendingRequestExists(ctx context.Context, userID int) (bool, error)
	CreateJoinRequest(ctx context.Context, userID int, r role.Role, gymID int, duration *string) (*JoinRequest, error)
	FindJoinRequest(ctx context.Context, id int) (*JoinRequest, error)
	ListPendingRequests(ctx context.Context, gymID int, onlyRole *role.Role) ([]JoinRequest, error)
	AcceptRequest(ctx context.Context, req *JoinRequest, start, end *time.Time) error
	DenyRequest(ctx context.Context, id int) error
}
