package gym

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gymdesk/internal/apperr"
	"gymdesk/internal/eventlog"
	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"
	"gymdesk/internal/role"
	"gymdesk/internal/storage"
)

// Mailer is the slice of the email service the join workflow needs.
type Mailer interface {
	SendJoinAccepted(ctx context.Context, to, name, gymName string, membershipEnd *time.Time) error
}

type Service interface {
	ListGyms(ctx context.Context) ([]Gym, error)
	GetGym(ctx context.Context, id int) (*GymDetail, error)
	Join(ctx context.Context, userID int, rl role.Role, req JoinGymRequest) (*JoinRequest, error)
	ListRequests(ctx context.Context, actorID int, actorRole role.Role) ([]JoinRequest, error)
	Accept(ctx context.Context, actorID int, actorRole role.Role, requestID int) error
	Deny(ctx context.Context, actorID int, actorRole role.Role, requestID int) error
	Update(ctx context.Context, ownerID int, req UpdateGymRequest) (*Gym, error)
	AddPhoto(ctx context.Context, ownerID int, filename string, data []byte) (*Gym, error)
	DeletePhoto(ctx context.Context, ownerID int, url string) error
	DeleteGym(ctx context.Context, actorID, gymID int) error
}

type service struct {
	repo   Repository
	mailer Mailer
	media  storage.Service
	events eventlog.Service
	now    func() time.Time
}

func NewService(repo Repository, mailer Mailer, media storage.Service, events eventlog.Service) Service {
	return &service{
		repo:   repo,
		mailer: mailer,
		media:  media,
		events: events,
		now:    time.Now,
	}
}

func (s *service) ListGyms(ctx context.Context) ([]Gym, error) {
	gyms, err := s.repo.ListGyms(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return gyms, nil
}

func (s *service) GetGym(ctx context.Context, id int) (*GymDetail, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("gym not found")
		}
		return nil, apperr.Internal(err)
	}

	members, err := s.repo.Members(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	trainers, err := s.repo.Trainers(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &GymDetail{Gym: *g, Members: members, Trainers: trainers}, nil
}

func (s *service) Join(ctx context.Context, userID int, rl role.Role, req JoinGymRequest) (*JoinRequest, error) {
	if !rl.CanJoinGym() {
		return nil, apperr.Forbidden("only members and trainers can join a gym")
	}

	if _, err := s.repo.FindByID(ctx, req.GymID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("gym not found")
		}
		return nil, apperr.Internal(err)
	}

	current, err := s.repo.GymIDOfUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if current != nil {
		return nil, apperr.Conflict("already a member of a gym")
	}

	pending, err := s.repo.PendingRequestExists(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if pending {
		return nil, apperr.Conflict("a pending join request already exists")
	}

	var duration *string
	if rl == role.Member {
		d, err := ParseDuration(req.Duration)
		if err != nil {
			return nil, apperr.Validation("membership duration is required: one of 1 week, 1 month, 3 months, 6 months, 1 year")
		}
		ds := string(d)
		duration = &ds
	}

	created, err := s.repo.CreateJoinRequest(ctx, userID, rl, req.GymID, duration)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	metrics.RecordJoinRequest("created", rl.String())

	return created, nil
}

// actorGymID resolves which gym the actor manages requests for. Gym
// owners act on their own gym; trainers on the gym they belong to.
func (s *service) actorGymID(ctx context.Context, actorID int, actorRole role.Role) (int, error) {
	switch actorRole {
	case role.Gym:
		g, err := s.repo.FindByOwner(ctx, actorID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, apperr.NotFound("gym profile not found")
			}
			return 0, apperr.Internal(err)
		}
		return g.ID, nil
	case role.Trainer:
		gymID, err := s.repo.GymIDOfUser(ctx, actorID)
		if err != nil {
			return 0, apperr.Internal(err)
		}
		if gymID == nil {
			return 0, apperr.Forbidden("trainer is not attached to a gym")
		}
		return *gymID, nil
	default:
		return 0, apperr.Forbidden("access denied")
	}
}

func (s *service) ListRequests(ctx context.Context, actorID int, actorRole role.Role) ([]JoinRequest, error) {
	gymID, err := s.actorGymID(ctx, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	// Trainers only triage member requests.
	var onlyRole *role.Role
	if actorRole == role.Trainer {
		member := role.Member
		onlyRole = &member
	}

	reqs, err := s.repo.ListPendingRequests(ctx, gymID, onlyRole)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return reqs, nil
}

func (s *service) loadActionableRequest(ctx context.Context, actorID int, actorRole role.Role, requestID int) (*JoinRequest, error) {
	gymID, err := s.actorGymID(ctx, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	req, err := s.repo.FindJoinRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("join request not found")
		}
		return nil, apperr.Internal(err)
	}

	if req.GymID != gymID {
		return nil, apperr.Forbidden("join request belongs to another gym")
	}
	if actorRole == role.Trainer && req.UserRole != role.Member {
		return nil, apperr.Forbidden("trainers can only act on member requests")
	}
	if req.Status != RequestPending {
		return nil, apperr.Conflict("join request already processed")
	}

	return req, nil
}

func (s *service) Accept(ctx context.Context, actorID int, actorRole role.Role, requestID int) error {
	req, err := s.loadActionableRequest(ctx, actorID, actorRole, requestID)
	if err != nil {
		return err
	}

	var start, end *time.Time
	if req.UserRole == role.Member {
		if req.MembershipDuration == nil {
			return apperr.Validation("member request has no membership duration")
		}
		d, err := ParseDuration(*req.MembershipDuration)
		if err != nil {
			return apperr.Validation("member request has an invalid membership duration")
		}
		st := s.now()
		en := d.AddTo(st)
		start, end = &st, &en
	}

	if err := s.repo.AcceptRequest(ctx, req, start, end); err != nil {
		return apperr.Internal(err)
	}

	metrics.RecordJoinRequest("accepted", req.UserRole.String())
	s.events.Record(ctx, "Join Accepted", "N/A", actorID, actorRole, req.UserName+" joined")

	g, err := s.repo.FindByID(ctx, req.GymID)
	if err == nil {
		if err := s.mailer.SendJoinAccepted(ctx, req.UserEmail, req.UserName, g.Name, end); err != nil {
			logger.Error("Failed to queue acceptance email", "request_id", req.ID, "error", err)
		}
	}

	return nil
}

func (s *service) Deny(ctx context.Context, actorID int, actorRole role.Role, requestID int) error {
	req, err := s.loadActionableRequest(ctx, actorID, actorRole, requestID)
	if err != nil {
		return err
	}

	if err := s.repo.DenyRequest(ctx, req.ID); err != nil {
		return apperr.Internal(err)
	}

	metrics.RecordJoinRequest("denied", req.UserRole.String())

	return nil
}

func (s *service) Update(ctx context.Context, ownerID int, req UpdateGymRequest) (*Gym, error) {
	g, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("gym profile not found")
		}
		return nil, apperr.Internal(err)
	}

	for _, p := range req.MembershipPlans {
		if _, err := ParseDuration(p.Duration); err != nil {
			return nil, apperr.Validation("invalid plan duration: %s", p.Duration)
		}
		if p.Price < 0 {
			return nil, apperr.Validation("plan price cannot be negative")
		}
	}

	ownerName := req.OwnerName
	if ownerName == "" {
		ownerName = g.OwnerName
	}

	if err := s.repo.UpdateProfile(ctx, g.ID, req.Name, req.Address, ownerName, req.MembershipPlans); err != nil {
		return nil, apperr.Internal(err)
	}

	updated, err := s.repo.FindByID(ctx, g.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return updated, nil
}

func (s *service) AddPhoto(ctx context.Context, ownerID int, filename string, data []byte) (*Gym, error) {
	g, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("gym profile not found")
		}
		return nil, apperr.Internal(err)
	}

	url, err := s.media.Upload(ctx, "gym-photos", filename, data)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if err := s.repo.AddPhoto(ctx, g.ID, url); err != nil {
		return nil, apperr.Internal(err)
	}

	updated, err := s.repo.FindByID(ctx, g.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return updated, nil
}

func (s *service) DeletePhoto(ctx context.Context, ownerID int, url string) error {
	g, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("gym profile not found")
		}
		return apperr.Internal(err)
	}

	found := false
	for _, p := range g.Photos {
		if p == url {
			found = true
			break
		}
	}
	if !found {
		return apperr.NotFound("photo not found")
	}

	if err := s.media.DeleteByURL(ctx, url); err != nil {
		logger.Error("Failed to delete photo from media store", "url", url, "error", err)
	}

	if err := s.repo.RemovePhoto(ctx, g.ID, url); err != nil {
		return apperr.Internal(err)
	}

	return nil
}

func (s *service) DeleteGym(ctx context.Context, actorID, gymID int) error {
	g, err := s.repo.FindByID(ctx, gymID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("gym not found")
		}
		return apperr.Internal(err)
	}

	if err := s.repo.DeleteGym(ctx, gymID); err != nil {
		return apperr.Internal(err)
	}

	s.events.Record(ctx, "Gym Deleted", "N/A", actorID, role.Admin, g.Name)

	return nil
}
