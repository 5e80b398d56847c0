package progress

import (
	"context"
	"database/sql"
	"errors"

	"gymdesk/internal/apperr"
	"gymdesk/internal/storage"
)

type Service interface {
	LogMacros(ctx context.Context, memberID int, req MacroLogRequest) (*MacroLog, error)
	ListMacros(ctx context.Context, memberID int) ([]MacroLog, error)
	DeleteMacroLog(ctx context.Context, memberID, logID int) error

	LogProgress(ctx context.Context, memberID int, req ProgressLogRequest) (*ProgressLog, error)
	ListProgress(ctx context.Context, memberID int) ([]ProgressLog, error)
	AddPhoto(ctx context.Context, memberID, logID int, filename string, data []byte) (*ProgressLog, error)
	DeleteProgressLog(ctx context.Context, memberID, logID int) error
}

type service struct {
	repo  Repository
	media storage.Service
}

func NewService(repo Repository, media storage.Service) Service {
	return &service{repo: repo, media: media}
}

func (s *service) LogMacros(ctx context.Context, memberID int, req MacroLogRequest) (*MacroLog, error) {
	m, err := s.repo.CreateMacroLog(ctx, memberID, req)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return m, nil
}

func (s *service) ListMacros(ctx context.Context, memberID int) ([]MacroLog, error) {
	logs, err := s.repo.ListMacroLogs(ctx, memberID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return logs, nil
}

func (s *service) DeleteMacroLog(ctx context.Context, memberID, logID int) error {
	m, err := s.repo.FindMacroLog(ctx, logID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("macro log not found")
		}
		return apperr.Internal(err)
	}
	if m.MemberID != memberID {
		return apperr.Forbidden("not your macro log")
	}

	if err := s.repo.DeleteMacroLog(ctx, logID); err != nil {
		return apperr.Internal(err)
	}

	return nil
}

func (s *service) LogProgress(ctx context.Context, memberID int, req ProgressLogRequest) (*ProgressLog, error) {
	p, err := s.repo.CreateProgressLog(ctx, memberID, req, []string{})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return p, nil
}

func (s *service) ListProgress(ctx context.Context, memberID int) ([]ProgressLog, error) {
	logs, err := s.repo.ListProgressLogs(ctx, memberID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return logs, nil
}

func (s *service) AddPhoto(ctx context.Context, memberID, logID int, filename string, data []byte) (*ProgressLog, error) {
	p, err := s.ownedProgressLog(ctx, memberID, logID)
	if err != nil {
		return nil, err
	}

	photoURL, err := s.media.Upload(ctx, "progress-photos", filename, data)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if err := s.repo.AddProgressPhoto(ctx, logID, photoURL); err != nil {
		return nil, apperr.Internal(err)
	}

	p.Photos = append(p.Photos, photoURL)
	return p, nil
}

func (s *service) DeleteProgressLog(ctx context.Context, memberID, logID int) error {
	p, err := s.ownedProgressLog(ctx, memberID, logID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteProgressLog(ctx, logID); err != nil {
		return apperr.Internal(err)
	}

	// Stored photos are cleaned up opportunistically.
	for _, photoURL := range p.Photos {
		_ = s.media.DeleteByURL(ctx, photoURL)
	}

	return nil
}

func (s *service) ownedProgressLog(ctx context.Context, memberID, logID int) (*ProgressLog, error) {
	p, err := s.repo.FindProgressLog(ctx, logID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("progress log not found")
		}
		return nil, apperr.Internal(err)
	}
	if p.MemberID != memberID {
		return nil, apperr.Forbidden("not your progress log")
	}

	return p, nil
}
