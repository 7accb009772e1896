package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	coreneed "github.com/example/vocare/internal/core/need"
	"github.com/example/vocare/internal/ports/primary"
	"github.com/example/vocare/internal/ports/secondary"
)

// NeedServiceImpl implements the NeedService interface.
type NeedServiceImpl struct {
	needRepo    secondary.NeedRepository
	profileRepo secondary.ProfileRepository
	logger      *zap.Logger
	now         func() time.Time
}

var _ primary.NeedService = (*NeedServiceImpl)(nil)

// NewNeedService creates a new NeedService with injected dependencies.
func NewNeedService(needRepo secondary.NeedRepository, profileRepo secondary.ProfileRepository, logger *zap.Logger) *NeedServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NeedServiceImpl{
		needRepo:    needRepo,
		profileRepo: profileRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// ListNeeds lists board needs as seen by the current user.
func (s *NeedServiceImpl) ListNeeds(ctx context.Context, filters primary.NeedFilters) ([]*coreneed.BoardNeed, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	repoFilters := secondary.NeedFilters{Category: filters.Category}
	if !filters.IncludeClosed {
		repoFilters.Status = coreneed.StatusOpen
	}
	needs, err := s.needRepo.List(ctx, userID, repoFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to list needs: %w", err)
	}
	return needs, nil
}

// SubmitNeed posts a new open need.
func (s *NeedServiceImpl) SubmitNeed(ctx context.Context, req primary.SubmitNeedRequest) (*coreneed.BoardNeed, error) {
	userID := requireUserOrEmpty(ctx)

	guardCtx := coreneed.SubmitContext{
		Description:  req.Description,
		Location:     req.Location,
		Category:     req.Category,
		PeopleNeeded: req.PeopleNeeded,
		CreatorID:    userID,
	}
	if result := coreneed.CanSubmitNeed(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	displayName := ""
	if p, err := s.profileRepo.Get(ctx, userID); err == nil && p != nil {
		displayName = p.DisplayName
	}

	n := &coreneed.BoardNeed{
		Need: coreneed.Need{
			ID:          coreneed.GenerateNeedID(),
			Description: strings.TrimSpace(req.Description),
			Location:    strings.TrimSpace(req.Location),
			Category:    req.Category,
		},
		CreatorID:          userID,
		CreatorDisplayName: displayName,
		PeopleNeeded:       req.PeopleNeeded,
		Status:             coreneed.StatusOpen,
		CreatedAt:          s.now(),
	}
	if err := s.needRepo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create need: %w", err)
	}

	s.logger.Info("need submitted", zap.String("user", userID), zap.String("need", n.ID), zap.String("category", string(n.Category)))
	return n, nil
}

// AcceptNeed signs the current user up for a need.
func (s *NeedServiceImpl) AcceptNeed(ctx context.Context, needID string) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	n, err := s.fetch(ctx, needID, userID)
	if err != nil {
		return err
	}

	guardCtx := coreneed.AcceptContext{NeedID: needID, Exists: n != nil}
	if n != nil {
		guardCtx.Status = n.Status
		guardCtx.PeopleNeeded = n.PeopleNeeded
		guardCtx.AcceptanceCount = n.AcceptanceCount
		guardCtx.AlreadyAccepted = n.CurrentUserAccepted
	}
	if result := coreneed.CanAcceptNeed(guardCtx); !result.Allowed {
		return result.Error()
	}

	if err := s.needRepo.AddAcceptance(ctx, needID, userID, s.now()); err != nil {
		return fmt.Errorf("failed to accept need: %w", err)
	}
	s.logger.Info("need accepted", zap.String("user", userID), zap.String("need", needID))
	return nil
}

// WithdrawNeed removes the current user's acceptance.
func (s *NeedServiceImpl) WithdrawNeed(ctx context.Context, needID string) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	n, err := s.fetch(ctx, needID, userID)
	if err != nil {
		return err
	}

	guardCtx := coreneed.WithdrawContext{NeedID: needID, AlreadyAccepted: n != nil && n.CurrentUserAccepted}
	if result := coreneed.CanWithdrawAcceptance(guardCtx); !result.Allowed {
		return result.Error()
	}

	if err := s.needRepo.RemoveAcceptance(ctx, needID, userID); err != nil {
		return fmt.Errorf("failed to withdraw from need: %w", err)
	}
	s.logger.Info("need acceptance withdrawn", zap.String("user", userID), zap.String("need", needID))
	return nil
}

// MarkNeedFilled closes a need on behalf of its creator.
func (s *NeedServiceImpl) MarkNeedFilled(ctx context.Context, needID string) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	n, err := s.fetch(ctx, needID, userID)
	if err != nil {
		return err
	}

	guardCtx := coreneed.FillContext{NeedID: needID, Exists: n != nil, ActorID: userID}
	if n != nil {
		guardCtx.Status = n.Status
		guardCtx.CreatorID = n.CreatorID
	}
	if result := coreneed.CanMarkFilled(guardCtx); !result.Allowed {
		return result.Error()
	}

	if err := s.needRepo.UpdateStatus(ctx, needID, coreneed.StatusFilled); err != nil {
		return fmt.Errorf("failed to mark need filled: %w", err)
	}
	s.logger.Info("need filled", zap.String("user", userID), zap.String("need", needID))
	return nil
}

// fetch returns (nil, nil) for a missing need so guards can report it.
func (s *NeedServiceImpl) fetch(ctx context.Context, needID, viewerID string) (*coreneed.BoardNeed, error) {
	n, err := s.needRepo.GetByID(ctx, needID, viewerID)
	if errors.Is(err, secondary.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load need: %w", err)
	}
	return n, nil
}

func requireUserOrEmpty(ctx context.Context) string {
	userID, _ := requireUser(ctx)
	return userID
}
