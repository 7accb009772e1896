package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/example/vocare/internal/core/journal"
	coremission "github.com/example/vocare/internal/core/mission"
	"github.com/example/vocare/internal/core/need"
	"github.com/example/vocare/internal/core/recommend"
	"github.com/example/vocare/internal/ctxutil"
	"github.com/example/vocare/internal/ports/primary"
	"github.com/example/vocare/internal/ports/secondary"
)

// ErrNoUser is returned when a service call carries no user in its context.
var ErrNoUser = errors.New("no user in context")

// DefaultStaleAfter is how long a pending mission may sit before the sweep skips it.
const DefaultStaleAfter = 24 * time.Hour

// MissionServiceOptions tunes MissionServiceImpl. Zero values pick defaults.
type MissionServiceOptions struct {
	SampleSize int
	StaleAfter time.Duration
	Rand       *rand.Rand
	Now        func() time.Time
}

// MissionServiceImpl implements the MissionService interface.
type MissionServiceImpl struct {
	missionRepo secondary.MissionRepository
	profileRepo secondary.ProfileRepository
	journalRepo secondary.JournalRepository
	needs       secondary.NeedSource
	weather     secondary.WeatherProvider
	resolver    *Resolver
	observer    secondary.GenerationObserver
	logger      *zap.Logger
	opts        MissionServiceOptions
}

var _ primary.MissionService = (*MissionServiceImpl)(nil)

// NewMissionService creates a new MissionService with injected dependencies.
// needs and weather may be nil.
func NewMissionService(
	missionRepo secondary.MissionRepository,
	profileRepo secondary.ProfileRepository,
	journalRepo secondary.JournalRepository,
	needs secondary.NeedSource,
	weather secondary.WeatherProvider,
	resolver *Resolver,
	observer secondary.GenerationObserver,
	logger *zap.Logger,
	opts MissionServiceOptions,
) *MissionServiceImpl {
	if opts.SampleSize <= 0 {
		opts.SampleSize = need.DefaultSampleSize
	}
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = DefaultStaleAfter
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if observer == nil {
		observer = noopObserver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MissionServiceImpl{
		missionRepo: missionRepo,
		profileRepo: profileRepo,
		journalRepo: journalRepo,
		needs:       needs,
		weather:     weather,
		resolver:    resolver,
		observer:    observer,
		logger:      logger,
		opts:        opts,
	}
}

// GenerateMission resolves a mission for the given mood and installs it.
func (s *MissionServiceImpl) GenerateMission(ctx context.Context, req primary.GenerateMissionRequest) (*primary.GenerateMissionResponse, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	// 1. Aggregate profile and mood
	p, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	rc, err := recommend.Aggregate(p, recommend.MoodInput{Mood: req.Mood, Text: req.MoodText})
	if err != nil {
		return nil, err
	}

	// 2. Check the current slot before spending a backend call
	ledger, err := s.loadLedger(ctx, userID)
	if err != nil {
		return nil, err
	}
	if result := coremission.CanGenerateMission(ledger.StateContext()); !result.Allowed {
		return nil, result.Error()
	}

	// 3. Gather ambient context. Grief input is never pointed at a need.
	pool := s.openNeeds(ctx)
	needs := []need.Need{}
	if recommend.SelectCategory(rc) != recommend.CategoryGrief {
		needs = need.Sample(pool, s.opts.SampleSize, s.opts.Rand)
	}
	needLocations := make([]string, 0, len(pool))
	for _, n := range pool {
		needLocations = append(needLocations, n.Location)
	}
	weather := s.weatherLabel(ctx)
	recent := ledger.RecentTitles()
	if ledger.Current != nil {
		// The pending mission being replaced counts as recent too.
		recent = append([]string{ledger.Current.Title}, recent...)
		if len(recent) > coremission.RecentTitleLimit {
			recent = recent[:coremission.RecentTitleLimit]
		}
	}

	// 4. Resolve
	genReq := secondary.GenerationRequest{
		SystemInstruction: recommend.SystemInstruction,
		UserContext: recommend.RenderUserContext(recommend.PromptInput{
			Context:      rc,
			Needs:        needs,
			Weather:      weather,
			RecentTitles: recent,
		}),
		Context:       rc,
		RecentTitles:  recent,
		NeedLocations: needLocations,
	}
	draft, source := s.resolver.Resolve(ctx, genReq)

	// 5. Commit
	now := s.opts.Now()
	m := coremission.New(draft, rc, coremission.GenerateMissionID(), source, now)
	next, err := ledger.Install(m, now)
	if err != nil {
		return nil, err
	}
	if err := s.missionRepo.PutMissions(ctx, userID, next.Missions()); err != nil {
		return nil, fmt.Errorf("failed to save missions: %w", err)
	}

	resp := &primary.GenerateMissionResponse{Mission: next.Current}
	if ledger.Current != nil {
		replaced := next.History[0]
		resp.Replaced = &replaced
	}

	s.logger.Info("mission generated",
		zap.String("user", userID),
		zap.String("mission", m.ID),
		zap.String("mood", string(rc.Mood)),
		zap.String("source", string(source)),
		zap.Int("needs", len(needs)))
	return resp, nil
}

// AcceptMission moves the current mission from pending to active.
func (s *MissionServiceImpl) AcceptMission(ctx context.Context) (*coremission.Mission, error) {
	return s.transition(ctx, "accept", func(l coremission.Ledger, now time.Time) (coremission.Ledger, error) {
		return l.Accept(now)
	})
}

// CompleteMission moves the current mission from active to completed.
func (s *MissionServiceImpl) CompleteMission(ctx context.Context) (*coremission.Mission, error) {
	return s.transition(ctx, "complete", func(l coremission.Ledger, now time.Time) (coremission.Ledger, error) {
		return l.Complete(now)
	})
}

// SkipMission archives a pending current mission.
func (s *MissionServiceImpl) SkipMission(ctx context.Context) (*coremission.Mission, error) {
	return s.transition(ctx, "skip", func(l coremission.Ledger, now time.Time) (coremission.Ledger, error) {
		return l.Skip(now)
	})
}

// ReflectMission records the felt-alive signal and an optional journal entry.
func (s *MissionServiceImpl) ReflectMission(ctx context.Context, req primary.ReflectMissionRequest) (*primary.ReflectMissionResponse, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	ledger, err := s.loadLedger(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.opts.Now()
	var entry *journal.Entry
	if req.Journal != "" && ledger.Current != nil {
		e, err := journal.NewEntry(ledger.Current.ID, req.Journal, now)
		if err != nil {
			return nil, err
		}
		entry = &e
	}

	next, err := ledger.Reflect(req.FeltAlive, now)
	if errors.Is(err, coremission.ErrNoCurrentMission) {
		s.logger.Warn("reflect ignored: no current mission", zap.String("user", userID))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.missionRepo.PutMissions(ctx, userID, next.Missions()); err != nil {
		return nil, fmt.Errorf("failed to save missions: %w", err)
	}
	if entry != nil {
		if err := s.journalRepo.Create(ctx, userID, entry); err != nil {
			return nil, fmt.Errorf("failed to save journal entry: %w", err)
		}
	}

	reflected := next.History[0]
	s.logger.Info("mission reflected",
		zap.String("user", userID),
		zap.String("mission", reflected.ID),
		zap.Bool("felt_alive", req.FeltAlive),
		zap.Bool("journal", entry != nil))
	return &primary.ReflectMissionResponse{Mission: &reflected, Entry: entry}, nil
}

// GetCurrentMission returns the current mission, or nil.
func (s *MissionServiceImpl) GetCurrentMission(ctx context.Context) (*coremission.Mission, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	ledger, err := s.loadLedger(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ledger.Current, nil
}

// ListHistory returns archived missions, newest first.
func (s *MissionServiceImpl) ListHistory(ctx context.Context, limit int) ([]coremission.Mission, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	ledger, err := s.loadLedger(ctx, userID)
	if err != nil {
		return nil, err
	}
	history := ledger.History
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	return history, nil
}

// GetGrowthSummary aggregates reflections across the history.
func (s *MissionServiceImpl) GetGrowthSummary(ctx context.Context) (*primary.GrowthSummary, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	ledger, err := s.loadLedger(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.journalRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count journal entries: %w", err)
	}

	summary := coremission.Summarize(ledger.History)
	return &primary.GrowthSummary{
		GrowthSummary:   summary,
		ConsolationRate: summary.ConsolationRate(),
		JournalEntries:  entries,
	}, nil
}

// ListJournal returns the user's journal entries, newest first.
func (s *MissionServiceImpl) ListJournal(ctx context.Context, limit int) ([]journal.Entry, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.journalRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}

// ExpireStaleMissions skips pending missions that have gone stale for every user.
func (s *MissionServiceImpl) ExpireStaleMissions(ctx context.Context) (int, error) {
	users, err := s.missionRepo.ListUsersWithCurrent(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	now := s.opts.Now()
	expired := 0
	var errs []error
	for _, userID := range users {
		ledger, err := s.loadLedger(ctx, userID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		next, changed := ledger.ExpireStale(now, s.opts.StaleAfter)
		if !changed {
			continue
		}
		if err := s.missionRepo.PutMissions(ctx, userID, next.Missions()); err != nil {
			errs = append(errs, fmt.Errorf("failed to save missions for %s: %w", userID, err))
			continue
		}
		expired++
		s.logger.Info("stale mission skipped", zap.String("user", userID), zap.String("mission", next.History[0].ID))
	}
	return expired, errors.Join(errs...)
}

type ledgerOp func(l coremission.Ledger, now time.Time) (coremission.Ledger, error)

// transition runs fetch -> guard -> apply -> persist for a single-slot operation.
// A missing current mission is a logged no-op, not an error.
func (s *MissionServiceImpl) transition(ctx context.Context, name string, op ledgerOp) (*coremission.Mission, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	ledger, err := s.loadLedger(ctx, userID)
	if err != nil {
		return nil, err
	}

	next, err := op(ledger, s.opts.Now())
	if errors.Is(err, coremission.ErrNoCurrentMission) {
		s.logger.Warn(name+" ignored: no current mission", zap.String("user", userID))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.missionRepo.PutMissions(ctx, userID, next.Missions()); err != nil {
		return nil, fmt.Errorf("failed to save missions: %w", err)
	}

	var affected coremission.Mission
	if next.Current != nil {
		affected = *next.Current
	} else {
		affected = next.History[0]
	}
	s.logger.Info("mission "+name, zap.String("user", userID), zap.String("mission", affected.ID), zap.String("status", string(affected.Status)))
	return &affected, nil
}

func (s *MissionServiceImpl) loadLedger(ctx context.Context, userID string) (coremission.Ledger, error) {
	missions, err := s.missionRepo.GetMissions(ctx, userID)
	if err != nil {
		return coremission.Ledger{}, fmt.Errorf("failed to load missions: %w", err)
	}
	return coremission.LoadLedger(missions), nil
}

// openNeeds loads the needs pool. A failed load is logged and recorded
// separately from an empty board, then treated as no needs.
func (s *MissionServiceImpl) openNeeds(ctx context.Context) []need.Need {
	if s.needs == nil {
		return nil
	}
	needs, err := s.needs.ListOpenNeeds(ctx)
	if err != nil {
		s.observer.ObserveNeedsLoad(false)
		s.logger.Warn("failed to load needs, generating mood-only", zap.Error(err))
		return nil
	}
	s.observer.ObserveNeedsLoad(true)
	return needs
}

func (s *MissionServiceImpl) weatherLabel(ctx context.Context) string {
	if s.weather == nil {
		return recommend.UnknownWeather
	}
	label, err := s.weather.CurrentLabel(ctx)
	if err != nil || label == "" {
		if err != nil {
			s.logger.Debug("weather unavailable", zap.Error(err))
		}
		return recommend.UnknownWeather
	}
	return label
}

func requireUser(ctx context.Context) (string, error) {
	userID := ctxutil.UserFromContext(ctx)
	if userID == "" {
		return "", ErrNoUser
	}
	return userID, nil
}
