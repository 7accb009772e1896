package app

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/example/vocare/internal/core/journal"
	"github.com/example/vocare/internal/core/mission"
	"github.com/example/vocare/internal/core/need"
	"github.com/example/vocare/internal/core/profile"
	"github.com/example/vocare/internal/core/recommend"
	"github.com/example/vocare/internal/ctxutil"
	"github.com/example/vocare/internal/ports/secondary"
)

const testUser = "user-1"

func userCtx() context.Context {
	return ctxutil.WithUserID(context.Background(), testUser)
}

// ============================================================================
// Mock Implementations
// ============================================================================

// mockProfileRepository implements secondary.ProfileRepository for testing.
type mockProfileRepository struct {
	profiles map[string]*profile.Profile
	getErr   error
	saveErr  error
}

var _ secondary.ProfileRepository = (*mockProfileRepository)(nil)

func newMockProfileRepository() *mockProfileRepository {
	return &mockProfileRepository{profiles: make(map[string]*profile.Profile)}
}

func (m *mockProfileRepository) Get(ctx context.Context, userID string) (*profile.Profile, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *mockProfileRepository) Save(ctx context.Context, userID string, p *profile.Profile) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *p
	m.profiles[userID] = &cp
	return nil
}

// mockMissionRepository implements secondary.MissionRepository for testing.
type mockMissionRepository struct {
	missions map[string][]mission.Mission
	getErr   error
	putErr   error
	puts     int
}

var _ secondary.MissionRepository = (*mockMissionRepository)(nil)

func newMockMissionRepository() *mockMissionRepository {
	return &mockMissionRepository{missions: make(map[string][]mission.Mission)}
}

func (m *mockMissionRepository) GetMissions(ctx context.Context, userID string) ([]mission.Mission, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	out := make([]mission.Mission, len(m.missions[userID]))
	copy(out, m.missions[userID])
	return out, nil
}

func (m *mockMissionRepository) PutMissions(ctx context.Context, userID string, missions []mission.Mission) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.puts++
	stored := make([]mission.Mission, len(missions))
	copy(stored, missions)
	m.missions[userID] = stored
	return nil
}

func (m *mockMissionRepository) ListUsersWithCurrent(ctx context.Context) ([]string, error) {
	var users []string
	for userID, missions := range m.missions {
		for _, ms := range missions {
			if ms.IsCurrent() {
				users = append(users, userID)
				break
			}
		}
	}
	sort.Strings(users)
	return users, nil
}

// mockJournalRepository implements secondary.JournalRepository for testing.
type mockJournalRepository struct {
	entries   map[string][]journal.Entry
	createErr error
}

var _ secondary.JournalRepository = (*mockJournalRepository)(nil)

func newMockJournalRepository() *mockJournalRepository {
	return &mockJournalRepository{entries: make(map[string][]journal.Entry)}
}

func (m *mockJournalRepository) Create(ctx context.Context, userID string, e *journal.Entry) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.entries[userID] = append([]journal.Entry{*e}, m.entries[userID]...)
	return nil
}

func (m *mockJournalRepository) ListByUser(ctx context.Context, userID string, limit int) ([]journal.Entry, error) {
	entries := m.entries[userID]
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (m *mockJournalRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	return len(m.entries[userID]), nil
}

// mockNeedRepository implements secondary.NeedRepository for testing.
type mockNeedRepository struct {
	needs       map[string]*need.BoardNeed
	acceptances map[string]map[string]bool
	listOpenErr error
	createErr   error
}

var _ secondary.NeedRepository = (*mockNeedRepository)(nil)

func newMockNeedRepository() *mockNeedRepository {
	return &mockNeedRepository{
		needs:       make(map[string]*need.BoardNeed),
		acceptances: make(map[string]map[string]bool),
	}
}

func (m *mockNeedRepository) add(n need.BoardNeed) {
	m.needs[n.ID] = &n
}

func (m *mockNeedRepository) ListOpenNeeds(ctx context.Context) ([]need.Need, error) {
	if m.listOpenErr != nil {
		return nil, m.listOpenErr
	}
	var out []need.Need
	for _, n := range m.needs {
		if n.Status == need.StatusOpen {
			out = append(out, n.Need)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockNeedRepository) Create(ctx context.Context, n *need.BoardNeed) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.add(*n)
	return nil
}

func (m *mockNeedRepository) view(n *need.BoardNeed, viewerID string) *need.BoardNeed {
	cp := *n
	cp.AcceptanceCount = len(m.acceptances[n.ID])
	cp.CurrentUserAccepted = m.acceptances[n.ID][viewerID]
	return &cp
}

func (m *mockNeedRepository) GetByID(ctx context.Context, id, viewerID string) (*need.BoardNeed, error) {
	n, ok := m.needs[id]
	if !ok {
		return nil, secondary.ErrNotFound
	}
	return m.view(n, viewerID), nil
}

func (m *mockNeedRepository) List(ctx context.Context, viewerID string, filters secondary.NeedFilters) ([]*need.BoardNeed, error) {
	var out []*need.BoardNeed
	for _, n := range m.needs {
		if filters.Status != "" && n.Status != filters.Status {
			continue
		}
		if filters.Category != "" && n.Category != filters.Category {
			continue
		}
		out = append(out, m.view(n, viewerID))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockNeedRepository) AddAcceptance(ctx context.Context, needID, userID string, at time.Time) error {
	if m.acceptances[needID] == nil {
		m.acceptances[needID] = make(map[string]bool)
	}
	m.acceptances[needID][userID] = true
	return nil
}

func (m *mockNeedRepository) RemoveAcceptance(ctx context.Context, needID, userID string) error {
	delete(m.acceptances[needID], userID)
	return nil
}

func (m *mockNeedRepository) UpdateStatus(ctx context.Context, needID string, status need.Status) error {
	n, ok := m.needs[needID]
	if !ok {
		return secondary.ErrNotFound
	}
	n.Status = status
	return nil
}

// mockGenerator implements secondary.Generator for testing.
type mockGenerator struct {
	draft   recommend.Draft
	err     error
	delay   time.Duration
	calls   int
	lastReq secondary.GenerationRequest
}

var _ secondary.Generator = (*mockGenerator)(nil)

func (g *mockGenerator) Name() string { return "mock" }

func (g *mockGenerator) Generate(ctx context.Context, req secondary.GenerationRequest) (recommend.Draft, error) {
	g.calls++
	g.lastReq = req
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return recommend.Draft{}, ctx.Err()
		}
	}
	if g.err != nil {
		return recommend.Draft{}, g.err
	}
	return g.draft, nil
}

// mockWeather implements secondary.WeatherProvider for testing.
type mockWeather struct {
	label string
	err   error
}

func (w mockWeather) CurrentLabel(ctx context.Context) (string, error) {
	return w.label, w.err
}

// recordingObserver implements secondary.GenerationObserver for testing.
type recordingObserver struct {
	mu          sync.Mutex
	outcomes    []string
	needsLoaded []bool
}

func (o *recordingObserver) ObserveGeneration(backend, outcome string, elapsed time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, backend+":"+outcome)
}

func (o *recordingObserver) ObserveNeedsLoad(ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.needsLoaded = append(o.needsLoaded, ok)
}

var errBackend = errors.New("backend unavailable")
