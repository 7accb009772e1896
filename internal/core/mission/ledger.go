package mission

import (
	"sort"
	"time"
)

// RecentTitleLimit bounds the anti-repetition list handed to generators.
const RecentTitleLimit = 5

// Ledger is one user's mission aggregate: the current-mission slot plus
// archived history (newest first). Transition methods never mutate the
// receiver; they return the next ledger.
type Ledger struct {
	Current *Mission
	History []Mission
}

// LoadLedger splits a stored mission list into the current slot and history.
// The newest unarchived mission becomes current. Older unarchived missions,
// which the single-slot rule forbids, are archived in place so they cannot
// resurface; pending or active ones are recorded as skipped.
func LoadLedger(all []Mission) Ledger {
	sorted := make([]Mission, len(all))
	copy(sorted, all)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	var ledger Ledger
	for _, m := range sorted {
		if m.IsCurrent() && ledger.Current == nil {
			current := m
			ledger.Current = &current
			continue
		}
		if m.IsCurrent() {
			archivedAt := m.CreatedAt
			m.ArchivedAt = &archivedAt
			if m.Status == StatusPending || m.Status == StatusActive {
				m.Status = StatusSkipped
			}
		}
		ledger.History = append(ledger.History, m)
	}
	return ledger
}

// Missions flattens the ledger back into the stored representation, current first.
func (l Ledger) Missions() []Mission {
	out := make([]Mission, 0, len(l.History)+1)
	if l.Current != nil {
		out = append(out, *l.Current)
	}
	return append(out, l.History...)
}

// StateContext builds the guard input describing the current slot.
func (l Ledger) StateContext() StateContext {
	if l.Current == nil {
		return StateContext{}
	}
	return StateContext{
		MissionID:  l.Current.ID,
		HasCurrent: true,
		Status:     l.Current.Status,
	}
}

// RecentTitles returns up to RecentTitleLimit titles of the most recently
// created completed or skipped missions.
func (l Ledger) RecentTitles() []string {
	titles := make([]string, 0, RecentTitleLimit)
	for _, m := range l.History {
		if len(titles) == RecentTitleLimit {
			break
		}
		if m.Status != StatusCompleted && m.Status != StatusSkipped {
			continue
		}
		titles = append(titles, m.Title)
	}
	return titles
}

// Install places a freshly generated mission in the current slot.
// A pending mission already in the slot is skipped into history first.
func (l Ledger) Install(m Mission, now time.Time) (Ledger, error) {
	if result := CanGenerateMission(l.StateContext()); !result.Allowed {
		return l, result.Error()
	}

	next := l.clone()
	if next.Current != nil {
		skipped, err := next.Skip(now)
		if err != nil {
			return l, err
		}
		next = skipped
	}
	next.Current = &m
	return next, nil
}

// Accept moves the current mission from pending to active.
func (l Ledger) Accept(now time.Time) (Ledger, error) {
	if result := CanAcceptMission(l.StateContext()); !result.Allowed {
		return l, result.Error()
	}

	next := l.clone()
	transition := ApplyStatusTransition(StatusActive, now)
	next.Current.Status = transition.NewStatus
	return next, nil
}

// Complete moves the current mission from active to completed, stamping CompletedAt.
func (l Ledger) Complete(now time.Time) (Ledger, error) {
	if result := CanCompleteMission(l.StateContext()); !result.Allowed {
		return l, result.Error()
	}

	next := l.clone()
	transition := ApplyStatusTransition(StatusCompleted, now)
	next.Current.Status = transition.NewStatus
	next.Current.CompletedAt = transition.CompletedAt
	return next, nil
}

// Skip moves a pending mission straight into history.
func (l Ledger) Skip(now time.Time) (Ledger, error) {
	if result := CanSkipMission(l.StateContext()); !result.Allowed {
		return l, result.Error()
	}

	next := l.clone()
	transition := ApplyStatusTransition(StatusSkipped, now)
	next.Current.Status = transition.NewStatus
	next.Current.ArchivedAt = transition.ArchivedAt
	return next.archiveCurrent(), nil
}

// Reflect records the felt-alive signal on the current mission and archives
// it, clearing the slot. A mission that was never completed is closed out
// along a legal edge first: pending becomes skipped, active becomes completed.
func (l Ledger) Reflect(feltAlive bool, now time.Time) (Ledger, error) {
	if result := CanReflectMission(l.StateContext()); !result.Allowed {
		return l, result.Error()
	}

	next := l.clone()
	switch next.Current.Status {
	case StatusPending:
		next.Current.Status = ApplyStatusTransition(StatusSkipped, now).NewStatus
	case StatusActive:
		transition := ApplyStatusTransition(StatusCompleted, now)
		next.Current.Status = transition.NewStatus
		next.Current.CompletedAt = transition.CompletedAt
	}

	alive := feltAlive
	archivedAt := now
	next.Current.FeltAlive = &alive
	next.Current.ArchivedAt = &archivedAt
	return next.archiveCurrent(), nil
}

// ExpireStale skips a pending current mission created more than staleAfter
// before now. It reports whether anything changed.
func (l Ledger) ExpireStale(now time.Time, staleAfter time.Duration) (Ledger, bool) {
	if l.Current == nil || l.Current.Status != StatusPending {
		return l, false
	}
	if now.Sub(l.Current.CreatedAt) < staleAfter {
		return l, false
	}
	next, err := l.Skip(now)
	if err != nil {
		return l, false
	}
	return next, true
}

func (l Ledger) archiveCurrent() Ledger {
	archived := *l.Current
	l.Current = nil
	l.History = append([]Mission{archived}, l.History...)
	return l
}

func (l Ledger) clone() Ledger {
	next := Ledger{History: make([]Mission, len(l.History))}
	copy(next.History, l.History)
	if l.Current != nil {
		current := *l.Current
		next.Current = &current
	}
	return next
}
