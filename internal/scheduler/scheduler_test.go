package scheduler

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSweeper struct {
	n     int
	err   error
	calls int
}

func (f *fakeSweeper) ExpireStaleMissions(ctx context.Context) (int, error) {
	f.calls++
	return f.n, f.err
}

type fakePrewarmer struct {
	calls int
	err   error
}

func (f *fakePrewarmer) Refresh(ctx context.Context) (string, error) {
	f.calls++
	return "Clear sky, 68°F (20°C)", f.err
}

func TestStart_RegistersJobs(t *testing.T) {
	s := New(Config{Sweep: "@every 1h", Prewarm: "*/10 * * * *"}, &fakeSweeper{}, &fakePrewarmer{}, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer s.Stop(context.Background())

	jobs := s.Jobs()
	sort.Strings(jobs)
	if len(jobs) != 2 || jobs[0] != "stale_sweep" || jobs[1] != "weather_prewarm" {
		t.Errorf("Jobs() = %v", jobs)
	}
}

func TestStart_SkipsDisabledJobs(t *testing.T) {
	s := New(Config{Sweep: "@every 1h", Prewarm: "@every 1h"}, &fakeSweeper{}, nil, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer s.Stop(context.Background())

	if jobs := s.Jobs(); len(jobs) != 1 {
		t.Errorf("Jobs() = %v, want only the sweep", jobs)
	}
}

func TestStart_InvalidSchedule(t *testing.T) {
	s := New(Config{Sweep: "every so often"}, &fakeSweeper{}, nil, nil)
	if err := s.Start(); err == nil {
		t.Error("Start() error = nil, want invalid schedule error")
	}
}

func TestRunSweep_Logs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sweeper := &fakeSweeper{n: 2}
	s := New(Config{}, sweeper, nil, zap.New(core))

	s.RunSweep(context.Background())
	sweeper.err = errors.New("db locked")
	s.RunSweep(context.Background())

	if sweeper.calls != 2 {
		t.Errorf("calls = %d, want 2", sweeper.calls)
	}
	if logs.FilterMessage("stale missions skipped").Len() != 1 {
		t.Error("expected one info log for expired missions")
	}
	if logs.FilterMessage("stale sweep failed").Len() != 1 {
		t.Error("expected one warning for the failed sweep")
	}
}

func TestRunPrewarm(t *testing.T) {
	p := &fakePrewarmer{}
	s := New(Config{}, &fakeSweeper{}, p, nil)

	s.RunPrewarm(context.Background())
	p.err = errors.New("offline")
	s.RunPrewarm(context.Background())

	if p.calls != 2 {
		t.Errorf("calls = %d, want 2", p.calls)
	}
}

func TestStop_RespectsContext(t *testing.T) {
	s := New(Config{}, &fakeSweeper{}, nil, nil)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
