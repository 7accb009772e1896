package app

import (
	"context"
	"testing"
	"time"

	"github.com/example/vocare/internal/core/mission"
	"github.com/example/vocare/internal/core/recommend"
	"github.com/example/vocare/internal/ports/secondary"
)

func TestResolver_OfflineUsesRules(t *testing.T) {
	r := NewResolver(nil, nil, 0, nil, nil)
	req := secondary.GenerationRequest{Context: recommend.Context{Mood: recommend.MoodBored}}

	draft, source := r.Resolve(context.Background(), req)

	if source != mission.SourceFallback {
		t.Errorf("source = %q, want fallback", source)
	}
	if draft.Category != recommend.CategoryComfort {
		t.Errorf("Category = %q, want comfort", draft.Category)
	}
}

func TestResolver_FallbackIsDeterministic(t *testing.T) {
	r := NewResolver(&mockGenerator{err: errBackend}, nil, time.Second, nil, nil)
	req := secondary.GenerationRequest{Context: recommend.Context{Mood: recommend.MoodOther, MoodText: "we broke up"}}

	first, _ := r.Resolve(context.Background(), req)
	for i := 0; i < 10; i++ {
		if got, _ := r.Resolve(context.Background(), req); got.Category != first.Category || got.Title != first.Title {
			t.Fatalf("Resolve() call %d = %q/%q, want %q/%q", i, got.Category, got.Title, first.Category, first.Title)
		}
	}
}

func TestResolver_FallbackGeneratorErrorStillAnswers(t *testing.T) {
	r := NewResolver(&mockGenerator{err: errBackend}, &mockGenerator{err: errBackend}, time.Second, nil, nil)
	req := secondary.GenerationRequest{Context: recommend.Context{Mood: recommend.MoodAnxious}}

	draft, source := r.Resolve(context.Background(), req)

	if source != mission.SourceFallback || draft.Title == "" {
		t.Errorf("Resolve() = %+v, %q", draft, source)
	}
}
