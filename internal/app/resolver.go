package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/example/vocare/internal/core/mission"
	"github.com/example/vocare/internal/core/recommend"
	"github.com/example/vocare/internal/ports/secondary"
)

// DefaultGenerationTimeout bounds a single remote generation attempt.
const DefaultGenerationTimeout = 12 * time.Second

// Resolver tries the remote generator once and falls back to the rule-based
// generator on any error. There are no retries.
type Resolver struct {
	remote   secondary.Generator
	fallback secondary.Generator
	timeout  time.Duration
	observer secondary.GenerationObserver
	logger   *zap.Logger
}

// NewResolver creates a Resolver. remote may be nil (offline mode); a nil
// fallback defaults to the rule-based generator.
func NewResolver(
	remote secondary.Generator,
	fallback secondary.Generator,
	timeout time.Duration,
	observer secondary.GenerationObserver,
	logger *zap.Logger,
) *Resolver {
	if fallback == nil {
		fallback = NewRuleBasedGenerator()
	}
	if timeout <= 0 {
		timeout = DefaultGenerationTimeout
	}
	if observer == nil {
		observer = noopObserver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		remote:   remote,
		fallback: fallback,
		timeout:  timeout,
		observer: observer,
		logger:   logger,
	}
}

// Resolve always returns a usable draft along with which path produced it.
func (r *Resolver) Resolve(ctx context.Context, req secondary.GenerationRequest) (recommend.Draft, mission.Source) {
	if r.remote != nil {
		start := time.Now()
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		draft, err := r.remote.Generate(callCtx, req)
		cancel()
		if err == nil && recommend.SelectCategory(req.Context) == recommend.CategoryGrief {
			err = recommend.CheckGriefDraft(draft, req.NeedLocations)
		}
		elapsed := time.Since(start)

		if err == nil {
			r.observer.ObserveGeneration(r.remote.Name(), secondary.OutcomeSuccess, elapsed)
			r.logger.Debug("mission generated",
				zap.String("backend", r.remote.Name()),
				zap.Duration("elapsed", elapsed))
			return draft, mission.SourceRemote
		}

		r.observer.ObserveGeneration(r.remote.Name(), secondary.OutcomeFallback, elapsed)
		r.logger.Warn("generator failed, using fallback",
			zap.String("backend", r.remote.Name()),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
	}

	draft, err := r.fallback.Generate(ctx, req)
	if err != nil {
		r.logger.Error("fallback generator failed", zap.String("backend", r.fallback.Name()), zap.Error(err))
		draft = recommend.Fallback(req.Context, req.RecentTitles)
	}
	return draft, mission.SourceFallback
}

type noopObserver struct{}

func (noopObserver) ObserveGeneration(string, string, time.Duration) {}
func (noopObserver) ObserveNeedsLoad(bool)                           {}
