package app

import (
	"context"

	"github.com/example/vocare/internal/core/recommend"
	"github.com/example/vocare/internal/ports/secondary"
)

// RuleBasedGenerator is the deterministic, offline generator.
type RuleBasedGenerator struct{}

var _ secondary.Generator = (*RuleBasedGenerator)(nil)

// NewRuleBasedGenerator creates a RuleBasedGenerator.
func NewRuleBasedGenerator() *RuleBasedGenerator {
	return &RuleBasedGenerator{}
}

// Name implements secondary.Generator.
func (g *RuleBasedGenerator) Name() string { return "rules" }

// Generate selects a fallback template. It never fails.
func (g *RuleBasedGenerator) Generate(_ context.Context, req secondary.GenerationRequest) (recommend.Draft, error) {
	return recommend.Fallback(req.Context, req.RecentTitles), nil
}
