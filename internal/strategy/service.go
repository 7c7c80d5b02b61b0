package strategy

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/eurenemendes/ecofeira-backend/internal/comparison"
	pkgerrors "github.com/eurenemendes/ecofeira-backend/pkg/errors"
	"github.com/eurenemendes/ecofeira-backend/pkg/logger"
)

// Generator produces text from a prompt. *gemini.Client satisfies it.
type Generator interface {
	Enabled() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

// StrategyDTO is the narrated shopping strategy for a session's list.
type StrategyDTO struct {
	Narrative  string                   `json:"narrative"`
	Generated  bool                     `json:"generated"`
	Comparison comparison.ComparisonDTO `json:"comparison"`
}

// ServiceParams groups dependencies for the strategy service.
type ServiceParams struct {
	Comparisons comparison.Service
	Generator   Generator
	Logger      *logger.Logger
}

// Service narrates the ranked comparison. Narration is best effort: any
// model failure falls back to a deterministic summary and never fails the
// request.
type Service interface {
	Narrate(ctx context.Context, sessionID uuid.UUID) (StrategyDTO, error)
}

type service struct {
	comparisons comparison.Service
	generator   Generator
	logg        *logger.Logger
}

// NewService builds a strategy service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Comparisons == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comparison service is required")
	}
	return &service{
		comparisons: params.Comparisons,
		generator:   params.Generator,
		logg:        params.Logger,
	}, nil
}

// Narrate runs the comparison and asks the model to phrase it. The numeric
// comparison is always returned, with or without a generated narrative.
func (s *service) Narrate(ctx context.Context, sessionID uuid.UUID) (StrategyDTO, error) {
	dto, err := s.comparisons.Compare(ctx, sessionID)
	if err != nil {
		return StrategyDTO{}, err
	}

	out := StrategyDTO{Comparison: dto}

	if s.generator == nil || !s.generator.Enabled() || len(dto.Options) == 0 {
		out.Narrative = FallbackNarrative(dto)
		return out, nil
	}

	text, err := s.generator.Generate(ctx, BuildPrompt(dto))
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil && s.logg != nil {
			s.logg.Warn(ctx, "strategy narration failed, using fallback: "+err.Error())
		}
		out.Narrative = FallbackNarrative(dto)
		return out, nil
	}

	out.Narrative = strings.TrimSpace(text)
	out.Generated = true
	return out, nil
}
