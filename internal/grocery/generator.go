package grocery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-grocery-list/internal/llm"
	"ai-grocery-list/internal/shared"

	"go.uber.org/zap"
)

const agentName = "GroceryList"

// MetricsRecorder receives metadata for every model call.
type MetricsRecorder interface {
	RecordMeta(meta shared.AgentMeta) error
}

// Result is the outcome of a successful generation.
type Result struct {
	RecordID    int64
	GroceryList GroceryList
	Meta        shared.AgentMeta
}

// Generator turns a meal plan into a stored, validated grocery list with a
// single model call. Nothing is retried.
type Generator struct {
	textGen  llm.TextGenerator
	repo     Repository
	recorder MetricsRecorder
	logger   *zap.Logger
}

// NewGenerator creates a Generator. recorder may be nil.
func NewGenerator(textGen llm.TextGenerator, repo Repository, recorder MetricsRecorder, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		textGen:  textGen,
		repo:     repo,
		recorder: recorder,
		logger:   logger,
	}
}

// Generate validates the plan, asks the model for a grocery list, validates
// the completion and persists the pair. Errors wrap ErrInvalidMealPlan,
// ErrUpstream, ErrInvalidCompletion or ErrPersistence.
func (g *Generator) Generate(ctx context.Context, plan MealPlan) (*Result, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	prompt, err := BuildPrompt(plan)
	if err != nil {
		return nil, fmt.Errorf("failed to build grocery prompt: %w", err)
	}

	start := time.Now()
	resp, err := g.textGen.GenerateContent(ctx, prompt)
	meta := shared.AgentMeta{
		AgentName: agentName,
		Usage:     resp.Usage,
		Latency:   time.Since(start),
		Outcome:   "ok",
	}
	if err != nil {
		meta.Outcome = "upstream_error"
		g.record(meta)
		if !errors.Is(err, ErrUpstream) {
			err = fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		return nil, err
	}

	list, err := ParseCompletion(resp.Content)
	if err != nil {
		meta.Outcome = "invalid_completion"
		g.record(meta)
		g.logger.Debug("rejected completion", zap.String("completion", resp.Content))
		return nil, err
	}
	g.record(meta)

	id, err := g.repo.Save(ctx, plan, list)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	g.logger.Info("grocery list generated",
		zap.Int64("record_id", id),
		zap.Int("meals", len(plan.Meals())),
		zap.Int("categories", len(list.Categories)),
		zap.Int("items", list.ItemCount()),
		zap.Duration("latency", meta.Latency),
	)

	return &Result{RecordID: id, GroceryList: list, Meta: meta}, nil
}

func (g *Generator) record(meta shared.AgentMeta) {
	if g.recorder == nil {
		return
	}
	if err := g.recorder.RecordMeta(meta); err != nil {
		g.logger.Warn("failed to record metrics", zap.String("agent", meta.AgentName), zap.Error(err))
	}
}
