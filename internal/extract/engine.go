package extract

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hireflow-dev/hireflow/internal/entity"
	"github.com/hireflow-dev/hireflow/internal/llm/provider"
	"github.com/hireflow-dev/hireflow/internal/observability"
)

const (
	defaultLLMTimeout = 5 * time.Second
	// DegradedFactor discounts the turn confidence when the model pass was
	// unavailable and only rule output contributed.
	DegradedFactor = 0.9
	// defaultUrgencyConfidence is the score attached to the assumed medium
	// urgency when no turn has ever carried an urgency signal.
	defaultUrgencyConfidence = 0.5
)

// Config tunes the hybrid engine.
type Config struct {
	// LLMTimeout bounds the model pass per turn. Zero means the default.
	LLMTimeout time.Duration
	// MaxRetries is how many times a retryable model failure is retried
	// within the timeout budget.
	MaxRetries int
}

// Result is the outcome of one extraction turn.
type Result struct {
	// Entities is the fused state after merging this turn into the prior.
	Entities entity.Entities
	// Turn holds only what this utterance contributed, before the merge
	// with prior state and before defaults. Used by reset handling to
	// overwrite contradicted attributes.
	Turn entity.Entities
	// Confidence is the overall confidence over present attributes,
	// discounted when the turn was degraded.
	Confidence float64
	// Degraded is set when the model pass failed or timed out and only the
	// rule pass contributed.
	Degraded bool
}

// Engine fuses the rule pass and the model pass. The model pass is
// best-effort: its failure degrades the turn, it never fails it.
type Engine struct {
	rules      *RuleExtractor
	llm        *LLMExtractor
	timeout    time.Duration
	maxRetries int
}

// NewEngine builds a hybrid engine. llm may be nil to run rule-only, in
// which case every turn is reported as degraded.
func NewEngine(llm *LLMExtractor, cfg Config) *Engine {
	timeout := cfg.LLMTimeout
	if timeout <= 0 {
		timeout = defaultLLMTimeout
	}
	return &Engine{
		rules:      NewRuleExtractor(),
		llm:        llm,
		timeout:    timeout,
		maxRetries: cfg.MaxRetries,
	}
}

// Extract runs both passes concurrently over the utterance, fuses their
// output into prior, and scores the turn. Rule output is merged first so a
// model value only displaces a rule value at equal or higher confidence.
func (e *Engine) Extract(ctx context.Context, utterance string, prior entity.Entities) Result {
	start := time.Now()
	defer func() {
		observability.ExtractionDuration.Observe(time.Since(start).Seconds())
	}()

	var (
		ruleOut  entity.Entities
		llmOut   entity.Entities
		llmErr   error
		degraded bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ruleOut = e.rules.Extract(utterance)
		return nil
	})
	g.Go(func() error {
		if e.llm == nil {
			llmErr = errors.New("no model extractor configured")
			return nil
		}
		llmOut, llmErr = e.extractLLM(gctx, utterance)
		return nil
	})
	_ = g.Wait()

	if llmErr != nil {
		degraded = true
		observability.LLMFallbacks.Inc()
		log.Printf("extract: model pass unavailable, using rule output only: %v", llmErr)
	}

	turn := entity.Merge(ruleOut, llmOut)
	fused := entity.Merge(prior, turn)
	if !fused.Urgency.Present() {
		fused.Urgency = entity.StringAttr{
			Value:      string(entity.UrgencyMedium),
			Confidence: defaultUrgencyConfidence,
			Source:     entity.SourceRule,
		}
	}
	if !fused.RoleCount.Present() && fused.Roles.Present() {
		fused.RoleCount = entity.IntAttr{
			Value:      len(fused.Roles.Values),
			Confidence: fused.Roles.Confidence,
			Source:     fused.Roles.Source,
		}
	}

	conf := fused.OverallConfidence()
	if degraded {
		conf *= DegradedFactor
	}

	return Result{Entities: fused, Turn: turn, Confidence: conf, Degraded: degraded}
}

// extractLLM runs the model pass under the per-turn timeout, retrying
// retryable provider failures.
func (e *Engine) extractLLM(ctx context.Context, utterance string) (entity.Entities, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		out, err := e.llm.Extract(ctx, utterance)
		if err == nil {
			return out, nil
		}
		lastErr = err

		var pe *provider.ProviderError
		if !errors.As(err, &pe) || !pe.IsRetryable || ctx.Err() != nil {
			break
		}
	}
	return entity.Entities{}, lastErr
}
