package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/hireflow-dev/hireflow/internal/entity"
	"github.com/hireflow-dev/hireflow/internal/extract"
	"github.com/hireflow-dev/hireflow/internal/observability"
	"github.com/hireflow-dev/hireflow/internal/proposal"
	"github.com/hireflow-dev/hireflow/internal/recommend"
	"github.com/hireflow-dev/hireflow/pkg/session"
)

// DefaultConfidenceThreshold gates the move from requirement gathering to
// recommendation.
const DefaultConfidenceThreshold = 0.5

const maxUtteranceLen = 4096

// ErrInvalidUtterance is returned for empty, oversized, or binary input.
var ErrInvalidUtterance = errors.New("invalid utterance")

// Config tunes the orchestrator.
type Config struct {
	// ConfidenceThreshold is the minimum per-attribute confidence for the
	// mandatory attributes to count as known.
	ConfidenceThreshold float64
}

// Response is the outcome of one processed turn.
type Response struct {
	// SessionID identifies the session, newly created when the request
	// carried none.
	SessionID string
	// Text is the assistant reply.
	Text string
	// Stage is the stage the session is in after this turn.
	Stage session.Stage
	// Entities is the accumulated requirement state after this turn.
	Entities entity.Entities
	// Confidence is the overall extraction confidence for the state.
	Confidence float64
	// Degraded is set when the model extraction pass was unavailable.
	Degraded bool
	// Proposal is set on the turn that generates one.
	Proposal *proposal.Proposal
}

// Orchestrator processes conversation turns end to end. Turns for the same
// session serialize on the session lock; unrelated sessions proceed
// independently.
type Orchestrator struct {
	memory      *session.Memory
	engine      *extract.Engine
	recommender *recommend.Engine
	proposals   *proposal.Generator
	threshold   float64
}

// New wires the orchestrator from its collaborators.
func New(memory *session.Memory, engine *extract.Engine, recommender *recommend.Engine, proposals *proposal.Generator, cfg Config) *Orchestrator {
	threshold := cfg.ConfidenceThreshold
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	return &Orchestrator{
		memory:      memory,
		engine:      engine,
		recommender: recommender,
		proposals:   proposals,
		threshold:   threshold,
	}
}

// ProcessTurn validates the utterance, runs the turn under the session
// lock, and returns the reply. An empty sessionID starts a new session.
func (o *Orchestrator) ProcessTurn(ctx context.Context, sessionID, utterance string) (*Response, error) {
	utterance = strings.TrimSpace(utterance)
	if err := validateUtterance(utterance); err != nil {
		return nil, err
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	ctx, span := observability.StartSpan(ctx, "orchestrator.ProcessTurn",
		attribute.String("session.id", sessionID))
	defer span.End()

	// A client disconnect must not tear the session write or abandon the
	// extraction result. The model pass carries its own timeout.
	turnCtx := context.WithoutCancel(ctx)

	var resp *Response
	_, err := o.memory.Update(turnCtx, sessionID, func(r *session.Record) error {
		resp = o.turn(turnCtx, r, utterance)
		return nil
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("session.stage", string(resp.Stage)))
	return resp, nil
}

func (o *Orchestrator) turn(ctx context.Context, r *session.Record, utterance string) *Response {
	prevStage := r.Stage
	r.Append("user", utterance)
	intent := Classify(utterance)

	res := o.engine.Extract(ctx, utterance, r.Entities)
	confidence := res.Confidence

	if intent == IntentReset {
		// Corrected values displace the contradicted ones regardless of
		// the old confidence; untouched attributes survive.
		r.Entities = entity.Overwrite(r.Entities, res.Turn)
		confidence = r.Entities.OverallConfidence()
		if res.Degraded {
			confidence *= extract.DegradedFactor
		}
	} else {
		r.Entities = res.Entities
	}

	complete := r.Entities.Complete(o.threshold)
	newStage := Transition(prevStage, complete, intent)

	resp := &Response{
		SessionID:  r.SessionID,
		Stage:      newStage,
		Entities:   r.Entities,
		Confidence: confidence,
		Degraded:   res.Degraded,
	}
	resp.Text = o.respond(r, resp, intent)

	// respond may have walked the stage back (agreement with no applicable
	// package); the stored stage must always match what the caller was told.
	r.Stage = resp.Stage
	r.Append("assistant", resp.Text)

	observability.TurnsTotal.WithLabelValues(string(resp.Stage)).Inc()
	if resp.Stage != prevStage {
		observability.StageTransitions.WithLabelValues(string(prevStage), string(resp.Stage)).Inc()
	}
	return resp
}

func (o *Orchestrator) respond(r *session.Record, resp *Response, intent Intent) string {
	switch resp.Stage {
	case session.StageGreeting:
		return greetingText

	case session.StageExtracting:
		missing := r.Entities.Missing(o.threshold)
		if intent == IntentReset {
			return resetAcknowledgement(missing)
		}
		return clarifyingQuestion(missing)

	case session.StageRecommending:
		return recommendationText(o.recommender.Recommend(r.Entities))

	case session.StageProposing:
		recs := o.recommender.Recommend(r.Entities)
		if len(recs) == 0 {
			// Requirements shifted under us; fall back to recommending.
			resp.Stage = session.StageRecommending
			return recommendationText(recs)
		}
		r.ProposalCount++
		p := o.proposals.Generate(recs[0].Package, r.Entities, r.SessionID, r.ProposalCount)
		resp.Proposal = &p
		return p.Summary

	case session.StageFollowUp:
		return followUpText(intent)

	default:
		return clarifyingQuestion(r.Entities.Missing(o.threshold))
	}
}

func validateUtterance(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty message", ErrInvalidUtterance)
	}
	if len(s) > maxUtteranceLen {
		return fmt.Errorf("%w: message exceeds %d bytes", ErrInvalidUtterance, maxUtteranceLen)
	}
	for _, c := range s {
		if c < 0x20 && c != '\n' && c != '\t' && c != '\r' {
			return fmt.Errorf("%w: control characters", ErrInvalidUtterance)
		}
	}
	return nil
}
