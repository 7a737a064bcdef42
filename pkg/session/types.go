// Package session provides durable per-conversation state: the stage the
// conversation is in, the accumulated hiring attributes, and the message
// transcript. Storage backends are pluggable; Redis for multi-node
// deployments and a file backend for single-node or offline use.
package session

import (
	"time"

	"github.com/hireflow-dev/hireflow/internal/entity"
)

// Stage is the conversation stage of a session.
type Stage string

const (
	// StageGreeting is the initial stage before any requirement signal.
	StageGreeting Stage = "GREETING"
	// StageExtracting gathers requirements until the mandatory attributes
	// are known with enough confidence.
	StageExtracting Stage = "EXTRACTING"
	// StageRecommending presents matching service packages.
	StageRecommending Stage = "RECOMMENDING"
	// StageProposing generates a concrete priced proposal.
	StageProposing Stage = "PROPOSING"
	// StageFollowUp handles scheduling and closing after a proposal.
	StageFollowUp Stage = "FOLLOW_UP"
)

// ValidStage reports whether s is one of the known stages.
func ValidStage(s Stage) bool {
	switch s {
	case StageGreeting, StageExtracting, StageRecommending, StageProposing, StageFollowUp:
		return true
	}
	return false
}

// Message is one transcript turn.
type Message struct {
	// Role is "user" or "assistant".
	Role string `json:"role"`
	// Text is the message content.
	Text string `json:"text"`
	// Timestamp is when the message was recorded.
	Timestamp time.Time `json:"timestamp"`
}

// Record is the complete durable state of one conversation session.
type Record struct {
	// SessionID uniquely identifies the session.
	SessionID string `json:"sessionId"`
	// Stage is the current conversation stage.
	Stage Stage `json:"stage"`
	// Entities is the accumulated hiring-attribute state.
	Entities entity.Entities `json:"entities"`
	// Messages is the ordered transcript.
	Messages []Message `json:"messages"`
	// ProposalCount is how many proposals this session has generated,
	// used to derive the next proposal ordinal.
	ProposalCount int `json:"proposalCount"`
	// CreatedAt is when the session started.
	CreatedAt time.Time `json:"createdAt"`
	// LastActiveAt is when the session last processed a turn.
	LastActiveAt time.Time `json:"lastActiveAt"`
}

// NewRecord returns a fresh session record in the greeting stage.
func NewRecord(sessionID string) *Record {
	now := time.Now().UTC()
	return &Record{
		SessionID:    sessionID,
		Stage:        StageGreeting,
		CreatedAt:    now,
		LastActiveAt: now,
	}
}

// Append adds a message to the transcript and touches the activity time.
func (r *Record) Append(role, text string) {
	now := time.Now().UTC()
	r.Messages = append(r.Messages, Message{Role: role, Text: text, Timestamp: now})
	r.LastActiveAt = now
}
