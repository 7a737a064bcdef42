package orchestrator

import (
	"github.com/hireflow-dev/hireflow/pkg/session"
)

// Transition is the pure stage function. complete reports whether the
// mandatory attributes meet the confidence threshold. Stages only move
// forward; the single way back is a reset, which returns to requirement
// gathering.
func Transition(current session.Stage, complete bool, intent Intent) session.Stage {
	if intent == IntentReset {
		return session.StageExtracting
	}

	switch current {
	case session.StageGreeting:
		if intent == IntentGreeting {
			return session.StageGreeting
		}
		if complete || intent == IntentRequestPackages {
			return session.StageRecommending
		}
		return session.StageExtracting

	case session.StageExtracting:
		// An explicit package request moves forward even when attributes
		// are still missing; the recommender's empty result then asks the
		// clarifying question.
		if complete || intent == IntentRequestPackages {
			return session.StageRecommending
		}
		return session.StageExtracting

	case session.StageRecommending:
		if intent == IntentAffirmative {
			return session.StageProposing
		}
		return session.StageRecommending

	case session.StageProposing:
		return session.StageFollowUp

	case session.StageFollowUp:
		// Sticky until the session expires.
		return session.StageFollowUp

	default:
		return session.StageExtracting
	}
}
