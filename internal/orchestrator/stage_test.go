package orchestrator

import (
	"testing"

	"github.com/hireflow-dev/hireflow/pkg/session"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name     string
		current  session.Stage
		complete bool
		intent   Intent
		want     session.Stage
	}{
		{"greeting stays on greeting", session.StageGreeting, false, IntentGreeting, session.StageGreeting},
		{"greeting to extracting", session.StageGreeting, false, IntentProvideInfo, session.StageExtracting},
		{"greeting skips ahead when complete", session.StageGreeting, true, IntentProvideInfo, session.StageRecommending},
		{"extracting holds until complete", session.StageExtracting, false, IntentProvideInfo, session.StageExtracting},
		{"extracting advances when complete", session.StageExtracting, true, IntentProvideInfo, session.StageRecommending},
		{"explicit package request advances early", session.StageExtracting, false, IntentRequestPackages, session.StageRecommending},
		{"recommending waits for agreement", session.StageRecommending, true, IntentProvideInfo, session.StageRecommending},
		{"agreement starts the proposal", session.StageRecommending, true, IntentAffirmative, session.StageProposing},
		{"proposing moves to follow-up", session.StageProposing, true, IntentProvideInfo, session.StageFollowUp},
		{"follow-up is sticky", session.StageFollowUp, true, IntentAffirmative, session.StageFollowUp},
		{"reset returns to extracting", session.StageFollowUp, true, IntentReset, session.StageExtracting},
		{"reset from recommending", session.StageRecommending, true, IntentReset, session.StageExtracting},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Transition(tt.current, tt.complete, tt.intent)
			if got != tt.want {
				t.Errorf("Transition(%s, %v, %s) = %s, want %s",
					tt.current, tt.complete, tt.intent, got, tt.want)
			}
		})
	}
}
