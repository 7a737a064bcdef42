// Package orchestrator drives the conversation: it classifies the user's
// intent, advances the stage machine, and composes the reply for each turn.
package orchestrator

import (
	"regexp"
	"strings"
)

// Intent is the lexically classified purpose of a user turn.
type Intent string

const (
	// IntentProvideInfo is the default: the turn carries requirements.
	IntentProvideInfo Intent = "provide_info"
	// IntentGreeting is a greeting with no requirement signal.
	IntentGreeting Intent = "greeting"
	// IntentRequestPackages asks to see matching packages.
	IntentRequestPackages Intent = "request_packages"
	// IntentAffirmative accepts an offer or selects a package.
	IntentAffirmative Intent = "affirmative"
	// IntentReset contradicts earlier requirements and starts part of the
	// gathering over.
	IntentReset Intent = "reset"
	// IntentScheduling asks to set up a call or meeting.
	IntentScheduling Intent = "scheduling"
)

var (
	greetingRe = regexp.MustCompile(`(?i)^\s*(?:hi|hello|hey|good\s+(?:morning|afternoon|evening)|greetings|namaste)[\s!.,]*$`)
	packagesRe = regexp.MustCompile(`(?i)\b(?:packages?|options?|plans?|offerings?|what\s+(?:do\s+you|can\s+you)\s+(?:offer|do)|show\s+me)\b`)
	// Affirmatives also cover picking a package by ordinal or "that one".
	affirmativeRe = regexp.MustCompile(`(?i)\b(?:yes|yep|yeah|sure|sounds\s+good|let'?s\s+(?:do|go)|go\s+ahead|proceed|the\s+(?:first|second|third)\s+one|that\s+one|i'?ll\s+take|send\s+(?:me\s+)?(?:the\s+)?proposal|works\s+for\s+(?:me|us))\b`)
	// The ",\s*not" form catches corrections like "in Pune, not Mumbai"
	// without firing on benign negations ("we're not in a hurry").
	resetRe      = regexp.MustCompile(`(?i)\b(?:actually|instead|scratch\s+that|never\s*mind|changed?\s+(?:my|our)\s+mind|no\s+longer|correction|wait,?\s+no|forget\s+(?:that|it)|start\s+over)\b|,\s*not\s+\w`)
	schedulingRe = regexp.MustCompile(`(?i)\b(?:schedule|book|set\s+up|arrange)\b.*\b(?:call|meeting|demo|chat)\b|\b(?:call|meeting|demo)\b.*\b(?:tomorrow|today|next\s+week|monday|tuesday|wednesday|thursday|friday)\b|\bwhen\s+can\s+we\s+(?:talk|meet)\b`)
)

// Classify maps an utterance onto an intent with lexical signals only.
// Precedence: reset beats everything (a contradiction must be honored even
// when the message also carries new info), then scheduling, affirmation,
// package requests, and the pure greeting.
func Classify(utterance string) Intent {
	switch {
	case resetRe.MatchString(utterance):
		return IntentReset
	case schedulingRe.MatchString(utterance):
		return IntentScheduling
	case affirmativeRe.MatchString(utterance):
		return IntentAffirmative
	case packagesRe.MatchString(utterance):
		return IntentRequestPackages
	case greetingRe.MatchString(strings.TrimSpace(utterance)):
		return IntentGreeting
	default:
		return IntentProvideInfo
	}
}
