// Package entity defines the typed hiring-attribute schema shared by the
// extraction engine and session memory. Every attribute carries a value, a
// confidence score in [0,1], and the extractor that produced it, so that
// merges can be resolved by confidence comparison instead of overwrite order.
package entity

import (
	"strings"
)

// Source identifies which extractor produced an attribute value.
type Source string

const (
	// SourceRule marks values produced by the pattern/keyword extractor.
	SourceRule Source = "rule"
	// SourceLLM marks values produced by the model-based extractor.
	SourceLLM Source = "llm"
)

// Urgency is the normalized three-plus-one level urgency enum.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
	UrgencyUrgent Urgency = "urgent"
)

// ValidUrgency reports whether s is one of the known urgency levels.
func ValidUrgency(s string) bool {
	switch Urgency(strings.ToLower(s)) {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyUrgent:
		return true
	}
	return false
}

// StringAttr is a single-valued attribute with extraction metadata.
type StringAttr struct {
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
	Source     Source  `json:"source"`
}

// Present reports whether the attribute holds an extracted value.
func (a StringAttr) Present() bool {
	return a.Value != "" && a.Confidence > 0
}

// StringsAttr is an ordered multi-valued attribute (e.g. roles).
type StringsAttr struct {
	Values     []string `json:"values"`
	Confidence float64  `json:"confidence"`
	Source     Source   `json:"source"`
}

// Present reports whether the attribute holds at least one value.
func (a StringsAttr) Present() bool {
	return len(a.Values) > 0 && a.Confidence > 0
}

// IntAttr is a numeric attribute (e.g. role count).
type IntAttr struct {
	Value      int     `json:"value"`
	Confidence float64 `json:"confidence"`
	Source     Source  `json:"source"`
}

// Present reports whether the attribute holds an extracted value.
func (a IntAttr) Present() bool {
	return a.Value > 0 && a.Confidence > 0
}

// Entities is the accumulated set of hiring attributes for a session.
// Industry, Location and Roles are the mandatory attributes that gate the
// move from clarification to recommendation; the rest are optional color.
type Entities struct {
	Industry   StringAttr  `json:"industry"`
	Location   StringAttr  `json:"location"`
	Roles      StringsAttr `json:"roles"`
	RoleCount  IntAttr     `json:"roleCount"`
	Urgency    StringAttr  `json:"urgency"`
	Budget     StringAttr  `json:"budget"`
	Company    StringAttr  `json:"company,omitempty"`
	Experience StringAttr  `json:"experience,omitempty"`
}

// UrgencyLevel returns the normalized urgency, defaulting to medium when
// nothing has been extracted yet.
func (e Entities) UrgencyLevel() Urgency {
	if !e.Urgency.Present() {
		return UrgencyMedium
	}
	return Urgency(strings.ToLower(e.Urgency.Value))
}

// EffectiveRoleCount returns the extracted role count, falling back to the
// length of the role list when no explicit count was given.
func (e Entities) EffectiveRoleCount() int {
	if e.RoleCount.Present() {
		return e.RoleCount.Value
	}
	return len(e.Roles.Values)
}

// Missing returns the names of mandatory attributes that are absent or
// below the given confidence threshold, in a fixed order.
func (e Entities) Missing(threshold float64) []string {
	var out []string
	if !e.Industry.Present() || e.Industry.Confidence < threshold {
		out = append(out, "industry")
	}
	if !e.Roles.Present() || e.Roles.Confidence < threshold {
		out = append(out, "roles")
	}
	if !e.Location.Present() || e.Location.Confidence < threshold {
		out = append(out, "location")
	}
	return out
}

// Complete reports whether all mandatory attributes meet the threshold.
func (e Entities) Complete(threshold float64) bool {
	return len(e.Missing(threshold)) == 0
}

// OverallConfidence returns the mean confidence over present attributes,
// or zero when nothing has been extracted.
func (e Entities) OverallConfidence() float64 {
	var sum float64
	var n int
	add := func(present bool, c float64) {
		if present {
			sum += c
			n++
		}
	}
	add(e.Industry.Present(), e.Industry.Confidence)
	add(e.Location.Present(), e.Location.Confidence)
	add(e.Roles.Present(), e.Roles.Confidence)
	add(e.RoleCount.Present(), e.RoleCount.Confidence)
	add(e.Urgency.Present(), e.Urgency.Confidence)
	add(e.Budget.Present(), e.Budget.Confidence)
	add(e.Company.Present(), e.Company.Confidence)
	add(e.Experience.Present(), e.Experience.Confidence)
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
