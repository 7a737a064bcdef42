package entity

import (
	"reflect"
	"testing"
)

func TestMergeHigherConfidenceWins(t *testing.T) {
	prior := Entities{
		Industry: StringAttr{Value: "technology", Confidence: 0.6, Source: SourceRule},
	}
	next := Entities{
		Industry: StringAttr{Value: "fintech", Confidence: 0.9, Source: SourceLLM},
	}

	merged := Merge(prior, next)
	if merged.Industry.Value != "fintech" {
		t.Errorf("Industry = %q, want fintech", merged.Industry.Value)
	}
	if merged.Industry.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9", merged.Industry.Confidence)
	}
}

func TestMergeLowerConfidenceDiscarded(t *testing.T) {
	prior := Entities{
		Location: StringAttr{Value: "Mumbai", Confidence: 0.9, Source: SourceLLM},
	}
	next := Entities{
		Location: StringAttr{Value: "Bombay", Confidence: 0.6, Source: SourceRule},
	}

	merged := Merge(prior, next)
	if merged.Location.Value != "Mumbai" {
		t.Errorf("Location = %q, want Mumbai (higher-confidence prior)", merged.Location.Value)
	}
}

func TestMergeTiePrefersLLM(t *testing.T) {
	prior := Entities{
		Urgency: StringAttr{Value: "medium", Confidence: 0.8, Source: SourceRule},
	}
	next := Entities{
		Urgency: StringAttr{Value: "urgent", Confidence: 0.8, Source: SourceLLM},
	}

	merged := Merge(prior, next)
	if merged.Urgency.Value != "urgent" {
		t.Errorf("Urgency = %q, want urgent (LLM wins exact tie)", merged.Urgency.Value)
	}

	// Symmetric case: rule extraction must not displace an equally
	// confident stored value.
	merged = Merge(next, prior)
	if merged.Urgency.Value != "urgent" {
		t.Errorf("Urgency = %q, want urgent (rule loses exact tie)", merged.Urgency.Value)
	}
}

func TestMergeAbsentRetainsPrior(t *testing.T) {
	prior := Entities{
		Industry: StringAttr{Value: "fintech", Confidence: 0.9, Source: SourceLLM},
		Roles:    StringsAttr{Values: []string{"backend engineer"}, Confidence: 0.8, Source: SourceRule},
	}

	merged := Merge(prior, Entities{})
	if !reflect.DeepEqual(merged, prior) {
		t.Errorf("merging empty extraction changed stored entities: %+v", merged)
	}
}

func TestMergeIdempotent(t *testing.T) {
	prior := Entities{
		Industry: StringAttr{Value: "healthcare", Confidence: 0.6, Source: SourceRule},
	}
	next := Entities{
		Industry:  StringAttr{Value: "fintech", Confidence: 0.9, Source: SourceLLM},
		Location:  StringAttr{Value: "Mumbai", Confidence: 0.9, Source: SourceLLM},
		Roles:     StringsAttr{Values: []string{"backend engineer", "ui/ux designer"}, Confidence: 0.8, Source: SourceRule},
		RoleCount: IntAttr{Value: 3, Confidence: 0.8, Source: SourceRule},
	}

	once := Merge(prior, next)
	twice := Merge(once, next)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("merge not idempotent:\nonce  = %+v\ntwice = %+v", once, twice)
	}
}

func TestMergeMonotonicConfidence(t *testing.T) {
	// Fusion must never select a lower-confidence value when a
	// higher-confidence one is available in the same merge.
	cases := []struct {
		name        string
		prior, next StringAttr
		want        float64
	}{
		{"next higher", StringAttr{Value: "a", Confidence: 0.3, Source: SourceRule}, StringAttr{Value: "b", Confidence: 0.7, Source: SourceRule}, 0.7},
		{"prior higher", StringAttr{Value: "a", Confidence: 0.7, Source: SourceLLM}, StringAttr{Value: "b", Confidence: 0.3, Source: SourceRule}, 0.7},
		{"equal", StringAttr{Value: "a", Confidence: 0.5, Source: SourceRule}, StringAttr{Value: "b", Confidence: 0.5, Source: SourceLLM}, 0.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mergeString(tc.prior, tc.next)
			if got.Confidence != tc.want {
				t.Errorf("confidence = %v, want %v", got.Confidence, tc.want)
			}
		})
	}
}

func TestMissing(t *testing.T) {
	e := Entities{
		Industry: StringAttr{Value: "fintech", Confidence: 0.9, Source: SourceLLM},
		Location: StringAttr{Value: "Mumbai", Confidence: 0.3, Source: SourceRule},
	}

	missing := e.Missing(0.5)
	want := []string{"roles", "location"}
	if !reflect.DeepEqual(missing, want) {
		t.Errorf("Missing() = %v, want %v", missing, want)
	}

	if e.Complete(0.5) {
		t.Error("Complete() = true for incomplete entities")
	}
}

func TestEffectiveRoleCount(t *testing.T) {
	e := Entities{
		Roles: StringsAttr{Values: []string{"backend engineer", "ui/ux designer"}, Confidence: 0.8, Source: SourceRule},
	}
	if got := e.EffectiveRoleCount(); got != 2 {
		t.Errorf("EffectiveRoleCount() = %d, want 2 (fallback to role list length)", got)
	}

	e.RoleCount = IntAttr{Value: 5, Confidence: 0.8, Source: SourceRule}
	if got := e.EffectiveRoleCount(); got != 5 {
		t.Errorf("EffectiveRoleCount() = %d, want 5 (explicit count)", got)
	}
}

func TestOverallConfidence(t *testing.T) {
	var empty Entities
	if got := empty.OverallConfidence(); got != 0 {
		t.Errorf("OverallConfidence() on empty = %v, want 0", got)
	}

	e := Entities{
		Industry: StringAttr{Value: "fintech", Confidence: 0.9, Source: SourceLLM},
		Location: StringAttr{Value: "Mumbai", Confidence: 0.7, Source: SourceRule},
	}
	if got := e.OverallConfidence(); got < 0.79 || got > 0.81 {
		t.Errorf("OverallConfidence() = %v, want ~0.8", got)
	}
}
