package extract

import (
	"reflect"
	"testing"

	"github.com/hireflow-dev/hireflow/internal/entity"
)

func TestRuleExtractorFullUtterance(t *testing.T) {
	x := NewRuleExtractor()
	got := x.Extract("We are a fintech startup in Mumbai hiring 2 backend engineers and a UI/UX designer urgently")

	if got.Industry.Value != "fintech" {
		t.Errorf("industry = %q, want fintech", got.Industry.Value)
	}
	if got.Location.Value != "Mumbai" {
		t.Errorf("location = %q, want Mumbai", got.Location.Value)
	}
	wantRoles := []string{"backend engineer", "ui/ux designer"}
	if !reflect.DeepEqual(got.Roles.Values, wantRoles) {
		t.Errorf("roles = %v, want %v", got.Roles.Values, wantRoles)
	}
	if got.RoleCount.Value != 3 {
		t.Errorf("role count = %d, want 3", got.RoleCount.Value)
	}
	if got.Urgency.Value != string(entity.UrgencyUrgent) {
		t.Errorf("urgency = %q, want urgent", got.Urgency.Value)
	}
	if got.Roles.Source != entity.SourceRule {
		t.Errorf("roles source = %q, want rule", got.Roles.Source)
	}
	if got.Roles.Confidence != confPattern {
		t.Errorf("roles confidence = %v, want %v", got.Roles.Confidence, confPattern)
	}
}

func TestRuleExtractorRoleCounts(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		wantRoles []string
		wantCount int
	}{
		{
			name:      "digit count",
			utterance: "we need 5 frontend developers",
			wantRoles: []string{"frontend engineer"},
			wantCount: 5,
		},
		{
			name:      "number word",
			utterance: "looking for three data scientists",
			wantRoles: []string{"data scientist"},
			wantCount: 3,
		},
		{
			name:      "article counts one",
			utterance: "we want a devops engineer",
			wantRoles: []string{"devops engineer"},
			wantCount: 1,
		},
		{
			name:      "bare plural counts one",
			utterance: "hiring product managers",
			wantRoles: []string{"product manager"},
			wantCount: 1,
		},
		{
			name:      "mixed roles sum",
			utterance: "need 2 ml engineers and four qa engineers",
			wantRoles: []string{"ml engineer", "qa engineer"},
			wantCount: 6,
		},
		{
			name:      "specific shadows generic",
			utterance: "one UI/UX designer",
			wantRoles: []string{"ui/ux designer"},
			wantCount: 1,
		},
	}

	x := NewRuleExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := x.Extract(tt.utterance)
			if !reflect.DeepEqual(got.Roles.Values, tt.wantRoles) {
				t.Errorf("roles = %v, want %v", got.Roles.Values, tt.wantRoles)
			}
			if got.RoleCount.Value != tt.wantCount {
				t.Errorf("count = %d, want %d", got.RoleCount.Value, tt.wantCount)
			}
		})
	}
}

func TestRuleExtractorUrgency(t *testing.T) {
	tests := []struct {
		utterance string
		want      entity.Urgency
	}{
		{"we need this asap", entity.UrgencyUrgent},
		{"fill the role immediately", entity.UrgencyUrgent},
		{"we would like to move quickly", entity.UrgencyHigh},
		{"no rush on this one", entity.UrgencyLow},
		{"standard timeline is fine", entity.UrgencyMedium},
	}

	x := NewRuleExtractor()
	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			got := x.Extract(tt.utterance)
			if got.Urgency.Value != string(tt.want) {
				t.Errorf("urgency = %q, want %q", got.Urgency.Value, tt.want)
			}
		})
	}
}

func TestRuleExtractorNoSignalLeavesAttributesAbsent(t *testing.T) {
	x := NewRuleExtractor()
	got := x.Extract("hello there")

	if got.Industry.Present() || got.Location.Present() || got.Roles.Present() ||
		got.Urgency.Present() || got.Budget.Present() {
		t.Errorf("expected no attributes, got %+v", got)
	}
}

func TestRuleExtractorBudgetAndExperience(t *testing.T) {
	x := NewRuleExtractor()
	got := x.Extract("budget is $80k-$120k for a senior backend engineer in London")

	if !got.Budget.Present() {
		t.Fatal("budget not extracted")
	}
	if got.Experience.Value != "senior" {
		t.Errorf("experience = %q, want senior", got.Experience.Value)
	}
	if got.Location.Value != "London" {
		t.Errorf("location = %q, want London", got.Location.Value)
	}
}

func TestRuleExtractorRemoteLocation(t *testing.T) {
	x := NewRuleExtractor()
	got := x.Extract("fully remote team hiring two software engineers")

	if got.Location.Value != "Remote" {
		t.Errorf("location = %q, want Remote", got.Location.Value)
	}
	if got.RoleCount.Value != 2 {
		t.Errorf("count = %d, want 2", got.RoleCount.Value)
	}
}
