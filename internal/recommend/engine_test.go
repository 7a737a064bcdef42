package recommend

import (
	"reflect"
	"testing"

	"github.com/hireflow-dev/hireflow/internal/entity"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := ParseCatalog([]byte(`
packages:
  - id: tech
    name: Tech Pack
    industries: [technology, fintech]
    urgencies: []
    roleCountMin: 1
    roleCountMax: 10
    basePrice: 12000
    surchargePerRole: 5000
    defaultRoles: 2
    baseTimelineDays: 21
    minTimelineDays: 10
  - id: enterprise
    name: Enterprise Pack
    industries: [finance, healthcare]
    urgencies: [low, medium]
    roleCountMin: 1
    roleCountMax: 0
    basePrice: 25000
    surchargePerRole: 10000
    defaultRoles: 2
    baseTimelineDays: 42
    minTimelineDays: 21
  - id: volume
    name: Volume Pack
    industries: [ecommerce, sales]
    urgencies: []
    roleCountMin: 5
    roleCountMax: 0
    basePrice: 20000
    surchargePerRole: 2000
    defaultRoles: 10
    baseTimelineDays: 14
    minTimelineDays: 7
`))
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}
	return c
}

func fintechEntities() entity.Entities {
	return entity.Entities{
		Industry:  entity.StringAttr{Value: "fintech", Confidence: 0.9, Source: entity.SourceLLM},
		Location:  entity.StringAttr{Value: "Mumbai", Confidence: 0.9, Source: entity.SourceLLM},
		Roles:     entity.StringsAttr{Values: []string{"backend engineer", "ui/ux designer"}, Confidence: 0.9, Source: entity.SourceLLM},
		RoleCount: entity.IntAttr{Value: 3, Confidence: 0.9, Source: entity.SourceLLM},
		Urgency:   entity.StringAttr{Value: "urgent", Confidence: 0.9, Source: entity.SourceLLM},
	}
}

func TestRecommendScoresAndOrders(t *testing.T) {
	e := NewEngine(testCatalog(t), Weights{}, 0)

	recs := e.Recommend(fintechEntities())
	if len(recs) == 0 {
		t.Fatal("no recommendations")
	}
	if recs[0].Package.ID != "tech" {
		t.Errorf("top package = %q, want tech", recs[0].Package.ID)
	}
	// industry + urgency (any) + role count all match
	if recs[0].Score != 1.0 {
		t.Errorf("score = %v, want 1.0", recs[0].Score)
	}
	for _, r := range recs[1:] {
		if r.Score >= recs[0].Score {
			t.Errorf("ordering violated: %s scored %v", r.Package.ID, r.Score)
		}
	}
}

func TestRecommendDeterministic(t *testing.T) {
	e := NewEngine(testCatalog(t), Weights{}, 0)
	ents := fintechEntities()

	first := e.Recommend(ents)
	for i := 0; i < 10; i++ {
		if got := e.Recommend(ents); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestRecommendTieKeepsCatalogOrder(t *testing.T) {
	c, err := ParseCatalog([]byte(`
packages:
  - id: first
    name: First
    industries: [technology]
    roleCountMin: 1
    basePrice: 1000
    defaultRoles: 1
    baseTimelineDays: 10
    minTimelineDays: 5
  - id: second
    name: Second
    industries: [technology]
    roleCountMin: 1
    basePrice: 2000
    defaultRoles: 1
    baseTimelineDays: 10
    minTimelineDays: 5
`))
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}
	e := NewEngine(c, Weights{}, 0)

	ents := entity.Entities{
		Industry:  entity.StringAttr{Value: "technology", Confidence: 0.9, Source: entity.SourceLLM},
		Roles:     entity.StringsAttr{Values: []string{"software engineer"}, Confidence: 0.9, Source: entity.SourceLLM},
		RoleCount: entity.IntAttr{Value: 1, Confidence: 0.9, Source: entity.SourceLLM},
	}
	recs := e.Recommend(ents)
	if len(recs) != 2 {
		t.Fatalf("recs = %d, want 2", len(recs))
	}
	if recs[0].Score != recs[1].Score {
		t.Fatalf("expected a tie, got %v vs %v", recs[0].Score, recs[1].Score)
	}
	if recs[0].Package.ID != "first" || recs[1].Package.ID != "second" {
		t.Errorf("tie order = [%s %s], want catalog order [first second]", recs[0].Package.ID, recs[1].Package.ID)
	}
}

func TestRecommendBelowFloorIsEmpty(t *testing.T) {
	e := NewEngine(testCatalog(t), Weights{}, 0.4)

	// Nothing matches: no industry hit, count zero, urgency bands miss the
	// enterprise pack's low/medium.
	ents := entity.Entities{
		Industry: entity.StringAttr{Value: "aviation", Confidence: 0.9, Source: entity.SourceLLM},
		Urgency:  entity.StringAttr{Value: "urgent", Confidence: 0.9, Source: entity.SourceLLM},
	}
	recs := e.Recommend(ents)
	if len(recs) != 0 {
		t.Errorf("recs = %+v, want empty", recs)
	}
}

func TestRecommendIndustrySynonyms(t *testing.T) {
	e := NewEngine(testCatalog(t), Weights{}, 0)

	ents := fintechEntities()
	ents.Industry.Value = "banking"
	ents.Urgency.Value = "medium"

	recs := e.Recommend(ents)
	if len(recs) == 0 || recs[0].Package.ID != "enterprise" {
		t.Fatalf("recs = %+v, want enterprise first", recs)
	}
}

func TestRecommendRoleCountBounds(t *testing.T) {
	e := NewEngine(testCatalog(t), Weights{}, 0)

	ents := entity.Entities{
		Industry:  entity.StringAttr{Value: "ecommerce", Confidence: 0.9, Source: entity.SourceLLM},
		Roles:     entity.StringsAttr{Values: []string{"sales representative"}, Confidence: 0.9, Source: entity.SourceLLM},
		RoleCount: entity.IntAttr{Value: 20, Confidence: 0.9, Source: entity.SourceLLM},
	}
	recs := e.Recommend(ents)
	if len(recs) == 0 || recs[0].Package.ID != "volume" {
		t.Fatalf("recs = %+v, want volume first", recs)
	}
	if recs[0].Score != 1.0 {
		t.Errorf("score = %v, want 1.0", recs[0].Score)
	}
}

func TestParseCatalogRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", "packages: []"},
		{"missing id", "packages:\n  - name: X\n    basePrice: 1\n    defaultRoles: 1\n    baseTimelineDays: 5\n    minTimelineDays: 2"},
		{"zero price", "packages:\n  - id: x\n    name: X\n    basePrice: 0\n    defaultRoles: 1\n    baseTimelineDays: 5\n    minTimelineDays: 2"},
		{"min timeline above base", "packages:\n  - id: x\n    name: X\n    basePrice: 1\n    defaultRoles: 1\n    baseTimelineDays: 5\n    minTimelineDays: 9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(tt.yaml)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
