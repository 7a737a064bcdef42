// Package proposal turns a selected service package and the accumulated
// requirements into a deterministic priced proposal.
package proposal

import (
	"crypto/sha256"
	"fmt"
	"math"
	"strings"

	"github.com/hireflow-dev/hireflow/internal/entity"
	"github.com/hireflow-dev/hireflow/internal/recommend"
)

// Defaults for the pricing policy.
const (
	DefaultUrgencyMultiplier = 1.2
	DefaultTimelineReduction = 0.3
)

// Config tunes the pricing policy.
type Config struct {
	// UrgencyMultiplier scales the price for urgent requests.
	UrgencyMultiplier float64
	// TimelineReduction is the fraction cut from the base timeline for
	// urgent requests, floored at the package minimum.
	TimelineReduction float64
}

// Proposal is a concrete priced offer.
type Proposal struct {
	// Reference is the deterministic proposal reference number.
	Reference string `json:"reference"`
	// PackageID and PackageName identify the offered package.
	PackageID   string `json:"packageId"`
	PackageName string `json:"packageName"`
	// Price is the total quoted price.
	Price float64 `json:"price"`
	// TimelineDays is the quoted delivery timeline.
	TimelineDays int `json:"timelineDays"`
	// RoleCount is the number of openings the quote covers.
	RoleCount int `json:"roleCount"`
	// Urgent records whether urgency pricing applied.
	Urgent bool `json:"urgent"`
	// Summary is the human-readable proposal text.
	Summary string `json:"summary"`
}

// Generator produces proposals. Safe for concurrent use.
type Generator struct {
	multiplier float64
	reduction  float64
}

// NewGenerator builds a generator; zero config fields take the defaults.
func NewGenerator(cfg Config) *Generator {
	m := cfg.UrgencyMultiplier
	if m <= 0 {
		m = DefaultUrgencyMultiplier
	}
	r := cfg.TimelineReduction
	if r <= 0 || r >= 1 {
		r = DefaultTimelineReduction
	}
	return &Generator{multiplier: m, reduction: r}
}

// Generate produces the proposal for pkg given the requirements. The same
// (sessionID, ordinal) always yields the same reference number.
func (g *Generator) Generate(pkg recommend.ServicePackage, ents entity.Entities, sessionID string, ordinal int) Proposal {
	count := ents.EffectiveRoleCount()
	if count <= 0 {
		count = pkg.DefaultRoles
	}
	urgent := ents.UrgencyLevel() == entity.UrgencyUrgent

	price := pkg.BasePrice
	if extra := count - pkg.DefaultRoles; extra > 0 {
		price += pkg.SurchargePerRole * float64(extra)
	}
	if urgent {
		price *= g.multiplier
	}
	price = math.Round(price*100) / 100

	timeline := pkg.BaseTimelineDays
	if urgent {
		timeline = int(math.Floor(float64(pkg.BaseTimelineDays) * (1 - g.reduction)))
		if timeline < pkg.MinTimelineDays {
			timeline = pkg.MinTimelineDays
		}
	}

	p := Proposal{
		Reference:    Reference(sessionID, ordinal),
		PackageID:    pkg.ID,
		PackageName:  pkg.Name,
		Price:        price,
		TimelineDays: timeline,
		RoleCount:    count,
		Urgent:       urgent,
	}
	p.Summary = summarize(p, pkg, ents)
	return p
}

// Reference derives the proposal reference for a session and ordinal.
func Reference(sessionID string, ordinal int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", sessionID, ordinal)))
	return fmt.Sprintf("HF-%s-%d", strings.ToUpper(fmt.Sprintf("%x", sum[:4])), ordinal)
}

func summarize(p Proposal, pkg recommend.ServicePackage, ents entity.Entities) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Proposal %s: %s\n", p.Reference, pkg.Name)
	fmt.Fprintf(&b, "Covers %d opening(s)", p.RoleCount)
	if ents.Roles.Present() {
		fmt.Fprintf(&b, " (%s)", strings.Join(ents.Roles.Values, ", "))
	}
	if ents.Location.Present() {
		fmt.Fprintf(&b, " in %s", ents.Location.Value)
	}
	b.WriteString(".\n")
	fmt.Fprintf(&b, "Total price: $%.2f.", p.Price)
	if p.Urgent {
		b.WriteString(" Urgency pricing applied.")
	}
	fmt.Fprintf(&b, "\nEstimated timeline: %d days.\n", p.TimelineDays)
	if len(pkg.Features) > 0 {
		b.WriteString("Included:\n")
		for _, f := range pkg.Features {
			fmt.Fprintf(&b, "  - %s\n", f)
		}
	}
	b.WriteString("Reply to accept, or tell me what to adjust.")
	return b.String()
}
