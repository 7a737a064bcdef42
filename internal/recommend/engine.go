package recommend

import (
	"sort"
	"strings"

	"github.com/hireflow-dev/hireflow/internal/entity"
)

// Weights are the scoring weights for the three matching dimensions.
type Weights struct {
	Industry  float64
	Urgency   float64
	RoleCount float64
}

// DefaultWeights is the standard scoring mix.
var DefaultWeights = Weights{Industry: 0.4, Urgency: 0.3, RoleCount: 0.3}

// DefaultRelevanceFloor is the minimum score for a package to be offered.
const DefaultRelevanceFloor = 0.2

// Recommendation is one scored catalog match.
type Recommendation struct {
	Package ServicePackage
	Score   float64
}

// Engine scores catalog packages against accumulated requirements.
// Scoring is fully deterministic: the same entities and catalog always
// produce the same ordered result.
type Engine struct {
	catalog *Catalog
	weights Weights
	floor   float64
}

// NewEngine builds a recommendation engine. Zero weights or floor fall
// back to the defaults.
func NewEngine(catalog *Catalog, weights Weights, floor float64) *Engine {
	if weights == (Weights{}) {
		weights = DefaultWeights
	}
	if floor <= 0 {
		floor = DefaultRelevanceFloor
	}
	return &Engine{catalog: catalog, weights: weights, floor: floor}
}

// Recommend returns packages scoring at or above the relevance floor,
// highest first. Ties keep catalog order. No match returns an empty slice,
// never an error.
func (e *Engine) Recommend(ents entity.Entities) []Recommendation {
	recs := make([]Recommendation, 0, len(e.catalog.Packages))
	for _, p := range e.catalog.Packages {
		score := e.score(p, ents)
		if score >= e.floor {
			recs = append(recs, Recommendation{Package: p, Score: score})
		}
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	return recs
}

func (e *Engine) score(p ServicePackage, ents entity.Entities) float64 {
	var score float64
	if matchIndustry(p, ents) {
		score += e.weights.Industry
	}
	if matchUrgency(p, ents) {
		score += e.weights.Urgency
	}
	if matchRoleCount(p, ents) {
		score += e.weights.RoleCount
	}
	return score
}

func matchIndustry(p ServicePackage, ents entity.Entities) bool {
	if !ents.Industry.Present() {
		return false
	}
	want := canonicalIndustry(ents.Industry.Value)
	for _, ind := range p.Industries {
		if canonicalIndustry(ind) == want {
			return true
		}
	}
	return false
}

// urgencyBand folds the four levels into three matching bands: high and
// urgent are the same band for package selection.
func urgencyBand(u entity.Urgency) entity.Urgency {
	if u == entity.UrgencyUrgent {
		return entity.UrgencyHigh
	}
	return u
}

func matchUrgency(p ServicePackage, ents entity.Entities) bool {
	if len(p.Urgencies) == 0 {
		return true
	}
	want := urgencyBand(ents.UrgencyLevel())
	for _, u := range p.Urgencies {
		if urgencyBand(entity.Urgency(strings.ToLower(u))) == want {
			return true
		}
	}
	return false
}

func matchRoleCount(p ServicePackage, ents entity.Entities) bool {
	count := ents.EffectiveRoleCount()
	if count <= 0 {
		return false
	}
	if count < p.RoleCountMin {
		return false
	}
	return p.RoleCountMax == 0 || count <= p.RoleCountMax
}
