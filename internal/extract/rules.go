// Package extract turns a single user utterance into confidence-scored
// hiring attributes. It fuses two independent extractors: a rule-based pass
// over role/location/industry/urgency vocabularies, and a model-based pass
// requesting a structured entity payload from the injected provider.
package extract

import (
	"regexp"
	"strings"

	"github.com/hireflow-dev/hireflow/internal/entity"
)

// Heuristic confidences for rule matches, by match specificity.
const (
	confLexicon   = 0.6 // single-keyword lexicon hit
	confGazetteer = 0.7 // known city / industry term
	confPattern   = 0.8 // multi-token pattern match
)

const countAlt = `\d+|a|an|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve`

type rolePattern struct {
	re        *regexp.Regexp
	canonical string
}

// Ordered so extraction output is deterministic for identical input.
var rolePatterns = []rolePattern{
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*(?:backend|back-end|back end)[ -]?(?:engineer|developer)s?\b`), "backend engineer"},
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*(?:frontend|front-end|front end)[ -]?(?:engineer|developer)s?\b`), "frontend engineer"},
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*(?:fullstack|full-stack|full stack)[ -]?(?:engineer|developer)s?\b`), "fullstack engineer"},
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*(?:ui/ux|ui-ux|ux/ui)[ -]?designers?\b`), "ui/ux designer"},
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*(?:ux|user experience)[ -]?designers?\b`), "ux designer"},
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*(?:ui|user interface)[ -]?designers?\b`), "ui designer"},
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*product[ -]?designers?\b`), "product designer"},
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*(?:devops|dev ops|site reliability)[ -]?engineers?\b`), "devops engineer"},
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*data[ -]?scientists?\b`), "data scientist"},
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*data[ -]?engineers?\b`), "data engineer"},
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*(?:ml|machine learning)[ -]?engineers?\b`), "ml engineer"},
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*(?:mobile|ios|android)[ -]?(?:engineer|developer)s?\b`), "mobile developer"},
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*(?:qa|quality assurance)[ -]?(?:engineer|tester)s?\b`), "qa engineer"},
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*product[ -]?managers?\b`), "product manager"},
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*project[ -]?managers?\b`), "project manager"},
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*engineering[ -]?managers?\b`), "engineering manager"},
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*(?:tech|technical)[ -]?leads?\b`), "tech lead"},
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*business[ -]?analysts?\b`), "business analyst"},
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*data[ -]?analysts?\b`), "data analyst"},
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*(?:sales)[ -]?(?:representative|rep|executive)s?\b`), "sales representative"},
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*(?:marketing)[ -]?(?:specialist|manager)s?\b`), "marketing specialist"},
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*(?:web)[ -]?(?:developer|engineer)s?\b`), "web developer"},
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*(?:software|dev)[ -]?(?:engineer|developer)s?\b`), "software engineer"},
	{regexp.MustCompile(`(?i)\b(` + countAlt + `)?\s*(?:graphic)[ -]?designers?\b`), "graphic designer"},
}

type gazetteerEntry struct {
	re        *regexp.Regexp
	canonical string
}

var locationGazetteer = []gazetteerEntry{
	{regexp.MustCompile(`(?i)\b(?:nyc|new york city|new york)\b`), "New York City"},
	{regexp.MustCompile(`(?i)\b(?:sf|san francisco|san fran)\b`), "San Francisco"},
	{regexp.MustCompile(`(?i)\b(?:los angeles)\b`), "Los Angeles"},
	{regexp.MustCompile(`(?i)\bboston\b`), "Boston"},
	{regexp.MustCompile(`(?i)\bseattle\b`), "Seattle"},
	{regexp.MustCompile(`(?i)\bchicago\b`), "Chicago"},
	{regexp.MustCompile(`(?i)\baustin\b`), "Austin"},
	{regexp.MustCompile(`(?i)\bdenver\b`), "Denver"},
	{regexp.MustCompile(`(?i)\b(?:mumbai|bombay)\b`), "Mumbai"},
	{regexp.MustCompile(`(?i)\b(?:bangalore|bengaluru)\b`), "Bangalore"},
	{regexp.MustCompile(`(?i)\b(?:delhi|new delhi)\b`), "Delhi"},
	{regexp.MustCompile(`(?i)\bhyderabad\b`), "Hyderabad"},
	{regexp.MustCompile(`(?i)\bpune\b`), "Pune"},
	{regexp.MustCompile(`(?i)\blondon\b`), "London"},
	{regexp.MustCompile(`(?i)\btoronto\b`), "Toronto"},
	{regexp.MustCompile(`(?i)\bvancouver\b`), "Vancouver"},
	{regexp.MustCompile(`(?i)\bberlin\b`), "Berlin"},
	{regexp.MustCompile(`(?i)\bsingapore\b`), "Singapore"},
	{regexp.MustCompile(`(?i)\b(?:remote|remotely|work from home|wfh|distributed team)\b`), "Remote"},
}

var industryGazetteer = []gazetteerEntry{
	{regexp.MustCompile(`(?i)\b(?:fintech|financial technology)\b`), "fintech"},
	{regexp.MustCompile(`(?i)\b(?:finance|financial services|banking)\b`), "finance"},
	{regexp.MustCompile(`(?i)\b(?:healthcare|healthtech|medical|pharma|pharmaceutical)\b`), "healthcare"},
	{regexp.MustCompile(`(?i)\b(?:ecommerce|e-commerce|retail)\b`), "ecommerce"},
	{regexp.MustCompile(`(?i)\b(?:edtech|education)\b`), "edtech"},
	{regexp.MustCompile(`(?i)\b(?:consulting|consultancy)\b`), "consulting"},
	{regexp.MustCompile(`(?i)\b(?:saas|software as a service)\b`), "saas"},
	{regexp.MustCompile(`(?i)\b(?:ai|artificial intelligence|machine learning)\b`), "ai/ml"},
	{regexp.MustCompile(`(?i)\b(?:blockchain|crypto|cryptocurrency)\b`), "blockchain"},
	{regexp.MustCompile(`(?i)\b(?:logistics|supply chain)\b`), "logistics"},
	{regexp.MustCompile(`(?i)\b(?:tech|technology|software)\b`), "technology"},
}

// urgencyLexicon maps free-form urgency signals onto the normalized enum.
// Ordered from strongest signal down so "urgent ... eventually" resolves
// to the stronger reading.
var urgencyLexicon = []struct {
	re    *regexp.Regexp
	level entity.Urgency
}{
	{regexp.MustCompile(`(?i)\b(?:urgent|urgently|asap|immediately|right away|emergency|critical)\b`), entity.UrgencyUrgent},
	{regexp.MustCompile(`(?i)\b(?:quickly|soon|fast|rush|high priority)\b`), entity.UrgencyHigh},
	{regexp.MustCompile(`(?i)\b(?:flexible|no rush|low priority|whenever|when possible|eventually)\b`), entity.UrgencyLow},
	{regexp.MustCompile(`(?i)\b(?:standard|normal|regular|medium priority)\b`), entity.UrgencyMedium},
}

var experienceLexicon = []gazetteerEntry{
	{regexp.MustCompile(`(?i)\b(?:junior|entry[ -]level|fresher)\b`), "junior"},
	{regexp.MustCompile(`(?i)\b(?:senior|sr\.?|experienced)\b`), "senior"},
	{regexp.MustCompile(`(?i)\b(?:lead|principal|staff)\b`), "lead"},
	{regexp.MustCompile(`(?i)\b(?:mid[ -]level|intermediate)\b`), "mid-level"},
}

var budgetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\$\s*\d[\d,]*(?:\.\d+)?\s*k?\s*(?:-|–|to)\s*\$?\s*\d[\d,]*(?:\.\d+)?\s*k?`),
	regexp.MustCompile(`(?i)\$\s*\d[\d,]*(?:\.\d+)?\s*k?(?:\s*(?:per|/)\s*(?:role|year|month|annum))?`),
	regexp.MustCompile(`(?i)\b\d[\d,]*\s*k?\s*(?:-|–|to)\s*\d[\d,]*\s*k?\s*(?:range|budget)\b`),
}

// companyStopwords are capitalized sentence openers that the company
// patterns would otherwise mistake for a name.
var companyStopwords = map[string]bool{
	"we": true, "i": true, "they": true, "he": true, "she": true, "it": true,
	"you": true, "our": true, "the": true, "this": true, "that": true,
	"hello": true, "hi": true, "yes": true, "no": true, "what": true,
}

var companyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bat\s+([A-Z][A-Za-z0-9&]*(?:\s+[A-Z][A-Za-z0-9&]*)*)\s+(?:is|are|needs?|wants?|looking)`),
	regexp.MustCompile(`^([A-Z][A-Za-z0-9&]*(?:\s+[A-Z][A-Za-z0-9&]*)*)\s+(?:is|are|needs?|wants?|looking)`),
}

// RuleExtractor is the pattern/keyword pass. It is stateless and safe for
// concurrent use.
type RuleExtractor struct{}

// NewRuleExtractor returns a rule-based extractor over the built-in
// vocabularies.
func NewRuleExtractor() *RuleExtractor {
	return &RuleExtractor{}
}

// Extract runs all vocabularies over the utterance. Attributes without a
// match are left zero-valued so they never displace prior session state.
func (x *RuleExtractor) Extract(utterance string) entity.Entities {
	var out entity.Entities

	roles, total := extractRoles(utterance)
	if len(roles) > 0 {
		out.Roles = entity.StringsAttr{Values: roles, Confidence: confPattern, Source: entity.SourceRule}
		out.RoleCount = entity.IntAttr{Value: total, Confidence: confPattern, Source: entity.SourceRule}
	}

	if loc := firstMatch(utterance, locationGazetteer); loc != "" {
		out.Location = entity.StringAttr{Value: loc, Confidence: confGazetteer, Source: entity.SourceRule}
	}
	if ind := firstMatch(utterance, industryGazetteer); ind != "" {
		out.Industry = entity.StringAttr{Value: ind, Confidence: confGazetteer, Source: entity.SourceRule}
	}
	for _, u := range urgencyLexicon {
		if u.re.MatchString(utterance) {
			out.Urgency = entity.StringAttr{Value: string(u.level), Confidence: confLexicon, Source: entity.SourceRule}
			break
		}
	}
	if exp := firstMatch(utterance, experienceLexicon); exp != "" {
		out.Experience = entity.StringAttr{Value: exp, Confidence: confLexicon, Source: entity.SourceRule}
	}
	for _, re := range budgetPatterns {
		if m := re.FindString(utterance); m != "" {
			out.Budget = entity.StringAttr{Value: strings.TrimSpace(m), Confidence: confPattern, Source: entity.SourceRule}
			break
		}
	}
	for _, re := range companyPatterns {
		m := re.FindStringSubmatch(utterance)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if companyStopwords[strings.ToLower(name)] {
			continue
		}
		out.Company = entity.StringAttr{Value: name, Confidence: confLexicon, Source: entity.SourceRule}
		break
	}

	return out
}

// extractRoles returns the canonical roles found, in pattern order, and the
// summed head count across all matches. Matched spans are consumed so a more
// specific pattern ("ui/ux designer") shadows the generic ones that would
// otherwise re-match the same text.
func extractRoles(utterance string) ([]string, int) {
	var roles []string
	seen := make(map[string]bool)
	total := 0
	working := utterance

	for _, rp := range rolePatterns {
		matches := rp.re.FindAllStringSubmatch(working, -1)
		if len(matches) == 0 {
			continue
		}
		for _, m := range matches {
			total += parseCount(m[1])
		}
		if !seen[rp.canonical] {
			seen[rp.canonical] = true
			roles = append(roles, rp.canonical)
		}
		working = rp.re.ReplaceAllString(working, " ")
	}

	return roles, total
}

func firstMatch(utterance string, entries []gazetteerEntry) string {
	for _, e := range entries {
		if e.re.MatchString(utterance) {
			return e.canonical
		}
	}
	return ""
}
