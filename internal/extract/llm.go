package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hireflow-dev/hireflow/internal/entity"
	"github.com/hireflow-dev/hireflow/internal/llm/provider"
)

// llmDefaultConfidence is assigned to model-extracted attributes when the
// model does not report a per-attribute score.
const llmDefaultConfidence = 0.9

const extractionSystemPrompt = `You extract hiring requirements from a single message in a sales conversation.
Return ONLY a JSON object with these fields (omit or leave empty anything not mentioned):
  industry    - the client's industry, lowercase (e.g. "fintech", "healthcare")
  location    - city or "Remote"
  roles       - list of role titles being hired, lowercase
  role_count  - total number of openings across all roles
  urgency     - one of "low", "medium", "high", "urgent"
  budget      - budget phrase as written
  company     - company name if stated
  experience  - seniority level if stated (e.g. "junior", "senior")
  confidence  - optional map from field name to a score in (0,1]
Never invent values that are not supported by the message.`

// extractionSchema constrains the structured response for providers that
// support JSON schema enforcement.
var extractionSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "industry":   {"type": "string"},
    "location":   {"type": "string"},
    "roles":      {"type": "array", "items": {"type": "string"}},
    "role_count": {"type": "integer"},
    "urgency":    {"type": "string"},
    "budget":     {"type": "string"},
    "company":    {"type": "string"},
    "experience": {"type": "string"}
  }
}`)

type llmPayload struct {
	Industry   string             `json:"industry"`
	Location   string             `json:"location"`
	Roles      []string           `json:"roles"`
	RoleCount  int                `json:"role_count"`
	Urgency    string             `json:"urgency"`
	Budget     string             `json:"budget"`
	Company    string             `json:"company"`
	Experience string             `json:"experience"`
	Confidence map[string]float64 `json:"confidence"`
}

// LLMExtractor asks the configured provider for a structured entity payload.
type LLMExtractor struct {
	provider provider.Provider
	model    string
}

// NewLLMExtractor wraps p as the model-based extraction pass. model may be
// empty to use the provider's default.
func NewLLMExtractor(p provider.Provider, model string) *LLMExtractor {
	return &LLMExtractor{provider: p, model: model}
}

// Extract requests structured extraction for the utterance and normalizes
// the payload into entities. An error means the model pass produced nothing
// usable; callers degrade to rule-only output.
func (x *LLMExtractor) Extract(ctx context.Context, utterance string) (entity.Entities, error) {
	resp, err := x.provider.CreateStructured(ctx, provider.StructuredRequest{
		CompletionRequest: provider.CompletionRequest{
			Messages: []provider.Message{
				{Role: "system", Content: extractionSystemPrompt},
				{Role: "user", Content: utterance},
			},
			Model:       x.model,
			Temperature: 0,
			MaxTokens:   512,
		},
		ResponseSchema: extractionSchema,
	})
	if err != nil {
		return entity.Entities{}, err
	}

	var payload llmPayload
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		return entity.Entities{}, fmt.Errorf("unmarshal extraction payload: %w", err)
	}
	return payload.toEntities(), nil
}

func (p llmPayload) confidenceFor(field string) float64 {
	if c, ok := p.Confidence[field]; ok && c > 0 && c <= 1 {
		return c
	}
	return llmDefaultConfidence
}

func (p llmPayload) toEntities() entity.Entities {
	var out entity.Entities

	if v := normalizeIndustry(p.Industry); v != "" {
		out.Industry = entity.StringAttr{Value: v, Confidence: p.confidenceFor("industry"), Source: entity.SourceLLM}
	}
	if v := strings.TrimSpace(p.Location); v != "" {
		out.Location = entity.StringAttr{Value: v, Confidence: p.confidenceFor("location"), Source: entity.SourceLLM}
	}

	roles := make([]string, 0, len(p.Roles))
	for _, r := range p.Roles {
		if r = strings.ToLower(strings.TrimSpace(r)); r != "" {
			roles = append(roles, r)
		}
	}
	if len(roles) > 0 {
		conf := p.confidenceFor("roles")
		out.Roles = entity.StringsAttr{Values: roles, Confidence: conf, Source: entity.SourceLLM}
		count := p.RoleCount
		if count <= 0 {
			count = len(roles)
		}
		out.RoleCount = entity.IntAttr{Value: count, Confidence: conf, Source: entity.SourceLLM}
	} else if p.RoleCount > 0 {
		out.RoleCount = entity.IntAttr{Value: p.RoleCount, Confidence: p.confidenceFor("role_count"), Source: entity.SourceLLM}
	}

	if entity.ValidUrgency(p.Urgency) {
		out.Urgency = entity.StringAttr{Value: strings.ToLower(p.Urgency), Confidence: p.confidenceFor("urgency"), Source: entity.SourceLLM}
	}
	if v := strings.TrimSpace(p.Budget); v != "" {
		out.Budget = entity.StringAttr{Value: v, Confidence: p.confidenceFor("budget"), Source: entity.SourceLLM}
	}
	if v := strings.TrimSpace(p.Company); v != "" {
		out.Company = entity.StringAttr{Value: v, Confidence: p.confidenceFor("company"), Source: entity.SourceLLM}
	}
	if v := strings.ToLower(strings.TrimSpace(p.Experience)); v != "" {
		out.Experience = entity.StringAttr{Value: v, Confidence: p.confidenceFor("experience"), Source: entity.SourceLLM}
	}

	return out
}

// normalizeIndustry folds common synonyms onto the catalog's industry terms
// so model output and rule output land on the same vocabulary.
func normalizeIndustry(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "financial technology":
		return "fintech"
	case "banking", "financial services":
		return "finance"
	case "e-commerce", "retail":
		return "ecommerce"
	case "tech", "software", "information technology", "it":
		return "technology"
	case "artificial intelligence", "machine learning", "ai", "ml":
		return "ai/ml"
	case "medical", "healthtech", "pharma":
		return "healthcare"
	}
	return s
}
