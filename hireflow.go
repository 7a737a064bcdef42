// Package hireflow wires the conversation pipeline: session memory, hybrid
// entity extraction, package recommendation, and proposal generation behind
// a single turn-processing API.
package hireflow

import (
	"context"
	"fmt"
	"log"

	"github.com/hireflow-dev/hireflow/internal/extract"
	"github.com/hireflow-dev/hireflow/internal/llm/provider"
	"github.com/hireflow-dev/hireflow/internal/observability"
	"github.com/hireflow-dev/hireflow/internal/orchestrator"
	"github.com/hireflow-dev/hireflow/internal/proposal"
	"github.com/hireflow-dev/hireflow/internal/recommend"
	"github.com/hireflow-dev/hireflow/pkg/config"
	"github.com/hireflow-dev/hireflow/pkg/session"
)

// Agent is the assembled conversation agent.
type Agent struct {
	cfg     *config.Config
	catalog *recommend.Catalog
	memory  *session.Memory
	orch    *orchestrator.Orchestrator
}

// New builds an agent from configuration. A missing or invalid catalog is
// an error: the agent refuses to start without packages to sell. A failed
// LLM provider is not: the agent starts rule-only and logs the degradation.
func New(cfg *config.Config) (*Agent, error) {
	observability.InitMetrics()

	catalog, err := recommend.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}
	memory := session.NewMemory(store, cfg.Store.SessionTTL())
	if cfg.Store.SweepSpec != "" {
		if err := memory.StartSweeper(cfg.Store.SweepSpec); err != nil {
			_ = memory.Close()
			return nil, err
		}
	}

	engine := extract.NewEngine(newLLMExtractor(cfg), extract.Config{
		LLMTimeout: cfg.Provider.Timeout(),
		MaxRetries: cfg.Provider.MaxRetries,
	})

	recommender := recommend.NewEngine(catalog, recommend.Weights{
		Industry:  cfg.Policy.WeightIndustry,
		Urgency:   cfg.Policy.WeightUrgency,
		RoleCount: cfg.Policy.WeightRoleCount,
	}, cfg.Policy.RelevanceFloor)

	proposals := proposal.NewGenerator(proposal.Config{
		UrgencyMultiplier: cfg.Policy.UrgencyMultiplier,
		TimelineReduction: cfg.Policy.TimelineReduction,
	})

	orch := orchestrator.New(memory, engine, recommender, proposals, orchestrator.Config{
		ConfidenceThreshold: cfg.Policy.ConfidenceThreshold,
	})

	return &Agent{
		cfg:     cfg,
		catalog: catalog,
		memory:  memory,
		orch:    orch,
	}, nil
}

func newStore(cfg *config.Config) (session.Store, error) {
	switch cfg.Store.Type {
	case "redis":
		return session.NewRedisStore(session.RedisConfig{
			Addr:       cfg.Store.RedisAddr,
			Password:   cfg.Store.RedisPassword,
			DB:         cfg.Store.RedisDB,
			SessionTTL: cfg.Store.SessionTTL(),
		})
	case "file":
		return session.NewFileStore(cfg.Store.Dir)
	default:
		return nil, fmt.Errorf("unknown store type %q", cfg.Store.Type)
	}
}

func newLLMExtractor(cfg *config.Config) *extract.LLMExtractor {
	providerCfg := map[string]any{}
	if cfg.Provider.APIKey != "" {
		providerCfg["api_key"] = cfg.Provider.APIKey
	}

	p, err := provider.New(cfg.Provider.Name, providerCfg)
	if err != nil {
		log.Printf("provider %q unavailable, extraction runs rule-only: %v", cfg.Provider.Name, err)
		return nil
	}
	if cfg.Provider.RequestsPerSecond > 0 {
		burst := cfg.Provider.Burst
		if burst <= 0 {
			burst = 1
		}
		p = provider.NewRateLimited(p, cfg.Provider.RequestsPerSecond, burst)
	}
	return extract.NewLLMExtractor(p, cfg.Provider.Model)
}

// ProcessTurn runs one conversation turn. An empty sessionID starts a new
// session; the returned response carries its id.
func (a *Agent) ProcessTurn(ctx context.Context, sessionID, utterance string) (*orchestrator.Response, error) {
	return a.orch.ProcessTurn(ctx, sessionID, utterance)
}

// Catalog returns the loaded service-package catalog.
func (a *Agent) Catalog() *recommend.Catalog {
	return a.catalog
}

// Sessions returns the ids of the stored sessions.
func (a *Agent) Sessions(ctx context.Context) ([]string, error) {
	return a.memory.List(ctx)
}

// Close stops background work and releases the session store.
func (a *Agent) Close() error {
	return a.memory.Close()
}
