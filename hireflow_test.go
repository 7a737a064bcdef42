package hireflow_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hireflow-dev/hireflow"
	"github.com/hireflow-dev/hireflow/pkg/config"
	"github.com/hireflow-dev/hireflow/pkg/session"
)

const testCatalog = `
packages:
  - id: tech-startup
    name: Tech Startup Hiring Pack
    industries: [technology, fintech]
    roleCountMin: 1
    roleCountMax: 10
    basePrice: 12000
    surchargePerRole: 5000
    defaultRoles: 2
    baseTimelineDays: 21
    minTimelineDays: 10
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	catalogPath := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(catalogPath, []byte(testCatalog), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	cfg := config.Default()
	cfg.Provider.Name = "fake"
	cfg.Store.Dir = filepath.Join(dir, "sessions")
	cfg.Store.SweepSpec = ""
	cfg.CatalogPath = catalogPath
	return cfg
}

func TestAgentProcessesTurn(t *testing.T) {
	agent, err := hireflow.New(testConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer agent.Close()

	resp, err := agent.ProcessTurn(context.Background(), "",
		"We are a fintech startup in Mumbai hiring 2 backend engineers urgently")
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if resp.SessionID == "" {
		t.Error("no session id assigned")
	}
	if resp.Stage != session.StageRecommending {
		t.Errorf("stage = %q, want RECOMMENDING", resp.Stage)
	}

	// The session persists: a second turn continues where the first ended.
	resp2, err := agent.ProcessTurn(context.Background(), resp.SessionID, "Yes, go ahead")
	if err != nil {
		t.Fatalf("second ProcessTurn: %v", err)
	}
	if resp2.Stage != session.StageProposing {
		t.Errorf("stage = %q, want PROPOSING", resp2.Stage)
	}
	if resp2.Proposal == nil {
		t.Fatal("no proposal generated")
	}
}

func TestAgentRefusesToStartWithoutCatalog(t *testing.T) {
	cfg := testConfig(t)
	cfg.CatalogPath = filepath.Join(t.TempDir(), "missing.yaml")

	if _, err := hireflow.New(cfg); err == nil {
		t.Fatal("expected catalog load error, got nil")
	}
}

func TestAgentRefusesEmptyCatalog(t *testing.T) {
	cfg := testConfig(t)
	empty := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(empty, []byte("packages: []"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	cfg.CatalogPath = empty

	if _, err := hireflow.New(cfg); err == nil {
		t.Fatal("expected empty catalog error, got nil")
	}
}
