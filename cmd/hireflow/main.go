// Command hireflow is the CLI for the hiring-requirements agent: an
// interactive chat, a one-shot turn, and a catalog listing.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/hireflow-dev/hireflow"
	"github.com/hireflow-dev/hireflow/internal/observability"
	"github.com/hireflow-dev/hireflow/pkg/config"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:          "hireflow",
		Short:        "Conversational hiring-requirements agent",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")

	root.AddCommand(chatCmd(), turnCmd(), packagesCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newAgent() (*hireflow.Agent, error) {
	if err := observability.InitFromEnv(); err != nil {
		log.Printf("tracing init failed: %v", err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return hireflow.New(cfg)
}

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			agent, err := newAgent()
			if err != nil {
				return err
			}
			defer agent.Close()
			defer observability.Shutdown(context.Background())

			line := liner.NewLiner()
			defer line.Close()
			line.SetCtrlCAborts(true)

			historyPath := filepath.Join(os.TempDir(), ".hireflow_history")
			if f, err := os.Open(historyPath); err == nil {
				_, _ = line.ReadHistory(f)
				_ = f.Close()
			}
			defer func() {
				if f, err := os.Create(historyPath); err == nil {
					_, _ = line.WriteHistory(f)
					_ = f.Close()
				}
			}()

			fmt.Println("hireflow chat - describe your hiring needs (Ctrl-D to quit)")
			var sessionID string
			for {
				input, err := line.Prompt("> ")
				if err != nil {
					if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
						fmt.Println()
						return nil
					}
					return err
				}
				if strings.TrimSpace(input) == "" {
					continue
				}
				line.AppendHistory(input)

				resp, err := agent.ProcessTurn(cmd.Context(), sessionID, input)
				if err != nil {
					fmt.Fprintf(os.Stderr, "error: %v\n", err)
					continue
				}
				sessionID = resp.SessionID
				fmt.Printf("\n%s\n\n[stage: %s, confidence: %.2f]\n", resp.Text, resp.Stage, resp.Confidence)
			}
		},
	}
}

func turnCmd() *cobra.Command {
	var sessionID string
	cmd := &cobra.Command{
		Use:   "turn [message]",
		Short: "Process a single message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			agent, err := newAgent()
			if err != nil {
				return err
			}
			defer agent.Close()

			resp, err := agent.ProcessTurn(cmd.Context(), sessionID, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Printf("session: %s\nstage: %s\nconfidence: %.2f\n\n%s\n", resp.SessionID, resp.Stage, resp.Confidence, resp.Text)
			return nil
		},
	}
	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "session id (empty starts a new session)")
	return cmd
}

func packagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "packages",
		Short: "List the service-package catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			agent, err := newAgent()
			if err != nil {
				return err
			}
			defer agent.Close()

			for _, p := range agent.Catalog().Packages {
				fmt.Printf("%s (%s)\n", p.Name, p.ID)
				if p.Description != "" {
					fmt.Printf("  %s\n", p.Description)
				}
				fmt.Printf("  industries: %s\n", strings.Join(p.Industries, ", "))
				fmt.Printf("  base price: $%.0f for %d role(s), +$%.0f per extra role\n",
					p.BasePrice, p.DefaultRoles, p.SurchargePerRole)
				fmt.Printf("  timeline: %d days (min %d)\n\n", p.BaseTimelineDays, p.MinTimelineDays)
			}
			return nil
		},
	}
}
