// Package main is the entry point for the DeathNote API server and its
// command-line helpers.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"deathnote/internal/ai"
	"deathnote/internal/config"
	"deathnote/internal/generator"
)

func main() {
	// Structured logger on stderr so command output on stdout stays clean.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:           "deathnote",
		Short:         "DeathNote content API",
		Long:          "DeathNote drafts final messages and end-of-life documents with an AI provider, falling back to a built-in template library.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newTemplatesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newService loads configuration and builds the AI registry and the
// generation service shared by the server and the CLI.
func newService() (*config.Config, *ai.Registry, *generator.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	registry := ai.NewRegistry(cfg.AIProvider, cfg.ProviderConfigs())
	slog.Info("ai providers initialized",
		"active", registry.ActiveName(),
		"available", registry.Available(),
	)

	// With no key for the active provider every request is served from the
	// fallback library.
	var provider generator.Provider = registry
	if !registry.HasProvider(cfg.AIProvider) {
		slog.Warn("active ai provider has no api key, using fallback content only", "provider", cfg.AIProvider)
		provider = nil
	}

	return cfg, registry, generator.NewService(provider, registry, cfg.GenerateMaxTokens), nil
}
