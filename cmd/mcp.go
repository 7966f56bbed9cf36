package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Abdul234Malik/NELFUND/internal/agent"
	mcpserver "github.com/Abdul234Malik/NELFUND/internal/mcp"
	"github.com/Abdul234Malik/NELFUND/internal/vectordb"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the question answering and document search tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		embedder, err := createEmbedderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}

		provider, err := createLLMProviderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}

		store, err := vectordb.NewChromemStore(embedder)
		if err != nil {
			return fmt.Errorf("creating vector store: %w", err)
		}
		if err := store.Load(context.Background(), cfg.IndexDir); err != nil {
			// Stdout carries the protocol; warnings must go to stderr.
			fmt.Fprintf(os.Stderr, "Warning: could not load index from %s: %v\n", cfg.IndexDir, err)
			fmt.Fprintf(os.Stderr, "Search results will be empty. Run `nelfund ingest` first.\n")
		}

		retriever := agent.NewRetriever(func(context.Context) (vectordb.VectorStore, error) {
			return store, nil
		}, cfg.TopK)
		generator := agent.NewGenerator(provider, cfg.Model, cfg.Temperature)
		pipeline := agent.NewPipeline(retriever, generator, cfg.TopK)

		mcpserver.Version = Version
		fmt.Fprintf(os.Stderr, "nelfund MCP server started on stdio (chunks indexed: %d)\n", store.Count())

		srv := mcpserver.NewServer(pipeline, store)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
