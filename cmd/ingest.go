package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Abdul234Malik/NELFUND/internal/ingest"
	"github.com/Abdul234Malik/NELFUND/internal/progress"
	"github.com/Abdul234Malik/NELFUND/internal/vectordb"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Index the policy documents into the vector database",
	Long: `Reads the policy documents from the data directory, splits them into
chunks, embeds each chunk, and persists the resulting index. Re-running
replaces the chunks of any document that is ingested again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		embedder, err := createEmbedderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}

		store, err := vectordb.NewChromemStore(embedder)
		if err != nil {
			return fmt.Errorf("creating vector store: %w", err)
		}
		// Carry forward previously ingested documents when the index exists.
		if err := store.Load(ctx, cfg.IndexDir); err != nil {
			if verbose {
				fmt.Printf("starting a fresh index: %v\n", err)
			}
		}

		loader := ingest.NewLoader(cfg.Include, cfg.Exclude)
		ing := ingest.NewIngester(store, loader, cfg.ChunkSize, cfg.ChunkOverlap, progress.NewReporter())

		stats, err := ing.Run(ctx, cfg.DataDir, cfg.IndexDir)
		if err != nil {
			return err
		}

		fmt.Printf("Indexed %d chunks from %d documents into %s\n", stats.Chunks, stats.Files, cfg.IndexDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}
