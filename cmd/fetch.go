package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Abdul234Malik/NELFUND/internal/fetch"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the official NELFUND policy documents",
	Long:  `Downloads the official NELFUND policy documents into the configured data directory. Existing files are kept, so the command is safe to re-run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		res, err := fetch.Download(context.Background(), cfg.DataDir, fetch.DefaultDocuments)
		if err != nil {
			return err
		}

		for _, name := range res.Downloaded {
			fmt.Printf("downloaded %s\n", name)
		}
		for _, name := range res.Skipped {
			fmt.Printf("skipped %s (already present)\n", name)
		}
		for name, ferr := range res.Failed {
			fmt.Printf("failed %s: %v\n", name, ferr)
		}

		if len(res.Failed) > 0 {
			return fmt.Errorf("%d of %d documents failed to download", len(res.Failed), len(fetch.DefaultDocuments))
		}
		fmt.Printf("\nDocuments ready in %s. Run `nelfund ingest` to index them.\n", cfg.DataDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
