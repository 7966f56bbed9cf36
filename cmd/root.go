package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "nelfund",
	Short: "AI assistant for the Nigerian student loan scheme",
	Long: `NELFUND assistant answers questions about the Nigerian Education Loan
Fund using the official policy documents. It downloads and indexes the
documents into a semantic vector database, answers questions grounded in
them with source citations, and serves the result over an HTTP API or
MCP for AI agents.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Best effort; API keys can come from the environment directly.
		_ = godotenv.Load()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".nelfund.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
