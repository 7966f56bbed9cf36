package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .nelfund.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to the NELFUND assistant! Let's configure the backend.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"openai", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)
	cfg.EmbeddingProvider = cfg.Provider

	// 2. Model.
	defaultModel := "gpt-4o-mini"
	defaultEmbedding := "text-embedding-3-small"
	if cfg.Provider == ProviderOllama {
		defaultModel = "llama3"
		defaultEmbedding = "nomic-embed-text"
	}
	modelPrompt := promptui.Prompt{
		Label:   "Chat model",
		Default: defaultModel,
	}
	model, err := modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	cfg.Model = model
	cfg.EmbeddingModel = defaultEmbedding

	// 3. Data directory holding the NELFUND documents.
	dataPrompt := promptui.Prompt{
		Label:   "Directory containing NELFUND documents",
		Default: cfg.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dataDir

	// 4. Frontend origin for CORS.
	frontendPrompt := promptui.Prompt{
		Label:   "Frontend URL for CORS (leave blank for localhost only)",
		Default: "",
	}
	frontend, err := frontendPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("frontend url: %w", err)
	}
	cfg.Server.FrontendURL = strings.TrimRight(frontend, "/")

	// Check for API key.
	envVar := APIKeyEnvVar(cfg.Provider)
	if envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment before running `nelfund ingest` or `nelfund serve`.\n", envVar)
	}

	configPath := ".nelfund.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}
