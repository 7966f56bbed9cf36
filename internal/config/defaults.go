package config

// DefaultIncludes are glob patterns for document files ingested by default.
var DefaultIncludes = []string{"**/*.pdf", "**/*.txt", "**/*.md"}

// DefaultExcludes are glob patterns skipped during ingestion by default.
var DefaultExcludes = []string{"**/.*", "**/README.md"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderOpenAI,
		Model:             "gpt-4o-mini",
		Temperature:       0,
		EmbeddingProvider: ProviderOpenAI,
		EmbeddingModel:    "text-embedding-3-small",
		DataDir:           "data/nelfund_docs",
		IndexDir:          "index",
		DBPath:            "data/nelfund.db",
		TopK:              4,
		ChunkSize:         1000,
		ChunkOverlap:      150,
		Include:           DefaultIncludes,
		Exclude:           DefaultExcludes,
		RequestsPerMin:    60,
		Server: ServerConfig{
			Port: 8000,
		},
	}
}
