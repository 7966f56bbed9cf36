package config

// ProviderType identifies an LLM or embedding provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// Config is the top-level assistant configuration, corresponding to .nelfund.yml.
type Config struct {
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	Temperature       float64      `yaml:"temperature" koanf:"temperature"`
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`
	DataDir           string       `yaml:"data_dir" koanf:"data_dir"`
	IndexDir          string       `yaml:"index_dir" koanf:"index_dir"`
	DBPath            string       `yaml:"db_path" koanf:"db_path"`
	TopK              int          `yaml:"top_k" koanf:"top_k"`
	ChunkSize         int          `yaml:"chunk_size" koanf:"chunk_size"`
	ChunkOverlap      int          `yaml:"chunk_overlap" koanf:"chunk_overlap"`
	Include           []string     `yaml:"include" koanf:"include"`
	Exclude           []string     `yaml:"exclude" koanf:"exclude"`
	RequestsPerMin    int          `yaml:"requests_per_min" koanf:"requests_per_min"`
	Server            ServerConfig `yaml:"server" koanf:"server"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port        int    `yaml:"port" koanf:"port"`
	FrontendURL string `yaml:"frontend_url" koanf:"frontend_url"`
	AllowAll    bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
