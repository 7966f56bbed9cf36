package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("expected default provider %q, got %q", ProviderOpenAI, cfg.Provider)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("expected default model gpt-4o-mini, got %q", cfg.Model)
	}
	if cfg.TopK != 4 {
		t.Errorf("expected default top_k 4, got %d", cfg.TopK)
	}
	if cfg.ChunkSize != 1000 || cfg.ChunkOverlap != 150 {
		t.Errorf("expected default chunking 1000/150, got %d/%d", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Server.Port)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.nelfund.yml")

	original := DefaultConfig()
	original.Provider = ProviderOllama
	original.Model = "llama3"
	original.EmbeddingProvider = ProviderOllama
	original.EmbeddingModel = "nomic-embed-text"
	original.TopK = 6
	original.Server.Port = 9000
	original.Server.FrontendURL = "https://nelfund-chat.vercel.app"

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Provider != original.Provider {
		t.Errorf("provider: got %q, want %q", loaded.Provider, original.Provider)
	}
	if loaded.Model != original.Model {
		t.Errorf("model: got %q, want %q", loaded.Model, original.Model)
	}
	if loaded.TopK != original.TopK {
		t.Errorf("top_k: got %d, want %d", loaded.TopK, original.TopK)
	}
	if loaded.Server.Port != original.Server.Port {
		t.Errorf("server.port: got %d, want %d", loaded.Server.Port, original.Server.Port)
	}
	if loaded.Server.FrontendURL != original.Server.FrontendURL {
		t.Errorf("server.frontend_url: got %q, want %q", loaded.Server.FrontendURL, original.Server.FrontendURL)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("expected defaults for missing file, got model %q", cfg.Model)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("NELFUND_MODEL", "gpt-4o")
	t.Setenv("NELFUND_TOP_K", "8")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("expected env override model gpt-4o, got %q", cfg.Model)
	}
	if cfg.TopK != 8 {
		t.Errorf("expected env override top_k 8, got %d", cfg.TopK)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	bad := DefaultConfig()
	bad.Provider = "anthropic"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unsupported provider")
	}

	bad = DefaultConfig()
	bad.ChunkOverlap = bad.ChunkSize
	if err := bad.Validate(); err == nil {
		t.Error("expected error for overlap >= chunk size")
	}

	bad = DefaultConfig()
	bad.TopK = -1
	if err := bad.Validate(); err == nil {
		t.Error("expected error for negative top_k")
	}
}
