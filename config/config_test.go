package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Analysis.TopN != 20 {
		t.Errorf("expected default top_n 20, got %d", cfg.Analysis.TopN)
	}
	if len(cfg.Analysis.KeepTags) != 3 {
		t.Errorf("expected 3 default keep tags, got %v", cfg.Analysis.KeepTags)
	}
	if cfg.Analysis.DictionaryEnding != "다" {
		t.Errorf("expected default dictionary ending 다, got %s", cfg.Analysis.DictionaryEnding)
	}
	if cfg.Output.Format != "csv" {
		t.Errorf("expected default output format csv, got %s", cfg.Output.Format)
	}
	if cfg.NATS.URL != "" {
		t.Errorf("expected NATS publishing disabled by default, got %s", cfg.NATS.URL)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "zero top_n",
			modify:  func(c *Config) { c.Analysis.TopN = 0 },
			wantErr: true,
		},
		{
			name:    "negative top_n",
			modify:  func(c *Config) { c.Analysis.TopN = -3 },
			wantErr: true,
		},
		{
			name:    "empty exclude entry",
			modify:  func(c *Config) { c.Analysis.Exclude = []string{"하다", ""} },
			wantErr: true,
		},
		{
			name:    "missing tokenizer command",
			modify:  func(c *Config) { c.Tokenizer.Command = "" },
			wantErr: true,
		},
		{
			name:    "missing output dir",
			modify:  func(c *Config) { c.Output.Dir = "" },
			wantErr: true,
		},
		{
			name:    "unsupported output format",
			modify:  func(c *Config) { c.Output.Format = "xlsx" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temp file with config
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
input:
  patterns:
    - "data/**/*.csv"
analysis:
  top_n: 30
  exclude:
    - 하다
    - 미혼모
tokenizer:
  command: "kiwi-tok"
  user_dict: "data/user_words.tsv"
output:
  dir: "results"
  format: tsv
nats:
  url: "nats://test:4222"
watch:
  debounce: 2s
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if len(cfg.Input.Patterns) != 1 {
		t.Errorf("expected 1 input pattern, got %v", cfg.Input.Patterns)
	}
	if cfg.Analysis.TopN != 30 {
		t.Errorf("expected top_n 30, got %d", cfg.Analysis.TopN)
	}
	if len(cfg.Analysis.Exclude) != 2 {
		t.Errorf("expected 2 excluded terms, got %v", cfg.Analysis.Exclude)
	}
	if cfg.Tokenizer.Command != "kiwi-tok" {
		t.Errorf("expected tokenizer command kiwi-tok, got %s", cfg.Tokenizer.Command)
	}
	if cfg.Output.Format != "tsv" {
		t.Errorf("expected output format tsv, got %s", cfg.Output.Format)
	}
	if cfg.NATS.URL != "nats://test:4222" {
		t.Errorf("expected NATS URL nats://test:4222, got %s", cfg.NATS.URL)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("expected debounce 2s, got %v", cfg.Watch.Debounce)
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Analysis: AnalysisConfig{
			TopN:    50,
			Exclude: []string{"하다"},
		},
		Output: OutputConfig{
			Dir: "/override/output",
		},
	}

	base.Merge(override)

	if base.Analysis.TopN != 50 {
		t.Errorf("expected top_n 50, got %d", base.Analysis.TopN)
	}
	if len(base.Analysis.Exclude) != 1 {
		t.Errorf("expected 1 excluded term, got %v", base.Analysis.Exclude)
	}
	// Tokenizer command should remain from base since override didn't set it
	if base.Tokenizer.Command != "kiwi-cli" {
		t.Errorf("expected tokenizer command to remain default, got %s", base.Tokenizer.Command)
	}
	if base.Output.Dir != "/override/output" {
		t.Errorf("expected output dir /override/output, got %s", base.Output.Dir)
	}
	// Format should remain default
	if base.Output.Format != "csv" {
		t.Errorf("expected output format to remain csv, got %s", base.Output.Format)
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Analysis.TopN = 25

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	// Verify file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	// Load and verify
	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Analysis.TopN != 25 {
		t.Errorf("expected top_n 25, got %d", loaded.Analysis.TopN)
	}
}
