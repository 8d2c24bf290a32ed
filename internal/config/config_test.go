package config

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Emit.IncludeHeaderComments {
		t.Errorf("expected header comments on by default")
	}
	if cfg.Emit.DefaultVarcharLength != 255 {
		t.Errorf("expected default_varchar_length 255, got %d", cfg.Emit.DefaultVarcharLength)
	}
	if cfg.Emit.IndexNameCollision != "suffix" {
		t.Errorf("expected index_name_collision 'suffix', got %s", cfg.Emit.IndexNameCollision)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected logging level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected logging format 'json', got %s", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("expected logging output 'stdout', got %s", cfg.Logging.Output)
	}
}

func TestConfigInputOutputAreEmptyByDefault(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Input != "" {
		t.Errorf("expected no default input path, got %q", cfg.Input)
	}
	if cfg.Output != "" {
		t.Errorf("expected no default output path, got %q", cfg.Output)
	}
}
