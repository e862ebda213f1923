package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/webqual/webgate/internal/config"
)

func TestInitCommand_BasicConfigCreation(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "webgate.config.json")

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Config file was not created: %v", err)
	}

	var cfg config.Config
	if err := json.Unmarshal(content, &cfg); err != nil {
		t.Fatalf("Generated config is not valid JSON: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Generated config does not validate: %v", err)
	}
	if len(cfg.Gates) != 4 {
		t.Errorf("Expected 4 gates in generated config, got %d", len(cfg.Gates))
	}
}

func TestInitCommand_MinimalConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "webgate.config.json")

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath, "--minimal"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Config file was not created: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(content, &decoded); err != nil {
		t.Fatalf("Generated config is not valid JSON: %v", err)
	}
	if _, ok := decoded["gates"]; !ok {
		t.Error("Minimal config missing gates section")
	}
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "webgate.config.json")
	if err := os.WriteFile(configPath, []byte("{}"), 0644); err != nil {
		t.Fatalf("Failed to write existing config: %v", err)
	}

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath})
	if err := cmd.Execute(); err == nil {
		t.Error("Expected error when config file already exists")
	}
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "webgate.config.json")
	if err := os.WriteFile(configPath, []byte("{}"), 0644); err != nil {
		t.Fatalf("Failed to write existing config: %v", err)
	}

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath, "--force"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	if string(content) == "{}" {
		t.Error("Config file was not overwritten")
	}
}

func TestInitCommand_MissingDirectory(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "missing", "webgate.config.json")

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath})
	if err := cmd.Execute(); err == nil {
		t.Error("Expected error for nonexistent directory")
	}
}

func TestInitCommand_GeneratedConfigLoads(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "webgate.config.json")

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Generated config does not load: %v", err)
	}
	if cfg.Readiness.MinimumOverallScore != config.DefaultMinimumOverallScore {
		t.Errorf("Expected standard readiness defaults, got %+v", cfg.Readiness)
	}
}
