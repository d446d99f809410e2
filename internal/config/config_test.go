package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/datachat-cli/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	c, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DefaultModel != "openai/gpt-4o-mini" {
		t.Errorf("default_model = %q", c.DefaultModel)
	}
	if c.DefaultProvider != "openrouter" {
		t.Errorf("default_provider = %q", c.DefaultProvider)
	}
	if c.MaxRows != 10000 || c.SampleThreshold != 100 || c.SampleWindow != 10 {
		t.Errorf("sampling defaults = %d/%d/%d", c.MaxRows, c.SampleThreshold, c.SampleWindow)
	}
	if c.OvershootFactor != 2 {
		t.Errorf("overshoot_factor = %d, want 2", c.OvershootFactor)
	}
}

func TestSaveThenLoadRoundtrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	want := &config.Global{
		APIKey:          "sk-test",
		DefaultModel:    "anthropic/claude-3.5-sonnet",
		DefaultProvider: "openrouter",
		MaxTokens:       2048,
		Temperature:     0.3,
		MaxRows:         500,
		SampleThreshold: 50,
		SampleWindow:    5,
		OvershootFactor: 3,
	}
	if err := config.Save(want, ""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".datachat", "config.yaml")); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	got, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.APIKey != want.APIKey || got.DefaultModel != want.DefaultModel {
		t.Errorf("got %+v", got)
	}
	if got.SampleThreshold != 50 || got.OvershootFactor != 3 {
		t.Errorf("got %+v", got)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := config.Save(&config.Global{DefaultModel: "file-model"}, ""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	t.Setenv("DATACHAT_DEFAULT_MODEL", "env-model")

	c, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DefaultModel != "env-model" {
		t.Fatalf("default_model = %q, want env override", c.DefaultModel)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(p, []byte("default_model: custom\nmax_rows: 7\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := config.Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DefaultModel != "custom" || c.MaxRows != 7 {
		t.Fatalf("got %+v", c)
	}
}
