package config

import (
	"path/filepath"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	tmp := t.TempDir()

	// 1. Write default config
	cfgPath := filepath.Join(tmp, "takeoutsort", "config.toml")
	if err := WriteDefault(cfgPath, false); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}

	// 2. Environment referenced by the default config
	t.Setenv("TAKEOUTSORT_OUTPUT", "/srv/photos")
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))

	// 3. Load with validation
	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// 4. Verify env substitution
	if cfg.Output.Root != "/srv/photos" {
		t.Errorf("expected output root substituted, got %q", cfg.Output.Root)
	}
	if want := filepath.Join(tmp, "data", "takeoutsort", "history.db"); cfg.History.Path != want {
		t.Errorf("expected history path %q, got %q", want, cfg.History.Path)
	}

	// 5. Verify the example matches the built-in defaults
	def := Default()
	if len(cfg.Filter.Rules) != len(def.Filter.Rules) {
		t.Errorf("expected %d rules, got %d", len(def.Filter.Rules), len(cfg.Filter.Rules))
	}
	if len(cfg.Filter.EditedSuffixes) != 6 {
		t.Errorf("expected 6 edited suffixes, got %v", cfg.Filter.EditedSuffixes)
	}
	if cfg.History.CacheTTL != def.History.CacheTTL {
		t.Errorf("expected cache ttl %v, got %v", def.History.CacheTTL, cfg.History.CacheTTL)
	}
}
