// internal/config/validate_test.go
package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_DefaultsValid(t *testing.T) {
	errs := Default().Validate()
	assert.Empty(t, errs, "expected no errors for default config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		want   string
	}{
		{"log level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"unknown rule with suggestion", func(c *Config) { c.Filter.Rules = []string{"dslr-camra"} }, `did you mean "dslr-camera"`},
		{"unknown rule", func(c *Config) { c.Filter.Rules = []string{"zzz"} }, `unknown rule "zzz"`},
		{"duplicate rule", func(c *Config) { c.Filter.Rules = []string{"google-mix", "google-mix"} }, "listed twice"},
		{"empty suffix", func(c *Config) { c.Filter.EditedSuffixes = []string{" "} }, "filter.edited_suffixes"},
		{"collision", func(c *Config) { c.Output.Collision = "overwite" }, `did you mean "overwrite"`},
		{"bucket with slash", func(c *Config) { c.Output.UnknownBucket = "a/b" }, "output.unknown_bucket"},
		{"bucket parent", func(c *Config) { c.Output.UnknownBucket = ".." }, "output.unknown_bucket"},
		{"empty extension", func(c *Config) { c.Input.ExtraExtensions = []string{"."} }, "input.extra_extensions"},
		{"history path", func(c *Config) { c.History.Path = "" }, "history.path"},
		{"workers", func(c *Config) { c.Run.Workers = -2 }, "run.workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			errs := cfg.Validate()
			assert.True(t, containsError(errs, tt.want), "expected %q in %v", tt.want, errs)
		})
	}
}

func TestValidate_HistoryDisabledNeedsNoPath(t *testing.T) {
	cfg := Default()
	cfg.History.Enabled = false
	cfg.History.Path = ""
	assert.Empty(t, cfg.Validate())
}

func TestSuggest(t *testing.T) {
	candidates := []string{"dslr-camera", "lightroom-software", "google-mix", "edited-original-exists"}
	assert.Equal(t, "lightroom-software", suggest("Lightroom-Sofware", candidates))
	assert.Equal(t, "google-mix", suggest("google_mix", candidates))
	assert.Empty(t, suggest("q", candidates))
}

func containsError(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}
