// internal/config/validate.go
package config

import (
	"fmt"
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/vmunix/takeoutsort/internal/importer"
	"github.com/vmunix/takeoutsort/internal/organizer"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validLogFormats = map[string]bool{
	"text": true, "json": true, "": true,
}

// suggestThreshold is the minimum Jaro-Winkler similarity for a suggestion.
const suggestThreshold = 0.7

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	if !validLogFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("log.format: must be text or json; got %q", c.Log.Format))
	}

	// Filter rules
	known := organizer.RuleNames()
	seen := make(map[string]bool)
	for _, name := range c.Filter.Rules {
		if seen[name] {
			errs = append(errs, fmt.Sprintf("filter.rules: %q listed twice", name))
			continue
		}
		seen[name] = true
		if !contains(known, name) {
			msg := fmt.Sprintf("filter.rules: unknown rule %q", name)
			if s := suggest(name, known); s != "" {
				msg += fmt.Sprintf(" (did you mean %q?)", s)
			}
			errs = append(errs, msg)
		}
	}
	for _, s := range c.Filter.EditedSuffixes {
		if strings.TrimSpace(s) == "" {
			errs = append(errs, "filter.edited_suffixes: empty suffix")
		}
	}

	// Output
	if _, err := importer.ParseCollisionPolicy(c.Output.Collision); err != nil {
		var names []string
		for _, p := range importer.CollisionPolicies() {
			names = append(names, string(p))
		}
		msg := fmt.Sprintf("output.collision: must be one of %s; got %q", strings.Join(names, ", "), c.Output.Collision)
		if s := suggest(c.Output.Collision, names); s != "" {
			msg += fmt.Sprintf(" (did you mean %q?)", s)
		}
		errs = append(errs, msg)
	}
	if b := c.Output.UnknownBucket; b != "" && (strings.ContainsAny(b, `/\`) || b == "." || b == "..") {
		errs = append(errs, fmt.Sprintf("output.unknown_bucket: must be a single folder name, got %q", b))
	}

	for _, ext := range c.Input.ExtraExtensions {
		if strings.Trim(ext, ". ") == "" {
			errs = append(errs, "input.extra_extensions: empty extension")
		}
	}

	if c.History.Enabled && c.History.Path == "" {
		errs = append(errs, "history.path: required when history is enabled")
	}
	if c.History.CacheTTL < 0 {
		errs = append(errs, "history.cache_ttl: must not be negative")
	}

	if c.Run.Workers < 0 {
		errs = append(errs, fmt.Sprintf("run.workers: must be positive, got %d", c.Run.Workers))
	}

	return errs
}

// suggest returns the candidate most similar to name, or "" if none is close.
func suggest(name string, candidates []string) string {
	best, bestScore := "", float32(0)
	for _, c := range candidates {
		score := edlib.JaroWinklerSimilarity(strings.ToLower(name), c)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore < suggestThreshold {
		return ""
	}
	return best
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
