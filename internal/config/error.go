// internal/config/error.go
package config

import (
	"fmt"
	"strings"
)

// ConfigError collects every problem found while loading a config file, so
// `config test` can report them all at once instead of stopping at the first.
type ConfigError struct {
	// Path is the file the problems were found in. Empty for flag overrides.
	Path string
	// Missing lists ${VAR} references with no value in the environment.
	Missing []string
	// Errors are Validate messages, each prefixed with the offending key.
	Errors []string
}

// Error renders one line per problem under a header naming the file.
// An empty ConfigError renders as "".
func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var b strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&b, "config %s:\n", e.Path)
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "missing environment variables: %s\n", strings.Join(e.Missing, ", "))
	}
	if len(e.Errors) > 0 {
		b.WriteString("validation failed:\n")
		for _, msg := range e.Errors {
			fmt.Fprintf(&b, "  - %s\n", msg)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// HasErrors reports whether anything was collected.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}
