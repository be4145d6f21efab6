package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/takeoutsort/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates the config file syntax, filter rules, and environment variable substitution without organizing anything.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the example configuration",
	Long:  "Writes a commented example config to path (default: " + config.DefaultPath() + ").",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	path := configPath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		found, err := config.Discover()
		if err != nil {
			return err
		}
		path = found
	}

	fmt.Fprintf(out, "Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(out, configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(out, cfg)
	fmt.Fprintln(out, "\nConfiguration valid!")
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}

	if err := config.WriteDefault(path, force); err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			return fmt.Errorf("%w (use --force to overwrite)", err)
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func printConfigErrors(w io.Writer, e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Configuration Summary:")
	fmt.Fprintf(w, "  Log:        %s (%s)\n", cfg.Log.Level, cfg.Log.Format)

	if cfg.Filter.Enabled {
		fmt.Fprintf(w, "  Filter:     %s\n", strings.Join(cfg.Filter.Rules, ", "))
	} else {
		fmt.Fprintln(w, "  Filter:     disabled")
	}

	root := cfg.Output.Root
	if root == "" {
		root = "(from --output)"
	}
	fmt.Fprintf(w, "  Output:     %s (collision: %s, unknown: %s/)\n", root, cfg.Output.Collision, cfg.Output.UnknownBucket)

	if len(cfg.Input.ExtraExtensions) > 0 {
		fmt.Fprintf(w, "  Extra ext:  %s\n", strings.Join(cfg.Input.ExtraExtensions, ", "))
	}
	if cfg.History.Enabled {
		fmt.Fprintf(w, "  History:    %s\n", cfg.History.Path)
	} else {
		fmt.Fprintln(w, "  History:    disabled")
	}
	fmt.Fprintf(w, "  Workers:    %d\n", cfg.Run.Workers)
}
