package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/vmunix/takeoutsort/internal/archive"
	"github.com/vmunix/takeoutsort/internal/config"
	"github.com/vmunix/takeoutsort/internal/importer"
	"github.com/vmunix/takeoutsort/internal/metadata"
)

// organizeOptions are the organize flags that override config.
type organizeOptions struct {
	Input     string
	Output    string
	NoFilter  bool
	DryRun    bool
	Workers   int
	History   string
	NoHistory bool
	Collision string
}

var organizeCmd = &cobra.Command{
	Use:   "organize --input <takeout.zip|dir> --output <dir>",
	Short: "Copy photos from a Takeout export into a dated folder tree",
	Long: `Copy photos from a Takeout export into <output>/YYYY/YYYY-MM-DD/.

The capture date comes from the EXIF DateTimeOriginal tag, falling back to
dates embedded in the file name. Photos without a date go to <output>/unknown/.

Examples:
  takeoutsort organize --input takeout-001.zip --output ~/Pictures
  takeoutsort organize --input Takeout/ --output ~/Pictures --no-filter
  takeoutsort organize --input takeout-001.zip --output ~/Pictures --dry-run --json`,
	Args: cobra.NoArgs,
	RunE: runOrganizeCmd,
}

func init() {
	rootCmd.AddCommand(organizeCmd)
	organizeCmd.Flags().StringP("input", "i", "", "Takeout zip file or extracted directory (required)")
	organizeCmd.Flags().StringP("output", "o", "", "Output directory (default: output.root from config)")
	organizeCmd.Flags().Bool("no-filter", false, "Keep every photo, including DSLR, Lightroom, MIX and edited copies")
	organizeCmd.Flags().BoolP("dry-run", "n", false, "Show what would be done without writing files")
	organizeCmd.Flags().Int("workers", 0, "Parallel metadata readers (default: run.workers from config)")
	organizeCmd.Flags().String("history", "", "History database path (default: history.path from config)")
	organizeCmd.Flags().Bool("no-history", false, "Do not record this run")
	organizeCmd.Flags().String("collision", "", "When a destination exists: suffix, skip, overwrite")
	_ = organizeCmd.MarkFlagRequired("input")
	_ = organizeCmd.MarkFlagFilename("input", "zip")
	_ = organizeCmd.MarkFlagDirname("output")
}

func runOrganizeCmd(cmd *cobra.Command, args []string) error {
	var opts organizeOptions
	opts.Input, _ = cmd.Flags().GetString("input")
	opts.Output, _ = cmd.Flags().GetString("output")
	opts.NoFilter, _ = cmd.Flags().GetBool("no-filter")
	opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
	opts.Workers, _ = cmd.Flags().GetInt("workers")
	opts.History, _ = cmd.Flags().GetString("history")
	opts.NoHistory, _ = cmd.Flags().GetBool("no-history")
	opts.Collision, _ = cmd.Flags().GetString("collision")

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	log := newLogger(cfg.Log, cmd.ErrOrStderr())
	_, err = runOrganize(ctx, cfg, opts, cmd.OutOrStdout(), log)
	return err
}

// applyOverrides merges flags into cfg and validates the result.
func applyOverrides(cfg *config.Config, opts organizeOptions) error {
	if opts.Output != "" {
		cfg.Output.Root = opts.Output
	}
	if cfg.Output.Root == "" {
		return errors.New("--output is required (or set output.root in the config)")
	}
	if opts.NoFilter {
		cfg.Filter.Enabled = false
	}
	if opts.Workers > 0 {
		cfg.Run.Workers = opts.Workers
	}
	if opts.History != "" {
		cfg.History.Path = opts.History
	}
	if opts.NoHistory {
		cfg.History.Enabled = false
	}
	if opts.Collision != "" {
		cfg.Output.Collision = opts.Collision
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return &config.ConfigError{Errors: errs}
	}
	return nil
}

// runOrganize runs one import and prints its report to out.
func runOrganize(ctx context.Context, cfg *config.Config, opts organizeOptions, out io.Writer, log *slog.Logger) (*importer.Report, error) {
	if err := applyOverrides(cfg, opts); err != nil {
		return nil, err
	}
	collision, err := importer.ParseCollisionPolicy(cfg.Output.Collision)
	if err != nil {
		return nil, err
	}

	src, err := archive.Open(opts.Input, archive.NewMatcher(cfg.Input.ExtraExtensions))
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", opts.Input, err)
	}
	defer func() { _ = src.Close() }()

	var store importer.Store
	var cache *metadata.Cache
	if cfg.History.Enabled {
		var db *sql.DB
		db, err = openDB(cfg.History.Path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = db.Close() }()
		store = importer.NewHistoryStore(db)
		cache = metadata.NewCache(db, cfg.History.CacheTTL)
		if n, err := cache.Prune(ctx); err != nil {
			log.Warn("prune metadata cache failed", "error", err)
		} else if n > 0 {
			log.Debug("pruned metadata cache", "entries", n)
		}
	}

	imp := importer.New(importer.Config{
		OutputRoot:    cfg.Output.Root,
		FilterEnabled: cfg.Filter.Enabled,
		Classifier:    classifierFromConfig(cfg.Filter),
		UnknownBucket: cfg.Output.UnknownBucket,
		ReuseDateDirs: cfg.Output.ReuseDateDirs,
		Collision:     collision,
		DryRun:        opts.DryRun,
		Workers:       cfg.Run.Workers,
	}, store, cache, log)

	report, runErr := imp.Run(ctx, src)
	if report != nil {
		if err := printReport(out, report); err != nil {
			return report, err
		}
	}
	return report, runErr
}

func printReport(w io.Writer, r *importer.Report) error {
	if jsonOutput {
		return printJSON(w, r)
	}
	if r.DryRun {
		fmt.Fprintln(w, "Dry run, nothing was written.")
	}
	for _, line := range r.Summary() {
		fmt.Fprintln(w, line)
	}
	return nil
}
