package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/takeoutsort/internal/organizer"
	"github.com/vmunix/takeoutsort/pkg/photodate"
)

// parseResultJSON is the JSON form of one parsed file name.
type parseResultJSON struct {
	Name           string `json:"name"`
	Date           string `json:"date"`
	Pattern        string `json:"pattern,omitempty"`
	Action         string `json:"action"`
	Reason         string `json:"reason,omitempty"`
	EditedOriginal string `json:"edited_original,omitempty"`
	Placement      string `json:"placement,omitempty"`
}

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <filename>...",
	Short: "Preview date extraction and filtering for file names (no files read)",
	Long: `Show the date found in each file name and what the filename-based
filters decide. All names are treated as one archive, so an edited copy is
reported as skipped when its original is among the arguments.

Examples:
  takeoutsort parse IMG_20160412_093011.jpg IMG-20150108-WA0000.jpg
  takeoutsort parse photo.jpg photo-edited.jpg
  takeoutsort parse --file names.txt --json`,
	RunE: runParseCmd,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringP("file", "f", "", "Read file names from file (one per line)")
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	inputFile, _ := cmd.Flags().GetString("file")

	names := args
	if inputFile != "" {
		fromFile, err := readNameFile(inputFile)
		if err != nil {
			return err
		}
		names = append(names, fromFile...)
	}
	if len(names) == 0 {
		return fmt.Errorf("no file names given")
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	results := parseNames(names, classifierFromConfig(cfg.Filter), cfg.Filter.EditedSuffixes, cfg.Output.UnknownBucket)
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), results)
	}
	printParseResults(cmd.OutOrStdout(), results)
	return nil
}

// parseNames decides every name against the set of all names.
func parseNames(names []string, cl *organizer.Classifier, suffixes []string, bucket string) []parseResultJSON {
	if len(suffixes) == 0 {
		suffixes = organizer.DefaultEditedSuffixes
	}
	batch := organizer.NewBatch(names, organizer.Options{
		FilterEnabled: true,
		Classifier:    cl,
		Resolver:      &organizer.Resolver{UnknownBucket: bucket},
	})

	results := make([]parseResultJSON, 0, len(names))
	for _, name := range names {
		res := batch.Decide(organizer.Entry{Path: name})
		r := parseResultJSON{
			Name:   organizer.Basename(name),
			Date:   res.Date.String(),
			Action: res.Decision.Action.String(),
			Reason: res.Decision.Reason.String(),
		}
		if _, pattern, ok := photodate.FromFilename(r.Name); ok {
			r.Pattern = pattern.String()
		}
		if original, ok := organizer.EditedOriginal(r.Name, suffixes); ok {
			r.EditedOriginal = original
		}
		if res.Placement != nil {
			r.Placement = res.Placement.Path()
		}
		results = append(results, r)
	}
	return results
}

func printParseResults(w io.Writer, results []parseResultJSON) {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n", r.Name)
		if r.Pattern != "" {
			fmt.Fprintf(w, "  Date:      %s (%s)\n", r.Date, r.Pattern)
		} else {
			fmt.Fprintf(w, "  Date:      %s\n", r.Date)
		}
		if r.EditedOriginal != "" {
			fmt.Fprintf(w, "  Edited:    copy of %s\n", r.EditedOriginal)
		}
		if r.Reason != "" {
			fmt.Fprintf(w, "  Decision:  %s (%s)\n", r.Action, r.Reason)
		} else {
			fmt.Fprintf(w, "  Decision:  %s -> %s\n", r.Action, r.Placement)
		}
	}
}

// readNameFile reads file names from a file, one per line.
// Empty lines and lines starting with # are skipped.
func readNameFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return names, nil
}
