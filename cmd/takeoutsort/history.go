package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vmunix/takeoutsort/internal/importer"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded imports",
	Args:  cobra.NoArgs,
	RunE:  runHistoryCmd,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().String("db", "", "History database path (default: history.path from config)")
	historyCmd.Flags().IntP("limit", "l", 20, "Maximum number of records")
	historyCmd.Flags().String("action", "", "Only show records with this action: keep, skip, error")
	historyCmd.Flags().String("run", "", "Only show records of this run ID")
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	limit, _ := cmd.Flags().GetInt("limit")
	action, _ := cmd.Flags().GetString("action")
	runID, _ := cmd.Flags().GetString("run")

	if dbPath == "" {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		dbPath = cfg.History.Path
	}

	filter := importer.HistoryFilter{Limit: limit}
	switch action {
	case "":
	case importer.ActionKeep, importer.ActionSkip, importer.ActionError:
		filter.Action = &action
	default:
		return fmt.Errorf("invalid --action %q: must be keep, skip or error", action)
	}
	if runID != "" {
		filter.RunID = &runID
	}

	db, err := openDB(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	records, err := importer.NewHistoryStore(db).List(cmd.Context(), filter)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), records)
	}
	printHistory(cmd.OutOrStdout(), records)
	return nil
}

func printHistory(w io.Writer, records []*importer.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No history")
		return
	}

	fmt.Fprintf(w, "%-19s  %-6s  %-11s  %s\n", "TIME", "ACTION", "DATE", "ENTRY")
	for _, r := range records {
		date := r.CaptureDate
		if date == "" {
			date = "-"
		}
		detail := r.Destination
		if r.Action != importer.ActionKeep {
			detail = r.Reason
		}
		dry := ""
		if r.DryRun {
			dry = " (dry run)"
		}
		fmt.Fprintf(w, "%-19s  %-6s  %-11s  %s -> %s%s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Action, date, r.Entry, detail, dry)
	}
}
