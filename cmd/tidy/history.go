package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/config"
	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View past organize runs",
	Long: `View the history of organize runs.

Each confirmed run records which files were moved where, so past
organization can be reviewed after the fact.`,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show details of a specific run",
	Long:  `Display every file moved by a run, looked up by its ID or a unique ID prefix.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove old history entries",
	Long:  `Remove history entries older than the retention period.`,
	RunE:  runHistoryClean,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "maximum number of entries to show")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyCleanCmd)
	rootCmd.AddCommand(historyCmd)
}

// openHistory opens the configured history store.
func openHistory() (*history.Store, error) {
	path := viper.GetString("history.path")
	if path == "" {
		path = config.DefaultHistoryPath()
	}
	if err := config.EnsureDataDir(); err != nil {
		return nil, err
	}
	return history.Open(path)
}

// runHistory lists recent runs.
func runHistory(_ *cobra.Command, _ []string) error {
	store, err := openHistory()
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer func() { _ = store.Close() }()

	entries, err := store.List(historyLimit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		printInfo("No history entries found.")
		printInfo("Run 'tidy <path>' to organize a directory.")
		return nil
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %s  %s  %d moved",
			e.ID[:8],
			e.Timestamp.Local().Format("2006-01-02 15:04"),
			e.Root,
			e.Moved)
		if e.Failed > 0 {
			line += fmt.Sprintf(", %d failed", e.Failed)
		}
		printInfo("%s", line)
	}
	return nil
}

// runHistoryShow prints every move of one run.
func runHistoryShow(_ *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer func() { _ = store.Close() }()

	entry, err := store.Get(args[0])
	if err != nil {
		return err
	}

	printInfo("Run %s", entry.ID)
	printInfo("  When: %s", entry.Timestamp.Local().Format(time.RFC1123))
	printInfo("  Root: %s", entry.Root)
	categories := make([]string, 0, len(entry.PerCategory))
	for category := range entry.PerCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		printInfo("  %s: %d", category, entry.PerCategory[category])
	}
	for _, f := range entry.Files {
		if f.Error != "" {
			printInfo("  ✗ %s: %s", f.Source, f.Error)
		} else {
			printInfo("  ✓ %s → %s", f.Source, f.Dest)
		}
	}
	return nil
}

// runHistoryClean prunes entries past the retention period.
func runHistoryClean(_ *cobra.Command, _ []string) error {
	store, err := openHistory()
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer func() { _ = store.Close() }()

	days := viper.GetInt("history.retention_days")
	if days <= 0 {
		days = config.DefaultRetentionDays
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	removed, err := store.Prune(cutoff)
	if err != nil {
		return err
	}

	printInfo("Removed %d entries older than %d days.", removed, days)
	return nil
}
