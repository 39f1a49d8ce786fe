package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/config"
	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/types"
	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <path>",
	Short: "Organize new files as they arrive",
	Long: `Watch a directory and organize files as they are created in it.

Files are classified and moved with the same rules as a one-shot run.
There is no confirmation prompt; starting the watcher is the consent.
Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Duration("settle", 0, "how long a new file must sit unchanged before it is moved")
	_ = viper.BindPFlag("watch.settle_flag", watchCmd.Flags().Lookup("settle"))

	rootCmd.AddCommand(watchCmd)
}

// runWatch runs the foreground watcher until interrupted.
func runWatch(_ *cobra.Command, args []string) error {
	expanded, err := config.ExpandPath(args[0])
	if err != nil {
		return fmt.Errorf("failed to expand path: %w", err)
	}

	classifier, err := buildClassifier()
	if err != nil {
		return err
	}

	settle := viper.GetDuration("watch.settle_flag")
	if settle <= 0 {
		if parsed, err := time.ParseDuration(viper.GetString("watch.settle")); err == nil {
			settle = parsed
		}
	}

	watcher, err := watch.New(expanded, classifier, settle)
	if err != nil {
		return err
	}
	watcher.OnMove = func(o types.MoveOutcome) {
		if o.OK() {
			printInfo("  ✓ %s → %s/", filepath.Base(o.Source), o.Category)
		} else {
			printError("%s: %s", filepath.Base(o.Source), o.Error)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printInfo("Watching %s (Ctrl-C to stop)", expanded)
	return watcher.Run(ctx)
}
