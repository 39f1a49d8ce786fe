package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/classify"
	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/config"
	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/confirm"
	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/history"
	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/logging"
	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/organize"
	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/output"
	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/scan"
	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/types"
)

// runOrganize is the root command handler: the full
// scan → report → confirm → move → tally pipeline.
func runOrganize(_ *cobra.Command, args []string) error {
	target := ""
	if len(args) > 0 {
		target = args[0]
	} else if defaultPath := viper.GetString("default_path"); defaultPath != "" {
		target = defaultPath
	}
	if target == "" {
		return errors.New("missing target directory")
	}

	expanded, err := config.ExpandPath(target)
	if err != nil {
		return fmt.Errorf("failed to expand path: %w", err)
	}

	classifier, err := buildClassifier()
	if err != nil {
		return err
	}

	plan, err := scan.Scan(expanded, classifier)
	if err != nil {
		if errors.Is(err, scan.ErrNotDirectory) {
			return fmt.Errorf("not an existing directory: %s", target)
		}
		return err
	}

	formatName := viper.GetString("output")
	formatter, err := output.Get(formatName)
	if err != nil {
		return err
	}

	report := &output.Report{Plan: plan}
	if err := render(formatter.FormatPlan, report); err != nil {
		return err
	}

	switch {
	case viper.GetBool("dry_run"):
		report.DryRun = true
		return render(formatter.FormatResult, report)

	case plan.Empty():
		return render(formatter.FormatResult, report)
	}

	if !viper.GetBool("yes") {
		// With JSON output the prompt goes to stderr so stdout stays a
		// single clean document.
		promptOut := io.Writer(os.Stdout)
		if formatName == "json" {
			promptOut = os.Stderr
		}
		prompt := fmt.Sprintf("\nOrganize %d files? (y/N): ", plan.TotalFiles())
		if !confirm.Ask(os.Stdin, promptOut, prompt) {
			report.Cancelled = true
			return render(formatter.FormatResult, report)
		}
	}

	summary, err := organize.Run(plan)
	if err != nil {
		return err
	}
	report.Summary = summary

	recordHistory(summary)

	return render(formatter.FormatResult, report)
}

// render runs one formatter stage and writes it to stdout.
func render(format func(*bytes.Buffer, *output.Report) error, r *output.Report) error {
	var buf bytes.Buffer
	if err := format(&buf, r); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	_, err := os.Stdout.Write(buf.Bytes())
	return err
}

// buildClassifier applies config overrides on top of the built-in rules.
func buildClassifier() (*classify.Classifier, error) {
	var opts []classify.Option
	if extra := viper.GetStringMapString("extensions"); len(extra) > 0 {
		opts = append(opts, classify.WithExtensions(extra))
	}
	if patterns := viper.GetStringSlice("skip_patterns"); len(patterns) > 0 {
		opts = append(opts, classify.WithSkipPatterns(patterns...))
	}

	classifier, err := classify.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid classifier config: %w", err)
	}
	return classifier, nil
}

// recordHistory persists the run. Best-effort: a history failure is
// logged but never fails an organize run that already moved files.
func recordHistory(summary *types.Summary) {
	if viper.GetBool("no_history") || !viper.GetBool("history.enabled") {
		return
	}

	logger := logging.Get("history")

	if err := config.EnsureDataDir(); err != nil {
		logger.Warn("history disabled", "error", err)
		return
	}

	path := viper.GetString("history.path")
	if path == "" {
		path = config.DefaultHistoryPath()
	}

	store, err := history.Open(path)
	if err != nil {
		logger.Warn("history disabled", "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	if err := store.Record(history.FromSummary(summary)); err != nil {
		logger.Warn("recording run failed", "error", err)
	}
}
