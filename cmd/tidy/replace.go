package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/config"
	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/replace"
)

var replaceCmd = &cobra.Command{
	Use:   "replace <search> <replacement> [path]",
	Short: "Replace a string in file contents and names",
	Long: `Recursively replace a literal string under a directory:
in the contents of text files, in file names, and in directory names.

Binary files are detected and left untouched. The path defaults to the
current directory. Use --dry-run to preview.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runReplace,
}

var replaceDryRun bool

func init() {
	replaceCmd.Flags().BoolVar(&replaceDryRun, "dry-run", false, "show what would be changed without changing it")

	rootCmd.AddCommand(replaceCmd)
}

// runReplace performs the recursive replacement.
func runReplace(_ *cobra.Command, args []string) error {
	root := "."
	if len(args) > 2 {
		root = args[2]
	}
	expanded, err := config.ExpandPath(root)
	if err != nil {
		return fmt.Errorf("failed to expand path: %w", err)
	}

	summary, err := replace.Run(replace.Options{
		Root:    expanded,
		Search:  args[0],
		Replace: args[1],
		DryRun:  replaceDryRun,
	})
	if err != nil {
		return err
	}

	verb := "changed"
	if replaceDryRun {
		verb = "would change"
	}
	for _, a := range summary.Actions {
		switch {
		case a.Error != "":
			printError("%s: %s", a.Path, a.Error)
		case a.Kind == replace.KindContent:
			printInfo("  %s contents: %s", verb, a.Path)
		default:
			printInfo("  %s name: %s → %s", verb, a.Path, a.NewPath)
		}
	}

	printInfo("\n%d contents, %d file names, %d directory names, %d failed",
		summary.ContentsChanged, summary.FilesRenamed, summary.DirsRenamed, summary.Failed)

	return nil
}
