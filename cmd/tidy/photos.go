package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/config"
	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/photos"
)

var photosCmd = &cobra.Command{
	Use:   "photos <source> [dest]",
	Short: "Sort photos into YEAR/MONTH/DAY folders",
	Long: `Sort photos into a YEAR/MONTH/DAY folder structure based on their
EXIF capture date, falling back to the file modification time.

Supported formats: JPG, JPEG, RAF. With no destination, photos are
sorted in place under the source directory.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPhotos,
}

var (
	photosCopy   bool
	photosDryRun bool
)

func init() {
	photosCmd.Flags().BoolVar(&photosCopy, "copy", false, "copy files instead of moving them")
	photosCmd.Flags().BoolVar(&photosDryRun, "dry-run", false, "show what would be done without doing it")

	rootCmd.AddCommand(photosCmd)
}

// runPhotos sorts a directory of photos by date.
func runPhotos(_ *cobra.Command, args []string) error {
	source, err := config.ExpandPath(args[0])
	if err != nil {
		return fmt.Errorf("failed to expand path: %w", err)
	}

	dest := ""
	if len(args) > 1 {
		if dest, err = config.ExpandPath(args[1]); err != nil {
			return fmt.Errorf("failed to expand path: %w", err)
		}
	}

	summary, err := photos.Sort(photos.Options{
		Source: source,
		Dest:   dest,
		Copy:   photosCopy,
		DryRun: photosDryRun,
	})
	if err != nil {
		return err
	}

	for _, o := range summary.Outcomes {
		switch {
		case o.Error != "":
			printError("%s: %s", o.Source, o.Error)
		case photosDryRun:
			printInfo("  would place %s → %s (%s)", o.Source, o.Dest, o.From)
		default:
			printInfo("  ✓ %s → %s (%s)", o.Source, o.Dest, o.From)
		}
	}

	printInfo("\n%d photos: %d sorted (%d by EXIF, %d by mtime), %d skipped, %d failed",
		summary.Total, summary.Sorted, summary.ByEXIF, summary.ByModTime,
		summary.Skipped, summary.Failed)

	return nil
}
