package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/config"
	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/logging"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "tidy [path]",
		Short: "Organize files into type-based subfolders",
		Long: `Tidy sorts the files of a directory into subfolders by type
(Images, Documents, Videos, ...).

It scans first, shows what it found, and asks for confirmation before
moving anything. Subdirectories are never touched, and existing files
are never overwritten.

Examples:
  tidy ~/Downloads           # Scan, confirm, organize
  tidy -d ~/Downloads        # Report only, move nothing
  tidy -y -o json ~/inbox    # No prompt, JSON output
  tidy watch ~/Downloads     # Organize new files as they arrive
  tidy photos ~/import ~/Pictures
  tidy history               # View past runs`,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: setupLogging,
		RunE:              runOrganize,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/tidy/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (pretty, plain, json)")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "skip the confirmation prompt")
	rootCmd.PersistentFlags().BoolP("dry-run", "d", false, "report only, move nothing")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")
	rootCmd.PersistentFlags().Bool("no-history", false, "don't record this run in history")

	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("yes", rootCmd.PersistentFlags().Lookup("yes"))
	_ = viper.BindPFlag("dry_run", rootCmd.PersistentFlags().Lookup("dry-run"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("no_history", rootCmd.PersistentFlags().Lookup("no-history"))
}

// initConfig reads in the optional config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			viper.AddConfigPath(filepath.Join(xdgConfigHome, "tidy"))
		}
		if homeDir, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(homeDir, ".config", "tidy"))
		}
	}

	viper.SetEnvPrefix("TIDY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("output", config.DefaultOutput)
	viper.SetDefault("default_path", "")
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.retention_days", config.DefaultRetentionDays)
	viper.SetDefault("logging.level", config.DefaultLogLevel)
	viper.SetDefault("watch.settle", config.DefaultWatchSettle)

	// Missing config file is fine; defaults apply.
	_ = viper.ReadInConfig()
}

// setupLogging initializes the logging system from config and flags.
func setupLogging(_ *cobra.Command, _ []string) error {
	cfg := logging.Config{
		Level:      viper.GetString("logging.level"),
		Path:       viper.GetString("logging.path"),
		Components: viper.GetStringMapString("logging.components"),
	}
	if getVerbose() {
		cfg.ConsoleLevel = "debug"
	}
	if err := logging.Init(cfg); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	defer func() { _ = logging.Close() }()
	return rootCmd.Execute()
}

// getVerbose returns true if verbose mode is enabled.
func getVerbose() bool {
	return viper.GetBool("verbose") && !viper.GetBool("quiet")
}

// getQuiet returns true if quiet mode is enabled.
func getQuiet() bool {
	return viper.GetBool("quiet")
}

// printInfo prints a message unless quiet mode is enabled.
func printInfo(format string, args ...interface{}) {
	if !getQuiet() {
		fmt.Printf(format+"\n", args...)
	}
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
