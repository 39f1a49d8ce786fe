package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage tidy configuration settings.

Configuration is loaded from:
  1. $XDG_CONFIG_HOME/tidy/config.yaml (if set)
  2. ~/.config/tidy/config.yaml

Everything has compiled-in defaults; running without any config file is
the normal case. Environment variables override config file settings
using the TIDY_ prefix:
  TIDY_OUTPUT=json
  TIDY_LOGGING_LEVEL=debug`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration settings from all sources.`,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	Long:  `Create a commented default configuration file if one doesn't exist.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Long:  `Display the path where tidy looks for its configuration file.`,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// runConfigShow prints the effective configuration.
func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("output: %s\n", cfg.Output)
	fmt.Printf("default_path: %q\n", cfg.DefaultPath)
	fmt.Printf("history:\n")
	fmt.Printf("  enabled: %v\n", cfg.History.Enabled)
	fmt.Printf("  path: %s\n", cfg.History.Path)
	fmt.Printf("  retention_days: %d\n", cfg.History.RetentionDays)
	fmt.Printf("logging:\n")
	fmt.Printf("  level: %s\n", cfg.Logging.Level)
	fmt.Printf("  path: %q\n", cfg.Logging.Path)
	fmt.Printf("watch:\n")
	fmt.Printf("  settle: %s\n", cfg.Watch.Settle)
	if len(cfg.Extensions) > 0 {
		fmt.Printf("extensions: %d overrides\n", len(cfg.Extensions))
	}
	if len(cfg.SkipPatterns) > 0 {
		fmt.Printf("skip_patterns: %v\n", cfg.SkipPatterns)
	}

	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Printf("\nconfig file: %s\n", used)
	} else {
		fmt.Printf("\nconfig file: none (using defaults)\n")
	}
	return nil
}

// runConfigInit writes the default config file.
func runConfigInit(_ *cobra.Command, _ []string) error {
	if err := config.WriteDefault(); err != nil {
		return err
	}

	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	printInfo("Config file: %s", filepath.Join(dir, "config.yaml"))
	return nil
}

// runConfigPath prints the config file location.
func runConfigPath(_ *cobra.Command, _ []string) error {
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Println(used)
		return nil
	}

	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Println(filepath.Join(dir, "config.yaml"))
	return nil
}
