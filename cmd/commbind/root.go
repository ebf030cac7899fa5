package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kingrea/commbind/internal/config"
	"github.com/kingrea/commbind/internal/logging"
)

var (
	projectDir string
	verbose    bool
	format     string
)

// base of all commands, every command starts with "commbind"
var rootCmd = &cobra.Command{
	Use:           "commbind",
	Short:         "Resolve worker topology and drive the communication engine",
	Long:          "commbind derives rank, local rank, size and local size from the shared worker host list and hands them to the communication engine.",
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "p", "", "project directory holding .commbind (defaults to cwd)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "table", "output format (table, json, yaml)")
}

func absoluteProject() (string, error) {
	project := projectDir
	if project == "" {
		var err error
		project, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determine working directory: %w", err)
		}
	}
	return filepath.Abs(project)
}

func loadConfig() (*config.Config, error) {
	project, err := absoluteProject()
	if err != nil {
		return nil, err
	}
	cfg, err := config.NewConfig(project)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openLogger creates .commbind/logs on demand.
func openLogger(cfg *config.Config) (*logging.Logger, error) {
	if err := config.InitDir(cfg.ProjectDir); err != nil {
		return nil, fmt.Errorf("init %s: %w", config.Dir, err)
	}
	return logging.New(cfg.ProjectDir)
}

func debugf(cmd *cobra.Command, format string, args ...any) {
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
	}
}
