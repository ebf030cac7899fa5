package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/commbind/internal/config"
	"github.com/kingrea/commbind/internal/engine"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that the compiled engine extension has been built",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cfg.Project.Engine.Backend = config.BackendNative
		eng, err := cfg.EngineSettings()
		if err != nil {
			return err
		}
		path, err := engine.NativePath(eng)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("found")+" "+path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
