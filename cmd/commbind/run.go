package main

import (
	"github.com/spf13/cobra"

	"github.com/kingrea/commbind/internal/config"
	"github.com/kingrea/commbind/internal/engine"
	"github.com/kingrea/commbind/internal/topology"
)

var (
	runFlags  topologyFlags
	runScript string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Initialize the engine with this worker's topology, report it, then shut down",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if runScript != "" {
			cfg.Project.Engine.Backend = config.BackendScript
			cfg.Project.Engine.Script = runScript
		}
		topo, err := runFlags.resolve(cfg)
		if err != nil {
			return err
		}
		eng, err := cfg.EngineSettings()
		if err != nil {
			return err
		}
		logger, err := openLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Close()

		lib, err := engine.LibraryFromConfig(eng)
		if err != nil {
			logger.Error("load %s engine: %v", eng.Backend, err)
			return err
		}
		session, err := engine.Open(lib, topo, engine.WithLogger(logger))
		if err != nil {
			return err
		}
		defer session.Close()
		debugf(cmd, "session %s on %s backend", session.ID(), eng.Backend)

		reported, err := session.Topology()
		if err != nil {
			return err
		}
		if err := renderTopologies(cmd.OutOrStdout(), format, nil, []topology.Topology{reported}); err != nil {
			return err
		}
		return session.Close()
	},
}

func init() {
	runFlags.register(runCmd)
	runCmd.Flags().StringVar(&runScript, "script", "", "evaluate this Go source engine instead of the configured backend")
	rootCmd.AddCommand(runCmd)
}
