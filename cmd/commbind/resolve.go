package main

import (
	"github.com/spf13/cobra"

	"github.com/kingrea/commbind/internal/config"
	"github.com/kingrea/commbind/internal/topology"
)

// topologyFlags are the explicit overrides shared by resolve and run. When
// all four topology values are given the host list is not consulted.
type topologyFlags struct {
	hosts     string
	rank      int
	localRank int
	size      int
	localSize int
}

func (f *topologyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.hosts, "hosts", "", "comma-separated ip:port worker list (defaults to the configured env var)")
	cmd.Flags().IntVar(&f.rank, "rank", -1, "global rank of this worker (defaults to the configured env var)")
	cmd.Flags().IntVar(&f.localRank, "local-rank", -1, "explicit local rank")
	cmd.Flags().IntVar(&f.size, "size", -1, "explicit size")
	cmd.Flags().IntVar(&f.localSize, "local-size", -1, "explicit local size")
}

func (f *topologyFlags) explicit() bool {
	return f.rank >= 0 && f.localRank >= 0 && f.size >= 0 && f.localSize >= 0
}

// workerSpec merges flags over the environment contract.
func (f *topologyFlags) workerSpec(cfg *config.Config) (config.WorkerSpec, error) {
	var (
		spec config.WorkerSpec
		err  error
	)
	if f.hosts != "" {
		spec.Endpoints, err = topology.ParseEndpointList(f.hosts)
	} else {
		spec.Endpoints, err = cfg.WorkerHosts()
	}
	if err != nil {
		return config.WorkerSpec{}, err
	}
	if f.rank >= 0 {
		spec.Rank = f.rank
	} else if spec.Rank, err = cfg.WorkerRank(); err != nil {
		return config.WorkerSpec{}, err
	}
	return spec, nil
}

func (f *topologyFlags) resolve(cfg *config.Config) (topology.Topology, error) {
	if f.explicit() {
		return topology.New(f.rank, f.localRank, f.size, f.localSize)
	}
	spec, err := f.workerSpec(cfg)
	if err != nil {
		return topology.Topology{}, err
	}
	return spec.Resolve()
}

var resolveFlags topologyFlags

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print this worker's topology",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		topo, err := resolveFlags.resolve(cfg)
		if err != nil {
			return err
		}
		debugf(cmd, "resolved %s", topo)
		return renderTopologies(cmd.OutOrStdout(), format, nil, []topology.Topology{topo})
	},
}

var peersHosts string

var peersCmd = &cobra.Command{
	Use:   "peers",
	Short: "Print the topology every worker in the host list derives for itself",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoints, err := peerEndpoints()
		if err != nil {
			return err
		}
		all, err := topology.ResolveAll(endpoints)
		if err != nil {
			return err
		}
		debugf(cmd, "resolved %d peers", len(all))
		return renderTopologies(cmd.OutOrStdout(), format, endpoints, all)
	},
}

// peerEndpoints prefers --hosts and falls back to the configured env var.
func peerEndpoints() ([]topology.Endpoint, error) {
	if peersHosts != "" {
		return topology.ParseEndpointList(peersHosts)
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return cfg.WorkerHosts()
}

func init() {
	resolveFlags.register(resolveCmd)
	peersCmd.Flags().StringVar(&peersHosts, "hosts", "", "comma-separated ip:port worker list (defaults to the configured env var)")
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(peersCmd)
}
