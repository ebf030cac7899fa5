package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/kingrea/commbind/internal/config"
	"github.com/kingrea/commbind/internal/topology"
)

func TestRenderTopologiesJSON(t *testing.T) {
	endpoints, err := topology.ParseEndpointList("10.0.0.1:2000,10.0.0.1:2001,10.0.0.2:2000")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	all, err := topology.ResolveAll(endpoints)
	if err != nil {
		t.Fatalf("resolve all: %v", err)
	}
	var buf bytes.Buffer
	if err := renderTopologies(&buf, "json", endpoints, all); err != nil {
		t.Fatalf("render: %v", err)
	}
	var rows []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[1]["endpoint"] != "10.0.0.1:2001" || rows[1]["local_rank"] != float64(1) {
		t.Fatalf("unexpected row: %v", rows[1])
	}
}

func TestRenderTopologiesTableAndYAML(t *testing.T) {
	topo := topology.Topology{Rank: 0, LocalRank: 0, Size: 1, LocalSize: 1}
	var buf bytes.Buffer
	if err := renderTopologies(&buf, "table", nil, []topology.Topology{topo}); err != nil {
		t.Fatalf("render table: %v", err)
	}
	if !strings.Contains(buf.String(), "LOCAL RANK") || strings.Contains(buf.String(), "ENDPOINT") {
		t.Fatalf("unexpected table: %s", buf.String())
	}
	buf.Reset()
	if err := renderTopologies(&buf, "yaml", nil, []topology.Topology{topo}); err != nil {
		t.Fatalf("render yaml: %v", err)
	}
	if !strings.Contains(buf.String(), "local_size: 1") {
		t.Fatalf("unexpected yaml: %s", buf.String())
	}
	if err := renderTopologies(&buf, "xml", nil, nil); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestTopologyFlagsResolve(t *testing.T) {
	cfg, err := config.NewConfig(t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	explicit := topologyFlags{rank: 1, localRank: 0, size: 4, localSize: 2}
	topo, err := explicit.resolve(cfg)
	if err != nil {
		t.Fatalf("explicit resolve: %v", err)
	}
	if topo.Size != 4 || topo.LocalSize != 2 {
		t.Fatalf("unexpected explicit topology: %s", topo)
	}

	fromHosts := topologyFlags{hosts: "10.0.0.1:2000,10.0.0.1:2001,10.0.0.2:2000", rank: 1, localRank: -1, size: -1, localSize: -1}
	topo, err = fromHosts.resolve(cfg)
	if err != nil {
		t.Fatalf("hosts resolve: %v", err)
	}
	if topo.LocalRank != 1 || topo.LocalSize != 2 || topo.Size != 3 {
		t.Fatalf("unexpected derived topology: %s", topo)
	}

	t.Setenv(config.DefaultHostsEnv, "10.0.0.1:2000,10.0.0.2:2000")
	t.Setenv(config.DefaultWorkerIDEnv, "1")
	fromEnv := topologyFlags{rank: -1, localRank: -1, size: -1, localSize: -1}
	topo, err = fromEnv.resolve(cfg)
	if err != nil {
		t.Fatalf("env resolve: %v", err)
	}
	if topo.Rank != 1 || topo.LocalRank != 0 || topo.LocalSize != 1 {
		t.Fatalf("unexpected env topology: %s", topo)
	}
}
