package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/commbind/internal/topology"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00BFFF")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	okStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6BCB77"))
)

type topologyRow struct {
	topology.Topology `yaml:",inline"`

	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

// renderTopologies writes one row per topology. endpoints, when non-nil,
// is indexed by rank.
func renderTopologies(w io.Writer, format string, endpoints []topology.Endpoint, topos []topology.Topology) error {
	rows := make([]topologyRow, len(topos))
	for idx, topo := range topos {
		rows[idx] = topologyRow{Topology: topo}
		if topo.Rank < len(endpoints) {
			rows[idx].Endpoint = endpoints[topo.Rank].String()
		}
	}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(rows)
	case "table", "":
		_, err := fmt.Fprintln(w, topologyTable(rows))
		return err
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

func topologyTable(rows []topologyRow) string {
	withEndpoint := len(rows) > 0 && rows[0].Endpoint != ""
	headers := []string{"RANK", "LOCAL RANK", "SIZE", "LOCAL SIZE"}
	if withEndpoint {
		headers = append([]string{"ENDPOINT"}, headers...)
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, r := range rows {
		cells := []string{
			strconv.Itoa(r.Rank),
			strconv.Itoa(r.LocalRank),
			strconv.Itoa(r.Size),
			strconv.Itoa(r.LocalSize),
		}
		if withEndpoint {
			cells = append([]string{r.Endpoint}, cells...)
		}
		t.Row(cells...)
	}
	return t.String()
}
