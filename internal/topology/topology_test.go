package topology

import (
	"errors"
	"testing"
)

var threeWorkers = []string{"10.0.0.1:2000", "10.0.0.1:2001", "10.0.0.2:2000"}

func TestResolveScenarios(t *testing.T) {
	cases := []struct {
		name      string
		rank      int
		localRank int
		localSize int
	}{
		{name: "second on shared host", rank: 1, localRank: 1, localSize: 2},
		{name: "first on shared host", rank: 0, localRank: 0, localSize: 2},
		{name: "alone on host", rank: 2, localRank: 0, localSize: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			topo, err := ResolveStrings(threeWorkers, tc.rank)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if topo.Rank != tc.rank {
				t.Fatalf("rank = %d, want %d", topo.Rank, tc.rank)
			}
			if topo.Size != 3 {
				t.Fatalf("size = %d, want 3", topo.Size)
			}
			if topo.LocalRank != tc.localRank || topo.LocalSize != tc.localSize {
				t.Fatalf("got %s, want local_rank=%d local_size=%d", topo, tc.localRank, tc.localSize)
			}
		})
	}
}

func TestResolveRankOutOfRange(t *testing.T) {
	for _, rank := range []int{5, 3, -1} {
		_, err := ResolveStrings(threeWorkers, rank)
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("rank %d: expected ConfigurationError, got %v", rank, err)
		}
	}
}

func TestResolveEmptyList(t *testing.T) {
	var cfgErr *ConfigurationError
	if _, err := Resolve(nil, 0); !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if _, err := ResolveStrings([]string{}, 0); !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError for empty strings, got %v", err)
	}
	if _, err := ResolveAll(nil); !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError from ResolveAll, got %v", err)
	}
}

func TestResolveMalformedEndpoint(t *testing.T) {
	_, err := ResolveStrings([]string{"10.0.0.1:2000", "10.0.0.2"}, 0)
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	endpoints, err := ParseEndpoints(threeWorkers)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	first, err := Resolve(endpoints, 1)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Resolve(endpoints, 1)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if again != first {
			t.Fatalf("run %d: %s != %s", i, again, first)
		}
	}
}

func TestResolveAllIsConsistentAcrossPeers(t *testing.T) {
	endpoints, err := ParseEndpointList("10.0.0.2:1,10.0.0.1:1,10.0.0.2:2,10.0.0.3:1,10.0.0.1:2,10.0.0.2:3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	all, err := ResolveAll(endpoints)
	if err != nil {
		t.Fatalf("resolve all: %v", err)
	}
	seen := map[string][]int{}
	for rank, topo := range all {
		if err := topo.Validate(); err != nil {
			t.Fatalf("rank %d invalid: %v", rank, err)
		}
		if topo.Rank != rank {
			t.Fatalf("rank %d echoed as %d", rank, topo.Rank)
		}
		ip := endpoints[rank].IP
		seen[ip] = append(seen[ip], topo.LocalRank)
	}
	for ip, ranks := range seen {
		for want, got := range ranks {
			if got != want {
				t.Fatalf("ip %s local ranks %v are not first-seen order", ip, ranks)
			}
		}
	}
	if all[0].LocalSize != 3 || all[1].LocalSize != 2 || all[3].LocalSize != 1 {
		t.Fatalf("unexpected local sizes: %+v", all)
	}
}

func TestResolveDuplicateEndpointUsesLastMatch(t *testing.T) {
	topo, err := ResolveStrings([]string{"10.0.0.1:2000", "10.0.0.1:2000"}, 0)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if topo.LocalRank != 1 || topo.LocalSize != 2 {
		t.Fatalf("unexpected duplicate result: %s", topo)
	}
}

func TestNewValidatesInvariant(t *testing.T) {
	if _, err := New(0, 0, 4, 2); err != nil {
		t.Fatalf("valid topology rejected: %v", err)
	}
	invalid := [][4]int{
		{4, 0, 4, 2},
		{0, 2, 4, 2},
		{0, 0, 2, 3},
		{0, 0, 0, 0},
		{-1, 0, 1, 1},
	}
	for _, v := range invalid {
		if _, err := New(v[0], v[1], v[2], v[3]); err == nil {
			t.Fatalf("expected error for %v", v)
		}
	}
}
