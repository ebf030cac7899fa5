package topology

import "fmt"

// Topology is a process's position in the distributed job.
type Topology struct {
	Rank      int `yaml:"rank" json:"rank"`
	LocalRank int `yaml:"local_rank" json:"local_rank"`
	Size      int `yaml:"size" json:"size"`
	LocalSize int `yaml:"local_size" json:"local_size"`
}

// New builds a Topology from explicitly supplied values.
func New(rank, localRank, size, localSize int) (Topology, error) {
	t := Topology{Rank: rank, LocalRank: localRank, Size: size, LocalSize: localSize}
	if err := t.Validate(); err != nil {
		return Topology{}, err
	}
	return t, nil
}

// Validate checks 0 <= LocalRank < LocalSize <= Size and 0 <= Rank < Size.
func (t Topology) Validate() error {
	if t.Size < 1 {
		return configErrorf("size %d must be positive", t.Size)
	}
	if t.Rank < 0 || t.Rank >= t.Size {
		return configErrorf("rank %d out of range [0,%d)", t.Rank, t.Size)
	}
	if t.LocalSize < 1 || t.LocalSize > t.Size {
		return configErrorf("local size %d out of range [1,%d]", t.LocalSize, t.Size)
	}
	if t.LocalRank < 0 || t.LocalRank >= t.LocalSize {
		return configErrorf("local rank %d out of range [0,%d)", t.LocalRank, t.LocalSize)
	}
	return nil
}

func (t Topology) String() string {
	return fmt.Sprintf("rank=%d local_rank=%d size=%d local_size=%d", t.Rank, t.LocalRank, t.Size, t.LocalSize)
}

// Resolve derives the topology of the endpoint at index myRank.
//
// Local ranks follow first-seen order among endpoints sharing an ip; peers
// running the same scan over the same list agree without a handshake, so
// the list must never be sorted or deduplicated here.
func Resolve(endpoints []Endpoint, myRank int) (Topology, error) {
	if len(endpoints) == 0 {
		return Topology{}, configErrorf("endpoint list is empty")
	}
	if myRank < 0 || myRank >= len(endpoints) {
		return Topology{}, configErrorf("rank %d out of range for %d endpoints", myRank, len(endpoints))
	}
	self := endpoints[myRank]
	localSize := 0
	localRank := -1
	for _, ep := range endpoints {
		if ep.IP != self.IP {
			continue
		}
		if ep.Port == self.Port {
			localRank = localSize
		}
		localSize++
	}
	return Topology{
		Rank:      myRank,
		LocalRank: localRank,
		Size:      len(endpoints),
		LocalSize: localSize,
	}, nil
}

// ResolveStrings parses "ip:port" hosts and resolves myRank against them.
func ResolveStrings(hosts []string, myRank int) (Topology, error) {
	endpoints, err := ParseEndpoints(hosts)
	if err != nil {
		return Topology{}, err
	}
	return Resolve(endpoints, myRank)
}

// ResolveAll derives the topology every peer computes for itself.
func ResolveAll(endpoints []Endpoint) ([]Topology, error) {
	if len(endpoints) == 0 {
		return nil, configErrorf("endpoint list is empty")
	}
	out := make([]Topology, len(endpoints))
	for rank := range endpoints {
		t, err := Resolve(endpoints, rank)
		if err != nil {
			return nil, err
		}
		out[rank] = t
	}
	return out, nil
}
