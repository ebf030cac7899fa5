//go:build darwin || freebsd || linux

package engine

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// Native is a compiled engine loaded with dlopen. Symbols are loaded with
// RTLD_GLOBAL so that framework plugins linked against the engine resolve
// against the same copy.
type Native struct {
	path   string
	handle uintptr

	initFn      func(rank, localRank, size, localSize int32) int32
	shutdownFn  func() int32
	sizeFn      func() int32
	localSizeFn func() int32
	rankFn      func() int32
	localRankFn func() int32
}

// LoadNative opens the shared library at path and binds the engine symbols.
func LoadNative(path string) (*Native, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("engine: dlopen %s: %w", path, err)
	}
	n := &Native{path: path, handle: handle}
	symbols := []struct {
		name string
		fptr any
	}{
		{"byteps_init", &n.initFn},
		{"byteps_shutdown", &n.shutdownFn},
		{"byteps_size", &n.sizeFn},
		{"byteps_local_size", &n.localSizeFn},
		{"byteps_rank", &n.rankFn},
		{"byteps_local_rank", &n.localRankFn},
	}
	for _, sym := range symbols {
		addr, err := purego.Dlsym(handle, sym.name)
		if err != nil {
			_ = purego.Dlclose(handle)
			return nil, fmt.Errorf("engine: %s: missing symbol %s: %w", path, sym.name, err)
		}
		purego.RegisterFunc(sym.fptr, addr)
	}
	return n, nil
}

// Path returns the shared library the engine was loaded from.
func (n *Native) Path() string {
	return n.path
}

func (n *Native) Init(rank, localRank, size, localSize int) int {
	return int(n.initFn(int32(rank), int32(localRank), int32(size), int32(localSize)))
}

func (n *Native) Shutdown() int  { return int(n.shutdownFn()) }
func (n *Native) Size() int      { return int(n.sizeFn()) }
func (n *Native) LocalSize() int { return int(n.localSizeFn()) }
func (n *Native) Rank() int      { return int(n.rankFn()) }
func (n *Native) LocalRank() int { return int(n.localRankFn()) }

func (n *Native) Close() error {
	if n.handle == 0 {
		return nil
	}
	err := purego.Dlclose(n.handle)
	n.handle = 0
	return err
}
