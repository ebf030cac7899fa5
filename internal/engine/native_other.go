//go:build !(darwin || freebsd || linux)

package engine

import (
	"fmt"
	"runtime"
)

// Native is unavailable on this platform.
type Native struct{}

// LoadNative always fails where dlopen is not supported.
func LoadNative(path string) (*Native, error) {
	return nil, fmt.Errorf("engine: loading %s: native engines are not supported on %s", path, runtime.GOOS)
}

func (n *Native) Init(rank, localRank, size, localSize int) int { return Uninitialized }
func (n *Native) Shutdown() int                                  { return Uninitialized }
func (n *Native) Size() int                                      { return Uninitialized }
func (n *Native) LocalSize() int                                 { return Uninitialized }
func (n *Native) Rank() int                                      { return Uninitialized }
func (n *Native) LocalRank() int                                 { return Uninitialized }
func (n *Native) Close() error                                   { return nil }
