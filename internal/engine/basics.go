package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/kingrea/commbind/internal/logging"
	"github.com/kingrea/commbind/internal/topology"
)

// Basics is a caller-owned session over a loaded engine.
type Basics struct {
	mu          sync.Mutex
	lib         Library
	logger      *logging.Logger
	id          string
	initialized bool
	closed      bool
}

// Option configures a Basics session.
type Option func(*Basics)

// WithLogger records lifecycle transitions to logger.
func WithLogger(logger *logging.Logger) Option {
	return func(b *Basics) {
		b.logger = logger
	}
}

// New wraps lib without initializing it.
func New(lib Library, opts ...Option) *Basics {
	b := &Basics{lib: lib, id: uuid.NewString()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Open loads a session and initializes it with topo. The caller must Close
// the returned session; on failure lib has already been released.
func Open(lib Library, topo topology.Topology, opts ...Option) (*Basics, error) {
	b := New(lib, opts...)
	if err := b.Init(topo); err != nil {
		return nil, errors.Join(err, b.Close())
	}
	return b, nil
}

// ID identifies the session in log lines.
func (b *Basics) ID() string {
	return b.id
}

// Init hands topo to the engine.
func (b *Basics) Init(topo topology.Topology) error {
	if err := topo.Validate(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return fmt.Errorf("engine: session %s is closed", b.id)
	}
	status := b.lib.Init(topo.Rank, topo.LocalRank, topo.Size, topo.LocalSize)
	if status != statusOK {
		b.logger.Error("session %s: init %s failed with status %d", b.id, topo, status)
		return &StatusError{Call: "init", Code: status}
	}
	b.initialized = true
	b.logger.Info("session %s: initialized %s", b.id, topo)
	return nil
}

// InitFromSpec derives this process's topology from the shared worker list
// and initializes the engine with it.
func (b *Basics) InitFromSpec(endpoints []topology.Endpoint, rank int) (topology.Topology, error) {
	topo, err := topology.Resolve(endpoints, rank)
	if err != nil {
		return topology.Topology{}, err
	}
	if err := b.Init(topo); err != nil {
		return topology.Topology{}, err
	}
	return topo, nil
}

// Shutdown tells the engine to stop.
func (b *Basics) Shutdown() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shutdownLocked()
}

func (b *Basics) shutdownLocked() error {
	if b.closed {
		return fmt.Errorf("engine: session %s is closed", b.id)
	}
	status := b.lib.Shutdown()
	b.initialized = false
	if status != statusOK {
		b.logger.Error("session %s: shutdown failed with status %d", b.id, status)
		return &StatusError{Call: "shutdown", Code: status}
	}
	b.logger.Info("session %s: shut down", b.id)
	return nil
}

// Size returns the number of processes in the job.
func (b *Basics) Size() (int, error) {
	return b.accessor("size", b.lib.Size)
}

// LocalSize returns the number of processes on this host.
func (b *Basics) LocalSize() (int, error) {
	return b.accessor("local_size", b.lib.LocalSize)
}

// Rank returns the calling process's global rank.
func (b *Basics) Rank() (int, error) {
	return b.accessor("rank", b.lib.Rank)
}

// LocalRank returns the calling process's rank among the processes on its
// host. With seven processes on a host, their local ranks are 0 through 6.
func (b *Basics) LocalRank() (int, error) {
	return b.accessor("local_rank", b.lib.LocalRank)
}

// Topology reads all four accessors back from the engine.
func (b *Basics) Topology() (topology.Topology, error) {
	var (
		topo topology.Topology
		err  error
	)
	if topo.Rank, err = b.Rank(); err != nil {
		return topology.Topology{}, err
	}
	if topo.LocalRank, err = b.LocalRank(); err != nil {
		return topology.Topology{}, err
	}
	if topo.Size, err = b.Size(); err != nil {
		return topology.Topology{}, err
	}
	if topo.LocalSize, err = b.LocalSize(); err != nil {
		return topology.Topology{}, err
	}
	return topo, nil
}

func (b *Basics) accessor(name string, call func() int) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return 0, &UninitializedError{Accessor: name}
	}
	value := call()
	if value == Uninitialized {
		return 0, &UninitializedError{Accessor: name}
	}
	return value, nil
}

// Close shuts the engine down if it is still initialized and releases the
// library. Calling Close more than once is a no-op.
func (b *Basics) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	var errs []error
	if b.initialized {
		if err := b.shutdownLocked(); err != nil {
			errs = append(errs, err)
		}
	}
	b.closed = true
	if err := b.lib.Close(); err != nil {
		errs = append(errs, fmt.Errorf("engine: release library: %w", err))
	}
	return errors.Join(errs...)
}
