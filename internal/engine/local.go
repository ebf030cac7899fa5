package engine

import "sync"

// Local is an in-process engine that only records the topology it was
// initialized with. It follows the native engine's sentinel conventions.
type Local struct {
	mu        sync.Mutex
	rank      int
	localRank int
	size      int
	localSize int
	inits     int
	shutdowns int
}

// NewLocal returns an uninitialized reference engine.
func NewLocal() *Local {
	l := &Local{}
	l.reset()
	return l
}

func (l *Local) reset() {
	l.rank, l.localRank, l.size, l.localSize = Uninitialized, Uninitialized, Uninitialized, Uninitialized
}

func (l *Local) Init(rank, localRank, size, localSize int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rank, l.localRank, l.size, l.localSize = rank, localRank, size, localSize
	l.inits++
	return statusOK
}

func (l *Local) Shutdown() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reset()
	l.shutdowns++
	return statusOK
}

func (l *Local) Size() int      { return l.get(&l.size) }
func (l *Local) LocalSize() int { return l.get(&l.localSize) }
func (l *Local) Rank() int      { return l.get(&l.rank) }
func (l *Local) LocalRank() int { return l.get(&l.localRank) }

func (l *Local) get(field *int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return *field
}

// Calls reports how many times Init and Shutdown were invoked.
func (l *Local) Calls() (inits, shutdowns int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inits, l.shutdowns
}

func (l *Local) Close() error { return nil }
