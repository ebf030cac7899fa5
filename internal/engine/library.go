package engine

// Uninitialized is what every accessor of a Library returns before Init
// succeeds or after Shutdown.
const Uninitialized = -1

const statusOK = 0

// Library is the raw call surface of a communication engine. Status codes
// are zero on success.
type Library interface {
	Init(rank, localRank, size, localSize int) int
	Shutdown() int
	Size() int
	LocalSize() int
	Rank() int
	LocalRank() int
	// Close releases the loaded engine. It does not call Shutdown.
	Close() error
}
