// cmd/commbind/main.go
//
// Entry point for the commbind worker tool. It resolves a worker's topology
// from the shared host list and drives the communication engine's
// init/shutdown lifecycle.

package main

func main() {
	Execute()
}
