// Package topology derives a worker's position in a distributed job from
// the ordered worker host list every process shares. Each process computes
// its own (and its peers') topology independently, so the derivation is a
// pure function of the list and the rank index.
package topology
