// Package engine is the typed boundary to the native gradient-communication
// engine. A Library is one loaded engine (compiled shared library, yaegi
// script, or the in-process reference), and Basics is the caller-owned
// session that drives its init/shutdown lifecycle and maps raw status codes
// and sentinel values to Go errors.
package engine
