package engine

import "fmt"

// UninitializedError is returned by accessors queried before Init succeeds.
type UninitializedError struct {
	Accessor string
}

func (e *UninitializedError) Error() string {
	return fmt.Sprintf("engine: %s: engine has not been initialized; call Init first", e.Accessor)
}

// StatusError wraps a non-zero status code from the engine.
type StatusError struct {
	Call string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("engine: %s returned status %d", e.Call, e.Code)
}

// MissingExtensionError reports a compiled extension that is not on disk.
type MissingExtensionError struct {
	Name     string
	Path     string
	DebugEnv string
}

func (e *MissingExtensionError) Error() string {
	return fmt.Sprintf("Extension %s has not been built.  If this is not expected, reinstall with %s=1 to debug the build error. (looked for %s)",
		e.Name, e.DebugEnv, e.Path)
}
