package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kingrea/commbind/internal/config"
)

// ExtensionName is how the compiled engine is named in missing-extension
// errors.
const ExtensionName = "commbind engine"

// LibraryFromConfig loads the backend selected by eng.
func LibraryFromConfig(eng config.EngineConfig) (Library, error) {
	switch eng.Backend {
	case config.BackendLocal:
		return NewLocal(), nil
	case config.BackendScript:
		script, err := LoadScript(eng.Script)
		if err != nil {
			return nil, err
		}
		return script, nil
	case config.BackendNative:
		path, err := NativePath(eng)
		if err != nil {
			return nil, err
		}
		native, err := LoadNative(path)
		if err != nil {
			return nil, err
		}
		return native, nil
	default:
		return nil, fmt.Errorf("engine: unknown backend %q", eng.Backend)
	}
}

// NativePath returns the configured library, or the built extension path
// when no explicit library is set. Either must exist on disk.
func NativePath(eng config.EngineConfig) (string, error) {
	if eng.Library != "" {
		if _, err := os.Stat(eng.Library); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", &MissingExtensionError{Name: ExtensionName, Path: eng.Library, DebugEnv: eng.BuildDebugEnv}
			}
			return "", fmt.Errorf("engine: stat %s: %w", eng.Library, err)
		}
		return eng.Library, nil
	}
	return Extension{
		Name:        ExtensionName,
		PackagePath: eng.PackagePath,
		Parts:       eng.Extension,
		Suffix:      eng.Suffix,
		DebugEnv:    eng.BuildDebugEnv,
	}.Check()
}
