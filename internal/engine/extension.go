package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// SuffixEnv overrides the platform default shared-library suffix.
const SuffixEnv = "COMMBIND_EXT_SUFFIX"

// ExtSuffix returns the file suffix of compiled extensions on this platform.
func ExtSuffix() string {
	if suffix := strings.TrimSpace(os.Getenv(SuffixEnv)); suffix != "" {
		return suffix
	}
	switch runtime.GOOS {
	case "darwin":
		return ".dylib"
	case "windows":
		return ".dll"
	default:
		return ".so"
	}
}

// Extension locates a compiled engine relative to the package that ships
// it: dir(PackagePath)/Parts[:-1]/Parts[-1]+Suffix.
type Extension struct {
	Name        string
	PackagePath string
	Parts       []string
	// Suffix defaults to ExtSuffix().
	Suffix string
	// DebugEnv is suggested in the error when the extension is missing.
	DebugEnv string
}

// Path builds the extension's full path.
func (e Extension) Path() (string, error) {
	if len(e.Parts) == 0 {
		return "", fmt.Errorf("engine: extension path needs at least one component")
	}
	suffix := e.Suffix
	if suffix == "" {
		suffix = ExtSuffix()
	}
	last := len(e.Parts) - 1
	dir := filepath.Join(append([]string{filepath.Dir(e.PackagePath)}, e.Parts[:last]...)...)
	return filepath.Join(dir, e.Parts[last]+suffix), nil
}

// Check returns the extension path, or a *MissingExtensionError when the
// file does not exist.
func (e Extension) Check() (string, error) {
	path, err := e.Path()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &MissingExtensionError{Name: e.Name, Path: path, DebugEnv: e.DebugEnv}
		}
		return "", fmt.Errorf("engine: stat %s: %w", path, err)
	}
	return path, nil
}

// ExtensionPath is Extension{PackagePath: pkgPath, Parts: parts}.Path().
func ExtensionPath(pkgPath string, parts ...string) (string, error) {
	return Extension{PackagePath: pkgPath, Parts: parts}.Path()
}

// CheckExtension fails with *MissingExtensionError if the named extension
// has not been built.
func CheckExtension(name, debugEnv, pkgPath string, parts ...string) error {
	_, err := Extension{Name: name, PackagePath: pkgPath, Parts: parts, DebugEnv: debugEnv}.Check()
	return err
}
