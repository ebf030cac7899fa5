// internal/config/config.go
//
// This package handles configuration and the .commbind directory structure.
// A worker's project directory gets a .commbind/ folder holding the engine
// settings and the log file.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/commbind/internal/topology"
)

const (
	// Dir is the name of the directory we create in each project
	Dir = ".commbind"

	// DefaultHostsEnv holds the comma-separated "ip:port" worker list.
	DefaultHostsEnv = "BYTEPS_WORKER_HOSTS"
	// DefaultWorkerIDEnv holds this process's global rank index.
	DefaultWorkerIDEnv = "BYTEPS_WORKER_ID"
	// DefaultBuildDebugEnv is suggested when the extension is missing.
	DefaultBuildDebugEnv = "BYTEPS_WITH_DEBUG"
	// DefaultPackagePath anchors the default extension location.
	DefaultPackagePath = "./byteps/__init__.py"

	BackendNative = "native"
	BackendScript = "script"
	BackendLocal  = "local"
)

const defaultProjectConfigYAML = `# commbind project configuration
version: 1

# Engine backend: native loads the compiled shared library, script evaluates
# a Go source engine with yaegi, local uses the in-process reference engine.
engine:
  backend: native
  # The extension path is dir(package_path)/extension[:-1]/extension[-1]+suffix.
  package_path: ./byteps/__init__.py
  extension:
    - common
    - c_lib
  # suffix: .so
  # script: engines/reference.go
  build_debug_env: BYTEPS_WITH_DEBUG

workers:
  hosts_env: BYTEPS_WORKER_HOSTS
  id_env: BYTEPS_WORKER_ID
`

// EngineConfig selects and locates the communication engine.
type EngineConfig struct {
	Backend       string   `yaml:"backend"`
	PackagePath   string   `yaml:"package_path,omitempty"`
	Extension     []string `yaml:"extension,omitempty"`
	Suffix        string   `yaml:"suffix,omitempty"`
	Library       string   `yaml:"library,omitempty"`
	Script        string   `yaml:"script,omitempty"`
	BuildDebugEnv string   `yaml:"build_debug_env,omitempty"`
}

// WorkersConfig names the environment variables carrying the worker list.
type WorkersConfig struct {
	HostsEnv string `yaml:"hosts_env"`
	IDEnv    string `yaml:"id_env"`
}

// ProjectConfig models .commbind/config.yaml.
type ProjectConfig struct {
	Version int           `yaml:"version"`
	Engine  EngineConfig  `yaml:"engine"`
	Workers WorkersConfig `yaml:"workers"`
}

// Config holds the runtime configuration for commbind.
type Config struct {
	// ProjectDir is the directory the worker was started from
	ProjectDir string

	// ProjectStateDir is ProjectDir/.commbind
	ProjectStateDir string

	Project ProjectConfig
}

// WorkerSpec is the materialized worker list and this process's index.
type WorkerSpec struct {
	Endpoints []topology.Endpoint
	Rank      int
}

// Resolve derives this process's topology from the worker list.
func (w WorkerSpec) Resolve() (topology.Topology, error) {
	return topology.Resolve(w.Endpoints, w.Rank)
}

// InitDir creates the .commbind directory structure in the given project directory.
//
// Structure created:
// .commbind/
// ├── config.yaml
// └── logs/
func InitDir(projectDir string) error {
	root := filepath.Join(projectDir, Dir)
	if err := os.MkdirAll(filepath.Join(root, "logs"), 0o755); err != nil {
		return err
	}
	return ensureProjectConfig(filepath.Join(root, "config.yaml"))
}

// NewConfig creates a new Config instance populated with project settings.
// A missing config file yields defaults.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:      projectDir,
		ProjectStateDir: filepath.Join(projectDir, Dir),
		Project:         defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()
	if err := cfg.Project.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.ProjectStateDir, "logs")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.ProjectStateDir, "config.yaml")
}

// Backend returns the configured engine backend.
func (c *Config) Backend() string {
	return c.Project.Engine.Backend
}

// EngineSettings returns the engine section once it is complete enough to
// open the configured backend.
func (c *Config) EngineSettings() (EngineConfig, error) {
	eng := c.Project.Engine
	switch eng.Backend {
	case BackendNative:
		if eng.Library == "" && (eng.PackagePath == "" || len(eng.Extension) == 0) {
			return EngineConfig{}, fmt.Errorf("config: engine: native backend needs library or package_path with extension")
		}
	case BackendScript:
		if eng.Script == "" {
			return EngineConfig{}, fmt.Errorf("config: engine: script is required for the script backend")
		}
	}
	return eng, nil
}

// WorkerSpec reads the worker list and rank from the configured
// environment variables.
func (c *Config) WorkerSpec() (WorkerSpec, error) {
	return c.workerSpec(os.LookupEnv)
}

// WorkerHosts reads only the worker list from the environment.
func (c *Config) WorkerHosts() ([]topology.Endpoint, error) {
	return c.workerHosts(os.LookupEnv)
}

func (c *Config) workerHosts(lookup func(string) (string, bool)) ([]topology.Endpoint, error) {
	hostsEnv := c.Project.Workers.HostsEnv
	hosts, ok := lookup(hostsEnv)
	if !ok {
		return nil, &topology.ConfigurationError{Reason: hostsEnv + " is not set"}
	}
	return topology.ParseEndpointList(hosts)
}

// WorkerRank reads only this process's rank index from the environment.
func (c *Config) WorkerRank() (int, error) {
	return c.workerRank(os.LookupEnv)
}

func (c *Config) workerRank(lookup func(string) (string, bool)) (int, error) {
	idEnv := c.Project.Workers.IDEnv
	rawID, ok := lookup(idEnv)
	if !ok {
		return 0, &topology.ConfigurationError{Reason: idEnv + " is not set"}
	}
	rank, err := strconv.Atoi(strings.TrimSpace(rawID))
	if err != nil {
		return 0, &topology.ConfigurationError{Reason: idEnv + " is not an integer", Err: err}
	}
	return rank, nil
}

func (c *Config) workerSpec(lookup func(string) (string, bool)) (WorkerSpec, error) {
	endpoints, err := c.workerHosts(lookup)
	if err != nil {
		return WorkerSpec{}, err
	}
	rank, err := c.workerRank(lookup)
	if err != nil {
		return WorkerSpec{}, err
	}
	return WorkerSpec{Endpoints: endpoints, Rank: rank}, nil
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.Project.normalize(c.ProjectDir)
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize(c.ProjectDir)
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func (c *Config) applyEnvOverrides() {
	if backend := strings.TrimSpace(os.Getenv("COMMBIND_BACKEND")); backend != "" {
		c.Project.Engine.Backend = normalizeBackend(backend)
	}
	if lib := strings.TrimSpace(os.Getenv("COMMBIND_LIBRARY")); lib != "" {
		c.Project.Engine.Library = resolvePath(c.ProjectDir, lib)
	}
}

func defaultExtension() []string {
	return []string{"common", "c_lib"}
}

func defaultProjectConfig() ProjectConfig {
	pc := ProjectConfig{}
	pc.applyDefaults()
	return pc
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Engine.Backend) == "" {
		pc.Engine.Backend = BackendNative
	}
	if strings.TrimSpace(pc.Engine.PackagePath) == "" {
		pc.Engine.PackagePath = DefaultPackagePath
	}
	if len(pc.Engine.Extension) == 0 {
		pc.Engine.Extension = defaultExtension()
	}
	if strings.TrimSpace(pc.Engine.BuildDebugEnv) == "" {
		pc.Engine.BuildDebugEnv = DefaultBuildDebugEnv
	}
	if strings.TrimSpace(pc.Workers.HostsEnv) == "" {
		pc.Workers.HostsEnv = DefaultHostsEnv
	}
	if strings.TrimSpace(pc.Workers.IDEnv) == "" {
		pc.Workers.IDEnv = DefaultWorkerIDEnv
	}
}

func (pc *ProjectConfig) normalize(base string) {
	pc.Engine.Backend = normalizeBackend(pc.Engine.Backend)
	pc.Engine.PackagePath = resolvePath(base, pc.Engine.PackagePath)
	pc.Engine.Library = resolvePath(base, pc.Engine.Library)
	pc.Engine.Script = resolvePath(base, pc.Engine.Script)
	pc.Engine.Suffix = strings.TrimSpace(pc.Engine.Suffix)
	parts := pc.Engine.Extension[:0]
	for _, part := range pc.Engine.Extension {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	pc.Engine.Extension = parts
	pc.Workers.HostsEnv = strings.TrimSpace(pc.Workers.HostsEnv)
	pc.Workers.IDEnv = strings.TrimSpace(pc.Workers.IDEnv)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	switch pc.Engine.Backend {
	case BackendNative, BackendScript, BackendLocal:
	default:
		return fmt.Errorf("engine: backend must be 'native', 'script' or 'local'")
	}
	if pc.Workers.HostsEnv == "" || pc.Workers.IDEnv == "" {
		return fmt.Errorf("workers: hosts_env and id_env are required")
	}
	return nil
}

func normalizeBackend(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644)
}
