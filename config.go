package sstream

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Config selects and configures a factory driver.
type Config struct {
	// Type is the driver name: "local", "memory", "rclone", etc.
	Type string `json:"type" yaml:"type"`

	// BasePath is the root directory that file paths are resolved against.
	BasePath string `json:"basePath,omitempty" yaml:"basePath,omitempty"`

	// Options holds driver-specific configuration.
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// ParseConfig decodes a YAML driver configuration.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, NewError(KindInvalidArgument, "parse config", "", err)
	}
	if cfg.Type == "" {
		return nil, NewError(KindInvalidArgument, "parse config", "", errors.New("no driver type"))
	}
	return &cfg, nil
}

// LoadConfig reads and decodes a YAML driver configuration from fs.
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, NewError(KindUnavailable, "load config", path, err)
	}
	return ParseConfig(data)
}

// Constructor creates a [Factory] from a [Config].
type Constructor func(cfg *Config) (Factory, error)

var (
	mu           sync.RWMutex
	constructors = make(map[string]Constructor)
)

// Register makes a factory driver available by the provided name.
// This is typically called from the driver package's init() function.
// It panics if called twice with the same name.
func Register(name string, constructor Constructor) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := constructors[name]; exists {
		panic(fmt.Sprintf("sstream: driver %q already registered", name))
	}
	constructors[name] = constructor
}

// Drivers returns a sorted list of all registered driver names.
func Drivers() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List is an alias for [Drivers].
func List() []string {
	return Drivers()
}

// Open creates a new [Factory] using the registered driver specified in cfg.Type.
func Open(cfg *Config) (Factory, error) {
	if cfg == nil {
		return nil, NewError(KindInvalidArgument, "open driver", "", errors.New("config must not be nil"))
	}

	mu.RLock()
	constructor, ok := constructors[cfg.Type]
	mu.RUnlock()

	if !ok {
		return nil, NewError(KindInvalidArgument, "open driver", cfg.Type, errors.New("unknown driver (forgotten import?)"))
	}

	return constructor(cfg)
}

// MustOpen is like [Open] but panics on error.
func MustOpen(cfg *Config) Factory {
	factory, err := Open(cfg)
	if err != nil {
		panic(err)
	}
	return factory
}
