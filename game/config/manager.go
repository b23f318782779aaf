package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/battlefield-sim/game/engine"
	"github.com/wricardo/battlefield-sim/game/service"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Supported file extensions, in lookup order
const (
	ExtJSON = ".json"
	ExtHCL  = ".hcl"
)

// DefaultConfigName is loaded as the default when present
const DefaultConfigName = "classic"

// Manager handles run configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.RunConfig
	configs       map[string]*engine.RunConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	// Ensure config directory exists
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.RunConfig),
	}

	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// Dir returns the directory the manager reads from
func (m *Manager) Dir() string {
	return m.configDir
}

// LoadConfig loads a configuration by name. A bare name is looked up as
// name.json first, then name.hcl.
func (m *Manager) LoadConfig(name string) (*engine.RunConfig, error) {
	m.mu.RLock()
	if config, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[name]; exists {
		return config, nil
	}

	config, err := m.readConfig(name)
	if err != nil {
		return nil, err
	}

	m.configs[name] = config
	return config, nil
}

func (m *Manager) readConfig(name string) (*engine.RunConfig, error) {
	candidates := []string{name}
	if ext := filepath.Ext(name); ext != ExtJSON && ext != ExtHCL {
		candidates = []string{name + ExtJSON, name + ExtHCL}
	}

	for _, filename := range candidates {
		path := filepath.Join(m.configDir, filename)
		config, err := LoadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		return config, err
	}

	return nil, ErrConfigNotFound
}

// LoadFile reads, decodes and validates a single configuration file. The
// format is chosen by extension.
func LoadFile(path string) (*engine.RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config *engine.RunConfig
	switch filepath.Ext(path) {
	case ExtHCL:
		config, err = DecodeHCL(filepath.Base(path), data)
	case ExtJSON:
		config, err = DecodeJSON(data)
	default:
		return nil, fmt.Errorf("%w: unsupported config format %q", ErrInvalidConfig, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := engine.ValidateRunConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DecodeJSON parses a JSON configuration without validating it
func DecodeJSON(data []byte) (*engine.RunConfig, error) {
	var config engine.RunConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &config, nil
}

// ListConfigs returns information about all available configurations
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	// name.json shadows name.hcl
	formats := make(map[string]string)
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ExtJSON && ext != ExtHCL) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if formats[name] != ExtJSON {
			formats[name] = ext
		}
	}

	var configs []*service.ConfigInfo
	for name, ext := range formats {
		config, err := m.LoadConfig(name)
		if err != nil {
			// Skip invalid configs
			continue
		}

		configs = append(configs, &service.ConfigInfo{
			Filename:    name + ext,
			ConfigID:    name,
			Format:      strings.TrimPrefix(ext, "."),
			Name:        config.Name,
			Description: config.Description,
			BoardSize:   config.BoardSize,
			Supplies:    config.Specials.Supplies,
			Traps:       config.Specials.Traps,
			Moves:       len(config.Moves),
		})
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].ConfigID < configs[j].ConfigID
	})

	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.RunConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops every cached configuration and reloads the default
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*engine.RunConfig)
	m.mu.Unlock()

	return m.loadDefaultConfig()
}

// loadDefaultConfig picks classic, then the first loadable config, then the
// built-in configuration.
func (m *Manager) loadDefaultConfig() error {
	config, err := m.LoadConfig(DefaultConfigName)
	if err != nil {
		configs, listErr := m.ListConfigs()
		if listErr != nil || len(configs) == 0 {
			m.setDefault(engine.DefaultRunConfig())
			return nil
		}

		config, err = m.LoadConfig(configs[0].ConfigID)
		if err != nil {
			m.setDefault(engine.DefaultRunConfig())
			return nil
		}
	}

	m.setDefault(config)
	return nil
}

func (m *Manager) setDefault(config *engine.RunConfig) {
	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
}

// SaveConfig validates config and writes it to disk as JSON
func (m *Manager) SaveConfig(name string, config *engine.RunConfig) error {
	if err := engine.ValidateRunConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	filename := name
	if filepath.Ext(filename) != ExtJSON {
		filename = name + ExtJSON
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(m.configDir, filename), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[name] = config
	m.mu.Unlock()

	return nil
}
