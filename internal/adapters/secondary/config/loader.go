package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/transudeck/deckd/internal/domain/entities"
)

// TOMLLoader implements the ConfigLoader and CredentialStore interfaces
// using TOML files: a global config under the user config dir and an
// optional per-directory override.
type TOMLLoader struct {
	globalPath string
	localName  string
	mu         sync.Mutex
}

// NewTOMLLoader creates a new TOML configuration loader
func NewTOMLLoader() *TOMLLoader {
	homeDir, _ := os.UserHomeDir()
	globalPath := filepath.Join(homeDir, ".config", "deckd", "config.toml")

	return &TOMLLoader{
		globalPath: globalPath,
		localName:  "deckd.toml",
	}
}

// NewTOMLLoaderAt creates a loader with an explicit global path, used in tests
func NewTOMLLoaderAt(globalPath string) *TOMLLoader {
	return &TOMLLoader{
		globalPath: globalPath,
		localName:  "deckd.toml",
	}
}

// LoadGlobal loads the global configuration file, creating it with defaults
// on first run.
func (l *TOMLLoader) LoadGlobal(ctx context.Context) (*entities.Config, error) {
	if _, err := os.Stat(l.globalPath); os.IsNotExist(err) {
		if err := l.writeConfig(GetDefaultConfig()); err != nil {
			return nil, fmt.Errorf("creating defaults: %w", err)
		}
	}

	return l.loadConfig(l.globalPath)
}

// LoadLocal loads a local configuration file from the specified directory.
// Local config is optional; a missing file returns nil without error.
func (l *TOMLLoader) LoadLocal(ctx context.Context, dir string) (*entities.Config, error) {
	localPath := filepath.Join(dir, l.localName)

	if _, err := os.Stat(localPath); os.IsNotExist(err) {
		return nil, nil
	}

	return l.loadConfig(localPath)
}

// GetGlobalPath returns the path to the global configuration file
func (l *TOMLLoader) GetGlobalPath() string {
	return l.globalPath
}

// SaveCredentials persists GenAI credentials into the global config file,
// keeping the rest of the file's settings intact.
func (l *TOMLLoader) SaveCredentials(ctx context.Context, apiKey, apiURL string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	current, err := l.loadConfig(l.globalPath)
	if err != nil {
		// No usable global config yet; start from defaults.
		current = GetDefaultConfig()
	}

	current.GenAI.APIKey = apiKey
	current.GenAI.APIURL = apiURL

	return l.writeConfig(current)
}

// loadConfig loads and validates a configuration file
func (l *TOMLLoader) loadConfig(path string) (*entities.Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is from controlled sources (global/local config)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var config entities.Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing TOML from %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &config, nil
}

// writeConfig writes a configuration to the global path
func (l *TOMLLoader) writeConfig(config *entities.Config) error {
	if err := os.MkdirAll(filepath.Dir(l.globalPath), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	file, err := os.Create(l.globalPath) // #nosec G304 - path is controlled (global config path)
	if err != nil {
		return fmt.Errorf("creating config file %s: %w", l.globalPath, err)
	}
	defer func() { _ = file.Close() }()

	encoder := toml.NewEncoder(file)
	encoder.Indent = "  "

	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("encoding config to %s: %w", l.globalPath, err)
	}

	return nil
}
