package ports

import (
	"context"

	"github.com/transudeck/deckd/internal/domain/entities"
)

// ConfigLoader defines the interface for loading configuration files
type ConfigLoader interface {
	// LoadGlobal loads the global configuration file
	LoadGlobal(ctx context.Context) (*entities.Config, error)

	// LoadLocal loads a local configuration file from the specified directory
	LoadLocal(ctx context.Context, dir string) (*entities.Config, error)

	// GetGlobalPath returns the path to the global configuration file
	GetGlobalPath() string
}

// ConfigMerger defines the interface for merging configurations
type ConfigMerger interface {
	// Merge merges multiple configurations with later configs taking precedence
	Merge(configs ...*entities.Config) *entities.Config
}

// CredentialStore persists GenAI API credentials so they survive restarts.
type CredentialStore interface {
	// SaveCredentials writes the credentials into the global config file.
	SaveCredentials(ctx context.Context, apiKey, apiURL string) error
}
