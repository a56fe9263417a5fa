package config

import (
	"github.com/transudeck/deckd/internal/domain/entities"
)

// Merger implements the ConfigMerger interface
type Merger struct{}

// NewMerger creates a new configuration merger
func NewMerger() *Merger {
	return &Merger{}
}

// Merge merges multiple configurations with later configs taking precedence.
// Nil configs are skipped; zero values in a later config do not overwrite
// earlier settings.
func (m *Merger) Merge(configs ...*entities.Config) *entities.Config {
	result := GetDefaultConfig()

	for _, config := range configs {
		if config != nil {
			m.mergeInto(result, config)
		}
	}

	return result
}

// mergeInto merges non-zero values of src into dst
func (m *Merger) mergeInto(dst, src *entities.Config) {
	if src.Server.Host != "" {
		dst.Server.Host = src.Server.Host
	}
	if src.Server.Port > 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.ReadTimeout > 0 {
		dst.Server.ReadTimeout = src.Server.ReadTimeout
	}
	if src.Server.WriteTimeout > 0 {
		dst.Server.WriteTimeout = src.Server.WriteTimeout
	}
	if src.Server.ShutdownTimeout > 0 {
		dst.Server.ShutdownTimeout = src.Server.ShutdownTimeout
	}
	if len(src.Server.CORSOrigins) > 0 {
		dst.Server.CORSOrigins = append([]string(nil), src.Server.CORSOrigins...)
	}

	if src.GenAI.APIKey != "" {
		dst.GenAI.APIKey = src.GenAI.APIKey
	}
	if src.GenAI.APIURL != "" {
		dst.GenAI.APIURL = src.GenAI.APIURL
	}
	if src.GenAI.RequestTimeout > 0 {
		dst.GenAI.RequestTimeout = src.GenAI.RequestTimeout
	}
	if src.GenAI.MaxRetries > 0 {
		dst.GenAI.MaxRetries = src.GenAI.MaxRetries
	}

	if src.Export.OutputDir != "" {
		dst.Export.OutputDir = src.Export.OutputDir
	}
	if src.Export.Theme != "" {
		dst.Export.Theme = src.Export.Theme
	}

	if src.Logging.Level != "" {
		dst.Logging.Level = src.Logging.Level
	}
	if src.Logging.Verbose {
		dst.Logging.Verbose = true
	}
}
