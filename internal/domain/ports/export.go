package ports

import (
	"context"
	"time"

	"github.com/transudeck/deckd/internal/domain/entities"
)

// ExportResult describes a generated deck artifact.
type ExportResult struct {
	Filename    string    `json:"filename"`
	Path        string    `json:"-"`
	FileSize    int64     `json:"file_size"`
	SlideCount  int       `json:"slide_count"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Exporter turns an ordered export payload into a downloadable artifact.
type Exporter interface {
	// Generate writes the artifact and returns its descriptor. The payload
	// order is preserved exactly.
	Generate(ctx context.Context, slides []entities.SlideData) (*ExportResult, error)

	// ArtifactPath resolves a previously generated artifact by filename.
	// Returns an error if the name escapes the output directory or the file
	// does not exist.
	ArtifactPath(filename string) (string, error)
}
