package ports

import "context"

// TranslationRequest carries one translation call's inputs.
type TranslationRequest struct {
	Text       string
	SourceLang string
	TargetLang string
	Model      string
}

// SummaryRequest carries one summarization call's inputs.
type SummaryRequest struct {
	Text                   string
	NumSlides              int
	AdditionalInstructions string
	Model                  string
	TargetLang             string
}

// Translator translates text between languages via the GenAI Hub API.
type Translator interface {
	Translate(ctx context.Context, req TranslationRequest) (string, error)
}

// Summarizer condenses text into slide-ready markdown, one `---`-separated
// section per requested slide.
type Summarizer interface {
	Summarize(ctx context.Context, req SummaryRequest) (string, error)
}

// ModelInfo describes one available model in display-ready form.
type ModelInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	OriginalName string `json:"original_name"`
}

// ModelCatalog lists the models usable for translation and summarization.
type ModelCatalog interface {
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

// CredentialValidator checks candidate API credentials against the live API.
type CredentialValidator interface {
	ValidateCredentials(ctx context.Context, apiKey, apiURL string) (bool, error)
}
