package genai

import (
	"context"
	"fmt"

	"github.com/transudeck/deckd/internal/domain/ports"
)

// translationTemperature keeps translations close to the source text.
const translationTemperature = 0.3

// Translator implements ports.Translator over the chat-completions API
type Translator struct {
	client *Client
}

// NewTranslator creates a new translator
func NewTranslator(client *Client) *Translator {
	return &Translator{client: client}
}

// Translate translates text between the requested languages
func (t *Translator) Translate(ctx context.Context, req ports.TranslationRequest) (string, error) {
	prompt := fmt.Sprintf(`Translate the following text from %s to %s.
Only provide the translation without any explanations or additional text.

Text to translate:
%s`, req.SourceLang, req.TargetLang, req.Text)

	translated, err := t.client.Complete(ctx, req.Model, prompt, translationTemperature)
	if err != nil {
		return "", fmt.Errorf("translation failed: %w", err)
	}

	return translated, nil
}
