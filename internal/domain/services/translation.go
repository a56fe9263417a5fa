package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/transudeck/deckd/internal/domain/ports"
)

// TranslationPipeline runs the translate-then-summarize flow that feeds the
// segmentation engine. Translation is skipped when source and target language
// match; the summary is always produced in the target language.
type TranslationPipeline struct {
	translator ports.Translator
	summarizer ports.Summarizer
}

// NewTranslationPipeline creates the pipeline from its two collaborators
func NewTranslationPipeline(translator ports.Translator, summarizer ports.Summarizer) *TranslationPipeline {
	return &TranslationPipeline{
		translator: translator,
		summarizer: summarizer,
	}
}

// TranslateAndSummarize implements ports.TranslationService
func (p *TranslationPipeline) TranslateAndSummarize(ctx context.Context, cmd ports.TranslateCommand) (*ports.TranslationResult, error) {
	if strings.TrimSpace(cmd.Text) == "" {
		return nil, errors.New("text cannot be empty")
	}

	numSlides := cmd.NumSlides
	if numSlides < 1 {
		numSlides = 1
	}

	translation := cmd.Text
	if cmd.SourceLang != cmd.TargetLang {
		translated, err := p.translator.Translate(ctx, ports.TranslationRequest{
			Text:       cmd.Text,
			SourceLang: cmd.SourceLang,
			TargetLang: cmd.TargetLang,
			Model:      cmd.Model,
		})
		if err != nil {
			return nil, fmt.Errorf("translating text: %w", err)
		}
		translation = translated
	}

	summary, err := p.summarizer.Summarize(ctx, ports.SummaryRequest{
		Text:                   translation,
		NumSlides:              numSlides,
		AdditionalInstructions: cmd.AdditionalInstructions,
		Model:                  cmd.Model,
		TargetLang:             cmd.TargetLang,
	})
	if err != nil {
		return nil, fmt.Errorf("summarizing text: %w", err)
	}

	return &ports.TranslationResult{
		Translation: translation,
		Summary:     summary,
		NumSlides:   numSlides,
	}, nil
}
