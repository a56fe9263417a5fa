package genai

import (
	"context"
	"fmt"

	"github.com/transudeck/deckd/internal/domain/ports"
)

// summaryTemperature allows some rephrasing latitude when condensing text.
const summaryTemperature = 0.5

// Summarizer implements ports.Summarizer over the chat-completions API.
// The produced markdown separates slides with horizontal rules, which is
// what the segmentation engine splits on.
type Summarizer struct {
	client *Client
}

// NewSummarizer creates a new summarizer
func NewSummarizer(client *Client) *Summarizer {
	return &Summarizer{client: client}
}

// Summarize condenses text into slide-ready markdown
func (s *Summarizer) Summarize(ctx context.Context, req ports.SummaryRequest) (string, error) {
	slideInstruction := ""
	if req.NumSlides > 1 {
		slideInstruction = fmt.Sprintf(`
Divide the content into exactly %d slides.
Separate each slide with a horizontal rule (---) in markdown format.
Each slide should be self-contained and focused on a specific topic.
`, req.NumSlides)
	}

	languageInstruction := fmt.Sprintf(`
Output the summary in %s.
All content must be written in %s.
`, req.TargetLang, req.TargetLang)

	prompt := fmt.Sprintf(`Summarize the following text for a presentation slide.
%s
%s
Format the output in markdown with:
- Clear headings (##) for slide titles
- Bullet points (-) for key information
- Concise and professional language
- Focus on the most important points

%s

Text to summarize:
%s`, languageInstruction, slideInstruction, req.AdditionalInstructions, req.Text)

	summary, err := s.client.Complete(ctx, req.Model, prompt, summaryTemperature)
	if err != nil {
		return "", fmt.Errorf("summarization failed: %w", err)
	}

	return summary, nil
}
