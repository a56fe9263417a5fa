package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transudeck/deckd/internal/domain/ports"
)

// stubTranslator records calls and returns canned output
type stubTranslator struct {
	result string
	err    error
	calls  []ports.TranslationRequest
}

func (s *stubTranslator) Translate(ctx context.Context, req ports.TranslationRequest) (string, error) {
	s.calls = append(s.calls, req)
	return s.result, s.err
}

// stubSummarizer records calls and returns canned output
type stubSummarizer struct {
	result string
	err    error
	calls  []ports.SummaryRequest
}

func (s *stubSummarizer) Summarize(ctx context.Context, req ports.SummaryRequest) (string, error) {
	s.calls = append(s.calls, req)
	return s.result, s.err
}

func TestTranslationPipeline_TranslateAndSummarize(t *testing.T) {
	t.Run("translates then summarizes the translation", func(t *testing.T) {
		translator := &stubTranslator{result: "translated"}
		summarizer := &stubSummarizer{result: "## Summary\n---\n## More"}
		pipeline := NewTranslationPipeline(translator, summarizer)

		result, err := pipeline.TranslateAndSummarize(context.Background(), ports.TranslateCommand{
			Text:       "original",
			SourceLang: "Japanese",
			TargetLang: "English",
			NumSlides:  2,
			Model:      "claude-3-5-sonnet",
		})

		require.NoError(t, err)
		assert.Equal(t, "translated", result.Translation)
		assert.Equal(t, "## Summary\n---\n## More", result.Summary)
		assert.Equal(t, 2, result.NumSlides)

		require.Len(t, translator.calls, 1)
		require.Len(t, summarizer.calls, 1)
		assert.Equal(t, "translated", summarizer.calls[0].Text, "summary runs on the translation")
		assert.Equal(t, "English", summarizer.calls[0].TargetLang)
	})

	t.Run("skips translation when languages match", func(t *testing.T) {
		translator := &stubTranslator{result: "should not be used"}
		summarizer := &stubSummarizer{result: "## Summary"}
		pipeline := NewTranslationPipeline(translator, summarizer)

		result, err := pipeline.TranslateAndSummarize(context.Background(), ports.TranslateCommand{
			Text:       "same language",
			SourceLang: "English",
			TargetLang: "English",
			NumSlides:  1,
			Model:      "claude-3-5-sonnet",
		})

		require.NoError(t, err)
		assert.Empty(t, translator.calls)
		assert.Equal(t, "same language", result.Translation)
		assert.Equal(t, "same language", summarizer.calls[0].Text)
	})

	t.Run("clamps slide count to one", func(t *testing.T) {
		summarizer := &stubSummarizer{result: "## S"}
		pipeline := NewTranslationPipeline(&stubTranslator{}, summarizer)

		result, err := pipeline.TranslateAndSummarize(context.Background(), ports.TranslateCommand{
			Text:       "x",
			SourceLang: "English",
			TargetLang: "English",
			NumSlides:  0,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.NumSlides)
		assert.Equal(t, 1, summarizer.calls[0].NumSlides)
	})

	t.Run("empty text is rejected", func(t *testing.T) {
		pipeline := NewTranslationPipeline(&stubTranslator{}, &stubSummarizer{})

		_, err := pipeline.TranslateAndSummarize(context.Background(), ports.TranslateCommand{Text: "   "})

		require.Error(t, err)
	})

	t.Run("translation errors abort the pipeline", func(t *testing.T) {
		translator := &stubTranslator{err: errors.New("hub down")}
		summarizer := &stubSummarizer{}
		pipeline := NewTranslationPipeline(translator, summarizer)

		_, err := pipeline.TranslateAndSummarize(context.Background(), ports.TranslateCommand{
			Text:       "x",
			SourceLang: "Japanese",
			TargetLang: "English",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "hub down")
		assert.Empty(t, summarizer.calls)
	})

	t.Run("summarization errors surface", func(t *testing.T) {
		pipeline := NewTranslationPipeline(
			&stubTranslator{result: "t"},
			&stubSummarizer{err: errors.New("quota exceeded")},
		)

		_, err := pipeline.TranslateAndSummarize(context.Background(), ports.TranslateCommand{
			Text:       "x",
			SourceLang: "Japanese",
			TargetLang: "English",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "quota exceeded")
	})
}
