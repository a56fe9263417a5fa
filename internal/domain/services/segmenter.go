package services

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/transudeck/deckd/internal/domain/entities"
)

// horizontalRule matches a line consisting solely of three or more `-`, `_`,
// or `*` characters, the markdown slide delimiter emitted by the summarizer.
var horizontalRule = regexp.MustCompile(`^(-{3,}|_{3,}|\*{3,})$`)

// Segment splits free-form markdown into an ordered list of slides.
//
// The primary strategy splits on horizontal-rule delimiter lines. When that
// yields fewer sections than slideCount, the text's lines are instead
// partitioned into slideCount contiguous chunks. Sections that trim to empty
// contribute no slide, so any non-empty input yields at least one slide and
// fully-empty input yields zero slides without error.
//
// Slide content is deterministic for identical (text, slideCount); ids are
// fresh per call.
func Segment(text string, slideCount int) []entities.Slide {
	if slideCount < 1 {
		slideCount = 1
	}

	body := stripFrontmatter(strings.ReplaceAll(text, "\r\n", "\n"))
	lines := strings.Split(body, "\n")

	sections := splitOnRules(lines)
	if len(sections) < slideCount {
		sections = chunkLines(lines, slideCount)
	}

	slides := make([]entities.Slide, 0, len(sections))
	for _, section := range sections {
		content := strings.TrimSpace(section)
		if content == "" {
			continue
		}

		slide := entities.Slide{
			ID:      uuid.New().String(),
			Content: content,
			Order:   len(slides),
		}
		slide.Title = slide.ExtractTitle()
		slides = append(slides, slide)
	}

	return slides
}

// splitOnRules breaks lines into sections at horizontal-rule delimiter lines.
func splitOnRules(lines []string) []string {
	var sections []string
	var current []string

	for _, line := range lines {
		if horizontalRule.MatchString(line) {
			sections = append(sections, strings.Join(current, "\n"))
			current = current[:0]
			continue
		}
		current = append(current, line)
	}

	return append(sections, strings.Join(current, "\n"))
}

// chunkLines partitions lines into count contiguous chunks of
// ceil(len/count) lines each, the last possibly shorter.
func chunkLines(lines []string, count int) []string {
	size := (len(lines) + count - 1) / count
	if size < 1 {
		size = 1
	}

	var chunks []string
	for start := 0; start < len(lines); start += size {
		end := start + size
		if end > len(lines) {
			end = len(lines)
		}
		chunks = append(chunks, strings.Join(lines[start:end], "\n"))
	}

	return chunks
}

// stripFrontmatter removes a leading YAML frontmatter block so its closing
// `---` is not mistaken for a slide delimiter. Malformed frontmatter is left
// in place.
func stripFrontmatter(text string) string {
	if !strings.HasPrefix(text, "---\n") {
		return text
	}

	lines := strings.Split(text, "\n")
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return text
	}

	block := strings.Join(lines[1:end], "\n")
	var meta map[string]interface{}
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil || meta == nil {
		return text
	}

	return strings.Join(lines[end+1:], "\n")
}
