package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlide_Validate(t *testing.T) {
	tests := []struct {
		name    string
		slide   Slide
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid slide",
			slide:   Slide{ID: "a", Content: "## Hello", Order: 0},
			wantErr: false,
		},
		{
			name:    "empty content",
			slide:   Slide{ID: "a", Content: "", Order: 0},
			wantErr: true,
			errMsg:  "slide content cannot be empty",
		},
		{
			name:    "whitespace only content",
			slide:   Slide{ID: "a", Content: "   \n\t  ", Order: 0},
			wantErr: true,
			errMsg:  "slide content cannot be empty",
		},
		{
			name:    "negative order",
			slide:   Slide{ID: "a", Content: "Valid content", Order: -1},
			wantErr: true,
			errMsg:  "slide order must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slide.Validate()

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSlide_ExtractTitle(t *testing.T) {
	tests := []struct {
		name  string
		slide Slide
		want  string
	}{
		{
			name:  "h2 heading",
			slide: Slide{Content: "## Quarterly Results\n\n- up 5%", Order: 0},
			want:  "Quarterly Results",
		},
		{
			name:  "h1 heading",
			slide: Slide{Content: "# Main Title\n\nSome content", Order: 0},
			want:  "Main Title",
		},
		{
			name:  "heading after body lines",
			slide: Slide{Content: "intro line\n## Late Heading", Order: 0},
			want:  "Late Heading",
		},
		{
			name:  "no heading generates positional title",
			slide: Slide{Content: "just text", Order: 2},
			want:  "Slide 3",
		},
		{
			name:  "indented heading is found",
			slide: Slide{Content: "  ## Indented", Order: 0},
			want:  "Indented",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.slide.ExtractTitle())
		})
	}
}
