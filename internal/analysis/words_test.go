package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "whitespace only", text: "   \n\t  ", want: 0},
		{name: "plain text", text: "one two three", want: 3},
		{name: "punctuation is not words", text: "hello, world! (really)", want: 3},
		{
			name: "markdown link counts display text only",
			text: "[read this](https://example.com/path)",
			want: 2,
		},
		{
			name: "bare url counts zero",
			text: "https://example.com/some/long/path",
			want: 0,
		},
		{
			name: "mixed prose and links",
			text: "See [the docs](https://docs.example.com) at https://example.com for more.",
			want: 6, // See the docs at for more
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountWords(tt.text))
		})
	}
}

func TestExtractURLs(t *testing.T) {
	text := "Sources: https://a.example.com/one and [b](https://b.example.com/two) plus plain text."
	urls := ExtractURLs(text)
	assert.Equal(t, []string{"https://a.example.com/one", "https://b.example.com/two"}, urls)
}

func TestExtractURLs_None(t *testing.T) {
	assert.Empty(t, ExtractURLs("no links here"))
}
