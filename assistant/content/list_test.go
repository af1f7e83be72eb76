package content

import (
	"testing"

	"github.com/Abraxas-365/resumegpt/assistant/generation"
	"github.com/Abraxas-365/resumegpt/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumberedList(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want []string
	}{
		{
			name: "dotted with preamble",
			text: "Here are some questions:\n\n1. Tell me about yourself.\n2. Why Go?\n3. Describe a failure.",
			n:    3,
			want: []string{"Tell me about yourself.", "Why Go?", "Describe a failure."},
		},
		{
			name: "parenthesis and markdown",
			text: "1) **Walk me through** your ledger migration.\n2) What is `context` for?",
			n:    2,
			want: []string{"Walk me through your ledger migration.", "What is context for?"},
		},
		{
			name: "question labels",
			text: "**Question 1:** How do you test concurrency?\nQuestion 2: How do you scale Postgres?\nQ3: Why Kubernetes?",
			n:    3,
			want: []string{"How do you test concurrency?", "How do you scale Postgres?", "Why Kubernetes?"},
		},
		{
			name: "continuation lines are joined",
			text: "1. Describe a time you\n   had to debug production.\n2. What did you learn?",
			n:    2,
			want: []string{"Describe a time you had to debug production.", "What did you learn?"},
		},
		{
			name: "sub bullets do not become items",
			text: "1. First question\n   - hint: mention metrics\n2. Second question",
			n:    2,
			want: []string{"First question", "Second question"},
		},
		{
			name: "bullets when nothing is numbered",
			text: "- One?\n* Two?\n• Three?",
			n:    3,
			want: []string{"One?", "Two?", "Three?"},
		},
		{
			name: "extra items are dropped",
			text: "1. a\n2. b\n3. c\n4. d",
			n:    2,
			want: []string{"a", "b"},
		},
		{
			name: "section headings close the previous item",
			text: "**Technical Questions**\n1. How do you design a REST API?\n2. Explain goroutines.\n" +
				"**Behavioral Questions**\n3. Tell me about a conflict.\n" +
				"## Leadership\n4. How do you mentor?\nCulture fit:\n5. Why this team?",
			n: 5,
			want: []string{
				"How do you design a REST API?",
				"Explain goroutines.",
				"Tell me about a conflict.",
				"How do you mentor?",
				"Why this team?",
			},
		},
		{
			name: "marker on its own line",
			text: "1.\n\nWhat is a goroutine?\n\n2.\nHow do channels block?\n\n3. Why use context?",
			n:    3,
			want: []string{"What is a goroutine?", "How do channels block?", "Why use context?"},
		},
		{
			name: "crlf",
			text: "1. a\r\n2. b\r\n",
			n:    2,
			want: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNumberedList(tt.text, tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNumberedList_TooFewItems(t *testing.T) {
	_, err := ParseNumberedList("1. Only one question\nand some prose", 5)

	require.Error(t, err)
	assert.True(t, errx.IsCode(err, generation.CodeMalformedResponse))
	e, ok := errx.As(err)
	require.True(t, ok)
	assert.Equal(t, 5, e.Details["expected"])
	assert.Equal(t, 1, e.Details["found"])
}

func TestCoverLetterRequest_Description(t *testing.T) {
	assert.EqualValues(t, "a", CoverLetterRequest{JobDescription: "a", JobDesc: "b"}.Description())
	assert.EqualValues(t, "b", CoverLetterRequest{JobDesc: "b"}.Description())
}
