package document

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(chunks []Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Text
	}
	return out
}

func TestSplitter_ShortTextIsOneChunk(t *testing.T) {
	chunks := NewSplitter(1000, 200).Split("Jane Doe\nGo developer")

	require.Len(t, chunks, 1)
	assert.Equal(t, "Jane Doe\nGo developer", chunks[0].Text)
	assert.Equal(t, 0, chunks[0].SourceOffset)
	assert.Equal(t, 0, chunks[0].Seq)
}

func TestSplitter_WordOverlap(t *testing.T) {
	s := &Splitter{ChunkSize: 10, Overlap: 4, Separators: DefaultSeparators}

	chunks := s.Split("aaa bbb ccc ddd eee")

	assert.Equal(t, []string{"aaa bbb", "bbb ccc", "ccc ddd", "ddd eee"}, texts(chunks))
	offsets := []int{0, 4, 8, 12}
	for i, c := range chunks {
		assert.Equal(t, offsets[i], c.SourceOffset)
		assert.Equal(t, i, c.Seq)
	}
}

func TestSplitter_PrefersParagraphBoundaries(t *testing.T) {
	s := &Splitter{ChunkSize: 30, Overlap: 0, Separators: DefaultSeparators}

	text := "Experience at Acme\n\nEducation at State U\n\nSkills: Go, SQL"
	chunks := s.Split(text)

	assert.Equal(t, []string{
		"Experience at Acme",
		"Education at State U",
		"Skills: Go, SQL",
	}, texts(chunks))
}

func TestSplitter_LongResumeInvariants(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("Led a team of engineers building distributed payment systems in Go and Postgres. ")
		if i%5 == 4 {
			b.WriteString("\n\n")
		}
	}
	text := strings.TrimSpace(b.String())

	chunks := NewSplitter(1000, 200).Split(text)
	require.Greater(t, len(chunks), 2)

	for i, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c.Text), 1000)
		assert.NotEmpty(t, strings.TrimSpace(c.Text))
		require.GreaterOrEqual(t, c.SourceOffset, 0)
		assert.Equal(t, c.Text, text[c.SourceOffset:c.SourceOffset+len(c.Text)], "chunk %d offset", i)
		if i > 0 {
			assert.Greater(t, c.SourceOffset, chunks[i-1].SourceOffset)
		}
	}

	// every word of the input lands in some chunk
	last := chunks[len(chunks)-1]
	assert.Equal(t, len(text), last.SourceOffset+len(last.Text))
}

func TestSplitter_CountsRunesNotBytes(t *testing.T) {
	text := strings.Repeat("é", 1500)

	chunks := NewSplitter(1000, 200).Split(text)

	require.Len(t, chunks, 2)
	assert.Equal(t, 1000, utf8.RuneCountInString(chunks[0].Text))
	assert.Equal(t, 700, utf8.RuneCountInString(chunks[1].Text))
	assert.Equal(t, 0, chunks[0].SourceOffset)
	assert.Equal(t, 1600, chunks[1].SourceOffset)
}

func TestSplitter_Deterministic(t *testing.T) {
	text := strings.Repeat("Kubernetes operator experience. ", 100)

	a := NewSplitter(1000, 200).Split(text)
	b := NewSplitter(1000, 200).Split(text)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a[0].ID, a[1].ID)
	assert.Regexp(t, `^[0-9a-f]{12}-0$`, string(a[0].ID))
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		declared string
		want     Format
		wantErr  bool
	}{
		{"pdf by extension", "cv.PDF", "", FormatPDF, false},
		{"docx by extension", "cv.docx", "", FormatDOCX, false},
		{"markdown is text", "cv.md", "", FormatTXT, false},
		{"declared wins", "cv.bin", "pdf", FormatPDF, false},
		{"declared text alias", "cv", ".text", FormatTXT, false},
		{"unknown extension", "cv.odt", "", "", true},
		{"unknown declared", "cv.pdf", "rtf", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.filename, tt.declared)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), string(CodeUnsupportedFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
