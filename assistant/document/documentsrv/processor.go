package documentsrv

import (
	"context"
	"regexp"
	"strings"

	"github.com/Abraxas-365/resumegpt/assistant/document"
	"github.com/Abraxas-365/resumegpt/pkg/errx"
	"github.com/Abraxas-365/resumegpt/pkg/logx"
)

// Processor turns uploaded bytes into a normalized, chunked document
type Processor struct {
	extractors map[document.Format]document.Extractor
	splitter   *document.Splitter
}

func NewProcessor(extractors map[document.Format]document.Extractor, splitter *document.Splitter) *Processor {
	if splitter == nil {
		splitter = document.NewSplitter(document.DefaultChunkSize, document.DefaultChunkOverlap)
	}
	return &Processor{
		extractors: extractors,
		splitter:   splitter,
	}
}

// Load extracts, normalizes and splits a resume. The declared format, when
// set, takes precedence over the file extension.
func (p *Processor) Load(ctx context.Context, name string, data []byte, declared string) (*document.Document, error) {
	format, err := document.DetectFormat(name, declared)
	if err != nil {
		return nil, err
	}

	extractor, ok := p.extractors[format]
	if !ok {
		return nil, document.ErrUnsupportedFormat().WithDetail("format", format)
	}

	if len(data) == 0 {
		return nil, document.ErrEmptyDocument().WithDetail("filename", name)
	}

	raw, err := extractor.Extract(ctx, data)
	if err != nil {
		if _, ok := errx.As(err); ok {
			return nil, err
		}
		return nil, document.ErrRegistry.NewWithCause(document.CodeExtractionFailed, err).
			WithDetail("filename", name).
			WithDetail("format", format)
	}

	text := Normalize(raw)
	if text == "" {
		return nil, document.ErrEmptyDocument().WithDetail("filename", name)
	}

	chunks := p.splitter.Split(text)
	logx.Infof("Processed %s (%s): %d characters, %d chunks", name, format, len([]rune(text)), len(chunks))

	return &document.Document{
		Name:   name,
		Format: format,
		Text:   text,
		Chunks: chunks,
	}, nil
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Normalize unifies line endings, drops NUL bytes and trailing spaces, and
// collapses runs of blank lines into one
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\x00", "")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\u00a0")
	}
	s = strings.Join(lines, "\n")

	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
