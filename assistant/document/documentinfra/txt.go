package documentinfra

import (
	"context"
	"strings"

	"github.com/Abraxas-365/resumegpt/assistant/document"
)

// TXTExtractor decodes plain text as UTF-8, replacing invalid sequences
type TXTExtractor struct{}

var _ document.Extractor = TXTExtractor{}

func NewTXTExtractor() TXTExtractor { return TXTExtractor{} }

func (TXTExtractor) Extract(_ context.Context, data []byte) (string, error) {
	s := strings.ToValidUTF8(string(data), "\uFFFD")
	return strings.TrimPrefix(s, "\uFEFF"), nil
}

// Extractors returns the extractor set for every supported format
func Extractors(transcriber document.PageTranscriber) map[document.Format]document.Extractor {
	return map[document.Format]document.Extractor{
		document.FormatPDF:  NewPDFExtractor(transcriber),
		document.FormatDOCX: NewDOCXExtractor(),
		document.FormatTXT:  NewTXTExtractor(),
	}
}
