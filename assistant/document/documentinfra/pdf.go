package documentinfra

import (
	"context"
	"strings"

	"github.com/Abraxas-365/resumegpt/assistant/document"
	"github.com/Abraxas-365/resumegpt/internal/pdf"
	"github.com/Abraxas-365/resumegpt/pkg/logx"
)

// PDFExtractor reads the text layer of each page. Pages without text, as in
// scanned resumes, go through the transcriber when one is configured.
type PDFExtractor struct {
	transcriber document.PageTranscriber
}

var _ document.Extractor = (*PDFExtractor)(nil)

// NewPDFExtractor accepts a nil transcriber, in which case empty pages are skipped
func NewPDFExtractor(transcriber document.PageTranscriber) *PDFExtractor {
	return &PDFExtractor{transcriber: transcriber}
}

func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	doc, err := pdf.Open(data)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	pages := make([]string, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := doc.PageText(i)
		if err != nil {
			return "", err
		}
		if !pdf.HasText(text) {
			text = e.transcribe(ctx, doc, i)
		}
		if pdf.HasText(text) {
			pages = append(pages, strings.TrimSpace(text))
		}
	}

	return strings.Join(pages, "\n\n"), nil
}

func (e *PDFExtractor) transcribe(ctx context.Context, doc *pdf.Document, page int) string {
	if e.transcriber == nil {
		logx.Debugf("PDF page %d has no text layer and OCR is disabled, skipping", page+1)
		return ""
	}

	img, err := doc.PageJPEG(page)
	if err != nil {
		logx.Warnf("Could not render PDF page %d for OCR: %v", page+1, err)
		return ""
	}

	text, err := e.transcriber.TranscribePage(ctx, img)
	if err != nil {
		logx.Warnf("OCR failed for PDF page %d, skipping: %v", page+1, err)
		return ""
	}
	return text
}
