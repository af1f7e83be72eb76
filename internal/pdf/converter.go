package pdf

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"strings"

	"github.com/gen2brain/go-fitz" // Lightweight PDF renderer
)

// Document is an opened PDF held in memory
type Document struct {
	doc *fitz.Document
}

// Open parses PDF bytes
func Open(pdfData []byte) (*Document, error) {
	if len(pdfData) == 0 {
		return nil, fmt.Errorf("failed to open PDF: empty input")
	}
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return &Document{doc: doc}, nil
}

func (d *Document) Close() error {
	return d.doc.Close()
}

func (d *Document) NumPage() int {
	return d.doc.NumPage()
}

// PageText returns the text layer of page i (zero based)
func (d *Document) PageText(i int) (string, error) {
	text, err := d.doc.Text(i)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from page %d: %w", i, err)
	}
	return text, nil
}

// PageJPEG renders page i to JPEG bytes
func (d *Document) PageJPEG(i int) ([]byte, error) {
	img, err := d.doc.Image(i)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", i, err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("failed to encode page %d: %w", i, err)
	}
	return buf.Bytes(), nil
}

// HasText reports whether s carries anything beyond whitespace
func HasText(s string) bool {
	return strings.TrimSpace(s) != ""
}
