package document

import "context"

// Extractor pulls raw text out of one file format
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// PageTranscriber reads text from a rendered page image
type PageTranscriber interface {
	TranscribePage(ctx context.Context, imageData []byte) (string, error)
}
