package document

import (
	"path/filepath"
	"strings"

	"github.com/Abraxas-365/resumegpt/pkg/kernel"
)

// Format is a supported resume file format
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

// SupportedFormats lists the formats in the order they are advertised
var SupportedFormats = []Format{FormatPDF, FormatDOCX, FormatTXT}

func (f Format) IsValid() bool {
	switch f {
	case FormatPDF, FormatDOCX, FormatTXT:
		return true
	}
	return false
}

func (f Format) String() string { return string(f) }

// Chunk is a contiguous slice of the normalized resume text
type Chunk struct {
	ID           kernel.ChunkID `json:"id"`
	Seq          int            `json:"seq"`
	Text         string         `json:"text"`
	SourceOffset int            `json:"source_offset"` // byte offset in Document.Text
}

// Document is an extracted, normalized and split resume
type Document struct {
	Name   string  `json:"name"`
	Format Format  `json:"format"`
	Text   string  `json:"text"`
	Chunks []Chunk `json:"chunks"`
}

// DetectFormat resolves the format of an upload. A declared format wins over
// the file extension.
func DetectFormat(filename, declared string) (Format, error) {
	if d := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(declared), ".")); d != "" {
		f := Format(d)
		if d == "text" {
			f = FormatTXT
		}
		if !f.IsValid() {
			return "", ErrUnsupportedFormat().WithDetail("format", declared)
		}
		return f, nil
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".txt", ".text", ".md":
		return FormatTXT, nil
	}
	return "", ErrUnsupportedFormat().WithDetail("filename", filename)
}
