package document

import (
	"net/http"

	"github.com/Abraxas-365/resumegpt/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("DOCUMENT")

// Error codes
var (
	CodeUnsupportedFormat = ErrRegistry.Register("UNSUPPORTED_FORMAT", errx.TypeValidation, http.StatusUnsupportedMediaType, "Unsupported file format")
	CodeEmptyDocument     = ErrRegistry.Register("EMPTY_DOCUMENT", errx.TypeBusiness, http.StatusUnprocessableEntity, "No text could be extracted from the document")
	CodeExtractionFailed  = ErrRegistry.Register("EXTRACTION_FAILED", errx.TypeValidation, http.StatusUnprocessableEntity, "Failed to read the document")
	CodeInvalidFile       = ErrRegistry.Register("INVALID_FILE", errx.TypeValidation, http.StatusBadRequest, "Invalid file upload")
	CodeStorageFailed     = ErrRegistry.Register("STORAGE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to store the uploaded file")
)

func ErrUnsupportedFormat() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedFormat).WithDetail("supported_formats", SupportedFormats)
}

func ErrEmptyDocument() *errx.Error {
	return ErrRegistry.New(CodeEmptyDocument)
}

func ErrExtractionFailed() *errx.Error {
	return ErrRegistry.New(CodeExtractionFailed)
}

func ErrInvalidFile() *errx.Error {
	return ErrRegistry.New(CodeInvalidFile)
}

func ErrStorageFailed() *errx.Error {
	return ErrRegistry.New(CodeStorageFailed)
}
