package index

import (
	"net/http"

	"github.com/Abraxas-365/resumegpt/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("INDEX")

// Error codes
var (
	CodeIndexNotFound     = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "No index exists for this session")
	CodeStoreFailed       = ErrRegistry.Register("STORE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Vector store operation failed")
	CodeEmbeddingFailed   = ErrRegistry.Register("EMBEDDING_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to embed text")
	CodeDimensionMismatch = ErrRegistry.Register("DIMENSION_MISMATCH", errx.TypeInternal, http.StatusInternalServerError, "Vector dimension does not match the index")
	CodeNoChunks          = ErrRegistry.Register("NO_CHUNKS", errx.TypeValidation, http.StatusUnprocessableEntity, "Document has no chunks to index")
)

func ErrIndexNotFound() *errx.Error {
	return ErrRegistry.New(CodeIndexNotFound)
}

func ErrStoreFailed() *errx.Error {
	return ErrRegistry.New(CodeStoreFailed)
}

func ErrEmbeddingFailed() *errx.Error {
	return ErrRegistry.New(CodeEmbeddingFailed)
}

func ErrDimensionMismatch() *errx.Error {
	return ErrRegistry.New(CodeDimensionMismatch)
}

func ErrNoChunks() *errx.Error {
	return ErrRegistry.New(CodeNoChunks)
}
