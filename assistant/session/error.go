package session

import (
	"net/http"

	"github.com/Abraxas-365/resumegpt/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("SESSION")

// Error codes
var (
	CodeSessionNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Session not found, upload a resume first")
	CodeInvalidToken    = ErrRegistry.Register("INVALID_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid or expired session token")
	CodeTokenFailed     = ErrRegistry.Register("TOKEN_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to issue session token")
)

func ErrSessionNotFound() *errx.Error {
	return ErrRegistry.New(CodeSessionNotFound)
}

func ErrInvalidToken() *errx.Error {
	return ErrRegistry.New(CodeInvalidToken)
}

func ErrTokenFailed() *errx.Error {
	return ErrRegistry.New(CodeTokenFailed)
}
