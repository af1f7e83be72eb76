package content

import (
	"net/http"

	"github.com/Abraxas-365/resumegpt/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("CONTENT")

// Error codes
var (
	CodeInvalidJobDescription = ErrRegistry.Register("INVALID_JOB_DESCRIPTION", errx.TypeValidation, http.StatusBadRequest, "Job description is required")
	CodeInvalidRole           = ErrRegistry.Register("INVALID_ROLE", errx.TypeValidation, http.StatusBadRequest, "Role is required")
	CodeInvalidRequest        = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Request could not be parsed")
)

func ErrInvalidJobDescription() *errx.Error {
	return ErrRegistry.New(CodeInvalidJobDescription)
}

func ErrInvalidRole() *errx.Error {
	return ErrRegistry.New(CodeInvalidRole)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
