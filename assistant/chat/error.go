package chat

import (
	"net/http"

	"github.com/Abraxas-365/resumegpt/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("CHAT")

// Error codes
var (
	CodeNoResumeLoaded        = ErrRegistry.Register("NO_RESUME_LOADED", errx.TypeNotFound, http.StatusNotFound, "No resume loaded. Please upload a resume first")
	CodeEmptyQuestion         = ErrRegistry.Register("EMPTY_QUESTION", errx.TypeValidation, http.StatusBadRequest, "Question is required")
	CodeMissingFile           = ErrRegistry.Register("MISSING_FILE", errx.TypeValidation, http.StatusBadRequest, "A resume file is required")
	CodeFileTooLarge          = ErrRegistry.Register("FILE_TOO_LARGE", errx.TypeValidation, http.StatusRequestEntityTooLarge, "Uploaded file exceeds the size limit")
	CodeInvalidJobDescription = ErrRegistry.Register("INVALID_JOB_DESCRIPTION", errx.TypeValidation, http.StatusBadRequest, "Job description is required")
	CodeClearNotConfirmed     = ErrRegistry.Register("CLEAR_NOT_CONFIRMED", errx.TypeValidation, http.StatusBadRequest, "Clearing memory requires confirm=true")
	CodeInvalidRequest        = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Request body could not be parsed")
)

func ErrNoResumeLoaded() *errx.Error {
	return ErrRegistry.New(CodeNoResumeLoaded)
}

func ErrEmptyQuestion() *errx.Error {
	return ErrRegistry.New(CodeEmptyQuestion)
}

func ErrMissingFile() *errx.Error {
	return ErrRegistry.New(CodeMissingFile)
}

func ErrFileTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileTooLarge)
}

func ErrInvalidJobDescription() *errx.Error {
	return ErrRegistry.New(CodeInvalidJobDescription)
}

func ErrClearNotConfirmed() *errx.Error {
	return ErrRegistry.New(CodeClearNotConfirmed)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
