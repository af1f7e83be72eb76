package conversation

import (
	"net/http"

	"github.com/Abraxas-365/resumegpt/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("MEMORY")

var CodeInvalidPolicy = ErrRegistry.Register("INVALID_POLICY", errx.TypeValidation, http.StatusBadRequest, "Unknown memory type")

func ErrInvalidPolicy() *errx.Error {
	return ErrRegistry.New(CodeInvalidPolicy)
}
