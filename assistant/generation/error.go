package generation

import (
	"net/http"

	"github.com/Abraxas-365/resumegpt/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("GENERATION")

// Error codes
var (
	CodeUnavailable       = ErrRegistry.Register("UNAVAILABLE", errx.TypeUnavailable, http.StatusServiceUnavailable, "No language model backend could complete the request")
	CodeMalformedResponse = ErrRegistry.Register("MALFORMED_RESPONSE", errx.TypeExternal, http.StatusBadGateway, "The language model returned an unusable response")
)

func ErrUnavailable() *errx.Error {
	return ErrRegistry.New(CodeUnavailable)
}

func ErrMalformedResponse() *errx.Error {
	return ErrRegistry.New(CodeMalformedResponse)
}
