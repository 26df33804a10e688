package api

import (
	_ "embed"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	middleware "github.com/oapi-codegen/nethttp-middleware"
	"github.com/samber/lo"
)

//go:embed openapi.json
var openAPISpec []byte

var (
	spec = lo.Must(openapi3.NewLoader().LoadFromData(openAPISpec))
)

// requestValidator rejects requests that do not match the document. Tokens are
// checked by the auth middleware, the validator only routes and validates.
func requestValidator() func(http.Handler) http.Handler {
	return middleware.OapiRequestValidatorWithOptions(spec, &middleware.Options{
		Options: openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
		ErrorHandler: func(w http.ResponseWriter, message string, statusCode int) {
			kind := kindValidation
			if statusCode == http.StatusNotFound {
				kind = kindNotFound
			}
			writeJSON(w, statusCode, errorBody(kind, message))
		},
	})
}
