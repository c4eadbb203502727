package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "refdataservice/internal/api/docs" // registers the generated spec with swag
)

// SwaggerUIHandler returns a handler for Swagger UI backed by the registered spec.
func SwaggerUIHandler() http.HandlerFunc {
	return httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))
}

// OpenAPISpecHandler returns a handler that redirects to the swagger spec JSON
func OpenAPISpecHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/doc.json", http.StatusTemporaryRedirect)
	}
}
