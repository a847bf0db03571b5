package middleware

import (
	"net/http"
	"slices"

	"github.com/go-chi/cors"
)

var corsAllowedHeaders = []string{
	"Authorization", "X-Client-Info", "Apikey", "Content-Type",
	HeaderWebhookSecret, HeaderWebhookSignature,
}

// CORS ecoa apenas origens da allow-list; origem desconhecida fica sem
// Access-Control-Allow-Origin. Lista vazia não libera nada.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return slices.Contains(allowedOrigins, origin)
		},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: corsAllowedHeaders,
		MaxAge:         300,
	})
}
