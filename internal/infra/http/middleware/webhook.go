package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/promptmetrics/promptmetrics-api/internal/security"
)

const (
	HeaderWebhookSecret    = "X-Webhook-Secret"
	HeaderWebhookSignature = "X-Webhook-Signature"

	maxWebhookBody = 5 << 20
)

// WebhookAuth aceita o segredo compartilhado no header ou a assinatura
// HMAC-SHA256 (base64) do corpo. O corpo é relido para o handler.
func WebhookAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				writeUnauthorized(w, "Unauthorized")
				return
			}

			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
			r.Body.Close()
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusRequestEntityTooLarge)
					json.NewEncoder(w).Encode(map[string]string{"error": "Payload too large"})
					return
				}
				writeUnauthorized(w, "Unauthorized")
				return
			}

			if !authorizedWebhook(r.Header, body, secret) {
				writeUnauthorized(w, "Unauthorized")
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}

func authorizedWebhook(h http.Header, body []byte, secret string) bool {
	if provided := h.Get(HeaderWebhookSecret); provided != "" {
		return security.TimingSafeEqual(provided, secret)
	}
	if sig := h.Get(HeaderWebhookSignature); sig != "" {
		return security.VerifyHMACSHA256Base64(body, sig, secret)
	}
	return false
}
