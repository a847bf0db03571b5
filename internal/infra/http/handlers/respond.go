package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/promptmetrics/promptmetrics-api/internal/usecase"
)

const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
}

func writeInvalidJSON(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON"})
}

// writeError traduz os erros tipados dos use cases em status HTTP.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeJSON(w, statusFor(de.Code), ErrorResponse{Error: de.Message, Details: de.Details})
		return
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		logger.Error("request failed", zap.String("code", te.Code), zap.Error(err))
		writeJSON(w, statusFor(te.Code), ErrorResponse{Error: te.Message, Details: te.Details})
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}

func statusFor(code string) int {
	switch code {
	case usecase.CodeValidation:
		return http.StatusBadRequest
	case usecase.CodeUnauthorized:
		return http.StatusUnauthorized
	case usecase.CodeForbidden:
		return http.StatusForbidden
	case usecase.CodeNotFound:
		return http.StatusNotFound
	case usecase.CodeConflict:
		return http.StatusConflict
	case usecase.CodeUpstream:
		return http.StatusBadGateway
	case usecase.CodeUpstreamDown, usecase.CodeNotConfigured:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// upstreamFailure diz se o erro veio de uma integração externa.
func upstreamFailure(err error) bool {
	var te *usecase.TechnicalError
	return errors.As(err, &te) && (te.Code == usecase.CodeUpstream || te.Code == usecase.CodeUpstreamDown)
}
