package usecase

import "errors"

const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeNotConfigured = "NOT_CONFIGURED"
	CodeUpstream      = "UPSTREAM_ERROR"
	CodeUpstreamDown  = "UPSTREAM_UNAVAILABLE"
	CodeDatabase      = "DATABASE_ERROR"
	CodeConflict      = "CONFLICT"
	// integração obrigatória sem URL configurada (500)
	CodeMisconfigured = "CONFIGURATION_ERROR"
)

// DomainError: problema na requisição do cliente (4xx).
type DomainError struct {
	Code    string
	Message string
	Details any
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError: falha de infraestrutura ou de integração (5xx).
type TechnicalError struct {
	Code    string
	Message string
	Details any
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func validationError(msg string, details any) *DomainError {
	return &DomainError{Code: CodeValidation, Message: msg, Details: details}
}
