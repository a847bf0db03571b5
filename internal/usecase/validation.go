package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	domainLabels = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)
	nonDigits    = regexp.MustCompile(`\D`)
	schemePrefix = regexp.MustCompile(`(?i)^https?://`)
	wwwPrefix    = regexp.MustCompile(`(?i)^www\.`)
)

const (
	maxDomainLength = 253
	maxRankLLMDocs  = 100
	maxRankLLMQuery = 512
	minWaitlistName = 2
)

// NormalizeDomain turns "https://www.Acme.com/path" into "acme.com".
func NormalizeDomain(input string) string {
	v := strings.TrimSpace(input)
	v = schemePrefix.ReplaceAllString(v, "")
	v = wwwPrefix.ReplaceAllString(v, "")
	if i := strings.Index(v, "/"); i != -1 {
		v = v[:i]
	}
	v = strings.TrimSuffix(v, "/")
	return strings.ToLower(v)
}

func ValidDomain(domain string) bool {
	if domain == "" || len(domain) > maxDomainLength {
		return false
	}
	if strings.Contains(domain, "..") || strings.Contains(domain, "--") {
		return false
	}
	return domainLabels.MatchString(domain)
}

func ValidateWaitlistInput(input SubmitWaitlistInput) []ValidationError {
	var errors []ValidationError

	if len([]rune(strings.TrimSpace(input.Name))) < minWaitlistName {
		errors = append(errors, ValidationError{"name", "must have at least 2 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil || !strings.Contains(input.Email, ".") {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	} else if !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid Brazilian phone number"})
	}

	return errors
}

func ValidateRankLLMInput(input TriggerRankLLMInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Domain) == "" {
		errors = append(errors, ValidationError{"domain", "is required"})
	}

	if strings.TrimSpace(input.Query) == "" {
		errors = append(errors, ValidationError{"query", "is required"})
	} else if len([]rune(input.Query)) > maxRankLLMQuery {
		errors = append(errors, ValidationError{"query", "must not exceed 512 characters"})
	}

	switch {
	case len(input.Documents) == 0:
		errors = append(errors, ValidationError{"documents", "must contain at least one document"})
	case len(input.Documents) > maxRankLLMDocs:
		errors = append(errors, ValidationError{"documents", "must not exceed 100 documents"})
	default:
		for i, doc := range input.Documents {
			if strings.TrimSpace(doc.ID) == "" || strings.TrimSpace(doc.Content) == "" {
				errors = append(errors, ValidationError{fmt.Sprintf("documents[%d]", i), "id and content are required"})
			}
		}
	}

	if input.Model != "" && !entity.IsRankLLMModel(input.Model) {
		errors = append(errors, ValidationError{"model", "must be one of " + strings.Join(entity.RankLLMModels, ", ")})
	}

	if input.TopK != nil && *input.TopK < 1 {
		errors = append(errors, ValidationError{"top_k", "must be greater than zero"})
	}

	return errors
}

// DDD + número: 10 dígitos (fixo) ou 11 (celular).
func isValidPhoneNumber(phone string) bool {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	return len(cleaned) >= 10 && len(cleaned) <= 11
}
