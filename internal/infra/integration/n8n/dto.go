package n8n

import "fmt"

type TriggerPayload struct {
	Domain        string `json:"domain"`
	Timestamp     string `json:"timestamp"`
	Source        string `json:"source"`
	TestMode      bool   `json:"test_mode"`
	TriggeredFrom string `json:"triggered_from,omitempty"`
}

type TriggerResult struct {
	StatusCode int
	// Body é o JSON devolvido pelo workflow, ou {"message": <texto>} quando não for JSON.
	Body map[string]any
}

// StatusError é devolvido quando o webhook responde fora da faixa 2xx.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("n8n returned %d: %s", e.StatusCode, e.Status)
}
