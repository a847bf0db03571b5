package n8n

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client dispara o workflow de análise no n8n. Não há retry: uma chamada, um timeout.
type Client struct {
	webhookURL string
	http       *http.Client
}

func NewClient(webhookURL string, timeout time.Duration) *Client {
	return &Client{
		webhookURL: webhookURL,
		http:       &http.Client{Timeout: timeout},
	}
}

func (c *Client) Configured() bool {
	return c.webhookURL != ""
}

func (c *Client) Trigger(ctx context.Context, payload TriggerPayload) (*TriggerResult, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar payload n8n: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro request n8n: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       string(raw),
		}
	}

	return &TriggerResult{StatusCode: resp.StatusCode, Body: parseBody(raw)}, nil
}

func parseBody(raw []byte) map[string]any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return map[string]any{"message": string(raw)}
	}
	if obj, ok := parsed.(map[string]any); ok {
		return obj
	}
	// n8n costuma responder com array
	return map[string]any{"data": parsed}
}
