// Package errortracker envia falhas dos handlers para o webhook do Pipefy.
package errortracker

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type Reporter struct {
	webhookURL string
	http       *http.Client
	logger     *zap.Logger
	now        func() time.Time
}

func NewReporter(webhookURL string, logger *zap.Logger) *Reporter {
	return &Reporter{
		webhookURL: webhookURL,
		http:       &http.Client{Timeout: 5 * time.Second},
		logger:     logger,
		now:        time.Now,
	}
}

type card struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Fields      fields `json:"fields"`
}

type fields struct {
	ErrorType    string `json:"error_type"`
	ErrorMessage string `json:"error_message"`
	FunctionName string `json:"function_name"`
	Timestamp    string `json:"timestamp"`
	Context      string `json:"context"`
}

// Report nunca falha para quem chama: erros de envio só são logados.
func (r *Reporter) Report(ctx context.Context, function string, err error, details map[string]any) {
	if r == nil || r.webhookURL == "" || err == nil {
		return
	}

	ctxJSON, _ := json.Marshal(details)
	body, _ := json.Marshal(card{
		Title:       "Edge Function Error - " + function,
		Description: "Error occurred in " + function + ": " + err.Error(),
		Fields: fields{
			ErrorType:    "Edge Function Error",
			ErrorMessage: err.Error(),
			FunctionName: function,
			Timestamp:    r.now().UTC().Format(time.RFC3339),
			Context:      string(ctxJSON),
		},
	})

	req, reqErr := http.NewRequestWithContext(context.WithoutCancel(ctx), http.MethodPost, r.webhookURL, bytes.NewReader(body))
	if reqErr != nil {
		r.logger.Warn("failed to build error report", zap.Error(reqErr))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, doErr := r.http.Do(req)
	if doErr != nil {
		r.logger.Warn("failed to report error", zap.String("function", function), zap.Error(doErr))
		return
	}
	resp.Body.Close()
}
