package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// HTTPAPISender delivers confirmations through a transactional email HTTP
// API (resend-style JSON endpoint).
type HTTPAPISender struct {
	endpoint string
	apiKey   string
	from     string
	renderer *Renderer
	client   *http.Client
}

func NewHTTPAPISender(endpoint, apiKey, from string, renderer *Renderer) *HTTPAPISender {
	return &HTTPAPISender{
		endpoint: endpoint,
		apiKey:   apiKey,
		from:     from,
		renderer: renderer,
		client:   &http.Client{},
	}
}

type apiSendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

type apiSendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (s *HTTPAPISender) Send(ctx context.Context, payload EmailPayload) Result {
	if payload.Customer.Email == "" {
		return failure(ErrMissingRecipient)
	}

	rendered, err := s.renderer.Render(payload)
	if err != nil {
		return failure(err)
	}

	body, err := json.Marshal(apiSendRequest{
		From:    s.from,
		To:      rendered.To,
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
		Text:    rendered.Text,
	})
	if err != nil {
		return failure(fmt.Errorf("marshal send request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return failure(fmt.Errorf("build send request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return failure(fmt.Errorf("email api request failed: %w", err))
	}
	defer resp.Body.Close()

	var apiResp apiSendResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil && resp.StatusCode == http.StatusOK {
		return failure(fmt.Errorf("decode email api response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return failure(fmt.Errorf("email api returned status %d: %s", resp.StatusCode, apiResp.Message))
	}

	return Result{Success: true, MessageID: apiResp.ID}
}
