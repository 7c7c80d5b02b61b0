package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/eurenemendes/ecofeira-backend/pkg/config"
	"github.com/eurenemendes/ecofeira-backend/pkg/errors"
)

const baseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Client calls the Gemini generateContent REST endpoint.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// New builds a Gemini client from configuration. The returned client is nil
// when no API key is configured; callers treat that as "narration disabled".
func New(cfg config.GeminiConfig) *Client {
	if cfg.APIKey == "" {
		return nil
	}
	return &Client{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Enabled reports whether the client can make requests.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Generate sends a single-turn prompt and returns the first candidate's text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Enabled() {
		return "", errors.New(errors.CodeDependency, "gemini client is not configured")
	}
	if prompt == "" {
		return "", errors.New(errors.CodeValidation, "prompt is required")
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", baseURL, c.model, c.apiKey)

	payload := map[string]any{
		"contents": []map[string]any{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]any{
			"temperature":     0.4,
			"maxOutputTokens": 1024,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(errors.CodeInternal, err, "marshaling gemini payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", errors.Wrap(errors.CodeInternal, err, "building gemini request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(errors.CodeDependency, err, "calling gemini api")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(errors.CodeDependency, err, "reading gemini response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.New(errors.CodeDependency, fmt.Sprintf("gemini api returned status %d", resp.StatusCode))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", errors.Wrap(errors.CodeDependency, err, "decoding gemini response")
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New(errors.CodeDependency, "gemini returned no candidates")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
