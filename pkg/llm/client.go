// Package llm provides the optional LLM-backed scorer: a Gemini REST client,
// the rubric prompt, and a tolerant decoder for the model's JSON replies.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/cuvee/pkg/tracing"
)

// Config holds Gemini client configuration
type Config struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// Client calls the Gemini generateContent REST API.
type Client struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
	log        ectologger.Logger
}

// NewClient creates a new Gemini client
func NewClient(cfg Config, log ectologger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	UsageMetadata *struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// GenerateContent sends the prompt to the model and returns the text of the
// first reply candidate.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "llm.Client.GenerateContent")
	defer span.End()

	if c.apiKey == "" || c.model == "" || c.endpoint == "" {
		return "", fmt.Errorf("gemini client misconfigured")
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal gemini payload: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.endpoint, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("gemini error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty gemini response")
	}

	if decoded.UsageMetadata != nil {
		c.log.WithContext(ctx).WithFields(map[string]any{
			"model":             c.model,
			"prompt_tokens":     decoded.UsageMetadata.PromptTokenCount,
			"completion_tokens": decoded.UsageMetadata.CandidatesTokenCount,
			"total_tokens":      decoded.UsageMetadata.TotalTokenCount,
		}).Debug("Gemini token usage")
	}

	return decoded.Candidates[0].Content.Parts[0].Text, nil
}
