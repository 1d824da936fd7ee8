package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cashbox/internal"
)

// Client is the boundary to the external text-generation service.
type Client interface {
	GenerateReport(ctx context.Context, prompt string) (string, error)
}

// geminiClient talks to the Gemini generateContent REST endpoint.
type geminiClient struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
}

// NewGeminiClient builds a Gemini-backed client. The API key is required;
// callers decide upstream whether analysis is enabled at all.
func NewGeminiClient(cfg internal.AIConfig) (Client, error) {
	if cfg.APIKey == "" {
		return nil, internal.ErrAnalysisDisabled
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &geminiClient{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// NewGeminiClientWithBaseURL points the client at an alternate endpoint,
// for tests and proxies.
func NewGeminiClientWithBaseURL(cfg internal.AIConfig, baseURL string) (Client, error) {
	client, err := NewGeminiClient(cfg)
	if err != nil {
		return nil, err
	}
	client.(*geminiClient).baseURL = baseURL
	return client, nil
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateReport sends the prompt and returns the first candidate's text.
func (c *geminiClient) GenerateReport(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", internal.ErrAnalysisFailed.WithCause(fmt.Errorf("failed to marshal request: %w", err))
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", internal.ErrAnalysisFailed.WithCause(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", internal.ErrAnalysisFailed.WithCause(fmt.Errorf("request failed: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", internal.ErrAnalysisFailed.WithCause(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return "", internal.ErrAnalysisFailed.WithCause(fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(body)))
	}

	var response geminiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", internal.ErrAnalysisFailed.WithCause(fmt.Errorf("failed to parse response: %w", err))
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", internal.ErrAnalysisFailed.WithCause(fmt.Errorf("no candidate text returned"))
	}

	text := response.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", internal.ErrAnalysisFailed.WithCause(fmt.Errorf("empty candidate text"))
	}
	return text, nil
}
