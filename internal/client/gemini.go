package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiClient handles communication with the Gemini generateContent API
// for both multimodal (image + prompt) and text-only calls.
type GeminiClient struct {
	httpClient *http.Client
	apiKey     string
	model      string
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// GeminiRequest represents a generateContent request
type GeminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

// GeminiResponse represents a generateContent response
type GeminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// NewGeminiClient creates a new Gemini API client
func NewGeminiClient(apiKey, model string, maxRetries int, retryDelay time.Duration, logger *slog.Logger) *GeminiClient {
	return &GeminiClient{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		apiKey:     apiKey,
		model:      model,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		logger:     logger,
	}
}

// DescribeImage sends a prompt plus a base64-encoded image and returns the
// model's text output.
func (c *GeminiClient) DescribeImage(ctx context.Context, prompt, imageB64, mimeType string) (string, error) {
	if imageB64 == "" {
		return "", fmt.Errorf("empty image data")
	}

	req := GeminiRequest{
		Contents: []geminiContent{
			{
				Parts: []geminiPart{
					{Text: prompt},
					{InlineData: &geminiInlineData{MimeType: mimeType, Data: imageB64}},
				},
			},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.2,
			MaxOutputTokens: 2048,
		},
	}

	return c.doRequestWithRetry(ctx, req)
}

// GenerateText sends a text-only prompt.
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	req := GeminiRequest{
		Contents: []geminiContent{
			{
				Parts: []geminiPart{
					{Text: prompt},
				},
			},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature: 0.2,
			// Text-only calls are short extractions
			MaxOutputTokens: 256,
		},
	}

	return c.doRequestWithRetry(ctx, req)
}

// doRequestWithRetry retries transient failures (network errors, 429, 5xx)
// with a fixed delay between attempts.
func (c *GeminiClient) doRequestWithRetry(ctx context.Context, req GeminiRequest) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("missing Gemini API key")
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		text, retryable, err := c.doRequest(ctx, req)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !retryable {
			return "", err
		}

		c.logger.Warn("Gemini request failed, retrying",
			"attempt", attempt,
			"max_retries", c.maxRetries,
			"error", err,
		)

		if attempt < c.maxRetries {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
	}

	return "", fmt.Errorf("gemini request failed after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *GeminiClient) doRequest(ctx context.Context, req GeminiRequest) (text string, retryable bool, err error) {
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", geminiAPIBase, c.model, c.apiKey)

	body, err := json.Marshal(req)
	if err != nil {
		return "", false, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", true, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return "", retryable, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(raw))
	}

	var geminiResp GeminiResponse
	if err := json.Unmarshal(raw, &geminiResp); err != nil {
		return "", false, fmt.Errorf("failed to parse response: %w", err)
	}

	if geminiResp.Error != nil {
		return "", false, fmt.Errorf("gemini API error: %s", geminiResp.Error.Message)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", true, fmt.Errorf("empty gemini response")
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, false, nil
}
