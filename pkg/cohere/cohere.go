package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"gastronomia/pkg/schema"
)

// ChatRequest holds the parameters for a single chat completion call.
type ChatRequest struct {
	Messages    []schema.Message
	MaxTokens   int
	Temperature float64
}

// chatPayload is the Cohere v2 chat request body.
type chatPayload struct {
	Model       string           `json:"model"`
	Messages    []schema.Message `json:"messages"`
	MaxTokens   int              `json:"max_tokens,omitempty"`
	Temperature float64          `json:"temperature,omitempty"`
}

// chatResponse is the subset of the Cohere v2 chat response we consume.
type chatResponse struct {
	Message struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"message"`
}

// Client is a Cohere v2 chat client.
type Client struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	MaxRetries int
	RetryDelay time.Duration
}

// NewClient creates a chat client for the given API key, endpoint and model.
func NewClient(apiKey, baseURL, model string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Model:   model,
		HTTPClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
	}
}

// Chat sends a chat completion request and returns the generated text.
// Transport and status errors are retried with linear backoff.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (string, error) {
	payload := chatPayload{
		Model:       c.Model,
		Messages:    req.Messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	var lastErr error
	for retry := 0; retry < c.MaxRetries; retry++ {
		if retry > 0 {
			backoffDuration := time.Duration(retry) * c.RetryDelay
			log.Printf("Chat request retry %d, waiting %v...", retry+1, backoffDuration)
			select {
			case <-time.After(backoffDuration):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL, bytes.NewBuffer(jsonData))
		if err != nil {
			return "", fmt.Errorf("failed to create chat request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

		resp, err := c.HTTPClient.Do(httpReq)
		if err != nil {
			lastErr = err
			log.Printf("Chat request failed (attempt %d): %v", retry+1, err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("chat API returned status %d", resp.StatusCode)
			log.Printf("Chat request failed (attempt %d): HTTP %d", retry+1, resp.StatusCode)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			log.Printf("Failed to read chat response (attempt %d): %v", retry+1, err)
			continue
		}

		var chatResp chatResponse
		if err := json.Unmarshal(body, &chatResp); err != nil {
			lastErr = err
			log.Printf("Failed to decode chat response (attempt %d): %v", retry+1, err)
			continue
		}

		text := extractText(chatResp)
		if text == "" {
			lastErr = fmt.Errorf("received empty completion")
			log.Printf("Empty chat completion (attempt %d)", retry+1)
			continue
		}

		return text, nil
	}

	return "", fmt.Errorf("chat completion failed after %d attempts: %w", c.MaxRetries, lastErr)
}

func extractText(resp chatResponse) string {
	for _, part := range resp.Message.Content {
		if part.Type == "" || part.Type == "text" {
			if text := strings.TrimSpace(part.Text); text != "" {
				return text
			}
		}
	}
	return ""
}
