package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultTimeout bounds every chat-completion round-trip when the
// configuration does not say otherwise.
const defaultTimeout = 60 * time.Second

// chatRequest is the OpenAI-compatible chat-completions request envelope
// shared by both backends. Every pipeline call is a single user message.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the response envelope the adapter reads.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// completeChat posts the request to endpoint and returns the first choice's
// message content. Transport failures, non-2xx statuses, and malformed
// envelopes all surface as errors; the adapter never retries.
func completeChat(
	ctx context.Context,
	client *http.Client,
	endpoint string,
	headers map[string]string,
	request chatRequest,
) (string, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read chat response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("chat endpoint returned status %d: %s", resp.StatusCode, truncate(respBody, 512))
	}

	var envelope chatResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return "", fmt.Errorf("malformed chat response envelope: %w", err)
	}

	if envelope.Error != nil {
		return "", fmt.Errorf("chat endpoint error: %s", envelope.Error.Message)
	}

	if len(envelope.Choices) == 0 {
		return "", fmt.Errorf("no choices in chat response")
	}

	return envelope.Choices[0].Message.Content, nil
}

func truncate(b []byte, limit int) string {
	if len(b) <= limit {
		return string(b)
	}
	return string(b[:limit]) + "..."
}
