package generation

import (
	"context"
	"errors"
	"strings"
)

// scriptedClient returns canned responses in order and records every prompt
// it receives.
type scriptedClient struct {
	responses []string
	err       error
	prompts   []string
}

func (c *scriptedClient) Call(ctx context.Context, prompt string, maxTokens int) (string, error) {
	c.prompts = append(c.prompts, prompt)
	if c.err != nil {
		return "", c.err
	}
	if len(c.responses) == 0 {
		return "", errors.New("scriptedClient: no responses left")
	}
	resp := c.responses[0]
	c.responses = c.responses[1:]
	return resp, nil
}

// keyedClient picks its response by substring match against the prompt,
// making responses chunk-keyed rather than order-dependent.
type keyedClient struct {
	// responses maps a prompt substring to the pair of responses for that
	// chunk: index 0 for planning prompts, index 1 for synthesis prompts.
	responses map[string][2]string
	calls     int
}

func (c *keyedClient) Call(ctx context.Context, prompt string, maxTokens int) (string, error) {
	c.calls++
	for key, pair := range c.responses {
		if !strings.Contains(prompt, key) {
			continue
		}
		if strings.Contains(prompt, "flashcard planner") {
			return pair[0], nil
		}
		return pair[1], nil
	}
	return "", errors.New("keyedClient: no response for prompt")
}
