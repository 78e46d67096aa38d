package gemini

import (
	"context"
	"encoding/json"
	"fmt"
)

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Complete sends a fully composed prompt and returns the model completion.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	path := fmt.Sprintf("/models/%s:generateContent", c.chatModel)
	payload, err := c.doRequest(ctx, path, generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	var result generateResponse
	if err := json.Unmarshal(payload, &result); err != nil {
		return "", fmt.Errorf("generate: decode: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generate: empty candidates in response")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
