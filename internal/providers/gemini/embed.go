package gemini

import (
	"context"
	"encoding/json"
	"fmt"
)

type embedRequest struct {
	Content content `json:"content"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

// Embed converts text into the model's fixed-dimension vector.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	path := fmt.Sprintf("/models/%s:embedContent", c.embedModel)
	payload, err := c.doRequest(ctx, path, embedRequest{
		Content: content{Parts: []part{{Text: text}}},
	})
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}

	var result embedResponse
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("embed: decode: %w", err)
	}
	if len(result.Embedding.Values) == 0 {
		return nil, fmt.Errorf("embed: empty embedding in response")
	}
	return result.Embedding.Values, nil
}
