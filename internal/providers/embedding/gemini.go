package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const geminiEmbedBase = "https://generativelanguage.googleapis.com/v1beta/models"

// DefaultModel produces 768-dim vectors, matching the vector(768) columns.
const DefaultModel = "text-embedding-004"

// ensure this satisfies the interface
var _ Embedder = (*Gemini)(nil)

// Gemini calls the Gemini embedContent REST endpoint.
type Gemini struct {
	apiKey string
	model  string
	base   string
	client *http.Client
}

func NewGemini(apiKey, model string) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{
		apiKey: apiKey,
		model:  model,
		base:   geminiEmbedBase,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type embedRequest struct {
	Model   string `json:"model"`
	Content struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"content"`
}

type embedResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

func (g *Gemini) Embed(ctx context.Context, text string) ([]float32, error) {
	var reqBody embedRequest
	reqBody.Model = "models/" + g.model
	reqBody.Content.Parts = []struct {
		Text string `json:"text"`
	}{{Text: text}}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s:embedContent?key=%s", g.base, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embed: status %d: %s", resp.StatusCode, body)
	}

	var out embedResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if len(out.Embedding.Values) == 0 {
		return nil, fmt.Errorf("embed: empty embedding")
	}
	return out.Embedding.Values, nil
}
