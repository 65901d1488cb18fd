package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const googleEndpoint = "https://translation.googleapis.com/language/translate/v2"

// ensure this satisfies the interface
var _ Backend = (*GoogleTranslate)(nil)

// GoogleTranslate is the secondary backend, tried when DeepL is
// unavailable or failing.
type GoogleTranslate struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewGoogleTranslate(apiKey string) *GoogleTranslate {
	return &GoogleTranslate{
		apiKey:   apiKey,
		endpoint: googleEndpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (g *GoogleTranslate) Name() string { return "google" }

type googleResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

func (g *GoogleTranslate) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	params := url.Values{}
	params.Set("key", g.apiKey)
	params.Set("q", text)
	if sourceLang != "" && sourceLang != "auto" {
		params.Set("source", strings.ToLower(sourceLang))
	}
	params.Set("target", strings.ToLower(targetLang))
	params.Set("format", "text")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google translate: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out googleResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if len(out.Data.Translations) == 0 {
		return "", fmt.Errorf("google translate: empty translation response")
	}
	return out.Data.Translations[0].TranslatedText, nil
}
