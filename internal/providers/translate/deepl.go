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

const deeplEndpoint = "https://api-free.deepl.com/v2/translate"

// ensure this satisfies the interface
var _ Backend = (*DeepL)(nil)

// DeepL is the primary translation backend.
type DeepL struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewDeepL(apiKey string) *DeepL {
	return &DeepL{
		apiKey:   apiKey,
		endpoint: deeplEndpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (d *DeepL) Name() string { return "deepl" }

type deeplResponse struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

func (d *DeepL) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	form := url.Values{}
	form.Set("text", text)
	if sourceLang != "" && sourceLang != "auto" {
		form.Set("source_lang", strings.ToUpper(sourceLang))
	}
	form.Set("target_lang", strings.ToUpper(targetLang))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "DeepL-Auth-Key "+d.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deepl: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out deeplResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if len(out.Translations) == 0 {
		return "", fmt.Errorf("deepl: empty translation response")
	}
	return out.Translations[0].Text, nil
}
