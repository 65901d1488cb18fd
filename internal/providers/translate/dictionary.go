package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Phrase is one curated phrasebook entry. The phrasebook is data, not code:
// operators can swap it without redeploying (PHRASEBOOK_PATH).
type Phrase struct {
	Text       string `json:"text"`
	SourceLang string `json:"from"`
	TargetLang string `json:"to"`
	Translated string `json:"translated"`
}

// ensure this satisfies the interface
var _ Backend = (*Dictionary)(nil)

// Dictionary is the offline, last-resort backend: exact-phrase lookups
// against a loaded phrasebook. A miss is an error so the caller falls
// through to its degraded default instead of inventing text.
type Dictionary struct {
	phrases map[string]string
}

func NewDictionary(phrases []Phrase) *Dictionary {
	m := make(map[string]string, len(phrases))
	for _, p := range phrases {
		m[dictKey(p.Text, p.SourceLang, p.TargetLang)] = p.Translated
	}
	return &Dictionary{phrases: m}
}

// LoadDictionary reads a JSON phrasebook file. An empty path yields the
// built-in phrasebook.
func LoadDictionary(path string) (*Dictionary, error) {
	if path == "" {
		return NewDictionary(DefaultPhrases()), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var phrases []Phrase
	if err := json.Unmarshal(b, &phrases); err != nil {
		return nil, err
	}
	return NewDictionary(phrases), nil
}

func (d *Dictionary) Name() string { return "phrasebook" }

func (d *Dictionary) Translate(_ context.Context, text, sourceLang, targetLang string) (string, error) {
	if v, ok := d.phrases[dictKey(text, sourceLang, targetLang)]; ok {
		return v, nil
	}
	return "", fmt.Errorf("phrasebook: no entry for %q (%s->%s)", text, sourceLang, targetLang)
}

func dictKey(text, sourceLang, targetLang string) string {
	return strings.ToLower(strings.TrimSpace(text)) + "|" +
		strings.ToLower(strings.TrimSpace(sourceLang)) + "|" +
		strings.ToLower(strings.TrimSpace(targetLang))
}

// DefaultPhrases covers the stock demo exchanges so the pipeline stays
// usable with no provider keys at all.
func DefaultPhrases() []Phrase {
	return []Phrase{
		{Text: "Die Kaution beträgt 3 Monatsmieten.", SourceLang: "de", TargetLang: "en", Translated: "The security deposit is 3 months' rent."},
		{Text: "Die Kaution beträgt 6 Monatsmieten.", SourceLang: "de", TargetLang: "en", Translated: "The security deposit is 6 months' rent."},
		{Text: "Die Miete ist 800 Euro warm.", SourceLang: "de", TargetLang: "en", Translated: "The rent is 800 euros including utilities."},
		{Text: "Haustiere sind nicht erlaubt.", SourceLang: "de", TargetLang: "en", Translated: "Pets are not allowed."},
		{Text: "Sie können mit 3 Monaten kündigen.", SourceLang: "de", TargetLang: "en", Translated: "You can terminate with 3 months notice."},
		{Text: "Wann können Sie einziehen?", SourceLang: "de", TargetLang: "en", Translated: "When can you move in?"},
		{Text: "Haben Sie Haustiere?", SourceLang: "de", TargetLang: "en", Translated: "Do you have pets?"},
		{Text: "The rent is 800 euros.", SourceLang: "en", TargetLang: "de", Translated: "Die Miete ist 800 Euro."},
		{Text: "I have a cat.", SourceLang: "en", TargetLang: "de", Translated: "Ich habe eine Katze."},
		{Text: "Can I move in next month?", SourceLang: "en", TargetLang: "de", Translated: "Kann ich nächsten Monat einziehen?"},
		{Text: "Le loyer est de 800 euros.", SourceLang: "fr", TargetLang: "en", Translated: "The rent is 800 euros."},
		{Text: "El alquiler es de 800 euros.", SourceLang: "es", TargetLang: "en", Translated: "The rent is 800 euros."},
	}
}
