package langid

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Detector identifies the language of a text and how confident the
// identification is (0..1).
type Detector interface {
	Detect(text string) (lang string, confidence float64)
}

// ConfidenceThreshold is the documented cutoff: below it the detection is
// discarded and the caller's fallback language applies.
const ConfidenceThreshold = 0.60

// Languages the assistant handles during viewings.
var supported = []lingua.Language{
	lingua.English,
	lingua.German,
	lingua.French,
	lingua.Spanish,
	lingua.Italian,
	lingua.Dutch,
	lingua.Polish,
}

type linguaDetector struct {
	det lingua.LanguageDetector
}

// New builds a detector over the supported language set.
func New() Detector {
	return &linguaDetector{
		det: lingua.NewLanguageDetectorBuilder().FromLanguages(supported...).Build(),
	}
}

func (d *linguaDetector) Detect(text string) (string, float64) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", 0
	}
	values := d.det.ComputeLanguageConfidenceValues(text)
	if len(values) == 0 {
		return "", 0
	}
	top := values[0]
	return strings.ToLower(top.Language().IsoCode639_1().String()), top.Value()
}

// Resolve returns the detected language when confidence reaches
// ConfidenceThreshold, otherwise the deterministic fallback.
func Resolve(d Detector, text, fallback string) string {
	lang, conf := d.Detect(text)
	if lang != "" && conf >= ConfidenceThreshold {
		return lang
	}
	return fallback
}
