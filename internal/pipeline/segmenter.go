package pipeline

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/yoockh/homevisit/internal/models"
	"github.com/yoockh/homevisit/internal/services"
)

// A sentence is any run of text closed by terminal punctuation.
var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)

// Segmenter accumulates transcript fragments per session and emits complete
// utterances. Buffer state lives in the session; the segmenter only mutates
// it under the session's lock.
type Segmenter struct {
	sessions services.SessionService
}

func NewSegmenter(sessions services.SessionService) *Segmenter {
	return &Segmenter{sessions: sessions}
}

// Feed appends fragment to the session buffer and returns every utterance
// completed by it, left to right. An unknown session is created on the spot.
// Zero utterances just means the buffer is still growing. When isFinal is
// set, any unterminated remainder is flushed as a final utterance and the
// buffer ends empty.
func (g *Segmenter) Feed(sessionID, speakerRole, fragment string, isFinal bool) []models.Utterance {
	var utterances []models.Utterance

	g.sessions.Update(sessionID, func(s *models.CallSession) {
		buf := s.Buffer
		if fragment != "" {
			if buf != "" {
				buf += " "
			}
			buf += fragment
		}

		var sentences []string
		rest := buf
		if idx := sentencePattern.FindAllStringIndex(buf, -1); len(idx) > 0 {
			sentences = sentencePattern.FindAllString(buf, -1)
			rest = buf[idx[len(idx)-1][1]:]
		}
		if isFinal {
			if tail := strings.TrimSpace(rest); tail != "" {
				sentences = append(sentences, tail)
			}
			rest = ""
		}

		source, target := s.LanguagesFor(speakerRole)
		for _, sentence := range sentences {
			text := strings.TrimSpace(sentence)
			if text == "" {
				continue
			}
			utterances = append(utterances, models.Utterance{
				ID:          uuid.NewString(),
				SessionID:   sessionID,
				SpeakerRole: speakerRole,
				RawText:     text,
				SourceLang:  source,
				TargetLang:  target,
				IsFinal:     isFinal,
			})
		}

		s.Buffer = rest
		s.Utterances += int64(len(utterances))
	})

	return utterances
}
