package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/homevisit/internal/models"
	"github.com/yoockh/homevisit/internal/services"
)

// branchGrace pads the merge wait past the branch timeout so a branch that
// hits its deadline can still deliver its degraded result.
const branchGrace = 100 * time.Millisecond

// Orchestrator is the coordination core: it turns transcript fragments into
// ordered pipeline responses, fanning translation and compliance out per
// utterance and joining them with degraded defaults on timeout.
type Orchestrator struct {
	segmenter  *Segmenter
	translator services.TranslationService
	compliance services.ComplianceService
	metrics    *MetricsRecorder
	log        *logrus.Logger

	branchTimeout time.Duration
	latencyBudget time.Duration
}

func NewOrchestrator(segmenter *Segmenter, translator services.TranslationService, compliance services.ComplianceService, metrics *MetricsRecorder, log *logrus.Logger, branchTimeout, latencyBudget time.Duration) *Orchestrator {
	if branchTimeout <= 0 {
		branchTimeout = 2500 * time.Millisecond
	}
	if latencyBudget <= 0 {
		latencyBudget = 300 * time.Millisecond
	}
	if log == nil {
		log = logrus.New()
	}
	return &Orchestrator{
		segmenter:     segmenter,
		translator:    translator,
		compliance:    compliance,
		metrics:       metrics,
		log:           log,
		branchTimeout: branchTimeout,
		latencyBudget: latencyBudget,
	}
}

// Process feeds one transcript fragment through the pipeline. Responses come
// back in the order the utterances were recognized; an empty slice means the
// session is still buffering. Degradation (backend failure, branch timeout)
// yields untranslated text or normal risk, never a missing response.
func (o *Orchestrator) Process(ctx context.Context, sessionID, speakerRole, fragment string, isFinal bool) []models.PipelineResponse {
	utterances := o.segmenter.Feed(sessionID, speakerRole, fragment, isFinal)
	if len(utterances) == 0 {
		return nil
	}

	responses := make([]models.PipelineResponse, 0, len(utterances))
	for _, u := range utterances {
		responses = append(responses, o.processOne(ctx, u))
	}
	return responses
}

type translationOutcome struct {
	text     string
	elapsed  time.Duration
	degraded bool
}

type complianceOutcome struct {
	risk    models.RiskAssessment
	elapsed time.Duration
}

func (o *Orchestrator) processOne(ctx context.Context, u models.Utterance) models.PipelineResponse {
	start := time.Now()
	o.metrics.IncUtterances()

	// englishCh hands the translated text to the compliance branch when the
	// rule set needs English-equivalent content. Buffered so the translation
	// branch never blocks on a disinterested sibling.
	englishCh := make(chan string, 1)
	trCh := make(chan translationOutcome, 1)
	asCh := make(chan complianceOutcome, 1)

	go func() {
		bctx, cancel := context.WithTimeout(ctx, o.branchTimeout)
		defer cancel()
		t0 := time.Now()
		out, err := o.translator.Translate(bctx, u.RawText, u.SourceLang, u.TargetLang)
		if err != nil {
			o.log.WithError(err).WithFields(logrus.Fields{
				"session_id":   u.SessionID,
				"utterance_id": u.ID,
			}).Warn("translation degraded")
		}
		englishCh <- out
		trCh <- translationOutcome{text: out, elapsed: time.Since(t0), degraded: err != nil}
	}()

	go func() {
		bctx, cancel := context.WithTimeout(ctx, o.branchTimeout)
		defer cancel()
		t0 := time.Now()
		asCh <- complianceOutcome{
			risk:    o.compliance.Assess(bctx, o.complianceText(bctx, u, englishCh)),
			elapsed: time.Since(t0),
		}
	}()

	tr := translationOutcome{text: u.RawText, degraded: true}
	select {
	case tr = <-trCh:
	case <-time.After(o.branchTimeout + branchGrace):
		tr.elapsed = o.branchTimeout
	}

	co := complianceOutcome{risk: models.RiskAssessment{RiskLevel: models.RiskNormal}}
	select {
	case co = <-asCh:
	case <-time.After(o.branchTimeout + branchGrace):
		co.elapsed = o.branchTimeout
	}

	total := time.Since(start)
	o.metrics.Observe(StageTranslation, tr.elapsed)
	o.metrics.Observe(StageCompliance, co.elapsed)
	o.metrics.Observe(StageTotal, total)

	budgetExceeded := total > o.latencyBudget
	if budgetExceeded {
		o.metrics.IncBudgetMisses()
		o.log.WithFields(logrus.Fields{
			"session_id":   u.SessionID,
			"utterance_id": u.ID,
			"total_ms":     total.Milliseconds(),
			"budget_ms":    o.latencyBudget.Milliseconds(),
		}).Warn("latency budget exceeded")
	}

	return models.PipelineResponse{
		UtteranceID: u.ID,
		Original:    u.RawText,
		Translated:  tr.text,
		SourceLang:  u.SourceLang,
		TargetLang:  u.TargetLang,
		Risk:        co.risk,
		StageLatencies: models.StageLatencies{
			TranslationMS: tr.elapsed.Milliseconds(),
			ComplianceMS:  co.elapsed.Milliseconds(),
		},
		TotalLatencyMS: total.Milliseconds(),
		BudgetExceeded: budgetExceeded,
	}
}

// complianceText resolves which text the rule set sees: the raw text when
// the speaker is already in English, otherwise the English translation once
// it arrives. If translation misses the branch deadline the raw text is
// assessed as a best effort (the rule table carries German literals too).
func (o *Orchestrator) complianceText(ctx context.Context, u models.Utterance, englishCh <-chan string) string {
	if strings.EqualFold(u.SourceLang, "en") || !strings.EqualFold(u.TargetLang, "en") {
		return u.RawText
	}
	select {
	case translated := <-englishCh:
		if strings.TrimSpace(translated) != "" {
			return translated
		}
		return u.RawText
	case <-ctx.Done():
		return u.RawText
	}
}
