package models

// Risk levels, ordered from benign to severe. The string values match the
// risk_level payload field of the knowledge base.
const (
	RiskNormal  = "normal"
	RiskCaution = "caution"
	RiskRedFlag = "red flag"
)

// Utterance is one finalized unit of speech text ready for translation and
// compliance processing. Immutable once emitted by the segmenter; consumed
// exactly once by the orchestrator.
type Utterance struct {
	ID          string `json:"id"`
	SessionID   string `json:"session_id"`
	SpeakerRole string `json:"speaker_role"`
	RawText     string `json:"raw_text"`
	SourceLang  string `json:"source_lang"`
	TargetLang  string `json:"target_lang"`
	IsFinal     bool   `json:"is_final"`
}

// RiskAssessment classifies one utterance's legal risk plus supporting
// citations. Not persisted beyond the response it is attached to.
type RiskAssessment struct {
	RiskLevel      string         `json:"risk_level"`
	MatchedPattern string         `json:"matched_pattern,omitempty"`
	RelatedChunks  []SearchResult `json:"related_rules,omitempty"`
	Warning        string         `json:"warning,omitempty"`
}

// StageLatencies records per-branch processing time for one utterance.
type StageLatencies struct {
	TranslationMS int64 `json:"translation_ms"`
	ComplianceMS  int64 `json:"compliance_ms"`
}

// PipelineResponse is the merged output of one orchestration cycle.
type PipelineResponse struct {
	UtteranceID    string         `json:"utterance_id"`
	Original       string         `json:"original"`
	Translated     string         `json:"translated"`
	SourceLang     string         `json:"from"`
	TargetLang     string         `json:"to"`
	Risk           RiskAssessment `json:"compliance"`
	StageLatencies StageLatencies `json:"stage_latencies_ms"`
	TotalLatencyMS int64          `json:"total_latency_ms"`
	BudgetExceeded bool           `json:"budget_exceeded,omitempty"`
}
