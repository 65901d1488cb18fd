package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/homevisit/internal/models"
	"github.com/yoockh/homevisit/internal/pipeline"
	"github.com/yoockh/homevisit/internal/providers/langid"
	"github.com/yoockh/homevisit/internal/services"
	"github.com/yoockh/homevisit/internal/utils"
)

// WebhookHandler terminates the voice-provider webhook. One POST endpoint,
// dispatched on the message field: call lifecycle, live transcript
// fragments, and tool-style function calls all arrive here.
type WebhookHandler struct {
	sessions   services.SessionService
	orch       *pipeline.Orchestrator
	translator services.TranslationService
	compliance services.ComplianceService
	detector   langid.Detector
	log        *logrus.Logger
}

func NewWebhookHandler(sessions services.SessionService, orch *pipeline.Orchestrator, translator services.TranslationService, compliance services.ComplianceService, detector langid.Detector, log *logrus.Logger) *WebhookHandler {
	if log == nil {
		log = logrus.New()
	}
	return &WebhookHandler{
		sessions:   sessions,
		orch:       orch,
		translator: translator,
		compliance: compliance,
		detector:   detector,
		log:        log,
	}
}

type webhookEvent struct {
	Message string `json:"message"`
	Call    struct {
		ID string `json:"id"`
	} `json:"call"`

	// speech.update
	Transcript string `json:"transcript"`
	Speaker    string `json:"speaker"`
	IsFinal    bool   `json:"is_final"`

	// function.update
	Function   string         `json:"function"`
	Parameters map[string]any `json:"parameters"`
}

type speakAction struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Context string `json:"context,omitempty"`
}

type webhookInstructions struct {
	Actions []speakAction `json:"actions"`
}

func (h *WebhookHandler) Handle(c *gin.Context) {
	const op = "WebhookHandler.Handle"

	var ev webhookEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid webhook payload", err))
		return
	}

	callID := ev.Call.ID
	if callID == "" {
		callID = "default"
	}

	switch ev.Message {
	case "call.start":
		h.callStart(c, callID)
	case "speech.update":
		h.speechUpdate(c, callID, ev)
	case "function.update":
		h.functionUpdate(c, callID, ev)
	case "call.end":
		h.sessions.Expire(callID)
		h.log.WithField("session_id", callID).Info("call ended")
		c.JSON(http.StatusOK, gin.H{"status": "call_ended"})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	}
}

func (h *WebhookHandler) callStart(c *gin.Context, callID string) {
	h.sessions.GetOrCreate(callID)
	h.log.WithField("session_id", callID).Info("call started")

	c.JSON(http.StatusOK, gin.H{
		"status": "call_started",
		"instructions": webhookInstructions{
			Actions: []speakAction{{
				Type: "speak",
				Text: "Hello! I am your rental viewing assistant. I will translate between you and the landlord and flag anything that needs a closer look.",
			}},
		},
	})
}

func (h *WebhookHandler) speechUpdate(c *gin.Context, callID string, ev webhookEvent) {
	role := models.RoleTenant
	if ev.Speaker == models.RoleLandlord {
		role = models.RoleLandlord
	}

	responses := h.orch.Process(c.Request.Context(), callID, role, ev.Transcript, ev.IsFinal)
	if len(responses) == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "processing"})
		return
	}

	var instr webhookInstructions
	for _, r := range responses {
		if r.Translated != "" && r.Translated != r.Original {
			instr.Actions = append(instr.Actions, speakAction{
				Type:    "speak",
				Text:    r.Translated,
				Context: "translation",
			})
		}
		if r.Risk.Warning != "" {
			instr.Actions = append(instr.Actions, speakAction{
				Type:    "speak",
				Text:    r.Risk.Warning,
				Context: "compliance",
			})
		}
	}

	last := responses[len(responses)-1]
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"instructions": instr,
		"translation": gin.H{
			"original":   last.Original,
			"translated": last.Translated,
			"from":       last.SourceLang,
			"to":         last.TargetLang,
		},
		"compliance": last.Risk,
		"results":    responses,
		"latency_ms": last.TotalLatencyMS,
	})
}

func (h *WebhookHandler) functionUpdate(c *gin.Context, callID string, ev webhookEvent) {
	const op = "WebhookHandler.functionUpdate"

	switch ev.Function {
	case "set_language":
		role := strParam(ev.Parameters, "speaker")
		lang := strings.ToLower(strParam(ev.Parameters, "language"))
		if err := h.sessions.SetLanguage(callID, role, lang); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "language_set",
			"instructions": webhookInstructions{
				Actions: []speakAction{{Type: "speak", Text: "Language updated to " + lang + " for the " + role + "."}},
			},
		})

	case "translate_text":
		text := strings.TrimSpace(strParam(ev.Parameters, "text"))
		if text == "" {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "text is required", nil))
			return
		}
		from := strings.ToLower(strParam(ev.Parameters, "from"))
		to := strings.ToLower(strParam(ev.Parameters, "to"))
		if from == "" || from == "auto" {
			from = langid.Resolve(h.detector, text, "en")
		}
		if to == "" {
			to = models.DefaultTenantLanguage
		}

		translated, err := h.translator.Translate(c.Request.Context(), text, from, to)
		if err != nil {
			h.log.WithError(err).Warn("ad-hoc translation degraded")
		}
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"translation": translated,
			"from":        from,
			"to":          to,
			"instructions": webhookInstructions{
				Actions: []speakAction{{Type: "speak", Text: translated, Context: "translation"}},
			},
		})

	case "check_compliance":
		statement := strings.TrimSpace(strParam(ev.Parameters, "statement"))
		if statement == "" {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "statement is required", nil))
			return
		}
		risk := h.compliance.Assess(c.Request.Context(), statement)
		resp := gin.H{
			"status":     "ok",
			"compliance": risk,
		}
		if risk.Warning != "" {
			resp["instructions"] = webhookInstructions{
				Actions: []speakAction{{Type: "speak", Text: risk.Warning, Context: "compliance"}},
			}
		}
		c.JSON(http.StatusOK, resp)

	case "ask_questions":
		category := strings.ToLower(strParam(ev.Parameters, "category"))
		questions := services.ViewingQuestions(category)
		spoken := questions
		if len(spoken) > 3 {
			spoken = spoken[:3]
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"category":  category,
			"questions": questions,
			"instructions": webhookInstructions{
				Actions: []speakAction{{
					Type:    "speak",
					Text:    "Here are some questions you could ask: " + strings.Join(spoken, " "),
					Context: "questions",
				}},
			},
		})

	default:
		c.JSON(http.StatusOK, gin.H{"status": "unknown_function", "function": ev.Function})
	}
}

func strParam(params map[string]any, key string) string {
	if params == nil {
		return ""
	}
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
