package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthStatus reports which optional integrations came up at boot.
type HealthStatus struct {
	Postgres            bool     `json:"postgres"`
	Redis               bool     `json:"redis"`
	TranslationBackends []string `json:"translation_backends"`
	LLM                 bool     `json:"llm"`
	STT                 bool     `json:"stt"`
}

type HealthHandler struct {
	status HealthStatus
}

func NewHealthHandler(status HealthStatus) *HealthHandler {
	return &HealthHandler{status: status}
}

func (h *HealthHandler) Health(c *gin.Context) {
	overall := "healthy"
	if !h.status.Postgres || len(h.status.TranslationBackends) == 0 {
		overall = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   overall,
		"services": h.status,
	})
}
