package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/homevisit/internal/pipeline"
	"github.com/yoockh/homevisit/internal/services"
)

type MetricsHandler struct {
	metrics    *pipeline.MetricsRecorder
	translator services.TranslationService
	sessions   services.SessionService
}

func NewMetricsHandler(metrics *pipeline.MetricsRecorder, translator services.TranslationService, sessions services.SessionService) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, translator: translator, sessions: sessions}
}

func (h *MetricsHandler) Metrics(c *gin.Context) {
	snap := h.metrics.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"stages":                 snap.Stages,
		"utterances":             snap.Utterances,
		"budget_misses":          snap.BudgetMisses,
		"translation_cache_size": h.translator.CacheLen(),
		"active_sessions":        h.sessions.Len(),
	})
}
