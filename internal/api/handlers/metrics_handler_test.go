package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/yoockh/homevisit/internal/pipeline"
	"github.com/yoockh/homevisit/internal/services"
)

func TestMetrics_ReportsStagesAndGauges(t *testing.T) {
	rec := pipeline.NewMetricsRecorder()
	rec.IncUtterances()
	rec.Observe(pipeline.StageTranslation, 40*time.Millisecond)
	rec.Observe(pipeline.StageTotal, 90*time.Millisecond)

	sessions := services.NewSessionService(time.Minute, nil)
	sessions.GetOrCreate("call-1")

	h := NewMetricsHandler(rec, stubTranslator{}, sessions)

	w, resp := doJSON(t, h.Metrics, http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if resp["utterances"] != float64(1) {
		t.Errorf("utterances = %v", resp["utterances"])
	}
	if resp["active_sessions"] != float64(1) {
		t.Errorf("active_sessions = %v", resp["active_sessions"])
	}
	stages, ok := resp["stages"].(map[string]any)
	if !ok {
		t.Fatalf("stages missing: %v", resp)
	}
	if _, ok := stages[pipeline.StageTranslation]; !ok {
		t.Errorf("translation stage missing: %v", stages)
	}
}
