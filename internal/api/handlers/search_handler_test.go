package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/homevisit/internal/models"
	"github.com/yoockh/homevisit/internal/utils"
)

type stubKnowledge struct {
	results []models.SearchResult
	gotQ    string
	gotL    int
}

func (s *stubKnowledge) Search(ctx context.Context, query string, limit int, category, risk string) ([]models.SearchResult, error) {
	s.gotQ = query
	s.gotL = limit
	if strings.TrimSpace(query) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, "stub", "query is required", nil)
	}
	if limit < 1 || limit > 20 {
		return nil, utils.E(utils.CodeInvalidArgument, "stub", "limit out of range", nil)
	}
	return s.results, nil
}

func doJSON(t *testing.T, handler gin.HandlerFunc, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, rd)
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)

	var resp map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
	}
	return w, resp
}

func TestSearch_ReturnsResults(t *testing.T) {
	kb := &stubKnowledge{results: []models.SearchResult{{ID: "r1", Title: "Deposits", Score: 0.92}}}
	h := NewSearchHandler(kb)

	w, resp := doJSON(t, h.Search, http.MethodPost, "/search", gin.H{"query": "deposit limit", "limit": 3})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if kb.gotQ != "deposit limit" || kb.gotL != 3 {
		t.Errorf("service got %q/%d", kb.gotQ, kb.gotL)
	}
	if resp["count"] != float64(1) {
		t.Errorf("count = %v", resp["count"])
	}
}

func TestSearch_DefaultLimit(t *testing.T) {
	kb := &stubKnowledge{}
	h := NewSearchHandler(kb)

	doJSON(t, h.Search, http.MethodPost, "/search", gin.H{"query": "deposit limit"})
	if kb.gotL != 5 {
		t.Errorf("default limit = %d, want 5", kb.gotL)
	}
}

func TestSearch_ValidationErrorsMapTo400(t *testing.T) {
	h := NewSearchHandler(&stubKnowledge{})

	w, resp := doJSON(t, h.Search, http.MethodPost, "/search", gin.H{"query": "", "limit": 3})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if resp["code"] != string(utils.CodeInvalidArgument) {
		t.Errorf("code = %v", resp["code"])
	}
}
