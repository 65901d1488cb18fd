package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/homevisit/internal/models"
	"github.com/yoockh/homevisit/internal/services"
	"github.com/yoockh/homevisit/internal/utils"
)

type stubChat struct {
	answer    string
	citations []models.SearchResult
	err       error
}

func (s *stubChat) Answer(ctx context.Context, messages []services.ChatMessage, maxResults int) (string, []models.SearchResult, error) {
	if s.err != nil {
		return "", nil, s.err
	}
	return s.answer, s.citations, nil
}

func TestChat_ReturnsAnswerWithCitations(t *testing.T) {
	h := NewChatHandler(&stubChat{
		answer:    "Deposits are capped at three months of cold rent.",
		citations: []models.SearchResult{{ID: "r1", Title: "Deposits"}},
	})

	w, resp := doJSON(t, h.Chat, http.MethodPost, "/chat", gin.H{
		"messages": []gin.H{{"role": "user", "content": "How big can the deposit be?"}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if resp["answer"] != "Deposits are capped at three months of cold rent." {
		t.Errorf("answer = %v", resp["answer"])
	}
	citations, _ := resp["citations"].([]any)
	if len(citations) != 1 {
		t.Errorf("citations = %d, want 1", len(citations))
	}
}

func TestChat_ServiceErrorMapped(t *testing.T) {
	h := NewChatHandler(&stubChat{err: utils.E(utils.CodeInvalidArgument, "stub", "no user message provided", nil)})

	w, resp := doJSON(t, h.Chat, http.MethodPost, "/chat", gin.H{"messages": []gin.H{}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if resp["code"] != string(utils.CodeInvalidArgument) {
		t.Errorf("code = %v", resp["code"])
	}
}
