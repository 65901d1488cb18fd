package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/homevisit/internal/models"
	"github.com/yoockh/homevisit/internal/providers/llm"
	"github.com/yoockh/homevisit/internal/utils"
)

// ChatMessage is one turn of a free-form conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// ChatService answers free-form questions grounded on retrieved tenancy
// rules. Without a configured chat model it degrades to a deterministic
// summary of the top citations.
type ChatService interface {
	Answer(ctx context.Context, messages []ChatMessage, maxResults int) (answer string, citations []models.SearchResult, err error)
}

type chatService struct {
	knowledge KnowledgeService
	llm       llm.Provider // nil when no chat model is configured
	log       *logrus.Logger
}

func NewChatService(knowledge KnowledgeService, provider llm.Provider, log *logrus.Logger) ChatService {
	if log == nil {
		log = logrus.New()
	}
	return &chatService{knowledge: knowledge, llm: provider, log: log}
}

const chatSystemPrompt = "You are HomeVisit AI, a rental viewing assistant. " +
	"Answer the user's question with concise, practical guidance. " +
	"Use the provided tenant-law knowledge snippets as authoritative context. " +
	"If the snippets don't contain enough information, say what is missing and ask a clarifying question. " +
	"Do not fabricate legal rules. " +
	"Format your answer as short paragraphs and, when appropriate, a short checklist."

// Only the tail of long conversations goes into the prompt.
const chatHistoryWindow = 12

func (s *chatService) Answer(ctx context.Context, messages []ChatMessage, maxResults int) (string, []models.SearchResult, error) {
	const op = "ChatService.Answer"

	userText := latestUserText(messages)
	if userText == "" {
		return "", nil, utils.E(utils.CodeInvalidArgument, op, "no user message provided", nil)
	}
	if maxResults < 1 || maxResults > 10 {
		maxResults = 4
	}

	citations, err := s.knowledge.Search(ctx, userText, maxResults, "", "")
	if err != nil {
		return "", nil, err
	}

	if s.llm == nil {
		return fallbackAnswer(citations), citations, nil
	}

	chunks, errs := s.llm.StreamAnswer(ctx, s.buildPrompt(messages, citations))

	var full strings.Builder
	for chunk := range chunks {
		full.WriteString(chunk)
	}

	var streamErr error
	select {
	case streamErr = <-errs:
	default:
	}
	if streamErr != nil {
		s.log.WithError(streamErr).Error("chat model stream failed")
		return fallbackAnswer(citations), citations, nil
	}

	return full.String(), citations, nil
}

func (s *chatService) buildPrompt(messages []ChatMessage, citations []models.SearchResult) string {
	var b strings.Builder
	b.WriteString(chatSystemPrompt)
	b.WriteString("\n\nTenant-law knowledge snippets:\n\n")
	for i, c := range citations {
		fmt.Fprintf(&b, "[Snippet %d]\nTitle: %s\nCategory: %s\nRisk: %s\nRule: %s\nExpat implication: %s\n\n",
			i+1, c.Title, c.Category, c.RiskLevel, c.KeyRule, c.ExpatImplication)
	}

	tail := messages
	if len(tail) > chatHistoryWindow {
		tail = tail[len(tail)-chatHistoryWindow:]
	}
	b.WriteString("Conversation:\n")
	for _, m := range tail {
		fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
	}
	b.WriteString("assistant:")
	return b.String()
}

func latestUserText(messages []ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			if text := strings.TrimSpace(messages[i].Content); text != "" {
				return text
			}
		}
	}
	return ""
}

func fallbackAnswer(citations []models.SearchResult) string {
	if len(citations) == 0 {
		return "I could not find tenant-law guidance for that question. Please rephrase or ask about contracts, deposits, rent, repairs, or notice periods."
	}
	var b strings.Builder
	b.WriteString("I found relevant tenant-law guidance, but the chat model is not configured. Here are the top items:\n")
	for _, c := range citations {
		fmt.Fprintf(&b, "\n- %s: %s (risk: %s)\n  %s", c.Title, c.KeyRule, c.RiskLevel, c.ExpatImplication)
	}
	return b.String()
}
