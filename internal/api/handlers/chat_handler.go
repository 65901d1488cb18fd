package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/homevisit/internal/services"
	"github.com/yoockh/homevisit/internal/utils"
)

type ChatHandler struct {
	chat services.ChatService
}

func NewChatHandler(chat services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type chatRequest struct {
	Messages   []services.ChatMessage `json:"messages"`
	MaxResults int                    `json:"max_results"`
}

func (h *ChatHandler) Chat(c *gin.Context) {
	const op = "ChatHandler.Chat"

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}

	answer, citations, err := h.chat.Answer(c.Request.Context(), req.Messages, req.MaxResults)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answer":    answer,
		"citations": citations,
	})
}
