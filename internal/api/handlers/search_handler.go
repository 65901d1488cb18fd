package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/homevisit/internal/services"
	"github.com/yoockh/homevisit/internal/utils"
)

type SearchHandler struct {
	knowledge services.KnowledgeService
}

func NewSearchHandler(knowledge services.KnowledgeService) *SearchHandler {
	return &SearchHandler{knowledge: knowledge}
}

type searchRequest struct {
	Query    string `json:"query"`
	Limit    int    `json:"limit"`
	Category string `json:"category"`
	Risk     string `json:"risk_level"`
}

func (h *SearchHandler) Search(c *gin.Context) {
	const op = "SearchHandler.Search"

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}
	if req.Limit == 0 {
		req.Limit = 5
	}

	results, err := h.knowledge.Search(c.Request.Context(), req.Query, req.Limit, req.Category, req.Risk)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   req.Query,
		"count":   len(results),
		"results": results,
	})
}
