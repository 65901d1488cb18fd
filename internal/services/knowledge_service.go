package services

import (
	"context"
	"strings"

	"github.com/yoockh/homevisit/internal/models"
	"github.com/yoockh/homevisit/internal/providers/embedding"
	pgrepo "github.com/yoockh/homevisit/internal/repositories/postgres"
	"github.com/yoockh/homevisit/internal/utils"
)

// KnowledgeService is the search surface over the tenancy-law knowledge
// base: embed the query, rank chunks by similarity, optionally filter by
// category or risk level.
type KnowledgeService interface {
	Search(ctx context.Context, query string, limit int, category, risk string) ([]models.SearchResult, error)
}

type knowledgeService struct {
	chunks   pgrepo.KnowledgeRepository
	embedder embedding.Embedder
}

func NewKnowledgeService(chunks pgrepo.KnowledgeRepository, embedder embedding.Embedder) KnowledgeService {
	return &knowledgeService{chunks: chunks, embedder: embedder}
}

func (s *knowledgeService) Search(ctx context.Context, query string, limit int, category, risk string) ([]models.SearchResult, error) {
	const op = "KnowledgeService.Search"

	if strings.TrimSpace(query) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "query is required", nil)
	}
	if limit < 1 || limit > 20 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "limit must be between 1 and 20", nil)
	}

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to embed query", err)
	}

	rows, err := s.chunks.Search(ctx, vec, limit, category, risk)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to search knowledge base", err)
	}
	return rows, nil
}
