package postgres

import (
	"context"
	"strings"

	"github.com/pgvector/pgvector-go"
	"github.com/yoockh/homevisit/internal/models"
	"gorm.io/gorm"
)

type KnowledgeRepository interface {
	Search(ctx context.Context, vector []float32, limit int, categoryFilter, riskFilter string) ([]models.SearchResult, error)
	Count(ctx context.Context) (int64, error)
}

type knowledgeRepo struct {
	db *gorm.DB
}

func NewKnowledgeRepo(db *gorm.DB) KnowledgeRepository {
	return &knowledgeRepo{db: db}
}

// Search ranks chunks by cosine similarity, descending. Score is
// 1 - cosine distance so it lines up with the compliance thresholds.
func (r *knowledgeRepo) Search(ctx context.Context, vector []float32, limit int, categoryFilter, riskFilter string) ([]models.SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}
	vec := pgvector.NewVector(vector)

	sql := `SELECT id, title, category, key_rule, expat_implication, risk_level, source_document,
	1 - (embedding <=> ?) AS score FROM knowledge_chunks`
	args := []any{vec}

	var conds []string
	if categoryFilter != "" {
		conds = append(conds, "category = ?")
		args = append(args, categoryFilter)
	}
	if riskFilter != "" {
		conds = append(conds, "risk_level = ?")
		args = append(args, riskFilter)
	}
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	sql += " ORDER BY embedding <=> ? LIMIT ?"
	args = append(args, vec, limit)

	var rows []models.SearchResult
	if err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *knowledgeRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.KnowledgeChunk{}).Count(&n).Error
	return n, err
}
