package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yoockh/homevisit/internal/models"
	"github.com/yoockh/homevisit/internal/utils"
)

type fakeEmbedder struct {
	vec []float32
	err error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vec, nil
}

type fakeChunkRepo struct {
	results  []models.SearchResult
	err      error
	category string
	risk     string
}

func (f *fakeChunkRepo) Search(ctx context.Context, vector []float32, limit int, categoryFilter, riskFilter string) ([]models.SearchResult, error) {
	f.category = categoryFilter
	f.risk = riskFilter
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeChunkRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.results)), nil
}

func TestKnowledgeSearch_ValidatesInput(t *testing.T) {
	t.Parallel()

	svc := NewKnowledgeService(&fakeChunkRepo{}, &fakeEmbedder{vec: []float32{0.1}})

	cases := []struct {
		name  string
		query string
		limit int
	}{
		{"empty query", "  ", 5},
		{"limit too small", "deposits", 0},
		{"limit too large", "deposits", 21},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Search(context.Background(), tc.query, tc.limit, "", "")
			var ae *utils.AppError
			if !errors.As(err, &ae) || ae.Code != utils.CodeInvalidArgument {
				t.Errorf("error = %v, want INVALID_ARGUMENT", err)
			}
		})
	}
}

func TestKnowledgeSearch_PropagatesFilters(t *testing.T) {
	t.Parallel()

	repo := &fakeChunkRepo{results: []models.SearchResult{{ID: "r1"}}}
	svc := NewKnowledgeService(repo, &fakeEmbedder{vec: []float32{0.1}})

	rows, err := svc.Search(context.Background(), "deposit limits", 5, "deposits", models.RiskRedFlag)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("rows = %d, want 1", len(rows))
	}
	if repo.category != "deposits" || repo.risk != models.RiskRedFlag {
		t.Errorf("filters = %q/%q", repo.category, repo.risk)
	}
}

func TestKnowledgeSearch_EmbedFailureIsUnavailable(t *testing.T) {
	t.Parallel()

	svc := NewKnowledgeService(&fakeChunkRepo{}, &fakeEmbedder{err: errors.New("api down")})

	_, err := svc.Search(context.Background(), "deposits", 5, "", "")
	var ae *utils.AppError
	if !errors.As(err, &ae) || ae.Code != utils.CodeUnavailable {
		t.Errorf("error = %v, want UNAVAILABLE", err)
	}
}
