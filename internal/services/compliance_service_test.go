package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yoockh/homevisit/internal/models"
)

type fakeKnowledge struct {
	results []models.SearchResult
	err     error
	queries []string
}

func (f *fakeKnowledge) Search(ctx context.Context, query string, limit int, category, risk string) ([]models.SearchResult, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func TestAssess_LiteralRedFlag(t *testing.T) {
	t.Parallel()

	svc := NewComplianceService(DefaultRiskRules(), &fakeKnowledge{}, nil)

	got := svc.Assess(context.Background(), "The deposit is 6 months of rent.")
	if got.RiskLevel != models.RiskRedFlag {
		t.Fatalf("risk = %q, want red flag", got.RiskLevel)
	}
	if got.MatchedPattern != "6 months" {
		t.Errorf("matched pattern = %q", got.MatchedPattern)
	}
	if got.Warning == "" {
		t.Error("red flag must carry a warning")
	}
}

func TestAssess_GermanLiteral(t *testing.T) {
	t.Parallel()

	svc := NewComplianceService(DefaultRiskRules(), &fakeKnowledge{}, nil)

	got := svc.Assess(context.Background(), "Die Kaution beträgt 6 Monate Miete.")
	if got.RiskLevel != models.RiskRedFlag {
		t.Fatalf("risk = %q, want red flag", got.RiskLevel)
	}
	if got.MatchedPattern != "6 monate" {
		t.Errorf("matched pattern = %q, want %q", got.MatchedPattern, "6 monate")
	}
}

func TestAssess_FirstMatchWins(t *testing.T) {
	t.Parallel()

	rules := []RiskRule{
		{Pattern: "deposit", Level: models.RiskRedFlag},
		{Pattern: "deposit amount", Level: models.RiskCaution},
	}
	svc := NewComplianceService(rules, &fakeKnowledge{}, nil)

	got := svc.Assess(context.Background(), "What is the deposit amount?")
	if got.RiskLevel != models.RiskRedFlag {
		t.Errorf("risk = %q, first rule in table order must win", got.RiskLevel)
	}
	if got.MatchedPattern != "deposit" {
		t.Errorf("matched pattern = %q", got.MatchedPattern)
	}
}

func TestAssess_LiteralTierSkipsKnowledgeStore(t *testing.T) {
	t.Parallel()

	kb := &fakeKnowledge{}
	svc := NewComplianceService(DefaultRiskRules(), kb, nil)

	svc.Assess(context.Background(), "Payment is cash only here.")
	if len(kb.queries) != 0 {
		t.Errorf("knowledge store queried %d times on a literal match", len(kb.queries))
	}
}

func TestAssess_SemanticThresholds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		score float64
		want  string
	}{
		{"above red flag cutoff", 0.90, models.RiskRedFlag},
		{"between cutoffs", 0.75, models.RiskCaution},
		{"below caution cutoff", 0.50, models.RiskNormal},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			kb := &fakeKnowledge{results: []models.SearchResult{{ID: "r1", Score: tc.score, RiskLevel: models.RiskRedFlag}}}
			svc := NewComplianceService(nil, kb, nil)

			got := svc.Assess(context.Background(), "Something unusual about the agreement.")
			if got.RiskLevel != tc.want {
				t.Errorf("risk = %q, want %q", got.RiskLevel, tc.want)
			}
			if len(got.RelatedChunks) != 1 {
				t.Errorf("related chunks = %d, want 1", len(got.RelatedChunks))
			}
		})
	}
}

func TestAssess_StoreFailureDegradesToNormal(t *testing.T) {
	t.Parallel()

	kb := &fakeKnowledge{err: errors.New("store down")}
	svc := NewComplianceService(nil, kb, nil)

	got := svc.Assess(context.Background(), "Anything at all.")
	if got.RiskLevel != models.RiskNormal {
		t.Errorf("risk = %q, want normal on store failure", got.RiskLevel)
	}
	if got.Warning != "" {
		t.Errorf("degraded assessment carried warning %q", got.Warning)
	}
}

func TestWarningFor(t *testing.T) {
	t.Parallel()

	if WarningFor(models.RiskNormal) != "" {
		t.Error("normal risk must not warn")
	}
	if WarningFor(models.RiskCaution) == "" {
		t.Error("caution must warn")
	}
	if WarningFor(models.RiskRedFlag) == "" {
		t.Error("red flag must warn")
	}
}
