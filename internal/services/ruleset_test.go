package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yoockh/homevisit/internal/models"
)

func TestLoadRiskRules_EmptyPathUsesDefaults(t *testing.T) {
	t.Parallel()

	rules, err := LoadRiskRules("")
	if err != nil {
		t.Fatalf("LoadRiskRules failed: %v", err)
	}
	if len(rules) == 0 {
		t.Fatal("default rule table is empty")
	}
	// Red flags must precede cautions so first-match-wins stays severe.
	sawCaution := false
	for _, r := range rules {
		if r.Level == models.RiskCaution {
			sawCaution = true
		}
		if sawCaution && r.Level == models.RiskRedFlag {
			t.Fatalf("red flag rule %q after caution rules", r.Pattern)
		}
	}
}

func TestLoadRiskRules_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rules.json")
	body := `[{"pattern":"  Zehn Monate ","level":"red flag"},{"pattern":"extra charge","level":"caution"}]`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	rules, err := LoadRiskRules(path)
	if err != nil {
		t.Fatalf("LoadRiskRules failed: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("rules = %d, want 2", len(rules))
	}
	if rules[0].Pattern != "zehn monate" {
		t.Errorf("pattern not normalized: %q", rules[0].Pattern)
	}
}

func TestLoadRiskRules_RejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte(`[{"pattern":"x","level":"panic"}]`), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	if _, err := LoadRiskRules(path); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
