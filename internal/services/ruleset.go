package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/yoockh/homevisit/internal/models"
)

// RiskRule maps a literal lower-case pattern to a risk level. The table is
// ordered: the first matching rule wins, so red-flag rules come first.
type RiskRule struct {
	Pattern string `json:"pattern"`
	Level   string `json:"level"`
}

// LoadRiskRules reads a JSON rule table. An empty path yields the built-in
// table. The rule set is curated data, not logic: operators can replace it
// without redeploying (RISK_RULES_PATH).
func LoadRiskRules(path string) ([]RiskRule, error) {
	if path == "" {
		return DefaultRiskRules(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rules []RiskRule
	if err := json.Unmarshal(b, &rules); err != nil {
		return nil, err
	}
	for i := range rules {
		rules[i].Pattern = strings.ToLower(strings.TrimSpace(rules[i].Pattern))
		if rules[i].Pattern == "" {
			return nil, fmt.Errorf("risk rule %d: empty pattern", i)
		}
		switch rules[i].Level {
		case models.RiskRedFlag, models.RiskCaution:
		default:
			return nil, fmt.Errorf("risk rule %d: unknown level %q", i, rules[i].Level)
		}
	}
	return rules, nil
}

// DefaultRiskRules carries the stock German tenancy-law literals in both
// English and German phrasing.
func DefaultRiskRules() []RiskRule {
	return []RiskRule{
		{Pattern: "6 months", Level: models.RiskRedFlag},
		{Pattern: "6 monate", Level: models.RiskRedFlag},
		{Pattern: "sechs monate", Level: models.RiskRedFlag},
		{Pattern: "deposit more than", Level: models.RiskRedFlag},
		{Pattern: "no notice", Level: models.RiskRedFlag},
		{Pattern: "sofort", Level: models.RiskRedFlag},
		{Pattern: "immediate eviction", Level: models.RiskRedFlag},
		{Pattern: "cash only", Level: models.RiskRedFlag},
		{Pattern: "bar nur", Level: models.RiskRedFlag},
		{Pattern: "no contract", Level: models.RiskRedFlag},
		{Pattern: "kein vertrag", Level: models.RiskRedFlag},
		{Pattern: "illegal fee", Level: models.RiskRedFlag},
		{Pattern: "additional fees", Level: models.RiskCaution},
		{Pattern: "sondergebühren", Level: models.RiskCaution},
		{Pattern: "non-refundable", Level: models.RiskCaution},
		{Pattern: "nicht erstattungsfähig", Level: models.RiskCaution},
	}
}

// WarningFor derives the user-facing warning purely from the risk level.
func WarningFor(level string) string {
	switch level {
	case models.RiskRedFlag:
		return "WARNING: This may violate tenant protection laws. Please verify before agreeing."
	case models.RiskCaution:
		return "CAUTION: This requires clarification. Ask for written confirmation."
	}
	return ""
}
