package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/homevisit/internal/models"
)

// Semantic tier tuning. Scores are cosine similarities in 0..1.
const (
	semanticLimit        = 3
	redFlagScoreCutoff   = 0.85
	cautionScoreCutoff   = 0.70
	semanticRiskFilterBy = models.RiskRedFlag
)

// ComplianceService evaluates an utterance against the tenancy-law rule set.
// Assess never fails: knowledge-store trouble degrades to a normal-risk
// assessment with no citations.
type ComplianceService interface {
	Assess(ctx context.Context, text string) models.RiskAssessment
}

type complianceService struct {
	rules     []RiskRule
	knowledge KnowledgeService
	log       *logrus.Logger
}

func NewComplianceService(rules []RiskRule, knowledge KnowledgeService, log *logrus.Logger) ComplianceService {
	if log == nil {
		log = logrus.New()
	}
	return &complianceService{rules: rules, knowledge: knowledge, log: log}
}

func (s *complianceService) Assess(ctx context.Context, text string) models.RiskAssessment {
	lower := strings.ToLower(text)

	// Fast tier: ordered literal table, first match wins. No I/O here.
	for _, rule := range s.rules {
		if strings.Contains(lower, rule.Pattern) {
			return models.RiskAssessment{
				RiskLevel:      rule.Level,
				MatchedPattern: rule.Pattern,
				Warning:        WarningFor(rule.Level),
			}
		}
	}

	// Semantic tier: similarity against the red-flag subset.
	if s.knowledge == nil {
		return models.RiskAssessment{RiskLevel: models.RiskNormal}
	}
	chunks, err := s.knowledge.Search(ctx, text, semanticLimit, "", semanticRiskFilterBy)
	if err != nil {
		s.log.WithError(err).Warn("semantic compliance lookup failed")
		return models.RiskAssessment{RiskLevel: models.RiskNormal}
	}

	level := models.RiskNormal
	for _, c := range chunks {
		if c.Score > redFlagScoreCutoff {
			level = models.RiskRedFlag
			break
		}
		if c.Score > cautionScoreCutoff {
			level = models.RiskCaution
		}
	}

	return models.RiskAssessment{
		RiskLevel:     level,
		RelatedChunks: chunks,
		Warning:       WarningFor(level),
	}
}
