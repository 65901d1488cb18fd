package models

import (
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// KnowledgeChunk is one curated tenancy-law rule. Rows are written by the
// out-of-band ingestion tooling; the pipeline only reads, ranks, and filters
// them.
type KnowledgeChunk struct {
	ID               string `gorm:"column:id;type:text;primaryKey" json:"id"`
	Title            string `gorm:"column:title;type:text" json:"title"`
	Category         string `gorm:"column:category;type:text;index" json:"category"`
	KeyRule          string `gorm:"column:key_rule;type:text" json:"key_rule"`
	ExpatImplication string `gorm:"column:expat_implication;type:text" json:"expat_implication"`
	RiskLevel        string `gorm:"column:risk_level;type:text;index" json:"risk_level"`
	SourceDocument   string `gorm:"column:source_document;type:text" json:"source_document"`

	Keywords pq.StringArray `gorm:"column:keywords;type:text[]" json:"keywords,omitempty"`

	// JSONB (save as raw JSON, structure fleksibel)
	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`

	// pgvector
	Embedding pgvector.Vector `gorm:"column:embedding;type:vector(768)" json:"-"`
}

func (KnowledgeChunk) TableName() string { return "knowledge_chunks" }

// SearchResult is one scored chunk returned from a knowledge search,
// shaped for the wire.
type SearchResult struct {
	Score            float64 `json:"score"`
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Category         string  `json:"category"`
	KeyRule          string  `json:"key_rule"`
	ExpatImplication string  `json:"expat_implication"`
	RiskLevel        string  `json:"risk_level"`
	SourceDocument   string  `json:"source_document"`
}
