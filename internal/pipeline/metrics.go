package pipeline

import (
	"sync"
	"time"
)

// Pipeline stages tracked by the recorder.
const (
	StageTranslation = "translation"
	StageCompliance  = "compliance"
	StageTotal       = "total"
)

type stageStats struct {
	count   int64
	totalMS int64
	maxMS   int64
	lastMS  int64
}

// StageSnapshot is the wire form of one stage's aggregates.
type StageSnapshot struct {
	Count  int64   `json:"count"`
	AvgMS  float64 `json:"avg_ms"`
	MaxMS  int64   `json:"max_ms"`
	LastMS int64   `json:"last_ms"`
}

// MetricsSnapshot is the /metrics payload.
type MetricsSnapshot struct {
	Stages       map[string]StageSnapshot `json:"stages"`
	Utterances   int64                    `json:"utterances_processed"`
	BudgetMisses int64                    `json:"budget_misses"`
}

// MetricsRecorder aggregates per-stage latency samples. Safe for concurrent
// use.
type MetricsRecorder struct {
	mu           sync.Mutex
	stages       map[string]*stageStats
	utterances   int64
	budgetMisses int64
}

func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{stages: make(map[string]*stageStats)}
}

func (m *MetricsRecorder) Observe(stage string, d time.Duration) {
	ms := d.Milliseconds()
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.stages[stage]
	if st == nil {
		st = &stageStats{}
		m.stages[stage] = st
	}
	st.count++
	st.totalMS += ms
	st.lastMS = ms
	if ms > st.maxMS {
		st.maxMS = ms
	}
}

func (m *MetricsRecorder) IncUtterances() {
	m.mu.Lock()
	m.utterances++
	m.mu.Unlock()
}

func (m *MetricsRecorder) IncBudgetMisses() {
	m.mu.Lock()
	m.budgetMisses++
	m.mu.Unlock()
}

func (m *MetricsRecorder) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := MetricsSnapshot{
		Stages:       make(map[string]StageSnapshot, len(m.stages)),
		Utterances:   m.utterances,
		BudgetMisses: m.budgetMisses,
	}
	for name, st := range m.stages {
		snap := StageSnapshot{Count: st.count, MaxMS: st.maxMS, LastMS: st.lastMS}
		if st.count > 0 {
			snap.AvgMS = float64(st.totalMS) / float64(st.count)
		}
		out.Stages[name] = snap
	}
	return out
}
