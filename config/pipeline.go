package config

import (
	"os"
	"strconv"
	"time"
)

// PipelineSettings are the orchestration tunables. Everything has a default;
// operators override via environment variables.
type PipelineSettings struct {
	// CacheSize bounds the in-process translation cache (entries).
	CacheSize int
	// CacheTTL applies to the shared Redis cache layer, when configured.
	CacheTTL time.Duration
	// BackendTimeout caps a single translation backend attempt.
	BackendTimeout time.Duration
	// BranchTimeout caps each of the translation/compliance branches per
	// utterance. Exceeding it degrades that branch, never the sibling.
	BranchTimeout time.Duration
	// LatencyBudget is the soft per-utterance target. Missing it is
	// reported, not enforced.
	LatencyBudget time.Duration
	// SessionTTL is the idle lifetime of a call session before the
	// sweeper expires it.
	SessionTTL time.Duration
}

var Pipeline PipelineSettings

func InitPipeline() {
	Pipeline = PipelineSettings{
		CacheSize:      envInt("TRANSLATION_CACHE_SIZE", 1000),
		CacheTTL:       envDuration("TRANSLATION_CACHE_TTL", 24*time.Hour),
		BackendTimeout: envDuration("TRANSLATE_BACKEND_TIMEOUT", 2*time.Second),
		BranchTimeout:  envDuration("PIPELINE_BRANCH_TIMEOUT", 2500*time.Millisecond),
		LatencyBudget:  envDuration("PIPELINE_LATENCY_BUDGET", 300*time.Millisecond),
		SessionTTL:     envDuration("SESSION_TTL", 30*time.Minute),
	}
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
