package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/yoockh/homevisit/config"
	"github.com/yoockh/homevisit/internal/api/handlers"
	"github.com/yoockh/homevisit/internal/api/middleware"
	"github.com/yoockh/homevisit/internal/api/routes"
	"github.com/yoockh/homevisit/internal/cache"
	"github.com/yoockh/homevisit/internal/logger"
	"github.com/yoockh/homevisit/internal/pipeline"
	"github.com/yoockh/homevisit/internal/providers/embedding"
	"github.com/yoockh/homevisit/internal/providers/langid"
	"github.com/yoockh/homevisit/internal/providers/llm"
	"github.com/yoockh/homevisit/internal/providers/stt"
	"github.com/yoockh/homevisit/internal/providers/translate"
	pgrepo "github.com/yoockh/homevisit/internal/repositories/postgres"
	"github.com/yoockh/homevisit/internal/services"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	ctx := context.Background()

	config.InitPipeline()

	// PostgreSQL holds the tenancy-law knowledge base; nothing works without it.
	if err := config.InitPostgres(); err != nil {
		log.WithError(err).Fatal("PostgreSQL init error")
	}
	log.Info("PostgreSQL connected")

	// Redis is the optional shared translation cache tier.
	var sharedCache cache.Cache
	if config.RedisConfigured() {
		if err := config.InitRedis(); err != nil {
			log.WithError(err).Fatal("Redis init error")
		}
		sharedCache = cache.NewRedisCache(config.RedisClient, "translation")
		log.Info("Redis connected")
	} else {
		log.Info("Redis not configured, using in-process cache only")
	}

	// Embeddings back both semantic compliance and /search.
	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		log.Fatal("GEMINI_API_KEY is required")
	}
	embedder := embedding.NewGemini(geminiKey, os.Getenv("GEMINI_EMBED_MODEL"))

	// Translation backends in fallback order. The phrasebook is always last
	// so a cold install without API keys still answers known phrases.
	var backends []translate.Backend
	if key := os.Getenv("DEEPL_API_KEY"); key != "" {
		backends = append(backends, translate.NewDeepL(key))
	}
	if key := os.Getenv("GOOGLE_TRANSLATE_API_KEY"); key != "" {
		backends = append(backends, translate.NewGoogleTranslate(key))
	}
	dict, err := translate.LoadDictionary(os.Getenv("PHRASEBOOK_PATH"))
	if err != nil {
		log.WithError(err).Fatal("phrasebook load error")
	}
	backends = append(backends, dict)

	memCache, err := cache.NewTranslationCache(config.Pipeline.CacheSize)
	if err != nil {
		log.WithError(err).Fatal("translation cache init error")
	}

	rules, err := services.LoadRiskRules(os.Getenv("RISK_RULES_PATH"))
	if err != nil {
		log.WithError(err).Fatal("risk rules load error")
	}

	// Vertex LLM (chat answers) and Google STT (websocket audio) are optional.
	var provider llm.Provider
	if project := os.Getenv("GCP_PROJECT_ID"); project != "" {
		model := os.Getenv("GEMINI_MODEL")
		if model == "" {
			model = "gemini-1.5-flash"
		}
		vg, err := llm.NewVertexGemini(ctx, project, os.Getenv("GCP_LOCATION"), model)
		if err != nil {
			log.WithError(err).Warn("Vertex init failed, chat falls back to citations")
		} else {
			defer vg.Close()
			provider = vg
		}
	}

	var speech stt.Provider
	if os.Getenv("ENABLE_SPEECH_TO_TEXT") == "true" {
		gs, err := stt.NewGoogleSpeech(ctx)
		if err != nil {
			log.WithError(err).Warn("Speech-to-Text init failed, audio streaming disabled")
		} else {
			defer gs.Close()
			speech = gs
		}
	}

	knowledgeRepo := pgrepo.NewKnowledgeRepo(config.PostgresDB)
	knowledge := services.NewKnowledgeService(knowledgeRepo, embedder)
	compliance := services.NewComplianceService(rules, knowledge, log)
	translator := services.NewTranslationService(backends, memCache, sharedCache, config.Pipeline.CacheTTL, config.Pipeline.BackendTimeout, log)
	sessions := services.NewSessionService(config.Pipeline.SessionTTL, log)
	chat := services.NewChatService(knowledge, provider, log)

	sessions.StartSweeper(ctx, config.Pipeline.SessionTTL/2)

	metrics := pipeline.NewMetricsRecorder()
	segmenter := pipeline.NewSegmenter(sessions)
	orch := pipeline.NewOrchestrator(segmenter, translator, compliance, metrics, log, config.Pipeline.BranchTimeout, config.Pipeline.LatencyBudget)

	detector := langid.New()

	backendNames := make([]string, 0, len(backends))
	for _, b := range backends {
		backendNames = append(backendNames, b.Name())
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Webhook: handlers.NewWebhookHandler(sessions, orch, translator, compliance, detector, log),
		Search:  handlers.NewSearchHandler(knowledge),
		Chat:    handlers.NewChatHandler(chat),
		Metrics: handlers.NewMetricsHandler(metrics, translator, sessions),
		WS:      handlers.NewWSHandler(orch, sessions, speech, log),
		Health: handlers.NewHealthHandler(handlers.HealthStatus{
			Postgres:            true,
			Redis:               sharedCache != nil,
			TranslationBackends: backendNames,
			LLM:                 provider != nil,
			STT:                 speech != nil,
		}),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("server listening")
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
