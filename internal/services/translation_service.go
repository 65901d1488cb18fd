package services

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/homevisit/internal/cache"
	"github.com/yoockh/homevisit/internal/providers/translate"
	"github.com/yoockh/homevisit/internal/utils"
)

// TranslationService fronts the backend chain with a two-level cache.
// Translate always returns usable text: when every backend fails it hands
// back the input unchanged alongside an UNAVAILABLE error, and nothing is
// cached.
type TranslationService interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
	CacheLen() int
}

type translationService struct {
	backends  []translate.Backend
	memory    *cache.TranslationCache
	shared    cache.Cache // optional, nil when Redis is not configured
	sharedTTL time.Duration
	attempt   time.Duration
	log       *logrus.Logger
}

func NewTranslationService(backends []translate.Backend, memory *cache.TranslationCache, shared cache.Cache, sharedTTL, attemptTimeout time.Duration, log *logrus.Logger) TranslationService {
	if attemptTimeout <= 0 {
		attemptTimeout = 2 * time.Second
	}
	if log == nil {
		log = logrus.New()
	}
	return &translationService{
		backends:  backends,
		memory:    memory,
		shared:    shared,
		sharedTTL: sharedTTL,
		attempt:   attemptTimeout,
		log:       log,
	}
}

func (s *translationService) CacheLen() int { return s.memory.Len() }

func (s *translationService) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	const op = "TranslationService.Translate"

	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	src := strings.ToLower(strings.TrimSpace(sourceLang))
	tgt := strings.ToLower(strings.TrimSpace(targetLang))

	// Same-language translation is a no-op: no cache, no backends.
	if src == tgt {
		return text, nil
	}

	key := cache.TranslationKey(text, src, tgt)
	if hit, ok := s.memory.Get(key); ok {
		return hit, nil
	}
	if s.shared != nil {
		var hit string
		if ok, err := s.shared.GetJSON(ctx, key, &hit); err == nil && ok && hit != "" {
			s.memory.Add(key, hit)
			return hit, nil
		}
	}

	var lastErr error
	for _, backend := range s.backends {
		attemptCtx, cancel := context.WithTimeout(ctx, s.attempt)
		out, err := backend.Translate(attemptCtx, text, src, tgt)
		cancel()
		if err != nil {
			lastErr = err
			s.log.WithError(err).WithField("backend", backend.Name()).Debug("translation backend failed")
			continue
		}

		s.memory.Add(key, out)
		if s.shared != nil {
			if err := s.shared.SetJSON(ctx, key, out, s.sharedTTL); err != nil {
				s.log.WithError(err).Debug("shared translation cache write failed")
			}
		}
		return out, nil
	}

	// Every backend failed: degrade to the original text, uncached.
	return text, utils.E(utils.CodeUnavailable, op, "all translation backends failed", lastErr)
}
