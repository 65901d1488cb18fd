package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/homevisit/internal/models"
	"github.com/yoockh/homevisit/internal/utils"
)

// SessionService owns all per-call state. Sessions are created implicitly on
// first use, serialized per session, and expired either explicitly at call
// end or by the idle sweeper. Different sessions never contend on one lock.
type SessionService interface {
	GetOrCreate(sessionID string) models.CallSession
	Update(sessionID string, fn func(*models.CallSession))
	Snapshot(sessionID string) (models.CallSession, bool)
	SetLanguage(sessionID, role, lang string) error
	Expire(sessionID string)
	Len() int
	StartSweeper(ctx context.Context, interval time.Duration)
}

type sessionEntry struct {
	mu sync.Mutex
	s  *models.CallSession
}

type sessionService struct {
	mu      sync.RWMutex
	entries map[string]*sessionEntry
	ttl     time.Duration
	log     *logrus.Logger
}

func NewSessionService(ttl time.Duration, log *logrus.Logger) SessionService {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if log == nil {
		log = logrus.New()
	}
	return &sessionService{
		entries: make(map[string]*sessionEntry),
		ttl:     ttl,
		log:     log,
	}
}

func (s *sessionService) entry(sessionID string) *sessionEntry {
	s.mu.RLock()
	e, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[sessionID]; ok {
		return e
	}
	now := time.Now().UTC()
	e = &sessionEntry{s: &models.CallSession{
		SessionID: sessionID,
		Languages: map[string]string{
			models.RoleLandlord: models.DefaultLandlordLanguage,
			models.RoleTenant:   models.DefaultTenantLanguage,
		},
		CreatedAt: now,
		LastSeen:  now,
	}}
	s.entries[sessionID] = e
	return e
}

func (s *sessionService) GetOrCreate(sessionID string) models.CallSession {
	snap, _ := s.withSession(sessionID, nil)
	return snap
}

// Update runs fn with exclusive access to the session, creating it first if
// needed.
func (s *sessionService) Update(sessionID string, fn func(*models.CallSession)) {
	s.withSession(sessionID, fn)
}

func (s *sessionService) withSession(sessionID string, fn func(*models.CallSession)) (models.CallSession, bool) {
	e := s.entry(sessionID)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.s.LastSeen = time.Now().UTC()
	if fn != nil {
		fn(e.s)
	}
	return snapshotOf(e.s), true
}

func (s *sessionService) Snapshot(sessionID string) (models.CallSession, bool) {
	s.mu.RLock()
	e, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if !ok {
		return models.CallSession{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshotOf(e.s), true
}

func (s *sessionService) SetLanguage(sessionID, role, lang string) error {
	const op = "SessionService.SetLanguage"

	if role != models.RoleLandlord && role != models.RoleTenant {
		return utils.E(utils.CodeInvalidArgument, op, "speaker must be landlord or tenant", nil)
	}
	if lang == "" {
		return utils.E(utils.CodeInvalidArgument, op, "language is required", nil)
	}
	s.Update(sessionID, func(cs *models.CallSession) {
		cs.Languages[role] = lang
	})
	return nil
}

func (s *sessionService) Expire(sessionID string) {
	s.mu.Lock()
	delete(s.entries, sessionID)
	s.mu.Unlock()
}

func (s *sessionService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// StartSweeper expires sessions idle longer than the TTL. It returns when
// ctx is done.
func (s *sessionService) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.sweep()
			}
		}
	}()
}

func (s *sessionService) sweep() {
	cutoff := time.Now().UTC().Add(-s.ttl)
	var stale []string

	s.mu.RLock()
	for id, e := range s.entries {
		e.mu.Lock()
		if e.s.LastSeen.Before(cutoff) {
			stale = append(stale, id)
		}
		e.mu.Unlock()
	}
	s.mu.RUnlock()

	if len(stale) == 0 {
		return
	}
	s.mu.Lock()
	for _, id := range stale {
		delete(s.entries, id)
	}
	s.mu.Unlock()
	s.log.WithField("expired", len(stale)).Debug("session sweep")
}

func snapshotOf(cs *models.CallSession) models.CallSession {
	out := *cs
	out.Languages = make(map[string]string, len(cs.Languages))
	for k, v := range cs.Languages {
		out.Languages[k] = v
	}
	return out
}
