package models

import "time"

// Speaker roles within a viewing call.
const (
	RoleLandlord = "landlord"
	RoleTenant   = "tenant"
)

// Default language assignments for a freshly created call.
const (
	DefaultLandlordLanguage = "de"
	DefaultTenantLanguage   = "en"
)

// CallSession is the per-call state: language assignments per speaker role
// and the running transcript buffer waiting for a sentence boundary.
// The session service owns every instance; other components read and write
// only through it.
type CallSession struct {
	SessionID string            `json:"session_id"`
	Languages map[string]string `json:"languages"` // role -> ISO 639-1 code
	Buffer    string            `json:"-"`
	CreatedAt time.Time         `json:"created_at"`
	LastSeen  time.Time         `json:"last_seen"`

	Utterances int64 `json:"utterances"`
}

// LanguagesFor resolves the source/target pair for a speaker role,
// falling back to the defaults when the role was never assigned.
func (s *CallSession) LanguagesFor(role string) (source, target string) {
	landlord := s.Languages[RoleLandlord]
	if landlord == "" {
		landlord = DefaultLandlordLanguage
	}
	tenant := s.Languages[RoleTenant]
	if tenant == "" {
		tenant = DefaultTenantLanguage
	}
	if role == RoleLandlord {
		return landlord, tenant
	}
	return tenant, landlord
}
