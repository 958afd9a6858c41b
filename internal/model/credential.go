package model

import "time"

// CredentialKind distinguishes API keys from authorized domains.
type CredentialKind string

const (
	CredentialKindKey    CredentialKind = "key"
	CredentialKindDomain CredentialKind = "domain"
)

// Credential is an API key or authorized domain together with its rate
// limits. For keys, Identifier holds the SHA-256 hex of the secret; for
// domains, the domain string itself.
type Credential struct {
	ID          int64
	Kind        CredentialKind
	Identifier  string
	Label       string
	Description *string
	LimitMinute int64
	LimitDay    int64
	LimitMonth  int64
	Active      bool
	LastUsedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Limit returns the configured limit for the given window kind.
func (c Credential) Limit(kind WindowKind) int64 {
	switch kind {
	case WindowMinute:
		return c.LimitMinute
	case WindowDay:
		return c.LimitDay
	default:
		return c.LimitMonth
	}
}
