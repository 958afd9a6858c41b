//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"time"
)

// AdmitResult identifies the credential an admitted request was attributed
// to, for downstream logging.
type AdmitResult struct {
	CredentialID int64
	Kind         string
	Label        string
}

// AccessService is the gate in front of the calculation endpoint: resolve
// the credential, then charge one request against its quotas.
type AccessService interface {
	// Admit returns ErrUnresolved when no credential matches,
	// *RateLimitError when a window's limit is reached, and
	// ErrStorageUnavailable when the ledger cannot be consulted. A nil
	// error admits the request.
	Admit(ctx context.Context, bearer, origin string, now time.Time) (AdmitResult, error)
}

type accessService struct {
	credentials CredentialService
	limiter     RateLimitService
}

// NewAccessService wires the resolver and the rate limiter into the gate.
func NewAccessService(credentials CredentialService, limiter RateLimitService) AccessService {
	return &accessService{credentials: credentials, limiter: limiter}
}

func (s *accessService) Admit(ctx context.Context, bearer, origin string, now time.Time) (AdmitResult, error) {
	cred, err := s.credentials.Resolve(ctx, bearer, origin)
	if err != nil {
		return AdmitResult{}, err
	}

	if err := s.limiter.Check(ctx, cred, now); err != nil {
		return AdmitResult{}, err
	}

	s.credentials.MarkUsed(ctx, cred.ID, now)

	return AdmitResult{
		CredentialID: cred.ID,
		Kind:         string(cred.Kind),
		Label:        cred.Label,
	}, nil
}
