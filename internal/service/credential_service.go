//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"jyotish/backend/internal/hashutil"
	"jyotish/backend/internal/model"
	"jyotish/backend/internal/ratelimit"
	"jyotish/backend/internal/repository"
	"jyotish/backend/pkg/logger"
)

const (
	keySecretPrefix = "jk_"

	resolveCacheSize = 1024
	resolveCacheTTL  = 30 * time.Second
)

// Limits bundles the three per-window limit values.
type Limits struct {
	Minute int64
	Day    int64
	Month  int64
}

// CredentialDTO is the admin-facing view of a credential.
type CredentialDTO struct {
	ID          string
	Kind        string
	Label       string
	Description *string
	LimitMinute int64
	LimitDay    int64
	LimitMonth  int64
	Active      bool
	LastUsedAt  *string
	CreatedAt   string
	UpdatedAt   string
}

// UsageDTO reports the current counts next to the configured limits.
type UsageDTO struct {
	CredentialID string
	Windows      []WindowUsageDTO
}

// WindowUsageDTO is one window's current consumption.
type WindowUsageDTO struct {
	Kind      string
	Used      int64
	Limit     int64
	ResetsInS int64
}

// CredentialService owns the admin CRUD for API keys and authorized domains
// and resolves inbound requests to a credential.
type CredentialService interface {
	CreateKey(ctx context.Context, label, description string, limits Limits) (CredentialDTO, string, error)
	CreateDomain(ctx context.Context, domain, label, description string, limits Limits) (CredentialDTO, error)
	List(ctx context.Context) ([]CredentialDTO, error)
	UpdateLimits(ctx context.Context, id int64, limits Limits) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
	Usage(ctx context.Context, id int64, now time.Time) (UsageDTO, error)

	// Resolve maps a request to its credential. A bearer key wins over the
	// request origin; an inactive or unknown key falls back to the origin's
	// domain. ErrUnresolved when neither matches.
	Resolve(ctx context.Context, bearer, origin string) (model.Credential, error)

	// MarkUsed records an admitted request's time on the credential.
	// Best-effort: failures are logged, never surfaced.
	MarkUsed(ctx context.Context, id int64, at time.Time)
}

type credentialService struct {
	creds  repository.CredentialRepository
	ledger repository.UsageRepository
	cache  *expirable.LRU[string, model.Credential]
}

// NewCredentialService creates the credential service. The short-TTL cache
// only shortens lookups; it never bypasses the ledger's atomic increment.
func NewCredentialService(creds repository.CredentialRepository, ledger repository.UsageRepository) CredentialService {
	return &credentialService{
		creds:  creds,
		ledger: ledger,
		cache:  expirable.NewLRU[string, model.Credential](resolveCacheSize, nil, resolveCacheTTL),
	}
}

var hostPattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9\-\.]*[a-zA-Z0-9])?$`)

// IsValidHost reports whether host looks like a hostname or IP literal.
func IsValidHost(host string) bool {
	return host != "" && hostPattern.MatchString(host)
}

func validateLimits(limits Limits) error {
	if limits.Minute < 0 || limits.Day < 0 || limits.Month < 0 {
		return fmt.Errorf("%w: limits must be non-negative", ErrInvalid)
	}
	return nil
}

func (s *credentialService) CreateKey(ctx context.Context, label, description string, limits Limits) (CredentialDTO, string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return CredentialDTO{}, "", fmt.Errorf("%w: label required", ErrInvalid)
	}
	if err := validateLimits(limits); err != nil {
		return CredentialDTO{}, "", err
	}

	secret := keySecretPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
	cred := model.Credential{
		Kind:        model.CredentialKindKey,
		Identifier:  hashutil.SHA256Hex(secret),
		Label:       label,
		Description: optionalString(description),
		LimitMinute: limits.Minute,
		LimitDay:    limits.Day,
		LimitMonth:  limits.Month,
		Active:      true,
	}

	created, err := s.creds.Create(ctx, cred)
	if err != nil {
		return CredentialDTO{}, "", fmt.Errorf("create key credential: %w", err)
	}
	return toCredentialDTO(*created), secret, nil
}

func (s *credentialService) CreateDomain(ctx context.Context, domain, label, description string, limits Limits) (CredentialDTO, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if !IsValidHost(domain) {
		return CredentialDTO{}, fmt.Errorf("%w: invalid domain", ErrInvalid)
	}
	if err := validateLimits(limits); err != nil {
		return CredentialDTO{}, err
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = domain
	}

	existing, err := s.creds.FindByIdentifier(ctx, model.CredentialKindDomain, domain)
	if err != nil {
		return CredentialDTO{}, fmt.Errorf("check domain: %w", err)
	}
	if existing != nil {
		return CredentialDTO{}, ErrConflict
	}

	created, err := s.creds.Create(ctx, model.Credential{
		Kind:        model.CredentialKindDomain,
		Identifier:  domain,
		Label:       label,
		Description: optionalString(description),
		LimitMinute: limits.Minute,
		LimitDay:    limits.Day,
		LimitMonth:  limits.Month,
		Active:      true,
	})
	if err != nil {
		return CredentialDTO{}, fmt.Errorf("create domain credential: %w", err)
	}
	return toCredentialDTO(*created), nil
}

func (s *credentialService) List(ctx context.Context) ([]CredentialDTO, error) {
	creds, err := s.creds.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	dtos := make([]CredentialDTO, 0, len(creds))
	for _, cred := range creds {
		dtos = append(dtos, toCredentialDTO(cred))
	}
	return dtos, nil
}

func (s *credentialService) UpdateLimits(ctx context.Context, id int64, limits Limits) error {
	if err := validateLimits(limits); err != nil {
		return err
	}
	if err := s.creds.UpdateLimits(ctx, id, limits.Minute, limits.Day, limits.Month); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update limits: %w", err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *credentialService) SetActive(ctx context.Context, id int64, active bool) error {
	if err := s.creds.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("set active: %w", err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *credentialService) Delete(ctx context.Context, id int64) error {
	// Usage counters are left behind; the retention sweep collects them.
	if err := s.creds.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete credential: %w", err)
	}
	s.cache.Purge()
	return nil
}

func (s *credentialService) Usage(ctx context.Context, id int64, now time.Time) (UsageDTO, error) {
	cred, err := s.creds.GetByID(ctx, id)
	if err != nil {
		return UsageDTO{}, fmt.Errorf("get credential: %w", err)
	}
	if cred == nil {
		return UsageDTO{}, ErrNotFound
	}

	counts, err := s.ledger.WindowCounts(ctx, id, now)
	if err != nil {
		return UsageDTO{}, fmt.Errorf("window counts: %w", err)
	}

	usage := UsageDTO{CredentialID: strconv.FormatInt(id, 10)}
	for _, kind := range model.WindowKinds() {
		usage.Windows = append(usage.Windows, WindowUsageDTO{
			Kind:      string(kind),
			Used:      counts[kind],
			Limit:     cred.Limit(kind),
			ResetsInS: int64(ratelimit.RetryAfter(kind, now) / time.Second),
		})
	}
	return usage, nil
}

func (s *credentialService) Resolve(ctx context.Context, bearer, origin string) (model.Credential, error) {
	if token := strings.TrimSpace(bearer); token != "" {
		cred, err := s.lookup(ctx, model.CredentialKindKey, hashutil.SHA256Hex(token))
		if err != nil {
			return model.Credential{}, err
		}
		if cred != nil && cred.Active {
			return *cred, nil
		}
	}

	if host := originHost(origin); host != "" {
		cred, err := s.lookup(ctx, model.CredentialKindDomain, host)
		if err != nil {
			return model.Credential{}, err
		}
		if cred != nil && cred.Active {
			return *cred, nil
		}
	}

	return model.Credential{}, ErrUnresolved
}

func (s *credentialService) MarkUsed(ctx context.Context, id int64, at time.Time) {
	if err := s.creds.TouchLastUsed(ctx, id, at); err != nil {
		logger.Warn("touch last_used_at", "credential", id, "error", err)
	}
}

// lookup consults the short-TTL cache before the store. Only found, active
// credentials are cached so revocations take effect within the TTL.
func (s *credentialService) lookup(ctx context.Context, kind model.CredentialKind, identifier string) (*model.Credential, error) {
	cacheKey := string(kind) + ":" + identifier
	if cred, ok := s.cache.Get(cacheKey); ok {
		return &cred, nil
	}

	cred, err := s.creds.FindByIdentifier(ctx, kind, identifier)
	if err != nil {
		logger.Error("credential lookup failed", "kind", kind, "error", err)
		return nil, ErrStorageUnavailable
	}
	if cred != nil && cred.Active {
		s.cache.Add(cacheKey, *cred)
	}
	return cred, nil
}

func (s *credentialService) invalidate(ctx context.Context, id int64) {
	cred, err := s.creds.GetByID(ctx, id)
	if err != nil || cred == nil {
		s.cache.Purge()
		return
	}
	s.cache.Remove(string(cred.Kind) + ":" + cred.Identifier)
}

// originHost extracts the lowercase host from an Origin/Referer value,
// tolerating bare hosts and host:port forms.
func originHost(origin string) string {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return ""
	}
	if strings.Contains(origin, "://") {
		parsed, err := url.Parse(origin)
		if err != nil {
			return ""
		}
		return strings.ToLower(parsed.Hostname())
	}
	host := origin
	if idx := strings.LastIndex(host, ":"); idx != -1 && !strings.Contains(host, "]") {
		if _, err := strconv.Atoi(host[idx+1:]); err == nil {
			host = host[:idx]
		}
	}
	return strings.ToLower(host)
}

func toCredentialDTO(cred model.Credential) CredentialDTO {
	dto := CredentialDTO{
		ID:          strconv.FormatInt(cred.ID, 10),
		Kind:        string(cred.Kind),
		Label:       cred.Label,
		Description: cred.Description,
		LimitMinute: cred.LimitMinute,
		LimitDay:    cred.LimitDay,
		LimitMonth:  cred.LimitMonth,
		Active:      cred.Active,
		CreatedAt:   cred.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   cred.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if cred.LastUsedAt != nil {
		formatted := cred.LastUsedAt.UTC().Format(time.RFC3339)
		dto.LastUsedAt = &formatted
	}
	return dto
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
