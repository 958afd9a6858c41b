//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package repository

import (
	"context"
	"database/sql"
	"time"

	"jyotish/backend/internal/model"
	"jyotish/backend/pkg/snowflake"
)

// CredentialRepository defines the interface for credential storage.
// Credentials are created and mutated only through the admin surface; the
// request path reads them.
type CredentialRepository interface {
	Create(ctx context.Context, cred model.Credential) (*model.Credential, error)
	GetByID(ctx context.Context, id int64) (*model.Credential, error)
	FindByIdentifier(ctx context.Context, kind model.CredentialKind, identifier string) (*model.Credential, error)
	List(ctx context.Context) ([]model.Credential, error)
	UpdateLimits(ctx context.Context, id int64, limitMinute, limitDay, limitMonth int64) error
	SetActive(ctx context.Context, id int64, active bool) error
	TouchLastUsed(ctx context.Context, id int64, at time.Time) error
	Delete(ctx context.Context, id int64) error
}

type credentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a new credential repository.
func NewCredentialRepository(db *sql.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

const credentialColumns = `id, kind, identifier, label, description, limit_minute, limit_day, limit_month, active, last_used_at, created_at, updated_at`

// Create inserts a new credential and returns it with ID and timestamps set.
func (r *credentialRepository) Create(ctx context.Context, cred model.Credential) (*model.Credential, error) {
	cred.ID = snowflake.NextID()
	now := time.Now().UTC()
	cred.CreatedAt = now
	cred.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO credentials (id, kind, identifier, label, description, limit_minute, limit_day, limit_month, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, cred.ID, string(cred.Kind), cred.Identifier, cred.Label, nullableString(cred.Description),
		cred.LimitMinute, cred.LimitDay, cred.LimitMonth, boolToInt(cred.Active),
		formatTime(now), formatTime(now))
	if err != nil {
		return nil, err
	}

	return &cred, nil
}

// GetByID retrieves a credential by ID, nil if absent.
func (r *credentialRepository) GetByID(ctx context.Context, id int64) (*model.Credential, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+credentialColumns+` FROM credentials WHERE id = ?
	`, id)
	return scanCredential(row)
}

// FindByIdentifier retrieves a credential by (kind, identifier), nil if absent.
func (r *credentialRepository) FindByIdentifier(ctx context.Context, kind model.CredentialKind, identifier string) (*model.Credential, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+credentialColumns+` FROM credentials WHERE kind = ? AND identifier = ?
	`, string(kind), identifier)
	return scanCredential(row)
}

// List retrieves all credentials ordered by creation time.
func (r *credentialRepository) List(ctx context.Context) ([]model.Credential, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+credentialColumns+` FROM credentials ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var creds []model.Credential
	for rows.Next() {
		cred, err := scanCredentialRow(rows)
		if err != nil {
			return nil, err
		}
		creds = append(creds, *cred)
	}
	return creds, rows.Err()
}

// UpdateLimits replaces the three window limits of a credential.
func (r *credentialRepository) UpdateLimits(ctx context.Context, id int64, limitMinute, limitDay, limitMonth int64) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE credentials SET limit_minute = ?, limit_day = ?, limit_month = ?, updated_at = ? WHERE id = ?
	`, limitMinute, limitDay, limitMonth, formatTime(time.Now()), id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// SetActive flips the active/revoked flag.
func (r *credentialRepository) SetActive(ctx context.Context, id int64, active bool) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE credentials SET active = ?, updated_at = ? WHERE id = ?
	`, boolToInt(active), formatTime(time.Now()), id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// TouchLastUsed records the last admitted request time. Best-effort; the
// caller treats failures as non-fatal.
func (r *credentialRepository) TouchLastUsed(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE credentials SET last_used_at = ? WHERE id = ?
	`, formatTime(at), id)
	return err
}

// Delete removes a credential. Its usage counters are left behind as
// historical rows; the retention sweep removes them later.
func (r *credentialRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCredentialRow(row rowScanner) (*model.Credential, error) {
	var c model.Credential
	var kind string
	var description, lastUsedAt sql.NullString
	var active int
	var createdAt, updatedAt string

	if err := row.Scan(&c.ID, &kind, &c.Identifier, &c.Label, &description,
		&c.LimitMinute, &c.LimitDay, &c.LimitMonth, &active, &lastUsedAt,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	c.Kind = model.CredentialKind(kind)
	if description.Valid {
		c.Description = &description.String
	}
	c.Active = active != 0
	if lastUsedAt.Valid {
		if parsed, err := parseTime(lastUsedAt.String); err == nil {
			c.LastUsedAt = &parsed
		}
	}
	c.CreatedAt, _ = parseTime(createdAt)
	c.UpdatedAt, _ = parseTime(updatedAt)
	return &c, nil
}

func scanCredential(row *sql.Row) (*model.Credential, error) {
	cred, err := scanCredentialRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return cred, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
