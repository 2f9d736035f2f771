package allauth

import (
	"context"
	"database/sql"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// CredentialToken is the credential_tokens model. One row per scope, holding
// the session token handed out by the server for that client and base URL.
type CredentialToken struct {
	bun.BaseModel `bun:"table:credential_tokens,alias:ctk"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Scope         string     `bun:"scope,notnull,unique" json:"scope,omitempty"`
	Token         string     `bun:"token,notnull" json:"token,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// CredentialStore is a durable TokenStorage backed by bun. Unlike
// MemoryTokenStorage, tokens survive process restarts, so an app mode client
// can resume its session without logging in again.
type CredentialStore struct {
	db *bun.DB
}

// NewCredentialStore creates a store over an existing bun handle.
func NewCredentialStore(db *bun.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// OpenCredentialDB opens a sqlite-backed bun handle suitable for
// NewCredentialStore. Pass ":memory:" for an ephemeral database.
func OpenCredentialDB(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to open credential database")
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// Init creates the credential_tokens table if needed.
func (s *CredentialStore) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*CredentialToken)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to create credential_tokens table")
	}
	return nil
}

// Get returns the token stored for scope.
func (s *CredentialStore) Get(ctx context.Context, scope string) (string, error) {
	record := &CredentialToken{}
	err := s.db.NewSelect().
		Model(record).
		Where("scope = ?", scope).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrTokenNotFound.WithMetadata(map[string]any{
				"scope": scope,
			})
		}
		return "", goerrors.Wrap(err, goerrors.CategoryOperation, "failed to load credential token").WithMetadata(map[string]any{
			"scope": scope,
		})
	}
	return record.Token, nil
}

// Set stores token for scope, replacing any previous value.
func (s *CredentialStore) Set(ctx context.Context, scope, token string) error {
	now := time.Now()
	record := &CredentialToken{
		ID:        uuid.New(),
		Scope:     scope,
		Token:     token,
		CreatedAt: &now,
		UpdatedAt: &now,
	}
	_, err := s.db.NewInsert().
		Model(record).
		On("CONFLICT (scope) DO UPDATE").
		Set("token = EXCLUDED.token").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to store credential token").WithMetadata(map[string]any{
			"scope": scope,
		})
	}
	return nil
}

// Clear removes the token stored for scope. Clearing an absent scope is not
// an error.
func (s *CredentialStore) Clear(ctx context.Context, scope string) error {
	_, err := s.db.NewDelete().
		Model((*CredentialToken)(nil)).
		Where("scope = ?", scope).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to clear credential token").WithMetadata(map[string]any{
			"scope": scope,
		})
	}
	return nil
}
