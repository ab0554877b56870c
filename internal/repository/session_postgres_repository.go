package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/samsoncodes33/Isaac-IT-frontend/internal/models"
	appErrors "github.com/samsoncodes33/Isaac-IT-frontend/pkg/errors"
)

const sessionSchema = `
CREATE TABLE IF NOT EXISTS portal_sessions (
    id TEXT NOT NULL,
    slot TEXT NOT NULL,
    payload JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (id, slot)
)`

// PostgresSessionRepository persists session slots in the portal_sessions table.
type PostgresSessionRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewPostgresSessionRepository constructs the repository.
func NewPostgresSessionRepository(db *sqlx.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db, now: time.Now}
}

// EnsureSchema creates portal_sessions when it does not exist yet.
func (r *PostgresSessionRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, sessionSchema); err != nil {
		return fmt.Errorf("create portal_sessions: %w", err)
	}
	return nil
}

// Save upserts the slot.
func (r *PostgresSessionRepository) Save(ctx context.Context, slot string, session *models.Session) error {
	if session == nil || session.ID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "session id is required")
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", session.ID, err)
	}

	const query = `
INSERT INTO portal_sessions (id, slot, payload, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id, slot) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, session.ID, slot, payload, r.now().UTC()); err != nil {
		return fmt.Errorf("upsert session %s: %w", session.ID, err)
	}
	return nil
}

// Load reads the slot, returning ErrSessionNotFound when no row exists.
func (r *PostgresSessionRepository) Load(ctx context.Context, id, slot string) (*models.Session, error) {
	const query = `SELECT payload FROM portal_sessions WHERE id = $1 AND slot = $2`

	var payload []byte
	if err := r.db.GetContext(ctx, &payload, query, id, slot); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	var session models.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &session, nil
}

// Clear deletes the slot.
func (r *PostgresSessionRepository) Clear(ctx context.Context, id, slot string) error {
	const query = `DELETE FROM portal_sessions WHERE id = $1 AND slot = $2`
	if _, err := r.db.ExecContext(ctx, query, id, slot); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}
