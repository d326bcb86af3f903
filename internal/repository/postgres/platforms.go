package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sport-log/sport-log-server/internal/domain"
	"github.com/sport-log/sport-log-server/internal/idtype"
)

// CreatePlatform inserts a new Platform row (admin-managed catalogue entry).
func (r *Repository) CreatePlatform(ctx context.Context, name string) (*domain.Platform, error) {
	p := &domain.Platform{ID: idtype.New[idtype.PlatformID](), Name: name}
	p.Touch(time.Now().UTC())

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO platform (id, name, last_change, deleted) VALUES ($1, $2, $3, $4)`,
		int64(p.ID), p.Name, p.LastChange, p.Deleted,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, wrapConflict("PLATFORM_ALREADY_EXISTS", "platform already exists")
		}
		return nil, wrapInternal(err, "insert platform")
	}
	return p, nil
}

// ListPlatforms returns every Platform (admin/user catalogue listing).
func (r *Repository) ListPlatforms(ctx context.Context) ([]domain.Platform, error) {
	var platforms []domain.Platform
	if err := r.db.SelectContext(ctx, &platforms, `SELECT id, name, last_change, deleted FROM platform`); err != nil {
		return nil, wrapInternal(err, "list platforms")
	}
	return platforms, nil
}

// CreatePlatformCredential stores a user's third-party credentials for a
// platform, so an action provider can later fetch them via
// ExecutableActionEvent.
func (r *Repository) CreatePlatformCredential(ctx context.Context, userID idtype.UserID, platformID idtype.PlatformID, username, password string) (*domain.PlatformCredential, error) {
	pc := &domain.PlatformCredential{
		ID:         idtype.New[idtype.PlatformCredentialID](),
		UserID:     userID,
		PlatformID: platformID,
		Username:   username,
		Password:   password,
	}
	pc.Touch(time.Now().UTC())

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO platform_credential (id, user_id, platform_id, username, password, last_change, deleted)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		int64(pc.ID), int64(pc.UserID), int64(pc.PlatformID), pc.Username, pc.Password, pc.LastChange, pc.Deleted,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, wrapConflict("USER_RECORD_CONFLICT", "credential already exists for this platform")
		}
		return nil, wrapInternal(err, "insert platform credential")
	}
	return pc, nil
}

// PlatformCredentialOwner resolves the owning UserID of a PlatformCredential,
// for auth.VerifyIDForUser.
func (r *Repository) PlatformCredentialOwner(ctx context.Context, id int64) (idtype.UserID, error) {
	var userID int64
	err := r.db.GetContext(ctx, &userID, `SELECT user_id FROM platform_credential WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, wrapNotFound(err)
	}
	if err != nil {
		return 0, wrapInternal(err, "lookup platform credential owner")
	}
	return idtype.UserID(userID), nil
}

// ListPlatformCredentialsByUser lists userID's own PlatformCredential rows
// since cursor, tombstones included. A zero cursor returns the full history.
func (r *Repository) ListPlatformCredentialsByUser(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.PlatformCredential, error) {
	var creds []domain.PlatformCredential
	err := r.db.SelectContext(ctx, &creds, `
		SELECT id, user_id, platform_id, username, password, last_change, deleted
		FROM platform_credential WHERE user_id = $1 AND last_change >= $2`, int64(userID), since)
	if err != nil {
		return nil, wrapInternal(err, "list platform credentials by user")
	}
	return creds, nil
}

// GetPlatformCredentialByID fetches a single PlatformCredential.
func (r *Repository) GetPlatformCredentialByID(ctx context.Context, id idtype.PlatformCredentialID) (*domain.PlatformCredential, error) {
	var pc domain.PlatformCredential
	err := r.db.GetContext(ctx, &pc, `
		SELECT id, user_id, platform_id, username, password, last_change, deleted
		FROM platform_credential WHERE id = $1`, int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wrapNotFound(err)
	}
	if err != nil {
		return nil, wrapInternal(err, "get platform credential")
	}
	return &pc, nil
}

// UpdatePlatformCredential persists an already-verified PlatformCredential's
// mutable fields.
func (r *Repository) UpdatePlatformCredential(ctx context.Context, pc *domain.PlatformCredential) error {
	pc.Touch(time.Now().UTC())
	res, err := r.db.ExecContext(ctx, `
		UPDATE platform_credential
		SET username = $1, password = $2, last_change = $3
		WHERE id = $4 AND deleted = false`,
		pc.Username, pc.Password, pc.LastChange, int64(pc.ID),
	)
	if err != nil {
		return wrapInternal(err, "update platform credential")
	}
	return expectOneRowAffected(res)
}

// DeletePlatformCredential soft-deletes a user's PlatformCredential.
func (r *Repository) DeletePlatformCredential(ctx context.Context, id idtype.PlatformCredentialID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE platform_credential SET deleted = true, last_change = $1 WHERE id = $2 AND deleted = false`,
		time.Now().UTC(), int64(id),
	)
	if err != nil {
		return wrapInternal(err, "delete platform credential")
	}
	return expectOneRowAffected(res)
}
