package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sport-log/sport-log-server/internal/domain"
	"github.com/sport-log/sport-log-server/internal/idtype"
)

// CreateActionProvider inserts a new ActionProvider (§6 ap_self_registration).
func (r *Repository) CreateActionProvider(ctx context.Context, name, passwordHash string, platformID idtype.PlatformID, description *string) (*domain.ActionProvider, error) {
	ap := &domain.ActionProvider{
		ID:           idtype.New[idtype.ActionProviderID](),
		Name:         name,
		PasswordHash: passwordHash,
		PlatformID:   platformID,
		Description:  description,
	}
	ap.Touch(time.Now().UTC())

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO action_provider (id, name, password, platform_id, description, last_change, deleted)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		int64(ap.ID), ap.Name, ap.PasswordHash, int64(ap.PlatformID), ap.Description, ap.LastChange, ap.Deleted,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, wrapConflict("ACTION_PROVIDER_ALREADY_EXISTS", "action provider already exists")
		}
		return nil, wrapInternal(err, "insert action provider")
	}
	return ap, nil
}

// ActionProviderPasswordHashByName is the narrow lookup the auth middleware
// uses for AuthAP and AuthUserAP.
func (r *Repository) ActionProviderPasswordHashByName(ctx context.Context, name string) (apID int64, passwordHash string, err error) {
	row := r.db.QueryRowxContext(ctx,
		`SELECT id, password FROM action_provider WHERE name = $1 AND deleted = false`, name)
	if err := row.Scan(&apID, &passwordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", wrapNotFound(err)
		}
		return 0, "", wrapInternal(err, "lookup action provider credentials")
	}
	return apID, passwordHash, nil
}

// GetActionProviderByID fetches an ActionProvider regardless of deleted state.
func (r *Repository) GetActionProviderByID(ctx context.Context, id idtype.ActionProviderID) (*domain.ActionProvider, error) {
	var ap domain.ActionProvider
	err := r.db.GetContext(ctx, &ap,
		`SELECT id, name, password, platform_id, description, last_change, deleted
		 FROM action_provider WHERE id = $1`,
		int64(id),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wrapNotFound(err)
	}
	if err != nil {
		return nil, wrapInternal(err, "get action provider by id")
	}
	return &ap, nil
}

// ListActionProviders returns every non-deleted ActionProvider, for the
// user-facing `GET /action_provider` listing.
func (r *Repository) ListActionProviders(ctx context.Context) ([]domain.ActionProvider, error) {
	var providers []domain.ActionProvider
	err := r.db.SelectContext(ctx, &providers, `
		SELECT id, name, password, platform_id, description, last_change, deleted
		FROM action_provider WHERE deleted = false`)
	if err != nil {
		return nil, wrapInternal(err, "list action providers")
	}
	return providers, nil
}

// DeleteActionProvider soft-deletes an ActionProvider's own row
// (self-deletion, mirroring user self-deletion).
func (r *Repository) DeleteActionProvider(ctx context.Context, id idtype.ActionProviderID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE action_provider SET deleted = true, last_change = $1 WHERE id = $2 AND deleted = false`,
		time.Now().UTC(), int64(id),
	)
	if err != nil {
		return wrapInternal(err, "delete action provider")
	}
	return expectOneRowAffected(res)
}

// ActionOwnerActionProvider resolves the ActionProviderID that owns an
// Action row, for auth.VerifyIDForActionProvider.
func (r *Repository) ActionOwnerActionProvider(ctx context.Context, actionID int64) (idtype.ActionProviderID, error) {
	var apID int64
	err := r.db.GetContext(ctx, &apID, `SELECT action_provider_id FROM action WHERE id = $1`, actionID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, wrapNotFound(err)
	}
	if err != nil {
		return 0, wrapInternal(err, "lookup action owner")
	}
	return idtype.ActionProviderID(apID), nil
}
