package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sport-log/sport-log-server/internal/domain"
	"github.com/sport-log/sport-log-server/internal/idtype"
)

const insertActionEventSQL = `
	INSERT INTO action_event (id, user_id, action_id, datetime, arguments, enabled, last_change, deleted)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (user_id, action_id, datetime) WHERE deleted = false DO NOTHING`

// CreateActionEvent inserts a single ad-hoc ActionEvent (user-initiated, as
// opposed to the scheduler's bulk creation).
func (r *Repository) CreateActionEvent(ctx context.Context, userID idtype.UserID, actionID idtype.ActionID, datetime time.Time, arguments *string) (*domain.ActionEvent, error) {
	e := &domain.ActionEvent{
		ID:        idtype.New[idtype.ActionEventID](),
		UserID:    userID,
		ActionID:  actionID,
		DateTime:  datetime,
		Arguments: arguments,
		Enabled:   true,
	}
	e.Touch(time.Now().UTC())

	_, err := r.db.ExecContext(ctx, insertActionEventSQL,
		int64(e.ID), int64(e.UserID), int64(e.ActionID), e.DateTime, e.Arguments, e.Enabled, e.LastChange, e.Deleted,
	)
	if err != nil {
		return nil, wrapInternal(err, "insert action event")
	}
	return e, nil
}

// BulkInsertActionEvents is the scheduler's Phase A write (§4.2, §8
// invariant 1/3): every event is inserted with ON CONFLICT DO NOTHING
// against the partial unique index on (user_id, action_id, datetime) WHERE
// NOT deleted, so re-running the scheduler over an overlapping window never
// duplicates a live event (idempotent bulk insert).
func (r *Repository) BulkInsertActionEvents(ctx context.Context, events []domain.ActionEvent) error {
	if len(events) == 0 {
		return nil
	}
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, e := range events {
			if _, err := tx.ExecContext(ctx, insertActionEventSQL,
				int64(e.ID), int64(e.UserID), int64(e.ActionID), e.DateTime, e.Arguments, e.Enabled, e.LastChange, e.Deleted,
			); err != nil {
				return wrapInternal(err, "bulk insert action events")
			}
		}
		return nil
	})
}

// GetActionEventByID fetches a single ActionEvent.
func (r *Repository) GetActionEventByID(ctx context.Context, id idtype.ActionEventID) (*domain.ActionEvent, error) {
	var e domain.ActionEvent
	err := r.db.GetContext(ctx, &e, `
		SELECT id, user_id, action_id, datetime, arguments, enabled, last_change, deleted
		FROM action_event WHERE id = $1`, int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wrapNotFound(err)
	}
	if err != nil {
		return nil, wrapInternal(err, "get action event")
	}
	return &e, nil
}

// ListActionEventsByUser lists every ActionEvent owned by userID since
// cursor, tombstones included. A zero cursor returns the full history.
func (r *Repository) ListActionEventsByUser(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.ActionEvent, error) {
	var events []domain.ActionEvent
	err := r.db.SelectContext(ctx, &events, `
		SELECT id, user_id, action_id, datetime, arguments, enabled, last_change, deleted
		FROM action_event WHERE user_id = $1 AND last_change >= $2`, int64(userID), since)
	if err != nil {
		return nil, wrapInternal(err, "list action events by user")
	}
	return events, nil
}

// ListActionEventsByUserAndProvider lists userID's ActionEvents whose Action
// belongs to actionProviderID.
func (r *Repository) ListActionEventsByUserAndProvider(ctx context.Context, userID idtype.UserID, actionProviderID idtype.ActionProviderID) ([]domain.ActionEvent, error) {
	var events []domain.ActionEvent
	err := r.db.SelectContext(ctx, &events, `
		SELECT ae.id, ae.user_id, ae.action_id, ae.datetime, ae.arguments, ae.enabled, ae.last_change, ae.deleted
		FROM action_event ae
		JOIN action a ON a.id = ae.action_id
		WHERE ae.user_id = $1 AND a.action_provider_id = $2`, int64(userID), int64(actionProviderID))
	if err != nil {
		return nil, wrapInternal(err, "list action events by user and provider")
	}
	return events, nil
}

// UpdateActionEvent persists the mutable fields of an already-verified
// ActionEvent.
func (r *Repository) UpdateActionEvent(ctx context.Context, e *domain.ActionEvent) error {
	e.Touch(time.Now().UTC())
	res, err := r.db.ExecContext(ctx, `
		UPDATE action_event
		SET datetime = $1, arguments = $2, enabled = $3, last_change = $4
		WHERE id = $5 AND deleted = false`,
		e.DateTime, e.Arguments, e.Enabled, e.LastChange, int64(e.ID),
	)
	if err != nil {
		return wrapInternal(err, "update action event")
	}
	return expectOneRowAffected(res)
}

// ActionEventOwner resolves the owning UserID of an ActionEvent, for
// auth.VerifyIDForUser.
func (r *Repository) ActionEventOwner(ctx context.Context, id int64) (idtype.UserID, error) {
	var userID int64
	err := r.db.GetContext(ctx, &userID, `SELECT user_id FROM action_event WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, wrapNotFound(err)
	}
	if err != nil {
		return 0, wrapInternal(err, "lookup action event owner")
	}
	return idtype.UserID(userID), nil
}

// ListDeletableActionEvents is the query behind GET
// /adm/deletable_action_event (§6): every non-deleted ActionEvent joined
// with its Action to expose delete_after, consumed by the scheduler's
// Phase B.
func (r *Repository) ListDeletableActionEvents(ctx context.Context) ([]domain.DeletableActionEvent, error) {
	var rows []deletableActionEventRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT ae.id AS id, ae.datetime AS datetime, a.delete_after_ms AS delete_after_ms
		FROM action_event ae
		JOIN action a ON a.id = ae.action_id
		WHERE ae.deleted = false
	`)
	if err != nil {
		return nil, wrapInternal(err, "list deletable action events")
	}
	out := make([]domain.DeletableActionEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

type deletableActionEventRow struct {
	ID            int64     `db:"id"`
	DateTime      time.Time `db:"datetime"`
	DeleteAfterMs int64     `db:"delete_after_ms"`
}

func (row deletableActionEventRow) toDomain() domain.DeletableActionEvent {
	return domain.DeletableActionEvent{
		ID:          idtype.ActionEventID(row.ID),
		DateTime:    row.DateTime,
		DeleteAfter: time.Duration(row.DeleteAfterMs) * time.Millisecond,
	}
}

// SoftDeleteActionEvents is the scheduler's Phase B write and the write
// behind the user, admin and AP delete routes (§4.2): marks the given ids
// deleted and bumps last_change so they remain visible to sync as
// tombstones until GC. A provider's post-execution disablement goes through
// DisableActionEvents, which delegates here.
func (r *Repository) SoftDeleteActionEvents(ctx context.Context, ids []idtype.ActionEventID) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = int64(id)
	}
	query, args, err := sqlx.In(
		`UPDATE action_event SET deleted = true, last_change = ? WHERE id IN (?)`,
		time.Now().UTC(), raw,
	)
	if err != nil {
		return wrapInternal(err, "build soft-delete query")
	}
	query = r.db.Rebind(query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return wrapInternal(err, "soft delete action events")
	}
	return nil
}

// DisableActionEvents soft-deletes a batch of events — the provider
// contract's `disable_events` step, called with the union of successfully
// processed and conclusively failed event ids after a provider invocation
// completes (§4.3 step 4). Distinct entry point from SoftDeleteActionEvents
// (used by the user/admin/AP delete routes) even though the SQL is
// identical, since the two have different callers and call-site
// invariants: this one is never given a partially-owned id list to verify.
func (r *Repository) DisableActionEvents(ctx context.Context, ids []idtype.ActionEventID) error {
	return r.SoftDeleteActionEvents(ctx, ids)
}

// ListExecutableActionEvents is the query behind GET
// /ap/executable_action_event (§6): every enabled, non-deleted ActionEvent
// belonging to actionProviderID, joined with its Action and the owning
// user's PlatformCredential for that action's platform (outer-joined —
// absent credentials yield nil Username/Password).
func (r *Repository) ListExecutableActionEvents(ctx context.Context, actionProviderID idtype.ActionProviderID, from, to time.Time) ([]domain.ExecutableActionEvent, error) {
	var rows []executableActionEventRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT ae.id AS id,
		       ae.user_id AS user_id,
		       ae.action_id AS action_id,
		       a.name AS action_name,
		       a.action_provider_id AS action_provider_id,
		       ae.datetime AS datetime,
		       ae.arguments AS arguments,
		       pc.username AS username,
		       pc.password AS password
		FROM action_event ae
		JOIN action a ON a.id = ae.action_id
		JOIN action_provider ap ON ap.id = a.action_provider_id
		LEFT JOIN platform_credential pc
		       ON pc.user_id = ae.user_id AND pc.platform_id = ap.platform_id AND pc.deleted = false
		WHERE a.action_provider_id = $1
		  AND ae.enabled = true AND ae.deleted = false
		  AND ae.datetime BETWEEN $2 AND $3
		ORDER BY ae.datetime
	`, int64(actionProviderID), from, to)
	if err != nil {
		return nil, wrapInternal(err, "list executable action events")
	}
	out := make([]domain.ExecutableActionEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

type executableActionEventRow struct {
	ID               int64     `db:"id"`
	UserID           int64     `db:"user_id"`
	ActionID         int64     `db:"action_id"`
	ActionName       string    `db:"action_name"`
	ActionProviderID int64     `db:"action_provider_id"`
	DateTime         time.Time `db:"datetime"`
	Arguments        *string   `db:"arguments"`
	Username         *string   `db:"username"`
	Password         *string   `db:"password"`
}

func (row executableActionEventRow) toDomain() domain.ExecutableActionEvent {
	return domain.ExecutableActionEvent{
		ID:               idtype.ActionEventID(row.ID),
		UserID:           idtype.UserID(row.UserID),
		ActionID:         idtype.ActionID(row.ActionID),
		ActionName:       row.ActionName,
		ActionProviderID: idtype.ActionProviderID(row.ActionProviderID),
		DateTime:         row.DateTime,
		Arguments:        row.Arguments,
		Username:         row.Username,
		Password:         row.Password,
	}
}

// HasLinkingEvent implements auth.EventLinkChecker: AuthUserAP requires a
// live (enabled, non-deleted) ActionEvent whose user_id/action's
// action_provider_id pair matches (§4.1, §8 invariant 4).
func (r *Repository) HasLinkingEvent(ctx context.Context, userID idtype.UserID, actionProviderID idtype.ActionProviderID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS(
			SELECT 1 FROM action_event ae
			JOIN action a ON a.id = ae.action_id
			WHERE ae.user_id = $1 AND a.action_provider_id = $2
			  AND ae.enabled = true AND ae.deleted = false
		)
	`, int64(userID), int64(actionProviderID))
	if err != nil {
		return false, wrapInternal(err, "check linking action event")
	}
	return exists, nil
}
