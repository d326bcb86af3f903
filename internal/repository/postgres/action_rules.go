package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sport-log/sport-log-server/internal/domain"
	"github.com/sport-log/sport-log-server/internal/idtype"
)

// CreateActionRule inserts a user's recurring schedule request for an Action.
func (r *Repository) CreateActionRule(ctx context.Context, userID idtype.UserID, actionID idtype.ActionID, weekday domain.Weekday, timeOfDay time.Time, arguments *string) (*domain.ActionRule, error) {
	ar := &domain.ActionRule{
		ID:        idtype.New[idtype.ActionRuleID](),
		UserID:    userID,
		ActionID:  actionID,
		Weekday:   weekday,
		Time:      timeOfDay,
		Arguments: arguments,
		Enabled:   true,
	}
	ar.Touch(time.Now().UTC())

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO action_rule (id, user_id, action_id, weekday, time_of_day, arguments, enabled, last_change, deleted)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		int64(ar.ID), int64(ar.UserID), int64(ar.ActionID), int(ar.Weekday), ar.Time, ar.Arguments, ar.Enabled, ar.LastChange, ar.Deleted,
	)
	if err != nil {
		return nil, wrapInternal(err, "insert action rule")
	}
	return ar, nil
}

// GetActionRuleByID fetches a single ActionRule.
func (r *Repository) GetActionRuleByID(ctx context.Context, id idtype.ActionRuleID) (*domain.ActionRule, error) {
	var ar domain.ActionRule
	err := r.db.GetContext(ctx, &ar, `
		SELECT id, user_id, action_id, weekday, time_of_day, arguments, enabled, last_change, deleted
		FROM action_rule WHERE id = $1`, int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wrapNotFound(err)
	}
	if err != nil {
		return nil, wrapInternal(err, "get action rule")
	}
	return &ar, nil
}

// ListActionRulesByUser lists every ActionRule owned by userID since cursor,
// including soft-deleted rows (sync relies on tombstones). A zero cursor
// returns the full history.
func (r *Repository) ListActionRulesByUser(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.ActionRule, error) {
	var rules []domain.ActionRule
	err := r.db.SelectContext(ctx, &rules, `
		SELECT id, user_id, action_id, weekday, time_of_day, arguments, enabled, last_change, deleted
		FROM action_rule WHERE user_id = $1 AND last_change >= $2`, int64(userID), since)
	if err != nil {
		return nil, wrapInternal(err, "list action rules by user")
	}
	return rules, nil
}

// UpdateActionRule persists the mutable fields of an already-verified
// ActionRule.
func (r *Repository) UpdateActionRule(ctx context.Context, ar *domain.ActionRule) error {
	ar.Touch(time.Now().UTC())
	res, err := r.db.ExecContext(ctx, `
		UPDATE action_rule
		SET weekday = $1, time_of_day = $2, arguments = $3, enabled = $4, last_change = $5
		WHERE id = $6 AND deleted = false`,
		int(ar.Weekday), ar.Time, ar.Arguments, ar.Enabled, ar.LastChange, int64(ar.ID),
	)
	if err != nil {
		return wrapInternal(err, "update action rule")
	}
	return expectOneRowAffected(res)
}

// ActionRuleOwner resolves the owning UserID of an ActionRule, for
// auth.VerifyIDForUser.
func (r *Repository) ActionRuleOwner(ctx context.Context, id int64) (idtype.UserID, error) {
	var userID int64
	err := r.db.GetContext(ctx, &userID, `SELECT user_id FROM action_rule WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, wrapNotFound(err)
	}
	if err != nil {
		return 0, wrapInternal(err, "lookup action rule owner")
	}
	return idtype.UserID(userID), nil
}

// SetActionRuleEnabled toggles an ActionRule's enabled flag.
func (r *Repository) SetActionRuleEnabled(ctx context.Context, id idtype.ActionRuleID, enabled bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE action_rule SET enabled = $1, last_change = $2 WHERE id = $3 AND deleted = false`,
		enabled, time.Now().UTC(), int64(id),
	)
	if err != nil {
		return wrapInternal(err, "update action rule")
	}
	return expectOneRowAffected(res)
}

// DeleteActionRule soft-deletes a user's ActionRule.
func (r *Repository) DeleteActionRule(ctx context.Context, id idtype.ActionRuleID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE action_rule SET deleted = true, last_change = $1 WHERE id = $2 AND deleted = false`,
		time.Now().UTC(), int64(id),
	)
	if err != nil {
		return wrapInternal(err, "delete action rule")
	}
	return expectOneRowAffected(res)
}

// ListCreatableActionRules is the query behind GET /adm/creatable_action_rule
// (§6): every enabled, non-deleted ActionRule joined with its Action to
// expose create_before, consumed by the scheduler's Phase A.
func (r *Repository) ListCreatableActionRules(ctx context.Context) ([]domain.CreatableActionRule, error) {
	var rows []creatableActionRuleRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT ar.user_id AS user_id,
		       ar.action_id AS action_id,
		       ar.weekday AS weekday,
		       ar.time_of_day AS time_of_day,
		       ar.arguments AS arguments,
		       a.create_before_ms AS create_before_ms
		FROM action_rule ar
		JOIN action a ON a.id = ar.action_id
		WHERE ar.enabled = true AND ar.deleted = false AND a.deleted = false
	`)
	if err != nil {
		return nil, wrapInternal(err, "list creatable action rules")
	}
	out := make([]domain.CreatableActionRule, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

type creatableActionRuleRow struct {
	UserID         int64     `db:"user_id"`
	ActionID       int64     `db:"action_id"`
	Weekday        int       `db:"weekday"`
	TimeOfDay      time.Time `db:"time_of_day"`
	Arguments      *string   `db:"arguments"`
	CreateBeforeMs int64     `db:"create_before_ms"`
}

func (row creatableActionRuleRow) toDomain() domain.CreatableActionRule {
	return domain.CreatableActionRule{
		UserID:       idtype.UserID(row.UserID),
		ActionID:     idtype.ActionID(row.ActionID),
		Weekday:      domain.Weekday(row.Weekday),
		Time:         row.TimeOfDay,
		Arguments:    row.Arguments,
		CreateBefore: time.Duration(row.CreateBeforeMs) * time.Millisecond,
	}
}
