package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sport-log/sport-log-server/internal/domain"
	"github.com/sport-log/sport-log-server/internal/idtype"
)

// CreateAction inserts a new Action, owned by the calling ActionProvider.
func (r *Repository) CreateAction(ctx context.Context, name string, actionProviderID idtype.ActionProviderID, description *string, createBefore, deleteAfter time.Duration) (*domain.Action, error) {
	a := &domain.Action{
		ID:               idtype.New[idtype.ActionID](),
		Name:             name,
		ActionProviderID: actionProviderID,
		Description:      description,
		CreateBefore:     createBefore,
		DeleteAfter:      deleteAfter,
	}
	a.Touch(time.Now().UTC())

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO action (id, name, action_provider_id, description, create_before_ms, delete_after_ms, last_change, deleted)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		int64(a.ID), a.Name, int64(a.ActionProviderID), a.Description,
		a.CreateBefore.Milliseconds(), a.DeleteAfter.Milliseconds(), a.LastChange, a.Deleted,
	)
	if err != nil {
		return nil, wrapInternal(err, "insert action")
	}
	return a, nil
}

// GetActionByID fetches an Action regardless of deleted state.
func (r *Repository) GetActionByID(ctx context.Context, id idtype.ActionID) (*domain.Action, error) {
	var row actionRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM action WHERE id = $1`, int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wrapNotFound(err)
	}
	if err != nil {
		return nil, wrapInternal(err, "get action by id")
	}
	return row.toDomain(), nil
}

// ListActionsByProvider lists the non-deleted Actions an ActionProvider
// exposes, e.g. for a catalogue endpoint.
func (r *Repository) ListActionsByProvider(ctx context.Context, actionProviderID idtype.ActionProviderID) ([]domain.Action, error) {
	var rows []actionRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM action WHERE action_provider_id = $1 AND deleted = false ORDER BY id`,
		int64(actionProviderID),
	)
	if err != nil {
		return nil, wrapInternal(err, "list actions")
	}
	out := make([]domain.Action, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row.toDomain())
	}
	return out, nil
}

// ListAllActions lists every non-deleted Action across all providers, for the
// user-facing `GET /action` catalogue listing.
func (r *Repository) ListAllActions(ctx context.Context) ([]domain.Action, error) {
	var rows []actionRow
	err := r.db.SelectContext(ctx, &rows, `SELECT * FROM action WHERE deleted = false ORDER BY id`)
	if err != nil {
		return nil, wrapInternal(err, "list all actions")
	}
	out := make([]domain.Action, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row.toDomain())
	}
	return out, nil
}

// actionRow mirrors the action table's milliseconds-typed duration columns;
// domain.Action exposes them as time.Duration, so rows are scanned into this
// intermediate shape first.
type actionRow struct {
	ID               int64     `db:"id"`
	Name             string    `db:"name"`
	ActionProviderID int64     `db:"action_provider_id"`
	Description      *string   `db:"description"`
	CreateBeforeMs   int64     `db:"create_before_ms"`
	DeleteAfterMs    int64     `db:"delete_after_ms"`
	LastChange       time.Time `db:"last_change"`
	Deleted          bool      `db:"deleted"`
}

func (row actionRow) toDomain() *domain.Action {
	return &domain.Action{
		ID:               idtype.ActionID(row.ID),
		Name:             row.Name,
		ActionProviderID: idtype.ActionProviderID(row.ActionProviderID),
		Description:      row.Description,
		CreateBefore:     time.Duration(row.CreateBeforeMs) * time.Millisecond,
		DeleteAfter:      time.Duration(row.DeleteAfterMs) * time.Millisecond,
		SoftDeletable: domain.SoftDeletable{
			LastChange: row.LastChange,
			Deleted:    row.Deleted,
		},
	}
}
