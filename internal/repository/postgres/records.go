package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sport-log/sport-log-server/internal/domain"
	"github.com/sport-log/sport-log-server/internal/idtype"
)

// CreateMovement inserts a Movement. userID nil creates a system-shared
// catalogue entry; set it creates a user's private custom movement (§3
// supplemented feature: normalized name matching in the provider runtime).
func (r *Repository) CreateMovement(ctx context.Context, userID *idtype.UserID, name string) (*domain.Movement, error) {
	m := &domain.Movement{ID: idtype.New[idtype.MovementID](), UserID: userID, Name: name}
	m.Touch(time.Now().UTC())

	var rawUserID sql.NullInt64
	if userID != nil {
		rawUserID = sql.NullInt64{Int64: int64(*userID), Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO movement (id, user_id, name, last_change, deleted) VALUES ($1, $2, $3, $4, $5)`,
		int64(m.ID), rawUserID, m.Name, m.LastChange, m.Deleted,
	)
	if err != nil {
		return nil, wrapInternal(err, "insert movement")
	}
	return m, nil
}

// FindMovementByNormalizedName looks up a movement visible to userID (shared
// or owned) whose normalized name matches, for the provider runtime's local
// movement association (§4.3 step 3.d).
func (r *Repository) FindMovementByNormalizedName(ctx context.Context, userID idtype.UserID, normalizedName string) (*domain.Movement, error) {
	var rows []movementRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, user_id, name, last_change, deleted FROM movement
		 WHERE (user_id IS NULL OR user_id = $1) AND deleted = false`,
		int64(userID),
	)
	if err != nil {
		return nil, wrapInternal(err, "list movements for match")
	}
	for _, row := range rows {
		if domain.NormalizeMovementName(row.Name) == normalizedName {
			m := row.toDomain()
			return &m, nil
		}
	}
	return nil, wrapNotFound(errors.New("no movement matches normalized name"))
}

// MovementOwner resolves the (optional) owning UserID of a Movement, for
// auth.VerifyIDForUserOptional.
func (r *Repository) MovementOwner(ctx context.Context, id int64) (*idtype.UserID, error) {
	var rawUserID sql.NullInt64
	err := r.db.GetContext(ctx, &rawUserID, `SELECT user_id FROM movement WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wrapNotFound(err)
	}
	if err != nil {
		return nil, wrapInternal(err, "lookup movement owner")
	}
	if !rawUserID.Valid {
		return nil, nil
	}
	uid := idtype.UserID(rawUserID.Int64)
	return &uid, nil
}

// ListMovementsForUser lists every Movement visible to userID since cursor:
// its own private movements plus every system-shared one, including
// tombstones (§4.4 sync of user-specific + system-shared rows). A zero
// cursor returns every visible row, tombstones included.
func (r *Repository) ListMovementsForUser(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.Movement, error) {
	var rows []movementRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, user_id, name, last_change, deleted FROM movement
		 WHERE (user_id = $1 OR user_id IS NULL) AND last_change >= $2`,
		int64(userID), since,
	)
	if err != nil {
		return nil, wrapInternal(err, "list movements for user")
	}
	out := make([]domain.Movement, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// GetMovementByID fetches a single Movement.
func (r *Repository) GetMovementByID(ctx context.Context, id idtype.MovementID) (*domain.Movement, error) {
	var row movementRow
	err := r.db.GetContext(ctx, &row, `SELECT id, user_id, name, last_change, deleted FROM movement WHERE id = $1`, int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wrapNotFound(err)
	}
	if err != nil {
		return nil, wrapInternal(err, "get movement")
	}
	m := row.toDomain()
	return &m, nil
}

// UpdateMovement renames an already-verified, user-owned Movement.
func (r *Repository) UpdateMovement(ctx context.Context, m *domain.Movement) error {
	m.Touch(time.Now().UTC())
	res, err := r.db.ExecContext(ctx,
		`UPDATE movement SET name = $1, last_change = $2 WHERE id = $3 AND deleted = false`,
		m.Name, m.LastChange, int64(m.ID),
	)
	if err != nil {
		return wrapInternal(err, "update movement")
	}
	return expectOneRowAffected(res)
}

// DeleteMovement soft-deletes a user's custom Movement.
func (r *Repository) DeleteMovement(ctx context.Context, id idtype.MovementID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE movement SET deleted = true, last_change = $1 WHERE id = $2 AND deleted = false`,
		time.Now().UTC(), int64(id),
	)
	if err != nil {
		return wrapInternal(err, "delete movement")
	}
	return expectOneRowAffected(res)
}

type movementRow struct {
	ID         int64         `db:"id"`
	UserID     sql.NullInt64 `db:"user_id"`
	Name       string        `db:"name"`
	LastChange time.Time     `db:"last_change"`
	Deleted    bool          `db:"deleted"`
}

func (row movementRow) toDomain() domain.Movement {
	m := domain.Movement{
		ID:   idtype.MovementID(row.ID),
		Name: row.Name,
		SoftDeletable: domain.SoftDeletable{
			LastChange: row.LastChange,
			Deleted:    row.Deleted,
		},
	}
	if row.UserID.Valid {
		uid := idtype.UserID(row.UserID.Int64)
		m.UserID = &uid
	}
	return m
}

// CreateCardioSession inserts a user-owned cardio record, written by either
// an end user or an action provider acting on their behalf (§3).
func (r *Repository) CreateCardioSession(ctx context.Context, s domain.CardioSession) (*domain.CardioSession, error) {
	s.ID = idtype.New[idtype.CardioSessionID]()
	s.Touch(time.Now().UTC())

	var durationMs sql.NullInt64
	if s.Duration != nil {
		durationMs = sql.NullInt64{Int64: s.Duration.Milliseconds(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cardio_session (id, user_id, movement_id, datetime, distance_m, duration_ms, comments, last_change, deleted)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		int64(s.ID), int64(s.UserID), int64(s.MovementID), s.DateTime, s.Distance, durationMs, s.Comments, s.LastChange, s.Deleted,
	)
	if err != nil {
		return nil, wrapInternal(err, "insert cardio session")
	}
	return &s, nil
}

// CardioSessionExistsForMovementAt implements the provider runtime's
// break-on-known-record check (§4.3 step 3.e, §8 boundary scenario 4):
// whether userID already has a (non-deleted) session for movementID at
// exactly datetime.
func (r *Repository) CardioSessionExistsForMovementAt(ctx context.Context, userID idtype.UserID, movementID idtype.MovementID, datetime time.Time) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS(
			SELECT 1 FROM cardio_session
			WHERE user_id = $1 AND movement_id = $2 AND datetime = $3 AND deleted = false
		)
	`, int64(userID), int64(movementID), datetime)
	if err != nil {
		return false, wrapInternal(err, "check existing cardio session")
	}
	return exists, nil
}

// CardioSessionOwner resolves the owning UserID of a CardioSession, for
// auth.VerifyIDForUser.
func (r *Repository) CardioSessionOwner(ctx context.Context, id int64) (idtype.UserID, error) {
	var userID int64
	err := r.db.GetContext(ctx, &userID, `SELECT user_id FROM cardio_session WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, wrapNotFound(err)
	}
	if err != nil {
		return 0, wrapInternal(err, "lookup cardio session owner")
	}
	return idtype.UserID(userID), nil
}

// ListCardioSessionsByUser lists every CardioSession owned by userID since
// cursor, tombstones included. A zero cursor returns the full history.
func (r *Repository) ListCardioSessionsByUser(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.CardioSession, error) {
	var rows []cardioSessionRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, movement_id, datetime, distance_m, duration_ms, comments, last_change, deleted
		FROM cardio_session WHERE user_id = $1 AND last_change >= $2`, int64(userID), since)
	if err != nil {
		return nil, wrapInternal(err, "list cardio sessions by user")
	}
	out := make([]domain.CardioSession, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// GetCardioSessionByID fetches a single CardioSession.
func (r *Repository) GetCardioSessionByID(ctx context.Context, id idtype.CardioSessionID) (*domain.CardioSession, error) {
	var row cardioSessionRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, user_id, movement_id, datetime, distance_m, duration_ms, comments, last_change, deleted
		FROM cardio_session WHERE id = $1`, int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wrapNotFound(err)
	}
	if err != nil {
		return nil, wrapInternal(err, "get cardio session")
	}
	s := row.toDomain()
	return &s, nil
}

// UpdateCardioSession persists an already-verified CardioSession's mutable
// fields.
func (r *Repository) UpdateCardioSession(ctx context.Context, s *domain.CardioSession) error {
	s.Touch(time.Now().UTC())
	var durationMs sql.NullInt64
	if s.Duration != nil {
		durationMs = sql.NullInt64{Int64: s.Duration.Milliseconds(), Valid: true}
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE cardio_session
		SET movement_id = $1, datetime = $2, distance_m = $3, duration_ms = $4, comments = $5, last_change = $6
		WHERE id = $7 AND deleted = false`,
		int64(s.MovementID), s.DateTime, s.Distance, durationMs, s.Comments, s.LastChange, int64(s.ID),
	)
	if err != nil {
		return wrapInternal(err, "update cardio session")
	}
	return expectOneRowAffected(res)
}

// DeleteCardioSession soft-deletes a user's CardioSession.
func (r *Repository) DeleteCardioSession(ctx context.Context, id idtype.CardioSessionID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cardio_session SET deleted = true, last_change = $1 WHERE id = $2 AND deleted = false`,
		time.Now().UTC(), int64(id),
	)
	if err != nil {
		return wrapInternal(err, "delete cardio session")
	}
	return expectOneRowAffected(res)
}

type cardioSessionRow struct {
	ID         int64         `db:"id"`
	UserID     int64         `db:"user_id"`
	MovementID int64         `db:"movement_id"`
	DateTime   time.Time     `db:"datetime"`
	DistanceM  *float64      `db:"distance_m"`
	DurationMs sql.NullInt64 `db:"duration_ms"`
	Comments   *string       `db:"comments"`
	LastChange time.Time     `db:"last_change"`
	Deleted    bool          `db:"deleted"`
}

func (row cardioSessionRow) toDomain() domain.CardioSession {
	s := domain.CardioSession{
		ID:         idtype.CardioSessionID(row.ID),
		UserID:     idtype.UserID(row.UserID),
		MovementID: idtype.MovementID(row.MovementID),
		DateTime:   row.DateTime,
		Distance:   row.DistanceM,
		Comments:   row.Comments,
		SoftDeletable: domain.SoftDeletable{
			LastChange: row.LastChange,
			Deleted:    row.Deleted,
		},
	}
	if row.DurationMs.Valid {
		d := time.Duration(row.DurationMs.Int64) * time.Millisecond
		s.Duration = &d
	}
	return s
}

// CreateWod inserts a user-owned "workout of the day" record (§3).
func (r *Repository) CreateWod(ctx context.Context, w domain.Wod) (*domain.Wod, error) {
	w.ID = idtype.New[idtype.WodID]()
	w.Touch(time.Now().UTC())

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO wod (id, user_id, datetime, description, last_change, deleted)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		int64(w.ID), int64(w.UserID), w.DateTime, w.Description, w.LastChange, w.Deleted,
	)
	if err != nil {
		return nil, wrapInternal(err, "insert wod")
	}
	return &w, nil
}

// WodOwner resolves the owning UserID of a Wod, for auth.VerifyIDForUser.
func (r *Repository) WodOwner(ctx context.Context, id int64) (idtype.UserID, error) {
	var userID int64
	err := r.db.GetContext(ctx, &userID, `SELECT user_id FROM wod WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, wrapNotFound(err)
	}
	if err != nil {
		return 0, wrapInternal(err, "lookup wod owner")
	}
	return idtype.UserID(userID), nil
}

// ListWodsByUser lists every Wod owned by userID since cursor, tombstones
// included. A zero cursor returns the full history.
func (r *Repository) ListWodsByUser(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.Wod, error) {
	var wods []domain.Wod
	err := r.db.SelectContext(ctx, &wods, `
		SELECT id, user_id, datetime, description, last_change, deleted FROM wod
		WHERE user_id = $1 AND last_change >= $2`, int64(userID), since)
	if err != nil {
		return nil, wrapInternal(err, "list wods by user")
	}
	return wods, nil
}

// GetWodByID fetches a single Wod.
func (r *Repository) GetWodByID(ctx context.Context, id idtype.WodID) (*domain.Wod, error) {
	var w domain.Wod
	err := r.db.GetContext(ctx, &w, `
		SELECT id, user_id, datetime, description, last_change, deleted FROM wod WHERE id = $1`, int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wrapNotFound(err)
	}
	if err != nil {
		return nil, wrapInternal(err, "get wod")
	}
	return &w, nil
}

// UpdateWod persists an already-verified Wod's mutable fields.
func (r *Repository) UpdateWod(ctx context.Context, w *domain.Wod) error {
	w.Touch(time.Now().UTC())
	res, err := r.db.ExecContext(ctx, `
		UPDATE wod SET datetime = $1, description = $2, last_change = $3 WHERE id = $4 AND deleted = false`,
		w.DateTime, w.Description, w.LastChange, int64(w.ID),
	)
	if err != nil {
		return wrapInternal(err, "update wod")
	}
	return expectOneRowAffected(res)
}

// DeleteWod soft-deletes a user's Wod.
func (r *Repository) DeleteWod(ctx context.Context, id idtype.WodID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE wod SET deleted = true, last_change = $1 WHERE id = $2 AND deleted = false`,
		time.Now().UTC(), int64(id),
	)
	if err != nil {
		return wrapInternal(err, "delete wod")
	}
	return expectOneRowAffected(res)
}
