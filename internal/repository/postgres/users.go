package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sport-log/sport-log-server/internal/domain"
	"github.com/sport-log/sport-log-server/internal/idtype"
)

// CreateUser inserts a new User, generating its id. Returns a conflict error
// if the username is already taken (invariant: username unique among
// non-deleted users, §6 self-registration).
func (r *Repository) CreateUser(ctx context.Context, username, passwordHash, email string) (*domain.User, error) {
	u := &domain.User{
		ID:           idtype.New[idtype.UserID](),
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
	}
	u.Touch(time.Now().UTC())

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO "user" (id, username, password, email, last_change, deleted)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		int64(u.ID), u.Username, u.PasswordHash, u.Email, u.LastChange, u.Deleted,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, wrapConflict("USERNAME_ALREADY_TAKEN", "username already taken")
		}
		return nil, wrapInternal(err, "insert user")
	}
	return u, nil
}

// GetUserByUsername looks up a non-deleted user by username, for the
// AuthUser Basic-auth path.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u,
		`SELECT id, username, password, email, last_change, deleted
		 FROM "user" WHERE username = $1 AND deleted = false`,
		username,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wrapNotFound(err)
	}
	if err != nil {
		return nil, wrapInternal(err, "get user by username")
	}
	return &u, nil
}

// GetUserByID looks up a user by id regardless of deleted state (callers
// that need the tombstone for sync use this; live-only callers filter after).
func (r *Repository) GetUserByID(ctx context.Context, id idtype.UserID) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u,
		`SELECT id, username, password, email, last_change, deleted
		 FROM "user" WHERE id = $1`,
		int64(id),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wrapNotFound(err)
	}
	if err != nil {
		return nil, wrapInternal(err, "get user by id")
	}
	return &u, nil
}

// UserExists reports whether id names any user (live or tombstoned) — the
// AuthUserAP `id` header only needs existence, ownership is established
// separately by the linking-event check.
func (r *Repository) UserExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM "user" WHERE id = $1)`, id)
	if err != nil {
		return false, wrapInternal(err, "check user exists")
	}
	return exists, nil
}

// UserPasswordHashByUsername is the narrow lookup the auth middleware uses,
// so it never needs the full domain.User shape.
func (r *Repository) UserPasswordHashByUsername(ctx context.Context, username string) (userID int64, passwordHash string, err error) {
	row := r.db.QueryRowxContext(ctx,
		`SELECT id, password FROM "user" WHERE username = $1 AND deleted = false`, username)
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", wrapNotFound(err)
		}
		return 0, "", wrapInternal(err, "lookup user credentials")
	}
	return userID, passwordHash, nil
}

// UpdateUser persists changed fields of an existing user and bumps
// last_change (invariant 5).
func (r *Repository) UpdateUser(ctx context.Context, u *domain.User) error {
	u.Touch(time.Now().UTC())
	res, err := r.db.ExecContext(ctx,
		`UPDATE "user" SET username = $1, password = $2, email = $3, last_change = $4
		 WHERE id = $5 AND deleted = false`,
		u.Username, u.PasswordHash, u.Email, u.LastChange, int64(u.ID),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return wrapConflict("USERNAME_ALREADY_TAKEN", "username already taken")
		}
		return wrapInternal(err, "update user")
	}
	return expectOneRowAffected(res)
}

// DeleteUser soft-deletes a user (self-deletion, §3 Lifecycle).
func (r *Repository) DeleteUser(ctx context.Context, id idtype.UserID) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE "user" SET deleted = true, last_change = $1 WHERE id = $2 AND deleted = false`,
		now, int64(id),
	)
	if err != nil {
		return wrapInternal(err, "delete user")
	}
	return expectOneRowAffected(res)
}

func expectOneRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return wrapInternal(err, "read rows affected")
	}
	if n == 0 {
		return wrapNotFound(fmt.Errorf("no matching row"))
	}
	return nil
}
