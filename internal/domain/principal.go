package domain

import "github.com/sport-log/sport-log-server/internal/idtype"

// User is an end-user account (§3 "Principals").
type User struct {
	ID           idtype.UserID `db:"id" json:"id"`
	Username     string        `db:"username" json:"username"`
	PasswordHash string        `db:"password" json:"-"`
	Email        string        `db:"email" json:"email"`
	SoftDeletable
}

// Platform is a third-party service an ActionProvider integrates with (e.g.
// "wodify", "sportstracker"). Referenced by PlatformCredential and
// ActionProvider.
type Platform struct {
	ID   idtype.PlatformID `db:"id" json:"id"`
	Name string            `db:"name" json:"name"`
	SoftDeletable
}

// PlatformCredential stores a user's third-party username/password for one
// platform, so an ActionProvider acting on the user's behalf can authenticate
// against it (§3, ExecutableActionEvent).
type PlatformCredential struct {
	ID         idtype.PlatformCredentialID `db:"id" json:"id"`
	UserID     idtype.UserID               `db:"user_id" json:"user_id"`
	PlatformID idtype.PlatformID           `db:"platform_id" json:"platform_id"`
	Username   string                      `db:"username" json:"username"`
	Password   string                      `db:"password" json:"password"`
	SoftDeletable
}

// ActionProvider is a registered worker identity, belonging to exactly one
// Platform, that executes ActionEvents (§3).
type ActionProvider struct {
	ID           idtype.ActionProviderID `db:"id" json:"id"`
	Name         string                  `db:"name" json:"name"`
	PasswordHash string                  `db:"password" json:"-"`
	PlatformID   idtype.PlatformID       `db:"platform_id" json:"platform_id"`
	Description  *string                 `db:"description" json:"description,omitempty"`
	SoftDeletable
}

// AdminUsername is the single well-known admin principal name (§3, §6).
const AdminUsername = "admin"
