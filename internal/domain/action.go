package domain

import (
	"time"

	"github.com/sport-log/sport-log-server/internal/idtype"
)

// Action is a named capability an ActionProvider exposes, e.g. "fetch WOD"
// (§3, GLOSSARY). CreateBefore/DeleteAfter govern the scheduler's horizon and
// expiry windows (§4.2).
type Action struct {
	ID               idtype.ActionID         `db:"id" json:"id"`
	Name             string                  `db:"name" json:"name"`
	ActionProviderID idtype.ActionProviderID `db:"action_provider_id" json:"action_provider_id"`
	Description      *string                 `db:"description" json:"description,omitempty"`
	CreateBefore     time.Duration           `db:"create_before_ms" json:"create_before"`
	DeleteAfter      time.Duration           `db:"delete_after_ms" json:"delete_after"`
	SoftDeletable
}

// ActionRule is a user's recurring request to execute an Action on a given
// weekday/time (§3, GLOSSARY).
type ActionRule struct {
	ID        idtype.ActionRuleID `db:"id" json:"id"`
	UserID    idtype.UserID       `db:"user_id" json:"user_id"`
	ActionID  idtype.ActionID     `db:"action_id" json:"action_id"`
	Weekday   Weekday             `db:"weekday" json:"weekday"`
	Time      time.Time           `db:"time_of_day" json:"time"` // only the time-of-day component is meaningful
	Arguments *string             `db:"arguments" json:"arguments,omitempty"`
	Enabled   bool                `db:"enabled" json:"enabled"`
	SoftDeletable
}

// ActionEvent is one concrete scheduled execution of an Action for one user
// (§3, GLOSSARY). Unique on (user_id, action_id, datetime_utc) among
// non-deleted rows (invariant 1).
type ActionEvent struct {
	ID        idtype.ActionEventID `db:"id" json:"id"`
	UserID    idtype.UserID        `db:"user_id" json:"user_id"`
	ActionID  idtype.ActionID      `db:"action_id" json:"action_id"`
	DateTime  time.Time            `db:"datetime" json:"datetime"`
	Arguments *string              `db:"arguments" json:"arguments,omitempty"`
	Enabled   bool                 `db:"enabled" json:"enabled"`
	SoftDeletable
}

// CreatableActionRule is the server-side projection joining an enabled,
// non-deleted ActionRule with its Action, exposing CreateBefore (§3).
type CreatableActionRule struct {
	UserID       idtype.UserID   `db:"user_id" json:"user_id"`
	ActionID     idtype.ActionID `db:"action_id" json:"action_id"`
	Weekday      Weekday         `db:"weekday" json:"weekday"`
	Time         time.Time       `db:"time_of_day" json:"time"`
	Arguments    *string         `db:"arguments" json:"arguments,omitempty"`
	CreateBefore time.Duration   `db:"create_before_ms" json:"create_before"`
}

// DeletableActionEvent is the projection joining a non-deleted ActionEvent
// with its Action, exposing DeleteAfter (§3).
type DeletableActionEvent struct {
	ID          idtype.ActionEventID `db:"id" json:"id"`
	DateTime    time.Time            `db:"datetime" json:"datetime"`
	DeleteAfter time.Duration        `db:"delete_after_ms" json:"delete_after"`
}

// ExecutableActionEvent is the projection joining an enabled, non-deleted
// ActionEvent with its Action, ActionProvider, and the owning user's
// PlatformCredential for the provider's platform (outer-joined: absent
// credentials yield nil Username/Password) (§3).
type ExecutableActionEvent struct {
	ID               idtype.ActionEventID    `db:"id" json:"id"`
	UserID           idtype.UserID           `db:"user_id" json:"user_id"`
	ActionID         idtype.ActionID         `db:"action_id" json:"action_id"`
	ActionName       string                  `db:"action_name" json:"action_name"`
	ActionProviderID idtype.ActionProviderID `db:"action_provider_id" json:"action_provider_id"`
	DateTime         time.Time               `db:"datetime" json:"datetime"`
	Arguments        *string                 `db:"arguments" json:"arguments,omitempty"`
	Username         *string                 `db:"username" json:"username,omitempty"`
	Password         *string                 `db:"password" json:"password,omitempty"`
}
