package domain

import (
	"time"

	"github.com/sport-log/sport-log-server/internal/idtype"
)

// Movement is a shared catalogue row ("running", "biking", ...). UserID is
// nil for system-shared movements, set for a user's private custom movement
// (§3 User-owned records, §4.4 sync of user-specific + system-shared rows).
type Movement struct {
	ID     idtype.MovementID `db:"id" json:"id"`
	UserID *idtype.UserID    `db:"user_id" json:"user_id,omitempty"`
	Name   string            `db:"name" json:"name"`
	SoftDeletable
}

// NormalizeMovementName implements the original provider's name-matching
// rule: lowercase, then strip whitespace and hyphens (§4.3 step 3.d,
// SPEC_FULL supplemented feature 2).
func NormalizeMovementName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '-':
			continue
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

// CardioSession is a user-owned record of one cardio activity, written by
// action providers and end users alike (§3 User-owned records).
type CardioSession struct {
	ID         idtype.CardioSessionID `db:"id" json:"id"`
	UserID     idtype.UserID          `db:"user_id" json:"user_id"`
	MovementID idtype.MovementID      `db:"movement_id" json:"movement_id"`
	DateTime   time.Time              `db:"datetime" json:"datetime"`
	Distance   *float64               `db:"distance_m" json:"distance,omitempty"`
	Duration   *time.Duration         `db:"duration_ms" json:"duration,omitempty"`
	Comments   *string                `db:"comments" json:"comments,omitempty"`
	SoftDeletable
}

// Wod is a user-owned "workout of the day" record (§3 User-owned records).
type Wod struct {
	ID          idtype.WodID  `db:"id" json:"id"`
	UserID      idtype.UserID `db:"user_id" json:"user_id"`
	DateTime    time.Time     `db:"datetime" json:"datetime"`
	Description *string       `db:"description" json:"description,omitempty"`
	SoftDeletable
}
