package httpapi

import (
	"time"

	"github.com/sport-log/sport-log-server/internal/domain"
	"github.com/sport-log/sport-log-server/internal/idtype"
)

// Request/response payloads. Every payload that a user submits for a
// user-owned resource carries its own UserID and implements auth.Owned so it
// can go through the verification protocol in verify.go before the handler
// touches the repository.

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

type updateUserRequest struct {
	ID       idtype.UserID `json:"id" binding:"required"`
	Username string        `json:"username" binding:"required"`
	Password *string       `json:"password"`
	Email    string        `json:"email" binding:"required,email"`
}

func (r updateUserRequest) OwnerUserID() idtype.UserID { return r.ID }

type createPlatformRequest struct {
	Name string `json:"name" binding:"required"`
}

type createPlatformCredentialRequest struct {
	UserID     idtype.UserID     `json:"user_id" binding:"required"`
	PlatformID idtype.PlatformID `json:"platform_id" binding:"required"`
	Username   string            `json:"username" binding:"required"`
	Password   string            `json:"password" binding:"required"`
}

func (r createPlatformCredentialRequest) OwnerUserID() idtype.UserID { return r.UserID }

type updatePlatformCredentialRequest struct {
	ID       idtype.PlatformCredentialID `json:"id" binding:"required"`
	UserID   idtype.UserID               `json:"user_id" binding:"required"`
	Username string                      `json:"username" binding:"required"`
	Password string                      `json:"password" binding:"required"`
}

func (r updatePlatformCredentialRequest) OwnerUserID() idtype.UserID { return r.UserID }

type createActionProviderRequest struct {
	Name        string            `json:"name" binding:"required"`
	Password    string            `json:"password" binding:"required"`
	PlatformID  idtype.PlatformID `json:"platform_id" binding:"required"`
	Description *string           `json:"description"`
}

type createActionRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description"`
	CreateBefore int64   `json:"create_before" binding:"required"` // milliseconds
	DeleteAfter  int64   `json:"delete_after" binding:"required"`  // milliseconds
}

type createActionRuleRequest struct {
	UserID    idtype.UserID   `json:"user_id" binding:"required"`
	ActionID  idtype.ActionID `json:"action_id" binding:"required"`
	Weekday   domain.Weekday  `json:"weekday" binding:"weekday"`
	Time      time.Time       `json:"time" binding:"required"`
	Arguments *string         `json:"arguments"`
}

func (r createActionRuleRequest) OwnerUserID() idtype.UserID { return r.UserID }

type updateActionRuleRequest struct {
	ID        idtype.ActionRuleID `json:"id" binding:"required"`
	UserID    idtype.UserID       `json:"user_id" binding:"required"`
	Weekday   domain.Weekday      `json:"weekday" binding:"weekday"`
	Time      time.Time           `json:"time" binding:"required"`
	Arguments *string             `json:"arguments"`
	Enabled   bool                `json:"enabled"`
}

func (r updateActionRuleRequest) OwnerUserID() idtype.UserID { return r.UserID }

type createActionEventRequest struct {
	UserID    idtype.UserID   `json:"user_id" binding:"required"`
	ActionID  idtype.ActionID `json:"action_id" binding:"required"`
	DateTime  time.Time       `json:"datetime" binding:"required"`
	Arguments *string         `json:"arguments"`
}

func (r createActionEventRequest) OwnerUserID() idtype.UserID { return r.UserID }

type updateActionEventRequest struct {
	ID        idtype.ActionEventID `json:"id" binding:"required"`
	UserID    idtype.UserID        `json:"user_id" binding:"required"`
	DateTime  time.Time            `json:"datetime" binding:"required"`
	Arguments *string              `json:"arguments"`
	Enabled   bool                 `json:"enabled"`
}

func (r updateActionEventRequest) OwnerUserID() idtype.UserID { return r.UserID }

type idList struct {
	IDs []int64 `json:"ids" binding:"required"`
}

type createMovementRequest struct {
	UserID *idtype.UserID `json:"user_id"`
	Name   string         `json:"name" binding:"required"`
}

type updateMovementRequest struct {
	ID     idtype.MovementID `json:"id" binding:"required"`
	UserID *idtype.UserID    `json:"user_id"`
	Name   string            `json:"name" binding:"required"`
}

type createCardioSessionRequest struct {
	UserID     idtype.UserID     `json:"user_id" binding:"required"`
	MovementID idtype.MovementID `json:"movement_id" binding:"required"`
	DateTime   time.Time         `json:"datetime" binding:"required"`
	Distance   *float64          `json:"distance"`
	DurationMs *int64            `json:"duration"`
	Comments   *string           `json:"comments"`
}

func (r createCardioSessionRequest) OwnerUserID() idtype.UserID { return r.UserID }

func (r createCardioSessionRequest) toDomain() domain.CardioSession {
	s := domain.CardioSession{
		UserID:     r.UserID,
		MovementID: r.MovementID,
		DateTime:   r.DateTime,
		Distance:   r.Distance,
		Comments:   r.Comments,
	}
	if r.DurationMs != nil {
		d := time.Duration(*r.DurationMs) * time.Millisecond
		s.Duration = &d
	}
	return s
}

type updateCardioSessionRequest struct {
	ID         idtype.CardioSessionID `json:"id" binding:"required"`
	UserID     idtype.UserID          `json:"user_id" binding:"required"`
	MovementID idtype.MovementID      `json:"movement_id" binding:"required"`
	DateTime   time.Time              `json:"datetime" binding:"required"`
	Distance   *float64               `json:"distance"`
	DurationMs *int64                 `json:"duration"`
	Comments   *string                `json:"comments"`
}

func (r updateCardioSessionRequest) OwnerUserID() idtype.UserID { return r.UserID }

type createWodRequest struct {
	UserID      idtype.UserID `json:"user_id" binding:"required"`
	DateTime    time.Time     `json:"datetime" binding:"required"`
	Description *string       `json:"description"`
}

func (r createWodRequest) OwnerUserID() idtype.UserID { return r.UserID }

func (r createWodRequest) toDomain() domain.Wod {
	return domain.Wod{UserID: r.UserID, DateTime: r.DateTime, Description: r.Description}
}

type updateWodRequest struct {
	ID          idtype.WodID  `json:"id" binding:"required"`
	UserID      idtype.UserID `json:"user_id" binding:"required"`
	DateTime    time.Time     `json:"datetime" binding:"required"`
	Description *string       `json:"description"`
}

func (r updateWodRequest) OwnerUserID() idtype.UserID { return r.UserID }

// accountData is the bootstrap bundle a freshly-authenticated client fetches
// once instead of issuing a sync request per resource (§3 supplemented
// feature: initial full-state fetch).
type accountData struct {
	User                *domain.User                `json:"user"`
	PlatformCredentials []domain.PlatformCredential `json:"platform_credentials"`
	ActionRules         []domain.ActionRule         `json:"action_rules"`
	ActionEvents        []domain.ActionEvent        `json:"action_events"`
	Movements           []domain.Movement           `json:"movements"`
	CardioSessions      []domain.CardioSession      `json:"cardio_sessions"`
	Wods                []domain.Wod                `json:"wods"`
}
