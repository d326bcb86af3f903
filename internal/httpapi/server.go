// Package httpapi implements the REST surface described in §6: path
// families per principal, Basic-auth-gated, JSON bodies, permissive CORS.
package httpapi

import (
	"context"
	"time"

	"github.com/sport-log/sport-log-server/internal/auth"
	"github.com/sport-log/sport-log-server/internal/config"
	"github.com/sport-log/sport-log-server/internal/domain"
	"github.com/sport-log/sport-log-server/internal/idtype"
)

// repository is the subset of *postgres.Repository the handlers call. Kept
// as an interface so handler tests can substitute a fake instead of sqlmock.
type repository interface {
	CreateUser(ctx context.Context, username, passwordHash, email string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByID(ctx context.Context, id idtype.UserID) (*domain.User, error)
	UserExists(ctx context.Context, id int64) (bool, error)
	UserPasswordHashByUsername(ctx context.Context, username string) (userID int64, passwordHash string, err error)
	UpdateUser(ctx context.Context, u *domain.User) error
	DeleteUser(ctx context.Context, id idtype.UserID) error

	ListPlatforms(ctx context.Context) ([]domain.Platform, error)
	CreatePlatform(ctx context.Context, name string) (*domain.Platform, error)

	CreatePlatformCredential(ctx context.Context, userID idtype.UserID, platformID idtype.PlatformID, username, password string) (*domain.PlatformCredential, error)
	PlatformCredentialOwner(ctx context.Context, id int64) (idtype.UserID, error)
	ListPlatformCredentialsByUser(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.PlatformCredential, error)
	GetPlatformCredentialByID(ctx context.Context, id idtype.PlatformCredentialID) (*domain.PlatformCredential, error)
	UpdatePlatformCredential(ctx context.Context, pc *domain.PlatformCredential) error
	DeletePlatformCredential(ctx context.Context, id idtype.PlatformCredentialID) error

	CreateActionProvider(ctx context.Context, name, passwordHash string, platformID idtype.PlatformID, description *string) (*domain.ActionProvider, error)
	ActionProviderPasswordHashByName(ctx context.Context, name string) (apID int64, passwordHash string, err error)
	GetActionProviderByID(ctx context.Context, id idtype.ActionProviderID) (*domain.ActionProvider, error)
	ListActionProviders(ctx context.Context) ([]domain.ActionProvider, error)
	DeleteActionProvider(ctx context.Context, id idtype.ActionProviderID) error
	ActionOwnerActionProvider(ctx context.Context, actionID int64) (idtype.ActionProviderID, error)

	CreateAction(ctx context.Context, name string, actionProviderID idtype.ActionProviderID, description *string, createBefore, deleteAfter time.Duration) (*domain.Action, error)
	GetActionByID(ctx context.Context, id idtype.ActionID) (*domain.Action, error)
	ListActionsByProvider(ctx context.Context, actionProviderID idtype.ActionProviderID) ([]domain.Action, error)
	ListAllActions(ctx context.Context) ([]domain.Action, error)

	CreateActionRule(ctx context.Context, userID idtype.UserID, actionID idtype.ActionID, weekday domain.Weekday, timeOfDay time.Time, arguments *string) (*domain.ActionRule, error)
	ActionRuleOwner(ctx context.Context, id int64) (idtype.UserID, error)
	GetActionRuleByID(ctx context.Context, id idtype.ActionRuleID) (*domain.ActionRule, error)
	ListActionRulesByUser(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.ActionRule, error)
	UpdateActionRule(ctx context.Context, ar *domain.ActionRule) error
	DeleteActionRule(ctx context.Context, id idtype.ActionRuleID) error

	CreateActionEvent(ctx context.Context, userID idtype.UserID, actionID idtype.ActionID, datetime time.Time, arguments *string) (*domain.ActionEvent, error)
	BulkInsertActionEvents(ctx context.Context, events []domain.ActionEvent) error
	ActionEventOwner(ctx context.Context, id int64) (idtype.UserID, error)
	GetActionEventByID(ctx context.Context, id idtype.ActionEventID) (*domain.ActionEvent, error)
	ListActionEventsByUser(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.ActionEvent, error)
	ListActionEventsByUserAndProvider(ctx context.Context, userID idtype.UserID, actionProviderID idtype.ActionProviderID) ([]domain.ActionEvent, error)
	UpdateActionEvent(ctx context.Context, e *domain.ActionEvent) error
	ListDeletableActionEvents(ctx context.Context) ([]domain.DeletableActionEvent, error)
	SoftDeleteActionEvents(ctx context.Context, ids []idtype.ActionEventID) error
	DisableActionEvents(ctx context.Context, ids []idtype.ActionEventID) error
	ListExecutableActionEvents(ctx context.Context, actionProviderID idtype.ActionProviderID, from, to time.Time) ([]domain.ExecutableActionEvent, error)
	HasLinkingEvent(ctx context.Context, userID idtype.UserID, actionProviderID idtype.ActionProviderID) (bool, error)
	ListCreatableActionRules(ctx context.Context) ([]domain.CreatableActionRule, error)

	CreateMovement(ctx context.Context, userID *idtype.UserID, name string) (*domain.Movement, error)
	MovementOwner(ctx context.Context, id int64) (*idtype.UserID, error)
	ListMovementsForUser(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.Movement, error)
	GetMovementByID(ctx context.Context, id idtype.MovementID) (*domain.Movement, error)
	UpdateMovement(ctx context.Context, m *domain.Movement) error
	DeleteMovement(ctx context.Context, id idtype.MovementID) error

	CreateCardioSession(ctx context.Context, s domain.CardioSession) (*domain.CardioSession, error)
	CardioSessionOwner(ctx context.Context, id int64) (idtype.UserID, error)
	ListCardioSessionsByUser(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.CardioSession, error)
	GetCardioSessionByID(ctx context.Context, id idtype.CardioSessionID) (*domain.CardioSession, error)
	UpdateCardioSession(ctx context.Context, s *domain.CardioSession) error
	DeleteCardioSession(ctx context.Context, id idtype.CardioSessionID) error
	CardioSessionExistsForMovementAt(ctx context.Context, userID idtype.UserID, movementID idtype.MovementID, datetime time.Time) (bool, error)

	CreateWod(ctx context.Context, w domain.Wod) (*domain.Wod, error)
	WodOwner(ctx context.Context, id int64) (idtype.UserID, error)
	ListWodsByUser(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.Wod, error)
	GetWodByID(ctx context.Context, id idtype.WodID) (*domain.Wod, error)
	UpdateWod(ctx context.Context, w *domain.Wod) error
	DeleteWod(ctx context.Context, id idtype.WodID) error

	EpochMaxLastChange(ctx context.Context, table string) (time.Time, error)
	SyncRowIDs(ctx context.Context, table string, callerUserID int64, cursor time.Time) ([]int64, error)

	GarbageCollect(ctx context.Context, cutoff time.Time) (int64, error)
}

// Server bundles the repository and configuration every handler needs.
type Server struct {
	repo repository
	cfg  *config.ServerConfig
}

// NewServer constructs a Server. repo is typically *postgres.Repository.
func NewServer(repo repository, cfg *config.ServerConfig) *Server {
	return &Server{repo: repo, cfg: cfg}
}

// verifier builds the auth.Verifier this server's middleware needs, backed
// by the repository's credential lookups.
func (s *Server) verifier() *auth.Verifier {
	return &auth.Verifier{
		Users: func(ctx context.Context, username string) (int64, string, error) {
			return s.repo.UserPasswordHashByUsername(ctx, username)
		},
		ActionProviders: func(ctx context.Context, name string) (int64, string, error) {
			return s.repo.ActionProviderPasswordHashByName(ctx, name)
		},
		UserExists: func(ctx context.Context, userID int64) (bool, error) {
			return s.repo.UserExists(ctx, userID)
		},
		AdminPassword:    s.cfg.AdminPassword,
		EventLinkChecker: s.repo,
	}
}
