package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/sport-log/sport-log-server/internal/domain"
	"github.com/sport-log/sport-log-server/internal/idtype"
)

// fakeRepo implements the repository interface with overridable function
// fields, so each test wires up only the calls it expects; anything else
// panics loudly instead of silently returning a zero value.
type fakeRepo struct {
	createUserFn                         func(ctx context.Context, username, passwordHash, email string) (*domain.User, error)
	getUserByUsernameFn                  func(ctx context.Context, username string) (*domain.User, error)
	getUserByIDFn                        func(ctx context.Context, id idtype.UserID) (*domain.User, error)
	userExistsFn                         func(ctx context.Context, id int64) (bool, error)
	userPasswordHashByUsernameFn         func(ctx context.Context, username string) (int64, string, error)
	updateUserFn                         func(ctx context.Context, u *domain.User) error
	deleteUserFn                         func(ctx context.Context, id idtype.UserID) error
	listPlatformsFn                      func(ctx context.Context) ([]domain.Platform, error)
	createPlatformFn                     func(ctx context.Context, name string) (*domain.Platform, error)
	createPlatformCredentialFn           func(ctx context.Context, userID idtype.UserID, platformID idtype.PlatformID, username, password string) (*domain.PlatformCredential, error)
	platformCredentialOwnerFn            func(ctx context.Context, id int64) (idtype.UserID, error)
	listPlatformCredentialsByUserFn      func(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.PlatformCredential, error)
	getPlatformCredentialByIDFn          func(ctx context.Context, id idtype.PlatformCredentialID) (*domain.PlatformCredential, error)
	updatePlatformCredentialFn           func(ctx context.Context, pc *domain.PlatformCredential) error
	deletePlatformCredentialFn           func(ctx context.Context, id idtype.PlatformCredentialID) error
	createActionProviderFn               func(ctx context.Context, name, passwordHash string, platformID idtype.PlatformID, description *string) (*domain.ActionProvider, error)
	actionProviderPasswordHashByNameFn   func(ctx context.Context, name string) (int64, string, error)
	getActionProviderByIDFn              func(ctx context.Context, id idtype.ActionProviderID) (*domain.ActionProvider, error)
	listActionProvidersFn                func(ctx context.Context) ([]domain.ActionProvider, error)
	deleteActionProviderFn                func(ctx context.Context, id idtype.ActionProviderID) error
	actionOwnerActionProviderFn           func(ctx context.Context, actionID int64) (idtype.ActionProviderID, error)
	createActionFn                        func(ctx context.Context, name string, actionProviderID idtype.ActionProviderID, description *string, createBefore, deleteAfter time.Duration) (*domain.Action, error)
	getActionByIDFn                       func(ctx context.Context, id idtype.ActionID) (*domain.Action, error)
	listActionsByProviderFn               func(ctx context.Context, actionProviderID idtype.ActionProviderID) ([]domain.Action, error)
	listAllActionsFn                      func(ctx context.Context) ([]domain.Action, error)
	createActionRuleFn                    func(ctx context.Context, userID idtype.UserID, actionID idtype.ActionID, weekday domain.Weekday, timeOfDay time.Time, arguments *string) (*domain.ActionRule, error)
	actionRuleOwnerFn                     func(ctx context.Context, id int64) (idtype.UserID, error)
	getActionRuleByIDFn                   func(ctx context.Context, id idtype.ActionRuleID) (*domain.ActionRule, error)
	listActionRulesByUserFn               func(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.ActionRule, error)
	updateActionRuleFn                    func(ctx context.Context, ar *domain.ActionRule) error
	deleteActionRuleFn                    func(ctx context.Context, id idtype.ActionRuleID) error
	createActionEventFn                   func(ctx context.Context, userID idtype.UserID, actionID idtype.ActionID, datetime time.Time, arguments *string) (*domain.ActionEvent, error)
	bulkInsertActionEventsFn              func(ctx context.Context, events []domain.ActionEvent) error
	actionEventOwnerFn                    func(ctx context.Context, id int64) (idtype.UserID, error)
	getActionEventByIDFn                  func(ctx context.Context, id idtype.ActionEventID) (*domain.ActionEvent, error)
	listActionEventsByUserFn              func(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.ActionEvent, error)
	listActionEventsByUserAndProviderFn   func(ctx context.Context, userID idtype.UserID, actionProviderID idtype.ActionProviderID) ([]domain.ActionEvent, error)
	updateActionEventFn                   func(ctx context.Context, e *domain.ActionEvent) error
	listDeletableActionEventsFn           func(ctx context.Context) ([]domain.DeletableActionEvent, error)
	softDeleteActionEventsFn              func(ctx context.Context, ids []idtype.ActionEventID) error
	disableActionEventsFn                 func(ctx context.Context, ids []idtype.ActionEventID) error
	listExecutableActionEventsFn          func(ctx context.Context, actionProviderID idtype.ActionProviderID, from, to time.Time) ([]domain.ExecutableActionEvent, error)
	hasLinkingEventFn                     func(ctx context.Context, userID idtype.UserID, actionProviderID idtype.ActionProviderID) (bool, error)
	listCreatableActionRulesFn            func(ctx context.Context) ([]domain.CreatableActionRule, error)
	createMovementFn                      func(ctx context.Context, userID *idtype.UserID, name string) (*domain.Movement, error)
	movementOwnerFn                       func(ctx context.Context, id int64) (*idtype.UserID, error)
	listMovementsForUserFn                func(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.Movement, error)
	getMovementByIDFn                     func(ctx context.Context, id idtype.MovementID) (*domain.Movement, error)
	updateMovementFn                      func(ctx context.Context, m *domain.Movement) error
	deleteMovementFn                       func(ctx context.Context, id idtype.MovementID) error
	createCardioSessionFn                  func(ctx context.Context, s domain.CardioSession) (*domain.CardioSession, error)
	cardioSessionOwnerFn                   func(ctx context.Context, id int64) (idtype.UserID, error)
	listCardioSessionsByUserFn             func(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.CardioSession, error)
	getCardioSessionByIDFn                 func(ctx context.Context, id idtype.CardioSessionID) (*domain.CardioSession, error)
	updateCardioSessionFn                  func(ctx context.Context, s *domain.CardioSession) error
	deleteCardioSessionFn                  func(ctx context.Context, id idtype.CardioSessionID) error
	cardioSessionExistsForMovementAtFn     func(ctx context.Context, userID idtype.UserID, movementID idtype.MovementID, datetime time.Time) (bool, error)
	createWodFn                            func(ctx context.Context, w domain.Wod) (*domain.Wod, error)
	wodOwnerFn                             func(ctx context.Context, id int64) (idtype.UserID, error)
	listWodsByUserFn                       func(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.Wod, error)
	getWodByIDFn                           func(ctx context.Context, id idtype.WodID) (*domain.Wod, error)
	updateWodFn                            func(ctx context.Context, w *domain.Wod) error
	deleteWodFn                            func(ctx context.Context, id idtype.WodID) error
	epochMaxLastChangeFn                   func(ctx context.Context, table string) (time.Time, error)
	syncRowIDsFn                           func(ctx context.Context, table string, callerUserID int64, cursor time.Time) ([]int64, error)
	garbageCollectFn                       func(ctx context.Context, cutoff time.Time) (int64, error)
}

func notStubbed(name string) {
	panic(fmt.Sprintf("fakeRepo: %s not stubbed for this test", name))
}

func (f *fakeRepo) CreateUser(ctx context.Context, username, passwordHash, email string) (*domain.User, error) {
	if f.createUserFn == nil {
		notStubbed("CreateUser")
	}
	return f.createUserFn(ctx, username, passwordHash, email)
}
func (f *fakeRepo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if f.getUserByUsernameFn == nil {
		notStubbed("GetUserByUsername")
	}
	return f.getUserByUsernameFn(ctx, username)
}
func (f *fakeRepo) GetUserByID(ctx context.Context, id idtype.UserID) (*domain.User, error) {
	if f.getUserByIDFn == nil {
		notStubbed("GetUserByID")
	}
	return f.getUserByIDFn(ctx, id)
}
func (f *fakeRepo) UserExists(ctx context.Context, id int64) (bool, error) {
	if f.userExistsFn == nil {
		notStubbed("UserExists")
	}
	return f.userExistsFn(ctx, id)
}
func (f *fakeRepo) UserPasswordHashByUsername(ctx context.Context, username string) (int64, string, error) {
	if f.userPasswordHashByUsernameFn == nil {
		notStubbed("UserPasswordHashByUsername")
	}
	return f.userPasswordHashByUsernameFn(ctx, username)
}
func (f *fakeRepo) UpdateUser(ctx context.Context, u *domain.User) error {
	if f.updateUserFn == nil {
		notStubbed("UpdateUser")
	}
	return f.updateUserFn(ctx, u)
}
func (f *fakeRepo) DeleteUser(ctx context.Context, id idtype.UserID) error {
	if f.deleteUserFn == nil {
		notStubbed("DeleteUser")
	}
	return f.deleteUserFn(ctx, id)
}
func (f *fakeRepo) ListPlatforms(ctx context.Context) ([]domain.Platform, error) {
	if f.listPlatformsFn == nil {
		notStubbed("ListPlatforms")
	}
	return f.listPlatformsFn(ctx)
}
func (f *fakeRepo) CreatePlatform(ctx context.Context, name string) (*domain.Platform, error) {
	if f.createPlatformFn == nil {
		notStubbed("CreatePlatform")
	}
	return f.createPlatformFn(ctx, name)
}
func (f *fakeRepo) CreatePlatformCredential(ctx context.Context, userID idtype.UserID, platformID idtype.PlatformID, username, password string) (*domain.PlatformCredential, error) {
	if f.createPlatformCredentialFn == nil {
		notStubbed("CreatePlatformCredential")
	}
	return f.createPlatformCredentialFn(ctx, userID, platformID, username, password)
}
func (f *fakeRepo) PlatformCredentialOwner(ctx context.Context, id int64) (idtype.UserID, error) {
	if f.platformCredentialOwnerFn == nil {
		notStubbed("PlatformCredentialOwner")
	}
	return f.platformCredentialOwnerFn(ctx, id)
}
func (f *fakeRepo) ListPlatformCredentialsByUser(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.PlatformCredential, error) {
	if f.listPlatformCredentialsByUserFn == nil {
		notStubbed("ListPlatformCredentialsByUser")
	}
	return f.listPlatformCredentialsByUserFn(ctx, userID, since)
}
func (f *fakeRepo) GetPlatformCredentialByID(ctx context.Context, id idtype.PlatformCredentialID) (*domain.PlatformCredential, error) {
	if f.getPlatformCredentialByIDFn == nil {
		notStubbed("GetPlatformCredentialByID")
	}
	return f.getPlatformCredentialByIDFn(ctx, id)
}
func (f *fakeRepo) UpdatePlatformCredential(ctx context.Context, pc *domain.PlatformCredential) error {
	if f.updatePlatformCredentialFn == nil {
		notStubbed("UpdatePlatformCredential")
	}
	return f.updatePlatformCredentialFn(ctx, pc)
}
func (f *fakeRepo) DeletePlatformCredential(ctx context.Context, id idtype.PlatformCredentialID) error {
	if f.deletePlatformCredentialFn == nil {
		notStubbed("DeletePlatformCredential")
	}
	return f.deletePlatformCredentialFn(ctx, id)
}
func (f *fakeRepo) CreateActionProvider(ctx context.Context, name, passwordHash string, platformID idtype.PlatformID, description *string) (*domain.ActionProvider, error) {
	if f.createActionProviderFn == nil {
		notStubbed("CreateActionProvider")
	}
	return f.createActionProviderFn(ctx, name, passwordHash, platformID, description)
}
func (f *fakeRepo) ActionProviderPasswordHashByName(ctx context.Context, name string) (int64, string, error) {
	if f.actionProviderPasswordHashByNameFn == nil {
		notStubbed("ActionProviderPasswordHashByName")
	}
	return f.actionProviderPasswordHashByNameFn(ctx, name)
}
func (f *fakeRepo) GetActionProviderByID(ctx context.Context, id idtype.ActionProviderID) (*domain.ActionProvider, error) {
	if f.getActionProviderByIDFn == nil {
		notStubbed("GetActionProviderByID")
	}
	return f.getActionProviderByIDFn(ctx, id)
}
func (f *fakeRepo) ListActionProviders(ctx context.Context) ([]domain.ActionProvider, error) {
	if f.listActionProvidersFn == nil {
		notStubbed("ListActionProviders")
	}
	return f.listActionProvidersFn(ctx)
}
func (f *fakeRepo) DeleteActionProvider(ctx context.Context, id idtype.ActionProviderID) error {
	if f.deleteActionProviderFn == nil {
		notStubbed("DeleteActionProvider")
	}
	return f.deleteActionProviderFn(ctx, id)
}
func (f *fakeRepo) ActionOwnerActionProvider(ctx context.Context, actionID int64) (idtype.ActionProviderID, error) {
	if f.actionOwnerActionProviderFn == nil {
		notStubbed("ActionOwnerActionProvider")
	}
	return f.actionOwnerActionProviderFn(ctx, actionID)
}
func (f *fakeRepo) CreateAction(ctx context.Context, name string, actionProviderID idtype.ActionProviderID, description *string, createBefore, deleteAfter time.Duration) (*domain.Action, error) {
	if f.createActionFn == nil {
		notStubbed("CreateAction")
	}
	return f.createActionFn(ctx, name, actionProviderID, description, createBefore, deleteAfter)
}
func (f *fakeRepo) GetActionByID(ctx context.Context, id idtype.ActionID) (*domain.Action, error) {
	if f.getActionByIDFn == nil {
		notStubbed("GetActionByID")
	}
	return f.getActionByIDFn(ctx, id)
}
func (f *fakeRepo) ListActionsByProvider(ctx context.Context, actionProviderID idtype.ActionProviderID) ([]domain.Action, error) {
	if f.listActionsByProviderFn == nil {
		notStubbed("ListActionsByProvider")
	}
	return f.listActionsByProviderFn(ctx, actionProviderID)
}
func (f *fakeRepo) ListAllActions(ctx context.Context) ([]domain.Action, error) {
	if f.listAllActionsFn == nil {
		notStubbed("ListAllActions")
	}
	return f.listAllActionsFn(ctx)
}
func (f *fakeRepo) CreateActionRule(ctx context.Context, userID idtype.UserID, actionID idtype.ActionID, weekday domain.Weekday, timeOfDay time.Time, arguments *string) (*domain.ActionRule, error) {
	if f.createActionRuleFn == nil {
		notStubbed("CreateActionRule")
	}
	return f.createActionRuleFn(ctx, userID, actionID, weekday, timeOfDay, arguments)
}
func (f *fakeRepo) ActionRuleOwner(ctx context.Context, id int64) (idtype.UserID, error) {
	if f.actionRuleOwnerFn == nil {
		notStubbed("ActionRuleOwner")
	}
	return f.actionRuleOwnerFn(ctx, id)
}
func (f *fakeRepo) GetActionRuleByID(ctx context.Context, id idtype.ActionRuleID) (*domain.ActionRule, error) {
	if f.getActionRuleByIDFn == nil {
		notStubbed("GetActionRuleByID")
	}
	return f.getActionRuleByIDFn(ctx, id)
}
func (f *fakeRepo) ListActionRulesByUser(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.ActionRule, error) {
	if f.listActionRulesByUserFn == nil {
		notStubbed("ListActionRulesByUser")
	}
	return f.listActionRulesByUserFn(ctx, userID, since)
}
func (f *fakeRepo) UpdateActionRule(ctx context.Context, ar *domain.ActionRule) error {
	if f.updateActionRuleFn == nil {
		notStubbed("UpdateActionRule")
	}
	return f.updateActionRuleFn(ctx, ar)
}
func (f *fakeRepo) DeleteActionRule(ctx context.Context, id idtype.ActionRuleID) error {
	if f.deleteActionRuleFn == nil {
		notStubbed("DeleteActionRule")
	}
	return f.deleteActionRuleFn(ctx, id)
}
func (f *fakeRepo) CreateActionEvent(ctx context.Context, userID idtype.UserID, actionID idtype.ActionID, datetime time.Time, arguments *string) (*domain.ActionEvent, error) {
	if f.createActionEventFn == nil {
		notStubbed("CreateActionEvent")
	}
	return f.createActionEventFn(ctx, userID, actionID, datetime, arguments)
}
func (f *fakeRepo) BulkInsertActionEvents(ctx context.Context, events []domain.ActionEvent) error {
	if f.bulkInsertActionEventsFn == nil {
		notStubbed("BulkInsertActionEvents")
	}
	return f.bulkInsertActionEventsFn(ctx, events)
}
func (f *fakeRepo) ActionEventOwner(ctx context.Context, id int64) (idtype.UserID, error) {
	if f.actionEventOwnerFn == nil {
		notStubbed("ActionEventOwner")
	}
	return f.actionEventOwnerFn(ctx, id)
}
func (f *fakeRepo) GetActionEventByID(ctx context.Context, id idtype.ActionEventID) (*domain.ActionEvent, error) {
	if f.getActionEventByIDFn == nil {
		notStubbed("GetActionEventByID")
	}
	return f.getActionEventByIDFn(ctx, id)
}
func (f *fakeRepo) ListActionEventsByUser(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.ActionEvent, error) {
	if f.listActionEventsByUserFn == nil {
		notStubbed("ListActionEventsByUser")
	}
	return f.listActionEventsByUserFn(ctx, userID, since)
}
func (f *fakeRepo) ListActionEventsByUserAndProvider(ctx context.Context, userID idtype.UserID, actionProviderID idtype.ActionProviderID) ([]domain.ActionEvent, error) {
	if f.listActionEventsByUserAndProviderFn == nil {
		notStubbed("ListActionEventsByUserAndProvider")
	}
	return f.listActionEventsByUserAndProviderFn(ctx, userID, actionProviderID)
}
func (f *fakeRepo) UpdateActionEvent(ctx context.Context, e *domain.ActionEvent) error {
	if f.updateActionEventFn == nil {
		notStubbed("UpdateActionEvent")
	}
	return f.updateActionEventFn(ctx, e)
}
func (f *fakeRepo) ListDeletableActionEvents(ctx context.Context) ([]domain.DeletableActionEvent, error) {
	if f.listDeletableActionEventsFn == nil {
		notStubbed("ListDeletableActionEvents")
	}
	return f.listDeletableActionEventsFn(ctx)
}
func (f *fakeRepo) SoftDeleteActionEvents(ctx context.Context, ids []idtype.ActionEventID) error {
	if f.softDeleteActionEventsFn == nil {
		notStubbed("SoftDeleteActionEvents")
	}
	return f.softDeleteActionEventsFn(ctx, ids)
}
func (f *fakeRepo) DisableActionEvents(ctx context.Context, ids []idtype.ActionEventID) error {
	if f.disableActionEventsFn == nil {
		notStubbed("DisableActionEvents")
	}
	return f.disableActionEventsFn(ctx, ids)
}
func (f *fakeRepo) ListExecutableActionEvents(ctx context.Context, actionProviderID idtype.ActionProviderID, from, to time.Time) ([]domain.ExecutableActionEvent, error) {
	if f.listExecutableActionEventsFn == nil {
		notStubbed("ListExecutableActionEvents")
	}
	return f.listExecutableActionEventsFn(ctx, actionProviderID, from, to)
}
func (f *fakeRepo) HasLinkingEvent(ctx context.Context, userID idtype.UserID, actionProviderID idtype.ActionProviderID) (bool, error) {
	if f.hasLinkingEventFn == nil {
		notStubbed("HasLinkingEvent")
	}
	return f.hasLinkingEventFn(ctx, userID, actionProviderID)
}
func (f *fakeRepo) ListCreatableActionRules(ctx context.Context) ([]domain.CreatableActionRule, error) {
	if f.listCreatableActionRulesFn == nil {
		notStubbed("ListCreatableActionRules")
	}
	return f.listCreatableActionRulesFn(ctx)
}
func (f *fakeRepo) CreateMovement(ctx context.Context, userID *idtype.UserID, name string) (*domain.Movement, error) {
	if f.createMovementFn == nil {
		notStubbed("CreateMovement")
	}
	return f.createMovementFn(ctx, userID, name)
}
func (f *fakeRepo) MovementOwner(ctx context.Context, id int64) (*idtype.UserID, error) {
	if f.movementOwnerFn == nil {
		notStubbed("MovementOwner")
	}
	return f.movementOwnerFn(ctx, id)
}
func (f *fakeRepo) ListMovementsForUser(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.Movement, error) {
	if f.listMovementsForUserFn == nil {
		notStubbed("ListMovementsForUser")
	}
	return f.listMovementsForUserFn(ctx, userID, since)
}
func (f *fakeRepo) GetMovementByID(ctx context.Context, id idtype.MovementID) (*domain.Movement, error) {
	if f.getMovementByIDFn == nil {
		notStubbed("GetMovementByID")
	}
	return f.getMovementByIDFn(ctx, id)
}
func (f *fakeRepo) UpdateMovement(ctx context.Context, m *domain.Movement) error {
	if f.updateMovementFn == nil {
		notStubbed("UpdateMovement")
	}
	return f.updateMovementFn(ctx, m)
}
func (f *fakeRepo) DeleteMovement(ctx context.Context, id idtype.MovementID) error {
	if f.deleteMovementFn == nil {
		notStubbed("DeleteMovement")
	}
	return f.deleteMovementFn(ctx, id)
}
func (f *fakeRepo) CreateCardioSession(ctx context.Context, s domain.CardioSession) (*domain.CardioSession, error) {
	if f.createCardioSessionFn == nil {
		notStubbed("CreateCardioSession")
	}
	return f.createCardioSessionFn(ctx, s)
}
func (f *fakeRepo) CardioSessionOwner(ctx context.Context, id int64) (idtype.UserID, error) {
	if f.cardioSessionOwnerFn == nil {
		notStubbed("CardioSessionOwner")
	}
	return f.cardioSessionOwnerFn(ctx, id)
}
func (f *fakeRepo) ListCardioSessionsByUser(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.CardioSession, error) {
	if f.listCardioSessionsByUserFn == nil {
		notStubbed("ListCardioSessionsByUser")
	}
	return f.listCardioSessionsByUserFn(ctx, userID, since)
}
func (f *fakeRepo) GetCardioSessionByID(ctx context.Context, id idtype.CardioSessionID) (*domain.CardioSession, error) {
	if f.getCardioSessionByIDFn == nil {
		notStubbed("GetCardioSessionByID")
	}
	return f.getCardioSessionByIDFn(ctx, id)
}
func (f *fakeRepo) UpdateCardioSession(ctx context.Context, s *domain.CardioSession) error {
	if f.updateCardioSessionFn == nil {
		notStubbed("UpdateCardioSession")
	}
	return f.updateCardioSessionFn(ctx, s)
}
func (f *fakeRepo) DeleteCardioSession(ctx context.Context, id idtype.CardioSessionID) error {
	if f.deleteCardioSessionFn == nil {
		notStubbed("DeleteCardioSession")
	}
	return f.deleteCardioSessionFn(ctx, id)
}
func (f *fakeRepo) CardioSessionExistsForMovementAt(ctx context.Context, userID idtype.UserID, movementID idtype.MovementID, datetime time.Time) (bool, error) {
	if f.cardioSessionExistsForMovementAtFn == nil {
		notStubbed("CardioSessionExistsForMovementAt")
	}
	return f.cardioSessionExistsForMovementAtFn(ctx, userID, movementID, datetime)
}
func (f *fakeRepo) CreateWod(ctx context.Context, w domain.Wod) (*domain.Wod, error) {
	if f.createWodFn == nil {
		notStubbed("CreateWod")
	}
	return f.createWodFn(ctx, w)
}
func (f *fakeRepo) WodOwner(ctx context.Context, id int64) (idtype.UserID, error) {
	if f.wodOwnerFn == nil {
		notStubbed("WodOwner")
	}
	return f.wodOwnerFn(ctx, id)
}
func (f *fakeRepo) ListWodsByUser(ctx context.Context, userID idtype.UserID, since time.Time) ([]domain.Wod, error) {
	if f.listWodsByUserFn == nil {
		notStubbed("ListWodsByUser")
	}
	return f.listWodsByUserFn(ctx, userID, since)
}
func (f *fakeRepo) GetWodByID(ctx context.Context, id idtype.WodID) (*domain.Wod, error) {
	if f.getWodByIDFn == nil {
		notStubbed("GetWodByID")
	}
	return f.getWodByIDFn(ctx, id)
}
func (f *fakeRepo) UpdateWod(ctx context.Context, w *domain.Wod) error {
	if f.updateWodFn == nil {
		notStubbed("UpdateWod")
	}
	return f.updateWodFn(ctx, w)
}
func (f *fakeRepo) DeleteWod(ctx context.Context, id idtype.WodID) error {
	if f.deleteWodFn == nil {
		notStubbed("DeleteWod")
	}
	return f.deleteWodFn(ctx, id)
}
func (f *fakeRepo) EpochMaxLastChange(ctx context.Context, table string) (time.Time, error) {
	if f.epochMaxLastChangeFn == nil {
		notStubbed("EpochMaxLastChange")
	}
	return f.epochMaxLastChangeFn(ctx, table)
}
func (f *fakeRepo) SyncRowIDs(ctx context.Context, table string, callerUserID int64, cursor time.Time) ([]int64, error) {
	if f.syncRowIDsFn == nil {
		notStubbed("SyncRowIDs")
	}
	return f.syncRowIDsFn(ctx, table, callerUserID, cursor)
}
func (f *fakeRepo) GarbageCollect(ctx context.Context, cutoff time.Time) (int64, error) {
	if f.garbageCollectFn == nil {
		notStubbed("GarbageCollect")
	}
	return f.garbageCollectFn(ctx, cutoff)
}
