package auth

import (
	"context"
	"net/http"

	"github.com/sport-log/sport-log-server/internal/idtype"
	apperrors "github.com/sport-log/sport-log-server/internal/pkg/errors"
)

// codeForbidden is the single error code used for every verification
// failure. §4.1: "Failure signals a single 403-equivalent condition;
// internal lookup errors during verification surface as 500-equivalent
// (never leaking which row exists)."
const codeForbidden = "FORBIDDEN"

func forbidden() error {
	return apperrors.Authorization(codeForbidden, "not authorized for this resource")
}

func internalLookupError(err error) error {
	return apperrors.Wrap(err, "INTERNAL_ERROR", "failed to verify resource ownership", http.StatusInternalServerError)
}

// ownerLookupError turns an OwnerLookup/APOwnerLookup failure into the right
// response: a not-found row folds into the same forbidden() an existing,
// wrongly-owned row would produce (no existence oracle), but a genuine
// internal/DB failure must surface as 500, not 403.
func ownerLookupError(err error) error {
	if ae, ok := apperrors.IsAppError(err); ok && ae.HTTPStatus == http.StatusNotFound {
		return forbidden()
	}
	return internalLookupError(err)
}

// OwnerLookup resolves the owning UserID of a resource, or ErrNotFound-style
// errors if absent. It is supplied by the repository layer so this package
// stays storage-agnostic.
type OwnerLookup func(ctx context.Context, id int64) (idtype.UserID, error)

// OptionalOwnerLookup resolves a resource's owner, which may be nil for
// system-owned rows (e.g. shared Movements).
type OptionalOwnerLookup func(ctx context.Context, id int64) (*idtype.UserID, error)

// APOwnerLookup resolves the ActionProviderID that owns a resource (e.g. an
// Action row).
type APOwnerLookup func(ctx context.Context, id int64) (idtype.ActionProviderID, error)

// VerifyIDForUser is "Id verification (by owner)" (§4.1): the resource is
// loaded and its user_id must equal the caller.
func VerifyIDForUser[ID ~int64](ctx context.Context, caller idtype.UserID, id ID, lookup OwnerLookup) (ID, error) {
	owner, err := lookup(ctx, int64(id))
	if err != nil {
		return id, ownerLookupError(err)
	}
	if owner != caller {
		return id, forbidden()
	}
	return id, nil
}

// VerifyIDForUserOptional is "Id verification (optional owner)" (§4.1): the
// resource's user_id is null (system-owned) or equals the caller.
func VerifyIDForUserOptional[ID ~int64](ctx context.Context, caller idtype.UserID, id ID, lookup OptionalOwnerLookup) (ID, error) {
	owner, err := lookup(ctx, int64(id))
	if err != nil {
		return id, ownerLookupError(err)
	}
	if owner != nil && *owner != caller {
		return id, forbidden()
	}
	return id, nil
}

// VerifyIDForActionProvider mirrors VerifyIDForUser for the AuthAP context:
// the resource's action_provider_id must equal the caller.
func VerifyIDForActionProvider[ID ~int64](ctx context.Context, caller idtype.ActionProviderID, id ID, lookup APOwnerLookup) (ID, error) {
	owner, err := lookup(ctx, int64(id))
	if err != nil {
		return id, ownerLookupError(err)
	}
	if owner != caller {
		return id, forbidden()
	}
	return id, nil
}

// VerifyIDForAdminUnchecked is "Unchecked" verification (§4.1): the admin
// principal may touch any id; this exists so admin-facing handlers share the
// same call shape as user/AP handlers.
func VerifyIDForAdminUnchecked[ID ~int64](id ID) (ID, error) {
	return id, nil
}

// VerifyMultiIDsForUser is the "Multi-verification" variant (§4.1): every
// element of ids must pass VerifyIDForUser; verified as a set (an unrelated
// ordering is fine, it's a precondition check, not an access log).
func VerifyMultiIDsForUser[ID ~int64](ctx context.Context, caller idtype.UserID, ids []ID, lookup OwnerLookup) ([]ID, error) {
	for _, id := range ids {
		if _, err := VerifyIDForUser(ctx, caller, id, lookup); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// Owned is implemented by any payload type that knows its own owning user.
type Owned interface {
	OwnerUserID() idtype.UserID
}

// VerifyPayloadForUserWithDB is "Payload verification with DB" (§4.1): the
// payload carries the caller's id and the persisted row agrees — this is
// what catches a caller attempting to change the ownership of a row they
// already own via an update body.
func VerifyPayloadForUserWithDB[T Owned](ctx context.Context, caller idtype.UserID, payload T, persistedOwner OwnerLookup, id int64) (T, error) {
	var zero T
	if payload.OwnerUserID() != caller {
		return zero, forbidden()
	}
	owner, err := persistedOwner(ctx, id)
	if err != nil {
		return zero, internalLookupError(err)
	}
	if owner != caller {
		return zero, forbidden()
	}
	return payload, nil
}

// VerifyPayloadForUserWithoutDB is "Payload verification without DB" (§4.1):
// used on create, where no persisted row exists yet — the payload must carry
// the caller's id.
func VerifyPayloadForUserWithoutDB[T Owned](caller idtype.UserID, payload T) (T, error) {
	var zero T
	if payload.OwnerUserID() != caller {
		return zero, forbidden()
	}
	return payload, nil
}

// VerifyMultiPayloadsForUserWithoutDB verifies every element of payloads
// carries the caller's id (bulk create, e.g. the scheduler's batch insert is
// always admin-authenticated and thus unchecked, but users may also batch
// ad-hoc event creation).
func VerifyMultiPayloadsForUserWithoutDB[T Owned](caller idtype.UserID, payloads []T) ([]T, error) {
	for _, p := range payloads {
		if p.OwnerUserID() != caller {
			return nil, forbidden()
		}
	}
	return payloads, nil
}

// EventLinkChecker answers whether a live, enabled, non-deleted ActionEvent
// links userID to actionProviderID — the precondition for AuthUserAP (§4.1).
type EventLinkChecker interface {
	HasLinkingEvent(ctx context.Context, userID idtype.UserID, actionProviderID idtype.ActionProviderID) (bool, error)
}

// VerifyUserAP checks the AuthUserAP precondition: the principal must be
// KindUserAP and a live event must link its UserID/ActionProviderID pair.
// A provider presenting AuthUserAP may only perform writes permitted for
// that user, and only while the governing event exists (§4.1).
func VerifyUserAP(ctx context.Context, p Principal, checker EventLinkChecker) (idtype.UserID, error) {
	if p.Kind != KindUserAP {
		return 0, forbidden()
	}
	ok, err := checker.HasLinkingEvent(ctx, p.UserID, p.ActionProviderID)
	if err != nil {
		return 0, internalLookupError(err)
	}
	if !ok {
		return 0, forbidden()
	}
	return p.UserID, nil
}
