package auth

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sport-log/sport-log-server/internal/domain"
	"github.com/sport-log/sport-log-server/internal/idtype"
	apperrors "github.com/sport-log/sport-log-server/internal/pkg/errors"
)

// IDHeader is the header an AuthUserAP caller sets to name the user it is
// acting on behalf of (§4.1: "provider credentials plus an `id` header
// naming a user").
const IDHeader = "id"

// UserCredentialLookup resolves a username to its UserID and password hash.
type UserCredentialLookup func(ctx context.Context, username string) (userID int64, passwordHash string, err error)

// APCredentialLookup resolves an action provider's name to its id and
// password hash.
type APCredentialLookup func(ctx context.Context, name string) (apID int64, passwordHash string, err error)

// UserIDExists reports whether userID names a real user, for the AuthUserAP
// `id` header (which names a user by id, decimal string).
type UserIDExists func(ctx context.Context, userID int64) (bool, error)

// Verifier bundles the lookups the middleware needs. The repository layer
// implements it; this package only depends on the interface.
type Verifier struct {
	Users            UserCredentialLookup
	ActionProviders  APCredentialLookup
	UserExists       UserIDExists
	AdminPassword    string
	EventLinkChecker EventLinkChecker
}

func unauthorized(c *gin.Context, code, msg string) {
	c.Header("WWW-Authenticate", `Basic realm="sport-log"`)
	_ = c.Error(apperrors.Authentication(code, msg))
	c.Abort()
}

// RequireUser authenticates AuthUser: Basic auth against the users table.
// On success attaches a KindUser Principal to the request context.
func RequireUser(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			unauthorized(c, "AUTH_FAILED", "basic auth required")
			return
		}
		userID, hash, err := v.Users(c.Request.Context(), username)
		if err != nil || !VerifyPassword(hash, password) {
			unauthorized(c, "AUTH_FAILED", "invalid credentials")
			return
		}
		attach(c, Principal{Kind: KindUser, UserID: idtype.UserID(userID)})
	}
}

// RequireActionProvider authenticates AuthAP: Basic auth against the
// action_provider table, with no `id` header present.
func RequireActionProvider(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		name, password, ok := c.Request.BasicAuth()
		if !ok {
			unauthorized(c, "AUTH_FAILED", "basic auth required")
			return
		}
		apID, hash, err := v.ActionProviders(c.Request.Context(), name)
		if err != nil || !VerifyPassword(hash, password) {
			unauthorized(c, "AUTH_FAILED", "invalid credentials")
			return
		}
		attach(c, Principal{Kind: KindActionProvider, ActionProviderID: idtype.ActionProviderID(apID)})
	}
}

// RequireUserOrUserAP authenticates either AuthUser or AuthUserAP, depending
// on whether the `id` header is present: handlers that accept writes from
// either a user acting for itself or a provider acting on a user's behalf
// (§4.1) mount this instead of RequireUser.
func RequireUserOrUserAP(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		idHeader := c.GetHeader(IDHeader)
		if idHeader == "" {
			RequireUser(v)(c)
			return
		}

		name, password, ok := c.Request.BasicAuth()
		if !ok {
			unauthorized(c, "AUTH_FAILED", "basic auth required")
			return
		}
		apID, hash, err := v.ActionProviders(c.Request.Context(), name)
		if err != nil || !VerifyPassword(hash, password) {
			unauthorized(c, "AUTH_FAILED", "invalid credentials")
			return
		}
		userID, err := parseIDHeader(idHeader)
		if err != nil {
			unauthorized(c, "AUTH_FAILED", "malformed id header")
			return
		}
		exists, err := v.UserExists(c.Request.Context(), userID)
		if err != nil || !exists {
			unauthorized(c, "AUTH_FAILED", "invalid credentials")
			return
		}
		p := Principal{Kind: KindUserAP, UserID: idtype.UserID(userID), ActionProviderID: idtype.ActionProviderID(apID)}
		if _, err := VerifyUserAP(c.Request.Context(), p, v.EventLinkChecker); err != nil {
			if ae, ok := apperrors.IsAppError(err); ok {
				_ = c.Error(apperrors.Authorization("NO_LINKING_ACTION_EVENT", ae.Message))
			} else {
				_ = c.Error(err)
			}
			c.Abort()
			return
		}
		attach(c, p)
	}
}

// AdminUsername re-exports domain.AdminUsername for callers that only deal
// with auth, not domain directly (the scheduler and provider runtime clients
// authenticate against the server using this plus the configured admin
// password).
const AdminUsername = domain.AdminUsername

// RequireAdmin authenticates AuthAdmin: fixed username "admin", configured
// password, constant-time plaintext compare (§4.1).
func RequireAdmin(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok || username != AdminUsername {
			unauthorized(c, "INVALID_ADMIN_CREDENTIALS", "admin credentials required")
			return
		}
		if !VerifyAdminPassword(v.AdminPassword, password) {
			unauthorized(c, "INVALID_ADMIN_CREDENTIALS", "admin credentials required")
			return
		}
		attach(c, Principal{Kind: KindAdmin})
	}
}

func attach(c *gin.Context, p Principal) {
	c.Set(principalGinKey, p)
	c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), p))
	c.Next()
}

const principalGinKey = "auth_principal"

// FromGinContext retrieves the Principal a middleware attached, for handlers
// that prefer gin.Context over plain context.Context.
func FromGinContext(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalGinKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// parseIDHeader parses the decimal-string id header (§6: ids cross the wire
// as decimal strings, not JSON numbers, and the `id` header follows the same
// convention).
func parseIDHeader(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, apperrors.Validation("VALIDATION_FAILED", "malformed id header")
	}
	return n, nil
}
