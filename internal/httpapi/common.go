package httpapi

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sport-log/sport-log-server/internal/auth"
	apperrors "github.com/sport-log/sport-log-server/internal/pkg/errors"
)

// nanosFromMillis converts a wire duration (milliseconds) to a time.Duration.
func nanosFromMillis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// pathID parses the decimal-string :id path parameter every GET/DELETE
// single-resource route takes (§6: ids cross the wire as decimal strings).
func pathID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		_ = c.Error(apperrors.Validation("VALIDATION_FAILED", "malformed id path parameter"))
		c.Abort()
		return 0, false
	}
	return id, true
}

// sinceQuery parses the optional ?since=<RFC3339> cursor every sync-eligible
// list route accepts (§4.4): absent means "from the beginning", i.e. every
// visible row including tombstones.
func sinceQuery(c *gin.Context) (time.Time, bool) {
	raw := c.Query("since")
	if raw == "" {
		return time.Time{}, true
	}
	cursor, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		_ = c.Error(apperrors.Validation("VALIDATION_FAILED", "malformed since query parameter"))
		c.Abort()
		return time.Time{}, false
	}
	return cursor, true
}

// bindJSON decodes the request body, reporting a VALIDATION_FAILED error on
// the shared error-handling path if it cannot.
func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		_ = c.Error(apperrors.Validation("VALIDATION_FAILED", err.Error()))
		c.Abort()
		return false
	}
	return true
}

// principal fetches the Principal the auth middleware attached. Handlers
// call this instead of auth.FromGinContext directly so a missing principal
// (a routing bug, never a runtime condition the client can trigger) fails
// loudly rather than silently proceeding as the zero Principal.
func principal(c *gin.Context) auth.Principal {
	p, ok := auth.FromGinContext(c)
	if !ok {
		panic("httpapi: handler reached with no principal attached")
	}
	return p
}

func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func forbidden() error {
	return apperrors.Authorization("FORBIDDEN", "not authorized for this resource")
}

func validationError(msg string) error {
	return apperrors.Validation("VALIDATION_FAILED", msg)
}
