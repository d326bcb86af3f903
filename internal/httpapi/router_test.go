package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sport-log/sport-log-server/internal/auth"
	"github.com/sport-log/sport-log-server/internal/config"
	"github.com/sport-log/sport-log-server/internal/domain"
	"github.com/sport-log/sport-log-server/internal/idtype"
	"github.com/sport-log/sport-log-server/internal/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	_ = logger.Init("error", "json")
}

func testServer(repo *fakeRepo) *Server {
	return NewServer(repo, &config.ServerConfig{AdminPassword: "admin-secret"})
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func TestDisableActionEvents_MarksEventsDeletedForOwningProvider(t *testing.T) {
	var disabledIDs []idtype.ActionEventID
	repo := &fakeRepo{
		actionProviderPasswordHashByNameFn: func(ctx context.Context, name string) (int64, string, error) {
			return 7, mustHash(t, "provider-secret"), nil
		},
		disableActionEventsFn: func(ctx context.Context, ids []idtype.ActionEventID) error {
			disabledIDs = ids
			return nil
		},
	}
	router := testServer(repo).NewRouter()

	body, _ := json.Marshal(map[string]any{"ids": []int64{1, 2, 3}})
	req := httptest.NewRequest(http.MethodDelete, "/ap/disable_action_events", bytes.NewReader(body))
	req.SetBasicAuth("sportstracker", "provider-secret")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []idtype.ActionEventID{1, 2, 3}, disabledIDs)
}

func TestDisableActionEvents_RejectsWithoutActionProviderCredentials(t *testing.T) {
	repo := &fakeRepo{
		actionProviderPasswordHashByNameFn: func(ctx context.Context, name string) (int64, string, error) {
			return 0, "", errInvalidCredentials
		},
	}
	router := testServer(repo).NewRouter()

	body, _ := json.Marshal(map[string]any{"ids": []int64{1}})
	req := httptest.NewRequest(http.MethodDelete, "/ap/disable_action_events", bytes.NewReader(body))
	req.SetBasicAuth("sportstracker", "wrong")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCardioSessionConflict_ReportsExistenceForCaller(t *testing.T) {
	repo := &fakeRepo{
		actionProviderPasswordHashByNameFn: func(ctx context.Context, name string) (int64, string, error) {
			return 7, mustHash(t, "provider-secret"), nil
		},
		userExistsFn: func(ctx context.Context, id int64) (bool, error) { return true, nil },
		hasLinkingEventFn: func(ctx context.Context, userID idtype.UserID, actionProviderID idtype.ActionProviderID) (bool, error) {
			return true, nil
		},
		cardioSessionExistsForMovementAtFn: func(ctx context.Context, userID idtype.UserID, movementID idtype.MovementID, datetime time.Time) (bool, error) {
			assert.Equal(t, idtype.UserID(42), userID)
			assert.Equal(t, idtype.MovementID(5), movementID)
			return true, nil
		},
	}
	router := testServer(repo).NewRouter()

	datetime := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC).Format(time.RFC3339)
	req := httptest.NewRequest(http.MethodGet, "/cardio_session_conflict/5/"+datetime, nil)
	req.SetBasicAuth("sportstracker", "provider-secret")
	req.Header.Set(auth.IDHeader, "42")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Exists bool `json:"exists"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.True(t, out.Exists)
}

func TestCardioSessionConflict_RejectsMalformedDatetime(t *testing.T) {
	repo := &fakeRepo{
		getUserByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: idtype.UserID(1)}, nil
		},
		userPasswordHashByUsernameFn: func(ctx context.Context, username string) (int64, string, error) {
			return 1, mustHash(t, "hunter2"), nil
		},
	}
	router := testServer(repo).NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/cardio_session_conflict/5/not-a-datetime", nil)
	req.SetBasicAuth("alice", "hunter2")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

var errInvalidCredentials = fmt.Errorf("no such action provider")
