package scheduler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sport-log/sport-log-server/internal/domain"
	"github.com/sport-log/sport-log-server/internal/idtype"
)

func TestCreateActionEvents_PostsExpandedEvents(t *testing.T) {
	now := mustParse(t, "2023-01-01T00:00:00")
	rule := domain.CreatableActionRule{
		UserID:       idtype.UserID(1),
		ActionID:     idtype.ActionID(2),
		Weekday:      domain.Monday,
		Time:         mustParse(t, "2000-01-01T12:00:00"),
		CreateBefore: 14 * 24 * time.Hour,
	}

	var posted []domain.ActionEvent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "admin", username)
		assert.Equal(t, "secret", password)

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/adm/creatable_action_rule":
			json.NewEncoder(w).Encode([]domain.CreatableActionRule{rule})
		case r.Method == http.MethodPost && r.URL.Path == "/adm/action_events":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
			w.WriteHeader(http.StatusCreated)
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")
	err := createActionEvents(t.Context(), client, now)
	require.NoError(t, err)

	require.Len(t, posted, 2)
	assert.Equal(t, rule.UserID, posted[0].UserID)
	assert.Equal(t, rule.ActionID, posted[0].ActionID)
	assert.True(t, posted[0].Enabled)
}

func TestDeleteActionEvents_OnlyPastDeleteAfter(t *testing.T) {
	now := mustParse(t, "2023-01-10T00:00:00")
	events := []domain.DeletableActionEvent{
		{ID: idtype.ActionEventID(1), DateTime: mustParse(t, "2023-01-01T00:00:00"), DeleteAfter: 24 * time.Hour},
		{ID: idtype.ActionEventID(2), DateTime: mustParse(t, "2023-01-09T12:00:00"), DeleteAfter: 24 * time.Hour},
	}

	var deletedIDs []int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/adm/deletable_action_event":
			json.NewEncoder(w).Encode(events)
		case r.Method == http.MethodDelete && r.URL.Path == "/adm/action_events":
			var body struct {
				IDs []int64 `json:"ids"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			deletedIDs = body.IDs
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")
	err := deleteActionEvents(t.Context(), client, now)
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, deletedIDs)
}

func TestGarbageCollect_SendsCutoffQueryParam(t *testing.T) {
	var gotBefore string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/adm/garbage_collection", r.URL.Path)
		gotBefore = r.URL.Query().Get("before")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")
	cutoff := mustParse(t, "2023-01-01T00:00:00")
	err := client.GarbageCollect(t.Context(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, cutoff.Format(time.RFC3339), gotBefore)
}
