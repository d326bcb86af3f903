package providerrt

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

func TestSetup_RegistersPlatformProviderAndActions(t *testing.T) {
	var sawPlatform, sawProvider, sawActions bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/adm/platform":
			username, password, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "admin", username)
			assert.Equal(t, "admin-secret", password)
			sawPlatform = true
			json.NewEncoder(w).Encode(domain.Platform{ID: idtype.PlatformID(1), Name: "sportstracker"})
		case r.Method == http.MethodPost && r.URL.Path == "/adm/action_provider":
			sawProvider = true
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "sportstracker", body["name"])
			json.NewEncoder(w).Encode(domain.ActionProvider{ID: idtype.ActionProviderID(7)})
		case r.Method == http.MethodPost && r.URL.Path == "/ap/actions":
			username, password, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "sportstracker", username)
			assert.Equal(t, "provider-secret", password)
			var body []map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Len(t, body, 1)
			assert.Equal(t, "sync", body[0]["name"])
			sawActions = true
			w.WriteHeader(http.StatusCreated)
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sportstracker", "provider-secret")
	description := "sync running sessions"
	err := Setup(t.Context(), client, "admin-secret", "sportstracker", &description, []ActionSpec{
		{Name: "sync", Description: &description, CreateBefore: time.Hour, DeleteAfter: 24 * time.Hour},
	})

	require.NoError(t, err)
	assert.True(t, sawPlatform)
	assert.True(t, sawProvider)
	assert.True(t, sawActions)
}

func TestGetEvents_BuildsTimespanPathAndAuthsAsAP(t *testing.T) {
	want := []domain.ExecutableActionEvent{{ID: idtype.ActionEventID(1), UserID: idtype.UserID(2)}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Contains(t, r.URL.Path, "/ap/executable_action_event/timespan/")
		username, password, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "sportstracker", username)
		assert.Equal(t, "secret", password)
		json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sportstracker", "secret")
	got, err := client.GetEvents(t.Context(), time.Now(), time.Hour, time.Hour)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDisableEvents_SkipsRequestWhenEmpty(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sportstracker", "secret")
	require.NoError(t, client.DisableEvents(t.Context(), nil))
	assert.False(t, called)
}

func TestDisableEvents_SendsIDList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/ap/disable_action_events", r.URL.Path)
		var body struct {
			IDs []int64 `json:"ids"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []int64{1, 2}, body.IDs)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sportstracker", "secret")
	err := client.DisableEvents(t.Context(), []idtype.ActionEventID{1, 2})
	require.NoError(t, err)
}

func TestCardioSessionConflict_AuthsAsUserAPWithIDHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "42", r.Header.Get("id"))
		username, password, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "sportstracker", username)
		assert.Equal(t, "secret", password)
		json.NewEncoder(w).Encode(map[string]bool{"exists": true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sportstracker", "secret")
	exists, err := client.CardioSessionConflict(t.Context(), idtype.UserID(42), idtype.MovementID(1), time.Now())

	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRequest_NonSuccessStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sportstracker", "secret")
	err := client.CreateCardioSession(t.Context(), idtype.UserID(1), map[string]any{})
	require.Error(t, err)
}
