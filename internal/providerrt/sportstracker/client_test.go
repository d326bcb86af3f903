package sportstracker

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFakeServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	original := baseURL
	baseURL = srv.URL
	t.Cleanup(func() { baseURL = original })
}

func TestLogin_ReturnsTokenOnSuccess(t *testing.T) {
	withFakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "alice", r.PostFormValue("l"))
		assert.Equal(t, "hunter2", r.PostFormValue("p"))
		w.Write([]byte(`{"sessionkey":"tok-123"}`))
	})

	token, ok, err := New().Login(t.Context(), "alice", "hunter2")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-123", token)
}

func TestLogin_FalseOkWhenSessionKeyAbsent(t *testing.T) {
	withFakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sessionkey":null}`))
	})

	token, ok, err := New().Login(t.Context(), "alice", "wrong")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, token)
}

func TestFetchWorkouts_DecodesPayload(t *testing.T) {
	withFakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok-123", r.URL.Query().Get("token"))
		w.Write([]byte(`{"payload":[{"activityId":1,"startTime":1000,"totalTime":60,"totalDistance":200,"workoutKey":"k1"}]}`))
	})

	workouts, err := New().FetchWorkouts(t.Context(), "tok-123")

	require.NoError(t, err)
	require.Len(t, workouts, 1)
	assert.Equal(t, 1, workouts[0].ActivityID)
	assert.Equal(t, "k1", workouts[0].WorkoutKey)
}

func TestActivityMovementName(t *testing.T) {
	cases := []struct {
		activityID int
		wantName   string
		wantOK     bool
	}{
		{1, "running", true},
		{22, "trailrunning", true},
		{99, "", false},
	}

	for _, tc := range cases {
		name, ok := ActivityMovementName(tc.activityID)
		if ok != tc.wantOK || name != tc.wantName {
			t.Errorf("ActivityMovementName(%d) = (%q, %v), want (%q, %v)", tc.activityID, name, ok, tc.wantName, tc.wantOK)
		}
	}
}
