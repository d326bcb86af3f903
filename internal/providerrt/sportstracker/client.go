// Package sportstracker is a concrete action-provider binding for the
// Sports-Tracker platform, grounded on the original provider's plain REST
// client: form-encoded login, then token-authenticated workout fetches
// (_examples/original_source/sport-log-action-provider-sportstracker).
package sportstracker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// baseURL is a var, not a const, so tests can point it at an httptest
// server instead of the real third-party API.
var baseURL = "https://api.sports-tracker.com/apiserver/v1"

// Client talks to the third-party Sports-Tracker API on behalf of one
// linked user per call; it carries no per-user state itself.
type Client struct {
	HTTP *http.Client
}

func New() *Client {
	return &Client{HTTP: &http.Client{Timeout: 30 * time.Second}}
}

// Login exchanges a user's third-party credentials for a session token. A
// false ok means the login failed, matching §4.3 step 3.b's LoginFailed
// outcome.
func (c *Client) Login(ctx context.Context, username, password string) (token string, ok bool, err error) {
	form := url.Values{"l": {username}, "p": {password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	var user struct {
		SessionKey *string `json:"sessionkey"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", false, err
	}
	if user.SessionKey == nil {
		return "", false, nil
	}
	return *user.SessionKey, true, nil
}

// Workout is one remote activity, trimmed to the fields the translation
// step needs.
type Workout struct {
	Description   *string `json:"description"`
	ActivityID    int     `json:"activityId"`
	StartTime     int64   `json:"startTime"` // epoch milliseconds
	TotalTime     float64 `json:"totalTime"`
	TotalDistance float64 `json:"totalDistance"`
	WorkoutKey    string  `json:"workoutKey"`
}

// FetchWorkouts lists a user's recent workouts using a session token.
func (c *Client) FetchWorkouts(ctx context.Context, token string) ([]Workout, error) {
	u := baseURL + "/workouts?token=" + url.QueryEscape(token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Payload []Workout `json:"payload"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Payload, nil
}

// ActivityMovementName maps the platform's numeric activity id to the local
// movement name the provider looks up, the same small hardcoded mapping as
// the original ("no more mappings found" for anything else).
func ActivityMovementName(activityID int) (name string, ok bool) {
	switch activityID {
	case 1:
		return "running", true
	case 22:
		return "trailrunning", true
	default:
		return "", false
	}
}
