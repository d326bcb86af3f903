// Package providerrt is the shared action-provider runtime library (§4.3):
// the setup/get_events/disable_events primitives plus the concurrent
// per-event execution harness every concrete provider binary embeds.
package providerrt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sport-log/sport-log-server/internal/auth"
	"github.com/sport-log/sport-log-server/internal/domain"
	"github.com/sport-log/sport-log-server/internal/idtype"
)

// Client is a provider's HTTP handle to the server, authenticating as
// AuthAP for its own resources and as AuthUserAP (via the id header) for
// writes on behalf of a linked user (§4.1, §4.3 step 3.f).
type Client struct {
	BaseURL  string
	Name     string
	Password string
	HTTP     *http.Client
}

// NewClient builds a Client sharing one http.Client (and its connection
// pool) across every per-event task (§5 "tasks share one HTTP client").
func NewClient(baseURL, name, password string) *Client {
	return &Client{
		BaseURL:  baseURL,
		Name:     name,
		Password: password,
		HTTP:     &http.Client{Timeout: 30 * time.Second},
	}
}

type authMode int

const (
	authAP authMode = iota
	authAdmin
	authUserAP
)

func (c *Client) request(ctx context.Context, method, path string, mode authMode, adminPassword string, userID idtype.UserID, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	switch mode {
	case authAdmin:
		req.SetBasicAuth(auth.AdminUsername, adminPassword)
	case authUserAP:
		req.SetBasicAuth(c.Name, c.Password)
		req.Header.Set(auth.IDHeader, fmt.Sprintf("%d", int64(userID)))
	default:
		req.SetBasicAuth(c.Name, c.Password)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, payload)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// ActionSpec is one Action a provider registers during Setup.
type ActionSpec struct {
	Name         string
	Description  *string
	CreateBefore time.Duration
	DeleteAfter  time.Duration
}

// Setup upserts the provider's Platform, ActionProvider identity and
// supported Actions (§4.3 primitive 1), grounded on the original's
// `setup_db` helper: platform and action-provider registration run under
// admin credentials (a one-time deployment step), after which the newly
// created action provider's own credentials register its actions.
func Setup(ctx context.Context, client *Client, adminPassword, platformName string, description *string, actions []ActionSpec) error {
	var platform domain.Platform
	if err := client.request(ctx, http.MethodPost, "/adm/platform", authAdmin, adminPassword, 0,
		map[string]string{"name": platformName}, &platform); err != nil {
		return fmt.Errorf("create platform: %w", err)
	}

	var ap domain.ActionProvider
	if err := client.request(ctx, http.MethodPost, "/adm/action_provider", authAdmin, adminPassword, 0,
		map[string]any{
			"name":        client.Name,
			"password":    client.Password,
			"platform_id": platform.ID,
			"description": description,
		}, &ap); err != nil {
		return fmt.Errorf("create action provider: %w", err)
	}

	if len(actions) == 0 {
		return nil
	}
	body := make([]map[string]any, len(actions))
	for i, a := range actions {
		body[i] = map[string]any{
			"name":          a.Name,
			"description":   a.Description,
			"create_before": a.CreateBefore.Milliseconds(),
			"delete_after":  a.DeleteAfter.Milliseconds(),
		}
	}
	if err := client.request(ctx, http.MethodPost, "/ap/actions", authAP, "", 0, body, nil); err != nil {
		return fmt.Errorf("register actions: %w", err)
	}
	return nil
}

// GetEvents fetches ExecutableActionEvents whose datetime falls in
// [now-lookback, now+lookahead], ordered ascending by the server query
// (§4.3 primitive 2).
func (c *Client) GetEvents(ctx context.Context, now time.Time, lookback, lookahead time.Duration) ([]domain.ExecutableActionEvent, error) {
	start := now.Add(-lookback).UTC().Format(time.RFC3339)
	end := now.Add(lookahead).UTC().Format(time.RFC3339)
	var events []domain.ExecutableActionEvent
	path := fmt.Sprintf("/ap/executable_action_event/timespan/%s/%s", start, end)
	if err := c.request(ctx, http.MethodGet, path, authAP, "", 0, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// DisableEvents marks the given events deleted, the union of successfully
// processed and conclusively failed ids from one invocation (§4.3 step 4).
func (c *Client) DisableEvents(ctx context.Context, ids []idtype.ActionEventID) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = int64(id)
	}
	return c.request(ctx, http.MethodDelete, "/ap/disable_action_events", authAP, "", 0,
		struct {
			IDs []int64 `json:"ids"`
		}{IDs: raw}, nil)
}

// ListMovements fetches every Movement visible to userID (own + shared), for
// the local normalized-name lookup step (§4.3 step 3.d).
func (c *Client) ListMovements(ctx context.Context, userID idtype.UserID) ([]domain.Movement, error) {
	var movements []domain.Movement
	if err := c.request(ctx, http.MethodGet, "/movement", authUserAP, "", userID, nil, &movements); err != nil {
		return nil, err
	}
	return movements, nil
}

// CardioSessionConflict reports whether userID already has a CardioSession
// for movementID at exactly datetime (§4.3 step 3.e, the break-on-known
// check).
func (c *Client) CardioSessionConflict(ctx context.Context, userID idtype.UserID, movementID idtype.MovementID, datetime time.Time) (bool, error) {
	path := fmt.Sprintf("/cardio_session_conflict/%d/%s", int64(movementID), datetime.UTC().Format(time.RFC3339))
	var out struct {
		Exists bool `json:"exists"`
	}
	if err := c.request(ctx, http.MethodGet, path, authUserAP, "", userID, nil, &out); err != nil {
		return false, err
	}
	return out.Exists, nil
}

// CreateCardioSession inserts a CardioSession on userID's behalf (§4.3 step
// 3.f).
func (c *Client) CreateCardioSession(ctx context.Context, userID idtype.UserID, body any) error {
	return c.request(ctx, http.MethodPost, "/cardio_session", authUserAP, "", userID, body, nil)
}

// CreateWod inserts a Wod on userID's behalf (§4.3 step 3.f).
func (c *Client) CreateWod(ctx context.Context, userID idtype.UserID, body any) error {
	return c.request(ctx, http.MethodPost, "/wod", authUserAP, "", userID, body, nil)
}
