package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sport-log/sport-log-server/internal/auth"
	"github.com/sport-log/sport-log-server/internal/domain"
)

// Client is the scheduler's thin HTTP client against the server's admin API
// (§4.2), grounded directly on the original scheduler's reqwest-based Client:
// every request carries HTTP Basic auth as the fixed admin user.
type Client struct {
	BaseURL       string
	AdminPassword string
	HTTP          *http.Client
}

// NewClient builds a Client with a bounded request timeout; the original
// used reqwest's blocking client with no explicit per-call timeout, but an
// unbounded periodic job is a liveness hazard so we bound it here.
func NewClient(baseURL, adminPassword string) *Client {
	return &Client{
		BaseURL:       baseURL,
		AdminPassword: adminPassword,
		HTTP:          &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.SetBasicAuth(auth.AdminUsername, c.AdminPassword)

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

// CreatableActionRules fetches GET /adm/creatable_action_rule (Phase A read).
func (c *Client) CreatableActionRules(ctx context.Context) ([]domain.CreatableActionRule, error) {
	var rules []domain.CreatableActionRule
	if err := c.do(ctx, http.MethodGet, "/adm/creatable_action_rule", nil, nil, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// CreateActionEvents posts POST /adm/action_events: a bulk, ignore-conflict
// insert (Phase A write).
func (c *Client) CreateActionEvents(ctx context.Context, events []domain.ActionEvent) error {
	if len(events) == 0 {
		return nil
	}
	return c.do(ctx, http.MethodPost, "/adm/action_events", nil, events, nil)
}

// DeletableActionEvents fetches GET /adm/deletable_action_event (Phase B read).
func (c *Client) DeletableActionEvents(ctx context.Context) ([]domain.DeletableActionEvent, error) {
	var events []domain.DeletableActionEvent
	if err := c.do(ctx, http.MethodGet, "/adm/deletable_action_event", nil, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// DeleteActionEvents issues DELETE /adm/action_events with the given ids in
// the body (Phase B write).
func (c *Client) DeleteActionEvents(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return c.do(ctx, http.MethodDelete, "/adm/action_events", nil, struct {
		IDs []int64 `json:"ids"`
	}{IDs: ids}, nil)
}

// GarbageCollect issues DELETE /adm/garbage_collection?before=<cutoff>
// (Phase C).
func (c *Client) GarbageCollect(ctx context.Context, cutoff time.Time) error {
	q := url.Values{"before": {cutoff.UTC().Format(time.RFC3339)}}
	return c.do(ctx, http.MethodDelete, "/adm/garbage_collection", q, nil, nil)
}
