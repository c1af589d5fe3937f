// Package client talks to a running live updates service over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/liveupdates/internal/adapters/http/api"
	"github.com/okian/liveupdates/internal/domain/model"
)

const (
	defaultTimeout = 10 * time.Second
	errorBodyLimit = 4096
)

// ErrStatus is returned when the service answers with an unexpected status.
var ErrStatus = errors.New("unexpected status")

// Client wraps http.Client with the service base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the service at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Request converts ev to the wire payload.
func Request(ev model.Event) api.EventRequest {
	return api.EventRequest{ID: ev.ID, Title: ev.Title, Body: ev.Body, AdditionalData: ev.Data}
}

// Send posts a push event. Both accepted and duplicate acks are successes.
func (c *Client) Send(ctx context.Context, req api.EventRequest) (api.AckResponse, error) {
	var ack api.AckResponse
	err := c.do(ctx, http.MethodPost, "/events", req, &ack, http.StatusAccepted, http.StatusOK)
	return ack, err
}

// Preview asks the service to render req without displaying it.
func (c *Client) Preview(ctx context.Context, req api.EventRequest) (api.PreviewResponse, error) {
	var resp api.PreviewResponse
	err := c.do(ctx, http.MethodPost, "/preview", req, &resp, http.StatusOK)
	return resp, err
}

// Notifications lists the service tray.
func (c *Client) Notifications(ctx context.Context) ([]model.Notification, error) {
	var list []model.Notification
	err := c.do(ctx, http.MethodGet, "/notifications", nil, &list, http.StatusOK)
	return list, err
}

// TestProgress displays the progress bar test notification.
func (c *Client) TestProgress(ctx context.Context) (model.Notification, error) {
	var n model.Notification
	err := c.do(ctx, http.MethodPost, "/test-progress", nil, &n, http.StatusCreated)
	return n, err
}

// Dismiss removes a notification from the tray.
func (c *Client) Dismiss(ctx context.Context, id int, force bool) error {
	path := fmt.Sprintf("/notifications/%d", id)
	if force {
		path += "?force=true"
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil, http.StatusNoContent)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, want ...int) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if !expected(resp.StatusCode, want) {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return fmt.Errorf("%w: %s %s returned %d: %s", ErrStatus, method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func expected(status int, want []int) bool {
	for _, w := range want {
		if status == w {
			return true
		}
	}
	return false
}
