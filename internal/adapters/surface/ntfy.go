package surface

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/okian/liveupdates/internal/domain/model"
)

const (
	ntfyUserAgent      = "liveupdates/1.0"
	defaultNtfyTimeout = 10 * time.Second
	ntfyErrorBodyLimit = 2048
)

// Ntfy publishes notifications to an ntfy topic URL.
type Ntfy struct {
	endpoint string
	client   *http.Client
	channels channelSet
}

// NtfyOption configures an Ntfy surface.
type NtfyOption func(*Ntfy)

// WithHTTPClient sets the client used to publish.
func WithHTTPClient(c *http.Client) NtfyOption {
	return func(n *Ntfy) {
		if c != nil {
			n.client = c
		}
	}
}

// WithTimeout sets the publish timeout of the default client.
func WithTimeout(d time.Duration) NtfyOption {
	return func(n *Ntfy) {
		if d > 0 {
			n.client = &http.Client{Timeout: d}
		}
	}
}

// NewNtfy creates a surface publishing to endpoint, a full topic URL.
func NewNtfy(endpoint string, opts ...NtfyOption) *Ntfy {
	n := &Ntfy{
		endpoint: strings.TrimSpace(endpoint),
		client:   &http.Client{Timeout: defaultNtfyTimeout},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Name implements Surface.
func (n *Ntfy) Name() string { return NameNtfy }

// RegisterChannels implements Surface.
func (n *Ntfy) RegisterChannels(_ context.Context, channels []model.Channel) error {
	n.channels.register(channels)
	return nil
}

// Display implements Surface.
func (n *Ntfy) Display(ctx context.Context, note model.Notification) error {
	ch, err := n.channels.lookup(note.ChannelID)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(desktopMessage(note)))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", ntfyUserAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("Title", note.Title)
	req.Header.Set("Tags", strings.Join(ntfyTags(note), ","))
	if ch.Importance == model.ImportanceHigh {
		req.Header.Set("Priority", "high")
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, ntfyErrorBodyLimit))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Dismiss implements Surface. Published messages cannot be withdrawn.
func (n *Ntfy) Dismiss(context.Context, int) error { return nil }

// Cancel implements Surface. Published messages cannot be withdrawn.
func (n *Ntfy) Cancel(context.Context, int) error { return nil }

func ntfyTags(note model.Notification) []string {
	tags := []string{note.ChannelID, "id-" + strconv.Itoa(note.ID)}
	if note.Category != "" {
		tags = append(tags, string(note.Category))
	}
	if note.Ongoing {
		tags = append(tags, "ongoing")
	}
	return tags
}
