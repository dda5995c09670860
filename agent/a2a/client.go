package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
	"github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/task"
)

const clientMaxResponseBytes = 2 << 20

var _ contractx.Transport = (*Client)(nil)

// ClientConfig configures the HTTP transport for remote specialists.
type ClientConfig struct {
	Timeout      time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" split_words:"true" default:"300ms"`
}

// ClientOption customizes Client.
type ClientOption func(*Client)

func WithClientHTTP(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// Client talks to specialists exposed over HTTP. Remote cards advertise
// streaming=false, so Subscribe polls the task resource and forwards the
// history delta until the task is terminal.
type Client struct {
	httpClient *http.Client
	poll       time.Duration
}

func NewClient(cfg ClientConfig, opts ...ClientOption) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = 300 * time.Millisecond
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		poll:       poll,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// FetchCard retrieves the discovery card a remote specialist serves.
func (c *Client) FetchCard(ctx context.Context, endpoint string) (AgentCard, error) {
	base, err := normalizeEndpoint(endpoint)
	if err != nil {
		return AgentCard{}, err
	}
	var card AgentCard
	if err := c.getJSON(ctx, base+"/.well-known/agent.json", &card); err != nil {
		return AgentCard{}, err
	}
	return card, nil
}

func (c *Client) SendTask(ctx context.Context, endpoint string, req contractx.TaskRequest) (contractx.TaskHandle, error) {
	base, err := normalizeEndpoint(endpoint)
	if err != nil {
		return contractx.TaskHandle{}, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return contractx.TaskHandle{}, fmt.Errorf("marshal task request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/api/tasks", bytes.NewReader(body))
	if err != nil {
		return contractx.TaskHandle{}, fmt.Errorf("build task request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var snap task.Snapshot
	if err := c.do(httpReq, &snap); err != nil {
		return contractx.TaskHandle{}, err
	}
	if snap.ID == "" {
		return contractx.TaskHandle{}, errors.New("remote specialist returned no task id")
	}
	return contractx.TaskHandle{TaskID: snap.ID, Endpoint: base}, nil
}

func (c *Client) Task(ctx context.Context, h contractx.TaskHandle) (task.Snapshot, error) {
	taskURL, err := c.taskURL(h)
	if err != nil {
		return task.Snapshot{}, err
	}
	var snap task.Snapshot
	if err := c.getJSON(ctx, taskURL, &snap); err != nil {
		return task.Snapshot{}, err
	}
	return snap, nil
}

func (c *Client) Subscribe(ctx context.Context, h contractx.TaskHandle) (<-chan task.StatusEvent, error) {
	if _, err := c.taskURL(h); err != nil {
		return nil, err
	}

	ch := make(chan task.StatusEvent)
	go func() {
		defer close(ch)

		seen := 0
		ticker := time.NewTicker(c.poll)
		defer ticker.Stop()

		for {
			snap, err := c.Task(ctx, h)
			if err != nil {
				log.Warn().Str("task_id", h.TaskID).Err(err).Msg("task poll failed")
				return
			}
			for _, ev := range snap.History[seen:] {
				select {
				case ch <- ev:
				case <-ctx.Done():
					return
				}
			}
			seen = len(snap.History)
			if snap.Terminal() {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return ch, nil
}

func (c *Client) taskURL(h contractx.TaskHandle) (string, error) {
	base, err := normalizeEndpoint(h.Endpoint)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(h.TaskID) == "" {
		return "", task.ErrTaskNotFound
	}
	return base + "/api/tasks/" + url.PathEscape(h.TaskID), nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute specialist request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, clientMaxResponseBytes))
	if err != nil {
		return fmt.Errorf("read specialist response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("specialist http status=%d body=%s", resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode specialist response: %w", err)
	}
	return nil
}

func normalizeEndpoint(endpoint string) (string, error) {
	base := strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if base == "" {
		return "", errors.New("a2a: endpoint is required")
	}
	parsed, err := url.ParseRequestURI(base)
	if err != nil {
		return "", fmt.Errorf("a2a: invalid endpoint %q: %w", endpoint, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("a2a: endpoint %q must be http or https", endpoint)
	}
	return base, nil
}
