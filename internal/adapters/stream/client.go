package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	sse "github.com/r3labs/sse/v2"
	backoff "gopkg.in/cenkalti/backoff.v1"

	"github.com/bnema/sc-console-cli/internal/domain"
	"github.com/bnema/sc-console-cli/internal/ports"
)

// Client consumes the backend's server-sent event stream. The underlying SSE
// client retries dropped connections forever with exponential backoff, so a
// backend restart or flaky network never surfaces to the handler; the stream
// simply resumes. Heartbeat comment lines are filtered out by the SSE layer
// before the handler sees anything.
type Client struct {
	baseURL    string
	httpClient *http.Client
	clock      ports.Clock

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

var _ ports.EventStream = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client, clock ports.Clock) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		clock:      clock,
	}
}

// Connect opens the stream and dispatches every decoded event to handler from
// a background goroutine. Any previous connection is torn down first, so at
// most one stream is live per client. The token travels as a query parameter;
// the streaming endpoint does not read the Authorization header.
func (c *Client) Connect(token string, handler ports.EventHandler) error {
	endpoint, err := c.streamURL(token)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.teardownLocked()

	source := sse.NewClient(endpoint)
	source.Connection = c.httpClient
	source.ReconnectStrategy = reconnectForever()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done

	go func() {
		defer close(done)
		_ = source.SubscribeRawWithContext(ctx, func(msg *sse.Event) {
			event, ok := decodeEvent(msg.Data, c.clock.Now())
			if !ok {
				return
			}
			handler(event)
		})
	}()

	return nil
}

// Disconnect closes the current connection and waits for the dispatch
// goroutine to drain. Safe to call repeatedly and with no open connection.
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.teardownLocked()
}

func (c *Client) teardownLocked() {
	if c.cancel == nil {
		return
	}

	c.cancel()
	<-c.done
	c.cancel = nil
	c.done = nil
}

func (c *Client) streamURL(token string) (string, error) {
	parsed, err := url.Parse(c.baseURL + "/api/events/stream")
	if err != nil {
		return "", fmt.Errorf("build stream url: %w", err)
	}

	query := url.Values{}
	query.Set("token", token)
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

// reconnectForever removes the default elapsed-time ceiling so the stream
// outlives arbitrarily long backend outages.
func reconnectForever() backoff.BackOff {
	strategy := backoff.NewExponentialBackOff()
	strategy.InitialInterval = time.Second
	strategy.MaxInterval = 30 * time.Second
	strategy.MaxElapsedTime = 0

	return strategy
}

// decodeEvent turns a raw SSE payload into a domain event. Frames that are
// empty or not valid JSON are dropped; a malformed frame must never kill the
// stream or reach the feed. Valid JSON always gets through, even without a
// recognized type, so unknown event kinds stay visible in the feed.
func decodeEvent(data []byte, receivedAt time.Time) (domain.Event, bool) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return domain.Event{}, false
	}

	var msg domain.StreamMessage
	if err := json.Unmarshal([]byte(trimmed), &msg); err != nil {
		return domain.Event{}, false
	}

	return domain.NewEvent(msg, receivedAt), true
}
