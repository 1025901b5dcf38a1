// Package upstream implements the outbound HTTP client for the bot
// platform's method endpoint.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/nulpointcorp/bot-gateway/internal/logger"
	"github.com/nulpointcorp/bot-gateway/pkg/botapi"
)

// DefaultBaseURL is the public cloud endpoint.
const DefaultBaseURL = "https://api.telegram.org"

// maxReplySize bounds how much of a reply body is read. Method replies are
// small; file content travels over a different endpoint.
const maxReplySize = 10 << 20

// Client posts method calls to {base}/bot{token}/{method} and decodes the
// reply envelope. The token never appears in returned errors.
type Client struct {
	httpc   *http.Client
	baseURL string
	token   string
}

// New creates a Client. baseURL defaults to the public endpoint when empty.
// timeout caps one HTTP exchange; per-invocation deadlines come in through
// the context.
func New(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpc: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
}

// Call performs one POST to the named method. The returned envelope is the
// platform's reply, whatever its HTTP status. A non-nil error means the
// exchange itself failed (dial, TLS, timeout, unreadable body); no envelope
// accompanies it.
func (c *Client) Call(ctx context.Context, method, contentType string, body []byte) (*botapi.Envelope, error) {
	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("upstream: build request: %w", scrub(err))
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream: %w", scrub(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReplySize))
	if err != nil {
		return nil, fmt.Errorf("upstream: read reply: %w", scrub(err))
	}

	var env botapi.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		// Replies are JSON envelopes even on error statuses; anything else
		// is a proxy or outage page. Map it onto the HTTP status.
		return botapi.Failuref(resp.StatusCode, "upstream returned non-JSON reply (HTTP %d)", resp.StatusCode), nil
	}

	if !env.OK && env.ErrorCode == 0 {
		// Some error replies omit error_code; fall back to the HTTP status.
		env.ErrorCode = resp.StatusCode
	}
	return &env, nil
}

// scrub removes the bot token from error text. net/url errors embed the full
// request URL.
func scrub(err error) error {
	msg := logger.RedactString(err.Error())
	if msg == err.Error() {
		return err
	}
	return fmt.Errorf("%s", msg)
}
