// Package webhook implements the inbound update receiver. The platform
// delivers update objects over HTTPS POST; the gateway authenticates them
// with the shared secret header, queues them in memory, and exposes the
// queue to consumers.
package webhook

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/nulpointcorp/bot-gateway/internal/httpmw"
	"github.com/nulpointcorp/bot-gateway/internal/metrics"
)

// secretHeader is the header the platform echoes the configured secret in.
const secretHeader = "X-Telegram-Bot-Api-Secret-Token"

// DefaultQueueCap bounds the in-memory update queue; the oldest update is
// dropped on overflow.
const DefaultQueueCap = 1000

// Receiver accepts updates and queues them. Safe for concurrent use.
type Receiver struct {
	secret   string
	queueCap int
	metrics  *metrics.Registry

	mu    sync.Mutex
	queue []json.RawMessage

	srv *fasthttp.Server
}

// New creates a Receiver. secret may be empty to disable authentication;
// metrics may be nil.
func New(secret string, reg *metrics.Registry) *Receiver {
	r := &Receiver{
		secret:   secret,
		queueCap: DefaultQueueCap,
		metrics:  reg,
	}
	r.srv = &fasthttp.Server{
		Handler: httpmw.Apply(r.route,
			httpmw.Recovery,
			httpmw.RequestID,
			httpmw.Timing,
		),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return r
}

// ListenAndServe blocks serving on addr until Shutdown.
func (r *Receiver) ListenAndServe(addr string) error {
	return r.srv.ListenAndServe(addr)
}

// Shutdown gracefully stops the listener.
func (r *Receiver) Shutdown() error {
	return r.srv.Shutdown()
}

// Handler returns the composed request handler (used by tests).
func (r *Receiver) Handler() fasthttp.RequestHandler {
	return r.srv.Handler
}

// Pending returns the number of queued updates.
func (r *Receiver) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

// Dequeue pops the oldest queued update, or (nil, false) when empty.
func (r *Receiver) Dequeue() (json.RawMessage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) == 0 {
		return nil, false
	}
	u := r.queue[0]
	r.queue = r.queue[1:]
	r.publishDepth()
	return u, true
}

func (r *Receiver) route(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())

	switch path {
	case "/", "/webhook":
		if !ctx.IsPost() {
			ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
			return
		}
		r.handleUpdate(ctx)

	case "/health":
		if !ctx.IsGet() {
			ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
			return
		}
		r.handleHealth(ctx)

	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	}
}

func (r *Receiver) handleUpdate(ctx *fasthttp.RequestCtx) {
	if r.secret != "" {
		if string(ctx.Request.Header.Peek(secretHeader)) != r.secret {
			r.record("rejected")
			ctx.SetStatusCode(fasthttp.StatusUnauthorized)
			ctx.SetContentType("application/json")
			ctx.SetBodyString(`{"ok":false,"description":"secret token mismatch"}`)
			return
		}
	}

	body := ctx.PostBody()
	if len(body) == 0 || !json.Valid(body) {
		r.record("rejected")
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"ok":false,"description":"invalid update payload"}`)
		return
	}

	update := make(json.RawMessage, len(body))
	copy(update, body)

	r.mu.Lock()
	if len(r.queue) >= r.queueCap {
		// Oldest-first overflow keeps the freshest updates.
		r.queue = r.queue[1:]
		r.record("dropped")
	}
	r.queue = append(r.queue, update)
	r.publishDepth()
	r.mu.Unlock()

	r.record("accepted")
	ctx.SetContentType("application/json")
	ctx.SetBodyString(`{"ok":true}`)
}

func (r *Receiver) handleHealth(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("application/json")
	data, _ := json.Marshal(map[string]any{
		"ok":      true,
		"pending": r.Pending(),
	})
	ctx.SetBody(data)
}

func (r *Receiver) record(result string) {
	if r.metrics != nil {
		r.metrics.RecordWebhookUpdate(result)
	}
}

// publishDepth mirrors the queue depth into the gauge. Caller holds the lock
// or tolerates a stale read.
func (r *Receiver) publishDepth() {
	if r.metrics != nil {
		r.metrics.SetWebhookQueueDepth(len(r.queue))
	}
}
