package mcp

import (
	"encoding/json"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/nulpointcorp/bot-gateway/internal/httpmw"
)

// HTTPTransport serves JSON-RPC over HTTP POST. An optional bearer token
// gates every request.
type HTTPTransport struct {
	srv   *Server
	token string
	http  *fasthttp.Server
}

// NewHTTPTransport wires a Server behind an HTTP listener. token may be
// empty to disable authentication.
func NewHTTPTransport(srv *Server, token string) *HTTPTransport {
	t := &HTTPTransport{srv: srv, token: token}
	t.http = &fasthttp.Server{
		Handler: httpmw.Apply(t.route,
			httpmw.Recovery,
			httpmw.RequestID,
			httpmw.Timing,
			httpmw.SecurityHeaders,
		),
		ReadTimeout:        60 * time.Second,
		WriteTimeout:       60 * time.Second,
		MaxRequestBodySize: maxLineSize,
	}
	return t
}

// ListenAndServe blocks serving on addr until Shutdown.
func (t *HTTPTransport) ListenAndServe(addr string) error {
	return t.http.ListenAndServe(addr)
}

// Shutdown gracefully stops the listener.
func (t *HTTPTransport) Shutdown() error {
	return t.http.Shutdown()
}

// Handler returns the composed request handler (used by tests).
func (t *HTTPTransport) Handler() fasthttp.RequestHandler {
	return t.http.Handler
}

func (t *HTTPTransport) route(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/", "/mcp":
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		return
	}
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		return
	}

	if t.token != "" {
		auth := string(ctx.Request.Header.Peek("Authorization"))
		if auth != "Bearer "+t.token {
			ctx.SetStatusCode(fasthttp.StatusUnauthorized)
			ctx.SetContentType("application/json")
			ctx.SetBodyString(`{"jsonrpc":"2.0","id":null,"error":{"code":-32600,"message":"unauthorized"}}`)
			return
		}
	}

	resp := t.srv.HandleRaw(ctx, ctx.PostBody())
	if resp == nil {
		// Notification: acknowledge with no body.
		ctx.SetStatusCode(fasthttp.StatusNoContent)
		return
	}

	ctx.SetContentType("application/json")
	data, err := json.Marshal(resp)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetBody(data)
}
