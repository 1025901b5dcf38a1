package health

import (
	"encoding/json"
	"time"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/nulpointcorp/bot-gateway/internal/httpmw"
)

// Server exposes the health surface over HTTP.
type Server struct {
	agg     *Aggregator
	metrics fasthttp.RequestHandler

	srv *fasthttp.Server
}

// NewServer creates the health server. metricsHandler may be nil to disable
// /metrics.
func NewServer(agg *Aggregator, metricsHandler fasthttp.RequestHandler) *Server {
	s := &Server{agg: agg, metrics: metricsHandler}

	r := router.New()
	r.GET("/health", s.handleHealth)
	r.GET("/ready", s.handleReady)
	r.GET("/live", s.handleLive)
	if metricsHandler != nil {
		r.GET("/metrics", metricsHandler)
	}

	s.srv = &fasthttp.Server{
		Handler: httpmw.Apply(r.Handler,
			httpmw.Recovery,
			httpmw.RequestID,
			httpmw.Timing,
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving on addr until Shutdown.
func (s *Server) ListenAndServe(addr string) error {
	return s.srv.ListenAndServe(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.srv.Shutdown()
}

// Handler returns the composed request handler (used by tests).
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.srv.Handler
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	snap := s.agg.Status()
	if snap.Status == StatusUnhealthy {
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
	}
	writeJSON(ctx, snap)
}

func (s *Server) handleReady(ctx *fasthttp.RequestCtx) {
	if !s.agg.Ready() {
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		writeJSON(ctx, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(ctx, map[string]string{"status": "ok"})
}

func (s *Server) handleLive(ctx *fasthttp.RequestCtx) {
	if !s.agg.Live() {
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		writeJSON(ctx, map[string]string{"status": "down"})
		return
	}
	writeJSON(ctx, map[string]string{"status": "ok"})
}

func writeJSON(ctx *fasthttp.RequestCtx, v any) {
	ctx.SetContentType("application/json")
	data, _ := json.Marshal(v)
	ctx.SetBody(data)
}
