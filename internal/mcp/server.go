package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nulpointcorp/bot-gateway/internal/pipeline"
	"github.com/nulpointcorp/bot-gateway/internal/schema"
	"github.com/nulpointcorp/bot-gateway/pkg/botapi"
)

// Tool exposure modes.
const (
	// ModeFlat exposes one tool per upstream method.
	ModeFlat = "flat"
	// ModeMeta exposes find_tool and call_tool over the descriptor table.
	ModeMeta = "meta"
)

// defaultFindLimit caps find_tool results when the client sends no limit.
const defaultFindLimit = 20

// Invoker drives one method call through the gateway.
// *pipeline.Pipeline is the production implementation.
type Invoker interface {
	Invoke(ctx context.Context, method string, params map[string]any, opts pipeline.Options) *botapi.Envelope
}

var _ Invoker = (*pipeline.Pipeline)(nil)

// Server answers JSON-RPC requests. Transports (stdio, HTTP) call Handle.
type Server struct {
	invoker Invoker
	mode    string
	version string
	log     *slog.Logger
}

// NewServer creates a Server. mode defaults to flat when empty.
func NewServer(invoker Invoker, mode, version string, log *slog.Logger) *Server {
	if mode != ModeMeta {
		mode = ModeFlat
	}
	if log == nil {
		log = slog.Default()
	}
	return &Server{invoker: invoker, mode: mode, version: version, log: log}
}

// HandleRaw decodes one JSON-RPC message and handles it. Returns nil for
// notifications.
func (s *Server) HandleRaw(ctx context.Context, data []byte) *Response {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return errorResponse(nil, codeParseError, "parse error: "+err.Error())
	}
	return s.Handle(ctx, &req)
}

// Handle dispatches one request. Returns nil for notifications.
func (s *Server) Handle(ctx context.Context, req *Request) *Response {
	if req.JSONRPC != "2.0" || req.Method == "" {
		if req.IsNotification() {
			return nil
		}
		return errorResponse(req.ID, codeInvalidRequest, "invalid request")
	}

	switch req.Method {
	case "initialize":
		return resultResponse(req.ID, map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities":    map[string]any{"tools": map[string]any{}},
			"serverInfo": map[string]any{
				"name":    "bot-gateway",
				"version": s.version,
			},
		})

	case "notifications/initialized", "notifications/cancelled":
		return nil

	case "ping":
		return resultResponse(req.ID, map[string]any{})

	case "tools/list":
		return resultResponse(req.ID, map[string]any{"tools": s.listTools()})

	case "tools/call":
		return s.handleCall(ctx, req)

	default:
		if req.IsNotification() {
			return nil
		}
		return errorResponse(req.ID, codeMethodNotFound, fmt.Sprintf("method %q not found", req.Method))
	}
}

func (s *Server) listTools() []toolDef {
	if s.mode == ModeMeta {
		return metaTools()
	}

	descs := schema.All()
	tools := make([]toolDef, 0, len(descs))
	for _, d := range descs {
		tools = append(tools, toolDef{
			Name:        d.ToolName(),
			Description: d.Description,
			InputSchema: d.InputSchema(),
		})
	}
	return tools
}

func metaTools() []toolDef {
	return []toolDef{
		{
			Name:        "find_tool",
			Description: "Search the bot platform's method catalog by name or description",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query":    map[string]any{"type": "string", "description": "Search text; empty lists everything"},
					"category": map[string]any{"type": "string", "description": "Restrict to one category"},
					"limit":    map[string]any{"type": "integer", "description": "Maximum results"},
				},
				"required": []any{"query"},
			},
		},
		{
			Name:        "call_tool",
			Description: "Invoke a bot platform method found via find_tool",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"tool":   map[string]any{"type": "string", "description": "Tool or method name"},
					"params": map[string]any{"type": "object", "description": "Method parameters"},
				},
				"required": []any{"tool"},
			},
		},
	}
}

func (s *Server) handleCall(ctx context.Context, req *Request) *Response {
	var call callParams
	if err := json.Unmarshal(req.Params, &call); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "invalid tools/call params: "+err.Error())
	}
	if call.Name == "" {
		return errorResponse(req.ID, codeInvalidParams, "tool name required")
	}

	if s.mode == ModeMeta {
		switch call.Name {
		case "find_tool":
			return s.handleFind(req, call.Arguments)
		case "call_tool":
			return s.handleMetaCall(ctx, req, call.Arguments)
		default:
			return errorResponse(req.ID, codeInvalidParams,
				fmt.Sprintf("unknown tool %q; meta mode exposes find_tool and call_tool", call.Name))
		}
	}

	d, ok := schema.GetByTool(call.Name)
	if !ok {
		// Accept the upstream spelling too.
		if d2, ok2 := schema.Get(call.Name); ok2 {
			d = d2
		} else {
			return errorResponse(req.ID, codeInvalidParams, fmt.Sprintf("unknown tool %q", call.Name))
		}
	}
	return s.invoke(ctx, req, d.Name, call.Arguments)
}

func (s *Server) handleFind(req *Request, args map[string]any) *Response {
	query, _ := args["query"].(string)
	category, _ := args["category"].(string)
	limit := defaultFindLimit
	if l, ok := args["limit"].(float64); ok && l > 0 {
		limit = int(l)
	}

	matches := schema.Find(query, category, limit)
	data, err := json.Marshal(map[string]any{
		"count":   len(matches),
		"matches": matches,
	})
	if err != nil {
		return errorResponse(req.ID, codeInternalError, "encode matches: "+err.Error())
	}
	return resultResponse(req.ID, envelopeResult(data, false))
}

func (s *Server) handleMetaCall(ctx context.Context, req *Request, args map[string]any) *Response {
	tool, _ := args["tool"].(string)
	if tool == "" {
		return errorResponse(req.ID, codeInvalidParams, "call_tool requires a tool name")
	}
	params, _ := args["params"].(map[string]any)

	d, ok := schema.GetByTool(tool)
	if !ok {
		if d2, ok2 := schema.Get(tool); ok2 {
			d = d2
		} else {
			return errorResponse(req.ID, codeInvalidParams, fmt.Sprintf("unknown tool %q", tool))
		}
	}
	return s.invoke(ctx, req, d.Name, params)
}

// invoke drives the pipeline and wraps the envelope as a tool result. The
// envelope is always a result, never a JSON-RPC error; protocol errors are
// reserved for malformed requests.
func (s *Server) invoke(ctx context.Context, req *Request, method string, params map[string]any) *Response {
	env := s.invoker.Invoke(ctx, method, params, pipeline.Options{})
	if !env.OK {
		s.log.Debug("tool call failed", "method", method, "error_code", env.ErrorCode)
	}
	return resultResponse(req.ID, envelopeResult(env.JSON(), !env.OK))
}
