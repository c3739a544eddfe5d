// Package mcp implements an MCP server over a pluggable transport: tool
// registration with reflected argument schemas, initialize / ping /
// tools/list (paginated) / tools/call handling, and list-changed
// notifications.
package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/lobsterdomains/mcp-server/mcp/internal/protocol"
	"github.com/lobsterdomains/mcp-server/mcp/transport"
	"github.com/lobsterdomains/mcp-server/pkg/metricskey"
	"github.com/lobsterdomains/mcp-server/schema"
)

var logger = xlog.NewPackageLogger("github.com/lobsterdomains/mcp-server", "mcp")

var (
	ctxType          = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType          = reflect.TypeOf((*error)(nil)).Elem()
	toolResponseType = reflect.TypeOf((*ToolResponse)(nil))
)

type registeredTool struct {
	name        string
	description string
	inputSchema any
	handler     func(ctx context.Context, arguments json.RawMessage) *toolResponseSent
}

// Server exposes registered tools over MCP. The catalog is mutable only
// through RegisterTool/DeregisterTool; invocations are independent and share
// no state beyond the registered handlers.
type Server struct {
	protocol  *protocol.Protocol
	transport transport.Transport

	name    string
	version string

	mu        sync.RWMutex
	tools     map[string]*registeredTool
	isRunning bool

	paginationLimit *int
}

// ServerOptions configures a Server.
type ServerOptions func(*Server)

// WithName sets the server name advertised in the initialize response.
func WithName(name string) ServerOptions {
	return func(s *Server) {
		s.name = name
	}
}

// WithVersion sets the server version advertised in the initialize response.
func WithVersion(version string) ServerOptions {
	return func(s *Server) {
		s.version = version
	}
}

// WithPaginationLimit enables tools/list pagination with the given page size.
func WithPaginationLimit(limit int) ServerOptions {
	return func(s *Server) {
		s.paginationLimit = &limit
	}
}

// NewServer creates a server over the given transport.
func NewServer(tr transport.Transport, options ...ServerOptions) *Server {
	s := &Server{
		protocol:  protocol.NewProtocol(),
		transport: tr,
		name:      "mcp-server",
		version:   "0.1.0",
		tools:     make(map[string]*registeredTool),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// RegisterTool registers a tool with the given name and description. The
// handler must be a function taking an optional context.Context followed by a
// struct (or pointer to struct) of arguments, and returning
// (*ToolResponse, error). The argument schema is reflected from the struct.
func (s *Server) RegisterTool(name string, description string, handler any) error {
	wrapped, inputSchema, err := wrapToolHandler(handler)
	if err != nil {
		return errors.WithMessagef(err, "invalid handler for tool %q", name)
	}

	s.mu.Lock()
	s.tools[name] = &registeredTool{
		name:        name,
		description: description,
		inputSchema: inputSchema,
		handler:     wrapped,
	}
	running := s.isRunning
	s.mu.Unlock()

	if running {
		return s.sendToolListChangedNotification()
	}
	return nil
}

// DeregisterTool removes a tool from the catalog.
func (s *Server) DeregisterTool(name string) error {
	s.mu.Lock()
	_, ok := s.tools[name]
	delete(s.tools, name)
	running := s.isRunning
	s.mu.Unlock()

	if !ok {
		return errors.Errorf("unknown tool: %s", name)
	}
	if running {
		return s.sendToolListChangedNotification()
	}
	return nil
}

func (s *Server) sendToolListChangedNotification() error {
	return s.protocol.Notification("notifications/tools/list_changed", nil)
}

// Serve registers the protocol handlers and connects the transport. For
// stream transports this blocks until the stream is closed.
func (s *Server) Serve() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return errors.New("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	pr := s.protocol
	pr.SetRequestHandler("initialize", s.handleInitialize)
	pr.SetRequestHandler("ping", s.handlePing)
	pr.SetRequestHandler("tools/list", s.handleListTools)
	pr.SetRequestHandler("tools/call", s.handleToolCalls)

	return pr.Connect(s.transport)
}

// Close shuts down the transport.
func (s *Server) Close() error {
	return s.protocol.Close()
}

func (s *Server) handleInitialize(ctx context.Context, request *transport.BaseJSONRPCRequest, extra protocol.RequestHandlerExtra) (transport.JsonRpcBody, error) {
	return InitializeResponse{
		ProtocolVersion: ProtocolVersion,
		Capabilities: ServerCapabilities{
			Tools: &ToolsCapability{ListChanged: true},
		},
		ServerInfo: Implementation{
			Name:    s.name,
			Version: s.version,
		},
	}, nil
}

func (s *Server) handlePing(ctx context.Context, request *transport.BaseJSONRPCRequest, extra protocol.RequestHandlerExtra) (transport.JsonRpcBody, error) {
	return PingResponse{}, nil
}

func (s *Server) handleListTools(ctx context.Context, request *transport.BaseJSONRPCRequest, extra protocol.RequestHandlerExtra) (transport.JsonRpcBody, error) {
	var params baseListRequestParams
	if len(request.Params) > 0 {
		if err := json.Unmarshal(request.Params, &params); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal arguments")
		}
	}

	s.mu.RLock()
	names := make([]string, 0, len(s.tools))
	for name := range s.tools {
		names = append(names, name)
	}
	s.mu.RUnlock()

	// Deterministic catalog order regardless of registration order.
	sort.Strings(names)

	startIdx := 0
	if params.Cursor != nil {
		decoded, err := base64.StdEncoding.DecodeString(*params.Cursor)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode cursor")
		}
		after := string(decoded)
		found := false
		for i, name := range names {
			if name == after {
				startIdx = i + 1
				found = true
				break
			}
		}
		if !found {
			return nil, errors.Errorf("invalid cursor: %s", *params.Cursor)
		}
	}

	endIdx := len(names)
	var nextCursor *string
	if s.paginationLimit != nil && startIdx+*s.paginationLimit < len(names) {
		endIdx = startIdx + *s.paginationLimit
		cursor := base64.StdEncoding.EncodeToString([]byte(names[endIdx-1]))
		nextCursor = &cursor
	}

	s.mu.RLock()
	tools := make([]ToolRetType, 0, endIdx-startIdx)
	for _, name := range names[startIdx:endIdx] {
		tool, ok := s.tools[name]
		if !ok {
			continue
		}
		description := tool.description
		tools = append(tools, ToolRetType{
			Name:        tool.name,
			Description: &description,
			InputSchema: tool.inputSchema,
		})
	}
	s.mu.RUnlock()

	return ToolsResponse{
		Tools:      tools,
		NextCursor: nextCursor,
	}, nil
}

func (s *Server) handleToolCalls(ctx context.Context, request *transport.BaseJSONRPCRequest, extra protocol.RequestHandlerExtra) (transport.JsonRpcBody, error) {
	var params baseCallToolRequestParams
	if err := json.Unmarshal(request.Params, &params); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal arguments")
	}

	s.mu.RLock()
	tool := s.tools[params.Name]
	s.mu.RUnlock()

	if tool == nil {
		metricskey.StatsToolCallsNotFound.IncrCounter(1, params.Name)
		return nil, errors.Errorf("unknown tool: %s", params.Name)
	}

	started := time.Now()
	defer metricskey.PerfToolCall.MeasureSince(started, tool.name)

	response := tool.handler(ctx, params.Arguments)
	if response.Error != nil {
		metricskey.StatsToolCallsFailed.IncrCounter(1, tool.name)
	} else {
		metricskey.StatsToolCallsSucceeded.IncrCounter(1, tool.name)
	}
	return response, nil
}

// wrapToolHandler validates a handler's signature and returns a uniform
// wrapper around it plus the reflected argument schema.
func wrapToolHandler(handler any) (func(ctx context.Context, arguments json.RawMessage) *toolResponseSent, any, error) {
	handlerValue := reflect.ValueOf(handler)
	handlerType := handlerValue.Type()
	if handlerType.Kind() != reflect.Func {
		return nil, nil, errors.New("handler must be a function")
	}

	hasCtx := handlerType.NumIn() > 0 && handlerType.In(0) == ctxType
	argIdx := 0
	if hasCtx {
		argIdx = 1
	}
	if handlerType.NumIn() != argIdx+1 {
		return nil, nil, errors.New("handler must take an optional context.Context followed by an arguments struct")
	}

	argType := handlerType.In(argIdx)
	argIsPtr := argType.Kind() == reflect.Ptr
	if argIsPtr {
		argType = argType.Elem()
	}
	if argType.Kind() != reflect.Struct {
		return nil, nil, errors.New("arguments must be a struct or pointer to struct")
	}

	if handlerType.NumOut() != 2 ||
		handlerType.Out(0) != toolResponseType ||
		handlerType.Out(1) != errType {
		return nil, nil, errors.New("handler must return (*ToolResponse, error)")
	}

	sc, err := schema.New(argType)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "failed to create schema")
	}

	wrapped := func(ctx context.Context, arguments json.RawMessage) (sent *toolResponseSent) {
		// A panicking tool must not take down the serve loop.
		defer func() {
			if r := recover(); r != nil {
				logger.KV(xlog.ERROR, "reason", "tool panic", "err", r)
				sent = newToolResponseSentError(errors.Errorf("internal error: %v", r))
			}
		}()

		argPtr := reflect.New(argType)
		if len(arguments) > 0 {
			if err := json.Unmarshal(arguments, argPtr.Interface()); err != nil {
				return newToolResponseSentError(errors.Wrap(err, "failed to unmarshal arguments"))
			}
		}

		in := make([]reflect.Value, 0, 2)
		if hasCtx {
			in = append(in, reflect.ValueOf(ctx))
		}
		if argIsPtr {
			in = append(in, argPtr)
		} else {
			in = append(in, argPtr.Elem())
		}

		out := handlerValue.Call(in)
		if errVal := out[1].Interface(); errVal != nil {
			return newToolResponseSentError(errVal.(error))
		}
		return newToolResponseSent(out[0].Interface().(*ToolResponse))
	}

	return wrapped, sc.Parameters, nil
}
