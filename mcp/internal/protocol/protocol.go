// Package protocol implements the JSON-RPC layer of the MCP server on top of
// a pluggable transport: request dispatch with per-request cancellation,
// notification routing, and conversion of handler failures into JSON-RPC
// error responses.
package protocol

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/lobsterdomains/mcp-server/mcp/transport"
)

var logger = xlog.NewPackageLogger("github.com/lobsterdomains/mcp-server/mcp/internal", "protocol")

// RequestHandlerExtra contains extra data given to request handlers.
type RequestHandlerExtra struct {
	// Context is cancelled when the sender cancels the in-flight request.
	Context context.Context
}

// RequestHandler produces the result body for a request, or an error.
type RequestHandler func(ctx context.Context, request *transport.BaseJSONRPCRequest, extra RequestHandlerExtra) (transport.JsonRpcBody, error)

// NotificationHandler consumes a one-way message.
type NotificationHandler func(notification *transport.BaseJSONRPCNotification) error

// Protocol routes incoming JSON-RPC messages to registered handlers and sends
// responses back over the transport. All public methods are safe for
// concurrent use.
type Protocol struct {
	transport transport.Transport

	mu sync.RWMutex

	// Maps method name to request handler
	requestHandlers map[string]RequestHandler
	// Maps request ID to cancellation function
	requestCancellers map[transport.RequestId]context.CancelFunc
	// Maps method name to notification handler
	notificationHandlers map[string]NotificationHandler

	// Callback for when the connection is closed for any reason
	OnClose func()
	// Callback for when an error occurs
	OnError func(error)
}

// NewProtocol creates a new Protocol instance.
func NewProtocol() *Protocol {
	p := &Protocol{
		requestHandlers:      make(map[string]RequestHandler),
		requestCancellers:    make(map[transport.RequestId]context.CancelFunc),
		notificationHandlers: make(map[string]NotificationHandler),
	}

	p.SetNotificationHandler("notifications/cancelled", p.handleCancelledNotification)
	p.SetNotificationHandler("notifications/initialized", p.handleInitializedNotification)

	return p
}

// Connect attaches to the given transport, starts it, and starts listening
// for messages. If the transport blocks in Start, Connect blocks with it.
func (p *Protocol) Connect(tr transport.Transport) error {
	p.mu.Lock()
	p.transport = tr
	p.mu.Unlock()

	tr.SetCloseHandler(func() {
		p.handleClose()
	})

	tr.SetErrorHandler(func(err error) {
		p.handleError(err)
	})

	tr.SetMessageHandler(func(ctx context.Context, message *transport.BaseJsonRpcMessage) {
		switch message.Type {
		case transport.BaseMessageTypeJSONRPCRequestType:
			p.handleRequest(ctx, message.JsonRpcRequest)
		case transport.BaseMessageTypeJSONRPCNotificationType:
			p.handleNotification(message.JsonRpcNotification)
		default:
			// A server never issues outbound requests, so inbound responses
			// have nothing to correlate with.
			logger.KV(xlog.DEBUG, "reason", "unexpected message", "type", message.Type)
		}
	})

	return tr.Start(context.Background())
}

func (p *Protocol) handleClose() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, cancel := range p.requestCancellers {
		cancel()
	}
	p.requestCancellers = make(map[transport.RequestId]context.CancelFunc)

	if p.OnClose != nil {
		p.OnClose()
	}
}

func (p *Protocol) handleError(err error) {
	if p.OnError != nil {
		p.OnError(err)
	}
}

func (p *Protocol) handleNotification(notification *transport.BaseJSONRPCNotification) {
	logger.KV(xlog.DEBUG, "method", notification.Method)

	p.mu.RLock()
	handler := p.notificationHandlers[notification.Method]
	p.mu.RUnlock()

	if handler == nil {
		return
	}

	go func() {
		if err := handler(notification); err != nil {
			p.handleError(errors.Wrap(err, "notification handler error"))
		}
	}()
}

func (p *Protocol) handleRequest(ctx context.Context, request *transport.BaseJSONRPCRequest) {
	logger.KV(xlog.DEBUG,
		"method", request.Method,
		"id", request.Id,
	)

	p.mu.RLock()
	handler := p.requestHandlers[request.Method]
	tr := p.transport
	p.mu.RUnlock()

	if handler == nil {
		handler = func(_ context.Context, req *transport.BaseJSONRPCRequest, _ RequestHandlerExtra) (transport.JsonRpcBody, error) {
			return nil, errors.Errorf("method not found: %s", req.Method)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.requestCancellers[request.Id] = cancel
	p.mu.Unlock()

	go func() {
		defer func() {
			p.mu.Lock()
			delete(p.requestCancellers, request.Id)
			p.mu.Unlock()
			cancel()
		}()

		result, err := handler(ctx, request, RequestHandlerExtra{Context: ctx})
		if err != nil {
			logger.KV(xlog.DEBUG, "method", request.Method, "id", request.Id, "err", err.Error())
			p.sendErrorResponse(request.Id, err)
			return
		}

		jsonResult, err := json.Marshal(result)
		if err != nil {
			p.sendErrorResponse(request.Id, errors.Wrap(err, "failed to marshal result"))
			return
		}
		response := &transport.BaseJSONRPCResponse{
			Jsonrpc: "2.0",
			Id:      request.Id,
			Result:  jsonResult,
		}

		if err := tr.Send(ctx, transport.NewBaseMessageResponse(response)); err != nil {
			p.handleError(errors.Wrap(err, "failed to send response"))
		}
	}()
}

func (p *Protocol) handleInitializedNotification(notification *transport.BaseJSONRPCNotification) error {
	logger.KV(xlog.DEBUG, "method", notification.Method)
	return nil
}

func (p *Protocol) handleCancelledNotification(notification *transport.BaseJSONRPCNotification) error {
	var params struct {
		RequestId transport.RequestId `json:"requestId"`
		Reason    string              `json:"reason"`
	}

	if err := json.Unmarshal(notification.Params, &params); err != nil {
		return errors.Wrap(err, "failed to unmarshal cancelled params")
	}

	p.mu.RLock()
	cancel := p.requestCancellers[params.RequestId]
	p.mu.RUnlock()

	if cancel != nil {
		cancel()
	}

	return nil
}

// Close closes the underlying transport.
func (p *Protocol) Close() error {
	p.mu.RLock()
	tr := p.transport
	p.mu.RUnlock()

	if tr != nil {
		return tr.Close()
	}
	return nil
}

func (p *Protocol) sendErrorResponse(requestID transport.RequestId, err error) {
	response := &transport.BaseJSONRPCError{
		Jsonrpc: "2.0",
		Id:      requestID,
		Error: transport.BaseJSONRPCErrorInner{
			Code:    -32000, // Internal error
			Message: err.Error(),
		},
	}

	p.mu.RLock()
	tr := p.transport
	p.mu.RUnlock()

	if sendErr := tr.Send(context.Background(), transport.NewBaseMessageError(response)); sendErr != nil {
		p.handleError(errors.Wrap(sendErr, "failed to send error response"))
	}
}

// Notification emits a one-way message that does not expect a response.
func (p *Protocol) Notification(method string, params any) error {
	p.mu.RLock()
	tr := p.transport
	p.mu.RUnlock()

	if tr == nil {
		return errors.New("not connected")
	}

	marshalled, err := json.Marshal(params)
	if err != nil {
		return errors.Wrap(err, "failed to marshal notification params")
	}

	notification := &transport.BaseJSONRPCNotification{
		Jsonrpc: "2.0",
		Method:  method,
		Params:  marshalled,
	}

	return tr.Send(context.Background(), transport.NewBaseMessageNotification(notification))
}

// SetRequestHandler registers a handler for the given request method.
func (p *Protocol) SetRequestHandler(method string, handler RequestHandler) {
	p.mu.Lock()
	p.requestHandlers[method] = handler
	p.mu.Unlock()
}

// SetNotificationHandler registers a handler for the given notification method.
func (p *Protocol) SetNotificationHandler(method string, handler NotificationHandler) {
	p.mu.Lock()
	p.notificationHandlers[method] = handler
	p.mu.Unlock()
}
