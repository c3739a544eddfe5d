// Package httptransport implements a stateless HTTP POST transport: one
// JSON-RPC message per request, with the response delivered in the HTTP
// response body.
package httptransport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/effective-security/xlog"
	"github.com/lobsterdomains/mcp-server/mcp/transport"
	"github.com/pkg/errors"
)

var logger = xlog.NewPackageLogger("github.com/lobsterdomains/mcp-server/mcp/transport", "httptransport")

// HTTPTransport implements a stateless HTTP transport for MCP.
// Because every exchange is a separate POST, request ids are rewritten to a
// process-local counter on the way in and restored on the way out, so
// concurrent posts cannot collide on the peer's id space.
type HTTPTransport struct {
	server         *http.Server
	endpoint       string
	messageHandler func(ctx context.Context, message *transport.BaseJsonRpcMessage)
	errorHandler   func(error)
	closeHandler   func()
	mu             sync.RWMutex
	responseMap    map[int64]chan *transport.BaseJsonRpcMessage
	atomicCounter  int64
	addr           string
}

var _ transport.Transport = (*HTTPTransport)(nil)

// NewHTTPTransport creates a new HTTP transport that serves the given endpoint.
func NewHTTPTransport(endpoint string) *HTTPTransport {
	return &HTTPTransport{
		endpoint:    endpoint,
		responseMap: make(map[int64]chan *transport.BaseJsonRpcMessage),
		addr:        ":8080", // Default port
	}
}

// WithAddr sets the address to listen on.
func (t *HTTPTransport) WithAddr(addr string) *HTTPTransport {
	t.addr = addr
	return t
}

// Start implements Transport.Start. It blocks in ListenAndServe.
func (t *HTTPTransport) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc(t.endpoint, t.handleRequest)

	t.server = &http.Server{
		Addr:    t.addr,
		Handler: mux,
	}

	return t.server.ListenAndServe()
}

// Send implements Transport.Send, routing the message to the POST exchange
// that is waiting for it.
func (t *HTTPTransport) Send(ctx context.Context, message *transport.BaseJsonRpcMessage) error {
	if message.Type == transport.BaseMessageTypeJSONRPCNotificationType {
		// There is no exchange waiting for a server-initiated notification.
		return nil
	}
	key := message.MessageID()
	logger.ContextKV(ctx, xlog.DEBUG,
		"type", message.Type,
		"key", key,
	)

	t.mu.RLock()
	responseChannel := t.responseMap[int64(key)]
	t.mu.RUnlock()

	if responseChannel == nil {
		return errors.Errorf("no response channel found for key: %d", key)
	}
	responseChannel <- message
	return nil
}

// Close implements Transport.Close.
func (t *HTTPTransport) Close() error {
	if t.server != nil {
		if err := t.server.Close(); err != nil {
			return err
		}
	}
	if t.closeHandler != nil {
		t.closeHandler()
	}
	return nil
}

// SetCloseHandler implements Transport.SetCloseHandler.
func (t *HTTPTransport) SetCloseHandler(handler func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closeHandler = handler
}

// SetErrorHandler implements Transport.SetErrorHandler.
func (t *HTTPTransport) SetErrorHandler(handler func(error)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errorHandler = handler
}

// SetMessageHandler implements Transport.SetMessageHandler.
func (t *HTTPTransport) SetMessageHandler(handler func(ctx context.Context, message *transport.BaseJsonRpcMessage)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messageHandler = handler
}

func (t *HTTPTransport) handleRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Only POST method is supported", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		t.handleError(errors.Wrap(err, "failed to read request body"))
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	response, err := t.handleMessage(ctx, body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	jsonData, err := json.Marshal(response)
	if err != nil {
		t.handleError(errors.Wrap(err, "failed to marshal response"))
		http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(jsonData)
}

// handleMessage processes one incoming message and blocks until the protocol
// layer sends the matching response.
func (t *HTTPTransport) handleMessage(ctx context.Context, body []byte) (*transport.BaseJsonRpcMessage, error) {
	message, err := transport.ParseMessage(body)
	if err != nil {
		return nil, err
	}

	t.mu.RLock()
	handler := t.messageHandler
	t.mu.RUnlock()

	if message.Type != transport.BaseMessageTypeJSONRPCRequestType {
		if handler != nil {
			handler(ctx, message)
		}
		// Notifications have no response body.
		return &transport.BaseJsonRpcMessage{
			Type: transport.BaseMessageTypeJSONRPCResponseType,
		}, nil
	}

	key := atomic.AddInt64(&t.atomicCounter, 1)
	ch := make(chan *transport.BaseJsonRpcMessage)
	t.mu.Lock()
	t.responseMap[key] = ch
	t.mu.Unlock()

	prevId := message.JsonRpcRequest.Id
	message.JsonRpcRequest.Id = transport.RequestId(key)

	if handler != nil {
		handler(ctx, message)
	}

	// Block until the response is received
	responseToUse := <-ch
	t.mu.Lock()
	delete(t.responseMap, key)
	t.mu.Unlock()

	if responseToUse.JsonRpcResponse != nil {
		responseToUse.JsonRpcResponse.Id = prevId
	}
	if responseToUse.JsonRpcError != nil {
		responseToUse.JsonRpcError.Id = prevId
	}

	return responseToUse, nil
}

func (t *HTTPTransport) handleError(err error) {
	t.mu.RLock()
	handler := t.errorHandler
	t.mu.RUnlock()

	if handler != nil {
		handler(err)
	}
}
