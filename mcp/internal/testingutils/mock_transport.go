// Package testingutils provides an in-memory transport for exercising the
// protocol and server without a real peer.
package testingutils

import (
	"context"
	"sync"

	"github.com/lobsterdomains/mcp-server/mcp/transport"
)

// MockTransport records every message sent through it and lets tests inject
// incoming messages.
type MockTransport struct {
	mu             sync.RWMutex
	started        bool
	closed         bool
	messages       []*transport.BaseJsonRpcMessage
	messageHandler func(ctx context.Context, message *transport.BaseJsonRpcMessage)
	errorHandler   func(error)
	closeHandler   func()
}

var _ transport.Transport = (*MockTransport)(nil)

// NewMockTransport creates a new mock transport.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Start implements Transport.Start.
func (t *MockTransport) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.started = true
	return nil
}

// Send implements Transport.Send, recording the message.
func (t *MockTransport) Send(ctx context.Context, message *transport.BaseJsonRpcMessage) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, message)
	return nil
}

// Close implements Transport.Close.
func (t *MockTransport) Close() error {
	t.mu.Lock()
	closeHandler := t.closeHandler
	t.closed = true
	t.mu.Unlock()

	if closeHandler != nil {
		closeHandler()
	}
	return nil
}

// SetCloseHandler implements Transport.SetCloseHandler.
func (t *MockTransport) SetCloseHandler(handler func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closeHandler = handler
}

// SetErrorHandler implements Transport.SetErrorHandler.
func (t *MockTransport) SetErrorHandler(handler func(error)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errorHandler = handler
}

// SetMessageHandler implements Transport.SetMessageHandler.
func (t *MockTransport) SetMessageHandler(handler func(ctx context.Context, message *transport.BaseJsonRpcMessage)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messageHandler = handler
}

// GetMessages returns a snapshot of every message sent so far.
func (t *MockTransport) GetMessages() []*transport.BaseJsonRpcMessage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*transport.BaseJsonRpcMessage, len(t.messages))
	copy(out, t.messages)
	return out
}

// Started reports whether Start was called.
func (t *MockTransport) Started() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.started
}

// Closed reports whether Close was called.
func (t *MockTransport) Closed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.closed
}

// Deliver injects an incoming message as if it arrived from the peer.
func (t *MockTransport) Deliver(ctx context.Context, message *transport.BaseJsonRpcMessage) {
	t.mu.RLock()
	handler := t.messageHandler
	t.mu.RUnlock()

	if handler != nil {
		handler(ctx, message)
	}
}
