// Package stdio implements the local stream transport: newline-delimited
// JSON-RPC messages read from stdin and written to stdout. The process blocks
// on the read loop between invocations and holds no other resources.
package stdio

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/lobsterdomains/mcp-server/mcp/transport"
)

var logger = xlog.NewPackageLogger("github.com/lobsterdomains/mcp-server/mcp/transport", "stdio")

// Lines longer than this are rejected rather than silently truncated.
const maxLineSize = 4 * 1024 * 1024

// Transport is a Transport over a pair of byte streams, one JSON-RPC message
// per line. Stdout must carry nothing but protocol messages, which is why the
// binary logs to stderr.
type Transport struct {
	reader io.Reader
	writer io.Writer

	mu             sync.RWMutex
	writeMu        sync.Mutex
	messageHandler func(ctx context.Context, message *transport.BaseJsonRpcMessage)
	errorHandler   func(error)
	closeHandler   func()
	done           chan struct{}
	closeOnce      sync.Once
}

var _ transport.Transport = (*Transport)(nil)

// New creates a transport over stdin/stdout.
func New() *Transport {
	return NewWithStreams(os.Stdin, os.Stdout)
}

// NewWithStreams creates a transport over the given streams.
func NewWithStreams(reader io.Reader, writer io.Writer) *Transport {
	return &Transport{
		reader: reader,
		writer: writer,
		done:   make(chan struct{}),
	}
}

// Start implements Transport.Start. It blocks reading messages until the
// input stream is closed, the context is cancelled, or Close is called.
func (t *Transport) Start(ctx context.Context) error {
	scanner := bufio.NewScanner(t.reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.done:
			return nil
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		message, err := transport.ParseMessage(line)
		if err != nil {
			logger.KV(xlog.DEBUG, "reason", "unparseable message", "err", err.Error())
			t.handleError(err)
			continue
		}

		t.mu.RLock()
		handler := t.messageHandler
		t.mu.RUnlock()

		if handler != nil {
			handler(ctx, message)
		}
	}

	if err := scanner.Err(); err != nil {
		t.handleError(errors.Wrap(err, "failed to read stream"))
		return errors.Wrap(err, "failed to read stream")
	}
	return nil
}

// Send implements Transport.Send, writing one message per line.
func (t *Transport) Send(ctx context.Context, message *transport.BaseJsonRpcMessage) error {
	data, err := message.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "failed to marshal message")
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	if _, err := t.writer.Write(append(data, '\n')); err != nil {
		return errors.Wrap(err, "failed to write message")
	}
	return nil
}

// Close implements Transport.Close.
func (t *Transport) Close() error {
	t.closeOnce.Do(func() {
		close(t.done)

		t.mu.RLock()
		closeHandler := t.closeHandler
		t.mu.RUnlock()

		if closeHandler != nil {
			closeHandler()
		}
	})
	return nil
}

// SetCloseHandler implements Transport.SetCloseHandler.
func (t *Transport) SetCloseHandler(handler func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closeHandler = handler
}

// SetErrorHandler implements Transport.SetErrorHandler.
func (t *Transport) SetErrorHandler(handler func(error)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errorHandler = handler
}

// SetMessageHandler implements Transport.SetMessageHandler.
func (t *Transport) SetMessageHandler(handler func(ctx context.Context, message *transport.BaseJsonRpcMessage)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messageHandler = handler
}

func (t *Transport) handleError(err error) {
	t.mu.RLock()
	handler := t.errorHandler
	t.mu.RUnlock()

	if handler != nil {
		handler(err)
	}
}
