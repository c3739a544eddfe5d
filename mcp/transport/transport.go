// Package transport defines the JSON-RPC 2.0 message types and the Transport
// interface the MCP server speaks over. A transport delivers incoming messages
// to a single message handler and sends outgoing messages back to the peer.
package transport

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// RequestId is a JSON-RPC request identifier.
type RequestId int64

// JsonRpcBody is the result payload of a successful JSON-RPC response.
type JsonRpcBody any

// BaseJSONRPCRequest is a JSON-RPC request: it carries both a method and an id.
type BaseJSONRPCRequest struct {
	Jsonrpc string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	Id      RequestId       `json:"id"`
}

// BaseJSONRPCNotification is a one-way message: a method without an id.
type BaseJSONRPCNotification struct {
	Jsonrpc string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// BaseJSONRPCResponse is a successful response correlated by id.
type BaseJSONRPCResponse struct {
	Jsonrpc string          `json:"jsonrpc"`
	Id      RequestId       `json:"id"`
	Result  json.RawMessage `json:"result"`
}

// BaseJSONRPCErrorInner is the error object of a JSON-RPC error response.
type BaseJSONRPCErrorInner struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// BaseJSONRPCError is an error response correlated by id.
type BaseJSONRPCError struct {
	Jsonrpc string                `json:"jsonrpc"`
	Id      RequestId             `json:"id"`
	Error   BaseJSONRPCErrorInner `json:"error"`
}

// BaseMessageType discriminates the message union.
type BaseMessageType string

const (
	BaseMessageTypeJSONRPCRequestType      BaseMessageType = "request"
	BaseMessageTypeJSONRPCNotificationType BaseMessageType = "notification"
	BaseMessageTypeJSONRPCResponseType     BaseMessageType = "response"
	BaseMessageTypeJSONRPCErrorType        BaseMessageType = "error"
)

// BaseJsonRpcMessage is a tagged union over the four JSON-RPC message kinds.
// Exactly one of the pointer fields matching Type is populated.
type BaseJsonRpcMessage struct {
	Type                BaseMessageType
	JsonRpcRequest      *BaseJSONRPCRequest
	JsonRpcNotification *BaseJSONRPCNotification
	JsonRpcResponse     *BaseJSONRPCResponse
	JsonRpcError        *BaseJSONRPCError
}

func NewBaseMessageRequest(request *BaseJSONRPCRequest) *BaseJsonRpcMessage {
	return &BaseJsonRpcMessage{
		Type:           BaseMessageTypeJSONRPCRequestType,
		JsonRpcRequest: request,
	}
}

func NewBaseMessageNotification(notification *BaseJSONRPCNotification) *BaseJsonRpcMessage {
	return &BaseJsonRpcMessage{
		Type:                BaseMessageTypeJSONRPCNotificationType,
		JsonRpcNotification: notification,
	}
}

func NewBaseMessageResponse(response *BaseJSONRPCResponse) *BaseJsonRpcMessage {
	return &BaseJsonRpcMessage{
		Type:            BaseMessageTypeJSONRPCResponseType,
		JsonRpcResponse: response,
	}
}

func NewBaseMessageError(errResponse *BaseJSONRPCError) *BaseJsonRpcMessage {
	return &BaseJsonRpcMessage{
		Type:         BaseMessageTypeJSONRPCErrorType,
		JsonRpcError: errResponse,
	}
}

// MessageID returns the correlation id of the message, or 0 for notifications.
func (m *BaseJsonRpcMessage) MessageID() RequestId {
	switch m.Type {
	case BaseMessageTypeJSONRPCRequestType:
		return m.JsonRpcRequest.Id
	case BaseMessageTypeJSONRPCResponseType:
		return m.JsonRpcResponse.Id
	case BaseMessageTypeJSONRPCErrorType:
		return m.JsonRpcError.Id
	}
	return 0
}

// MarshalJSON serializes the populated variant.
func (m *BaseJsonRpcMessage) MarshalJSON() ([]byte, error) {
	switch m.Type {
	case BaseMessageTypeJSONRPCRequestType:
		return json.Marshal(m.JsonRpcRequest)
	case BaseMessageTypeJSONRPCNotificationType:
		return json.Marshal(m.JsonRpcNotification)
	case BaseMessageTypeJSONRPCResponseType:
		return json.Marshal(m.JsonRpcResponse)
	case BaseMessageTypeJSONRPCErrorType:
		return json.Marshal(m.JsonRpcError)
	}
	return nil, errors.Errorf("unknown message type: %q", m.Type)
}

// ParseMessage determines the kind of an incoming message by field presence:
// a method with an id is a request, a method alone is a notification, a result
// is a response, and an error object is an error response.
func ParseMessage(body []byte) (*BaseJsonRpcMessage, error) {
	var probe struct {
		Method *string          `json:"method"`
		Id     *RequestId       `json:"id"`
		Result *json.RawMessage `json:"result"`
		Error  *json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, errors.Wrap(err, "failed to parse message")
	}

	switch {
	case probe.Method != nil && probe.Id != nil:
		var request BaseJSONRPCRequest
		if err := json.Unmarshal(body, &request); err != nil {
			return nil, errors.Wrap(err, "failed to parse request")
		}
		return NewBaseMessageRequest(&request), nil
	case probe.Method != nil:
		var notification BaseJSONRPCNotification
		if err := json.Unmarshal(body, &notification); err != nil {
			return nil, errors.Wrap(err, "failed to parse notification")
		}
		return NewBaseMessageNotification(&notification), nil
	case probe.Result != nil:
		var response BaseJSONRPCResponse
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, errors.Wrap(err, "failed to parse response")
		}
		return NewBaseMessageResponse(&response), nil
	case probe.Error != nil:
		var errResponse BaseJSONRPCError
		if err := json.Unmarshal(body, &errResponse); err != nil {
			return nil, errors.Wrap(err, "failed to parse error response")
		}
		return NewBaseMessageError(&errResponse), nil
	}
	return nil, errors.New("message is not a JSON-RPC request, notification, response or error")
}

// Transport is an abstraction over a bidirectional JSON-RPC message stream.
type Transport interface {
	// Start begins processing messages. Stream transports block until the
	// stream is closed; stateless transports return immediately.
	Start(ctx context.Context) error

	// Send delivers a message to the peer.
	Send(ctx context.Context, message *BaseJsonRpcMessage) error

	// Close terminates the transport and invokes the close handler.
	Close() error

	// SetCloseHandler sets the callback for when the connection is closed for any reason.
	SetCloseHandler(handler func())

	// SetErrorHandler sets the callback for out-of-band transport errors.
	// Errors are not necessarily fatal.
	SetErrorHandler(handler func(error))

	// SetMessageHandler sets the callback for incoming messages.
	SetMessageHandler(handler func(ctx context.Context, message *BaseJsonRpcMessage))
}
