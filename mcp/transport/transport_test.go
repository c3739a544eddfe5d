package transport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessage(t *testing.T) {
	t.Run("request", func(t *testing.T) {
		msg, err := ParseMessage([]byte(`{"jsonrpc":"2.0","method":"tools/call","id":7,"params":{"name":"lookup_domain"}}`))
		require.NoError(t, err)
		require.Equal(t, BaseMessageTypeJSONRPCRequestType, msg.Type)
		require.NotNil(t, msg.JsonRpcRequest)
		assert.Equal(t, "tools/call", msg.JsonRpcRequest.Method)
		assert.Equal(t, RequestId(7), msg.JsonRpcRequest.Id)
		assert.Equal(t, RequestId(7), msg.MessageID())
	})

	t.Run("notification", func(t *testing.T) {
		msg, err := ParseMessage([]byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`))
		require.NoError(t, err)
		require.Equal(t, BaseMessageTypeJSONRPCNotificationType, msg.Type)
		require.NotNil(t, msg.JsonRpcNotification)
		assert.Equal(t, "notifications/initialized", msg.JsonRpcNotification.Method)
		assert.Equal(t, RequestId(0), msg.MessageID())
	})

	t.Run("response", func(t *testing.T) {
		msg, err := ParseMessage([]byte(`{"jsonrpc":"2.0","id":3,"result":{"ok":true}}`))
		require.NoError(t, err)
		require.Equal(t, BaseMessageTypeJSONRPCResponseType, msg.Type)
		require.NotNil(t, msg.JsonRpcResponse)
		assert.Equal(t, RequestId(3), msg.JsonRpcResponse.Id)
	})

	t.Run("error", func(t *testing.T) {
		msg, err := ParseMessage([]byte(`{"jsonrpc":"2.0","id":4,"error":{"code":-32000,"message":"boom"}}`))
		require.NoError(t, err)
		require.Equal(t, BaseMessageTypeJSONRPCErrorType, msg.Type)
		require.NotNil(t, msg.JsonRpcError)
		assert.Equal(t, -32000, msg.JsonRpcError.Error.Code)
		assert.Equal(t, "boom", msg.JsonRpcError.Error.Message)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := ParseMessage([]byte(`{invalid`))
		assert.Error(t, err)
	})

	t.Run("no recognizable fields", func(t *testing.T) {
		_, err := ParseMessage([]byte(`{"jsonrpc":"2.0"}`))
		assert.Error(t, err)
	})
}

func TestBaseJsonRpcMessageMarshal(t *testing.T) {
	t.Run("request round trip", func(t *testing.T) {
		msg := NewBaseMessageRequest(&BaseJSONRPCRequest{
			Jsonrpc: "2.0",
			Method:  "ping",
			Id:      11,
		})
		data, err := json.Marshal(msg)
		require.NoError(t, err)

		parsed, err := ParseMessage(data)
		require.NoError(t, err)
		require.Equal(t, BaseMessageTypeJSONRPCRequestType, parsed.Type)
		assert.Equal(t, "ping", parsed.JsonRpcRequest.Method)
		assert.Equal(t, RequestId(11), parsed.JsonRpcRequest.Id)
	})

	t.Run("notification omits id", func(t *testing.T) {
		msg := NewBaseMessageNotification(&BaseJSONRPCNotification{
			Jsonrpc: "2.0",
			Method:  "notifications/tools/list_changed",
		})
		data, err := json.Marshal(msg)
		require.NoError(t, err)
		assert.NotContains(t, string(data), `"id"`)
	})

	t.Run("unknown type", func(t *testing.T) {
		msg := &BaseJsonRpcMessage{Type: "bogus"}
		_, err := json.Marshal(msg)
		assert.Error(t, err)
	})
}
