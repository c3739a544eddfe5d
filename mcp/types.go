package mcp

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// ProtocolVersion is the MCP protocol revision this server implements.
const ProtocolVersion = "2024-11-05"

// ContentType identifies the kind of a content block.
type ContentType string

const (
	ContentTypeText ContentType = "text"
)

// TextContent is a plain text content block.
type TextContent struct {
	Text string `json:"text"`
}

// Content is a tool response content block. Only text content is produced by
// this server; every tool renders its result as one text block.
type Content struct {
	Type        ContentType
	TextContent *TextContent
}

// NewTextContent creates a text content block.
func NewTextContent(text string) *Content {
	return &Content{
		Type:        ContentTypeText,
		TextContent: &TextContent{Text: text},
	}
}

// MarshalJSON flattens the content into the wire shape {"type":...,...}.
func (c *Content) MarshalJSON() ([]byte, error) {
	switch c.Type {
	case ContentTypeText:
		return json.Marshal(struct {
			Type ContentType `json:"type"`
			Text string      `json:"text"`
		}{
			Type: ContentTypeText,
			Text: c.TextContent.Text,
		})
	}
	return nil, errors.Errorf("unknown content type: %q", c.Type)
}

// UnmarshalJSON restores the tagged union from the wire shape.
func (c *Content) UnmarshalJSON(data []byte) error {
	var wire struct {
		Type ContentType `json:"type"`
		Text string      `json:"text"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return errors.Wrap(err, "failed to unmarshal content")
	}
	switch wire.Type {
	case ContentTypeText:
		c.Type = ContentTypeText
		c.TextContent = &TextContent{Text: wire.Text}
		return nil
	}
	return errors.Errorf("unknown content type: %q", wire.Type)
}

// ToolResponse is the result of a tool invocation: one or more content blocks
// plus an error flag. The host never receives a structured payload.
type ToolResponse struct {
	Content []*Content `json:"content"`
	IsError bool       `json:"isError,omitempty"`
}

// NewToolResponse creates a successful tool response.
func NewToolResponse(content ...*Content) *ToolResponse {
	return &ToolResponse{
		Content: content,
	}
}

// toolResponseSent wraps the outcome of a tool call for serialization.
// Any failure, whichever layer raised it, is rendered as a single
// "Error: <message>" text block with the error flag set, so nothing escapes
// to the host as an unhandled fault.
type toolResponseSent struct {
	Response *ToolResponse
	Error    error
}

func newToolResponseSent(response *ToolResponse) *toolResponseSent {
	return &toolResponseSent{Response: response}
}

func newToolResponseSentError(err error) *toolResponseSent {
	return &toolResponseSent{Error: err}
}

// MarshalJSON implements json.Marshaler.
func (t *toolResponseSent) MarshalJSON() ([]byte, error) {
	if t.Error != nil {
		return json.Marshal(&ToolResponse{
			Content: []*Content{NewTextContent("Error: " + t.Error.Error())},
			IsError: true,
		})
	}
	return json.Marshal(t.Response)
}

// ToolRetType describes one catalog entry in a tools/list response.
type ToolRetType struct {
	// The name of the tool.
	Name string `json:"name"`
	// A human-readable description of the tool.
	Description *string `json:"description,omitempty"`
	// A JSON Schema object defining the expected parameters for the tool.
	InputSchema any `json:"inputSchema"`
}

// ToolsResponse is the result of a tools/list request.
type ToolsResponse struct {
	Tools      []ToolRetType `json:"tools"`
	NextCursor *string       `json:"nextCursor,omitempty"`
}

// Implementation identifies an MCP implementation.
type Implementation struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ToolsCapability advertises tool support.
type ToolsCapability struct {
	ListChanged bool `json:"listChanged"`
}

// ServerCapabilities advertises what this server supports.
type ServerCapabilities struct {
	Tools *ToolsCapability `json:"tools,omitempty"`
}

// InitializeResponse is the result of an initialize request.
type InitializeResponse struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      Implementation     `json:"serverInfo"`
	Instructions    string             `json:"instructions,omitempty"`
}

// PingResponse is the empty result of a ping request.
type PingResponse struct{}

// baseCallToolRequestParams are the wire params of a tools/call request.
type baseCallToolRequestParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// baseListRequestParams are the wire params of a paginated list request.
type baseListRequestParams struct {
	Cursor *string `json:"cursor,omitempty"`
}
