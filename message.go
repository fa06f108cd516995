// Package wirefmt converts a canonical chat-message representation into
// the request payload formats of different LLM providers.
//
// The canonical shape follows the OpenAI chat-completion convention
// (role/content sequences with optional tool fields). Provider-specific
// converters live in llm/gemini, llm/claude and llm/openai; each one
// consumes a []Message and emits the structures that serialize directly
// as the provider's request body.
package wirefmt

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// Role represents the author of a message in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Sentinel speaker names. Messages carrying one of these names are
// example turns and get prefixed with the user or character name
// instead of the literal sentinel.
const (
	NameExampleUser      = "example_user"
	NameExampleAssistant = "example_assistant"
)

// Message is the canonical message format consumed by every converter.
type Message struct {
	Role    Role    `json:"role"`
	Content Content `json:"content"`

	// Name is an optional speaker label. NameExampleUser and
	// NameExampleAssistant trigger example-turn prefixing.
	Name string `json:"name,omitempty"`

	// ToolCalls are tool invocations requested by an assistant turn.
	// Arguments stay JSON-encoded and are parsed lazily per provider.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`

	// ToolCallID links a tool-result message back to the originating call.
	ToolCallID string `json:"tool_call_id,omitempty"`

	// CacheControl is a passthrough annotation honored by the Claude
	// converter only.
	CacheControl *CacheControl `json:"cache_control,omitempty"`
}

// ToolCall is a single tool invocation within an assistant message.
type ToolCall struct {
	ID       string       `json:"id"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the tool name and its JSON-encoded arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// CacheControl marks a message as a prompt-cache breakpoint.
type CacheControl struct {
	Type string `json:"type"`
}

// Content is either a plain string or an ordered content-part sequence
// on the wire. The structured form takes precedence when Parts is
// non-nil; converters normalize the plain form to a single text part
// before structural mapping.
type Content struct {
	Text  string
	Parts []ContentPart
}

// TextContent creates plain-string content.
func TextContent(text string) Content {
	return Content{Text: text}
}

// PartsContent creates structured content from the given parts.
func PartsContent(parts ...ContentPart) Content {
	if parts == nil {
		parts = []ContentPart{}
	}
	return Content{Parts: parts}
}

// IsString reports whether the content is in its plain-string form.
func (c Content) IsString() bool {
	return c.Parts == nil
}

// PlainText flattens the content to a single string: the string form as
// is, or the text parts of the structured form joined with newlines.
func (c Content) PlainText() string {
	if c.Parts == nil {
		return c.Text
	}
	out := ""
	for _, p := range c.Parts {
		if p.Type != PartTypeText {
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += p.Text
	}
	return out
}

// UnmarshalJSON accepts a JSON string, null, or a part array.
func (c *Content) UnmarshalJSON(data []byte) error {
	*c = Content{}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Text = s
		return nil
	}

	var parts []ContentPart
	if err := json.Unmarshal(data, &parts); err != nil {
		return goerr.Wrap(ErrInvalidContent, "content must be a string or a part array")
	}
	for i := range parts {
		// Parts without an explicit type default to text.
		if parts[i].Type == "" {
			parts[i].Type = PartTypeText
		}
	}
	if parts == nil {
		parts = []ContentPart{}
	}
	c.Parts = parts
	return nil
}

// MarshalJSON emits the form the content was built with.
func (c Content) MarshalJSON() ([]byte, error) {
	if c.Parts != nil {
		return json.Marshal(c.Parts)
	}
	return json.Marshal(c.Text)
}

// ContentPartType discriminates the ContentPart union.
type ContentPartType string

const (
	PartTypeText     ContentPartType = "text"
	PartTypeImageURL ContentPartType = "image_url"
	PartTypeVideoURL ContentPartType = "video_url"
)

// ContentPart is one element of structured message content.
type ContentPart struct {
	Type     ContentPartType `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *ImageURL       `json:"image_url,omitempty"`
	VideoURL *VideoURL       `json:"video_url,omitempty"`
}

// ImageURL holds an image as a data:<mime>;base64,<payload> URI.
type ImageURL struct {
	URL string `json:"url"`
}

// VideoURL holds a video as a data:<mime>;base64,<payload> URI.
type VideoURL struct {
	URL string `json:"url"`
}

// NewTextPart creates a text content part.
func NewTextPart(text string) ContentPart {
	return ContentPart{Type: PartTypeText, Text: text}
}

// NewImagePart creates an image content part from a data URI.
func NewImagePart(dataURI string) ContentPart {
	return ContentPart{Type: PartTypeImageURL, ImageURL: &ImageURL{URL: dataURI}}
}

// NewVideoPart creates a video content part from a data URI.
func NewVideoPart(dataURI string) ContentPart {
	return ContentPart{Type: PartTypeVideoURL, VideoURL: &VideoURL{URL: dataURI}}
}

// Clone returns a deep copy of the message. Converters always operate
// on clones so that caller-supplied messages are never mutated.
func (m Message) Clone() Message {
	out := m
	if m.Content.Parts != nil {
		parts := make([]ContentPart, len(m.Content.Parts))
		for i, p := range m.Content.Parts {
			parts[i] = p
			if p.ImageURL != nil {
				u := *p.ImageURL
				parts[i].ImageURL = &u
			}
			if p.VideoURL != nil {
				u := *p.VideoURL
				parts[i].VideoURL = &u
			}
		}
		out.Content.Parts = parts
	}
	if m.ToolCalls != nil {
		out.ToolCalls = make([]ToolCall, len(m.ToolCalls))
		copy(out.ToolCalls, m.ToolCalls)
	}
	if m.CacheControl != nil {
		cc := *m.CacheControl
		out.CacheControl = &cc
	}
	return out
}

// CloneMessages deep-copies a message sequence.
func CloneMessages(messages []Message) []Message {
	out := make([]Message, len(messages))
	for i, m := range messages {
		out[i] = m.Clone()
	}
	return out
}
