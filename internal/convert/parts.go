package convert

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/catalpa-labs/wirefmt"
)

// PartType discriminates the internal Part union. It covers the raw
// content-part kinds plus the two kinds synthesized from message-level
// tool fields during normalization.
type PartType string

const (
	PartText       PartType = "text"
	PartImage      PartType = "image"
	PartVideo      PartType = "video"
	PartToolCalls  PartType = "tool_calls"
	PartToolResult PartType = "tool_result"
)

// Part is the normalized content unit the provider converters map from.
type Part struct {
	Type PartType

	// Text for PartText.
	Text string

	// URL is the data URI for PartImage and PartVideo.
	URL string

	// ToolCalls for PartToolCalls.
	ToolCalls []wirefmt.ToolCall

	// ToolCallID and ToolContent for PartToolResult.
	ToolCallID  string
	ToolContent string
}

// TextPart creates a normalized text part.
func TextPart(text string) Part {
	return Part{Type: PartText, Text: text}
}

// NormalizeParts converts message content into the internal part
// sequence. Structured content maps part by part. Plain-string content
// synthesizes exactly one part: a tool-calls part when the message
// carries tool calls, a tool-result part when it carries a tool call
// id, otherwise a text part. keepEmptyText controls what empty plain
// content becomes: a single empty text part (Gemini) or no parts at
// all (Claude).
func NormalizeParts(msg wirefmt.Message, keepEmptyText bool) ([]Part, error) {
	if msg.Content.Parts != nil {
		out := make([]Part, 0, len(msg.Content.Parts))
		for _, p := range msg.Content.Parts {
			switch p.Type {
			case wirefmt.PartTypeText, "":
				out = append(out, TextPart(p.Text))
			case wirefmt.PartTypeImageURL:
				url := ""
				if p.ImageURL != nil {
					url = p.ImageURL.URL
				}
				out = append(out, Part{Type: PartImage, URL: url})
			case wirefmt.PartTypeVideoURL:
				url := ""
				if p.VideoURL != nil {
					url = p.VideoURL.URL
				}
				out = append(out, Part{Type: PartVideo, URL: url})
			default:
				return nil, goerr.Wrap(ErrUnsupportedContentType, "unknown content part type", goerr.Value("type", p.Type))
			}
		}
		return out, nil
	}

	if len(msg.ToolCalls) > 0 {
		return []Part{{Type: PartToolCalls, ToolCalls: msg.ToolCalls}}, nil
	}
	if msg.ToolCallID != "" {
		return []Part{{Type: PartToolResult, ToolCallID: msg.ToolCallID, ToolContent: msg.Content.Text}}, nil
	}
	if msg.Content.Text == "" && !keepEmptyText {
		return []Part{}, nil
	}
	return []Part{TextPart(msg.Content.Text)}, nil
}

// ValidateMessages enforces the input contract shared by all
// converters: every message must carry a role.
func ValidateMessages(messages []wirefmt.Message) error {
	for i, m := range messages {
		if m.Role == "" {
			return goerr.Wrap(wirefmt.ErrInvalidMessage, "message role is required", goerr.Value("index", i))
		}
	}
	return nil
}
